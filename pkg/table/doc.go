// Package table provides the sample-table data model for credplot.
//
// A [Table] holds ordered rows of sampled values (or pre-computed density
// curve points), each annotated with a parameter label and optional
// effects/component grouping labels. The set of optional columns is declared
// up front in a [Schema] rather than probed at runtime, so downstream code
// can branch on declared structure instead of guessing from the data.
//
// # Core Types
//
//   - [Table]: ordered rows plus schema and display ordering
//   - [Row]: one observation (value, optional density, labels)
//   - [Schema]: declares which optional columns are present
//
// # Display Ordering
//
// Parameter display order is an explicit operation, not a side effect:
//
//	levels := table.FirstSeenLevels(t.Rows)
//	t.Relevel(table.ReverseLevels(levels))
//
// Reversed first-appearance order is the convention used for ridge and
// stacked density plots, so the first parameter in the input ends up at the
// top of the chart.
//
// # Serialization
//
// Tables round-trip through JSON and CSV:
//
//	t, _ := table.ReadTableFile("samples.json")
//	table.WriteTableFile(t, "out.json")
//	t, _ := table.ReadCSVFile("samples.csv")
//
// CSV files need a header row; recognized columns are x, y, parameter,
// effects, component and group (case-insensitive). Unknown columns are
// rejected.
package table
