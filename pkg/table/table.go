package table

// =============================================================================
// Schema - Declared Optional Columns
// =============================================================================

// Schema declares which optional columns a table carries.
//
// X is always present and has no flag. Y holds pre-computed density values
// for curve tables; sample tables leave it unset. Parameter, Effects,
// Component and Group are categorical label columns.
type Schema struct {
	HasY         bool `json:"y,omitempty"`
	HasParameter bool `json:"parameter,omitempty"`
	HasEffects   bool `json:"effects,omitempty"`
	HasComponent bool `json:"component,omitempty"`
	HasGroup     bool `json:"group,omitempty"`
}

// Row is a single observation: a sampled value (or curve point) plus its
// grouping labels. Label fields whose column is absent from the schema are
// ignored by all operations.
type Row struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y,omitempty"`
	Parameter string  `json:"parameter,omitempty"`
	Effects   string  `json:"effects,omitempty"`
	Component string  `json:"component,omitempty"`
	Group     string  `json:"group,omitempty"`
}

// =============================================================================
// Table
// =============================================================================

// Table is an ordered collection of rows with a declared schema and an
// explicit Parameter display ordering.
//
// Levels holds the Parameter display order. A nil Levels means no ordering
// has been applied yet; use Relevel to set one.
type Table struct {
	Rows   []Row
	Schema Schema
	Levels []string
}

// New creates an empty table with the given schema.
func New(schema Schema) *Table {
	return &Table{Schema: schema}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Append adds rows to the table in order.
func (t *Table) Append(rows ...Row) {
	t.Rows = append(t.Rows, rows...)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{Schema: t.Schema}
	if t.Rows != nil {
		c.Rows = make([]Row, len(t.Rows))
		copy(c.Rows, t.Rows)
	}
	if t.Levels != nil {
		c.Levels = make([]string, len(t.Levels))
		copy(c.Levels, t.Levels)
	}
	return c
}

// Parameters returns the distinct Parameter values in first-appearance
// order. For tables without a Parameter column it returns nil.
func (t *Table) Parameters() []string {
	if !t.Schema.HasParameter {
		return nil
	}
	return FirstSeenLevels(t.Rows)
}

// Filter returns a new table containing only rows for which keep returns
// true. Schema and levels are carried over unchanged.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := &Table{Schema: t.Schema, Levels: t.Levels}
	for _, r := range t.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// XValues returns the X column as a slice.
func (t *Table) XValues() []float64 {
	xs := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		xs[i] = r.X
	}
	return xs
}
