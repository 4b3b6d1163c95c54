// Package chart assembles summarization results into chart specifications.
//
// This package defines the canonical wire format for credplot's chart data,
// used for JSON files, caching, and as the input to the rendering backends.
// A [Spec] is a fully resolved description of a density chart: every panel,
// curve point, interval band and estimate marker is materialized, so
// renderers only draw, never compute.
//
// # Chart Selection
//
// [Assemble] chooses the chart shape from the data:
//
//   - one parameter: a single line panel with an interval band
//   - several parameters: overlaid curves ("line") or offset ridges
//     ("ridge"); the automatic choice switches to ridges once the
//     parameter count makes overlaid curves unreadable
//   - effects labels present: one facet row per effects group
//   - component labels present: one facet column per component
//
// # Serialization
//
// Specs round-trip through JSON:
//
//	spec, _ := chart.ReadSpecFile("chart.json")
//	chart.WriteSpecFile(spec, "chart.json")
//	data, _ := chart.MarshalSpec(spec)
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package chart
