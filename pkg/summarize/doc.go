// Package summarize implements the density summarizer: it reshapes a
// long-format table of posterior samples into per-parameter groups and
// computes a point estimate plus credible interval for each group.
//
// # Contract
//
// [Summarize] takes a sample table, an optional model description used to
// classify parameters into effects/components, and [Options] selecting the
// centrality statistic and credible mass. It returns a [Result] holding the
// (possibly relabeled) sample table, one [SummaryRow] per non-empty group,
// and the plot metadata — an explicit structured return, never out-of-band
// attributes on the table.
//
// # Grouping
//
// Rows are partitioned over the columns present among Parameter, Effects and
// Component, in that fixed precedence. Tables without a Parameter column get
// the single label "Distribution". Parameter names of the form
// "group[param]" are split into a Group label and a clean Parameter label so
// faceting can use the group independently of the display name.
//
// # Ordering
//
// Both the sample table and the summary rows use the same display order:
// first-appearance order of Parameter, reversed, so index-aligned rendering
// of curve and overlay works row for row.
//
// # Determinism
//
// All statistics are closed form (the MAP estimate uses a fixed-bandwidth
// KDE), so identical inputs always produce identical summaries.
package summarize
