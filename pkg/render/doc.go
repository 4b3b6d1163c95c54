// Package render draws chart specs as image artifacts.
//
// # Overview
//
// This package turns an assembled [chart.Spec] into visual outputs. It
// provides:
//
//   - Vector output: SVG and PDF
//   - Raster output: PNG with configurable DPI
//   - Terminal output (in [term] subpackage)
//
// Rendering is backed by gonum/plot. Each facet panel becomes one plot,
// and the panels are aligned as tiles on a single canvas:
//
//	svg, err := render.RenderSVG(spec)
//	png, err := render.RenderPNG(spec, render.WithDPI(300))
//	pdf, err := render.RenderPDF(spec, render.WithSize(10*vg.Inch, 6*vg.Inch))
//
// Within a panel, each parameter's density curve gets a stable color, a
// translucent ribbon over its credible interval, and a dashed vertical
// marker at its point estimate. Ridge charts suppress the y axis since
// the stacked baselines carry no numeric meaning.
//
// # Terminal Preview
//
// The [term] subpackage renders a compact sparkline preview for quick
// inspection without leaving the shell.
//
// [chart.Spec]: github.com/credplot/credplot/pkg/chart
// [term]: github.com/credplot/credplot/pkg/render/term
package render
