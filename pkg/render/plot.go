package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/credplot/credplot/pkg/chart"
)

// bandAlpha is the opacity of the credible-interval ribbon.
const bandAlpha = 70

// seriesColors assigns a stable color index per parameter so a parameter
// keeps its color across facet panels.
func seriesColors(spec *chart.Spec) map[string]color.Color {
	colors := make(map[string]color.Color)
	i := 0
	for _, panel := range spec.Panels {
		for _, s := range panel.Series {
			if _, ok := colors[s.Parameter]; !ok {
				colors[s.Parameter] = plotutil.Color(i)
				i++
			}
		}
	}
	return colors
}

// panelPlots builds one plot per facet cell, indexed [row][col]. Cells
// absent from the spec stay nil and render as empty space.
func panelPlots(spec *chart.Spec) ([][]*plot.Plot, error) {
	rows, cols := spec.Rows, spec.Cols
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}

	colors := seriesColors(spec)

	plots := make([][]*plot.Plot, rows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, cols)
	}
	for i := range spec.Panels {
		panel := &spec.Panels[i]
		p, err := panelPlot(spec, panel, colors)
		if err != nil {
			return nil, err
		}
		plots[panel.Row][panel.Col] = p
	}
	return plots, nil
}

// panelPlot assembles the density curves, interval ribbons, and estimate
// markers of one facet cell.
func panelPlot(spec *chart.Spec, panel *chart.Panel, colors map[string]color.Color) (*plot.Plot, error) {
	p := plot.New()

	p.Title.Text = panelTitle(spec, panel)
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel
	if spec.IsRidge() {
		// Ridge baselines are synthetic offsets, so the y scale carries no
		// meaning worth labelling.
		p.Y.Label.Text = ""
		p.Y.Tick.Marker = plot.ConstantTicks(nil)
	}

	for _, s := range panel.Series {
		c := colors[s.Parameter]

		if len(s.Band) > 1 {
			ribbon, err := plotter.NewPolygon(bandPolygon(&s))
			if err != nil {
				return nil, fmt.Errorf("interval ribbon for %q: %w", s.Parameter, err)
			}
			ribbon.Color = withAlpha(c, bandAlpha)
			ribbon.LineStyle.Width = 0
			p.Add(ribbon)
		}

		line, err := plotter.NewLine(toXYs(s.Curve))
		if err != nil {
			return nil, fmt.Errorf("density curve for %q: %w", s.Parameter, err)
		}
		line.LineStyle.Color = c
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(s.Parameter, line)

		if marker, err := estimateLine(&s, c); err != nil {
			return nil, err
		} else if marker != nil {
			p.Add(marker)
		}
	}

	p.Legend.Top = true
	return p, nil
}

func panelTitle(spec *chart.Spec, panel *chart.Panel) string {
	switch {
	case panel.RowLabel != "" && panel.ColLabel != "":
		return panel.RowLabel + " / " + panel.ColLabel
	case panel.RowLabel != "":
		return panel.RowLabel
	case panel.ColLabel != "":
		return panel.ColLabel
	default:
		return spec.Title
	}
}

// estimateLine builds the vertical point-estimate marker, spanning from the
// series baseline up to the curve height at the estimate position.
func estimateLine(s *chart.Series, c color.Color) (*plotter.Line, error) {
	if len(s.Curve) == 0 {
		return nil, nil
	}
	top := curveHeightAt(s.Curve, s.Estimate.X)
	line, err := plotter.NewLine(plotter.XYs{
		{X: s.Estimate.X, Y: s.Baseline},
		{X: s.Estimate.X, Y: top},
	})
	if err != nil {
		return nil, fmt.Errorf("estimate marker for %q: %w", s.Parameter, err)
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(1)
	line.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
	return line, nil
}

// curveHeightAt interpolates the curve height at x. Positions outside the
// curve clamp to the nearest endpoint.
func curveHeightAt(curve []chart.Point, x float64) float64 {
	if x <= curve[0].X {
		return curve[0].Y
	}
	for i := 1; i < len(curve); i++ {
		if x <= curve[i].X {
			x0, y0 := curve[i-1].X, curve[i-1].Y
			x1, y1 := curve[i].X, curve[i].Y
			if x1 == x0 {
				return y1
			}
			t := (x - x0) / (x1 - x0)
			return y0 + t*(y1-y0)
		}
	}
	return curve[len(curve)-1].Y
}

// bandPolygon closes the band curve down to the series baseline so the
// ribbon renders as a filled region under the curve.
func bandPolygon(s *chart.Series) plotter.XYs {
	xys := make(plotter.XYs, 0, len(s.Band)+2)
	xys = append(xys, plotter.XY{X: s.Band[0].X, Y: s.Baseline})
	for _, p := range s.Band {
		xys = append(xys, plotter.XY{X: p.X, Y: p.Y})
	}
	xys = append(xys, plotter.XY{X: s.Band[len(s.Band)-1].X, Y: s.Baseline})
	return xys
}

func toXYs(points []chart.Point) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, p := range points {
		xys[i] = plotter.XY{X: p.X, Y: p.Y}
	}
	return xys
}

func withAlpha(c color.Color, alpha uint8) color.Color {
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	nrgba.A = alpha
	return nrgba
}
