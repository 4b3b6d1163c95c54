// Package term renders a compact terminal preview of a chart spec.
//
// Each parameter's density curve becomes a sparkline with its point
// estimate and credible interval printed underneath. The preview is meant
// for quick inspection in the shell, not as a substitute for the real
// chart artifacts.
package term

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"

	"github.com/credplot/credplot/pkg/chart"
)

// Default preview dimensions per curve.
const (
	DefaultWidth  = 48
	DefaultHeight = 3
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	// curveColors cycle per series so adjacent curves stay tellable apart.
	curveColors = []lipgloss.Color{"51", "213", "226", "46", "208", "39"}
)

// Options configures the terminal preview.
type Options struct {
	// Width is the sparkline width in cells. Defaults to DefaultWidth.
	Width int

	// Height is the sparkline height in rows. Defaults to DefaultHeight.
	Height int
}

func (o *Options) setDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
}

// Preview renders the spec as styled terminal output.
func Preview(spec *chart.Spec, opts Options) string {
	opts.setDefaults()

	var b strings.Builder
	if spec.Title != "" {
		b.WriteString(headerStyle.Render(spec.Title))
		b.WriteString("\n\n")
	}

	colorIdx := 0
	for i := range spec.Panels {
		panel := &spec.Panels[i]
		if label := panelLabel(panel); label != "" {
			b.WriteString(headerStyle.Render(label))
			b.WriteString("\n")
		}
		for j := range panel.Series {
			s := &panel.Series[j]
			style := lipgloss.NewStyle().Foreground(curveColors[colorIdx%len(curveColors)])
			colorIdx++

			b.WriteString(style.Render(curveSparkline(s, opts.Width, opts.Height)))
			b.WriteString("\n")
			b.WriteString(labelStyle.Render(seriesLabel(s)))
			b.WriteString("\n\n")
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func panelLabel(panel *chart.Panel) string {
	switch {
	case panel.RowLabel != "" && panel.ColLabel != "":
		return panel.RowLabel + " / " + panel.ColLabel
	case panel.RowLabel != "":
		return panel.RowLabel
	default:
		return panel.ColLabel
	}
}

// curveSparkline resamples the density curve to the preview width and
// draws it as a sparkline.
func curveSparkline(s *chart.Series, width, height int) string {
	spark := sparkline.New(width, height)
	for _, v := range resample(s.Curve, s.Baseline, width) {
		spark.Push(v)
	}
	spark.Draw()
	return spark.View()
}

// resample reduces the curve to width evenly spaced heights above the
// series baseline.
func resample(curve []chart.Point, baseline float64, width int) []float64 {
	if len(curve) == 0 {
		return nil
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		idx := i * (len(curve) - 1) / max(width-1, 1)
		v := curve[idx].Y - baseline
		if v < 0 {
			v = 0
		}
		out[i] = v
	}
	return out
}

func seriesLabel(s *chart.Series) string {
	name := s.Parameter
	if s.Group != "" {
		name = s.Group + "[" + s.Parameter + "]"
	}
	return fmt.Sprintf("%s: %.3g [%.3g, %.3g]",
		name, s.Estimate.X, s.Estimate.CILow, s.Estimate.CIHigh)
}
