package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/credplot/credplot/pkg/chart"
	apperrors "github.com/credplot/credplot/pkg/errors"
)

func testSpec() *chart.Spec {
	curve := []chart.Point{
		{X: -2, Y: 0.05}, {X: -1, Y: 0.24}, {X: 0, Y: 0.4},
		{X: 1, Y: 0.24}, {X: 2, Y: 0.05},
	}
	return &chart.Spec{
		Kind:   chart.KindLine,
		Title:  "Estimated Density",
		XLabel: "Possible parameter values",
		YLabel: "Density",
		Rows:   1,
		Cols:   1,
		Panels: []chart.Panel{
			{
				Row: 0, Col: 0,
				Series: []chart.Series{
					{
						Parameter: "theta",
						Curve:     curve,
						Band:      curve[1:4],
						Estimate:  chart.Marker{X: 0, CILow: -1, CIHigh: 1},
					},
				},
			},
		},
	}
}

func TestRenderSVG(t *testing.T) {
	data, err := RenderSVG(testSpec())
	if err != nil {
		t.Fatalf("RenderSVG error: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("output does not look like SVG")
	}
	if !strings.Contains(string(data), "theta") {
		t.Error("SVG should contain the legend entry")
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(testSpec())
	if err != nil {
		t.Fatalf("RenderPNG error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output does not look like PNG")
	}
}

func TestRenderPDF(t *testing.T) {
	data, err := RenderPDF(testSpec())
	if err != nil {
		t.Fatalf("RenderPDF error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output does not look like PDF")
	}
}

func TestRenderEmptySpec(t *testing.T) {
	_, err := RenderSVG(&chart.Spec{Kind: chart.KindLine})
	if !apperrors.Is(err, apperrors.ErrCodeEmptyInput) {
		t.Errorf("error = %v, want EMPTY_INPUT", err)
	}
}

func TestRenderFacetGrid(t *testing.T) {
	spec := testSpec()
	spec.Rows = 2
	spec.FacetRows = "effects"
	spec.Panels[0].RowLabel = "fixed"
	spec.Panels = append(spec.Panels, chart.Panel{
		Row: 1, Col: 0, RowLabel: "random",
		Series: []chart.Series{{
			Parameter: "u",
			Curve:     []chart.Point{{X: 0, Y: 0.1}, {X: 1, Y: 0.5}, {X: 2, Y: 0.1}},
			Estimate:  chart.Marker{X: 1, CILow: 0.2, CIHigh: 1.8},
		}},
	})

	data, err := RenderSVG(spec)
	if err != nil {
		t.Fatalf("RenderSVG error: %v", err)
	}
	svg := string(data)
	if !strings.Contains(svg, "fixed") || !strings.Contains(svg, "random") {
		t.Error("facet panel titles missing from SVG")
	}
}

func TestCurveHeightAt(t *testing.T) {
	curve := []chart.Point{{X: 0, Y: 0}, {X: 2, Y: 1}, {X: 4, Y: 0}}

	tests := []struct {
		x    float64
		want float64
	}{
		{x: -1, want: 0},   // clamps left
		{x: 1, want: 0.5},  // interpolates
		{x: 2, want: 1},    // exact knot
		{x: 3, want: 0.5},  // interpolates down
		{x: 10, want: 0},   // clamps right
	}
	for _, tt := range tests {
		if got := curveHeightAt(curve, tt.x); got != tt.want {
			t.Errorf("curveHeightAt(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}
