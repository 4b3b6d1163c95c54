package chart

import (
	"path/filepath"
	"strings"
	"testing"
)

func sampleSpec() *Spec {
	return &Spec{
		Kind:        KindRidge,
		Title:       "Estimated Density",
		XLabel:      "Possible parameter values",
		YLabel:      "Density",
		LegendTitle: "Parameter",
		Rows:        1,
		Cols:        1,
		Panels: []Panel{
			{
				Row: 0, Col: 0,
				Series: []Series{
					{
						Parameter: "slope",
						Baseline:  1.2,
						Curve:     []Point{{X: 0, Y: 1.2}, {X: 1, Y: 2.2}, {X: 2, Y: 1.2}},
						Band:      []Point{{X: 1, Y: 2.2}},
						Estimate:  Marker{X: 1, CILow: 0.5, CIHigh: 1.5},
					},
					{
						Parameter: "intercept",
						Curve:     []Point{{X: 0, Y: 0}, {X: 1, Y: 1}},
						Estimate:  Marker{X: 0.5, CILow: 0.1, CIHigh: 0.9},
					},
				},
			},
		},
	}
}

func TestSpecRoundTrip(t *testing.T) {
	original := sampleSpec()

	data, err := MarshalSpec(original)
	if err != nil {
		t.Fatalf("MarshalSpec error: %v", err)
	}

	decoded, err := UnmarshalSpec(data)
	if err != nil {
		t.Fatalf("UnmarshalSpec error: %v", err)
	}

	if decoded.Kind != original.Kind {
		t.Errorf("Kind = %q, want %q", decoded.Kind, original.Kind)
	}
	if len(decoded.Panels) != 1 || len(decoded.Panels[0].Series) != 2 {
		t.Fatalf("unexpected panel shape: %+v", decoded.Panels)
	}

	s := decoded.Panels[0].Series[0]
	if s.Parameter != "slope" || s.Baseline != 1.2 {
		t.Errorf("series = %+v", s)
	}
	if s.Estimate.CILow != 0.5 || s.Estimate.CIHigh != 1.5 {
		t.Errorf("estimate = %+v", s.Estimate)
	}
	if len(s.Curve) != 3 || s.Curve[1].Y != 2.2 {
		t.Errorf("curve = %+v", s.Curve)
	}
}

func TestSpecFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.json")

	if err := WriteSpecFile(sampleSpec(), path); err != nil {
		t.Fatalf("WriteSpecFile error: %v", err)
	}

	decoded, err := ReadSpecFile(path)
	if err != nil {
		t.Fatalf("ReadSpecFile error: %v", err)
	}
	if !decoded.IsRidge() {
		t.Errorf("Kind = %q, want ridge", decoded.Kind)
	}
}

func TestReadSpecRejectsUnknownKind(t *testing.T) {
	_, err := ReadSpec(strings.NewReader(`{"kind": "pie"}`))
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if !strings.Contains(err.Error(), "pie") {
		t.Errorf("error = %v, want mention of the bad kind", err)
	}
}

func TestPanelAt(t *testing.T) {
	s := &Spec{Panels: []Panel{
		{Row: 0, Col: 0, RowLabel: "fixed"},
		{Row: 1, Col: 0, RowLabel: "random"},
	}}

	if got := s.PanelAt(1, 0); got == nil || got.RowLabel != "random" {
		t.Errorf("PanelAt(1, 0) = %+v", got)
	}
	if got := s.PanelAt(5, 5); got != nil {
		t.Errorf("PanelAt(5, 5) = %+v, want nil", got)
	}
}
