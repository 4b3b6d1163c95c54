package chart

import (
	"math/rand"
	"testing"

	apperrors "github.com/credplot/credplot/pkg/errors"
	"github.com/credplot/credplot/pkg/summarize"
	"github.com/credplot/credplot/pkg/table"
)

func summarized(t *testing.T, tbl *table.Table) *summarize.Result {
	t.Helper()
	res, err := summarize.Summarize(tbl, nil, summarize.Options{})
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	return res
}

func normalTable(params ...string) *table.Table {
	rng := rand.New(rand.NewSource(1))
	tbl := table.New(table.Schema{HasParameter: true})
	for i, p := range params {
		for j := 0; j < 200; j++ {
			tbl.Append(table.Row{X: rng.NormFloat64() + float64(i), Parameter: p})
		}
	}
	return tbl
}

func TestAssembleSingleParameter(t *testing.T) {
	res := summarized(t, normalTable("theta"))

	spec, err := Assemble(res, Options{})
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}

	if spec.Kind != KindLine {
		t.Errorf("Kind = %q, want line for single parameter", spec.Kind)
	}
	if len(spec.Panels) != 1 {
		t.Fatalf("panels = %d, want 1", len(spec.Panels))
	}
	panel := spec.Panels[0]
	if len(panel.Series) != 1 {
		t.Fatalf("series = %d, want 1", len(panel.Series))
	}

	s := panel.Series[0]
	if s.Parameter != "theta" {
		t.Errorf("series parameter = %q", s.Parameter)
	}
	if len(s.Curve) == 0 {
		t.Error("series has no curve points")
	}
	if len(s.Band) == 0 {
		t.Error("series has no interval band")
	}
	if s.Baseline != 0 {
		t.Errorf("line chart baseline = %v, want 0", s.Baseline)
	}
	for _, p := range s.Band {
		if p.X < s.Estimate.CILow || p.X > s.Estimate.CIHigh {
			t.Fatalf("band point %v outside interval [%v, %v]",
				p.X, s.Estimate.CILow, s.Estimate.CIHigh)
		}
	}
}

func TestAssembleAutoRidge(t *testing.T) {
	res := summarized(t, normalTable("a", "b", "c", "d", "e"))

	spec, err := Assemble(res, Options{})
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}

	if spec.Kind != KindRidge {
		t.Fatalf("Kind = %q, want ridge for 5 parameters", spec.Kind)
	}

	series := spec.Panels[0].Series
	if len(series) != 5 {
		t.Fatalf("series = %d, want 5", len(series))
	}

	// Baselines must strictly increase in stacking order.
	for i := 1; i < len(series); i++ {
		if series[i].Baseline <= series[i-1].Baseline {
			t.Errorf("baseline %d (%v) not above baseline %d (%v)",
				i, series[i].Baseline, i-1, series[i-1].Baseline)
		}
	}

	// Ridge curves are normalized: peak height is baseline + 1.
	for _, s := range series {
		peak := 0.0
		for _, p := range s.Curve {
			if p.Y > peak {
				peak = p.Y
			}
		}
		if peak < s.Baseline+0.99 || peak > s.Baseline+1.01 {
			t.Errorf("series %s peak = %v, want %v", s.Parameter, peak, s.Baseline+1)
		}
	}
}

func TestAssembleSeriesFollowDisplayOrder(t *testing.T) {
	res := summarized(t, normalTable("first", "second"))

	spec, err := Assemble(res, Options{})
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}

	series := spec.Panels[0].Series
	if len(series) != 2 {
		t.Fatalf("series = %d, want 2", len(series))
	}
	// Display order is reversed first-seen: "second" before "first".
	if series[0].Parameter != "second" || series[1].Parameter != "first" {
		t.Errorf("series order = [%s, %s], want [second, first]",
			series[0].Parameter, series[1].Parameter)
	}
}

func TestAssembleForcedKind(t *testing.T) {
	res := summarized(t, normalTable("a", "b", "c", "d", "e"))

	spec, err := Assemble(res, Options{Kind: KindLine})
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}
	if spec.Kind != KindLine {
		t.Errorf("Kind = %q, want forced line", spec.Kind)
	}
}

func TestAssembleInvalidKind(t *testing.T) {
	res := summarized(t, normalTable("a"))

	_, err := Assemble(res, Options{Kind: "spiral"})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidKind) {
		t.Errorf("error = %v, want INVALID_KIND", err)
	}
}

func TestAssembleFacets(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	tbl := table.New(table.Schema{HasParameter: true, HasEffects: true})
	for _, group := range []struct{ param, effects string }{
		{"alpha", "fixed"},
		{"beta", "fixed"},
		{"gamma", "random"},
	} {
		for i := 0; i < 100; i++ {
			tbl.Append(table.Row{X: rng.NormFloat64(), Parameter: group.param, Effects: group.effects})
		}
	}
	res := summarized(t, tbl)

	spec, err := Assemble(res, Options{})
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}

	if spec.FacetRows != "effects" {
		t.Errorf("FacetRows = %q, want effects", spec.FacetRows)
	}
	if spec.Rows != 2 || spec.Cols != 1 {
		t.Errorf("grid = %dx%d, want 2x1", spec.Rows, spec.Cols)
	}

	fixed := spec.PanelAt(0, 0)
	random := spec.PanelAt(1, 0)
	if fixed == nil || random == nil {
		t.Fatalf("missing panels: %+v", spec.Panels)
	}
	if fixed.RowLabel != "fixed" || random.RowLabel != "random" {
		t.Errorf("panel labels = %q/%q", fixed.RowLabel, random.RowLabel)
	}
	if len(fixed.Series) != 2 {
		t.Errorf("fixed panel series = %d, want 2", len(fixed.Series))
	}
	if len(random.Series) != 1 {
		t.Errorf("random panel series = %d, want 1", len(random.Series))
	}
}

func TestAssemblePrecomputedCurve(t *testing.T) {
	// Table with a density column: the curve must pass through verbatim.
	tbl := table.New(table.Schema{HasY: true, HasParameter: true})
	for i := 0; i < 10; i++ {
		tbl.Append(table.Row{X: float64(i), Y: float64(i % 5), Parameter: "d"})
	}
	res := summarized(t, tbl)

	spec, err := Assemble(res, Options{})
	if err != nil {
		t.Fatalf("Assemble error: %v", err)
	}

	curve := spec.Panels[0].Series[0].Curve
	if len(curve) != 10 {
		t.Fatalf("curve points = %d, want 10 (verbatim)", len(curve))
	}
	if curve[3].X != 3 || curve[3].Y != 3 {
		t.Errorf("curve[3] = %+v, want {3 3}", curve[3])
	}
}

func TestAssembleEmpty(t *testing.T) {
	_, err := Assemble(nil, Options{})
	if !apperrors.Is(err, apperrors.ErrCodeEmptyInput) {
		t.Errorf("error = %v, want EMPTY_INPUT", err)
	}
}
