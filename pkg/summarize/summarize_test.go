package summarize

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"

	apperrors "github.com/credplot/credplot/pkg/errors"
	"github.com/credplot/credplot/pkg/table"
)

func sampleTable(params map[string][]float64, order []string) *table.Table {
	t := table.New(table.Schema{HasParameter: true})
	for _, p := range order {
		for _, x := range params[p] {
			t.Append(table.Row{X: x, Parameter: p})
		}
	}
	return t
}

func TestSummarizeMeanKnownValues(t *testing.T) {
	tbl := sampleTable(map[string][]float64{"a": {1, 2, 3, 4, 5}}, []string{"a"})

	res, err := Summarize(tbl, nil, Options{Centrality: "mean", CI: 0.95})
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}

	if len(res.Summary) != 1 {
		t.Fatalf("summary rows = %d, want 1", len(res.Summary))
	}
	row := res.Summary[0]
	if row.X != 3.0 {
		t.Errorf("point estimate = %v, want 3.0", row.X)
	}
	if row.CILow > 3.0 || row.CIHigh < 3.0 {
		t.Errorf("interval [%v, %v] does not bracket 3.0", row.CILow, row.CIHigh)
	}
}

func TestSummarizeRowPerGroup(t *testing.T) {
	params := map[string][]float64{}
	for _, p := range []string{"a", "b"} {
		xs := make([]float64, 100)
		for i := range xs {
			xs[i] = float64(i) / 10
		}
		params[p] = xs
	}
	tbl := sampleTable(params, []string{"a", "b"})

	res, err := Summarize(tbl, nil, Options{})
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}

	if len(res.Summary) != 2 {
		t.Fatalf("summary rows = %d, want 2", len(res.Summary))
	}
	names := []string{res.Summary[0].Parameter, res.Summary[1].Parameter}
	sort.Strings(names)
	if !reflect.DeepEqual(names, []string{"a", "b"}) {
		t.Errorf("summary parameters = %v, want [a b]", names)
	}
}

func TestSummarizeIntervalBracketsEstimate(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tbl := table.New(table.Schema{HasParameter: true})
	for i := 0; i < 500; i++ {
		tbl.Append(table.Row{X: rng.NormFloat64(), Parameter: "theta"})
		tbl.Append(table.Row{X: rng.NormFloat64()*2 + 5, Parameter: "sigma"})
	}

	for _, centrality := range []string{"median", "mean", "map"} {
		for _, method := range []string{"eti", "hdi"} {
			res, err := Summarize(tbl, nil, Options{Centrality: centrality, Method: method})
			if err != nil {
				t.Fatalf("Summarize(%s/%s) error: %v", centrality, method, err)
			}
			for _, row := range res.Summary {
				if row.CILow > row.X || row.X > row.CIHigh {
					t.Errorf("%s/%s %s: estimate %v outside [%v, %v]",
						centrality, method, row.Parameter, row.X, row.CILow, row.CIHigh)
				}
			}
		}
	}
}

func TestSummarizeOrderIndependent(t *testing.T) {
	tbl := sampleTable(map[string][]float64{
		"a": {1, 5, 2, 4, 3},
		"b": {10, 30, 20},
	}, []string{"a", "b"})

	reversed := table.New(tbl.Schema)
	for i := tbl.Len() - 1; i >= 0; i-- {
		reversed.Append(tbl.Rows[i])
	}

	res1, err := Summarize(tbl, nil, Options{})
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	res2, err := Summarize(reversed, nil, Options{})
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}

	// Display order differs by convention; compare rows sorted by parameter.
	sortRows := func(rows []SummaryRow) []SummaryRow {
		out := make([]SummaryRow, len(rows))
		copy(out, rows)
		sort.Slice(out, func(i, j int) bool { return out[i].Parameter < out[j].Parameter })
		return out
	}
	if !reflect.DeepEqual(sortRows(res1.Summary), sortRows(res2.Summary)) {
		t.Errorf("summary depends on row order:\n %+v\nvs %+v", res1.Summary, res2.Summary)
	}
}

func TestSummarizeDisplayOrderReversed(t *testing.T) {
	tbl := sampleTable(map[string][]float64{
		"first":  {1, 2},
		"second": {3, 4},
		"third":  {5, 6},
	}, []string{"first", "second", "third"})

	res, err := Summarize(tbl, nil, Options{})
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}

	wantLevels := []string{"third", "second", "first"}
	if !reflect.DeepEqual(res.Samples.Levels, wantLevels) {
		t.Errorf("sample levels = %v, want %v", res.Samples.Levels, wantLevels)
	}

	// Summary rows must follow the same display order, row for row.
	var got []string
	for _, row := range res.Summary {
		got = append(got, row.Parameter)
	}
	if !reflect.DeepEqual(got, wantLevels) {
		t.Errorf("summary order = %v, want %v", got, wantLevels)
	}
}

func TestSummarizeDefaultLabel(t *testing.T) {
	tbl := table.New(table.Schema{})
	for _, x := range []float64{1, 2, 3} {
		tbl.Append(table.Row{X: x})
	}

	res, err := Summarize(tbl, nil, Options{})
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}

	if len(res.Summary) != 1 || res.Summary[0].Parameter != DefaultParameterLabel {
		t.Errorf("summary = %+v, want single %q row", res.Summary, DefaultParameterLabel)
	}
	for _, r := range res.Samples.Rows {
		if r.Parameter != DefaultParameterLabel {
			t.Fatalf("sample row not labeled: %+v", r)
		}
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	_, err := Summarize(table.New(table.Schema{}), nil, Options{})
	if !apperrors.Is(err, apperrors.ErrCodeEmptyInput) {
		t.Errorf("error = %v, want EMPTY_INPUT", err)
	}

	_, err = Summarize(nil, nil, Options{})
	if !apperrors.Is(err, apperrors.ErrCodeEmptyInput) {
		t.Errorf("error for nil table = %v, want EMPTY_INPUT", err)
	}
}

func TestSummarizeUnknownCentrality(t *testing.T) {
	tbl := sampleTable(map[string][]float64{"a": {1, 2}}, []string{"a"})

	_, err := Summarize(tbl, nil, Options{Centrality: "bogus"})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidCentrality) {
		t.Errorf("error = %v, want INVALID_CENTRALITY", err)
	}
}

func TestSummarizeInvalidMass(t *testing.T) {
	tbl := sampleTable(map[string][]float64{"a": {1, 2}}, []string{"a"})

	for _, ci := range []float64{-0.5, 1.5} {
		_, err := Summarize(tbl, nil, Options{CI: ci})
		if !apperrors.Is(err, apperrors.ErrCodeInvalidInterval) {
			t.Errorf("ci=%v: error = %v, want INVALID_INTERVAL", ci, err)
		}
	}
}

func TestSummarizeClassificationJoin(t *testing.T) {
	tbl := sampleTable(map[string][]float64{
		"alpha": {1, 2, 3},
		"beta":  {4, 5, 6},
	}, []string{"alpha", "beta"})

	model := &ModelInfo{Parameters: map[string]Classification{
		"alpha": {Effects: EffectsFixed, Component: ComponentConditional},
		"beta":  {Effects: EffectsRandom, Component: ComponentConditional},
	}}

	res, err := Summarize(tbl, model, Options{})
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}

	if !res.Samples.Schema.HasEffects || !res.Samples.Schema.HasComponent {
		t.Errorf("schema missing joined columns: %+v", res.Samples.Schema)
	}
	for _, row := range res.Summary {
		if row.Effects == "" || row.Component == "" {
			t.Errorf("summary row missing classification: %+v", row)
		}
	}
}

func TestSummarizeLenientDropsUnmatched(t *testing.T) {
	tbl := sampleTable(map[string][]float64{
		"known":   {1, 2, 3},
		"unknown": {4, 5, 6},
	}, []string{"known", "unknown"})

	model := &ModelInfo{Parameters: map[string]Classification{
		"known": {Effects: EffectsFixed},
	}}

	res, err := Summarize(tbl, model, Options{})
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}

	if len(res.Summary) != 1 || res.Summary[0].Parameter != "known" {
		t.Errorf("summary = %+v, want only 'known'", res.Summary)
	}
	if res.Samples.Len() != 3 {
		t.Errorf("samples len = %d, want 3 (unmatched rows dropped)", res.Samples.Len())
	}
}

func TestSummarizeStrictJoinFails(t *testing.T) {
	tbl := sampleTable(map[string][]float64{"mystery": {1, 2}}, []string{"mystery"})
	model := &ModelInfo{Parameters: map[string]Classification{
		"other": {Effects: EffectsFixed},
	}}

	_, err := Summarize(tbl, model, Options{Strict: true})
	if !apperrors.Is(err, apperrors.ErrCodeReshape) {
		t.Errorf("error = %v, want RESHAPE", err)
	}

	// All rows dropped is an error even in lenient mode.
	_, err = Summarize(tbl, model, Options{})
	if !apperrors.Is(err, apperrors.ErrCodeReshape) {
		t.Errorf("lenient all-dropped error = %v, want RESHAPE", err)
	}
}

func TestSummarizeGroupedNames(t *testing.T) {
	tbl := table.New(table.Schema{HasParameter: true})
	for _, x := range []float64{1, 2, 3} {
		tbl.Append(table.Row{X: x, Parameter: "cyl[4]"})
		tbl.Append(table.Row{X: x + 10, Parameter: "cyl[6]"})
	}

	res, err := Summarize(tbl, nil, Options{})
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}

	if !res.Samples.Schema.HasGroup {
		t.Error("schema missing Group column after normalization")
	}
	for _, r := range res.Samples.Rows {
		if r.Group != "cyl" {
			t.Fatalf("row group = %q, want cyl", r.Group)
		}
		if r.Parameter != "4" && r.Parameter != "6" {
			t.Fatalf("row parameter = %q, want clean label", r.Parameter)
		}
	}
	if len(res.Summary) != 2 {
		t.Errorf("summary rows = %d, want 2", len(res.Summary))
	}
}

func TestSummarizeDoesNotModifyInput(t *testing.T) {
	tbl := table.New(table.Schema{})
	tbl.Append(table.Row{X: 1}, table.Row{X: 2})

	if _, err := Summarize(tbl, nil, Options{}); err != nil {
		t.Fatalf("Summarize error: %v", err)
	}

	if tbl.Schema.HasParameter {
		t.Error("Summarize modified input schema")
	}
	if tbl.Rows[0].Parameter != "" {
		t.Error("Summarize modified input rows")
	}
	if tbl.Levels != nil {
		t.Error("Summarize set levels on input")
	}
}

func TestSplitGroupedName(t *testing.T) {
	tests := []struct {
		in        string
		group     string
		parameter string
		ok        bool
	}{
		{"cyl[4]", "cyl", "4", true},
		{"sigma[group one]", "sigma", "group one", true},
		{"plain", "", "", false},
		{"[missing]", "", "", false},
		{"trailing[]", "", "", false},
		{"a[b]c", "", "", false},
	}

	for _, tt := range tests {
		group, parameter, ok := splitGroupedName(tt.in)
		if group != tt.group || parameter != tt.parameter || ok != tt.ok {
			t.Errorf("splitGroupedName(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.in, group, parameter, ok, tt.group, tt.parameter, tt.ok)
		}
	}
}
