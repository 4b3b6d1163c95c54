package summarize

import (
	"sort"

	apperrors "github.com/credplot/credplot/pkg/errors"
	"github.com/credplot/credplot/pkg/stats"
	"github.com/credplot/credplot/pkg/table"
)

// DefaultParameterLabel is assigned to every row of a table that has no
// Parameter column.
const DefaultParameterLabel = "Distribution"

// SummaryRow is one row of the summary table: the point estimate and
// credible-interval bounds for one group of samples.
type SummaryRow struct {
	Parameter string  `json:"parameter"`
	Effects   string  `json:"effects,omitempty"`
	Component string  `json:"component,omitempty"`
	X         float64 `json:"x"`
	CILow     float64 `json:"ci_low"`
	CIHigh    float64 `json:"ci_high"`
}

// Metadata carries the axis, legend and title labels for rendering.
// It is constant for a given summarization call.
type Metadata struct {
	Title       string `json:"title,omitempty"`
	XLabel      string `json:"x_label,omitempty"`
	YLabel      string `json:"y_label,omitempty"`
	LegendTitle string `json:"legend_title,omitempty"`
}

// Result is the structured return of a summarization: the reshaped sample
// table, the derived summary table, and the plot metadata.
type Result struct {
	Samples *table.Table `json:"samples"`
	Summary []SummaryRow `json:"summary"`
	Meta    Metadata     `json:"meta"`
}

// Summarize reshapes a sample table and computes one summary row per group.
//
// The input table is not modified; the returned Samples is a relabeled copy
// with the display ordering applied. model may be nil when no
// effects/component classification is wanted. See the package documentation
// for the grouping and ordering rules.
func Summarize(t *table.Table, model *ModelInfo, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if t == nil || t.Len() == 0 {
		return nil, apperrors.New(apperrors.ErrCodeEmptyInput, "sample table has no rows")
	}

	samples := t.Clone()

	// Tables without a Parameter column summarize as one distribution.
	if !samples.Schema.HasParameter {
		samples.Schema.HasParameter = true
		for i := range samples.Rows {
			samples.Rows[i].Parameter = DefaultParameterLabel
		}
	}

	if model != nil {
		joined, err := joinClassification(samples, model, opts)
		if err != nil {
			return nil, err
		}
		samples = joined
	}

	normalizeGroupedNames(samples)

	summary, err := summaryRows(samples, opts)
	if err != nil {
		return nil, err
	}

	// Display order: reversed first-appearance, applied to both tables so
	// curve and overlay stay index-aligned.
	levels := table.ReverseLevels(table.FirstSeenLevels(samples.Rows))
	samples.Relevel(levels)
	orderSummary(summary, levels)

	return &Result{
		Samples: samples,
		Summary: summary,
		Meta:    defaultMetadata(),
	}, nil
}

// joinClassification left-joins effects/component labels onto the sample
// rows by parameter name.
//
// Rows whose parameter the model cannot classify are dropped with a warning
// in lenient mode, or turned into a RESHAPE error in strict mode. Dropping
// every row is always an error: a summary of nothing is never intended.
func joinClassification(samples *table.Table, model *ModelInfo, opts Options) (*table.Table, error) {
	out := table.New(samples.Schema)
	out.Schema.HasEffects = out.Schema.HasEffects || model.HasEffects()
	out.Schema.HasComponent = out.Schema.HasComponent || model.HasComponents()

	dropped := make(map[string]bool)
	for _, r := range samples.Rows {
		c, ok := model.Classify(r.Parameter)
		if !ok {
			if opts.Strict {
				return nil, apperrors.New(apperrors.ErrCodeReshape,
					"parameter %q has no classification in the model", r.Parameter)
			}
			dropped[r.Parameter] = true
			continue
		}
		if c.Effects != "" {
			r.Effects = c.Effects
		}
		if c.Component != "" {
			r.Component = c.Component
		}
		out.Append(r)
	}

	for name := range dropped {
		opts.Logger.Warn("dropping unclassified parameter", "parameter", name)
	}
	if out.Len() == 0 {
		return nil, apperrors.New(apperrors.ErrCodeReshape,
			"no parameter matched the model classification")
	}
	return out, nil
}

// normalizeGroupedNames splits "group[param]" parameter names into a Group
// label and a clean Parameter label, in place.
func normalizeGroupedNames(t *table.Table) {
	found := false
	for i := range t.Rows {
		group, param, ok := splitGroupedName(t.Rows[i].Parameter)
		if !ok {
			continue
		}
		t.Rows[i].Group = group
		t.Rows[i].Parameter = param
		found = true
	}
	if found {
		t.Schema.HasGroup = true
	}
}

// groupKey identifies one bucket of the fixed-precedence grouping over
// Parameter, Effects and Component.
type groupKey struct {
	parameter string
	effects   string
	component string
}

// summaryRows partitions the table into buckets and computes the centrality
// statistic and credible interval for each. Bucket order is first
// appearance; empty buckets cannot arise from partitioning and are skipped
// by construction.
func summaryRows(t *table.Table, opts Options) ([]SummaryRow, error) {
	buckets := make(map[groupKey][]float64)
	var order []groupKey

	for _, r := range t.Rows {
		key := groupKey{parameter: r.Parameter}
		if t.Schema.HasEffects {
			key.effects = r.Effects
		}
		if t.Schema.HasComponent {
			key.component = r.Component
		}
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], r.X)
	}

	summary := make([]SummaryRow, 0, len(order))
	for _, key := range order {
		xs := buckets[key]

		estimate, err := pointEstimate(xs, opts.Centrality)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err,
				"point estimate for %q", key.parameter)
		}
		low, high, err := interval(xs, opts.CI, opts.Method)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err,
				"credible interval for %q", key.parameter)
		}

		summary = append(summary, SummaryRow{
			Parameter: key.parameter,
			Effects:   key.effects,
			Component: key.component,
			X:         estimate,
			CILow:     low,
			CIHigh:    high,
		})
	}
	return summary, nil
}

// pointEstimate dispatches to the selected centrality statistic.
func pointEstimate(xs []float64, centrality string) (float64, error) {
	switch centrality {
	case apperrors.CentralityMean:
		return stats.Mean(xs)
	case apperrors.CentralityMAP:
		return stats.MAP(xs)
	default:
		return stats.Median(xs)
	}
}

// interval dispatches to the selected credible-interval method.
func interval(xs []float64, mass float64, method string) (low, high float64, err error) {
	if method == apperrors.IntervalHDI {
		return stats.HDI(xs, mass)
	}
	return stats.ETI(xs, mass)
}

// orderSummary stable-sorts summary rows by the display order of their
// parameter, preserving first-seen order of effects/component buckets within
// a parameter.
func orderSummary(summary []SummaryRow, levels []string) {
	idx := table.LevelIndex(levels)
	sort.SliceStable(summary, func(i, j int) bool {
		return idx[summary[i].Parameter] < idx[summary[j].Parameter]
	})
}

// defaultMetadata returns the standard labels for density charts.
func defaultMetadata() Metadata {
	return Metadata{
		Title:       "Estimated Density",
		XLabel:      "Possible parameter values",
		YLabel:      "Density",
		LegendTitle: "Parameter",
	}
}
