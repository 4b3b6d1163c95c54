package chart

import (
	apperrors "github.com/credplot/credplot/pkg/errors"
	"github.com/credplot/credplot/pkg/stats"
	"github.com/credplot/credplot/pkg/summarize"
	"github.com/credplot/credplot/pkg/table"
)

// Default assembly values.
const (
	// DefaultRidgeThreshold is the parameter count at which the automatic
	// kind selection switches from overlaid lines to ridges.
	DefaultRidgeThreshold = 4

	// DefaultGridSize is the number of points per synthesized density curve.
	DefaultGridSize = stats.DefaultGridSize

	// ridgeSpacing is the vertical distance between ridge baselines, in
	// units of the normalized curve height.
	ridgeSpacing = 1.2
)

// Options configures chart assembly.
type Options struct {
	// Kind forces the chart kind ("line" or "ridge"). Empty selects
	// automatically from the parameter count.
	Kind string `json:"kind,omitempty"`

	// RidgeThreshold is the parameter count at which automatic selection
	// switches to ridges. Defaults to DefaultRidgeThreshold.
	RidgeThreshold int `json:"ridge_threshold,omitempty"`

	// GridSize is the number of points for synthesized density curves.
	GridSize int `json:"grid_size,omitempty"`
}

// ValidateAndSetDefaults checks option values and applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Kind != "" && !ValidKinds[o.Kind] {
		return apperrors.New(apperrors.ErrCodeInvalidKind,
			"unknown chart kind %q (must be one of: line, ridge)", o.Kind)
	}
	if o.RidgeThreshold == 0 {
		o.RidgeThreshold = DefaultRidgeThreshold
	}
	if o.GridSize == 0 {
		o.GridSize = DefaultGridSize
	}
	return nil
}

// Assemble builds a chart spec from a summarization result.
//
// The shape of the chart follows the shape of the data: effects labels
// produce facet rows, component labels facet columns, and the parameter
// count decides between overlaid curves and ridges unless opts.Kind forces
// one. Curves come from the table's density column when present and are
// synthesized by KDE otherwise.
func Assemble(res *summarize.Result, opts Options) (*Spec, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if res == nil || res.Samples == nil || res.Samples.Len() == 0 {
		return nil, apperrors.New(apperrors.ErrCodeEmptyInput, "nothing to assemble")
	}

	samples := res.Samples
	levels := samples.Levels
	if levels == nil {
		levels = table.ReverseLevels(table.FirstSeenLevels(samples.Rows))
	}

	kind := opts.Kind
	if kind == "" {
		if len(levels) >= opts.RidgeThreshold {
			kind = KindRidge
		} else {
			kind = KindLine
		}
	}

	spec := &Spec{
		Kind:        kind,
		Title:       res.Meta.Title,
		XLabel:      res.Meta.XLabel,
		YLabel:      res.Meta.YLabel,
		LegendTitle: res.Meta.LegendTitle,
	}

	rowLabels, colLabels := facetLabels(samples)
	spec.Rows = len(rowLabels)
	spec.Cols = len(colLabels)
	if samples.Schema.HasEffects {
		spec.FacetRows = "effects"
	}
	if samples.Schema.HasComponent {
		spec.FacetCols = "component"
	}

	overlay := summaryIndex(res.Summary)

	for ri, rowLabel := range rowLabels {
		for ci, colLabel := range colLabels {
			cell := samples.Filter(func(r table.Row) bool {
				return (!samples.Schema.HasEffects || r.Effects == rowLabel) &&
					(!samples.Schema.HasComponent || r.Component == colLabel)
			})
			if cell.Len() == 0 {
				continue // facet combination absent from the data
			}

			panel := Panel{Row: ri, Col: ci, RowLabel: rowLabel, ColLabel: colLabel}
			// Ridges stack bottom-up, so the first display level sits on the
			// lowest baseline.
			base := 0.0
			for _, level := range levels {
				sub := cell.Filter(func(r table.Row) bool { return r.Parameter == level })
				if sub.Len() == 0 {
					continue
				}

				series, err := buildSeries(sub, level, kind, base, opts.GridSize)
				if err != nil {
					return nil, err
				}
				if row, ok := overlay[overlayKey{level, rowLabel, colLabel,
					samples.Schema.HasEffects, samples.Schema.HasComponent}]; ok {
					series.Estimate = Marker{X: row.X, CILow: row.CILow, CIHigh: row.CIHigh}
					series.Band = bandPoints(series.Curve, row.CILow, row.CIHigh)
				}

				panel.Series = append(panel.Series, series)
				if kind == KindRidge {
					base += ridgeSpacing
				}
			}
			spec.Panels = append(spec.Panels, panel)
		}
	}

	return spec, nil
}

// facetLabels returns the facet row and column labels in first-appearance
// order. Absent grouping columns yield a single unlabeled row or column.
func facetLabels(t *table.Table) (rows, cols []string) {
	if t.Schema.HasEffects {
		seen := make(map[string]bool)
		for _, r := range t.Rows {
			if !seen[r.Effects] {
				seen[r.Effects] = true
				rows = append(rows, r.Effects)
			}
		}
	} else {
		rows = []string{""}
	}
	if t.Schema.HasComponent {
		seen := make(map[string]bool)
		for _, r := range t.Rows {
			if !seen[r.Component] {
				seen[r.Component] = true
				cols = append(cols, r.Component)
			}
		}
	} else {
		cols = []string{""}
	}
	return rows, cols
}

// overlayKey addresses a summary row from a panel cell.
type overlayKey struct {
	parameter     string
	effects       string
	component     string
	withEffects   bool
	withComponent bool
}

func summaryIndex(summary []summarize.SummaryRow) map[overlayKey]summarize.SummaryRow {
	idx := make(map[overlayKey]summarize.SummaryRow, len(summary))
	for _, row := range summary {
		// Index under every addressing mode so panels can look up with or
		// without facet labels.
		for _, we := range []bool{false, true} {
			for _, wc := range []bool{false, true} {
				key := overlayKey{parameter: row.Parameter, withEffects: we, withComponent: wc}
				if we {
					key.effects = row.Effects
				}
				if wc {
					key.component = row.Component
				}
				idx[key] = row
			}
		}
	}
	return idx
}

// buildSeries produces the density curve for one parameter. Tables with a
// density column use it directly; sample tables get a KDE curve. Ridge
// charts normalize the curve height to 1 and lift it onto its baseline.
func buildSeries(sub *table.Table, parameter, kind string, base float64, gridSize int) (Series, error) {
	series := Series{Parameter: parameter, Baseline: base}
	if sub.Len() > 0 {
		series.Group = sub.Rows[0].Group
	}

	var curve []Point
	if sub.Schema.HasY {
		curve = make([]Point, sub.Len())
		for i, r := range sub.Rows {
			curve[i] = Point{X: r.X, Y: r.Y}
		}
	} else {
		kde, err := stats.Estimate(sub.XValues(), gridSize)
		if err != nil {
			return Series{}, apperrors.Wrap(apperrors.ErrCodeInternal, err,
				"density curve for %q", parameter)
		}
		curve = make([]Point, len(kde.X))
		for i := range kde.X {
			curve[i] = Point{X: kde.X[i], Y: kde.Density[i]}
		}
	}

	if kind == KindRidge {
		peak := 0.0
		for _, p := range curve {
			if p.Y > peak {
				peak = p.Y
			}
		}
		if peak > 0 {
			for i := range curve {
				curve[i].Y = curve[i].Y/peak + base
			}
		}
	}

	series.Curve = curve
	return series, nil
}

// bandPoints extracts the portion of the curve inside [low, high] for the
// filled interval ribbon.
func bandPoints(curve []Point, low, high float64) []Point {
	var band []Point
	for _, p := range curve {
		if p.X >= low && p.X <= high {
			band = append(band, p)
		}
	}
	return band
}
