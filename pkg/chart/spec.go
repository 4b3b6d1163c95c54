package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Chart kinds.
const (
	// KindLine overlays all density curves on a shared baseline.
	KindLine = "line"
	// KindRidge offsets each curve onto its own baseline, stacked bottom-up
	// in display order.
	KindRidge = "ridge"
)

// ValidKinds is the set of supported chart kinds.
var ValidKinds = map[string]bool{
	KindLine:  true,
	KindRidge: true,
}

// =============================================================================
// Spec - Resolved Chart Description
// =============================================================================

// Spec is a fully resolved chart specification.
//
// Panels form a facet grid addressed by (Row, Col); a chart without faceting
// has a single panel at (0, 0). Within a panel, series appear in display
// order (bottom ridge first for ridge charts).
type Spec struct {
	Kind string `json:"kind"`

	// Labels
	Title       string `json:"title,omitempty"`
	XLabel      string `json:"x_label,omitempty"`
	YLabel      string `json:"y_label,omitempty"`
	LegendTitle string `json:"legend_title,omitempty"`

	// Facet grid dimensions and the grouping columns they came from.
	FacetRows string  `json:"facet_rows,omitempty"` // e.g. "effects"
	FacetCols string  `json:"facet_cols,omitempty"` // e.g. "component"
	Rows      int     `json:"rows"`
	Cols      int     `json:"cols"`
	Panels    []Panel `json:"panels"`
}

// Panel is one cell of the facet grid.
type Panel struct {
	Row      int      `json:"row"`
	Col      int      `json:"col"`
	RowLabel string   `json:"row_label,omitempty"`
	ColLabel string   `json:"col_label,omitempty"`
	Series   []Series `json:"series"`
}

// Series is one parameter's density curve with its summary overlay.
type Series struct {
	Parameter string `json:"parameter"`
	Group     string `json:"group,omitempty"`

	// Baseline is the y offset of the curve (nonzero only for ridge charts).
	Baseline float64 `json:"baseline,omitempty"`

	// Curve holds the full density curve; Band the portion inside the
	// credible interval, used for the filled ribbon.
	Curve []Point `json:"curve"`
	Band  []Point `json:"band,omitempty"`

	// Estimate is the point-estimate overlay.
	Estimate Marker `json:"estimate"`
}

// Point is one curve sample.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Marker is the point estimate with its credible-interval bounds.
type Marker struct {
	X      float64 `json:"x"`
	CILow  float64 `json:"ci_low"`
	CIHigh float64 `json:"ci_high"`
}

// IsRidge returns true for ridge charts.
func (s *Spec) IsRidge() bool { return s.Kind == KindRidge }

// IsLine returns true for overlaid line charts.
func (s *Spec) IsLine() bool { return s.Kind == KindLine }

// PanelAt returns the panel at the given grid cell, or nil.
func (s *Spec) PanelAt(row, col int) *Panel {
	for i := range s.Panels {
		if s.Panels[i].Row == row && s.Panels[i].Col == col {
			return &s.Panels[i]
		}
	}
	return nil
}

// =============================================================================
// Spec Serialization API
// =============================================================================

// MarshalSpec converts a spec to JSON bytes.
func MarshalSpec(s *Spec) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeSpecTo(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalSpec decodes JSON bytes into a spec.
func UnmarshalSpec(data []byte) (*Spec, error) {
	return readSpecFrom(bytes.NewReader(data))
}

// WriteSpecFile writes a spec to a JSON file.
// The file is created with 0644 permissions.
func WriteSpecFile(s *Spec, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeSpecTo(s, f)
}

// WriteSpec writes a spec as JSON to an io.Writer.
func WriteSpec(s *Spec, w io.Writer) error {
	return writeSpecTo(s, w)
}

// ReadSpecFile reads a JSON file and returns the decoded spec.
func ReadSpecFile(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readSpecFrom(f)
}

// ReadSpec decodes a JSON spec from an io.Reader.
func ReadSpec(r io.Reader) (*Spec, error) {
	return readSpecFrom(r)
}

func writeSpecTo(s *Spec, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readSpecFrom(r io.Reader) (*Spec, error) {
	var s Spec
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if s.Kind != "" && !ValidKinds[s.Kind] {
		return nil, fmt.Errorf("unknown chart kind %q", s.Kind)
	}
	return &s, nil
}
