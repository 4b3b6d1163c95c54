// Package pipeline provides the core charting pipeline.
//
// This package implements the complete summarize → assemble → render
// pipeline so CLI and library callers share one code path. By
// centralizing this logic, we ensure consistent behavior across all
// entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Summarize: Group posterior samples by parameter and compute point
//     estimates with credible intervals
//  2. Assemble: Build a resolved chart spec (curves, facets, overlays)
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// Summaries are cheap and data-dependent, so only assembled specs and
// rendered artifacts are cached.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Centrality: "median",
//	    Formats:    []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, tbl, nil, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/credplot/credplot/pkg/cache"
	"github.com/credplot/credplot/pkg/chart"
	apperrors "github.com/credplot/credplot/pkg/errors"
	"github.com/credplot/credplot/pkg/summarize"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Library Callers
// =============================================================================

const (
	// DefaultWidth is the default canvas width in inches.
	DefaultWidth = 8.0

	// DefaultHeight is the default canvas height in inches.
	DefaultHeight = 5.0

	// DefaultDPI is the default raster resolution for PNG output.
	DefaultDPI = 150
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the charting pipeline.
// This struct supports JSON serialization for batch configurations.
type Options struct {
	// Summarize options
	Centrality string  `json:"centrality,omitempty"`
	CI         float64 `json:"ci,omitempty"`
	Method     string  `json:"method,omitempty"`
	Strict     bool    `json:"strict,omitempty"`

	// Assemble options
	Kind           string `json:"kind,omitempty"`
	RidgeThreshold int    `json:"ridge_threshold,omitempty"`
	GridSize       int    `json:"grid_size,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Width   float64  `json:"width,omitempty"`  // inches
	Height  float64  `json:"height,omitempty"` // inches
	DPI     int      `json:"dpi,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this pipeline run in logs.
	RunID string

	// Summary is the summarization result (samples, summary table, metadata).
	Summary *summarize.Result

	// Spec is the assembled chart spec.
	Spec *chart.Spec

	// SpecHash is the content hash of the assembled spec.
	SpecHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RowCount       int
	ParameterCount int
	PanelCount     int
	SummarizeTime  time.Duration
	AssembleTime   time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits for each cached pipeline stage. Summaries
// are never cached, so there is no summarize entry.
type CacheInfo struct {
	SpecHit   bool // Whether the assembled spec came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForSummarize(); err != nil {
		return err
	}
	if err := o.ValidateForAssemble(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForSummarize validates and sets defaults for summarization.
func (o *Options) ValidateForSummarize() error {
	summarizeOpts := o.SummarizeOptions()
	if err := summarizeOpts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	o.Centrality = summarizeOpts.Centrality
	o.CI = summarizeOpts.CI
	o.Method = summarizeOpts.Method
	o.applyLoggerDefault()
	return nil
}

// ValidateForAssemble validates and sets defaults for chart assembly.
func (o *Options) ValidateForAssemble() error {
	assembleOpts := o.AssembleOptions()
	if err := assembleOpts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	o.RidgeThreshold = assembleOpts.RidgeThreshold
	o.GridSize = assembleOpts.GridSize
	o.applyLoggerDefault()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.DPI == 0 {
		o.DPI = DefaultDPI
	}
	o.applyLoggerDefault()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

func (o *Options) applyLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SummarizeOptions returns the summarization options for this run.
func (o *Options) SummarizeOptions() summarize.Options {
	return summarize.Options{
		Centrality: o.Centrality,
		CI:         o.CI,
		Method:     o.Method,
		Strict:     o.Strict,
		Logger:     o.Logger,
	}
}

// AssembleOptions returns the chart assembly options for this run.
func (o *Options) AssembleOptions() chart.Options {
	return chart.Options{
		Kind:           o.Kind,
		RidgeThreshold: o.RidgeThreshold,
		GridSize:       o.GridSize,
	}
}

// SpecKeyOpts returns cache key options for spec assembly.
func (o *Options) SpecKeyOpts() cache.SpecKeyOpts {
	return cache.SpecKeyOpts{
		Centrality:     o.Centrality,
		CI:             o.CI,
		Method:         o.Method,
		Strict:         o.Strict,
		Kind:           o.Kind,
		RidgeThreshold: o.RidgeThreshold,
		GridSize:       o.GridSize,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Width:  int(o.Width * 100),
		Height: int(o.Height * 100),
		DPI:    o.DPI,
	}
}
