package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gonum.org/v1/plot/vg"

	"github.com/credplot/credplot/pkg/cache"
	"github.com/credplot/credplot/pkg/chart"
	"github.com/credplot/credplot/pkg/observability"
	"github.com/credplot/credplot/pkg/render"
	"github.com/credplot/credplot/pkg/summarize"
	"github.com/credplot/credplot/pkg/table"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Close releases the cache backend.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Execute runs the complete summarize → assemble → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, tbl *table.Table, model *summarize.ModelInfo, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID:     uuid.New().String(),
		Artifacts: make(map[string][]byte),
	}
	logger := r.Logger.With("run_id", result.RunID)

	// Stage 1: Summarize (never cached - cheap and data-dependent)
	summarizeStart := time.Now()
	rowCount := 0
	if tbl != nil {
		rowCount = tbl.Len()
	}
	observability.Pipeline().OnSummarizeStart(ctx, rowCount)
	summary, err := summarize.Summarize(tbl, model, opts.SummarizeOptions())
	result.Stats.SummarizeTime = time.Since(summarizeStart)
	observability.Pipeline().OnSummarizeComplete(ctx, summaryParams(summary), result.Stats.SummarizeTime, err)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	result.Summary = summary
	result.Stats.RowCount = rowCount
	result.Stats.ParameterCount = summaryParams(summary)

	logger.Info("summarized samples",
		"rows", rowCount,
		"parameters", result.Stats.ParameterCount,
		"duration", result.Stats.SummarizeTime)

	// Stage 2: Assemble
	assembleStart := time.Now()
	spec, specHit, err := r.AssembleWithCacheInfo(ctx, summary, opts)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	result.Spec = spec
	result.Stats.AssembleTime = time.Since(assembleStart)
	result.Stats.PanelCount = len(spec.Panels)
	result.CacheInfo.SpecHit = specHit

	// Compute spec hash for cache keys and downstream consumers
	if specData, err := chart.MarshalSpec(spec); err == nil {
		result.SpecHash = cache.Hash(specData)
	}

	logger.Info("assembled chart",
		"kind", spec.Kind,
		"panels", result.Stats.PanelCount,
		"duration", result.Stats.AssembleTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, spec, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// AssembleWithCacheInfo assembles a chart spec with caching and returns cache hit info.
func (r *Runner) AssembleWithCacheInfo(ctx context.Context, summary *summarize.Result, opts Options) (*chart.Spec, bool, error) {
	if err := opts.ValidateForAssemble(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from the releveled samples
	tableData, err := table.MarshalTable(summary.Samples)
	if err != nil {
		return nil, false, fmt.Errorf("serialize samples for cache key: %w", err)
	}
	cacheKey := r.Keyer.SpecKey(cache.Hash(tableData), opts.SpecKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.cacheGet(ctx, cacheKey); err == nil && hit {
			if cached, err := chart.UnmarshalSpec(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "spec")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to reassemble
		}
		observability.Cache().OnCacheMiss(ctx, "spec")
	}

	observability.Pipeline().OnAssembleStart(ctx, opts.Kind)
	start := time.Now()
	spec, err := chart.Assemble(summary, opts.AssembleOptions())
	observability.Pipeline().OnAssembleComplete(ctx, opts.Kind, specPanels(spec), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := chart.MarshalSpec(spec); err == nil {
		if r.cacheSet(ctx, cacheKey, data, cache.TTLSpec) == nil {
			observability.Cache().OnCacheSet(ctx, "spec", len(data))
		}
	}

	return spec, false, nil // Cache miss
}

// Assemble is a convenience wrapper that calls AssembleWithCacheInfo and discards the cache hit info.
func (r *Runner) Assemble(ctx context.Context, summary *summarize.Result, opts Options) (*chart.Spec, error) {
	spec, _, err := r.AssembleWithCacheInfo(ctx, summary, opts)
	return spec, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, spec *chart.Spec, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from spec data
	specData, err := chart.MarshalSpec(spec)
	if err != nil {
		return nil, false, fmt.Errorf("serialize spec for cache key: %w", err)
	}
	specHash := cache.Hash(specData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(specHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.cacheGet(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := renderFormats(spec, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(specHash, opts.ArtifactKeyOpts(format))
		if r.cacheSet(ctx, cacheKey, data, cache.TTLArtifact) == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, spec *chart.Spec, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, spec, opts)
	return artifacts, err
}

// renderFormats renders the spec in every requested format.
func renderFormats(spec *chart.Spec, opts Options) (map[string][]byte, error) {
	sizeOpt := render.WithSize(vgInches(opts.Width), vgInches(opts.Height))

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error
		switch format {
		case FormatSVG:
			data, err = render.RenderSVG(spec, sizeOpt)
		case FormatPNG:
			data, err = render.RenderPNG(spec, sizeOpt, render.WithDPI(opts.DPI))
		case FormatPDF:
			data, err = render.RenderPDF(spec, sizeOpt)
		case FormatJSON:
			data, err = chart.MarshalSpec(spec)
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// cacheGet reads a cache key, retrying transient backend failures. Backends
// mark those with cache.Retryable (the Redis store does for every network
// error); local backends fail at most once.
func (r *Runner) cacheGet(ctx context.Context, key string) (data []byte, hit bool, err error) {
	err = cache.RetryWithBackoff(ctx, func() error {
		var getErr error
		data, hit, getErr = r.Cache.Get(ctx, key)
		return getErr
	})
	return data, hit, err
}

// cacheSet writes a cache entry, retrying transient backend failures.
func (r *Runner) cacheSet(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return cache.RetryWithBackoff(ctx, func() error {
		return r.Cache.Set(ctx, key, data, ttl)
	})
}

// applyLogger injects the runner's logger into options that don't carry one.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func vgInches(inches float64) vg.Length {
	return vg.Length(inches) * vg.Inch
}

func summaryParams(summary *summarize.Result) int {
	if summary == nil {
		return 0
	}
	return len(summary.Summary)
}

func specPanels(spec *chart.Spec) int {
	if spec == nil {
		return 0
	}
	return len(spec.Panels)
}
