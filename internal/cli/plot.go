package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/credplot/credplot/pkg/pipeline"
	"github.com/credplot/credplot/pkg/summarize"
)

// plotCommand creates the plot command for the full pipeline.
func (c *CLI) plotCommand() *cobra.Command {
	var (
		formatsStr string
		modelPath  string
		output     string
		strict     bool
		noCache    bool
	)
	opts := c.pipelineOptions()

	cmd := &cobra.Command{
		Use:   "plot [samples.csv|samples.json]",
		Short: "Plot posterior densities with credible intervals",
		Long: `Plot posterior densities with credible intervals.

The plot command runs the complete pipeline: it summarizes the sample
table, assembles a chart spec (line overlay or ridges, with facet rows
and columns from effects and component labels), and renders the chart
in the requested formats.

Charts with four or more parameters switch to ridges automatically;
force a kind with --kind. Assembled specs and rendered artifacts are
cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr, opts.Formats)
			opts.Strict = strict
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runPlot(cmd.Context(), args[0], modelPath, opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "model description file (JSON) for classification")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	// Summarize flags
	cmd.Flags().StringVar(&opts.Centrality, "centrality", opts.Centrality, "point estimate: median (default), mean, map")
	cmd.Flags().Float64Var(&opts.CI, "ci", opts.CI, "credible interval mass (default 0.95)")
	cmd.Flags().StringVar(&opts.Method, "method", opts.Method, "interval method: eti (default), hdi")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when sample parameters are missing from the model")

	// Assemble flags
	cmd.Flags().StringVar(&opts.Kind, "kind", opts.Kind, "chart kind: line, ridge (default: auto)")
	cmd.Flags().IntVar(&opts.RidgeThreshold, "ridge-threshold", opts.RidgeThreshold, "parameter count that switches auto kind to ridges")
	cmd.Flags().IntVar(&opts.GridSize, "grid-size", opts.GridSize, "points per density curve")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "canvas width in inches")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "canvas height in inches")
	cmd.Flags().IntVar(&opts.DPI, "dpi", opts.DPI, "raster resolution for png output")

	return cmd
}

// runPlot loads the inputs and executes the pipeline.
func (c *CLI) runPlot(ctx context.Context, input, modelPath string, opts pipeline.Options, output string, noCache bool) error {
	tbl, err := loadTable(input)
	if err != nil {
		return fmt.Errorf("load samples %s: %w", input, err)
	}

	var model *summarize.ModelInfo
	if modelPath != "" {
		model, err = summarize.ReadModelInfoFile(modelPath)
		if err != nil {
			return fmt.Errorf("load model %s: %w", modelPath, err)
		}
	}

	logger := loggerFromContext(ctx)
	runner, err := c.newRunner(ctx, noCache, logger)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = logger

	spinner := newSpinnerWithContext(ctx, "Plotting densities...")
	spinner.Start()
	prog := newProgress(logger)

	result, err := runner.Execute(ctx, tbl, model, opts)
	if err != nil {
		spinner.StopWithError("Plot failed")
		return fmt.Errorf("plot: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

	printSuccess("Plotted %s chart", result.Spec.Kind)
	printPlotStats(result)

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  result.CacheInfo.RenderHit,
	})
}

// printPlotStats prints run statistics on a single line.
func printPlotStats(result *pipeline.Result) {
	var parts []string
	parts = append(parts, fmt.Sprintf("%d rows", result.Stats.RowCount))
	parts = append(parts, fmt.Sprintf("%d parameters", result.Stats.ParameterCount))
	if result.Stats.PanelCount > 1 {
		parts = append(parts, fmt.Sprintf("%d panels", result.Stats.PanelCount))
	}

	status := iconFresh
	statusStyle := styleComputed
	if result.CacheInfo.RenderHit {
		status = iconCached
		statusStyle = styleCached
	}
	parts = append(parts, statusStyle.Render(status))

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
}

// writeArtifacts writes each rendered format to disk. With a single format
// the output flag names the file directly; with several it acts as a base
// path and each format gets its own extension.
func writeArtifacts(p artifactWriteParams) error {
	if len(p.formats) == 1 {
		format := p.formats[0]
		path := p.output
		if path == "" {
			path = artifactBasePath("", p.input) + "." + format
		}
		return writeArtifact(path, p.artifacts[format])
	}

	base := artifactBasePath(p.output, p.input)
	for _, format := range p.formats {
		if err := writeArtifact(base+"."+format, p.artifacts[format]); err != nil {
			return err
		}
	}
	return nil
}

func writeArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}

// artifactBasePath derives the base output path from the output and input
// file paths. A format extension on the output path is stripped so all
// formats share the base.
func artifactBasePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
