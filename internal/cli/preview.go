package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/credplot/credplot/pkg/chart"
	"github.com/credplot/credplot/pkg/render/term"
	"github.com/credplot/credplot/pkg/summarize"
)

// previewCommand creates the preview command for terminal output.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		modelPath string
		width     int
		height    int
	)
	opts := c.pipelineOptions()

	cmd := &cobra.Command{
		Use:   "preview [samples.csv|samples.json]",
		Short: "Preview posterior densities in the terminal",
		Long: `Preview posterior densities in the terminal.

The preview command summarizes the samples and draws each density curve
as a sparkline, with the point estimate and credible interval printed
underneath. Nothing is written to disk and nothing is cached.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := loadTable(args[0])
			if err != nil {
				return fmt.Errorf("load samples %s: %w", args[0], err)
			}

			var model *summarize.ModelInfo
			if modelPath != "" {
				model, err = summarize.ReadModelInfoFile(modelPath)
				if err != nil {
					return fmt.Errorf("load model %s: %w", modelPath, err)
				}
			}

			summarizeOpts := opts.SummarizeOptions()
			summarizeOpts.Logger = loggerFromContext(cmd.Context())
			result, err := summarize.Summarize(tbl, model, summarizeOpts)
			if err != nil {
				return fmt.Errorf("summarize: %w", err)
			}

			spec, err := chart.Assemble(result, opts.AssembleOptions())
			if err != nil {
				return fmt.Errorf("assemble: %w", err)
			}

			fmt.Print(term.Preview(spec, term.Options{Width: width, Height: height}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "model description file (JSON) for classification")
	cmd.Flags().StringVar(&opts.Centrality, "centrality", opts.Centrality, "point estimate: median (default), mean, map")
	cmd.Flags().Float64Var(&opts.CI, "ci", opts.CI, "credible interval mass (default 0.95)")
	cmd.Flags().StringVar(&opts.Method, "method", opts.Method, "interval method: eti (default), hdi")
	cmd.Flags().StringVar(&opts.Kind, "kind", opts.Kind, "chart kind: line, ridge (default: auto)")
	cmd.Flags().IntVar(&width, "width", term.DefaultWidth, "sparkline width in cells")
	cmd.Flags().IntVar(&height, "height", term.DefaultHeight, "sparkline height in rows")

	return cmd
}
