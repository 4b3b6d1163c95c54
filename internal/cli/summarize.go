package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/credplot/credplot/pkg/summarize"
)

// summarizeCommand creates the summarize command.
func (c *CLI) summarizeCommand() *cobra.Command {
	var (
		modelPath string
		output    string
		strict    bool
	)
	opts := c.pipelineOptions()

	cmd := &cobra.Command{
		Use:   "summarize [samples.csv|samples.json]",
		Short: "Summarize posterior samples into point estimates and intervals",
		Long: `Summarize posterior samples into point estimates and intervals.

The summarize command groups the sample table by parameter (and by effects
and component labels when present), computes a point estimate and credible
interval per group, and prints the resulting summary table.

Pass --model to join classification metadata from a fitted model; rows for
parameters the model does not know are dropped with a warning (use --strict
to fail instead).`,
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

			logger := loggerFromContext(cmd.Context())
			summarizeOpts := opts.SummarizeOptions()
			summarizeOpts.Strict = strict
			summarizeOpts.Logger = logger

			prog := newProgress(logger)
			result, err := summarize.Summarize(tbl, model, summarizeOpts)
			if err != nil {
				return fmt.Errorf("summarize: %w", err)
			}
			prog.done(fmt.Sprintf("Summarized %d parameter(s)", len(result.Summary)))

			printSummary(result)

			if output != "" {
				data, err := summarize.MarshalSummary(result.Summary)
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, data, 0644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the summary table as JSON")
	cmd.Flags().StringVarP(&modelPath, "model", "m", "", "model description file (JSON) for classification")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when sample parameters are missing from the model")
	cmd.Flags().StringVar(&opts.Centrality, "centrality", opts.Centrality, "point estimate: median (default), mean, map")
	cmd.Flags().Float64Var(&opts.CI, "ci", opts.CI, "credible interval mass (default 0.95)")
	cmd.Flags().StringVar(&opts.Method, "method", opts.Method, "interval method: eti (default), hdi")

	return cmd
}

// printSummary prints the summary table with lipgloss styling.
func printSummary(result *summarize.Result) {
	fmt.Println(StyleTitle.Render(result.Meta.Title))
	printNewline()

	for _, row := range result.Summary {
		name := row.Parameter
		if row.Effects != "" {
			name += StyleDim.Render(" (" + row.Effects + ")")
		}
		if row.Component != "" {
			name += StyleDim.Render(" [" + row.Component + "]")
		}
		estimate := StyleNumber.Render(fmt.Sprintf("%.4g", row.X)) + " " +
			StyleDim.Render(fmt.Sprintf("[%.4g, %.4g]", row.CILow, row.CIHigh))
		fmt.Println("  " + StyleValue.Render(name) + " " + StyleDim.Render("·") + " " + estimate)
	}
}
