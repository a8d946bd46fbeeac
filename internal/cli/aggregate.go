package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/linechart/pkg/dataset"
	"github.com/matzehuels/linechart/pkg/errors"
	chartio "github.com/matzehuels/linechart/pkg/io"
	"github.com/matzehuels/linechart/pkg/pipeline"
)

// Summary output formats for the aggregate command.
const (
	summaryTableFormat = "table"
	summaryJSONFormat  = "json"
	summaryCSVFormat   = "csv"
)

// aggregateCommand creates the aggregate command.
func (c *CLI) aggregateCommand() *cobra.Command {
	var (
		format  string
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "aggregate [observations]",
		Short: "Print per-category percentages and users",
		Long: `Aggregate observations into one row per category.

Each row holds the category, its share of the grand total as a percentage
and the users that contributed to it, in input order. Rows are sorted by
ascending category.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case summaryTableFormat, summaryJSONFormat, summaryCSVFormat:
			default:
				return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be table, json or csv)", format)
			}

			summaries, err := c.runAggregate(cmd.Context(), args[0], noCache)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			return writeSummaries(w, summaries, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", summaryTableFormat, "output format: table, json, csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{summaryTableFormat, summaryJSONFormat, summaryCSVFormat}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// runAggregate loads and aggregates the dataset at input.
func (c *CLI) runAggregate(ctx context.Context, input string, noCache bool) ([]dataset.CategorySummary, error) {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	obs, err := runner.Load(pipeline.Options{Input: input})
	if err != nil {
		return nil, err
	}

	summaries, hit, err := runner.AggregateWithCacheInfo(ctx, obs, false)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("aggregated", "observations", len(obs), "categories", len(summaries), "cached", hit)
	return summaries, nil
}

// writeSummaries writes summaries to w in the named format.
func writeSummaries(w io.Writer, summaries []dataset.CategorySummary, format string) error {
	switch format {
	case summaryJSONFormat:
		return chartio.WriteJSON(summaries, w)
	case summaryCSVFormat:
		return chartio.WriteCSV(summaries, w)
	default:
		newConsole(w).summaries(summaries)
		return nil
	}
}
