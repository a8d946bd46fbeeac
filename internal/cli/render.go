package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/linechart/pkg/linechart/sink"
	"github.com/matzehuels/linechart/pkg/pipeline"
)

// renderFlags holds flag values that override the layout config.
type renderFlags struct {
	formats   string
	output    string
	noCache   bool
	hover     float64
	width     float64
	height    float64
	lineColor string
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [observations]",
		Short: "Render a dataset as a line chart",
		Long: `Render a dataset as a line chart.

The input is a JSON, YAML, TOML or CSV file of (category, value, user)
observations. Values are summed per category and drawn as percentages of
the grand total.

Output formats:
  svg   static chart with the summary strip below it (default)
  html  self-contained page with hover tooltip and brush
  png   raster image (requires rsvg-convert)
  pdf   vector document (requires rsvg-convert)
  json  per-category summaries
  csv   per-category summaries

Layout defaults come from ./linechart.toml when present, or from --config.
Results are cached locally for faster subsequent runs.`,
		Example: `  linechart render usage.csv
  linechart render usage.json -f svg,html -o out/usage
  linechart render usage.yaml --hover 3 -f png --scale 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = pipeline.ParseFormats(flags.formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}

			cfg, err := loadConfig(c.ConfigPath)
			if err != nil {
				return err
			}
			cfg.apply(&opts)

			if cmd.Flags().Changed("hover") {
				opts.Hover = &flags.hover
			}
			if cmd.Flags().Changed("width") {
				opts.Layout.Width = flags.width
			}
			if cmd.Flags().Changed("height") {
				opts.Layout.Height = flags.height
			}
			if flags.lineColor != "" {
				opts.Layout.LineColor = flags.lineColor
			}

			opts.Input = args[0]
			return c.runRender(cmd.Context(), newConsole(cmd.OutOrStdout()), opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), html, png, pdf, json, csv (comma-separated)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().Float64Var(&flags.hover, "hover", 0, "bake a hover state at this category into the output")
	cmd.Flags().Float64Var(&flags.width, "width", 0, "primary chart width")
	cmd.Flags().Float64Var(&flags.height, "height", 0, "primary chart height")
	cmd.Flags().StringVar(&flags.lineColor, "line-color", "", "line stroke colour")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "PNG scale factor (default 2)")
	cmd.Flags().BoolVar(&opts.NoSummary, "no-summary", false, "omit the summary strip from static outputs")
	cmd.Flags().StringVar(&opts.PageTitle, "title", "", "HTML page title")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(pipeline.ValidFormats))
		for f := range pipeline.ValidFormats {
			names = append(names, f)
		}
		slices.Sort(names)
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runRender executes the pipeline and writes each artifact to disk.
func (c *CLI) runRender(ctx context.Context, out console, opts pipeline.Options, flags renderFlags) error {
	opts.Logger = c.Logger
	if err := opts.ValidateForRender(); err != nil {
		return err
	}
	if !sink.Available() {
		formats, skipped := withoutRasterFormats(opts.Formats)
		if len(formats) == 0 {
			return fmt.Errorf("%s output requires rsvg-convert on PATH", strings.Join(skipped, ", "))
		}
		for _, f := range skipped {
			out.warn("Skipping %s: rsvg-convert not found on PATH", f)
		}
		opts.Formats = formats
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(result.Artifacts)))

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, opts.Input, flags.output)
	if err != nil {
		return err
	}

	out.success("Rendered %s", opts.Input)
	out.stats(result.Stats.Observations, result.Stats.Categories, result.CacheInfo.RenderHit)
	for _, p := range paths {
		out.file(p)
	}
	out.nextStep("Explore the hover interactively", appName+" inspect "+opts.Input)
	return nil
}

// writeArtifacts writes artifacts in format order and returns the written paths.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	base := basePath(output, input)

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			return paths, fmt.Errorf("missing %s artifact", format)
		}

		path := base + "." + format
		if len(formats) == 1 && output != "" {
			path = output
		}
		if filepath.Clean(path) == filepath.Clean(input) {
			return paths, fmt.Errorf("%s output would overwrite the input %s; pass --output", format, input)
		}

		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// withoutRasterFormats splits formats into those that render without
// rsvg-convert and those that need it.
func withoutRasterFormats(formats []string) (kept, skipped []string) {
	for _, f := range formats {
		if f == pipeline.FormatPNG || f == pipeline.FormatPDF {
			skipped = append(skipped, f)
			continue
		}
		kept = append(kept, f)
	}
	return kept, skipped
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .html, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
