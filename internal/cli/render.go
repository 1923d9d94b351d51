package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowlayout/pkg/pipeline"
	"github.com/matzehuels/flowlayout/pkg/render"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		grid       gridFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [canvas.json]",
		Short: "Lay out a canvas and draw a preview",
		Long: `Lay out a canvas and draw a preview.

The render command runs the same layout as 'layout' and draws the result with
Graphviz, every node pinned at its computed position. Feedback edges (the
edges ignored to break cycles) are drawn dashed.

Formats: svg (default), png, dot. Several formats can be given comma-separated.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeCanvas,
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := validateFormats(formats); err != nil {
				return err
			}
			g := grid.apply(cmd, c.cfg.Grid)
			opts.Grid = &g
			return c.runRender(cmd.Context(), args[0], output, formats, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", `output file (single format) or base path (multiple), "-" for stdout`)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot (comma-separated)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", render.DefaultScale, "points per canvas unit")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show node type and data in the preview")
	cmd.Flags().StringVar(&opts.Mode, "mode", pipeline.ModeLayered, "layout mode: layered, grid")
	cmd.Flags().IntVar(&opts.Columns, "columns", 0, "grid mode: number of columns (default: near-square)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached layouts and previews")
	grid.register(cmd)
	completeMode(cmd)
	_ = cmd.RegisterFlagCompletionFunc("format",
		cobra.FixedCompletions([]string{render.FormatSVG, render.FormatPNG, render.FormatDOT}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// parseFormats splits the --format flag. Empty means svg.
func parseFormats(s string) []string {
	if s == "" {
		return []string{render.FormatSVG}
	}
	return strings.Split(s, ",")
}

func validateFormats(formats []string) error {
	for _, f := range formats {
		if err := render.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// outputPath picks the file a format is written to. A single format goes to
// output as given; several formats share output as a base path.
func outputPath(output, input, format string, formats int) string {
	if output == "" {
		return basePath(input) + "." + format
	}
	if formats == 1 {
		return output
	}
	ext := filepath.Ext(output)
	if render.ValidFormats[strings.TrimPrefix(ext, ".")] {
		output = strings.TrimSuffix(output, ext)
	}
	return output + "." + format
}

// runRender lays the canvas out once and renders it in every format.
func (c *CLI) runRender(ctx context.Context, input, output string, formats []string, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	if output == stdio && len(formats) > 1 {
		return fmt.Errorf("cannot write %d formats to stdout", len(formats))
	}

	cv, err := readCanvas(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = logger
	res, layoutHit, err := runner.LayoutWithCacheInfo(ctx, cv, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	logger.Debugf("Layout: %d layers, %d feedback edges (cached: %v)", res.Stats.LayerCount, res.Stats.FeedbackCount, layoutHit)

	var written []string
	for _, format := range formats {
		opts.Format = format
		prog := newProgress(logger)
		data, hit, err := runner.RenderWithCacheInfo(ctx, res, opts)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		prog.done("Rendered "+format, "bytes", len(data), "cached", hit)

		path := outputPath(output, input, format, len(formats))
		if err := writeOutput(path, data); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		if path != stdio {
			written = append(written, path)
		}
	}

	if len(written) == 0 {
		return nil
	}
	printSuccess("Render complete")
	for _, p := range written {
		printFile(p)
	}
	printStats(res.Stats, layoutHit)
	return nil
}

// writeOutput writes data to path, or to stdout for "-".
func writeOutput(path string, data []byte) error {
	if path == stdio {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
