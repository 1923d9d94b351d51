package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowlayout/pkg/canvas"
	"github.com/matzehuels/flowlayout/pkg/pipeline"
)

// stdio is the file name that stands for stdin or stdout.
const stdio = "-"

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		grid   gridFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [canvas.json]",
		Short: "Position the nodes of a canvas",
		Long: `Position the nodes of a canvas.

The layout command reads a canvas document (nodes and edges, "-" for stdin)
and writes the same canvas with every node positioned. Nodes are placed left
to right by topological layer; parents are centered over their children and
siblings never overlap. Cycles are broken by ignoring their feedback edges.

With --mode grid the edges are ignored and nodes are placed on a plain grid.

Results are cached, so laying out an unchanged canvas again is instant.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeCanvas,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := grid.apply(cmd, c.cfg.Grid)
			opts.Grid = &g
			return c.runLayout(cmd.Context(), args[0], output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", `output file (default: <input>.layout.json, "-" for stdout)`)
	cmd.Flags().StringVar(&opts.Mode, "mode", pipeline.ModeLayered, "layout mode: layered, grid")
	cmd.Flags().IntVar(&opts.Columns, "columns", 0, "grid mode: number of columns (default: near-square)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if a cached layout exists")
	grid.register(cmd)
	completeMode(cmd)

	return cmd
}

// runLayout loads the canvas, lays it out and writes the positioned canvas.
func (c *CLI) runLayout(ctx context.Context, input, output string, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)

	cv, err := readCanvas(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded canvas: %d nodes, %d edges", len(cv.Nodes), len(cv.Edges))

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = logger
	toStdout := output == stdio || (output == "" && input == stdio)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Mode))
	if !toStdout {
		spinner.Start()
	}
	prog := newProgress(logger)
	res, cacheHit, err := runner.LayoutWithCacheInfo(ctx, cv, opts)
	if err != nil {
		if !toStdout {
			spinner.StopWithError("Layout failed")
		}
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Laid out %d nodes", res.Stats.NodeCount), "cached", cacheHit)

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if toStdout {
		return canvas.Write(res.Canvas, os.Stdout)
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath(input) + ".layout.json"
	}
	if err := canvas.WriteFile(res.Canvas, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(res.Stats, cacheHit)
	if len(res.FeedbackEdges) > 0 {
		printWarning("Broke %d cycle(s): %s", len(res.FeedbackEdges), formatEdges(res.FeedbackEdges))
	}
	printNewline()
	printNextStep("Preview", appName+" render "+input)

	return nil
}

// readCanvas reads a canvas document from path, or from stdin for "-".
func readCanvas(path string) (*canvas.Canvas, error) {
	if path == stdio {
		cv, err := canvas.Read(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read canvas from stdin: %w", err)
		}
		return cv, nil
	}
	cv, err := canvas.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load canvas %s: %w", path, err)
	}
	return cv, nil
}

// basePath strips the extension from input. Stdin becomes "canvas".
func basePath(input string) string {
	if input == stdio {
		return "canvas"
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}
