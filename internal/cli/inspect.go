package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowlayout/pkg/pipeline"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain bool
		grid  gridFlags
	)

	cmd := &cobra.Command{
		Use:   "inspect [canvas.json]",
		Short: "Browse the layers of a canvas layout",
		Long: `Browse the layers of a canvas layout.

The inspect command lays the canvas out and opens an interactive view of its
layers: which nodes share a column, where each one ended up and which edges
were ignored to break cycles. Use --plain to print the view once instead.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeCanvas,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := grid.apply(cmd, c.cfg.Grid)
			return c.runInspect(cmd.Context(), args[0], pipeline.Options{Grid: &g}, plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the layer view without the interactive UI")
	grid.register(cmd)

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, opts pipeline.Options, plain bool) error {
	cv, err := readCanvas(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)
	res, cacheHit, err := runner.LayoutWithCacheInfo(ctx, cv, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	model := NewInspectModel(res)
	if plain {
		model.Height = max(1, len(model.Layers))
		fmt.Print(model.View())
		printStats(res.Stats, cacheHit)
		return nil
	}

	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(os.Stderr))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	return nil
}
