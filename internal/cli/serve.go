package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowlayout/internal/server"
)

// serveCommand creates the serve command for the HTTP auto-layout service.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP auto-layout service",
		Long: `Run the HTTP auto-layout service.

Endpoints:
  POST /v1/layout       canvas in, positioned canvas out
  POST /v1/layout/grid  same, on a plain grid
  POST /v1/render       canvas in, SVG/PNG/DOT preview out
  GET  /healthz
  GET  /version

The service shares the cache configured for the CLI, so a Redis backend lets
several instances reuse each other's layouts. It stops gracefully on SIGINT
or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.cfg.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			runner, err := c.newRunner(ctx)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			printKeyValue("listen", cfg.Addr)
			printKeyValue("cache", c.cacheBackend())
			printNewline()
			c.Logger.Debug("starting server", "addr", cfg.Addr)
			return server.New(runner, cfg, c.cfg.Grid, c.Logger).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

// cacheBackend names the cache in effect, taking --no-cache into account.
func (c *CLI) cacheBackend() string {
	if c.noCache {
		return "none"
	}
	return c.cfg.Cache.Backend
}
