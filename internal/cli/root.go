package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowlayout/pkg/buildinfo"
	"github.com/matzehuels/flowlayout/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Before any subcommand runs the root command loads the config file, sets
// the log level from --verbose and attaches the logger to the command
// context. With --verbose the pipeline, cache and HTTP hooks log through
// the same logger.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "flowlayout auto-arranges node-editor canvases",
		Long: `flowlayout computes readable, non-overlapping positions for the nodes of an
agent or workflow canvas: left to right by topological layer, parents centered
over their children, cycles broken by feedback edges.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if c.verbose {
				level = LogDebug
				hooks := observability.NewLogHooks(c.Logger)
				observability.SetLayoutHooks(hooks)
				observability.SetCacheHooks(hooks)
				observability.SetHTTPHooks(hooks)
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))

			if err := c.loadConfig(); err != nil {
				return err
			}
			if c.cfgPath != "" {
				c.Logger.Debug("loaded config", "path", c.cfgPath)
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "config file (default: ./flowlayout.toml or ~/.config/flowlayout/config.toml)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable caching")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}
