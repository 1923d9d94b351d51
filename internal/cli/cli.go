package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowlayout/pkg/cache"
	"github.com/matzehuels/flowlayout/pkg/config"
	"github.com/matzehuels/flowlayout/pkg/layout"
	"github.com/matzehuels/flowlayout/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "flowlayout"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Populated by the root command before any subcommand runs.
	cfg     config.Config
	cfgPath string

	// Persistent flags.
	configFile string
	noCache    bool
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads --config when given, otherwise the first config file
// config.Find locates. No file at all means config.Default.
func (c *CLI) loadConfig() error {
	if c.configFile != "" {
		cfg, err := config.Load(c.configFile)
		if err != nil {
			return err
		}
		c.cfg, c.cfgPath = cfg, c.configFile
		return nil
	}
	cfg, path, err := config.LoadDefault()
	if err != nil {
		return err
	}
	c.cfg, c.cfgPath = cfg, path
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(cc, nil, c.Logger)
	runner.TTL = c.cfg.Cache.TTL
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	switch c.cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.cfg.Cache.RedisAddr,
			Password: c.cfg.Cache.RedisPassword,
			DB:       c.cfg.Cache.RedisDB,
			Prefix:   c.cfg.Cache.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		return rc, nil
	default:
		dir, err := c.cfg.CacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// gridFlags binds the grid options to command flags. Only flags the user
// actually set override the configured grid.
type gridFlags struct {
	opts layout.Options
}

func (g *gridFlags) register(cmd *cobra.Command) {
	d := layout.DefaultOptions()
	cmd.Flags().Float64Var(&g.opts.StartX, "start-x", d.StartX, "x of the first layer")
	cmd.Flags().Float64Var(&g.opts.StartY, "start-y", d.StartY, "y of the first node in the deepest layer")
	cmd.Flags().Float64Var(&g.opts.StepX, "step-x", d.StepX, "horizontal distance between layers")
	cmd.Flags().Float64Var(&g.opts.StepY, "step-y", d.StepY, "vertical distance between siblings")
	cmd.Flags().Float64Var(&g.opts.ParentCenterOffsetUp, "parent-offset", d.ParentCenterOffsetUp, "how far parents sit above the center of their children")
}

// apply returns base with every explicitly set flag applied.
func (g *gridFlags) apply(cmd *cobra.Command, base layout.Options) layout.Options {
	set := cmd.Flags().Changed
	if set("start-x") {
		base.StartX = g.opts.StartX
	}
	if set("start-y") {
		base.StartY = g.opts.StartY
	}
	if set("step-x") {
		base.StepX = g.opts.StepX
	}
	if set("step-y") {
		base.StepY = g.opts.StepY
	}
	if set("parent-offset") {
		base.ParentCenterOffsetUp = g.opts.ParentCenterOffsetUp
	}
	return base
}
