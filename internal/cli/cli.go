// Package cli implements the credplot command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/credplot/credplot/pkg/buildinfo"
	"github.com/credplot/credplot/pkg/cache"
	"github.com/credplot/credplot/pkg/pipeline"
	"github.com/credplot/credplot/pkg/table"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "credplot"

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
	Config *Config
}

// New creates a new CLI instance with a default logger and the user config
// loaded from disk (missing config files fall back to defaults).
func New(w io.Writer, level log.Level) *CLI {
	cfg, err := LoadConfig()
	if err != nil {
		cfg = DefaultConfig()
	}
	c := &CLI{
		Logger: newLogger(w, level),
		Config: cfg,
	}
	if err != nil {
		c.Logger.Warn("ignoring invalid config file", "err", err)
	}
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "credplot",
		Short:        "Credplot turns posterior samples into density charts",
		Long:         `Credplot is a CLI tool for summarizing posterior samples into point estimates with credible intervals and plotting the estimated densities as line or ridge charts.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		// Attach the logger to the command context so subcommands and the
		// packages they call share one logger.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.summarizeCommand())
	root.AddCommand(c.plotCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool, logger *log.Logger) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, logger), nil
}

// newCache selects the cache backend from the user config. The default is
// a file cache under the XDG cache directory; backend = "redis" in the
// [cache] section switches to a shared Redis instance.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.Config.Cache.Backend == CacheBackendRedis {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Config.Cache.RedisAddr,
			Password: c.Config.Cache.RedisPassword,
			DB:       c.Config.Cache.RedisDB,
		})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/credplot/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/credplot/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Input Loading
// =============================================================================

// loadTable reads a sample table from path, picking the codec from the file
// extension (.csv or .json).
func loadTable(path string) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return table.ReadCSVFile(path)
	case ".json":
		return table.ReadTableFile(path)
	default:
		return nil, fmt.Errorf("unsupported input %s (must be .csv or .json)", path)
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions builds pipeline options from the user config.
func (c *CLI) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Centrality: c.Config.Centrality,
		CI:         c.Config.CI,
		Method:     c.Config.Method,
		Kind:       c.Config.Kind,
		Formats:    append([]string(nil), c.Config.Formats...),
		Width:      c.Config.Width,
		Height:     c.Config.Height,
		DPI:        c.Config.DPI,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string, fallback []string) []string {
	if s == "" {
		if len(fallback) > 0 {
			return fallback
		}
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
