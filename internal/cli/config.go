package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/credplot/credplot/pkg/pipeline"
)

// configFileName is the user config file under the config directory.
const configFileName = "config.toml"

// Cache backends selectable in the config file.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
)

// DefaultRedisAddr is used when the redis backend is selected without an
// explicit address.
const DefaultRedisAddr = "localhost:6379"

// Config holds user preferences that seed the pipeline defaults. Every
// field is optional; zero values fall back to pipeline defaults.
type Config struct {
	Centrality string   `toml:"centrality"`
	CI         float64  `toml:"ci"`
	Method     string   `toml:"method"`
	Kind       string   `toml:"kind"`
	Formats    []string `toml:"formats"`
	Width      float64  `toml:"width"`
	Height     float64  `toml:"height"`
	DPI        int      `toml:"dpi"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the cache backend.
//
//	[cache]
//	backend = "redis"
//	redis_addr = "cache.internal:6379"
type CacheConfig struct {
	Backend       string `toml:"backend"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// DefaultConfig returns an empty config; the pipeline fills in its own
// defaults for unset fields.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig reads the user config file. A missing file is not an error
// and yields the default config.
func LoadConfig() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// validate checks the config against the pipeline's option validation
// and applies cache-backend defaults.
func (c *Config) validate() error {
	opts := pipeline.Options{
		Centrality: c.Centrality,
		CI:         c.CI,
		Method:     c.Method,
		Kind:       c.Kind,
		Formats:    append([]string(nil), c.Formats...),
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	switch c.Cache.Backend {
	case "", CacheBackendFile:
	case CacheBackendRedis:
		if c.Cache.RedisAddr == "" {
			c.Cache.RedisAddr = DefaultRedisAddr
		}
	default:
		return fmt.Errorf("unknown cache backend %q (must be file or redis)", c.Cache.Backend)
	}
	return nil
}

func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// =============================================================================
// Config Command
// =============================================================================

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the active configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return fmt.Errorf("get config path: %w", err)
			}
			if _, err := os.Stat(path); os.IsNotExist(err) {
				printInfo("No config file (using defaults)")
			}
			printKeyValue("file", path)

			opts := c.pipelineOptions()
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			printKeyValue("centrality", opts.Centrality)
			printKeyValue("ci", fmt.Sprintf("%g", opts.CI))
			printKeyValue("method", opts.Method)
			if opts.Kind != "" {
				printKeyValue("kind", opts.Kind)
			} else {
				printKeyValue("kind", "auto")
			}
			printKeyValue("formats", fmt.Sprintf("%v", opts.Formats))
			printKeyValue("size", fmt.Sprintf("%gx%g in", opts.Width, opts.Height))

			backend := c.Config.Cache.Backend
			if backend == "" {
				backend = CacheBackendFile
			}
			printKeyValue("cache", backend)
			if backend == CacheBackendRedis {
				printKeyValue("redis", c.Config.Cache.RedisAddr)
			}
			return nil
		},
	}
	return cmd
}
