package config

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"
)

// FromContext loads the file named by --config, applies any scrape, log and
// metrics flags set on c and builds the logger.
func FromContext(c *cli.Context) (*Config, *slog.Logger, error) {
	cfg, err := Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}

	cfg.ApplyFlags(c)
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config: validate flags: %w", err)
	}
	return cfg, NewLogger(cfg.Log, c.Bool("quiet")), nil
}

// ApplyFlags overrides config values with the flags that were set explicitly.
// Flags a command does not define are never set.
func (cfg *Config) ApplyFlags(c *cli.Context) {
	s := &cfg.Scrape
	if c.IsSet("base-url") {
		s.BaseURL = c.String("base-url")
	}
	if c.IsSet("user-agent") {
		s.UserAgent = c.String("user-agent")
	}
	if c.IsSet("delay") {
		s.Delay = c.Duration("delay")
	}
	if c.IsSet("batch-size") {
		s.BatchSize = c.Int("batch-size")
	}
	if c.IsSet("batch-pause") {
		s.BatchPause = c.Duration("batch-pause")
	}
	if c.IsSet("timeout") {
		s.Timeout = c.Duration("timeout")
	}
	if c.IsSet("max-age") {
		s.MaxAge = c.Duration("max-age")
	}
	if c.IsSet("ignore-robots") {
		s.IgnoreRobots = c.Bool("ignore-robots")
	}
	if c.IsSet("skip-warmup") {
		s.SkipWarmup = c.Bool("skip-warmup")
	}
	if c.IsSet("output-dir") {
		s.OutputDir = c.String("output-dir")
	}
	if c.IsSet("mode") {
		s.Mode = c.String("mode")
	}

	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}
	if c.IsSet("db") {
		cfg.DB.Path = c.String("db")
	}
	if c.IsSet("metrics-addr") {
		cfg.Metrics.Addr = c.String("metrics-addr")
	}
}
