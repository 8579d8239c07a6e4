// Package models defines data structures for configuration and parsing.
package models

import "time"

// ScrapeConfig holds runtime configuration for a scrape run.
// Values come from the config file and environment, then CLI flags on top.
// Booleans default to false, so they are phrased as opt-outs.
type ScrapeConfig struct {
	BaseURL      string        `yaml:"base_url" env:"LXS_BASE_URL" env-default:"https://en.wiktionary.org/wiki/"`
	UserAgent    string        `yaml:"user_agent" env:"LXS_USER_AGENT" env-default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"`
	Delay        time.Duration `yaml:"delay" env:"LXS_DELAY" env-default:"1500ms"`
	BatchSize    int           `yaml:"batch_size" env:"LXS_BATCH_SIZE" env-default:"50"`
	BatchPause   time.Duration `yaml:"batch_pause" env:"LXS_BATCH_PAUSE" env-default:"5s"`
	Timeout      time.Duration `yaml:"timeout" env:"LXS_TIMEOUT" env-default:"15s"`
	MaxAge       time.Duration `yaml:"max_age" env:"LXS_MAX_AGE" env-default:"168h"`
	IgnoreRobots bool          `yaml:"ignore_robots" env:"LXS_IGNORE_ROBOTS"`
	SkipWarmup   bool          `yaml:"skip_warmup" env:"LXS_SKIP_WARMUP"`
	OutputDir    string        `yaml:"output_dir" env:"LXS_OUTPUT_DIR" env-default:"lxs-results"`
	Mode         string        `yaml:"mode" env:"LXS_MODE" env-default:"senses"`
}
