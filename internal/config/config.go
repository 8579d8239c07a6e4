// Package config loads lxs settings from a YAML file, the environment and
// env-default tags, in that order of increasing priority for the environment.
package config

import "github.com/dtnitsch/lexicon-scraper/models"

type Config struct {
	Scrape  models.ScrapeConfig `yaml:"scrape"`
	Log     LogConfig           `yaml:"log"`
	DB      DBConfig            `yaml:"db"`
	Metrics MetricsConfig       `yaml:"metrics"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LXS_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LXS_LOG_FORMAT" env-default:"json"`
}

// DBConfig.Path empty means the database next to the binary.
type DBConfig struct {
	Path string `yaml:"path" env:"LXS_DB_PATH"`
}

// MetricsConfig.Addr empty disables the /metrics listener.
type MetricsConfig struct {
	Addr string `yaml:"addr" env:"LXS_METRICS_ADDR"`
}
