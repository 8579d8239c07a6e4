package config

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/lexicon-scraper/models"
)

// Validate checks the loaded values. Load calls it automatically; call it
// again after applying flag overrides.
func (c *Config) Validate() error {
	s := c.Scrape
	if s.BaseURL == "" {
		return fmt.Errorf("scrape.base_url must be set")
	}
	if s.Delay <= 0 {
		return fmt.Errorf("scrape.delay must be > 0 (got %s)", s.Delay)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("scrape.timeout must be > 0 (got %s)", s.Timeout)
	}
	if s.BatchSize < 0 {
		return fmt.Errorf("scrape.batch_size must be >= 0 (got %d)", s.BatchSize)
	}
	if s.BatchPause < 0 {
		return fmt.Errorf("scrape.batch_pause must be >= 0 (got %s)", s.BatchPause)
	}
	if _, err := models.ResolveParseMode(s.Mode); err != nil {
		return fmt.Errorf("scrape.mode: %w", err)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}
	return nil
}
