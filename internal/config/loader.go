package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	// DefaultPath is read when present and no path was given.
	DefaultPath = "lxs.yaml"
	// PathEnv names the config file when no path was given.
	PathEnv = "LXS_CONFIG"
	DotEnv  = ".env"
)

// Load reads configuration. Priority: ENV > YAML > defaults.
// The file is path, else $LXS_CONFIG, else ./lxs.yaml if it exists.
// An explicitly named file that does not exist is an error.
// Variables from ./.env are loaded first without overriding the environment.
func Load(path string) (*Config, error) {
	if err := LoadDotEnv(DotEnv); err != nil {
		return nil, err
	}

	explicitPath := path != ""
	if !explicitPath {
		path = os.Getenv(PathEnv)
		explicitPath = path != ""
	}
	if !explicitPath {
		path = DefaultPath
	}

	var cfg Config
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// LoadDotEnv loads path into the environment if it exists.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}
