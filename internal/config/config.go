// Package config loads patrol.yaml.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"patrol/internal/logging"
)

// Config holds patrol settings. Command-line flags override it.
type Config struct {
	Log    Log    `yaml:"log"`
	Search Search `yaml:"search"`
	Trace  Trace  `yaml:"trace"`
}

// Log selects the log level (trace, debug, info, warn, error) and format
// (console or json).
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Search tunes the obstruction search. Workers below one mean one worker
// per CPU.
type Search struct {
	Workers int `yaml:"workers"`
}

// Trace turns on span export to stderr.
type Trace struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Log: Log{Level: "info", Format: "console"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	if c.Search.Workers < 0 {
		return fmt.Errorf("search workers must not be negative, got %d", c.Search.Workers)
	}
	return nil
}
