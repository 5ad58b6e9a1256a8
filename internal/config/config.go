// Package config loads optional exporter settings from a YAML file.
// Every field has a flag counterpart on the CLI; flags win over file
// values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dbconvert/sqlite2mysql/internal/logging"
)

// Config holds exporter settings.
type Config struct {
	// Source is the path to the SQLite database file.
	Source string `yaml:"source"`

	// Output is the path the dump file is written to.
	Output string `yaml:"output"`

	// ExcludeTables lists user tables to leave out of the dump
	// (e.g. a migration bookkeeping table).
	ExcludeTables []string `yaml:"exclude_tables"`

	// Progress enables a per-table progress bar on stderr.
	Progress bool `yaml:"progress"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogFormat is "text" or "json".
	LogFormat string `yaml:"log_format"`
}

// Default returns a config with usable defaults applied.
func Default() *Config {
	return &Config{
		Output:    "dump.sql",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads a YAML config file and applies defaults for anything left
// unset. A missing file is not an error: the tool runs fine on flags
// alone.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values that have a closed domain.
func (c *Config) Validate() error {
	if c.LogLevel != "" {
		if _, err := logging.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("config: unknown log format %q (want text or json)", c.LogFormat)
	}
	return nil
}
