// Package config loads catalog settings from an optional YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultDatabase is the local emulator database used when nothing else is
// configured.
const DefaultDatabase = "projects/test-project/instances/dev-instance/databases/catalog-db"

// Config holds application configuration.
type Config struct {
	Spanner SpannerConfig `yaml:"spanner"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// SpannerConfig selects the database.
type SpannerConfig struct {
	// Database is the full projects/.../databases/... path.
	Database string `yaml:"database"`
	// EmulatorHost, when set, is exported as SPANNER_EMULATOR_HOST so the
	// client library talks to the emulator.
	EmulatorHost string `yaml:"emulator_host"`
}

// MetricsConfig controls commit metrics output.
type MetricsConfig struct {
	// Dump prints the collected metrics after each command.
	Dump bool `yaml:"dump"`
}

// Load reads path (if non-empty) and applies environment overrides:
// SPANNER_DATABASE and SPANNER_EMULATOR_HOST.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if v := os.Getenv("SPANNER_DATABASE"); v != "" {
		cfg.Spanner.Database = v
	}
	if v := os.Getenv("SPANNER_EMULATOR_HOST"); v != "" {
		cfg.Spanner.EmulatorHost = v
	}

	if cfg.Spanner.Database == "" {
		cfg.Spanner.Database = DefaultDatabase
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ErrInvalidDatabase is returned for a malformed database path.
var ErrInvalidDatabase = errors.New("invalid spanner database path")

// Validate checks the database path shape.
func (c *Config) Validate() error {
	parts := strings.Split(c.Spanner.Database, "/")
	if len(parts) != 6 || parts[0] != "projects" || parts[2] != "instances" || parts[4] != "databases" ||
		parts[1] == "" || parts[3] == "" || parts[5] == "" {
		return fmt.Errorf("%w: %q", ErrInvalidDatabase, c.Spanner.Database)
	}
	return nil
}

// ApplyEnv exports settings that the Spanner client reads from the
// environment.
func (c *Config) ApplyEnv() error {
	if c.Spanner.EmulatorHost == "" {
		return nil
	}
	return os.Setenv("SPANNER_EMULATOR_HOST", c.Spanner.EmulatorHost)
}
