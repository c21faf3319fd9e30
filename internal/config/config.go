// Package config loads explorer settings from the user config directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration loaded from
// ~/.config/jdx/config.yaml.
type Config struct {
	Display Display `yaml:"display"`
}

// Display controls rendering behavior in the interactive explorer.
type Display struct {
	// Monochrome disables all color output.
	Monochrome bool `yaml:"monochrome"`

	// MaxCandidates caps the autocomplete popup size.
	MaxCandidates int `yaml:"max_candidates"`

	// SchemaMaxSamples caps how many array elements schema inference
	// inspects per array.
	SchemaMaxSamples int `yaml:"schema_max_samples"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Display: Display{
			Monochrome:       false,
			MaxCandidates:    20,
			SchemaMaxSamples: 10,
		},
	}
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "jdx"), nil
}

// Path returns the config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file, falling back to defaults when the file does
// not exist. A present but malformed file is an error; silently ignoring it
// would mask typos with defaults.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile reads configuration from an explicit path. Settings omitted from
// the file keep their defaults.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration, creating the config directory if needed.
func Save(cfg Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
