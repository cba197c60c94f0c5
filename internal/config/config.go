// Package config loads and validates the scribe project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the project configuration file, looked up in the
// working directory unless --config points elsewhere.
const DefaultFileName = "scribe.yml"

// Config holds the settings of one scribe project.
type Config struct {
	// SourceDir is the directory logical source paths resolve against.
	SourceDir string `yaml:"source_dir,omitempty"`
	// OutputDir receives the flattened branch files.
	OutputDir string `yaml:"output_dir,omitempty"`
	// Roots maps ${name} path variables usable in include paths.
	Roots map[string]string `yaml:"roots,omitempty"`
	// Defines seeds zero-argument macros before compilation.
	Defines map[string]string `yaml:"defines,omitempty"`
	// MaxDepth bounds nested macro calls; the engine default if zero.
	MaxDepth int `yaml:"max_depth,omitempty"`
	// MaxIncludes bounds nested includes; the engine default if zero.
	MaxIncludes int `yaml:"max_includes,omitempty"`
}

// Validate checks the configuration for values the compiler cannot use.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return errors.New("max_depth must not be negative")
	}
	if c.MaxIncludes < 0 {
		return errors.New("max_includes must not be negative")
	}
	for name := range c.Roots {
		if strings.TrimSpace(name) == "" {
			return errors.New("roots must not contain an empty name")
		}
	}
	for name := range c.Defines {
		if strings.TrimSpace(name) == "" {
			return errors.New("defines must not contain an empty name")
		}
	}
	return nil
}

// ApplyDefaults fills unset directories with the conventional layout.
func (c *Config) ApplyDefaults() {
	if c.SourceDir == "" {
		c.SourceDir = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = "build"
	}
}

// LoadFromEnv overrides directory settings from the environment.
// SCRIBE_SOURCE_DIR and SCRIBE_OUTPUT_DIR win over file values when set.
func (c *Config) LoadFromEnv() {
	if dir := os.Getenv("SCRIBE_SOURCE_DIR"); dir != "" {
		c.SourceDir = dir
	}
	if dir := os.Getenv("SCRIBE_OUTPUT_DIR"); dir != "" {
		c.OutputDir = dir
	}
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// LoadWithEnv loads the configuration file, falls back to an empty
// configuration if the file does not exist, applies environment overrides,
// and fills defaults.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			// Present but unreadable or malformed: that is a real error.
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
