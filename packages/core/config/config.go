package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the parsa configuration
type Config struct {
	Format             string                    `yaml:"format,omitempty" json:"format,omitempty"` // console, json or yaml
	Strict             *bool                     `yaml:"strict,omitempty" json:"strict,omitempty"`
	Resolve            *bool                     `yaml:"resolve,omitempty" json:"resolve,omitempty"`
	NoColor            *bool                     `yaml:"noColor,omitempty" json:"noColor,omitempty"`
	Verbose            *bool                     `yaml:"verbose,omitempty" json:"verbose,omitempty"`
	Schema             string                    `yaml:"schema,omitempty" json:"schema,omitempty"`     // JSON schema for check
	Patterns           []string                  `yaml:"patterns,omitempty" json:"patterns,omitempty"` // file name globs used when walking directories
	EnvPrefix          string                    `yaml:"envPrefix,omitempty" json:"envPrefix,omitempty"`
	DefaultEnvironment string                    `yaml:"defaultEnvironment,omitempty" json:"defaultEnvironment,omitempty"`
	Environments       map[string]map[string]any `yaml:"environments,omitempty" json:"environments,omitempty"`
	Bench              BenchConfig               `yaml:"bench,omitempty" json:"bench,omitempty"`
}

// BenchConfig holds defaults for `parsa bench`.
type BenchConfig struct {
	Duration   string `yaml:"duration,omitempty" json:"duration,omitempty"` // e.g. "10s"
	Workers    int    `yaml:"workers,omitempty" json:"workers,omitempty"`
	Rate       int    `yaml:"rate,omitempty" json:"rate,omitempty"` // parses per second, 0 is unlimited
	Thresholds string `yaml:"thresholds,omitempty" json:"thresholds,omitempty"`
}

// GetDuration parses Duration, falling back to the default on an empty value.
func (b BenchConfig) GetDuration() (time.Duration, error) {
	if b.Duration == "" {
		return defaultBenchDuration, nil
	}
	d, err := time.ParseDuration(b.Duration)
	if err != nil {
		return 0, fmt.Errorf("invalid bench duration %q: %w", b.Duration, err)
	}
	return d, nil
}

// BoolPtr is exported version of boolPtr for external use
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetStrict returns the strict setting, defaulting to false
func (c *Config) GetStrict() bool {
	return getBool(c.Strict, false)
}

// GetResolve returns the resolve setting, defaulting to false
func (c *Config) GetResolve() bool {
	return getBool(c.Resolve, false)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// Matches reports whether the base name of path matches one of the patterns.
func (c *Config) Matches(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range c.Patterns {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".parsa.yaml",
	"parsa.yaml",
	".parsa.yml",
	".parsarc.json",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	// Search for config file in current directory
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	path := FindConfig(dir)
	if path == "" {
		// Return defaults if no config file found
		return DefaultConfig(), nil
	}
	return loadConfigFromFile(path)
}

// FindConfig returns the first config file present in dir, or "".
func FindConfig(dir string) string {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}
	return ""
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if isJSON(path) {
		err = json.Unmarshal(data, config)
	} else {
		err = yaml.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Validate checks values that can be wrong without failing to decode.
func (c *Config) Validate() error {
	switch c.Format {
	case "", "console", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q (want console, json or yaml)", c.Format)
	}
	for _, pattern := range c.Patterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
	}
	if _, err := c.Bench.GetDuration(); err != nil {
		return err
	}
	if c.Bench.Workers < 0 {
		return fmt.Errorf("bench workers must be >= 0, got %d", c.Bench.Workers)
	}
	if c.Bench.Rate < 0 {
		return fmt.Errorf("bench rate must be >= 0, got %d", c.Bench.Rate)
	}
	if c.DefaultEnvironment != "" {
		if _, ok := c.Environments[c.DefaultEnvironment]; !ok {
			return fmt.Errorf("default environment %q is not defined", c.DefaultEnvironment)
		}
	}
	return nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.Format != "" {
		result.Format = other.Format
	}
	if other.Schema != "" {
		result.Schema = other.Schema
	}
	if other.EnvPrefix != "" {
		result.EnvPrefix = other.EnvPrefix
	}
	if other.DefaultEnvironment != "" {
		result.DefaultEnvironment = other.DefaultEnvironment
	}
	if len(other.Patterns) > 0 {
		result.Patterns = other.Patterns
	}

	// Boolean flags - only override if explicitly set in other config
	if other.Strict != nil {
		result.Strict = other.Strict
	}
	if other.Resolve != nil {
		result.Resolve = other.Resolve
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	// Merge environments
	if len(other.Environments) > 0 {
		envs := make(map[string]map[string]any, len(c.Environments)+len(other.Environments))
		for name, vars := range c.Environments {
			envs[name] = vars
		}
		for name, vars := range other.Environments {
			envs[name] = vars
		}
		result.Environments = envs
	}

	if other.Bench.Duration != "" {
		result.Bench.Duration = other.Bench.Duration
	}
	if other.Bench.Workers > 0 {
		result.Bench.Workers = other.Bench.Workers
	}
	if other.Bench.Rate > 0 {
		result.Bench.Rate = other.Bench.Rate
	}
	if other.Bench.Thresholds != "" {
		result.Bench.Thresholds = other.Bench.Thresholds
	}

	return &result
}

// SaveConfig saves the configuration to a file, as JSON or YAML depending on
// the file extension.
func (c *Config) SaveConfig(path string) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
