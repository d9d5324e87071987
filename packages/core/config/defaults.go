package config

import "time"

const defaultBenchDuration = 10 * time.Second

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Format:   "console",
		Patterns: []string{".env", ".env.*", "*.env"},
		Bench: BenchConfig{
			Duration: "10s",
			Workers:  4,
		},
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	if len(c.Patterns) != len(defaults.Patterns) {
		return false
	}
	for i := range c.Patterns {
		if c.Patterns[i] != defaults.Patterns[i] {
			return false
		}
	}
	return c.Format == defaults.Format &&
		c.Strict == nil &&
		c.Resolve == nil &&
		c.NoColor == nil &&
		c.Verbose == nil &&
		c.Schema == "" &&
		c.EnvPrefix == "" &&
		c.DefaultEnvironment == "" &&
		len(c.Environments) == 0 &&
		c.Bench == defaults.Bench
}
