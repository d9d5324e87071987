// Package bench measures parse throughput and latency. It replays input
// documents through a grammar from many goroutines, either as fast as a fixed
// number of workers allow or at a target rate, and evaluates pass/fail
// thresholds against the recorded latency histogram.
package bench

import (
	"fmt"
	"time"
)

// ExecutionMode defines how the benchmark schedules parses
type ExecutionMode int

const (
	// WorkerMode runs a fixed number of workers back to back
	WorkerMode ExecutionMode = iota
	// RateMode starts parses at a constant rate (parses per second)
	RateMode
)

func (m ExecutionMode) String() string {
	if m == RateMode {
		return "rate"
	}
	return "workers"
}

// Config holds all configuration for a benchmark
type Config struct {
	Mode       ExecutionMode
	Duration   time.Duration
	Iterations int64         // stop after this many parses, 0 runs for Duration
	Rate       float64       // parses per second (RateMode)
	Workers    int           // concurrent workers; the concurrency cap in RateMode
	RampUp     time.Duration // ramp-up time
	Thresholds Thresholds    // pass/fail thresholds
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Mode:     WorkerMode,
		Duration: 10 * time.Second,
		Workers:  4,
	}
}

// Validate checks if the config is valid
func (c *Config) Validate() error {
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive")
	}

	if c.Mode == RateMode && c.Rate <= 0 {
		return fmt.Errorf("rate must be positive in rate mode")
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}

	if c.Iterations < 0 {
		return fmt.Errorf("iterations cannot be negative")
	}

	if c.RampUp < 0 {
		return fmt.Errorf("rampUp cannot be negative")
	}

	if c.RampUp > c.Duration {
		return fmt.Errorf("rampUp cannot exceed duration")
	}

	return nil
}

// ThresholdResult holds the result of evaluating a threshold
type ThresholdResult struct {
	Name     string
	Passed   bool
	Expected string
	Actual   string
}
