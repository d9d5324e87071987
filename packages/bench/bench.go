package bench

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/abdul-hamid-achik/parsa/packages/core/env"
)

// Runner executes parse benchmarks
type Runner struct {
	config    *Config
	scheduler *Scheduler
	metrics   *Metrics
	reporter  *Reporter
	parse     ParseFunc
	version   string

	names   []string
	claimed atomic.Int64
	stop    context.CancelFunc
}

// RunnerOption configures the runner
type RunnerOption func(*Runner)

// WithReporter sets the reporter
func WithReporter(reporter *Reporter) RunnerOption {
	return func(r *Runner) {
		r.reporter = reporter
	}
}

// WithParseFunc replaces the grammar under test. The default parses inputs as
// strict env documents.
func WithParseFunc(parse ParseFunc) RunnerOption {
	return func(r *Runner) {
		r.parse = parse
	}
}

// WithVersion sets the version shown in the header
func WithVersion(version string) RunnerOption {
	return func(r *Runner) {
		r.version = version
	}
}

// NewRunner creates a new benchmark runner
func NewRunner(config *Config, opts ...RunnerOption) *Runner {
	r := &Runner{
		config:    config,
		metrics:   NewMetrics(),
		scheduler: NewScheduler(config),
		parse:     parseEnvDocument,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.reporter == nil {
		r.reporter = NewReporter()
	}

	return r
}

func parseEnvDocument(in *Input) error {
	_, err := env.ParseDocument(in.Name, in.Source, env.WithStrict(true))
	return err
}

// AddInput registers an in-memory input
func (r *Runner) AddInput(in Input) {
	r.scheduler.AddInput(in)
	r.names = append(r.names, in.Name)
}

// LoadFile reads a file and registers it as an input
func (r *Runner) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	r.AddInput(Input{Name: path, Source: string(data), Weight: 1})
	return nil
}

// Metrics returns the live metrics collector
func (r *Runner) Metrics() *Metrics {
	return r.metrics
}

// Run executes the benchmark until Duration elapses, Iterations parses have
// been made, or ctx is cancelled.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if err := r.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if r.scheduler.InputCount() == 0 {
		return nil, fmt.Errorf("no inputs to parse")
	}

	r.reporter.Header(r.version, r.names, r.config)

	r.metrics.Start()

	ctx, cancel := context.WithTimeout(ctx, r.config.Duration)
	defer cancel()
	r.stop = cancel

	progressDone := make(chan struct{})
	go r.progressLoop(progressDone)

	if r.config.Mode == WorkerMode {
		r.runWorkerMode(ctx)
	} else {
		r.runRateMode(ctx)
	}

	r.metrics.Stop()
	close(progressDone)
	r.reporter.ClearProgress()

	summary := r.metrics.GetSummary()
	var thresholdResults []ThresholdResult
	if r.config.Thresholds.HasThresholds() {
		thresholdResults = r.metrics.EvaluateThresholds(r.config.Thresholds)
	}

	r.reporter.Summary(summary, thresholdResults)

	result := &Result{
		Summary:    summary,
		Thresholds: thresholdResults,
	}
	result.Passed = !result.HasThresholdFailures()
	return result, nil
}

// claim reserves one parse against the iteration limit. Once the limit is
// reached the run is cancelled.
func (r *Runner) claim() bool {
	if r.config.Iterations <= 0 {
		return true
	}
	if r.claimed.Add(1) > r.config.Iterations {
		r.stop()
		return false
	}
	return true
}

// execute parses one input and records the outcome
func (r *Runner) execute(in *Input) {
	start := time.Now()
	err := r.parse(in)
	r.metrics.Record(in.Name, len(in.Source), time.Since(start), err)
}

func (r *Runner) runRateMode(ctx context.Context) {
	var wg sync.WaitGroup
	startTime := time.Now()

	var rampUpTicker *time.Ticker
	if r.config.RampUp > 0 {
		rampUpTicker = time.NewTicker(100 * time.Millisecond)
		defer rampUpTicker.Stop()
	}

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		default:
		}

		if rampUpTicker != nil {
			select {
			case <-rampUpTicker.C:
				r.scheduler.UpdateRate(r.scheduler.GetCurrentRate(time.Since(startTime)))
			default:
			}
		}

		if err := r.scheduler.Wait(ctx); err != nil {
			wg.Wait()
			return
		}

		in := r.scheduler.SelectInput()
		if in == nil || !r.claim() {
			wg.Wait()
			return
		}

		if err := r.scheduler.Acquire(ctx); err != nil {
			wg.Wait()
			return
		}

		wg.Add(1)
		go func(in *Input) {
			defer wg.Done()
			defer r.scheduler.Release()
			r.execute(in)
		}(in)
	}
}

func (r *Runner) runWorkerMode(ctx context.Context) {
	pool := NewWorkerPool(r.scheduler, r.metrics, func(in *Input) bool {
		if !r.claim() {
			return false
		}
		r.execute(in)
		return true
	})
	pool.Start(ctx)

	if r.config.RampUp > 0 {
		rampUpTicker := time.NewTicker(100 * time.Millisecond)
		startTime := time.Now()

		go func() {
			defer rampUpTicker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-rampUpTicker.C:
					pool.Scale(r.scheduler.GetCurrentWorkers(time.Since(startTime)))
				}
			}
		}()
	}

	<-ctx.Done()

	pool.Stop()
	pool.Wait()
}

func (r *Runner) progressLoop(done chan struct{}) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			r.reporter.Progress(r.metrics.GetCurrentStats(), r.config.Duration)
			r.metrics.AddTimePoint(r.metrics.Snapshot())
		}
	}
}

// Result holds the final result of a benchmark
type Result struct {
	Summary    *Summary
	Thresholds []ThresholdResult
	Passed     bool
}

// HasThresholdFailures returns true if any thresholds failed
func (r *Result) HasThresholdFailures() bool {
	for _, tr := range r.Thresholds {
		if !tr.Passed {
			return true
		}
	}
	return false
}
