package bench

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Input is one document fed to the parser during a benchmark
type Input struct {
	Name   string
	Source string
	Weight int // relative selection weight, 1 when unset
}

// Scheduler picks inputs and paces parses
type Scheduler struct {
	config  *Config
	limiter *rate.Limiter
	sem     chan struct{}

	weights     []int
	totalWeight int

	mu     sync.Mutex
	inputs []*Input
}

// NewScheduler creates a new scheduler with the given config
func NewScheduler(config *Config) *Scheduler {
	s := &Scheduler{config: config}

	if config.Mode == RateMode && config.Rate > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(config.Rate), 1)
	}

	workers := config.Workers
	if workers < 1 {
		workers = 1
	}
	s.sem = make(chan struct{}, workers)

	return s
}

// AddInput registers an input document
func (s *Scheduler) AddInput(in Input) {
	s.mu.Lock()
	defer s.mu.Unlock()

	weight := in.Weight
	if weight < 1 {
		weight = 1
	}
	s.inputs = append(s.inputs, &in)
	s.weights = append(s.weights, weight)
	s.totalWeight += weight
}

// SelectInput selects an input based on weights
func (s *Scheduler) SelectInput() *Input {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch len(s.inputs) {
	case 0:
		return nil
	case 1:
		return s.inputs[0]
	}

	r := rand.Intn(s.totalWeight)
	cumulative := 0
	for i, w := range s.weights {
		cumulative += w
		if r < cumulative {
			return s.inputs[i]
		}
	}
	return s.inputs[len(s.inputs)-1]
}

// Wait blocks on the rate limiter in rate mode and returns at once otherwise
func (s *Scheduler) Wait(ctx context.Context) error {
	if s.limiter != nil {
		return s.limiter.Wait(ctx)
	}
	return nil
}

// Acquire acquires a slot from the concurrency semaphore
func (s *Scheduler) Acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release releases a slot back to the semaphore
func (s *Scheduler) Release() {
	<-s.sem
}

// GetCurrentRate returns the target rate after elapsed time of ramp-up
func (s *Scheduler) GetCurrentRate(elapsed time.Duration) float64 {
	if s.config.RampUp <= 0 || elapsed >= s.config.RampUp {
		return s.config.Rate
	}
	progress := float64(elapsed) / float64(s.config.RampUp)
	return s.config.Rate * progress
}

// GetCurrentWorkers returns the target worker count after elapsed time of ramp-up
func (s *Scheduler) GetCurrentWorkers(elapsed time.Duration) int {
	if s.config.RampUp <= 0 || elapsed >= s.config.RampUp {
		return s.config.Workers
	}
	progress := float64(elapsed) / float64(s.config.RampUp)
	return int(float64(s.config.Workers) * progress)
}

// UpdateRate updates the rate limiter's rate
func (s *Scheduler) UpdateRate(newRate float64) {
	if s.limiter != nil && newRate > 0 {
		s.limiter.SetLimit(rate.Limit(newRate))
	}
}

// InputCount returns the number of registered inputs
func (s *Scheduler) InputCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inputs)
}

// ParseFunc parses one input. It must be safe for concurrent use.
type ParseFunc func(in *Input) error

// worker parses inputs back to back until stopped
type worker struct {
	scheduler *Scheduler
	metrics   *Metrics
	parse     func(in *Input) bool
	cancel    context.CancelFunc
}

func (w *worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	w.metrics.IncrementActiveWorkers()
	defer w.metrics.DecrementActiveWorkers()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		in := w.scheduler.SelectInput()
		if in == nil {
			return
		}

		if err := w.scheduler.Acquire(ctx); err != nil {
			return
		}
		more := w.parse(in)
		w.scheduler.Release()

		if !more {
			return
		}
	}
}

// WorkerPool manages a resizable set of workers
type WorkerPool struct {
	scheduler *Scheduler
	metrics   *Metrics
	parse     func(in *Input) bool
	workers   []*worker
	mu        sync.Mutex
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewWorkerPool creates a new worker pool. parse reports whether the worker
// should keep going.
func NewWorkerPool(scheduler *Scheduler, metrics *Metrics, parse func(in *Input) bool) *WorkerPool {
	return &WorkerPool{
		scheduler: scheduler,
		metrics:   metrics,
		parse:     parse,
	}
}

// Start starts the pool with the initial number of workers
func (p *WorkerPool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	initial := p.scheduler.GetCurrentWorkers(0)
	if initial < 1 {
		initial = 1
	}
	p.Scale(initial)
}

// Scale adjusts the number of running workers
func (p *WorkerPool) Scale(target int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.workers) < target {
		ctx, cancel := context.WithCancel(p.ctx)
		w := &worker{
			scheduler: p.scheduler,
			metrics:   p.metrics,
			parse:     p.parse,
			cancel:    cancel,
		}
		p.wg.Add(1)
		go w.run(ctx, &p.wg)
		p.workers = append(p.workers, w)
	}
	for len(p.workers) > target {
		last := len(p.workers) - 1
		p.workers[last].cancel()
		p.workers = p.workers[:last]
	}
}

// Stop stops all workers
func (p *WorkerPool) Stop() {
	p.mu.Lock()
	for _, w := range p.workers {
		w.cancel()
	}
	p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}
}

// Wait waits for all workers to finish
func (p *WorkerPool) Wait() {
	p.wg.Wait()
}

// Count returns the current number of running workers
func (p *WorkerPool) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.workers)
}
