package bench

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Parses are usually sub-microsecond, so latencies are recorded in
// nanoseconds, clamped to [1ns, 60s].
const maxLatency = int64(60 * time.Second)

func newHistogram() *hdrhistogram.Histogram {
	return hdrhistogram.New(1, maxLatency, 3)
}

func clampLatency(d time.Duration) int64 {
	ns := d.Nanoseconds()
	if ns < 1 {
		return 1
	}
	if ns > maxLatency {
		return maxLatency
	}
	return ns
}

// Metrics collects and aggregates benchmark metrics
type Metrics struct {
	mu sync.RWMutex

	totalParses   atomic.Int64
	successParses atomic.Int64
	errorParses   atomic.Int64
	bytesParsed   atomic.Int64

	histogram *hdrhistogram.Histogram

	inputMetrics map[string]*InputMetrics

	// Time series for real-time display
	timeSeries    []TimePoint
	lastTimePoint time.Time

	startTime time.Time
	endTime   time.Time

	activeWorkers atomic.Int32
}

// InputMetrics holds metrics for a single input document
type InputMetrics struct {
	Name      string
	Total     atomic.Int64
	Success   atomic.Int64
	Errors    atomic.Int64
	Histogram *hdrhistogram.Histogram
	mu        sync.Mutex
}

// TimePoint represents a point in time for the time series
type TimePoint struct {
	Timestamp     time.Time
	Parses        int64
	Errors        int64
	P50           time.Duration
	P95           time.Duration
	P99           time.Duration
	ActiveWorkers int32
	RPS           float64
}

// NewMetrics creates a new Metrics collector
func NewMetrics() *Metrics {
	return &Metrics{
		histogram:    newHistogram(),
		inputMetrics: make(map[string]*InputMetrics),
		timeSeries:   make([]TimePoint, 0, 1000),
	}
}

// Start marks the beginning of the benchmark
func (m *Metrics) Start() {
	m.startTime = time.Now()
	m.lastTimePoint = m.startTime
}

// Stop marks the end of the benchmark
func (m *Metrics) Stop() {
	m.endTime = time.Now()
}

// Record records the outcome of one parse of size bytes
func (m *Metrics) Record(name string, size int, duration time.Duration, err error) {
	m.totalParses.Add(1)
	m.bytesParsed.Add(int64(size))

	if err != nil {
		m.errorParses.Add(1)
	} else {
		m.successParses.Add(1)
	}

	latency := clampLatency(duration)

	m.mu.Lock()
	_ = m.histogram.RecordValue(latency)
	m.mu.Unlock()

	if name != "" {
		m.recordInputMetrics(name, latency, err)
	}
}

func (m *Metrics) recordInputMetrics(name string, latency int64, err error) {
	m.mu.Lock()
	im, ok := m.inputMetrics[name]
	if !ok {
		im = &InputMetrics{
			Name:      name,
			Histogram: newHistogram(),
		}
		m.inputMetrics[name] = im
	}
	m.mu.Unlock()

	im.Total.Add(1)
	if err != nil {
		im.Errors.Add(1)
	} else {
		im.Success.Add(1)
	}

	im.mu.Lock()
	_ = im.Histogram.RecordValue(latency)
	im.mu.Unlock()
}

// IncrementActiveWorkers increments the active worker count
func (m *Metrics) IncrementActiveWorkers() {
	m.activeWorkers.Add(1)
}

// DecrementActiveWorkers decrements the active worker count
func (m *Metrics) DecrementActiveWorkers() {
	m.activeWorkers.Add(-1)
}

// Total returns the number of parses recorded so far
func (m *Metrics) Total() int64 {
	return m.totalParses.Load()
}

// Snapshot captures current metrics for time series
func (m *Metrics) Snapshot() TimePoint {
	now := time.Now()

	m.mu.RLock()
	defer m.mu.RUnlock()

	elapsed := now.Sub(m.lastTimePoint).Seconds()
	if elapsed == 0 {
		elapsed = 1
	}

	total := m.totalParses.Load()
	prevTotal := int64(0)
	if len(m.timeSeries) > 0 {
		prevTotal = m.timeSeries[len(m.timeSeries)-1].Parses
	}

	return TimePoint{
		Timestamp:     now,
		Parses:        total,
		Errors:        m.errorParses.Load(),
		P50:           time.Duration(m.histogram.ValueAtQuantile(50)),
		P95:           time.Duration(m.histogram.ValueAtQuantile(95)),
		P99:           time.Duration(m.histogram.ValueAtQuantile(99)),
		ActiveWorkers: m.activeWorkers.Load(),
		RPS:           float64(total-prevTotal) / elapsed,
	}
}

// AddTimePoint adds a time point to the series
func (m *Metrics) AddTimePoint(point TimePoint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.timeSeries = append(m.timeSeries, point)
	m.lastTimePoint = point.Timestamp
}

// Summary is the final metrics summary
type Summary struct {
	Duration     time.Duration
	TotalParses  int64
	SuccessCount int64
	ErrorCount   int64
	BytesParsed  int64

	RPS         float64
	Throughput  float64 // bytes per second
	SuccessRate float64
	ErrorRate   float64

	P50    time.Duration
	P95    time.Duration
	P99    time.Duration
	Min    time.Duration
	Max    time.Duration
	Mean   time.Duration
	StdDev time.Duration

	InputBreakdown map[string]*InputSummary

	TimeSeries []TimePoint
}

// InputSummary holds the summary for a single input document
type InputSummary struct {
	Name    string
	Total   int64
	Success int64
	Errors  int64
	P50     time.Duration
	P95     time.Duration
	P99     time.Duration
	Mean    time.Duration
}

// GetSummary returns the metrics summary
func (m *Metrics) GetSummary() *Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	duration := m.endTime.Sub(m.startTime)
	if m.endTime.IsZero() {
		duration = time.Since(m.startTime)
	}

	total := m.totalParses.Load()
	success := m.successParses.Load()
	errors := m.errorParses.Load()
	bytes := m.bytesParsed.Load()

	rps, throughput := float64(0), float64(0)
	if duration.Seconds() > 0 {
		rps = float64(total) / duration.Seconds()
		throughput = float64(bytes) / duration.Seconds()
	}

	successRate := float64(0)
	errorRate := float64(0)
	if total > 0 {
		successRate = float64(success) / float64(total)
		errorRate = float64(errors) / float64(total)
	}

	summary := &Summary{
		Duration:     duration,
		TotalParses:  total,
		SuccessCount: success,
		ErrorCount:   errors,
		BytesParsed:  bytes,
		RPS:          rps,
		Throughput:   throughput,
		SuccessRate:  successRate,
		ErrorRate:    errorRate,
		P50:          time.Duration(m.histogram.ValueAtQuantile(50)),
		P95:          time.Duration(m.histogram.ValueAtQuantile(95)),
		P99:          time.Duration(m.histogram.ValueAtQuantile(99)),
		Min:          time.Duration(m.histogram.Min()),
		Max:          time.Duration(m.histogram.Max()),
		Mean:         time.Duration(m.histogram.Mean()),
		StdDev:       time.Duration(m.histogram.StdDev()),
		TimeSeries:   m.timeSeries,
	}

	summary.InputBreakdown = make(map[string]*InputSummary)
	for name, im := range m.inputMetrics {
		im.mu.Lock()
		summary.InputBreakdown[name] = &InputSummary{
			Name:    name,
			Total:   im.Total.Load(),
			Success: im.Success.Load(),
			Errors:  im.Errors.Load(),
			P50:     time.Duration(im.Histogram.ValueAtQuantile(50)),
			P95:     time.Duration(im.Histogram.ValueAtQuantile(95)),
			P99:     time.Duration(im.Histogram.ValueAtQuantile(99)),
			Mean:    time.Duration(im.Histogram.Mean()),
		}
		im.mu.Unlock()
	}

	return summary
}

// CurrentStats holds live statistics for the progress line
type CurrentStats struct {
	Elapsed       time.Duration
	Total         int64
	Success       int64
	Errors        int64
	RPS           float64
	P50           time.Duration
	P95           time.Duration
	P99           time.Duration
	Max           time.Duration
	ActiveWorkers int32
	ErrorRate     float64
}

// GetCurrentStats returns current statistics
func (m *Metrics) GetCurrentStats() CurrentStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	elapsed := time.Since(m.startTime)
	total := m.totalParses.Load()
	errors := m.errorParses.Load()

	rps := float64(0)
	if elapsed.Seconds() > 0 {
		rps = float64(total) / elapsed.Seconds()
	}

	errorRate := float64(0)
	if total > 0 {
		errorRate = float64(errors) / float64(total)
	}

	return CurrentStats{
		Elapsed:       elapsed,
		Total:         total,
		Success:       m.successParses.Load(),
		Errors:        errors,
		RPS:           rps,
		P50:           time.Duration(m.histogram.ValueAtQuantile(50)),
		P95:           time.Duration(m.histogram.ValueAtQuantile(95)),
		P99:           time.Duration(m.histogram.ValueAtQuantile(99)),
		Max:           time.Duration(m.histogram.Max()),
		ActiveWorkers: m.activeWorkers.Load(),
		ErrorRate:     errorRate,
	}
}

// EvaluateThresholds evaluates the thresholds against the summary
func (m *Metrics) EvaluateThresholds(t Thresholds) []ThresholdResult {
	summary := m.GetSummary()
	var results []ThresholdResult

	latency := func(name string, kind limitKind, limit, actual time.Duration) {
		if limit <= 0 && !t.isSet(kind) {
			return
		}
		results = append(results, ThresholdResult{
			Name:     name,
			Passed:   actual <= limit,
			Expected: "< " + limit.String(),
			Actual:   actual.String(),
		})
	}
	latency("p50", limitP50, t.P50, summary.P50)
	latency("p95", limitP95, t.P95, summary.P95)
	latency("p99", limitP99, t.P99, summary.P99)
	latency("max latency", limitMax, t.MaxLatency, summary.Max)

	if t.ErrorRate > 0 || t.isSet(limitErrorRate) {
		results = append(results, ThresholdResult{
			Name:     "error rate",
			Passed:   summary.ErrorRate <= t.ErrorRate,
			Expected: formatPercent(t.ErrorRate),
			Actual:   formatPercent(summary.ErrorRate),
		})
	}

	if t.MinRPS > 0 || t.isSet(limitMinRPS) {
		results = append(results, ThresholdResult{
			Name:     "min RPS",
			Passed:   summary.RPS >= t.MinRPS,
			Expected: "> " + formatFloat(t.MinRPS),
			Actual:   formatFloat(summary.RPS),
		})
	}

	return results
}

func formatPercent(f float64) string {
	return formatFloat(f*100) + "%"
}

func formatFloat(f float64) string {
	if f == float64(int(f)) {
		return strconv.Itoa(int(f))
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}
