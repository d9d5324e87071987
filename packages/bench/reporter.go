package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
)

const progressLines = 4

// palette groups the colors used by the terminal report.
type palette struct {
	ok, bad, warn, accent, strong *color.Color
}

func newPalette(noColor bool) palette {
	color.NoColor = noColor
	return palette{
		ok:     color.New(color.FgGreen),
		bad:    color.New(color.FgRed),
		warn:   color.New(color.FgYellow),
		accent: color.New(color.FgCyan),
		strong: color.New(color.Bold),
	}
}

// Reporter writes benchmark progress and results.
type Reporter struct {
	w          io.Writer
	colors     palette
	noColor    bool
	noProgress bool
	verbose    bool
}

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithWriter sets the output writer
func WithWriter(w io.Writer) ReporterOption {
	return func(r *Reporter) { r.w = w }
}

// WithNoColor disables colored output
func WithNoColor(noColor bool) ReporterOption {
	return func(r *Reporter) { r.noColor = noColor }
}

// WithNoProgress disables the live progress display
func WithNoProgress(noProgress bool) ReporterOption {
	return func(r *Reporter) { r.noProgress = noProgress }
}

// WithVerbose adds the per-input breakdown and the timeline to the summary
func WithVerbose(verbose bool) ReporterOption {
	return func(r *Reporter) { r.verbose = verbose }
}

// NewReporter creates a Reporter writing to stdout unless WithWriter says otherwise.
func NewReporter(opts ...ReporterOption) *Reporter {
	r := &Reporter{w: os.Stdout}
	for _, opt := range opts {
		opt(r)
	}
	r.colors = newPalette(r.noColor)
	return r
}

func (r *Reporter) section(title string) {
	fmt.Fprintln(r.w)
	r.colors.strong.Fprintln(r.w, title)
}

// count prints n highlighted with c, or plain when n is zero.
func (r *Reporter) count(c *color.Color, n int64) {
	if n == 0 {
		fmt.Fprint(r.w, formatNumber(n))
		return
	}
	c.Fprint(r.w, formatNumber(n))
}

func latencyLine(p50, p95, p99, peak time.Duration) string {
	return fmt.Sprintf("p50 %s · p95 %s · p99 %s · max %s",
		formatLatency(p50), formatLatency(p95), formatLatency(p99), formatLatency(peak))
}

// Header announces the run.
func (r *Reporter) Header(version string, inputs []string, config *Config) {
	fmt.Fprintln(r.w)
	r.colors.strong.Fprintf(r.w, "parsa bench %s\n", version)
	r.colors.accent.Fprintf(r.w, "inputs: %s\n", strings.Join(inputs, ", "))

	plan := []string{fmt.Sprintf("%d workers", config.Workers), "for " + config.Duration.String()}
	if config.Mode == RateMode {
		plan = append(plan, fmt.Sprintf("at %.0f parses/s", config.Rate))
	}
	if config.Iterations > 0 {
		plan = append(plan, "capped at "+formatNumber(config.Iterations)+" parses")
	}
	fmt.Fprintf(r.w, "plan: %s\n\n", strings.Join(plan, ", "))
}

// Progress redraws the live status block in place.
func (r *Reporter) Progress(stats CurrentStats, duration time.Duration) {
	if r.noProgress {
		return
	}

	const width = 30
	done := 1.0
	if duration > 0 && stats.Elapsed < duration {
		done = float64(stats.Elapsed) / float64(duration)
	}
	filled := int(done * width)

	fmt.Fprint(r.w, "\r\033[K")
	fmt.Fprintf(r.w, "[%s%s] %s of %s\n",
		strings.Repeat("#", filled), strings.Repeat(".", width-filled),
		formatDuration(stats.Elapsed), formatDuration(duration))

	r.colors.strong.Fprint(r.w, formatNumber(stats.Total))
	fmt.Fprint(r.w, " parsed, ")
	r.count(r.colors.bad, stats.Errors)
	fmt.Fprintf(r.w, " failed (%.2f%%)\n", stats.ErrorRate*100)

	r.colors.accent.Fprintf(r.w, "%.1f/s", stats.RPS)
	fmt.Fprintf(r.w, " with %d busy workers\n", stats.ActiveWorkers)

	fmt.Fprintln(r.w, latencyLine(stats.P50, stats.P95, stats.P99, stats.Max))
	fmt.Fprintf(r.w, "\033[%dA", progressLines)
}

// ClearProgress erases the status block left by Progress.
func (r *Reporter) ClearProgress() {
	if r.noProgress {
		return
	}
	fmt.Fprintf(r.w, "\033[%dB", progressLines)
	for i := 0; i < progressLines; i++ {
		fmt.Fprint(r.w, "\r\033[K\033[A")
	}
	fmt.Fprint(r.w, "\r\033[K")
}

// Summary prints the final report.
func (r *Reporter) Summary(summary *Summary, thresholdResults []ThresholdResult) {
	r.section("RESULTS")
	fmt.Fprintf(r.w, "  %-10s %s\n", "elapsed", formatDuration(summary.Duration))
	fmt.Fprintf(r.w, "  %-10s ", "parsed")
	r.colors.strong.Fprint(r.w, formatNumber(summary.TotalParses))
	fmt.Fprintf(r.w, " at %.1f/s, %s\n", summary.RPS, formatBytes(summary.Throughput))
	fmt.Fprintf(r.w, "  %-10s ", "ok")
	r.count(r.colors.ok, summary.SuccessCount)
	fmt.Fprintf(r.w, " (%.1f%%)\n", summary.SuccessRate*100)
	fmt.Fprintf(r.w, "  %-10s ", "failed")
	r.count(r.colors.bad, summary.ErrorCount)
	fmt.Fprintf(r.w, " (%.1f%%)\n", summary.ErrorRate*100)
	if summary.TotalParses == 0 {
		r.colors.warn.Fprintln(r.w, "  nothing was parsed")
	}

	r.section("LATENCY")
	fmt.Fprintf(r.w, "  %s\n", latencyLine(summary.P50, summary.P95, summary.P99, summary.Max))
	fmt.Fprintf(r.w, "  min %s · mean %s · stddev %s\n",
		formatLatency(summary.Min), formatLatency(summary.Mean), formatLatency(summary.StdDev))

	if r.verbose {
		r.breakdown(summary.InputBreakdown)
		r.timeline(summary.TimeSeries)
	}
	if len(thresholdResults) > 0 {
		r.thresholds(thresholdResults)
	}
	fmt.Fprintln(r.w)
}

func (r *Reporter) breakdown(inputs map[string]*InputSummary) {
	if len(inputs) == 0 {
		return
	}
	r.section("BY INPUT")
	for _, name := range sortedKeys(inputs) {
		s := inputs[name]
		fmt.Fprintf(r.w, "  %s: %s parsed, %s failed\n", name, formatNumber(s.Total), formatNumber(s.Errors))
		fmt.Fprintf(r.w, "    p50 %s · p95 %s · p99 %s\n",
			formatLatency(s.P50), formatLatency(s.P95), formatLatency(s.P99))
	}
}

// timeline prints one row per progress tick.
func (r *Reporter) timeline(points []TimePoint) {
	if len(points) == 0 {
		return
	}
	r.section("TIMELINE")
	start := points[0].Timestamp
	for _, p := range points {
		fmt.Fprintf(r.w, "  +%-7s %9.1f/s  %s parsed  %s failed  p95 %s\n",
			formatDuration(p.Timestamp.Sub(start)), p.RPS,
			formatNumber(p.Parses), formatNumber(p.Errors), formatLatency(p.P95))
	}
}

func (r *Reporter) thresholds(results []ThresholdResult) {
	r.section("THRESHOLDS")
	failed := 0
	for _, tr := range results {
		mark := r.colors.ok.Sprint("pass")
		if !tr.Passed {
			mark = r.colors.bad.Sprint("FAIL")
			failed++
		}
		fmt.Fprintf(r.w, "  %s %s %s, got %s\n", mark, tr.Name, tr.Expected, tr.Actual)
	}
	if failed == 0 {
		r.colors.ok.Fprintf(r.w, "  %d of %d thresholds met\n", len(results), len(results))
		return
	}
	r.colors.bad.Fprintf(r.w, "  %d of %d thresholds missed\n", failed, len(results))
}

type jsonLatency struct {
	P50    int64 `json:"p50"`
	P95    int64 `json:"p95"`
	P99    int64 `json:"p99"`
	Min    int64 `json:"min,omitempty"`
	Max    int64 `json:"max,omitempty"`
	Mean   int64 `json:"mean"`
	StdDev int64 `json:"stddev,omitempty"`
}

type jsonInput struct {
	Total   int64 `json:"total"`
	Success int64 `json:"success"`
	Errors  int64 `json:"errors"`
	jsonLatency
}

type jsonThreshold struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

type jsonTimePoint struct {
	Elapsed       int64   `json:"elapsed"`
	Parses        int64   `json:"parses"`
	Errors        int64   `json:"errors"`
	RPS           float64 `json:"rps"`
	P50           int64   `json:"p50"`
	P95           int64   `json:"p95"`
	P99           int64   `json:"p99"`
	ActiveWorkers int32   `json:"activeWorkers"`
}

type jsonReport struct {
	Duration string `json:"duration"`
	Parses   struct {
		Total   int64 `json:"total"`
		Success int64 `json:"success"`
		Failed  int64 `json:"failed"`
		Bytes   int64 `json:"bytes"`
	} `json:"parses"`
	Rates struct {
		RPS         float64 `json:"rps"`
		Throughput  float64 `json:"throughput"`
		SuccessRate float64 `json:"successRate"`
		ErrorRate   float64 `json:"errorRate"`
	} `json:"rates"`
	Latency        jsonLatency          `json:"latency"`
	Thresholds     []jsonThreshold      `json:"thresholds,omitempty"`
	InputBreakdown map[string]jsonInput `json:"inputBreakdown,omitempty"`
	TimeSeries     []jsonTimePoint      `json:"timeSeries,omitempty"`
}

// JSONSummary writes the report as indented JSON. Durations are in
// nanoseconds; timeSeries elapsed values count from the first tick.
func (r *Reporter) JSONSummary(summary *Summary, thresholdResults []ThresholdResult) error {
	var out jsonReport
	out.Duration = summary.Duration.String()
	out.Parses.Total = summary.TotalParses
	out.Parses.Success = summary.SuccessCount
	out.Parses.Failed = summary.ErrorCount
	out.Parses.Bytes = summary.BytesParsed
	out.Rates.RPS = summary.RPS
	out.Rates.Throughput = summary.Throughput
	out.Rates.SuccessRate = summary.SuccessRate
	out.Rates.ErrorRate = summary.ErrorRate
	out.Latency = jsonLatency{
		P50:    summary.P50.Nanoseconds(),
		P95:    summary.P95.Nanoseconds(),
		P99:    summary.P99.Nanoseconds(),
		Min:    summary.Min.Nanoseconds(),
		Max:    summary.Max.Nanoseconds(),
		Mean:   summary.Mean.Nanoseconds(),
		StdDev: summary.StdDev.Nanoseconds(),
	}

	for _, tr := range thresholdResults {
		out.Thresholds = append(out.Thresholds, jsonThreshold(tr))
	}

	if len(summary.InputBreakdown) > 0 {
		out.InputBreakdown = make(map[string]jsonInput, len(summary.InputBreakdown))
		for name, s := range summary.InputBreakdown {
			out.InputBreakdown[name] = jsonInput{
				Total:   s.Total,
				Success: s.Success,
				Errors:  s.Errors,
				jsonLatency: jsonLatency{
					P50:  s.P50.Nanoseconds(),
					P95:  s.P95.Nanoseconds(),
					P99:  s.P99.Nanoseconds(),
					Mean: s.Mean.Nanoseconds(),
				},
			}
		}
	}

	if len(summary.TimeSeries) > 0 {
		start := summary.TimeSeries[0].Timestamp
		for _, p := range summary.TimeSeries {
			out.TimeSeries = append(out.TimeSeries, jsonTimePoint{
				Elapsed:       p.Timestamp.Sub(start).Nanoseconds(),
				Parses:        p.Parses,
				Errors:        p.Errors,
				RPS:           p.RPS,
				P50:           p.P50.Nanoseconds(),
				P95:           p.P95.Nanoseconds(),
				P99:           p.P99.Nanoseconds(),
				ActiveWorkers: p.ActiveWorkers,
			})
		}
	}

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m, s := int(d.Minutes()), int(d.Seconds())%60
	if s == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dm %02ds", m, s)
}

func formatLatency(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.1fµs", float64(d.Nanoseconds())/1e3)
	case d < time.Second:
		return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1e3)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// formatBytes renders a byte rate with binary prefixes.
func formatBytes(perSecond float64) string {
	const unit = 1024
	if perSecond < unit {
		return fmt.Sprintf("%.0f B/s", perSecond)
	}
	div, exp := float64(unit), 0
	for n := perSecond / unit; n >= unit && exp < 3; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB/s", perSecond/div, "KMGT"[exp])
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatNumber groups digits in threes: 1234567 -> "1,234,567".
func formatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
