package bench

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/abdul-hamid-achik/parsa/packages/builtin"
	"github.com/abdul-hamid-achik/parsa/packages/core/cursor"
	"github.com/abdul-hamid-achik/parsa/packages/core/parser"
)

// Thresholds defines pass/fail criteria for the benchmark
type Thresholds struct {
	P50        time.Duration // 50th percentile latency
	P95        time.Duration // 95th percentile latency
	P99        time.Duration // 99th percentile latency
	MaxLatency time.Duration // maximum allowed latency
	ErrorRate  float64       // maximum error rate (0.0 - 1.0)
	MinRPS     float64       // minimum parses per second

	// set marks limits given explicitly, so that "errors<0%" is a limit
	// and not an absent one.
	set limitKind
}

type limitKind uint8

const (
	limitP50 limitKind = 1 << iota
	limitP95
	limitP99
	limitMax
	limitErrorRate
	limitMinRPS
)

// HasThresholds returns true if any thresholds are configured
func (t *Thresholds) HasThresholds() bool {
	return t.set != 0 || t.P50 > 0 || t.P95 > 0 || t.P99 > 0 || t.MaxLatency > 0 || t.ErrorRate > 0 || t.MinRPS > 0
}

func (t *Thresholds) isSet(k limitKind) bool {
	return t.set&k != 0
}

// ThresholdError reports where a threshold expression stopped making sense.
type ThresholdError struct {
	Input  string
	Offset int
	Msg    string
}

func (e *ThresholdError) Error() string {
	return fmt.Sprintf("invalid threshold %q at offset %d: %s", e.Input, e.Offset, e.Msg)
}

type clauseError struct {
	Offset int
	Err    error
}

func (e *clauseError) Error() string {
	return e.Err.Error()
}

func clauseFromTake(e *builtin.TakeError) *clauseError {
	return &clauseError{Offset: e.Offset, Err: e}
}

func clauseFromMatch(e *builtin.MatchError) *clauseError {
	return &clauseError{Offset: e.Offset, Err: e}
}

// clause is one "metric op value" term.
type clause struct {
	metric cursor.Span
	op     string
	value  cursor.Span
}

var (
	clauseSpace = parser.Lift[cursor.Span, *clauseError](builtin.Spaces)

	metricName = parser.ConvertErr(builtin.TakeWhile1("metric name", func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}), clauseFromMatch)

	comparison = parser.Map(parser.Or(
		parser.ConvertErr(builtin.Take("<="), clauseFromTake),
		parser.ConvertErr(builtin.Take(">="), clauseFromTake),
		parser.ConvertErr(builtin.Take("<"), clauseFromTake),
		parser.ConvertErr(builtin.Take(">"), clauseFromTake),
	), cursor.Span.String)

	limit = parser.Map(
		parser.ConvertErr(builtin.TakeWhile1("threshold value", func(r rune) bool { return r != ',' }), clauseFromMatch),
		func(s cursor.Span) cursor.Span { return s.TrimRight(" \t") },
	)

	thresholdClause = parser.Map(
		parser.Then(
			parser.After(parser.Before(clauseSpace, metricName), clauseSpace),
			parser.Then(parser.After(comparison, clauseSpace), limit),
		),
		func(p parser.Pair[cursor.Span, parser.Pair[string, cursor.Span]]) clause {
			return clause{metric: p.First, op: p.Second.First, value: p.Second.Second}
		},
	)

	comma = parser.ConvertErr(builtin.Take(","), clauseFromTake)
)

// ParseThresholds parses a threshold string like "p95<2ms,errors<0.1%"
func ParseThresholds(s string) (Thresholds, error) {
	var t Thresholds
	if strings.TrimSpace(s) == "" {
		return t, nil
	}

	c := cursor.New(s)
	for {
		cl, err := thresholdClause(c)
		if err != nil {
			return t, &ThresholdError{Input: s, Offset: err.Offset, Msg: err.Error()}
		}
		if err := cl.apply(&t); err != nil {
			return t, &ThresholdError{Input: s, Offset: cl.metric.Start, Msg: err.Error()}
		}
		if c.AtEOF() {
			return t, nil
		}
		if _, err := comma(c); err != nil {
			return t, &ThresholdError{Input: s, Offset: err.Offset, Msg: err.Error()}
		}
	}
}

func (cl clause) apply(t *Thresholds) error {
	metric := strings.ToLower(cl.metric.String())
	op := cl.op
	valueStr := cl.value.String()

	upper := func(name string) error {
		if op != "<" && op != "<=" {
			return fmt.Errorf("%s threshold must use < or <=", name)
		}
		return nil
	}
	duration := func(name string) (time.Duration, error) {
		if err := upper(name); err != nil {
			return 0, err
		}
		d, err := time.ParseDuration(valueStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %s", name, valueStr)
		}
		return d, nil
	}

	var (
		kind limitKind
		err  error
	)
	switch metric {
	case "p50":
		kind = limitP50
		t.P50, err = duration("p50")
	case "p95":
		kind = limitP95
		t.P95, err = duration("p95")
	case "p99":
		kind = limitP99
		t.P99, err = duration("p99")
	case "max", "maxlatency":
		kind = limitMax
		t.MaxLatency, err = duration("max latency")

	case "errors", "error", "errorrate":
		if err := upper("error rate"); err != nil {
			return err
		}
		// Handle percentage format like "0.1%" or decimal like "0.001"
		percent := strings.HasSuffix(valueStr, "%")
		f, perr := strconv.ParseFloat(strings.TrimSuffix(valueStr, "%"), 64)
		if perr != nil {
			return fmt.Errorf("invalid error rate: %s", valueStr)
		}
		if percent {
			f = f / 100 // Convert percentage to decimal
		}
		kind = limitErrorRate
		t.ErrorRate = f

	case "rps", "rate":
		if op != ">" && op != ">=" {
			return fmt.Errorf("RPS threshold must use > or >=")
		}
		f, perr := strconv.ParseFloat(valueStr, 64)
		if perr != nil {
			return fmt.Errorf("invalid RPS: %s", valueStr)
		}
		kind = limitMinRPS
		t.MinRPS = f

	default:
		return fmt.Errorf("unknown threshold metric: %s", metric)
	}
	if err != nil {
		return err
	}
	t.set |= kind
	return nil
}
