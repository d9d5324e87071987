package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/parsa/packages/bench"
	"github.com/abdul-hamid-achik/parsa/packages/core/config"
	"github.com/spf13/cobra"
)

var benchCmd = &cobra.Command{
	Use:   "bench <file|directory>...",
	Short: "Measure how fast env files parse",
	Long: `Parse env files repeatedly from several goroutines and report
throughput and latency percentiles.

By default a fixed pool of workers parses back to back. With --rate, parses
start at a constant rate instead. Thresholds turn the run into a pass/fail
check.

Examples:
  parsa bench .env
  parsa bench ./config/ -d 30s -w 8
  parsa bench .env --rate 50000 --ramp-up 5s
  parsa bench .env -n 1000000 --threshold "p99<20us,rps>100000"`,
	Args: cobra.MinimumNArgs(1),
	RunE: benchCommand,
}

var (
	benchDurationFlag   string
	benchRateFlag       float64
	benchWorkersFlag    int
	benchIterationsFlag int64
	benchRampUpFlag     string
	benchThresholdFlag  string
	benchNoProgressFlag bool
	benchJSONFlag       bool
)

func init() {
	benchCmd.Flags().StringVarP(&benchDurationFlag, "duration", "d", "", "Benchmark duration (e.g., 10s, 1m); defaults to the config value")
	benchCmd.Flags().Float64Var(&benchRateFlag, "rate", 0, "Target parses per second (switches to rate mode)")
	benchCmd.Flags().IntVarP(&benchWorkersFlag, "workers", "w", getEnvInt("PARSA_BENCH_WORKERS", 0), "Concurrent workers (env: PARSA_BENCH_WORKERS)")
	benchCmd.Flags().Int64VarP(&benchIterationsFlag, "iterations", "n", 0, "Stop after this many parses")
	benchCmd.Flags().StringVar(&benchRampUpFlag, "ramp-up", "0s", "Ramp-up time to reach the target rate or worker count")
	benchCmd.Flags().StringVar(&benchThresholdFlag, "threshold", "", "Pass/fail thresholds (e.g., \"p95<10us,errors<0.1%\")")
	benchCmd.Flags().BoolVar(&benchNoProgressFlag, "no-progress", false, "Disable real-time progress display")
	benchCmd.Flags().BoolVar(&benchJSONFlag, "json", false, "Output the summary as JSON")
}

func benchCommand(cmd *cobra.Command, args []string) error {
	benchCfg, err := buildBenchConfig(cfg.Bench)
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}

	files, err := collectFiles(args)
	if err != nil {
		return withExitCode(ExitIOError, err)
	}
	if len(files) == 0 {
		return withExitCode(ExitUsageError, fmt.Errorf("no env files found"))
	}

	// With --json the human report goes to stderr, keeping stdout for JSON.
	reportOut := cmd.OutOrStdout()
	if benchJSONFlag {
		reportOut = cmd.ErrOrStderr()
	}
	reporter := bench.NewReporter(
		bench.WithWriter(reportOut),
		bench.WithNoColor(noColorFlag),
		bench.WithNoProgress(benchNoProgressFlag || benchJSONFlag),
		bench.WithVerbose(verboseFlag > 0),
	)

	runner := bench.NewRunner(benchCfg, bench.WithReporter(reporter), bench.WithVersion(version))
	for _, file := range files {
		if file == stdinName {
			return withExitCode(ExitUsageError, fmt.Errorf("cannot benchmark standard input"))
		}
		if err := runner.LoadFile(file); err != nil {
			return withExitCode(ExitIOError, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(cmd.ErrOrStderr(), "\nReceived interrupt, stopping gracefully...")
			cancel()
		case <-ctx.Done():
		}
	}()

	log.Infof("benchmarking %d input(s) in %s mode", len(files), benchCfg.Mode)
	result, err := runner.Run(ctx)
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}

	if benchJSONFlag {
		jsonOut := bench.NewReporter(bench.WithWriter(cmd.OutOrStdout()), bench.WithNoColor(true))
		if err := jsonOut.JSONSummary(result.Summary, result.Thresholds); err != nil {
			return withExitCode(ExitIOError, err)
		}
	}

	if result.HasThresholdFailures() {
		return withExitCode(ExitCheckFailure, fmt.Errorf("benchmark thresholds failed"))
	}
	return nil
}

// buildBenchConfig starts from the config file's bench section and applies
// the flags that were set.
func buildBenchConfig(fileCfg config.BenchConfig) (*bench.Config, error) {
	benchCfg := bench.DefaultConfig()

	d, err := fileCfg.GetDuration()
	if err != nil {
		return nil, err
	}
	benchCfg.Duration = d
	if fileCfg.Workers > 0 {
		benchCfg.Workers = fileCfg.Workers
	}
	if fileCfg.Rate > 0 {
		benchCfg.Mode = bench.RateMode
		benchCfg.Rate = float64(fileCfg.Rate)
	}
	thresholds := fileCfg.Thresholds

	if benchDurationFlag != "" {
		d, err := time.ParseDuration(benchDurationFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid duration: %w", err)
		}
		benchCfg.Duration = d
	}
	if benchRateFlag > 0 {
		benchCfg.Mode = bench.RateMode
		benchCfg.Rate = benchRateFlag
	}
	if benchWorkersFlag > 0 {
		benchCfg.Workers = benchWorkersFlag
	}
	if benchIterationsFlag > 0 {
		benchCfg.Iterations = benchIterationsFlag
		// An iteration budget runs to completion unless a duration was asked for.
		if benchDurationFlag == "" {
			benchCfg.Duration = 24 * time.Hour
		}
	}
	if benchRampUpFlag != "0s" {
		d, err := time.ParseDuration(benchRampUpFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid ramp-up: %w", err)
		}
		benchCfg.RampUp = d
	}
	if benchThresholdFlag != "" {
		thresholds = benchThresholdFlag
	}

	if thresholds != "" {
		t, err := bench.ParseThresholds(thresholds)
		if err != nil {
			return nil, fmt.Errorf("invalid thresholds: %w", err)
		}
		benchCfg.Thresholds = t
	}

	return benchCfg, nil
}
