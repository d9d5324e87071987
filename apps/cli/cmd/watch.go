package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file|directory>...",
	Short: "Re-parse env files whenever they change",
	Long: `Parse env files, then watch them and parse again on every write.

Examples:
  parsa watch .env
  parsa watch ./config/ --strict
  parsa watch .env .env.local --resolve`,
	Args: cobra.MinimumNArgs(1),
	RunE: watchCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	watchStrictFlag  bool
	watchResolveFlag bool
)

func init() {
	watchCmd.Flags().BoolVar(&watchStrictFlag, "strict", false, "Fail on the first line that cannot be parsed")
	watchCmd.Flags().BoolVarP(&watchResolveFlag, "resolve", "r", false, "Expand {{placeholders}} in values")
}

func watchCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return withExitCode(ExitIOError, err)
	}
	if len(files) == 0 {
		return withExitCode(ExitUsageError, fmt.Errorf("no env files found"))
	}
	for _, f := range files {
		if f == stdinName {
			return withExitCode(ExitUsageError, fmt.Errorf("cannot watch standard input"))
		}
	}

	opts := parseOptions{
		format:  cfg.Format,
		strict:  cfg.GetStrict() || watchStrictFlag,
		resolve: cfg.GetResolve() || watchResolveFlag,
	}

	runOnce := func() {
		formatter, err := newFormatter(opts.format, cmd.OutOrStdout())
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return
		}
		if _, err := parseFiles(files, opts, formatter, cmd.ErrOrStderr()); err != nil {
			formatter.FormatError(err)
		}
		if err := flush(formatter); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	}
	runOnce()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files instead of writing them, so watch the
	// directories and filter events by name.
	watched := make(map[string]bool)
	targets := make(map[string]bool)
	for _, file := range files {
		abs, _ := filepath.Abs(file)
		targets[abs] = true
		dir := filepath.Dir(file)
		if watched[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return withExitCode(ExitIOError, fmt.Errorf("failed to watch %s: %w", dir, err))
		}
		watched[dir] = true
		log.Debugf("watching %s", dir)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var debounceTimer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, _ := filepath.Abs(event.Name)
			if !targets[abs] || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
				log.Infof("reloading after change to %s", name)
				fmt.Fprintf(cmd.OutOrStdout(), "\n\nFile changed: %s\n\n", name)
				runOnce()
				fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watcher error: %v\n", err)

		case <-sigCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil
		}
	}
}
