package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/abdul-hamid-achik/parsa/packages/core/env"
	"github.com/abdul-hamid-achik/parsa/packages/schema"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file|directory|->...",
	Short: "Parse env files and print their assignments",
	Long: `Parse dotenv files and print their assignments.

Lines that cannot be parsed are reported and skipped unless --strict is set,
in which case the first bad line stops the file.

Examples:
  parsa parse .env
  parsa parse ./config/ -o json
  parsa parse .env .env.local --resolve --env staging
  parsa parse .env --select variables.DATABASE_URL
  cat .env | parsa parse -`,
	Args: cobra.MinimumNArgs(1),
	RunE: parseCommand,
}

var (
	outputFlag     string
	outputFileFlag string
	strictFlag     bool
	resolveFlag    bool
	selectFlag     string
)

var (
	errParseFailed = errors.New("one or more files failed to parse")
	errReadFailed  = errors.New("one or more files could not be read")
)

func init() {
	parseCmd.Flags().StringVarP(&outputFlag, "output", "o", getEnvString("PARSA_OUTPUT", ""), "Output format: console, json, yaml (env: PARSA_OUTPUT)")
	parseCmd.Flags().StringVar(&outputFileFlag, "output-file", getEnvString("PARSA_OUTPUT_FILE", ""), "Write output to file (default: stdout) (env: PARSA_OUTPUT_FILE)")
	parseCmd.Flags().BoolVar(&strictFlag, "strict", getEnvBool("PARSA_STRICT", false), "Fail on the first line that cannot be parsed (env: PARSA_STRICT)")
	parseCmd.Flags().BoolVarP(&resolveFlag, "resolve", "r", getEnvBool("PARSA_RESOLVE", false), "Expand {{placeholders}} in values (env: PARSA_RESOLVE)")
	parseCmd.Flags().StringVarP(&selectFlag, "select", "s", "", `Print a single value, e.g. "variables.PORT" or "assignments[0].key"`)
}

// parseOptions merges flags over the config file.
type parseOptions struct {
	format  string
	strict  bool
	resolve bool
	path    string
}

func currentParseOptions(cmd *cobra.Command) parseOptions {
	opts := parseOptions{
		format:  cfg.Format,
		strict:  cfg.GetStrict(),
		resolve: cfg.GetResolve(),
		path:    selectFlag,
	}
	if outputFlag != "" {
		opts.format = outputFlag
	}
	if cmd.Flags().Changed("strict") || strictFlag {
		opts.strict = strictFlag
	}
	if cmd.Flags().Changed("resolve") || resolveFlag {
		opts.resolve = resolveFlag
	}
	return opts
}

func parseCommand(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if outputFileFlag != "" {
		f, err := os.Create(outputFileFlag)
		if err != nil {
			return withExitCode(ExitIOError, fmt.Errorf("cannot create output file: %w", err))
		}
		defer f.Close()
		out = f
	}

	files, err := collectFiles(args)
	if err != nil {
		return withExitCode(ExitIOError, err)
	}
	if len(files) == 0 {
		return withExitCode(ExitUsageError, fmt.Errorf("no env files found"))
	}

	opts := currentParseOptions(cmd)
	if opts.path != "" {
		if _, err := schema.ParsePath(opts.path); err != nil {
			return withExitCode(ExitUsageError, err)
		}
	}

	formatter, err := newFormatter(opts.format, out)
	if err != nil {
		return err
	}
	formatter.FormatHeader(version)

	result, err := parseFiles(files, opts, formatter, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := flush(formatter); err != nil {
		return err
	}
	return result.err()
}

// parseResult records how the files of one run failed.
type parseResult struct {
	parseFailed bool
	readFailed  bool
}

// record notes a failure to load a document. Syntax errors are parse
// failures; anything else means the file could not be read.
func (r *parseResult) record(err error) {
	var se *env.SyntaxError
	if errors.As(err, &se) {
		r.parseFailed = true
	} else {
		r.readFailed = true
	}
}

// err maps the outcome to an exit code. An unreadable file wins over a
// parse failure.
func (r parseResult) err() error {
	switch {
	case r.readFailed:
		return withExitCode(ExitIOError, errReadFailed)
	case r.parseFailed:
		return withExitCode(ExitParseError, errParseFailed)
	}
	return nil
}

// parseFiles parses, resolves and prints each file in turn. With resolve set,
// values from earlier files are visible to later ones as {{file.KEY}}.
func parseFiles(files []string, opts parseOptions, formatter Formatter, errOut io.Writer) (parseResult, error) {
	var result parseResult
	var resolver *env.Resolver
	if opts.resolve {
		r, err := newResolver(errOut)
		if err != nil {
			return result, err
		}
		resolver = r
	}

	for _, file := range files {
		doc, err := loadDocument(file, opts.strict)
		if err != nil {
			formatter.FormatError(err)
			result.record(err)
			continue
		}
		if len(doc.Skipped) > 0 {
			log.Noticef("%s: skipped %d line(s)", file, len(doc.Skipped))
		}

		if resolver != nil {
			scope := scopeOf(file)
			doc = resolver.ResolveDocument(scope, doc)
			for _, a := range doc.Assignments {
				resolver.SetScoped(scope, a.Key, a.Value)
			}
		}

		if opts.path == "" {
			formatter.FormatDocument(doc)
			continue
		}

		value, ok, err := schema.Query(doc, opts.path)
		if err != nil {
			return result, withExitCode(ExitUsageError, err)
		}
		if !ok {
			formatter.FormatError(fmt.Errorf("%s: nothing at %q", doc.File, opts.path))
			result.parseFailed = true
			continue
		}
		formatter.FormatValue(doc.File, opts.path, value)
	}
	return result, nil
}
