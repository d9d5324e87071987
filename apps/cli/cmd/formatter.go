package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/abdul-hamid-achik/parsa/packages/core/env"
	"github.com/abdul-hamid-achik/parsa/packages/output"
)

// Formatter interface for all output formatters
type Formatter interface {
	FormatDocument(doc *env.Document)
	FormatValue(file, path string, value any)
	FormatError(err error)
	FormatHeader(version string)
}

// Flushable interface for formatters that need to flush output
type Flushable interface {
	Flush() error
}

func newFormatter(format string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(format) {
	case "json":
		return output.NewJSONFormatter(output.JSONWithWriter(w)), nil
	case "yaml":
		return output.NewYAMLFormatter(output.YAMLWithWriter(w)), nil
	case "", "console":
		return output.NewConsoleFormatter(
			output.WithWriter(w),
			output.WithVerbose(verboseFlag > 0),
			output.WithNoColor(noColorFlag),
		), nil
	}
	return nil, withExitCode(ExitUsageError, fmt.Errorf("unknown output format %q (want console, json or yaml)", format))
}

func flush(f Formatter) error {
	if flushable, ok := f.(Flushable); ok {
		if err := flushable.Flush(); err != nil {
			return withExitCode(ExitIOError, fmt.Errorf("error writing output: %w", err))
		}
	}
	return nil
}
