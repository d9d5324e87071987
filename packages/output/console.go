package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abdul-hamid-achik/parsa/packages/core/env"
	"github.com/fatih/color"
)

// formatValue formats a value for display, truncating long values
func formatValue(v any, maxLen int) string {
	switch val := v.(type) {
	case []any:
		return fmt.Sprintf("[array with %d items]", len(val))
	case map[string]any:
		return fmt.Sprintf("{object with %d keys}", len(val))
	case string:
		if maxLen > 0 && len(val) > maxLen {
			val = val[:maxLen] + "..."
		}
		return fmt.Sprintf("%q", val)
	}
	str := fmt.Sprintf("%v", v)
	if maxLen > 0 && len(str) > maxLen {
		return str[:maxLen] + "..."
	}
	return str
}

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

func (f *ConsoleFormatter) FormatDocument(doc *env.Document) {
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(f.writer, "\n%s\n\n", bold(doc.File))

	width := 0
	for _, a := range doc.Assignments {
		width = max(width, len(a.Key))
	}
	for _, a := range doc.Assignments {
		if f.verbose {
			fmt.Fprintf(f.writer, "  %s", faint(fmt.Sprintf("%4d ", a.Line())))
		} else {
			fmt.Fprintf(f.writer, "  ")
		}
		key := a.Key + strings.Repeat(" ", width-len(a.Key))
		fmt.Fprintf(f.writer, "%s = %s", cyan(key), formatValue(TypedValue(a), 100))
		if f.verbose && a.Export {
			fmt.Fprintf(f.writer, " %s", faint("(export)"))
		}
		fmt.Fprintf(f.writer, "\n")
	}

	for _, se := range doc.Skipped {
		fmt.Fprintf(f.writer, "  %s line %d skipped: %v\n", yellow("!"), se.Position.Line, se.Err)
	}

	fmt.Fprintf(f.writer, "\n%d assignments", len(doc.Assignments))
	if len(doc.Skipped) > 0 {
		fmt.Fprintf(f.writer, ", %s", yellow(fmt.Sprintf("%d skipped", len(doc.Skipped))))
	}
	fmt.Fprintf(f.writer, "\n")
}

func (f *ConsoleFormatter) FormatValue(file, path string, value any) {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s %s\n", file, cyan(path), formatValue(value, 0))
}

// FormatError prints err. Syntax errors get the offending line with a caret
// under the failing column.
func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)

	var se *env.SyntaxError
	if !errors.As(err, &se) {
		return
	}
	gutter := fmt.Sprintf("%4d | ", se.Position.Line)
	fmt.Fprintf(f.writer, "%s%s\n", faint(gutter), se.Text)
	fmt.Fprintf(f.writer, "%s%s%s\n", faint(strings.Repeat(" ", len(gutter)-2)+"| "), caretPadding(se.Text, se.Position.Column), red("^"))
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", bold("parsa"), version)
}

// caretPadding returns the whitespace that puts a caret under the given
// 1-based rune column of line. Tabs are kept so the caret lines up.
func caretPadding(line string, column int) string {
	var b strings.Builder
	n := 1
	for _, r := range line {
		if n >= column {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteByte(' ')
		}
		n++
	}
	for ; n < column; n++ {
		b.WriteByte(' ')
	}
	return b.String()
}
