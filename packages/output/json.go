package output

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/abdul-hamid-achik/parsa/packages/core/env"
)

// Report is the document the JSON and YAML formatters write on Flush.
type Report struct {
	Version    string           `json:"version,omitempty" yaml:"version,omitempty"`
	Documents  []map[string]any `json:"documents" yaml:"documents"`
	Selections []Selection      `json:"selections,omitempty" yaml:"selections,omitempty"`
	Errors     []ReportError    `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Selection is one --select result.
type Selection struct {
	File  string `json:"file" yaml:"file"`
	Path  string `json:"path" yaml:"path"`
	Value any    `json:"value" yaml:"value"`
}

// ReportError is an error with its location when it is a syntax error.
type ReportError struct {
	Message string `json:"message" yaml:"message"`
	File    string `json:"file,omitempty" yaml:"file,omitempty"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column  int    `json:"column,omitempty" yaml:"column,omitempty"`
}

// collector accumulates a Report for the structured formatters.
type collector struct {
	report Report
}

func (c *collector) FormatDocument(doc *env.Document) {
	c.report.Documents = append(c.report.Documents, Render(doc))
}

func (c *collector) FormatValue(file, path string, value any) {
	c.report.Selections = append(c.report.Selections, Selection{File: file, Path: path, Value: value})
}

func (c *collector) FormatError(err error) {
	re := ReportError{Message: err.Error()}
	var se *env.SyntaxError
	if errors.As(err, &se) {
		re.File = se.File
		re.Line = se.Position.Line
		re.Column = se.Position.Column
	}
	c.report.Errors = append(c.report.Errors, re)
}

func (c *collector) FormatHeader(version string) {
	c.report.Version = version
}

func (c *collector) take() Report {
	r := c.report
	if r.Documents == nil {
		r.Documents = []map[string]any{}
	}
	c.report = Report{Version: r.Version}
	return r
}

// JSONFormatter formats parsed documents as JSON
type JSONFormatter struct {
	collector
	writer io.Writer
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

// Flush writes the accumulated JSON output
func (f *JSONFormatter) Flush() error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(f.take())
}
