package env

import (
	"fmt"
	"os"
	"unicode"

	"github.com/abdul-hamid-achik/parsa/packages/builtin"
	"github.com/abdul-hamid-achik/parsa/packages/core/cursor"
	"github.com/abdul-hamid-achik/parsa/packages/core/parser"
)

// Assignment is one KEY=value line of an env document.
type Assignment struct {
	Key   string
	Value string
	// Quoted is set when the value was written in single or double quotes.
	Quoted bool
	// SingleQuoted values are taken literally and never interpolated.
	SingleQuoted bool
	Export       bool

	KeySpan   cursor.Span
	ValueSpan cursor.Span
}

// Line returns the 1-based line the assignment was written on.
func (a Assignment) Line() int {
	return a.KeySpan.Position().Line
}

// Document is a parsed env file.
type Document struct {
	File        string
	Source      string
	Assignments []Assignment
	// Skipped holds the lines a lenient parse could not read.
	Skipped []*SyntaxError
}

// Map returns the document as key-value pairs. Later assignments win.
func (d *Document) Map() map[string]string {
	result := make(map[string]string, len(d.Assignments))
	for _, a := range d.Assignments {
		result[a.Key] = a.Value
	}
	return result
}

// Lookup returns the last assignment to key.
func (d *Document) Lookup(key string) (Assignment, bool) {
	for i := len(d.Assignments) - 1; i >= 0; i-- {
		if d.Assignments[i].Key == key {
			return d.Assignments[i], true
		}
	}
	return Assignment{}, false
}

// Keys returns the assigned keys in order of first appearance.
func (d *Document) Keys() []string {
	seen := make(map[string]bool, len(d.Assignments))
	keys := make([]string, 0, len(d.Assignments))
	for _, a := range d.Assignments {
		if !seen[a.Key] {
			seen[a.Key] = true
			keys = append(keys, a.Key)
		}
	}
	return keys
}

// Option configures ParseDocument.
type Option func(*options)

type options struct {
	strict bool
}

// WithStrict makes the first unreadable line a parse error instead of
// skipping it.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// ParseDocument parses an env document. file is only used in error messages.
func ParseDocument(file, input string, opts ...Option) (*Document, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	doc := &Document{File: file, Source: input}
	c := cursor.New(input)
	for !c.AtEOF() {
		m := c.Mark()
		a, err := entry(c)
		if err != nil {
			se := newSyntaxError(file, input, err)
			if o.strict {
				return nil, se
			}
			doc.Skipped = append(doc.Skipped, se)
			c.Restore(m)
			builtin.Line(c)
			builtin.Newline(c)
			continue
		}
		if a != nil {
			doc.Assignments = append(doc.Assignments, *a)
		}
	}
	return doc, nil
}

// ParseFile reads and parses the env document at path.
func ParseFile(path string, opts ...Option) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open env file: %w", err)
	}
	return ParseDocument(path, string(content), opts...)
}

func isKeyRune(r rune) bool {
	return r == '_' || r == '.' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

var (
	blanks = parser.Lift[cursor.Span, *LineError](builtin.Spaces)

	keyName = parser.WithSpan(parser.ConvertErr(builtin.TakeWhile1("key", isKeyRune), lineErrorFromMatch))
	equals  = parser.ConvertErr(builtin.Take("="), lineErrorFromTake)

	exportKeyword = parser.Optional(parser.Then(
		parser.ConvertErr(builtin.Take("export"), lineErrorFromTake),
		parser.ConvertErr(builtin.TakeWhile1("blank", isBlank), lineErrorFromMatch),
	))

	quotedValue = parser.Or(quotedWith('"'), quotedWith('\''))

	bareValue = parser.Map(parser.Lift[cursor.Span, *LineError](builtin.Line), func(s cursor.Span) value {
		s = s.TrimRight(" \t\r")
		return value{text: s.String(), span: s}
	})

	// A quoted value must be followed by nothing but an optional comment.
	// Anything else makes the whole remainder of the line a bare value,
	// except an unterminated quote, which is a bad line.
	valueLine = parser.Or(
		parser.After(quotedValue, lineEnd),
		parser.After(bareValue, parser.Lift[*cursor.Span, *LineError](parser.Optional(builtin.Newline))),
	)

	blankLine = parser.Before(blanks, lineEnd)

	entry = parser.Or(
		parser.Map(blankLine, func(struct{}) *Assignment { return nil }),
		parser.Map(assignment, func(a Assignment) *Assignment { return &a }),
	)
)

// quotedWith reads a value in quote. An opening quote without its closing
// one is unrecoverable.
func quotedWith(quote rune) parser.Parser[value, *LineError] {
	quoted := parser.Commit(parser.ConvertErr(builtin.Quoted(quote), lineErrorFromQuote), commitUnterminated)
	return parser.Map(parser.WithSpan(quoted), func(s parser.Spanned[string]) value {
		return value{text: s.Value, span: s.Span, quote: quote}
	})
}

type value struct {
	text  string
	span  cursor.Span
	quote rune
}

// assignment reads "[export ]KEY = value".
func assignment(c *cursor.Cursor) (Assignment, *LineError) {
	var a Assignment
	blanks(c)
	exported, _ := exportKeyword(c)
	a.Export = exported != nil

	key, err := parser.After(keyName, blanks)(c)
	if err != nil {
		return a, err
	}
	if _, err := parser.After(equals, blanks)(c); err != nil {
		return a, err
	}
	v, err := valueLine(c)
	if err != nil {
		return a, err
	}

	a.Key = key.Value.String()
	a.KeySpan = key.Span
	a.Value = v.text
	a.ValueSpan = v.span
	a.Quoted = v.quote != 0
	a.SingleQuoted = v.quote == '\''
	return a, nil
}

// lineEnd accepts trailing blanks and an optional comment, then a line break
// or the end of input.
func lineEnd(c *cursor.Cursor) (struct{}, *LineError) {
	m := c.Mark()
	builtin.Spaces(c)
	if c.Peek() == '#' {
		builtin.Line(c)
	}
	if c.AtEOF() {
		return struct{}{}, nil
	}
	if _, err := builtin.Newline(c); err != nil {
		offset := c.Offset()
		c.Restore(m)
		return struct{}{}, &LineError{Kind: ErrTrailingInput, Offset: offset, Err: err}
	}
	return struct{}{}, nil
}
