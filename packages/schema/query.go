package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/parsa/packages/builtin"
	"github.com/abdul-hamid-achik/parsa/packages/core/cursor"
	"github.com/abdul-hamid-achik/parsa/packages/core/env"
	"github.com/abdul-hamid-achik/parsa/packages/core/parser"
	"github.com/abdul-hamid-achik/parsa/packages/output"
	"github.com/tidwall/gjson"
)

// PathError reports a malformed query path.
type PathError struct {
	Path   string
	Offset int
	Err    error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid path %q at offset %d: %v", e.Path, e.Offset, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

type segmentError struct {
	Offset int
	Err    error
}

func (e *segmentError) Error() string {
	return e.Err.Error()
}

func (e *segmentError) Unwrap() error {
	return e.Err
}

func fromTake(e *builtin.TakeError) *segmentError {
	return &segmentError{Offset: e.Offset, Err: e}
}

func fromMatch(e *builtin.MatchError) *segmentError {
	return &segmentError{Offset: e.Offset, Err: e}
}

func fromQuote(e *builtin.QuoteError) *segmentError {
	return &segmentError{Offset: e.Offset, Err: e}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

var (
	openBracket  = parser.ConvertErr(builtin.Take("["), fromTake)
	closeBracket = parser.ConvertErr(builtin.Take("]"), fromTake)

	// [0]
	indexSegment = parser.Map(
		parser.Before(openBracket, parser.After(parser.ConvertErr(builtin.TakeWhile1("index", isDigit), fromMatch), closeBracket)),
		cursor.Span.String,
	)

	// ["key.with.dots"]
	quotedSegment = parser.Map(
		parser.Before(openBracket, parser.After(parser.ConvertErr(builtin.Quoted('"'), fromQuote), closeBracket)),
		escapeKey,
	)

	// key, passed to gjson as written so wildcards and modifiers keep working
	fieldSegment = parser.Map(
		parser.ConvertErr(builtin.TakeWhile1("field name", func(r rune) bool { return r != '.' && r != '[' && r != ']' }), fromMatch),
		cursor.Span.String,
	)

	segment = parser.Or(indexSegment, quotedSegment, fieldSegment)
	dot     = parser.ConvertErr(builtin.Take("."), fromTake)
)

func escapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParsePath converts a query path such as `assignments[0].key` or
// `variables["app.name"]` into gjson syntax.
func ParsePath(path string) (string, error) {
	c := cursor.New(path)
	var parts []string
	for {
		part, err := segment(c)
		if err != nil {
			return "", &PathError{Path: path, Offset: err.Offset, Err: err}
		}
		parts = append(parts, part)
		if c.AtEOF() {
			break
		}
		if c.HasPrefix("[") {
			continue
		}
		if _, err := dot(c); err != nil {
			return "", &PathError{Path: path, Offset: err.Offset, Err: err}
		}
	}
	return strings.Join(parts, "."), nil
}

// Query returns the value at path in the rendered form of doc.
func Query(doc *env.Document, path string) (any, bool, error) {
	gpath, err := ParsePath(path)
	if err != nil {
		return nil, false, err
	}
	data, err := json.Marshal(output.Render(doc))
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal document: %w", err)
	}
	result := gjson.GetBytes(data, gpath)
	if !result.Exists() {
		return nil, false, nil
	}
	return result.Value(), true, nil
}
