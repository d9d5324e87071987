package output

import (
	"strconv"

	"github.com/abdul-hamid-achik/parsa/packages/builtin"
	"github.com/abdul-hamid-achik/parsa/packages/core/env"
	"github.com/abdul-hamid-achik/parsa/packages/core/parser"
)

// Render converts a document into the shape shared by the JSON and YAML
// formatters and by schema validation:
//
//	{"file": ..., "variables": {KEY: value}, "assignments": [...], "skipped": [...]}
//
// Unquoted values that read back as integers, booleans or UUIDs are typed.
func Render(doc *env.Document) map[string]any {
	variables := make(map[string]any, len(doc.Assignments))
	assignments := make([]any, 0, len(doc.Assignments))
	for _, a := range doc.Assignments {
		v := TypedValue(a)
		variables[a.Key] = v

		pos := a.KeySpan.Position()
		entry := map[string]any{
			"key":    a.Key,
			"value":  v,
			"line":   pos.Line,
			"column": pos.Column,
		}
		if a.Quoted {
			entry["quoted"] = true
		}
		if a.Export {
			entry["export"] = true
		}
		assignments = append(assignments, entry)
	}

	skipped := make([]any, 0, len(doc.Skipped))
	for _, se := range doc.Skipped {
		skipped = append(skipped, map[string]any{
			"line":    se.Position.Line,
			"column":  se.Position.Column,
			"message": se.Err.Error(),
		})
	}

	return map[string]any{
		"file":        doc.File,
		"variables":   variables,
		"assignments": assignments,
		"skipped":     skipped,
	}
}

// TypedValue returns the value of a as an int64, bool or canonical UUID string
// when the whole unquoted value reads as one, and as the raw string otherwise.
func TypedValue(a env.Assignment) any {
	if a.Quoted {
		return a.Value
	}
	if n, ok := whole(builtin.Int[int64], a.Value); ok && strconv.FormatInt(n, 10) == a.Value {
		return n
	}
	switch a.Value {
	case "true":
		return true
	case "false":
		return false
	}
	if id, ok := whole(builtin.UUID, a.Value); ok {
		return id.String()
	}
	return a.Value
}

// whole runs p over s and reports whether it succeeded and consumed all of s.
func whole[T any, E parser.Error](p parser.Parser[T, E], s string) (T, bool) {
	v, c, err := p.ParseString(s)
	if parser.Failed(err) || !c.AtEOF() {
		var zero T
		return zero, false
	}
	return v, true
}
