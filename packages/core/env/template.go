package env

import (
	"unicode"

	"github.com/abdul-hamid-achik/parsa/packages/builtin"
	"github.com/abdul-hamid-achik/parsa/packages/core/cursor"
	"github.com/abdul-hamid-achik/parsa/packages/core/parser"
)

// segment is a piece of a template: literal text, or a {{ref}} placeholder.
type segment struct {
	raw cursor.Span
	ref string
	env bool
}

func (s segment) isRef() bool {
	return s.ref != ""
}

// name returns the reference as written, with the $ sigil for environment
// references.
func (s segment) name() string {
	if s.env {
		return "$" + s.ref
	}
	return s.ref
}

type templateError struct {
	Offset int
	Err    error
}

func (e *templateError) Error() string {
	return e.Err.Error()
}

func templateFromTake(e *builtin.TakeError) *templateError {
	return &templateError{Offset: e.Offset, Err: e}
}

func templateFromMatch(e *builtin.MatchError) *templateError {
	return &templateError{Offset: e.Offset, Err: e}
}

func isRefRune(r rune) bool {
	return r == '_' || r == '.' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

var (
	refSpace = parser.Lift[cursor.Span, *templateError](builtin.Spaces)
	refOpen  = parser.After(parser.ConvertErr(builtin.Take("{{"), templateFromTake), refSpace)
	refClose = parser.Before(refSpace, parser.ConvertErr(builtin.Take("}}"), templateFromTake))
	refSigil = parser.Lift[*cursor.Span, *templateError](parser.Optional(builtin.Take("$")))
	refName  = parser.ConvertErr(builtin.TakeWhile1("variable name", isRefRune), templateFromMatch)

	placeholder = parser.Map(
		parser.WithSpan(parser.Before(refOpen, parser.After(parser.Then(refSigil, refName), refClose))),
		func(s parser.Spanned[parser.Pair[*cursor.Span, cursor.Span]]) segment {
			return segment{raw: s.Span, ref: s.Value.Second.String(), env: s.Value.First != nil}
		},
	)

	literal = parser.Map(
		parser.Or(
			parser.ConvertErr(builtin.TakeWhile1("text", func(r rune) bool { return r != '{' }), templateFromMatch),
			parser.ConvertErr(builtin.Take("{"), templateFromTake),
		),
		func(s cursor.Span) segment { return segment{raw: s} },
	)

	// template splits any input into segments; literal accepts every
	// character a placeholder does not.
	template = parser.Many(parser.Or(placeholder, literal))
)

func parseTemplate(input string) []segment {
	segments, _, _ := template.ParseString(input)
	return segments
}
