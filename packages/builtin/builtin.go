package builtin

import (
	"unicode"

	"github.com/abdul-hamid-achik/parsa/packages/core/cursor"
	"github.com/abdul-hamid-achik/parsa/packages/core/parser"
)

// Word returns the next run of non-whitespace characters. It fails with a
// *WordError, consuming nothing, if the input is at whitespace or at its end.
func Word(c *cursor.Cursor) (cursor.Span, *WordError) {
	m := c.Mark()
	for r := c.Peek(); r != cursor.EOF && !unicode.IsSpace(r); r = c.Peek() {
		c.Next()
	}
	span := c.SliceFrom(m)
	if span.IsEmpty() {
		c.Restore(m)
		return cursor.Span{}, &WordError{Offset: int(m)}
	}
	return span, nil
}

// Whitespace consumes leading whitespace, newlines included, and returns it.
// It never fails.
func Whitespace(c *cursor.Cursor) (cursor.Span, *parser.Never) {
	return TakeWhile(unicode.IsSpace)(c)
}

// Spaces consumes blanks (spaces and tabs) but stops at line breaks.
func Spaces(c *cursor.Cursor) (cursor.Span, *parser.Never) {
	return TakeWhile(isBlank)(c)
}

// Take matches literal exactly and returns the matched span. On failure the
// cursor is unchanged and the error names the expected literal.
func Take(literal string) parser.Parser[cursor.Span, *TakeError] {
	return func(c *cursor.Cursor) (cursor.Span, *TakeError) {
		m := c.Mark()
		rest := c.Rest()
		n := min(len(rest), len(literal))
		if rest[:n] != literal[:n] {
			return cursor.Span{}, &TakeError{Expected: literal, Offset: int(m), Reason: NoMatch}
		}
		if n < len(literal) {
			return cursor.Span{}, &TakeError{Expected: literal, Offset: int(m), Reason: NoSpace}
		}
		c.Advance(len(literal))
		return c.SliceFrom(m), nil
	}
}

// Next consumes any single character.
func Next(c *cursor.Cursor) (rune, *EndOfInputError) {
	if c.AtEOF() {
		return 0, &EndOfInputError{Offset: c.Offset()}
	}
	return c.Next(), nil
}

// TakeWhile consumes characters while pred holds. It never fails and may
// return an empty span.
func TakeWhile(pred func(rune) bool) parser.Parser[cursor.Span, *parser.Never] {
	return func(c *cursor.Cursor) (cursor.Span, *parser.Never) {
		m := c.Mark()
		for r := c.Peek(); r != cursor.EOF && pred(r); r = c.Peek() {
			c.Next()
		}
		return c.SliceFrom(m), nil
	}
}

// TakeWhile1 is like TakeWhile but requires at least one character. name is
// used in the error message.
func TakeWhile1(name string, pred func(rune) bool) parser.Parser[cursor.Span, *MatchError] {
	run := TakeWhile(pred)
	return func(c *cursor.Cursor) (cursor.Span, *MatchError) {
		span, _ := run(c)
		if span.IsEmpty() {
			return cursor.Span{}, &MatchError{Name: name, Offset: c.Offset()}
		}
		return span, nil
	}
}

// Line consumes the rest of the current line, excluding the line break.
func Line(c *cursor.Cursor) (cursor.Span, *parser.Never) {
	return TakeWhile(func(r rune) bool { return r != '\n' })(c)
}

// Newline matches "\n" or "\r\n".
var Newline = parser.Or(Take("\r\n"), Take("\n"))

// End succeeds only when the input is exhausted.
func End(c *cursor.Cursor) (struct{}, *TrailingInputError) {
	if !c.AtEOF() {
		return struct{}{}, &TrailingInputError{Offset: c.Offset(), Rest: c.Rest()}
	}
	return struct{}{}, nil
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}
