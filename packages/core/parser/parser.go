package parser

import (
	"github.com/abdul-hamid-achik/parsa/packages/core/cursor"
)

// Error is the constraint satisfied by every parser error type. The zero value
// of an Error type means the parser succeeded.
type Error interface {
	comparable
	error
}

// Parser consumes a prefix of the cursor and returns the parsed value, or
// fails with a non-zero error of type E.
//
// Parsers are plain values with no internal state, so a parser built once can
// be reused for any number of parses, including concurrent ones on separate
// cursors.
type Parser[T any, E Error] func(c *cursor.Cursor) (T, E)

// Parse runs the parser on c.
func (p Parser[T, E]) Parse(c *cursor.Cursor) (T, E) {
	return p(c)
}

// ParseString runs the parser on a fresh cursor over input and returns the
// cursor so callers can check how much was consumed.
func (p Parser[T, E]) ParseString(input string) (T, *cursor.Cursor, E) {
	c := cursor.New(input)
	v, err := p(c)
	return v, c, err
}

// Parsable is implemented by types that construct themselves from a cursor.
// The Parse method has the Parser shape, so it can be handed to any
// combinator through For.
type Parsable[T any, E Error] interface {
	Parse(c *cursor.Cursor) (T, E)
}

// For returns the Parse method of P's zero value as a Parser. P should use a
// value receiver, or a pointer receiver that does not dereference.
func For[P Parsable[P, E], E Error]() Parser[P, E] {
	var zero P
	return zero.Parse
}

// Failed reports whether err is a failure, that is, not the zero value of E.
func Failed[E Error](err E) bool {
	var ok E
	return err != ok
}
