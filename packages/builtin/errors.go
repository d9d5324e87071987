package builtin

import (
	"fmt"
)

// WordError indicates that Word found no characters.
type WordError struct {
	Offset int
}

func (e *WordError) Error() string {
	return "found no characters"
}

// TakeReason says why a Take parser failed.
type TakeReason int

const (
	// NoSpace means the input ended before the literal could be matched
	NoSpace TakeReason = iota
	// NoMatch means the upcoming input differs from the literal
	NoMatch
)

func (r TakeReason) String() string {
	switch r {
	case NoSpace:
		return "ran out of space"
	case NoMatch:
		return "did not match"
	default:
		return "unknown"
	}
}

// TakeError indicates that a Take parser did not find its literal.
type TakeError struct {
	Expected string
	Offset   int
	Reason   TakeReason
}

func (e *TakeError) Error() string {
	return fmt.Sprintf("expected %q: %s", e.Expected, e.Reason)
}

// EndOfInputError is returned by parsers that need at least one more
// character.
type EndOfInputError struct {
	Offset int
}

func (e *EndOfInputError) Error() string {
	return "unexpected end of input"
}

// TrailingInputError is returned by End when input remains.
type TrailingInputError struct {
	Offset int
	Rest   string
}

func (e *TrailingInputError) Error() string {
	rest := e.Rest
	if len(rest) > 20 {
		rest = rest[:20] + "..."
	}
	return fmt.Sprintf("unexpected input %q", rest)
}

// MatchError is returned by TakeWhile1 when not a single character matched.
type MatchError struct {
	Name   string
	Offset int
}

func (e *MatchError) Error() string {
	return "expected " + e.Name
}

// IntError indicates that an Int parser failed, either because there was no
// word to read or because the word is not an integer.
type IntError struct {
	Offset int
	Word   *WordError
	Parse  error
}

func (e *IntError) Error() string {
	if e.Word != nil {
		return "expected an integer: " + e.Word.Error()
	}
	return "invalid integer: " + e.Parse.Error()
}

func (e *IntError) Unwrap() error {
	if e.Word != nil {
		return e.Word
	}
	return e.Parse
}

// UUIDError indicates that a UUID parser failed.
type UUIDError struct {
	Offset int
	Word   *WordError
	Parse  error
}

func (e *UUIDError) Error() string {
	if e.Word != nil {
		return "expected a UUID: " + e.Word.Error()
	}
	return "invalid UUID: " + e.Parse.Error()
}

func (e *UUIDError) Unwrap() error {
	if e.Word != nil {
		return e.Word
	}
	return e.Parse
}

// QuoteError indicates that a quoted string was missing or not terminated.
type QuoteError struct {
	Quote        rune
	Offset       int
	Unterminated bool
}

func (e *QuoteError) Error() string {
	if e.Unterminated {
		return fmt.Sprintf("unterminated string, missing closing %c", e.Quote)
	}
	return fmt.Sprintf("expected %c", e.Quote)
}
