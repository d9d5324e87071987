package env

import (
	"fmt"

	"github.com/abdul-hamid-achik/parsa/packages/builtin"
	"github.com/abdul-hamid-achik/parsa/packages/core/cursor"
)

// ErrorKind classifies a LineError.
type ErrorKind int

const (
	ErrMissingKey ErrorKind = iota
	ErrMissingEquals
	ErrBadQuote
	ErrTrailingInput
)

func (k ErrorKind) String() string {
	switch k {
	case ErrMissingKey:
		return "missing key"
	case ErrMissingEquals:
		return "missing '='"
	case ErrBadQuote:
		return "bad quoted value"
	case ErrTrailingInput:
		return "unexpected input after value"
	default:
		return "unknown"
	}
}

// LineError is the error type of the env line grammar.
type LineError struct {
	Kind   ErrorKind
	Offset int
	Err    error
	// Committed errors are not backtracked into another reading of the line.
	Committed bool
}

func (e *LineError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

func (e *LineError) Unrecoverable() bool {
	return e.Committed
}

func lineErrorFromMatch(e *builtin.MatchError) *LineError {
	return &LineError{Kind: ErrMissingKey, Offset: e.Offset, Err: e}
}

func lineErrorFromTake(e *builtin.TakeError) *LineError {
	return &LineError{Kind: ErrMissingEquals, Offset: e.Offset, Err: e}
}

func lineErrorFromQuote(e *builtin.QuoteError) *LineError {
	return &LineError{Kind: ErrBadQuote, Offset: e.Offset, Err: e}
}

func commitUnterminated(e *LineError) *LineError {
	if qe, ok := e.Err.(*builtin.QuoteError); ok && qe.Unterminated {
		e.Committed = true
	}
	return e
}

// SyntaxError locates a LineError in its file.
type SyntaxError struct {
	File     string
	Position cursor.Position
	// Text is the full source line the error occurred on.
	Text string
	Err  *LineError
}

func newSyntaxError(file, input string, err *LineError) *SyntaxError {
	c := cursor.New(input)
	return &SyntaxError{
		File:     file,
		Position: c.PositionOf(err.Offset),
		Text:     cursor.LineAt(input, err.Offset),
		Err:      err,
	}
}

func (e *SyntaxError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s: %v", e.Position, e.Err)
	}
	return fmt.Sprintf("%s:%s: %v", e.File, e.Position, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
