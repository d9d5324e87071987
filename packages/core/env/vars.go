package env

import (
	"fmt"
	"strconv"

	"github.com/abdul-hamid-achik/parsa/packages/builtin"
	"github.com/abdul-hamid-achik/parsa/packages/core/cursor"
	"github.com/abdul-hamid-achik/parsa/packages/core/parser"
)

// Var is an integer binding written as "name = value", with any amount of
// whitespace around the name, the equals sign and the value.
type Var struct {
	Name  string
	Value int
}

// VarErrorKind identifies the step of a Var parse that failed.
type VarErrorKind int

const (
	// VarErrTake means the "=" after the name was missing.
	VarErrTake VarErrorKind = iota
	// VarErrWord means no name or value word followed.
	VarErrWord
	// VarErrParseInt means the value word is not a base-10 int.
	VarErrParseInt
)

func (k VarErrorKind) String() string {
	switch k {
	case VarErrTake:
		return "take"
	case VarErrWord:
		return "word"
	case VarErrParseInt:
		return "parse int"
	default:
		return "unknown"
	}
}

// VarError is the error type of the Var grammar. Each builtin failure reaches
// it through one of the VarErrorFrom edges.
type VarError struct {
	Kind VarErrorKind
	Err  error
}

func (e *VarError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *VarError) Unwrap() error {
	return e.Err
}

// VarErrorFromTake lifts a missing "=" into a VarError.
func VarErrorFromTake(e *builtin.TakeError) *VarError {
	return &VarError{Kind: VarErrTake, Err: e}
}

// VarErrorFromWord lifts a missing word into a VarError.
func VarErrorFromWord(e *builtin.WordError) *VarError {
	return &VarError{Kind: VarErrWord, Err: e}
}

// VarErrorFromInt wraps the strconv failure of the value word.
func VarErrorFromInt(e *strconv.NumError) *VarError {
	return &VarError{Kind: VarErrParseInt, Err: e}
}

var (
	varSpace = parser.Lift[cursor.Span, *VarError](builtin.Whitespace)
	varWord  = parser.ConvertErr(builtin.Word, VarErrorFromWord)

	// name, then "=" with the whitespace that follows each of them
	varName = parser.After(
		parser.After(varWord, varSpace),
		parser.After(parser.ConvertErr(builtin.Take("="), VarErrorFromTake), varSpace),
	)
	varValue = parser.AndThen(varWord, atoi, VarErrorFromInt)
)

func atoi(s cursor.Span) (int, *strconv.NumError) {
	n, err := strconv.Atoi(s.String())
	if err != nil {
		return 0, err.(*strconv.NumError)
	}
	return n, nil
}

// Parse reads a Var from c. Leading whitespace is skipped. On failure the
// cursor is left where the failing step stopped.
func (Var) Parse(c *cursor.Cursor) (Var, *VarError) {
	varSpace(c)
	name, err := varName(c)
	if err != nil {
		return Var{}, err
	}
	value, err := varValue(c)
	if err != nil {
		return Var{}, err
	}
	return Var{Name: name.String(), Value: value}, nil
}

// Vars parses whitespace separated Var bindings until the first one that does
// not parse.
var Vars = parser.Many(parser.After(parser.For[Var, *VarError](), varSpace))
