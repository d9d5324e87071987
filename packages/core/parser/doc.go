// Package parser provides the parser-combinator engine.
//
// A Parser is any function from a *cursor.Cursor to a value and a typed error.
// Builtin primitives, values built by the combinators in this package, and
// user-written parse functions all share that shape and compose freely.
//
// The package covers:
//   - The Parser contract and the Parsable protocol for self-parsing types
//   - The error coercion algebra: Edge, ConvertErr, and the infallible Never type
//   - Sequencing: Then, After, Before, AndThen, Map
//   - Backtracking: Rewind, Or, Optional, Maybe
//   - Repetition: Many, Many1, Repeat
//   - Unrecoverable failures: the Unrecoverable interface and Commit
//
// Failures are values. A parser that fails either leaves the cursor where it
// found it or, for sequences, where the failing step left it. Only the
// combinator that took a mark restores it. An error type may implement
// Unrecoverable; such failures stop Or, Rewind, Maybe, Repeat and Many1 from
// backtracking, so the error points at where the input actually went wrong.
//
// Every error type E must be comparable and its zero value means "no error".
// Pointer types such as *builtin.WordError fit naturally. Combining parsers
// with different error types is done by declaring one Edge per conversion
// into the caller's error type:
//
//	name := parser.ConvertErr(builtin.Word, VarErrorFromWord)
//	eq := parser.ConvertErr(builtin.Take("="), VarErrorFromTake)
//	ws := parser.Lift[cursor.Span, *VarError](builtin.Whitespace)
//	assignment := parser.Then(parser.After(name, ws), parser.Before(parser.After(eq, ws), value))
package parser
