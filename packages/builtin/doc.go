// Package builtin provides the leaf parsers the combinators are built from.
//
// Available parsers:
//   - Word: a run of non-whitespace characters
//   - Whitespace: a possibly empty run of whitespace, never fails
//   - Take(literal): an exact literal
//   - Next: any single character
//   - TakeWhile, TakeWhile1: runs of characters matching a predicate
//   - Spaces, Line, Newline, End: line-oriented helpers
//   - Int, UUID: Word followed by a conversion
//   - Quoted(quote): a quoted string with backslash escapes
//
// Every fallible parser here leaves the cursor unchanged when it fails and
// returns a pointer error type, so nil means success.
package builtin
