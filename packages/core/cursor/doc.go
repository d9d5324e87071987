// Package cursor provides the zero-copy input view that every parser reads from.
//
// A Cursor holds the complete input string and a byte offset marking the start
// of the unconsumed remainder. It provides:
//   - Peeking and consuming runes without copying
//   - Marks for saving and restoring the offset (backtracking)
//   - Spans that slice the original input between two offsets
//   - Line and column positions for diagnostics
//
// Spans share memory with the input they were cut from. They stay valid for as
// long as the caller keeps them; retaining a small span keeps the whole input
// alive.
package cursor
