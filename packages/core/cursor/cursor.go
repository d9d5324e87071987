package cursor

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// EOF is returned by Peek and Next when the input is exhausted.
const EOF rune = -1

// Mark is a saved cursor offset. Marks are only meaningful for the cursor that
// produced them.
type Mark int

// Cursor is a mutable read position over an immutable input string.
// A Cursor must not be shared between goroutines.
type Cursor struct {
	input string
	pos   int
}

// New creates a cursor positioned at the start of input.
func New(input string) *Cursor {
	return &Cursor{input: input}
}

// BoundaryError reports an attempt to move the cursor outside the input or into
// the middle of a multi-byte character.
type BoundaryError struct {
	Offset int
	Len    int
}

func (e *BoundaryError) Error() string {
	if e.Offset > e.Len {
		return fmt.Sprintf("cursor: offset %d past end of input (%d bytes)", e.Offset, e.Len)
	}
	return fmt.Sprintf("cursor: offset %d is not a character boundary", e.Offset)
}

// Peek returns the next rune without consuming it, or EOF.
func (c *Cursor) Peek() rune {
	if c.pos >= len(c.input) {
		return EOF
	}
	r, _ := utf8.DecodeRuneInString(c.input[c.pos:])
	return r
}

// Next consumes and returns the next rune, or returns EOF without moving.
func (c *Cursor) Next() rune {
	if c.pos >= len(c.input) {
		return EOF
	}
	r, size := utf8.DecodeRuneInString(c.input[c.pos:])
	c.pos += size
	return r
}

// Advance moves the cursor forward n bytes. It panics with a *BoundaryError if
// the new offset would be past the end of the input or would split a character.
func (c *Cursor) Advance(n int) {
	next := c.pos + n
	if n < 0 || next > len(c.input) {
		panic(&BoundaryError{Offset: next, Len: len(c.input)})
	}
	if next < len(c.input) && !utf8.RuneStart(c.input[next]) {
		panic(&BoundaryError{Offset: next, Len: len(c.input)})
	}
	c.pos = next
}

// Mark saves the current offset.
func (c *Cursor) Mark() Mark {
	return Mark(c.pos)
}

// Restore resets the cursor to a previously saved mark.
func (c *Cursor) Restore(m Mark) {
	if int(m) < 0 || int(m) > len(c.input) {
		panic(&BoundaryError{Offset: int(m), Len: len(c.input)})
	}
	c.pos = int(m)
}

// SliceFrom returns the span of input consumed since m.
func (c *Cursor) SliceFrom(m Mark) Span {
	start := int(m)
	if start > c.pos {
		start = c.pos
	}
	return Span{input: c.input, Start: start, End: c.pos}
}

// HasPrefix reports whether the unconsumed input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	return strings.HasPrefix(c.input[c.pos:], s)
}

// Take consumes n bytes and returns them. It panics if fewer than n bytes
// remain or if the cut would split a character.
func (c *Cursor) Take(n int) string {
	start := c.pos
	c.Advance(n)
	return c.input[start:c.pos]
}

// TryTake is like Take but reports false instead of panicking when there is not
// enough input left. The cursor does not move on failure.
func (c *Cursor) TryTake(n int) (string, bool) {
	if n < 0 || c.pos+n > len(c.input) {
		return "", false
	}
	if end := c.pos + n; end < len(c.input) && !utf8.RuneStart(c.input[end]) {
		return "", false
	}
	return c.Take(n), true
}

// Rest returns the unconsumed input.
func (c *Cursor) Rest() string {
	return c.input[c.pos:]
}

// Input returns the complete input, consumed or not.
func (c *Cursor) Input() string {
	return c.input
}

// Offset returns the current byte offset into the input.
func (c *Cursor) Offset() int {
	return c.pos
}

// Len returns the number of unconsumed bytes.
func (c *Cursor) Len() int {
	return len(c.input) - c.pos
}

// AtEOF reports whether all input has been consumed.
func (c *Cursor) AtEOF() bool {
	return c.pos >= len(c.input)
}

func (c *Cursor) String() string {
	rest := c.Rest()
	if len(rest) > 20 {
		rest = rest[:20] + "..."
	}
	return fmt.Sprintf("%s %q", c.Position(), rest)
}
