package cursor

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Position is a human readable location in the input. Line and Column are
// 1-based; Column counts characters, not bytes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Position returns the location of the current offset.
func (c *Cursor) Position() Position {
	return positionOf(c.input, c.pos)
}

// PositionOf returns the location of an arbitrary byte offset in the input.
// Offsets outside the input are clamped.
func (c *Cursor) PositionOf(offset int) Position {
	return positionOf(c.input, offset)
}

// LineAt returns the full text of the line containing offset, without its
// line terminator.
func LineAt(input string, offset int) string {
	offset = clamp(offset, len(input))
	start := strings.LastIndexByte(input[:offset], '\n') + 1
	end := strings.IndexByte(input[offset:], '\n')
	if end < 0 {
		end = len(input)
	} else {
		end += offset
	}
	return strings.TrimSuffix(input[start:end], "\r")
}

func positionOf(input string, offset int) Position {
	offset = clamp(offset, len(input))
	before := input[:offset]
	line := strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return Position{
		Offset: offset,
		Line:   line,
		Column: utf8.RuneCountInString(before[lineStart:]) + 1,
	}
}

func clamp(offset, n int) int {
	if offset < 0 {
		return 0
	}
	if offset > n {
		return n
	}
	return offset
}
