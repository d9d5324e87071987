package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_TakeAndRest(t *testing.T) {
	c := New("abc123")

	assert.Equal(t, "abc", c.Take(3))
	assert.Equal(t, "123", c.Rest())
	assert.Equal(t, 3, c.Offset())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, "123", c.Take(3))
	assert.True(t, c.AtEOF())
}

func TestCursor_TryTake(t *testing.T) {
	c := New("abc123")

	got, ok := c.TryTake(5)
	require.True(t, ok)
	assert.Equal(t, "abc12", got)

	got, ok = c.TryTake(5)
	assert.False(t, ok)
	assert.Empty(t, got)
	assert.Equal(t, 5, c.Offset())
}

func TestCursor_PeekNext(t *testing.T) {
	c := New("añ")

	assert.Equal(t, 'a', c.Peek())
	assert.Equal(t, 0, c.Offset())
	assert.Equal(t, 'a', c.Next())
	assert.Equal(t, 'ñ', c.Next())
	assert.Equal(t, EOF, c.Peek())
	assert.Equal(t, EOF, c.Next())
	assert.Equal(t, 3, c.Offset())
}

func TestCursor_MarkRestore(t *testing.T) {
	c := New("abc123")
	m := c.Mark()

	assert.Equal(t, "abc", c.Take(3))
	c.Restore(m)
	assert.Equal(t, "abc", c.Take(3))
	assert.Equal(t, "123", c.Take(3))
}

func TestCursor_SliceFrom(t *testing.T) {
	input := "hello world"
	c := New(input)
	c.Advance(6)
	m := c.Mark()
	c.Advance(5)

	span := c.SliceFrom(m)
	assert.Equal(t, "world", span.String())
	assert.Equal(t, input[span.Start:span.End], span.String())
	assert.Equal(t, 5, span.Len())
	assert.False(t, span.IsEmpty())
}

func TestCursor_UTF8(t *testing.T) {
	input := "🗻∈🌏"
	c := New(input)

	assert.Equal(t, input, c.Rest())
	assert.Equal(t, "🗻", c.Take(len("🗻")))
	assert.Equal(t, '∈', c.Peek())
}

func TestCursor_AdvancePanicsInsideRune(t *testing.T) {
	c := New("🗻x")

	assert.PanicsWithError(t, "cursor: offset 1 is not a character boundary", func() {
		c.Advance(1)
	})
	assert.Equal(t, 0, c.Offset())
}

func TestCursor_AdvancePanicsPastEnd(t *testing.T) {
	c := New("ab")

	assert.Panics(t, func() { c.Advance(3) })
	assert.Equal(t, 0, c.Offset())
}

func TestCursor_HasPrefix(t *testing.T) {
	c := New("=rest")
	assert.True(t, c.HasPrefix("="))
	assert.False(t, c.HasPrefix("!"))
}

func TestPosition(t *testing.T) {
	input := "first\nsecönd line\nthird"
	c := New(input)

	assert.Equal(t, Position{Offset: 0, Line: 1, Column: 1}, c.Position())

	pos := c.PositionOf(len("first\nsecö"))
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 5, pos.Column)
	assert.Equal(t, "2:5", pos.String())

	assert.Equal(t, "secönd line", LineAt(input, pos.Offset))
	assert.Equal(t, "third", LineAt(input, len(input)))
}

func TestSpan_TrimRight(t *testing.T) {
	input := "value  \t\r\nnext"
	span := NewSpan(input, 0, len("value  \t\r"))

	trimmed := span.TrimRight(" \t\r")
	assert.Equal(t, "value", trimmed.String())
	assert.Equal(t, 0, trimmed.Start)
	assert.Equal(t, 5, trimmed.End)
	assert.Equal(t, "value  \t\r", span.String())
}
