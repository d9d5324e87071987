package builtin

import (
	"errors"
	"strconv"
	"testing"

	"github.com/abdul-hamid-achik/parsa/packages/core/cursor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt(t *testing.T) {
	c := cursor.New("42 rest")
	n, err := Int[int](c)
	require.Nil(t, err)
	assert.Equal(t, 42, n)
	assert.Equal(t, " rest", c.Rest())

	c = cursor.New("-7")
	i8, err := Int[int8](c)
	require.Nil(t, err)
	assert.Equal(t, int8(-7), i8)
}

func TestInt_Errors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		parse     func(c *cursor.Cursor) *IntError
		wantWord  bool
		wantRange bool
	}{
		{
			name:     "no word",
			input:    " 12",
			parse:    func(c *cursor.Cursor) *IntError { _, err := Int[int](c); return err },
			wantWord: true,
		},
		{
			name:  "not a number",
			input: "abc",
			parse: func(c *cursor.Cursor) *IntError { _, err := Int[int](c); return err },
		},
		{
			name:      "int8 overflow",
			input:     "300",
			parse:     func(c *cursor.Cursor) *IntError { _, err := Int[int8](c); return err },
			wantRange: true,
		},
		{
			name:      "negative unsigned",
			input:     "-1",
			parse:     func(c *cursor.Cursor) *IntError { _, err := Int[uint16](c); return err },
			wantRange: false,
		},
		{
			name:      "uint8 overflow",
			input:     "256",
			parse:     func(c *cursor.Cursor) *IntError { _, err := Int[uint8](c); return err },
			wantRange: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cursor.New(tt.input)
			err := tt.parse(c)
			require.NotNil(t, err)
			assert.Equal(t, 0, c.Offset())

			if tt.wantWord {
				var we *WordError
				assert.True(t, errors.As(err, &we))
				return
			}
			assert.Nil(t, err.Word)
			require.Error(t, err.Parse)
			assert.Equal(t, tt.wantRange, errors.Is(err, strconv.ErrRange))
		})
	}
}

func TestUUID(t *testing.T) {
	id := uuid.New()
	c := cursor.New(id.String() + " tail")

	got, err := UUID(c)
	require.Nil(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, " tail", c.Rest())

	c = cursor.New("not-a-uuid")
	_, err = UUID(c)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "invalid UUID")
	assert.Equal(t, 0, c.Offset())
}

func TestQuoted(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		quote    rune
		expected string
		rest     string
	}{
		{name: "double", input: `"hello world" x`, quote: '"', expected: "hello world", rest: " x"},
		{name: "single", input: `'a b'`, quote: '\'', expected: "a b", rest: ""},
		{name: "empty", input: `""`, quote: '"', expected: "", rest: ""},
		{name: "escapes", input: `"a\"b\\c\nd"`, quote: '"', expected: "a\"b\\c\nd", rest: ""},
		{name: "unicode", input: `"héllo"!`, quote: '"', expected: "héllo", rest: "!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, c, err := Quoted(tt.quote).ParseString(tt.input)
			require.Nil(t, err)
			assert.Equal(t, tt.expected, out)
			assert.Equal(t, tt.rest, c.Rest())
		})
	}
}

func TestQuoted_Errors(t *testing.T) {
	_, c, err := Quoted('"').ParseString("plain")
	require.NotNil(t, err)
	assert.False(t, err.Unterminated)
	assert.Equal(t, 0, c.Offset())

	_, c, err = Quoted('"').ParseString("\"open\nnext")
	require.NotNil(t, err)
	assert.True(t, err.Unterminated)
	assert.Equal(t, 0, c.Offset())

	// An escaped line break does not continue the string.
	_, c, err = Quoted('"').ParseString("\"abc\\\ndef\"")
	require.NotNil(t, err)
	assert.True(t, err.Unterminated)
	assert.Equal(t, 0, c.Offset())
}
