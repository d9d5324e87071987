package env

import (
	"errors"
	"testing"

	"github.com/abdul-hamid-achik/parsa/packages/builtin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument(t *testing.T) {
	input := "# database\nexport DB_HOST=localhost\nDB_PASS='p@ss {{x}}'\n\nGREETING=\"hi\\tthere\" # c\n"

	doc, err := ParseDocument(".env", input, WithStrict(true))
	require.NoError(t, err)
	require.Len(t, doc.Assignments, 3)
	assert.Empty(t, doc.Skipped)

	host := doc.Assignments[0]
	assert.Equal(t, "DB_HOST", host.Key)
	assert.Equal(t, "localhost", host.Value)
	assert.True(t, host.Export)
	assert.False(t, host.Quoted)
	assert.Equal(t, 2, host.Line())

	pass := doc.Assignments[1]
	assert.Equal(t, "p@ss {{x}}", pass.Value)
	assert.True(t, pass.Quoted)
	assert.True(t, pass.SingleQuoted)
	assert.Equal(t, "'p@ss {{x}}'", pass.ValueSpan.String())

	greeting := doc.Assignments[2]
	assert.Equal(t, "hi\tthere", greeting.Value)
	assert.False(t, greeting.SingleQuoted)
	assert.Equal(t, 5, greeting.Line())

	assert.Equal(t, []string{"DB_HOST", "DB_PASS", "GREETING"}, doc.Keys())
}

func TestParseDocument_SpansPointIntoSource(t *testing.T) {
	input := "  NAME =  value  \n"
	doc, err := ParseDocument("", input, WithStrict(true))
	require.NoError(t, err)
	require.Len(t, doc.Assignments, 1)

	a := doc.Assignments[0]
	assert.Equal(t, input[a.KeySpan.Start:a.KeySpan.End], "NAME")
	assert.Equal(t, input[a.ValueSpan.Start:a.ValueSpan.End], "value")
}

func TestParseDocument_StrictErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		kind   ErrorKind
		line   int
		column int
	}{
		{name: "missing equals", input: "GOOD=1\nBAD value\n", kind: ErrMissingEquals, line: 2, column: 5},
		{name: "missing key", input: "=value", kind: ErrMissingKey, line: 1, column: 1},
		{name: "key with symbols", input: "KEY!=1", kind: ErrMissingEquals, line: 1, column: 4},
		{name: "unterminated double quote", input: "KEY=\"unterminated\n", kind: ErrBadQuote, line: 1, column: 5},
		{name: "unterminated single quote", input: "A=1\nKEY = 'open", kind: ErrBadQuote, line: 2, column: 7},
		{name: "escaped line break", input: "KEY=\"abc\\\ndef\"\n", kind: ErrBadQuote, line: 1, column: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument("test.env", tt.input, WithStrict(true))
			require.Error(t, err)

			var se *SyntaxError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, "test.env", se.File)
			assert.Equal(t, tt.kind, se.Err.Kind)
			assert.Equal(t, tt.line, se.Position.Line)
			assert.Equal(t, tt.column, se.Position.Column)
		})
	}
}

func TestParseDocument_ErrorUnwrapsToBuiltin(t *testing.T) {
	_, err := ParseDocument("", "NAME value", WithStrict(true))
	require.Error(t, err)

	var te *builtin.TakeError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "=", te.Expected)
	assert.Equal(t, "1:6: missing '=': expected \"=\": did not match", err.Error())
}

func TestParseDocument_LenientSkipsLines(t *testing.T) {
	doc, err := ParseDocument("app.env", "A=1\nnot an assignment\nB=2")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"A": "1", "B": "2"}, doc.Map())
	require.Len(t, doc.Skipped, 1)
	assert.Equal(t, 2, doc.Skipped[0].Position.Line)
	assert.Equal(t, "not an assignment", doc.Skipped[0].Text)
}

func TestParseDocument_LenientSkipsBadQuote(t *testing.T) {
	doc, err := ParseDocument("app.env", "A=1\nB=\"open\nC=3\n")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"A": "1", "C": "3"}, doc.Map())
	require.Len(t, doc.Skipped, 1)
	assert.Equal(t, ErrBadQuote, doc.Skipped[0].Err.Kind)
	assert.Equal(t, 2, doc.Skipped[0].Position.Line)

	var qe *builtin.QuoteError
	require.True(t, errors.As(doc.Skipped[0], &qe))
	assert.True(t, qe.Unterminated)
}

func TestDocument_Lookup(t *testing.T) {
	doc, err := ParseDocument("", "A=1\nB=2\nA=3")
	require.NoError(t, err)

	a, ok := doc.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, "3", a.Value)
	assert.Equal(t, 3, a.Line())

	_, ok = doc.Lookup("C")
	assert.False(t, ok)
}
