package output

import (
	"testing"

	"github.com/abdul-hamid-achik/parsa/packages/core/env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, input string) *env.Document {
	t.Helper()
	doc, err := env.ParseDocument("app.env", input)
	require.NoError(t, err)
	return doc
}

func TestTypedValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{name: "integer", input: "K=42", want: int64(42)},
		{name: "negative", input: "K=-3", want: int64(-3)},
		{name: "leading zero stays text", input: "K=007", want: "007"},
		{name: "quoted number stays text", input: `K="42"`, want: "42"},
		{name: "bool", input: "K=true", want: true},
		{name: "uuid", input: "K=F47AC10B-58CC-4372-A567-0E02B2C3D479", want: "f47ac10b-58cc-4372-a567-0e02b2c3d479"},
		{name: "number prefix", input: "K=42abc", want: "42abc"},
		{name: "two words", input: "K=42 43", want: "42 43"},
		{name: "empty", input: "K=", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.input)
			require.Len(t, doc.Assignments, 1)
			assert.Equal(t, tt.want, TypedValue(doc.Assignments[0]))
		})
	}
}

func TestRender(t *testing.T) {
	doc := mustParse(t, "PORT=8080\nexport NAME=\"api\"\noops\n")

	out := Render(doc)
	assert.Equal(t, "app.env", out["file"])
	assert.Equal(t, map[string]any{"PORT": int64(8080), "NAME": "api"}, out["variables"])

	assignments := out["assignments"].([]any)
	require.Len(t, assignments, 2)
	name := assignments[1].(map[string]any)
	assert.Equal(t, 2, name["line"])
	assert.Equal(t, 8, name["column"])
	assert.Equal(t, true, name["quoted"])
	assert.Equal(t, true, name["export"])

	skipped := out["skipped"].([]any)
	require.Len(t, skipped, 1)
	assert.Equal(t, 3, skipped[0].(map[string]any)["line"])
}
