package schema

import (
	"errors"
	"testing"

	"github.com/abdul-hamid-achik/parsa/packages/builtin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"variables.PORT", "variables.PORT"},
		{"assignments[0].key", "assignments.0.key"},
		{"[1]", "1"},
		{"a[0][12]", "a.0.12"},
		{`variables["app.name"]`, `variables.app\.name`},
		{"assignments.#.key", "assignments.#.key"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ParsePath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePath_Errors(t *testing.T) {
	tests := []struct {
		path   string
		offset int
	}{
		{"", 0},
		{"a..b", 2},
		{"a.", 2},
		{"a[x]", 1},
		{"a]", 1},
		{`a["open]`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := ParsePath(tt.path)
			require.Error(t, err)

			var pe *PathError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.offset, pe.Offset)
		})
	}
}

func TestParsePath_UnwrapsBuiltinError(t *testing.T) {
	_, err := ParsePath("a]")
	var te *builtin.TakeError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, ".", te.Expected)
}

func TestQuery(t *testing.T) {
	doc := parseDoc(t, "HOST=localhost\nPORT=8080\napp.name=parsa\n")

	tests := []struct {
		path  string
		want  any
		found bool
	}{
		{path: "variables.PORT", want: float64(8080), found: true},
		{path: "variables.HOST", want: "localhost", found: true},
		{path: `variables["app.name"]`, want: "parsa", found: true},
		{path: "assignments[1].line", want: float64(2), found: true},
		{path: "assignments.#", want: float64(3), found: true},
		{path: "file", want: "service.env", found: true},
		{path: "variables.MISSING", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, found, err := Query(doc, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}

	_, _, err := Query(doc, "a..b")
	assert.Error(t, err)
}
