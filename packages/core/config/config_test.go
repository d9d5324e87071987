package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFindAndLoadConfig_Defaults(t *testing.T) {
	cfg, err := FindAndLoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.True(t, cfg.IsDefault())
	assert.Equal(t, "console", cfg.Format)
	assert.False(t, cfg.GetStrict())
}

func TestLoadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".parsa.yaml", `
format: json
strict: true
schema: schema.json
envPrefix: APP_
defaultEnvironment: dev
environments:
  dev:
    host: localhost
    port: 5432
bench:
  duration: 2s
  workers: 8
  thresholds: p95<2ms
`)

	cfg, err := FindAndLoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.GetStrict())
	assert.False(t, cfg.GetResolve())
	assert.Equal(t, "schema.json", cfg.Schema)
	assert.Equal(t, "APP_", cfg.EnvPrefix)
	assert.Equal(t, "localhost", cfg.Environments["dev"]["host"])
	assert.Equal(t, 5432, cfg.Environments["dev"]["port"])
	assert.Equal(t, 8, cfg.Bench.Workers)
	assert.Equal(t, "p95<2ms", cfg.Bench.Thresholds)
	// defaults survive for keys the file does not set
	assert.Equal(t, []string{".env", ".env.*", "*.env"}, cfg.Patterns)
	assert.False(t, cfg.IsDefault())
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".parsarc.json", `{"format": "yaml", "noColor": true, "patterns": ["*.vars"]}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Format)
	assert.True(t, cfg.GetNoColor())
	assert.True(t, cfg.Matches("dir/app.vars"))
	assert.False(t, cfg.Matches("dir/.env"))
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "bad yaml", content: "format: [", errMsg: "invalid config"},
		{name: "unknown format", content: "format: xml", errMsg: `unknown format "xml"`},
		{name: "bad duration", content: "bench:\n  duration: soon", errMsg: `invalid bench duration "soon"`},
		{name: "negative workers", content: "bench:\n  workers: -1", errMsg: "bench workers must be >= 0"},
		{name: "bad pattern", content: "patterns: ['[']", errMsg: "bad pattern"},
		{name: "undefined environment", content: "defaultEnvironment: prod", errMsg: `default environment "prod" is not defined`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "parsa.yaml", tt.content)
			_, err := LoadConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_Matches(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		path string
		want bool
	}{
		{".env", true},
		{"config/.env.local", true},
		{"prod.env", true},
		{"environment.go", false},
		{"README.md", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.Matches(tt.path))
		})
	}
}

func TestConfig_Merge(t *testing.T) {
	base := DefaultConfig()
	base.Environments = map[string]map[string]any{"dev": {"a": 1}}

	merged := base.Merge(&Config{
		Format:       "yaml",
		Strict:       BoolPtr(true),
		Environments: map[string]map[string]any{"prod": {"a": 2}},
		Bench:        BenchConfig{Workers: 16},
	})

	assert.Equal(t, "yaml", merged.Format)
	assert.True(t, merged.GetStrict())
	assert.Len(t, merged.Environments, 2)
	assert.Equal(t, 16, merged.Bench.Workers)
	assert.Equal(t, "10s", merged.Bench.Duration)

	// the receiver is not modified
	assert.Equal(t, "console", base.Format)
	assert.Len(t, base.Environments, 1)

	assert.Same(t, base, base.Merge(nil))
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Resolve = BoolPtr(true)

	for _, name := range []string{"out.yaml", "out.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, cfg.SaveConfig(path))

			loaded, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, "json", loaded.Format)
			assert.True(t, loaded.GetResolve())
		})
	}
}
