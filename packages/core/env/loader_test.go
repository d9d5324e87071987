package env

import (
	"testing"
)

func TestLoadEnvironment(t *testing.T) {
	configEnvs := map[string]map[string]any{
		"dev":  {"host": "localhost", "port": 8080},
		"prod": {"host": "example.com"},
	}

	env, err := LoadEnvironment("dev", configEnvs)
	if err != nil {
		t.Fatalf("LoadEnvironment() error = %v", err)
	}
	if env.Variables["host"] != "localhost" || env.Variables["port"] != 8080 {
		t.Errorf("LoadEnvironment() variables = %v", env.Variables)
	}

	if _, err := LoadEnvironment("staging", configEnvs); err == nil {
		t.Error("LoadEnvironment() expected error for unknown environment")
	} else if got := err.Error(); got != `unknown environment "staging" (configured: dev, prod)` {
		t.Errorf("LoadEnvironment() error = %q", got)
	}

	env, err = LoadEnvironment("", nil)
	if err != nil || len(env.Variables) != 0 {
		t.Errorf("LoadEnvironment(\"\") = %v, %v", env, err)
	}
}

func TestMergeVariables(t *testing.T) {
	got := MergeVariables(
		map[string]any{"a": 1, "b": 1},
		nil,
		map[string]any{"b": 2, "c": 3},
	)
	want := map[string]any{"a": 1, "b": 2, "c": 3}
	if len(got) != len(want) {
		t.Fatalf("MergeVariables() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("MergeVariables()[%q] = %v, want %v", k, got[k], v)
		}
	}
}

func TestLoadSystemEnv(t *testing.T) {
	t.Setenv("PARSA_TEST_HOST", "db.internal")
	t.Setenv("OTHER_TEST_HOST", "ignored")

	vars := LoadSystemEnv("PARSA_TEST_")
	if vars["HOST"] != "db.internal" {
		t.Errorf("LoadSystemEnv() HOST = %v, want db.internal", vars["HOST"])
	}
	if _, ok := vars["OTHER_TEST_HOST"]; ok {
		t.Error("LoadSystemEnv() returned a variable without the prefix")
	}

	all := LoadSystemEnv("")
	if all["OTHER_TEST_HOST"] != "ignored" {
		t.Errorf("LoadSystemEnv(\"\") missing OTHER_TEST_HOST")
	}
}
