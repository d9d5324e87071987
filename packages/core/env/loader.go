package env

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Environment is a named set of variables from the config file, selected with
// --env to seed template resolution.
type Environment struct {
	Name      string
	Variables map[string]any
}

// LoadEnvironment picks envName out of the configured environments. An empty
// name yields an empty environment.
func LoadEnvironment(envName string, configEnvs map[string]map[string]any) (*Environment, error) {
	env := &Environment{
		Name:      envName,
		Variables: make(map[string]any),
	}
	if envName == "" {
		return env, nil
	}

	vars, ok := configEnvs[envName]
	if !ok {
		known := make([]string, 0, len(configEnvs))
		for name := range configEnvs {
			known = append(known, name)
		}
		sort.Strings(known)
		return nil, fmt.Errorf("unknown environment %q (configured: %s)", envName, strings.Join(known, ", "))
	}
	for k, v := range vars {
		env.Variables[k] = v
	}
	return env, nil
}

// MergeVariables combines sources left to right; later sources win.
func MergeVariables(sources ...map[string]any) map[string]any {
	result := make(map[string]any)
	for _, src := range sources {
		for k, v := range src {
			result[k] = v
		}
	}
	return result
}

// LoadSystemEnv returns the process environment. With a prefix, only matching
// variables are returned and the prefix is stripped from their names.
func LoadSystemEnv(prefix string) map[string]any {
	result := make(map[string]any)
	for _, e := range os.Environ() {
		key, value, ok := strings.Cut(e, "=")
		if !ok {
			continue
		}
		if prefix == "" {
			result[key] = value
		} else if name, found := strings.CutPrefix(key, prefix); found && name != "" {
			result[name] = value
		}
	}
	return result
}
