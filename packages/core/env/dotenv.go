package env

import (
	"os"
)

// LoadDotEnv parses a .env file and returns key-value pairs.
// Supports: KEY=value, KEY="quoted value", KEY='single quoted', export KEY=value
// and # comments. Lines that cannot be read are skipped.
// Note: This does NOT export to OS environment. Use LoadAndExportDotEnv if you
// need {{$VAR}} references to see the values.
func LoadDotEnv(path string) (map[string]string, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return doc.Map(), nil
}

// LoadAndExportDotEnv parses a .env file, returns key-value pairs,
// and exports them to the OS environment.
// Variables are only exported if not already set in the OS environment.
func LoadAndExportDotEnv(path string) (map[string]string, error) {
	vars, err := LoadDotEnv(path)
	if err != nil {
		return nil, err
	}

	for k, v := range vars {
		if os.Getenv(k) == "" {
			_ = os.Setenv(k, v) // Error ignored: only fails for invalid key names
		}
	}

	return vars, nil
}
