package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/parsa/packages/core/env"
)

// stdinName is the argument that reads a document from standard input.
const stdinName = "-"

// collectFiles expands args into the files to parse. Files named explicitly
// are always kept; directories are walked for names matching the configured
// patterns.
func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		if arg == stdinName {
			files = append(files, arg)
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		err = filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && cfg.Matches(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	log.Debugf("collected %d file(s)", len(files))
	return files, nil
}

// loadDocument parses one file, or standard input for "-".
func loadDocument(path string, strict bool) (*env.Document, error) {
	opts := []env.Option{env.WithStrict(strict)}
	if path != stdinName {
		log.Debugf("parsing %s", path)
		return env.ParseFile(path, opts...)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return env.ParseDocument("<stdin>", string(data), opts...)
}

// newResolver seeds a resolver from the selected config environment, the
// process environment filtered by the configured prefix and the --env-file.
// Later sources win.
func newResolver(errOut io.Writer) (*env.Resolver, error) {
	environment, err := env.LoadEnvironment(envFlag, cfg.Environments)
	if err != nil {
		return nil, withExitCode(ExitConfigError, err)
	}

	resolver := env.NewResolver()
	vars := environment.Variables
	if cfg.EnvPrefix != "" {
		vars = env.MergeVariables(vars, env.LoadSystemEnv(cfg.EnvPrefix))
	}
	if envFileFlag != "" {
		// Exported too, so {{$NAME}} sees the file's values.
		fileVars, err := env.LoadAndExportDotEnv(envFileFlag)
		if err != nil {
			return nil, withExitCode(ExitIOError, fmt.Errorf("loading env file: %w", err))
		}
		fromFile := make(map[string]any, len(fileVars))
		for k, v := range fileVars {
			fromFile[k] = v
		}
		vars = env.MergeVariables(vars, fromFile)
	}
	resolver.SetVariables(vars)
	resolver.SetWarnFunc(func(format string, args ...any) {
		fmt.Fprintf(errOut, "warning: "+format+"\n", args...)
	})
	log.Debugf("resolver seeded with %d variable(s) from environment %q", len(vars), envFlag)
	return resolver, nil
}

// scopeOf names the placeholder scope for a file's values: {{.env.local.KEY}}.
func scopeOf(path string) string {
	if path == stdinName {
		return "stdin"
	}
	return filepath.Base(path)
}
