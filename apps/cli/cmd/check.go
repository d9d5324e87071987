package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/abdul-hamid-achik/parsa/packages/core/env"
	"github.com/abdul-hamid-achik/parsa/packages/output"
	"github.com/abdul-hamid-achik/parsa/packages/schema"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file|directory|->...",
	Short: "Check env files for syntax errors and schema violations",
	Long: `Check env files strictly, without printing their contents.

Every file must parse without skipped lines. With --schema (or "schema" in
the config file), the JSON form of each document is also validated against a
JSON schema. With --resolve, placeholders are expanded first and any that
cannot be resolved fail the check.

Examples:
  parsa check .env
  parsa check ./deploy/ --schema env.schema.json
  parsa check .env --resolve --env prod`,
	Args: cobra.MinimumNArgs(1),
	RunE: checkCommand,
}

var (
	schemaFlag       string
	checkResolveFlag bool
)

var (
	errSchemaFailed = errors.New("schema validation failed")
	errUnresolved   = errors.New("unresolved placeholders")
)

func init() {
	checkCmd.Flags().StringVar(&schemaFlag, "schema", getEnvString("PARSA_SCHEMA", ""), "JSON schema to validate documents against (env: PARSA_SCHEMA)")
	checkCmd.Flags().BoolVarP(&checkResolveFlag, "resolve", "r", false, "Expand {{placeholders}} before validating")
}

func checkCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return withExitCode(ExitIOError, err)
	}
	if len(files) == 0 {
		return withExitCode(ExitUsageError, fmt.Errorf("no env files found"))
	}

	schemaPath := cfg.Schema
	if schemaFlag != "" {
		schemaPath = schemaFlag
	}

	cwd, err := os.Getwd()
	if err != nil {
		return withExitCode(ExitIOError, err)
	}
	validator := schema.NewValidator(cwd)

	var resolver *env.Resolver
	if cfg.GetResolve() || checkResolveFlag {
		if resolver, err = newResolver(cmd.ErrOrStderr()); err != nil {
			return err
		}
	}

	color.NoColor = color.NoColor || noColorFlag
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	errOut := output.NewConsoleFormatter(output.WithWriter(cmd.ErrOrStderr()), output.WithNoColor(noColorFlag))
	var loaded parseResult
	unresolvedFailed, schemaFailed := false, false

	for _, file := range files {
		doc, err := loadDocument(file, true)
		if err != nil {
			errOut.FormatError(err)
			loaded.record(err)
			continue
		}

		if resolver != nil {
			scope := scopeOf(file)
			doc = resolver.ResolveDocument(scope, doc)
			if missing := unresolvedPlaceholders(resolver, doc); len(missing) > 0 {
				unresolvedFailed = true
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", red("✗"), doc.File)
				for _, msg := range missing {
					fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", msg)
				}
				continue
			}
			for _, a := range doc.Assignments {
				resolver.SetScoped(scope, a.Key, a.Value)
			}
		}

		if schemaPath == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", green("✓"), doc.File)
			continue
		}

		result, err := validator.Validate(schemaPath, doc)
		if err != nil {
			return withExitCode(ExitConfigError, err)
		}
		if result.Valid {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", green("✓"), doc.File)
			continue
		}
		schemaFailed = true
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", red("✗"), doc.File)
		for _, msg := range result.Errors {
			fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", msg)
		}
	}

	if err := loaded.err(); err != nil {
		return err
	}
	switch {
	case unresolvedFailed:
		return withExitCode(ExitCheckFailure, errUnresolved)
	case schemaFailed:
		return withExitCode(ExitCheckFailure, errSchemaFailed)
	}
	return nil
}

// unresolvedPlaceholders describes every placeholder left in a resolved
// document. Single-quoted values are literal and never reported.
func unresolvedPlaceholders(resolver *env.Resolver, doc *env.Document) []string {
	var msgs []string
	for _, a := range doc.Assignments {
		if a.SingleQuoted {
			continue
		}
		for _, name := range resolver.GetUnresolvedVariables(a.Value) {
			msgs = append(msgs, fmt.Sprintf("line %d: %s: unresolved {{%s}}", a.Line(), a.Key, name))
		}
	}
	return msgs
}
