package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <file|directory>",
	Short: "List the keys defined in env files",
	Long: `List the keys defined in env files, in order of first definition.

Examples:
  parsa list .env
  parsa list ./config/`,
	Args: cobra.MinimumNArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return withExitCode(ExitIOError, err)
	}

	if len(files) == 0 {
		return withExitCode(ExitUsageError, fmt.Errorf("no env files found"))
	}

	for _, file := range files {
		doc, err := loadDocument(file, false)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Error parsing %s: %v\n", file, err)
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", doc.File)
		for _, key := range doc.Keys() {
			a, _ := doc.Lookup(key)
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s", key)
			if verboseFlag > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (line %d)", a.Line())
			}
			fmt.Fprintln(cmd.OutOrStdout())
		}
	}

	return nil
}
