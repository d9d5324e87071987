package cmd

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"
)

//go:embed syntax.txt
var syntaxTxt string

var syntaxCmd = &cobra.Command{
	Use:               "syntax",
	Short:             "Describe the env file syntax parsa accepts",
	Long:              "Print a reference of the dotenv syntax, placeholders and query paths understood by parsa.",
	PersistentPreRunE: skipSetup,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), syntaxTxt)
	},
}
