package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/parsa/packages/core/config"
	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize parsa in the current directory",
	Long: `Initialize parsa in the current directory.

This creates:
  - .parsa.yaml   - Configuration file with environments
  - .env.example  - Example env file using placeholders

Examples:
  parsa init
  parsa init --force`,
	PersistentPreRunE: skipSetup,
	RunE:              initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

const exampleEnv = `# Example env file for parsa.
# Run: parsa parse .env.example --resolve --env dev

APP_NAME=example
export PORT=8080
DEBUG=true

# Placeholders are expanded from the selected environment,
# earlier keys in this file, and $VARIABLES from the process.
DATABASE_URL="postgres://{{dbHost}}:5432/{{APP_NAME}}"
HOME_DIR={{$HOME}}

# Single quotes keep the value literal.
TEMPLATE='{{not expanded}}'
`

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, ".parsa.yaml")
	exampleFile := filepath.Join(cwd, ".env.example")

	if !forceInit {
		for _, f := range []string{configFile, exampleFile} {
			if _, err := os.Stat(f); err == nil {
				return withExitCode(ExitUsageError, fmt.Errorf("file already exists: %s (use --force to overwrite)", f))
			}
		}
	}

	c := config.DefaultConfig()
	c.DefaultEnvironment = "dev"
	c.Environments = map[string]map[string]any{
		"dev": {
			"dbHost": "localhost",
		},
		"staging": {
			"dbHost": "db.staging.example.com",
		},
		"prod": {
			"dbHost": "db.example.com",
		},
	}
	if err := c.SaveConfig(configFile); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("failed to create config file: %w", err))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	if err := os.WriteFile(exampleFile, []byte(exampleEnv), 0644); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("failed to create example file: %w", err))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", exampleFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nparsa initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'parsa parse .env.example --resolve' to see the example resolved.\n")

	return nil
}
