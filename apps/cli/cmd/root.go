package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/abdul-hamid-achik/parsa/packages/core/config"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var log = commonlog.GetLogger("parsa")

var (
	configFlag  string
	noColorFlag bool
	verboseFlag int // 0=off, 1=-v, 2=-vv
	envFlag     string
	envFileFlag string

	// cfg is the loaded config file merged with defaults
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "parsa",
	Short: "Parse, check and query .env files.",
	Long: `parsa reads dotenv files with a combinator grammar and reports every
line it could not understand with its exact position. It can expand
{{placeholders}}, check documents against a JSON schema, select single
values, watch files for changes and benchmark the grammar itself.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCodeOf(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", getEnvString("PARSA_CONFIG", ""), "Path to config file (env: PARSA_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", getEnvBool("PARSA_NO_COLOR", false), "Disable colored output (env: PARSA_NO_COLOR)")
	rootCmd.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v", "Verbose output (-v, -vv for more detail)")
	rootCmd.PersistentFlags().StringVarP(&envFlag, "env", "e", getEnvString("PARSA_ENV", ""), "Config environment used to seed placeholders (env: PARSA_ENV)")
	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env-file", getEnvString("PARSA_ENV_FILE", ""), "Dotenv file whose values seed placeholders and {{$NAME}} lookups (env: PARSA_ENV_FILE)")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(syntaxCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup configures logging and loads the config file before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	commonlog.Configure(verboseFlag, nil)

	loaded, err := config.LoadConfig(configFlag)
	if err != nil {
		return withExitCode(ExitConfigError, fmt.Errorf("loading config: %w", err))
	}
	cfg = loaded

	if cfg.GetVerbose() && verboseFlag == 0 {
		verboseFlag = 1
		commonlog.Configure(verboseFlag, nil)
	}
	if cfg.GetNoColor() {
		noColorFlag = true
	}
	if envFlag == "" {
		envFlag = cfg.DefaultEnvironment
	}

	path := configFlag
	if path == "" {
		path = config.FindConfig(".")
	}
	if path != "" {
		log.Infof("using config %s", path)
	}
	return nil
}

// skipSetup replaces setup for commands that must work without a valid config.
func skipSetup(cmd *cobra.Command, args []string) error {
	commonlog.Configure(verboseFlag, nil)
	return nil
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
