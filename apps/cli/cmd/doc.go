// Package cmd implements the parsa CLI commands using Cobra.
//
// Available commands:
//   - parse: Parse env files and print their assignments
//   - check: Parse strictly and validate against a JSON schema
//   - list: Display the keys defined in files
//   - watch: Re-parse files whenever they change
//   - bench: Measure parse throughput and latency
//   - syntax: Print the accepted env file syntax
//   - init: Create a config file and an example env file
//   - version: Show parsa version information
//
// Global flags select the config file, the environment used for placeholder
// expansion, verbosity and color.
package cmd
