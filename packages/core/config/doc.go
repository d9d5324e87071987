// Package config handles configuration loading and management for parsa.
//
// It provides functionality for:
//   - Loading configuration from .parsa.yaml, parsa.yaml or .parsarc.json files
//   - Default configuration values
//   - Named environments used to seed variable resolution
package config
