// Package output provides formatters for displaying parsed env documents.
//
// Supported output formats:
//   - Console: Human-readable colored terminal output with caret diagnostics
//   - JSON: Machine-readable JSON output
//   - YAML: The JSON shape rendered as YAML
//
// The structured formatters accumulate documents and write them on Flush.
package output
