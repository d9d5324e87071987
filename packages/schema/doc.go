// Package schema checks parsed env documents against JSON Schema files and
// queries them with gjson paths.
//
// Both operate on the shape produced by output.Render, so a schema sees
// {"file", "variables", "assignments", "skipped"}.
package schema
