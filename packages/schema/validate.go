package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/parsa/packages/core/env"
	"github.com/abdul-hamid-achik/parsa/packages/output"
	"github.com/xeipuuv/gojsonschema"
)

// Result is the outcome of validating one document.
type Result struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *Result) String() string {
	if r.Valid {
		return r.File + ": valid"
	}
	return fmt.Sprintf("%s: schema validation failed: %s", r.File, strings.Join(r.Errors, "; "))
}

// Validator validates documents against schema files below a base directory.
type Validator struct {
	baseDir string
	cache   map[string]*gojsonschema.Schema
}

// NewValidator resolves relative schema paths against baseDir and refuses
// paths that leave it. An empty baseDir disables both.
func NewValidator(baseDir string) *Validator {
	return &Validator{
		baseDir: baseDir,
		cache:   make(map[string]*gojsonschema.Schema),
	}
}

// Validate checks the rendered form of doc against the schema at schemaPath.
// The error is non-nil only when the schema itself cannot be used.
func (v *Validator) Validate(schemaPath string, doc *env.Document) (*Result, error) {
	schema, err := v.load(schemaPath)
	if err != nil {
		return nil, err
	}

	docJSON, err := json.Marshal(output.Render(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(docJSON))
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	res := &Result{File: doc.File, Valid: result.Valid()}
	for _, desc := range result.Errors() {
		res.Errors = append(res.Errors, desc.String())
	}
	return res, nil
}

func (v *Validator) load(schemaPath string) (*gojsonschema.Schema, error) {
	// Resolve schema path relative to base directory
	if !filepath.IsAbs(schemaPath) && v.baseDir != "" {
		schemaPath = filepath.Join(v.baseDir, schemaPath)
	}

	// Validate path doesn't escape base directory (prevent path traversal)
	if err := validatePathWithinBase(schemaPath, v.baseDir); err != nil {
		return nil, err
	}

	if schema, ok := v.cache[schemaPath]; ok {
		return schema, nil
	}

	schemaData, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaData))
	if err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", schemaPath, err)
	}
	v.cache[schemaPath] = schema
	return schema, nil
}

// Validate is a convenience wrapper for a one-off validation without a base
// directory.
func Validate(schemaPath string, doc *env.Document) (*Result, error) {
	return NewValidator("").Validate(schemaPath, doc)
}

func validatePathWithinBase(path, baseDir string) error {
	if baseDir == "" {
		return nil
	}

	// Clean and resolve both paths
	cleanBase, err := filepath.Abs(baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base directory: %v", err)
	}

	cleanPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %v", err)
	}

	// Ensure the path starts with the base directory
	if !strings.HasPrefix(cleanPath, cleanBase+string(filepath.Separator)) && cleanPath != cleanBase {
		return fmt.Errorf("path traversal detected: %s is outside allowed directory %s", path, baseDir)
	}

	return nil
}
