package todo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath is the path to the JSON Schema file.
	// If empty, validation uses only minimal fallback checks.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
}

// ValidateFile validates the storage file at path. The file must exist and
// contain well-formed JSON; those failures are returned as an error, not a
// result, since nothing further can be checked.
func ValidateFile(path string, opts ValidationOptions) (*ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read todo file: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse todo file: %w", err)
	}

	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	if opts.SchemaPath != "" {
		validateWithSchema(result, doc, opts.SchemaPath)
		if result.UsedSchema {
			return result, nil
		}
		result.Warnings = append(result.Warnings, "JSON Schema validation not available, using minimal checks")
	}

	validateMinimal(result, doc)
	return result, nil
}

// validateMinimal performs structural checks without JSON Schema.
func validateMinimal(result *ValidationResult, doc interface{}) {
	tasks, ok := doc.([]interface{})
	if !ok {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("top-level value must be an array"),
		})
		return
	}

	for i, raw := range tasks {
		path := fmt.Sprintf("[%d]", i)
		obj, ok := raw.(map[string]interface{})
		if !ok {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: path,
				Err:  fmt.Errorf("task must be an object"),
			})
			continue
		}

		desc, ok := obj["description"]
		if !ok {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: path + ".description",
				Err:  fmt.Errorf("missing required field"),
			})
		} else if s, ok := desc.(string); !ok {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: path + ".description",
				Err:  fmt.Errorf("must be a string"),
			})
		} else if strings.TrimSpace(s) == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s.description is empty", path))
		}

		completed, ok := obj["completed"]
		if !ok {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: path + ".completed",
				Err:  fmt.Errorf("missing required field"),
			})
		} else if _, ok := completed.(bool); !ok {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: path + ".completed",
				Err:  fmt.Errorf("must be a boolean"),
			})
		}
	}
}

// validateWithSchema attempts JSON Schema validation. When the schema file
// cannot be used, a warning is recorded and UsedSchema stays false so the
// caller can fall back to minimal checks.
func validateWithSchema(result *ValidationResult, doc interface{}, schemaPath string) {
	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema path: %v", err))
		return
	}

	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("schema file not found: %s", absPath))
		} else {
			result.Warnings = append(result.Warnings, fmt.Sprintf("failed to read schema file: %v", err))
		}
		return
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	schema, err := compiler.Compile(absPath)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema file: %v", err))
		return
	}

	result.UsedSchema = true

	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
}

func appendSchemaErrors(result *ValidationResult, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// jsonPointerToPath converts a JSON Pointer (RFC 6901) instance location to
// the bracketed dot notation used in validation messages.
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	parts := strings.Split(ptr, "/")
	path := ""
	for _, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}

	return path
}
