// Package schemas provides JSON Schema validation for survey definition files.
package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// SurveySchemaPath is the repository-relative location of the survey definition schema.
const SurveySchemaPath = "schemas/survey.schema.json"

// ResolveSchemaPath attempts to find a schema file by trying multiple common path resolutions.
// It tries paths relative to the current working directory, then paths relative to likely repo root locations.
// Returns the first path that exists, or empty string if none found.
// This is useful when CLI commands may run from different working directory contexts (e.g., tests).
func ResolveSchemaPath(relativePath string) string {
	candidates := []string{
		relativePath,
		filepath.Join("..", relativePath),
		filepath.Join("..", "..", relativePath),
	}

	for _, candidate := range candidates {
		if absPath, err := filepath.Abs(candidate); err == nil {
			if _, err := os.Stat(absPath); err == nil {
				return absPath
			}
		}
	}

	return ""
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateSurveyFile validates a survey definition YAML file against the schema at schemaPath.
func ValidateSurveyFile(schemaPath, surveyPath string) error {
	schemaAbsPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to resolve schema path: %w", err)
	}

	surveyAbsPath, err := filepath.Abs(surveyPath)
	if err != nil {
		return fmt.Errorf("failed to resolve survey path: %w", err)
	}

	if _, err := os.Stat(schemaAbsPath); os.IsNotExist(err) {
		return fmt.Errorf("schema file not found: %s", schemaAbsPath)
	}

	schemaData, err := os.ReadFile(schemaAbsPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	surveyData, err := os.ReadFile(surveyAbsPath)
	if err != nil {
		return fmt.Errorf("survey file not found: %s", surveyAbsPath)
	}

	return ValidateSurveyBytes(schemaData, surveyData)
}

// ValidateSurveyBytes validates survey definition YAML content against JSON Schema content.
// The YAML document is converted to its JSON equivalent before validation, so the schema
// is written in plain JSON Schema draft-07 terms.
func ValidateSurveyBytes(schemaContent, surveyContent []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(surveyContent, &doc); err != nil {
		return fmt.Errorf("failed to parse survey YAML: %w", err)
	}

	jsonDoc, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to convert survey document to JSON: %w", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaContent)
	documentLoader := gojsonschema.NewBytesLoader(jsonDoc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(survey schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
