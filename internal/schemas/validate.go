// Package schemas provides JSON Schema validation for generated document
// payloads. The schema is embedded at compile time.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed document.schema.json
var documentSchemaJSON []byte

var (
	documentSchema     *gojsonschema.Schema
	documentSchemaOnce sync.Once
	documentSchemaErr  error
)

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// ValidationError represents a schema validation failure with field paths
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("document validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateDocument validates a generated document JSON payload against the
// embedded schema: a non-empty headline string and a non-empty, array-typed
// sections field are required.
func ValidateDocument(jsonText string) error {
	documentSchemaOnce.Do(func() {
		documentSchema, documentSchemaErr = gojsonschema.NewSchema(
			gojsonschema.NewBytesLoader(documentSchemaJSON))
	})
	if documentSchemaErr != nil {
		return fmt.Errorf("failed to load document schema: %w", documentSchemaErr)
	}

	result, err := documentSchema.Validate(gojsonschema.NewStringLoader(jsonText))
	if err != nil {
		return &ValidationError{Errors: []FieldError{
			{Field: "(document)", Message: fmt.Sprintf("not a JSON object: %v", err)},
		}}
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, resultErr := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   resultErr.Field(),
			Message: resultErr.Description(),
		})
	}
	return ve
}
