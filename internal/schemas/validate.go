// Package schemas validates the JSON documents exchanged with the model
// against embedded JSON Schemas, so malformed extractions are rejected
// before they reach scoring.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidateJSONString checks a JSON document against a JSON Schema, both
// given as raw strings. A document that fails schema checks yields a
// *ValidationError listing every offending field; a schema or document
// that cannot be loaded at all yields a *SchemaLoadError.
func ValidateJSONString(schemaContent, jsonContent string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaContent),
		gojsonschema.NewStringLoader(jsonContent),
	)
	if err != nil {
		return &SchemaLoadError{
			Schema:  "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	if result.Valid() {
		return nil
	}
	return &ValidationError{Errors: fieldErrors(result)}
}

func fieldErrors(result *gojsonschema.Result) []FieldError {
	errs := make([]FieldError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		errs = append(errs, FieldError{Field: field, Message: desc.Description()})
	}
	return errs
}

// FieldError is one schema violation, located by its JSON field path.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates every schema violation found in a document
// rather than stopping at the first.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, fe := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, fe.Field, fe.Message)
	}
	return sb.String()
}

// SchemaLoadError reports that the schema or document could not be
// loaded, as opposed to a document that loaded but failed validation.
type SchemaLoadError struct {
	Schema  string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Schema, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Schema, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}
