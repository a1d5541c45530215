// Package validation checks job variables against JSON schemas before a
// worker touches them.
package validation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"fluiq-workers/internal/common/errors"

	"github.com/xeipuuv/gojsonschema"
)

// JSONSchema defines the structure for input/output schemas
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties"`
}

// Property is one schema node. An empty Type accepts any JSON value.
type Property struct {
	Type        string              `json:"type,omitempty"`
	Description string              `json:"description,omitempty"`
	Format      string              `json:"format,omitempty"`
	Minimum     *float64            `json:"minimum,omitempty"`
	Maximum     *float64            `json:"maximum,omitempty"`
	Enum        []string            `json:"enum,omitempty"`
	Pattern     string              `json:"pattern,omitempty"`
	MinLength   *int                `json:"minLength,omitempty"`
	MaxLength   *int                `json:"maxLength,omitempty"`
	MinItems    *int                `json:"minItems,omitempty"`
	Items       *Property           `json:"items,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty"`
	Required    []string            `json:"required,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

var errorCodes = map[string]string{
	"required":                        "REQUIRED_FIELD_MISSING",
	"additional_property_not_allowed": "EXTRA_FIELD",
	"invalid_type":                    "INVALID_TYPE",
	"enum":                            "INVALID_ENUM_VALUE",
	"string_gte":                      "MIN_LENGTH_VIOLATION",
	"string_lte":                      "MAX_LENGTH_VIOLATION",
	"pattern":                         "PATTERN_MISMATCH",
	"number_gte":                      "MINIMUM_VIOLATION",
	"number_lte":                      "MAXIMUM_VIOLATION",
	"array_min_items":                 "MIN_ITEMS_VIOLATION",
	"format":                          "INVALID_FORMAT",
}

// ValidateInput validates decoded job variables against schema.
func ValidateInput(input map[string]interface{}, schema JSONSchema) *ValidationResult {
	result, err := validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(input))
	if err != nil {
		return &ValidationResult{Errors: []ValidationError{{Field: "(root)", Message: err.Error(), Code: "SCHEMA_ERROR"}}}
	}
	return result
}

// ValidateDocument validates a raw JSON document against a raw JSON schema.
func ValidateDocument(document, schema []byte) (*ValidationResult, error) {
	return validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(document))
}

func validate(schemaLoader, documentLoader gojsonschema.JSONLoader) (*ValidationResult, error) {
	res, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	out := &ValidationResult{Valid: res.Valid()}
	for _, re := range res.Errors() {
		out.Errors = append(out.Errors, toValidationError(re))
	}
	sort.SliceStable(out.Errors, func(i, j int) bool { return out.Errors[i].Field < out.Errors[j].Field })
	return out, nil
}

func toValidationError(re gojsonschema.ResultError) ValidationError {
	field := re.Field()
	// required and additional-property errors are reported on the parent object
	if prop, ok := re.Details()["property"].(string); ok && prop != "" {
		if field == gojsonschema.STRING_ROOT_SCHEMA_PROPERTY {
			field = prop
		} else {
			field = field + "." + prop
		}
	}

	code, ok := errorCodes[re.Type()]
	if !ok {
		code = strings.ToUpper(re.Type())
	}
	return ValidationError{Field: field, Message: re.Description(), Code: code}
}

// Check decodes raw job variables, validates them and returns a
// VALIDATION_FAILED error listing every violation.
func Check(variables string, schema JSONSchema) error {
	var input map[string]interface{}
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return errors.NewValidationError(fmt.Sprintf("variables are not a JSON object: %v", err))
	}
	if input == nil {
		input = map[string]interface{}{}
	}

	result := ValidateInput(input, schema)
	if result.Valid {
		return nil
	}
	stdErr := errors.NewValidationError(strings.Join(result.GetErrorMessages(), "; "))
	return stdErr.WithMetadata("validationErrors", result.Errors)
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// GetErrorsForField returns errors for a specific field
func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var fieldErrors []ValidationError
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") || strings.HasPrefix(err.Field, field+"[") {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}

func IntPtr(i int) *int {
	return &i
}

func FloatPtr(f float64) *float64 {
	return &f
}
