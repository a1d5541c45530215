package sessionclose

import (
	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/validation"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"sessionToken"},
		Properties: map[string]validation.Property{
			"sessionToken": auth.SessionTokenProperty,
		},
		AdditionalProperties: true,
	}
}
