package sessionopen

import "fluiq-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"userId"},
		Properties: map[string]validation.Property{
			"userId": {
				Type:        "string",
				Description: "Subject id issued by the identity service",
				MinLength:   validation.IntPtr(1),
				MaxLength:   validation.IntPtr(200),
			},
			"email": {
				Type:      "string",
				MaxLength: validation.IntPtr(320),
			},
			"token": {
				Type:        "string",
				Description: "Reuse this token instead of minting one",
				MinLength:   validation.IntPtr(16),
				MaxLength:   validation.IntPtr(200),
			},
		},
		AdditionalProperties: true,
	}
}
