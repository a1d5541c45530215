package exportpitchdeck

import (
	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/validation"
)

// GetInputSchema only checks shapes; required pitch fields are enforced by
// pitch.Validate so the error lists every missing one.
func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"sessionToken", "pitch"},
		Properties: map[string]validation.Property{
			"sessionToken": auth.SessionTokenProperty,
			"pitch": {
				Type: "object",
				Properties: map[string]validation.Property{
					"name":       {Type: "string", MaxLength: validation.IntPtr(200)},
					"niche":      {Type: "string"},
					"location":   {Type: "string"},
					"handle":     {Type: "string"},
					"followers":  {Type: "integer"},
					"engagement": {Type: "number", Minimum: validation.FloatPtr(0)},
					"platforms":  {Type: "array", Items: &validation.Property{Type: "string"}},
					"bio":        {Type: "string", MaxLength: validation.IntPtr(2000)},
					"profilePic": {Type: "string"},
					"email":      {Type: "string"},
				},
			},
		},
		AdditionalProperties: true,
	}
}
