package generatecaption

import (
	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/validation"
	"fluiq-workers/internal/models"
)

func toneEnum() []string {
	out := make([]string, len(models.Tones))
	for i, t := range models.Tones {
		out[i] = string(t)
	}
	return out
}

// GetInputSchema leaves niche and city free-form: unknown tags fall back
// instead of failing.
func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"sessionToken", "niche", "city", "tone"},
		Properties: map[string]validation.Property{
			"sessionToken": auth.SessionTokenProperty,
			"niche": {
				Type:        "string",
				Description: "Content niche tag, e.g. food",
				MaxLength:   validation.IntPtr(100),
			},
			"city": {
				Type:        "string",
				Description: "City tag, e.g. abidjan",
				MaxLength:   validation.IntPtr(100),
			},
			"tone": {
				Type: "string",
				Enum: toneEnum(),
			},
		},
		AdditionalProperties: true,
	}
}
