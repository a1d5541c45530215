package listevents

import (
	"fluiq-workers/internal/calendar"
	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/validation"
)

func countryEnum() []string {
	out := make([]string, len(calendar.Countries))
	for i, c := range calendar.Countries {
		out[i] = c.Code
	}
	return out
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"sessionToken"},
		Properties: map[string]validation.Property{
			"sessionToken": auth.SessionTokenProperty,
			"country": {
				Type: "string",
				Enum: countryEnum(),
			},
			"date": {
				Type:    "string",
				Pattern: `^\d{4}-\d{2}-\d{2}$`,
			},
			"year": {
				Type:    "integer",
				Minimum: validation.FloatPtr(1970),
				Maximum: validation.FloatPtr(9999),
			},
			"month": {
				Type:    "integer",
				Minimum: validation.FloatPtr(1),
				Maximum: validation.FloatPtr(12),
			},
		},
		AdditionalProperties: true,
	}
}
