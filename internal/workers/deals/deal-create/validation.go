package dealcreate

import (
	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/validation"
	"fluiq-workers/internal/workers/deals"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"sessionToken", "deal"},
		Properties: map[string]validation.Property{
			"sessionToken": auth.SessionTokenProperty,
			"deal":         deals.DraftProperty(),
		},
		AdditionalProperties: true,
	}
}
