package dealdelete

import (
	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/validation"
	"fluiq-workers/internal/workers/deals"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"sessionToken", "dealId"},
		Properties: map[string]validation.Property{
			"sessionToken":  auth.SessionTokenProperty,
			"dealId":        deals.DealIDProperty,
			"failIfMissing": {Type: "boolean"},
		},
		AdditionalProperties: true,
	}
}
