package dealupdate

import (
	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/validation"
	"fluiq-workers/internal/workers/deals"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"sessionToken", "dealId", "patch"},
		Properties: map[string]validation.Property{
			"sessionToken": auth.SessionTokenProperty,
			"dealId":       deals.DealIDProperty,
			"patch":        deals.PatchProperty(),
			"failIfMissing": {
				Type:        "boolean",
				Description: "Throw DEAL_NOT_FOUND instead of completing with result not_found",
			},
		},
		AdditionalProperties: true,
	}
}
