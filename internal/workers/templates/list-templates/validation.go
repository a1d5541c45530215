package listtemplates

import (
	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/validation"
	"fluiq-workers/internal/models"
)

// AllCategories is the filter value that keeps every template.
const AllCategories = "all"

var categories = []models.TemplateCategory{
	models.CategoryMediaKit,
	models.CategoryContrat,
	models.CategoryFacture,
	models.CategoryEmail,
	models.CategoryPlanning,
}

func GetInputSchema() validation.JSONSchema {
	enum := []string{AllCategories}
	for _, c := range categories {
		enum = append(enum, string(c))
	}
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"sessionToken"},
		Properties: map[string]validation.Property{
			"sessionToken": auth.SessionTokenProperty,
			"category": {
				Type: "string",
				Enum: enum,
			},
		},
		AdditionalProperties: true,
	}
}
