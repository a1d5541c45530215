// Package deals holds the job-variable schemas shared by the deal workers.
package deals

import (
	"fluiq-workers/internal/common/validation"
	"fluiq-workers/internal/models"
)

const datePattern = `^\d{4}-\d{2}-\d{2}$`

func statusEnum() []string {
	out := make([]string, len(models.DealStatuses))
	for i, s := range models.DealStatuses {
		out[i] = string(s)
	}
	return out
}

func typeEnum() []string {
	out := make([]string, len(models.DealTypes))
	for i, t := range models.DealTypes {
		out[i] = string(t)
	}
	return out
}

// fieldProperties describes the editable deal fields. Every one is optional here;
// callers add their own required list.
func fieldProperties() map[string]validation.Property {
	return map[string]validation.Property{
		"brand_name": {
			Type:        "string",
			Description: "Brand the deal is negotiated with",
			MinLength:   validation.IntPtr(1),
			Pattern:     `\S`,
			MaxLength:   validation.IntPtr(200),
		},
		"contact_email": {
			Type:        "string",
			Description: "Brand contact, not format-checked",
			MaxLength:   validation.IntPtr(320),
		},
		"date_sent": {
			Type:        "string",
			Description: "Date the proposal was sent (YYYY-MM-DD)",
			Pattern:     datePattern,
		},
		"status": {
			Type: "string",
			Enum: statusEnum(),
		},
		"deal_type": {
			Type: "string",
			Enum: typeEnum(),
		},
		"proposed_amount": {
			Type:    "number",
			Minimum: validation.FloatPtr(0),
		},
		"notes": {
			Type:      "string",
			MaxLength: validation.IntPtr(5000),
		},
	}
}

// DraftProperty validates a new deal. Only brand_name is mandatory.
func DraftProperty() validation.Property {
	return validation.Property{
		Type:        "object",
		Description: "Deal to record",
		Properties:  fieldProperties(),
		Required:    []string{"brand_name"},
	}
}

// PatchProperty validates a partial update.
func PatchProperty() validation.Property {
	return validation.Property{
		Type:        "object",
		Description: "Fields to merge over the stored deal",
		Properties:  fieldProperties(),
	}
}

// DealIDProperty identifies a stored deal.
var DealIDProperty = validation.Property{
	Type:        "string",
	Description: "Identifier assigned by deal-create",
	MinLength:   validation.IntPtr(1),
}
