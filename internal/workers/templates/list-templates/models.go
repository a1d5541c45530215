package listtemplates

import (
	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/models"
)

type Input struct {
	SessionToken string                  `json:"sessionToken"`
	Category     models.TemplateCategory `json:"category,omitempty"`
}

// Category is one entry of the category filter, "all" first.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type Output struct {
	Templates  []models.Template `json:"templates"`
	Categories []Category        `json:"categories"`
}

type ServiceDependencies struct {
	Gate      auth.Authenticator
	Templates []models.Template
	Logger    logger.Logger
}
