package listtemplates

import (
	"context"

	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/models"
)

type ServiceInterface interface {
	Execute(ctx context.Context, input *Input) (*Output, error)
}

type Service struct {
	config    *Config
	logger    logger.Logger
	gate      auth.Authenticator
	templates []models.Template
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:    config,
		logger:    deps.Logger,
		gate:      deps.Gate,
		templates: deps.Templates,
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	if _, _, err := s.gate.Require(ctx, input.SessionToken); err != nil {
		return nil, err
	}

	out := make([]models.Template, 0, len(s.templates))
	for _, t := range s.templates {
		if input.Category == "" || input.Category == AllCategories || t.Category == input.Category {
			out = append(out, t)
		}
	}

	return &Output{Templates: out, Categories: categoryFilter()}, nil
}

func categoryFilter() []Category {
	out := []Category{{ID: AllCategories, Label: "Tous"}}
	for _, c := range categories {
		out = append(out, Category{ID: string(c), Label: c.Label()})
	}
	return out
}
