package generatecaption

import (
	"context"

	"fluiq-workers/internal/captions"
	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/common/metrics"
	"fluiq-workers/internal/models"
)

type ServiceInterface interface {
	Execute(ctx context.Context, input *Input) (*Output, error)
}

type Service struct {
	config *Config
	logger logger.Logger
	gate   auth.Authenticator
	engine *captions.Engine
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config: config,
		logger: deps.Logger,
		gate:   deps.Gate,
		engine: deps.Engine,
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	if _, _, err := s.gate.Require(ctx, input.SessionToken); err != nil {
		return nil, err
	}

	caption := s.engine.Select(input.Niche, input.City, input.Tone)
	metrics.CaptionsGenerated.WithLabelValues(string(caption.MatchLevel)).Inc()

	if caption.MatchLevel != models.MatchExact {
		s.logger.Debug("Caption fell back", map[string]interface{}{
			"niche":      input.Niche,
			"city":       input.City,
			"tone":       input.Tone,
			"matchLevel": caption.MatchLevel,
		})
	}
	return &Output{Caption: caption}, nil
}
