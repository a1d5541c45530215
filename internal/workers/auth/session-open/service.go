package sessionopen

import (
	"context"

	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/common/metrics"
	"fluiq-workers/internal/models"
)

type ServiceInterface interface {
	Execute(ctx context.Context, input *Input) (*Output, error)
}

type Service struct {
	config    *Config
	logger    logger.Logger
	sessions  SessionOpener
	publisher EventPublisher
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:    config,
		logger:    deps.Logger,
		sessions:  deps.Sessions,
		publisher: deps.Publisher,
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	session, err := s.sessions.Open(ctx, models.Identity{UserID: input.UserID, Email: input.Email}, input.Token)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		ev := models.SessionEvent{
			Type:       models.SessionSignedIn,
			UserID:     input.UserID,
			OccurredAt: session.CreatedAt,
		}
		if err := s.publisher.Publish(ctx, ev); err != nil {
			s.logger.Warn("Failed to publish session event", map[string]interface{}{
				"userId": input.UserID,
				"error":  err.Error(),
			})
		} else {
			metrics.SessionEvents.WithLabelValues(string(models.SessionSignedIn)).Inc()
		}
	}

	return &Output{SessionToken: session.Token, ExpiresAt: session.ExpiresAt}, nil
}
