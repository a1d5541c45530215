package sessionclose

import (
	"context"
	"time"

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
	sessions  SessionCloser
	publisher EventPublisher
	now       func() time.Time
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:    config,
		logger:    deps.Logger,
		sessions:  deps.Sessions,
		publisher: deps.Publisher,
		now:       time.Now,
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	session, closed, err := s.sessions.Close(ctx, input.SessionToken)
	if err != nil {
		return nil, err
	}
	if !closed {
		return &Output{Success: false}, nil
	}

	userID := session.Identity.UserID
	if s.publisher != nil {
		ev := models.SessionEvent{
			Type:       models.SessionSignedOut,
			UserID:     userID,
			OccurredAt: s.now().UTC(),
		}
		if err := s.publisher.Publish(ctx, ev); err != nil {
			s.logger.Warn("Failed to publish session event", map[string]interface{}{
				"userId": userID,
				"error":  err.Error(),
			})
		} else {
			metrics.SessionEvents.WithLabelValues(string(models.SessionSignedOut)).Inc()
		}
	}

	return &Output{Success: true, UserID: userID}, nil
}
