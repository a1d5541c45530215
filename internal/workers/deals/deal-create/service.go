package dealcreate

import (
	"context"
	"time"

	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/common/metrics"
	"fluiq-workers/internal/common/observability"
	"fluiq-workers/internal/ledger"
	"fluiq-workers/internal/models"
)

// ServiceInterface lets handler tests swap the service for a mock.
type ServiceInterface interface {
	Execute(ctx context.Context, input *Input) (*Output, error)
}

type Service struct {
	config   *Config
	logger   logger.Logger
	gate     auth.Authenticator
	registry *ledger.Registry
	obs      *observability.Observability
	now      func() time.Time
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:   config,
		logger:   deps.Logger,
		gate:     deps.Gate,
		registry: deps.Registry,
		obs:      deps.Observability,
		now:      time.Now,
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	ctx, id, err := s.gate.Require(ctx, input.SessionToken)
	if err != nil {
		return nil, err
	}

	var deal models.Deal
	err = s.registry.Do(ctx, id.UserID, func(l *ledger.Ledger) error {
		var addErr error
		deal, addErr = l.Add(ctx, input.Deal.WithDefaults(s.now()))
		return addErr
	})
	result := "created"
	if err != nil {
		result = "error"
	}
	metrics.DealMutations.WithLabelValues("create", result).Inc()
	s.obs.RecordLedgerOperation(ctx, "create", result)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Deal recorded", map[string]interface{}{
		"userId": id.UserID,
		"dealId": deal.ID,
		"status": deal.Status,
	})
	return &Output{Deal: deal}, nil
}
