package deallist

import (
	"context"

	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/ledger"
)

type ServiceInterface interface {
	Execute(ctx context.Context, input *Input) (*Output, error)
}

type Service struct {
	config   *Config
	logger   logger.Logger
	gate     auth.Authenticator
	registry *ledger.Registry
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:   config,
		logger:   deps.Logger,
		gate:     deps.Gate,
		registry: deps.Registry,
	}
}

// Execute returns the collection in insertion order with its aggregates.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	ctx, id, err := s.gate.Require(ctx, input.SessionToken)
	if err != nil {
		return nil, err
	}

	l, err := s.registry.For(ctx, id.UserID)
	if err != nil {
		return nil, err
	}

	deals := l.List()
	return &Output{Deals: deals, Stats: ledger.Stats(deals)}, nil
}
