package dealdelete

import (
	"context"

	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/errors"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/common/metrics"
	"fluiq-workers/internal/common/observability"
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
	obs      *observability.Observability
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:   config,
		logger:   deps.Logger,
		gate:     deps.Gate,
		registry: deps.Registry,
		obs:      deps.Observability,
	}
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	ctx, id, err := s.gate.Require(ctx, input.SessionToken)
	if err != nil {
		return nil, err
	}

	var res ledger.UpdateResult
	err = s.registry.Do(ctx, id.UserID, func(l *ledger.Ledger) error {
		var opErr error
		res, opErr = l.Remove(ctx, input.DealID)
		return opErr
	})
	result := string(res.Outcome)
	if err != nil {
		result = "error"
	}
	metrics.DealMutations.WithLabelValues("delete", result).Inc()
	s.obs.RecordLedgerOperation(ctx, "delete", result)
	if err != nil {
		return nil, err
	}

	if !res.Found() && input.FailIfMissing {
		return nil, errors.NewDealNotFoundError(input.DealID)
	}

	s.logger.Info("Deal delete applied", map[string]interface{}{
		"userId": id.UserID,
		"dealId": input.DealID,
		"result": result,
	})
	return &Output{Result: result, DealID: input.DealID}, nil
}
