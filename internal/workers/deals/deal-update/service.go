package dealupdate

import (
	"context"

	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/errors"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/common/metrics"
	"fluiq-workers/internal/common/observability"
	"fluiq-workers/internal/ledger"
	"fluiq-workers/internal/notify"
)

type ServiceInterface interface {
	Execute(ctx context.Context, input *Input) (*Output, error)
}

type Service struct {
	config   *Config
	logger   logger.Logger
	gate     auth.Authenticator
	registry *ledger.Registry
	notifier notify.Notifier
	obs      *observability.Observability
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Service{
		config:   config,
		logger:   deps.Logger,
		gate:     deps.Gate,
		registry: deps.Registry,
		notifier: notifier,
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
		res, opErr = l.Update(ctx, input.DealID, input.Patch)
		return opErr
	})
	result := string(res.Outcome)
	if err != nil {
		result = "error"
	}
	metrics.DealMutations.WithLabelValues("update", result).Inc()
	s.obs.RecordLedgerOperation(ctx, "update", result)
	if err != nil {
		return nil, err
	}

	if !res.Found() {
		s.logger.Info("Deal to update not found", map[string]interface{}{
			"userId": id.UserID,
			"dealId": input.DealID,
		})
		if input.FailIfMissing {
			return nil, errors.NewDealNotFoundError(input.DealID)
		}
		return &Output{Result: string(ledger.NotFound)}, nil
	}

	s.notifier.DealUpdated(ctx, id.UserID, res.Previous, res.Deal)

	deal := res.Deal
	return &Output{Result: string(res.Outcome), Deal: &deal}, nil
}
