package dealcreate

import (
	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/common/observability"
	"fluiq-workers/internal/ledger"
	"fluiq-workers/internal/models"
)

type Input struct {
	SessionToken string           `json:"sessionToken"`
	Deal         models.DealDraft `json:"deal"`
}

type Output struct {
	Deal models.Deal `json:"deal"`
}

type ServiceDependencies struct {
	Gate          auth.Authenticator
	Registry      *ledger.Registry
	Observability *observability.Observability
	Logger        logger.Logger
}
