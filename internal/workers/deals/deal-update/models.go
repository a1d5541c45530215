package dealupdate

import (
	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/common/observability"
	"fluiq-workers/internal/ledger"
	"fluiq-workers/internal/models"
	"fluiq-workers/internal/notify"
)

type Input struct {
	SessionToken  string           `json:"sessionToken"`
	DealID        string           `json:"dealId"`
	Patch         models.DealPatch `json:"patch"`
	FailIfMissing bool             `json:"failIfMissing,omitempty"`
}

// Output.Result is "updated" or "not_found"; Deal is only set when updated.
type Output struct {
	Result string       `json:"result"`
	Deal   *models.Deal `json:"deal,omitempty"`
}

type ServiceDependencies struct {
	Gate          auth.Authenticator
	Registry      *ledger.Registry
	Notifier      notify.Notifier
	Observability *observability.Observability
	Logger        logger.Logger
}
