package dealdelete

import (
	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/common/observability"
	"fluiq-workers/internal/ledger"
)

type Input struct {
	SessionToken  string `json:"sessionToken"`
	DealID        string `json:"dealId"`
	FailIfMissing bool   `json:"failIfMissing,omitempty"`
}

// Output.Result is "removed" or "not_found".
type Output struct {
	Result string `json:"result"`
	DealID string `json:"dealId"`
}

type ServiceDependencies struct {
	Gate          auth.Authenticator
	Registry      *ledger.Registry
	Observability *observability.Observability
	Logger        logger.Logger
}
