package sessionclose

import (
	"context"

	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/models"
)

type Input struct {
	SessionToken string `json:"sessionToken"`
}

// Output.Success is false when the token had no live session; closing is
// idempotent either way.
type Output struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId,omitempty"`
}

type SessionCloser interface {
	Close(ctx context.Context, token string) (models.Session, bool, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, ev models.SessionEvent) error
}

type ServiceDependencies struct {
	Sessions  SessionCloser
	Publisher EventPublisher
	Logger    logger.Logger
}
