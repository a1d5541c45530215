package sessionopen

import (
	"context"
	"time"

	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/models"
)

// Input carries the identity asserted by the external identity service.
type Input struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	Token  string `json:"token,omitempty"`
}

type Output struct {
	SessionToken string    `json:"sessionToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type SessionOpener interface {
	Open(ctx context.Context, id models.Identity, token string) (models.Session, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, ev models.SessionEvent) error
}

type ServiceDependencies struct {
	Sessions  SessionOpener
	Publisher EventPublisher
	Logger    logger.Logger
}
