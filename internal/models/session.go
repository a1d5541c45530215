package models

import "time"

// Identity is the authenticated user a job acts on behalf of.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Session binds an opaque token to an identity until ExpiresAt.
type Session struct {
	Token     string    `json:"token"`
	Identity  Identity  `json:"identity"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsExpired checks if session has expired
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// SessionEventType is the kind of change announced on the session channel.
type SessionEventType string

const (
	SessionSignedIn  SessionEventType = "signed_in"
	SessionSignedOut SessionEventType = "signed_out"
)

// SessionEvent is published whenever a session opens or closes.
type SessionEvent struct {
	Type       SessionEventType `json:"type"`
	UserID     string           `json:"userId"`
	Token      string           `json:"token,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}
