// Package auth holds the session gate in front of every user-facing worker.
// Identity itself comes from an external provider; this package only maps
// opaque session tokens to identities and announces session changes.
package auth

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"time"

	"fluiq-workers/internal/common/errors"
	"fluiq-workers/internal/common/storage"
	"fluiq-workers/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionStore keeps sessions in redis under <prefix>:<token> with a TTL.
type SessionStore struct {
	client   redis.Cmdable
	prefix   string
	ttl      time.Duration
	now      func() time.Time
	newToken func() string
}

// SessionOption customizes a SessionStore.
type SessionOption func(*SessionStore)

// WithSessionClock replaces time.Now for issue and expiry timestamps.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *SessionStore) { s.now = now }
}

// WithTokenGenerator replaces uuid.NewString for issued tokens.
func WithTokenGenerator(newToken func() string) SessionOption {
	return func(s *SessionStore) { s.newToken = newToken }
}

// NewSessionStore keeps sessions in redis under prefix. Each session expires
// ttl after it is opened.
func NewSessionStore(client redis.Cmdable, prefix string, ttl time.Duration, opts ...SessionOption) *SessionStore {
	s := &SessionStore{
		client:   client,
		prefix:   prefix,
		ttl:      ttl,
		now:      time.Now,
		newToken: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SessionStore) key(token string) string {
	return storage.Key(s.prefix, token)
}

// Open starts a session for an identity vouched for by the identity provider.
// An empty token asks the store to mint one.
func (s *SessionStore) Open(ctx context.Context, id models.Identity, token string) (models.Session, error) {
	if strings.TrimSpace(id.UserID) == "" {
		return models.Session{}, errors.NewValidationError("userId is required to open a session")
	}
	if token == "" {
		token = s.newToken()
	}

	now := s.now().UTC()
	session := models.Session{
		Token:     token,
		Identity:  id,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return models.Session{}, errors.NewInternalError(err)
	}
	if err := s.client.Set(ctx, s.key(token), data, s.ttl).Err(); err != nil {
		return models.Session{}, errors.NewStorageWriteError(s.key(token), err)
	}
	return session, nil
}

// Lookup returns the stored session for token, or ok=false when there is none.
func (s *SessionStore) Lookup(ctx context.Context, token string) (models.Session, bool, error) {
	if token == "" {
		return models.Session{}, false, nil
	}
	raw, err := s.client.Get(ctx, s.key(token)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return models.Session{}, false, nil
	}
	if err != nil {
		return models.Session{}, false, errors.NewStorageReadError(s.key(token), err)
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return models.Session{}, false, errors.NewStorageReadError(s.key(token), err)
	}
	if session.IsExpired(s.now()) {
		return models.Session{}, false, nil
	}
	return session, true, nil
}

// Resolve maps a token to its identity or fails with UNAUTHENTICATED.
func (s *SessionStore) Resolve(ctx context.Context, token string) (models.Identity, error) {
	session, ok, err := s.Lookup(ctx, token)
	if err != nil {
		return models.Identity{}, err
	}
	if !ok {
		return models.Identity{}, errors.NewUnauthenticatedError("session token is missing, unknown or expired")
	}
	return session.Identity, nil
}

// Close ends a session. Closing an unknown token is not an error; ok reports
// whether a live session was removed.
func (s *SessionStore) Close(ctx context.Context, token string) (models.Session, bool, error) {
	session, ok, err := s.Lookup(ctx, token)
	if err != nil || !ok {
		return models.Session{}, false, err
	}
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return models.Session{}, false, errors.NewStorageWriteError(s.key(token), err)
	}
	return session, true, nil
}
