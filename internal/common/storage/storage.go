// Package storage provides the key-value persistence used for per-user collections.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fluiq-workers/internal/common/config"
	"fluiq-workers/internal/common/database"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// KVStore persists opaque values under string keys. Values are whole
// documents: Set replaces whatever was stored before.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Key joins a prefix and parts with ':'. Empty parts are skipped.
func Key(prefix string, parts ...string) string {
	segments := make([]string, 0, len(parts)+1)
	if prefix != "" {
		segments = append(segments, prefix)
	}
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return strings.Join(segments, ":")
}

// New builds the store selected by cfg.Backend. The redis and postgres
// clients may be nil when their backend is not selected.
func New(ctx context.Context, cfg config.StorageConfig, rc *database.RedisClient, pc *database.PostgresClient) (KVStore, error) {
	switch cfg.Backend {
	case config.StorageBackendRedis:
		if rc == nil {
			return nil, fmt.Errorf("storage backend redis requires a redis client")
		}
		return NewRedisStore(rc.GetClient()), nil
	case config.StorageBackendPostgres:
		if pc == nil {
			return nil, fmt.Errorf("storage backend postgres requires a postgres client")
		}
		store, err := NewPostgresStore(pc.DB, cfg.Table)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageBackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
