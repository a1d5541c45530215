package ledger

import (
	"context"
	"hash/fnv"
	"sync"

	"fluiq-workers/internal/common/storage"
)

// lockStripes bounds the number of per-user mutexes a Registry holds.
const lockStripes = 64

// Registry opens a user's ledger from the store on every call, so a
// collection is never served from a copy older than the current job.
// Nothing is cached per user.
type Registry struct {
	store  storage.KVStore
	prefix string
	opts   []Option
	locks  [lockStripes]sync.Mutex
}

// NewRegistry builds a registry over store. Keys are KeyFor(prefix, userID)
// and opts are applied to every opened Ledger.
func NewRegistry(store storage.KVStore, prefix string, opts ...Option) *Registry {
	return &Registry{
		store:  store,
		prefix: prefix,
		opts:   opts,
	}
}

// KeyFor is the storage key of a user's deal collection.
func KeyFor(prefix, userID string) string {
	return storage.Key(prefix, "deals", userID)
}

// For loads the user's current collection. Use it for reads; mutations go
// through Do.
func (r *Registry) For(ctx context.Context, userID string) (*Ledger, error) {
	return Open(ctx, r.store, KeyFor(r.prefix, userID), r.opts...)
}

// Do loads the user's collection and runs fn on it while holding the user's
// stripe lock, so mutations for one user within this process never
// interleave between load and write.
func (r *Registry) Do(ctx context.Context, userID string, fn func(*Ledger) error) error {
	mu := r.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	l, err := r.For(ctx, userID)
	if err != nil {
		return err
	}
	return fn(l)
}

func (r *Registry) lockFor(userID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return &r.locks[h.Sum32()%lockStripes]
}
