// Package ledger keeps a user's brand-deal collection and persists it as a
// single document on every mutation.
package ledger

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"time"

	"fluiq-workers/internal/common/errors"
	"fluiq-workers/internal/common/storage"
	"fluiq-workers/internal/models"

	"github.com/google/uuid"
)

// Outcome tags what an Update or Remove did.
type Outcome string

const (
	Updated  Outcome = "updated"
	Removed  Outcome = "removed"
	NotFound Outcome = "not_found"
)

// UpdateResult reports the outcome of Update or Remove. Previous and Deal are
// zero when the id was not found.
type UpdateResult struct {
	Outcome  Outcome
	Previous models.Deal
	Deal     models.Deal
}

func (r UpdateResult) Found() bool {
	return r.Outcome != NotFound
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithIDGenerator replaces uuid.NewString.
func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) {
		l.newID = newID
	}
}

// Ledger is the in-memory view of one stored deal collection. Mutations are
// serialized; the in-memory collection only changes after the store accepted
// the new document.
type Ledger struct {
	mu    sync.Mutex
	store storage.KVStore
	key   string
	deals []models.Deal
	now   func() time.Time
	newID func() string
}

// Open loads the collection stored under key. A key that was never written
// yields an empty ledger.
func Open(ctx context.Context, store storage.KVStore, key string, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store: store,
		key:   key,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}

	raw, err := store.Get(ctx, key)
	if stderrors.Is(err, storage.ErrNotFound) {
		return l, nil
	}
	if err != nil {
		return nil, errors.NewStorageReadError(key, err)
	}

	if err := json.Unmarshal(raw, &l.deals); err != nil {
		return nil, errors.NewStorageReadError(key, err)
	}
	return l, nil
}

// Key returns the storage key this ledger persists to.
func (l *Ledger) Key() string {
	return l.key
}

// List returns a copy of the collection in insertion order.
func (l *Ledger) List() []models.Deal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneDeals(l.deals)
}

// Get returns the deal with the given id.
func (l *Ledger) Get(id string) (models.Deal, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.indexOf(id); i >= 0 {
		return l.deals[i], true
	}
	return models.Deal{}, false
}

// Add assigns a fresh id and equal created/updated timestamps, appends the
// deal and persists the collection.
func (l *Ledger) Add(ctx context.Context, draft models.DealDraft) (models.Deal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.timestamp()
	deal := models.Deal{
		ID:             l.newID(),
		BrandName:      draft.BrandName,
		ContactEmail:   draft.ContactEmail,
		DateSent:       draft.DateSent,
		Status:         draft.Status,
		DealType:       draft.DealType,
		ProposedAmount: draft.ProposedAmount,
		Notes:          draft.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	next := append(cloneDeals(l.deals), deal)
	if err := l.commit(ctx, next); err != nil {
		return models.Deal{}, err
	}
	return deal, nil
}

// Update merges patch over the deal with the given id and refreshes its
// UpdatedAt. An unknown id leaves the collection unchanged but it is still
// rewritten.
func (l *Ledger) Update(ctx context.Context, id string, patch models.DealPatch) (UpdateResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := cloneDeals(l.deals)
	i := l.indexOf(id)
	if i < 0 {
		if err := l.commit(ctx, next); err != nil {
			return UpdateResult{}, err
		}
		return UpdateResult{Outcome: NotFound}, nil
	}

	previous := next[i]
	merged := patch.ApplyTo(previous)
	merged.ID = previous.ID
	merged.CreatedAt = previous.CreatedAt
	merged.UpdatedAt = l.timestamp()
	if merged.UpdatedAt.Before(merged.CreatedAt) {
		merged.UpdatedAt = merged.CreatedAt
	}
	next[i] = merged

	if err := l.commit(ctx, next); err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{Outcome: Updated, Previous: previous, Deal: merged}, nil
}

// Remove drops the deal with the given id and persists the collection.
func (l *Ledger) Remove(ctx context.Context, id string) (UpdateResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	var removed models.Deal
	if i >= 0 {
		removed = l.deals[i]
	}
	next := make([]models.Deal, 0, len(l.deals))
	for _, d := range l.deals {
		if d.ID != id {
			next = append(next, d)
		}
	}

	if err := l.commit(ctx, next); err != nil {
		return UpdateResult{}, err
	}
	if i < 0 {
		return UpdateResult{Outcome: NotFound}, nil
	}
	return UpdateResult{Outcome: Removed, Previous: removed, Deal: removed}, nil
}

// Stats aggregates the current collection.
func (l *Ledger) Stats() models.DealStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Stats(l.deals)
}

// commit writes next to the store and only then makes it the live collection.
// Caller holds l.mu.
func (l *Ledger) commit(ctx context.Context, next []models.Deal) error {
	if next == nil {
		next = []models.Deal{}
	}
	raw, err := json.Marshal(next)
	if err != nil {
		return errors.NewStorageWriteError(l.key, err)
	}
	if err := l.store.Set(ctx, l.key, raw); err != nil {
		return errors.NewStorageWriteError(l.key, err)
	}
	l.deals = next
	return nil
}

func (l *Ledger) indexOf(id string) int {
	for i, d := range l.deals {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// timestamp strips the monotonic reading so values survive a JSON round trip unchanged.
func (l *Ledger) timestamp() time.Time {
	return l.now().UTC()
}

func cloneDeals(deals []models.Deal) []models.Deal {
	out := make([]models.Deal, len(deals))
	copy(out, deals)
	return out
}
