package ledger

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"fluiq-workers/internal/common/errors"
	"fluiq-workers/internal/common/storage"
	"fluiq-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

const testKey = "fluiq:deals:user-1"

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	raw, _ := args.Get(0).([]byte)
	return raw, args.Error(1)
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// fakeClock advances by one minute on every reading.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("deal-%d", n)
	}
}

func createTestLedger(t *testing.T, store storage.KVStore) (*Ledger, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	l, err := Open(context.Background(), store, testKey, WithClock(clock.Now), WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)
	return l, clock
}

func createDraft(brand string, status models.DealStatus) models.DealDraft {
	amount := 150000.0
	return models.DealDraft{
		BrandName:      brand,
		ContactEmail:   "partners@" + brand + ".com",
		DateSent:       "2026-03-01",
		Status:         status,
		DealType:       models.DealTypeSponsorship,
		ProposedAmount: &amount,
	}
}

func storedDeals(t *testing.T, store storage.KVStore) []models.Deal {
	t.Helper()
	raw, err := store.Get(context.Background(), testKey)
	require.NoError(t, err)
	var deals []models.Deal
	require.NoError(t, json.Unmarshal(raw, &deals))
	return deals
}

func statusPtr(s models.DealStatus) *models.DealStatus { return &s }
func strPtr(s string) *string                          { return &s }

// ==========================
// Open / List
// ==========================

func TestOpen_AbsentKeyIsEmpty(t *testing.T) {
	l, _ := createTestLedger(t, storage.NewMemoryStore())
	assert.Empty(t, l.List())
	assert.Equal(t, testKey, l.Key())
}

func TestOpen_LoadsExistingCollection(t *testing.T) {
	store := storage.NewMemoryStore()
	seed := []models.Deal{{ID: "a", BrandName: "Orange", Status: models.DealStatusSent}}
	raw, _ := json.Marshal(seed)
	require.NoError(t, store.Set(context.Background(), testKey, raw))

	l, _ := createTestLedger(t, store)

	require.Len(t, l.List(), 1)
	assert.Equal(t, "Orange", l.List()[0].BrandName)
}

func TestOpen_ReadFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		err  error
	}{
		{"store error", nil, stderrors.New("connection reset")},
		{"corrupt document", []byte(`{not json`), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{}
			store.On("Get", mock.Anything, testKey).Return(tt.raw, tt.err)

			_, err := Open(context.Background(), store, testKey)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeStorageReadFailed))
		})
	}
}

func TestList_ReturnsCopy(t *testing.T) {
	l, _ := createTestLedger(t, storage.NewMemoryStore())
	_, err := l.Add(context.Background(), createDraft("wave", models.DealStatusSent))
	require.NoError(t, err)

	list := l.List()
	list[0].BrandName = "mutated"

	assert.Equal(t, "wave", l.List()[0].BrandName)
}

// ==========================
// Add
// ==========================

func TestAdd_AssignsIDAndEqualTimestamps(t *testing.T) {
	store := storage.NewMemoryStore()
	l, _ := createTestLedger(t, store)

	first, err := l.Add(context.Background(), createDraft("orange", models.DealStatusSent))
	require.NoError(t, err)
	second, err := l.Add(context.Background(), createDraft("wave", models.DealStatusWaiting))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, second.CreatedAt, second.UpdatedAt)

	list := l.List()
	require.Len(t, list, 2)
	assert.Equal(t, []string{"deal-1", "deal-2"}, []string{list[0].ID, list[1].ID})

	persisted := storedDeals(t, store)
	assert.Equal(t, list, persisted)
}

func TestAdd_DefaultIDsAreUnique(t *testing.T) {
	l, err := Open(context.Background(), storage.NewMemoryStore(), testKey)
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		d, err := l.Add(context.Background(), createDraft("brand", models.DealStatusSent))
		require.NoError(t, err)
		assert.False(t, seen[d.ID])
		seen[d.ID] = true
	}
}

func TestAdd_WriteFailureLeavesStateUntouched(t *testing.T) {
	store := &mockStore{}
	store.On("Get", mock.Anything, testKey).Return(nil, storage.ErrNotFound)
	store.On("Set", mock.Anything, testKey, mock.Anything).Return(stderrors.New("disk full"))

	l, _ := createTestLedger(t, store)

	_, err := l.Add(context.Background(), createDraft("orange", models.DealStatusSent))
	require.Error(t, err)

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeStorageWriteFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
	assert.Empty(t, l.List())
}

// ==========================
// Update
// ==========================

func TestUpdate_ChangesOnlyPatchedFieldsAndUpdatedAt(t *testing.T) {
	store := storage.NewMemoryStore()
	l, _ := createTestLedger(t, store)
	created, err := l.Add(context.Background(), createDraft("orange", models.DealStatusSent))
	require.NoError(t, err)

	res, err := l.Update(context.Background(), created.ID, models.DealPatch{Status: statusPtr(models.DealStatusAccepted)})
	require.NoError(t, err)

	assert.Equal(t, Updated, res.Outcome)
	assert.True(t, res.Found())
	assert.Equal(t, models.DealStatusSent, res.Previous.Status)

	got := res.Deal
	assert.Equal(t, models.DealStatusAccepted, got.Status)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(created.UpdatedAt))

	// everything else is identical
	got.Status = created.Status
	got.UpdatedAt = created.UpdatedAt
	assert.Equal(t, created, got)

	assert.Equal(t, l.List(), storedDeals(t, store))
}

func TestUpdate_CannotOverrideIdentity(t *testing.T) {
	l, _ := createTestLedger(t, storage.NewMemoryStore())
	created, err := l.Add(context.Background(), createDraft("orange", models.DealStatusSent))
	require.NoError(t, err)

	res, err := l.Update(context.Background(), created.ID, models.DealPatch{Notes: strPtr("relance lundi")})
	require.NoError(t, err)

	assert.Equal(t, created.ID, res.Deal.ID)
	assert.Equal(t, "relance lundi", res.Deal.Notes)
}

func TestUpdate_UpdatedAtNeverBeforeCreatedAt(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	readings := []time.Time{start, start.Add(-time.Hour)}
	now := func() time.Time {
		next := readings[0]
		readings = readings[1:]
		return next
	}

	l, err := Open(context.Background(), storage.NewMemoryStore(), testKey, WithClock(now))
	require.NoError(t, err)
	created, err := l.Add(context.Background(), createDraft("orange", models.DealStatusSent))
	require.NoError(t, err)

	res, err := l.Update(context.Background(), created.ID, models.DealPatch{Status: statusPtr(models.DealStatusWaiting)})
	require.NoError(t, err)
	assert.False(t, res.Deal.UpdatedAt.Before(res.Deal.CreatedAt))
}

func TestUpdate_UnknownIDLeavesCollectionIdentical(t *testing.T) {
	store := storage.NewMemoryStore()
	l, _ := createTestLedger(t, store)
	_, err := l.Add(context.Background(), createDraft("orange", models.DealStatusSent))
	require.NoError(t, err)
	before := storedDeals(t, store)

	res, err := l.Update(context.Background(), "missing", models.DealPatch{Status: statusPtr(models.DealStatusRejected)})
	require.NoError(t, err)

	assert.Equal(t, NotFound, res.Outcome)
	assert.False(t, res.Found())
	assert.Equal(t, before, storedDeals(t, store))
	assert.Equal(t, before, l.List())
}

func TestUpdate_WriteFailureRollsBack(t *testing.T) {
	store := &mockStore{}
	store.On("Get", mock.Anything, testKey).Return(nil, storage.ErrNotFound)
	store.On("Set", mock.Anything, testKey, mock.Anything).Return(nil).Once()
	store.On("Set", mock.Anything, testKey, mock.Anything).Return(stderrors.New("timeout"))

	l, _ := createTestLedger(t, store)
	created, err := l.Add(context.Background(), createDraft("orange", models.DealStatusSent))
	require.NoError(t, err)

	_, err = l.Update(context.Background(), created.ID, models.DealPatch{Status: statusPtr(models.DealStatusAccepted)})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeStorageWriteFailed))

	got, ok := l.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, created, got)
	store.AssertNumberOfCalls(t, "Set", 2)
}

// ==========================
// Remove
// ==========================

func TestRemove(t *testing.T) {
	store := storage.NewMemoryStore()
	l, _ := createTestLedger(t, store)
	first, _ := l.Add(context.Background(), createDraft("orange", models.DealStatusSent))
	second, _ := l.Add(context.Background(), createDraft("wave", models.DealStatusWaiting))
	third, _ := l.Add(context.Background(), createDraft("moov", models.DealStatusAccepted))

	res, err := l.Remove(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, Removed, res.Outcome)
	assert.Equal(t, second, res.Deal)

	assert.Equal(t, []models.Deal{first, third}, l.List())
	assert.Equal(t, l.List(), storedDeals(t, store))

	res, err = l.Remove(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, NotFound, res.Outcome)
	assert.Len(t, l.List(), 2)
}

func TestRemove_LastDealPersistsEmptyArray(t *testing.T) {
	store := storage.NewMemoryStore()
	l, _ := createTestLedger(t, store)
	d, _ := l.Add(context.Background(), createDraft("orange", models.DealStatusSent))

	res, err := l.Remove(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, d, res.Deal)
	assert.Equal(t, d, res.Previous)

	raw, err := store.Get(context.Background(), testKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestRemove_ReturnsTheRemovedDealAtEveryPosition(t *testing.T) {
	for pos := 0; pos < 3; pos++ {
		t.Run(fmt.Sprintf("position %d", pos), func(t *testing.T) {
			l, _ := createTestLedger(t, storage.NewMemoryStore())
			var deals []models.Deal
			for _, brand := range []string{"orange", "wave", "moov"} {
				d, err := l.Add(context.Background(), createDraft(brand, models.DealStatusSent))
				require.NoError(t, err)
				deals = append(deals, d)
			}

			res, err := l.Remove(context.Background(), deals[pos].ID)
			require.NoError(t, err)
			assert.Equal(t, Removed, res.Outcome)
			assert.Equal(t, deals[pos], res.Deal)
			assert.NotContains(t, l.List(), deals[pos])
			assert.Len(t, l.List(), 2)
		})
	}
}

func TestRemove_WriteFailureRollsBack(t *testing.T) {
	store := &mockStore{}
	seed, _ := json.Marshal([]models.Deal{{ID: "a", BrandName: "Orange"}})
	store.On("Get", mock.Anything, testKey).Return(seed, nil)
	store.On("Set", mock.Anything, testKey, mock.Anything).Return(stderrors.New("timeout"))

	l, _ := createTestLedger(t, store)

	_, err := l.Remove(context.Background(), "a")
	assert.True(t, errors.HasCode(err, errors.ErrCodeStorageWriteFailed))
	assert.Len(t, l.List(), 1)
}
