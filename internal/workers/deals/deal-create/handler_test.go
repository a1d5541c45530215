package dealcreate

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/config"
	"fluiq-workers/internal/common/errors"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/common/storage"
	"fluiq-workers/internal/ledger"
	"fluiq-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Service Implementation
// ==========================

type MockService struct {
	mock.Mock
}

func (m *MockService) Execute(ctx context.Context, input *Input) (*Output, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Output), args.Error(1)
}

// ==========================
// Test Helpers
// ==========================

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)

	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                key,
		Type:               TaskType,
		ProcessInstanceKey: key * 10,
		BpmnProcessId:      "deal-tracker",
		ElementId:          "Activity_CreateDeal",
		CustomHeaders:      "{}",
		Worker:             "test-worker",
		Retries:            3,
		Variables:          string(variablesJSON),
	}}
}

func createTestGate() *auth.Gate {
	return auth.NewGate(auth.ResolverFunc(func(_ context.Context, token string) (models.Identity, error) {
		if token != "tok-awa" {
			return models.Identity{}, errors.NewUnauthenticatedError("no session")
		}
		return models.Identity{UserID: "user-awa", Email: "awa@example.com"}, nil
	}))
}

func createTestService(t *testing.T, store storage.KVStore) *Service {
	ids := 0
	registry := ledger.NewRegistry(store, "fluiq",
		ledger.WithClock(func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }),
		ledger.WithIDGenerator(func() string { ids++; return fmt.Sprintf("deal-%d", ids) }),
	)
	svc := NewService(ServiceDependencies{
		Gate:     createTestGate(),
		Registry: registry,
		Logger:   logger.NewTestLogger(t),
	}, DefaultConfig())
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }
	return svc
}

type failingStore struct{ storage.KVStore }

func (failingStore) Set(context.Context, string, []byte) error {
	return assert.AnError
}

// ==========================
// Handler Creation Tests
// ==========================

func TestHandler_NewHandler(t *testing.T) {
	tests := []struct {
		name    string
		opts    HandlerOptions
		wantErr string
	}{
		{name: "defaults", opts: HandlerOptions{Service: &MockService{}}},
		{
			name: "app config overrides",
			opts: HandlerOptions{
				AppConfig: &config.Config{Workers: map[string]config.WorkerConfig{
					TaskType: {Enabled: false, MaxJobsActive: 3, Timeout: 2000},
				}},
				Service: &MockService{},
			},
		},
		{
			name:    "invalid timeout",
			opts:    HandlerOptions{CustomConfig: &Config{MaxJobsActive: 1}},
			wantErr: "timeout must be positive",
		},
		{
			name:    "invalid max jobs active",
			opts:    HandlerOptions{CustomConfig: &Config{Timeout: time.Second}},
			wantErr: "max_jobs_active must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, err := NewHandler(tt.opts)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, handler.service)
			assert.Equal(t, TaskType, handler.GetTaskType())
		})
	}

	handler, err := NewHandler(HandlerOptions{
		AppConfig: &config.Config{Workers: map[string]config.WorkerConfig{
			TaskType: {Enabled: false, MaxJobsActive: 3, Timeout: 2000},
		}},
		Service: &MockService{},
	})
	require.NoError(t, err)
	assert.False(t, handler.IsEnabled())
	assert.Equal(t, 3, handler.GetConfig().MaxJobsActive)
	assert.Equal(t, 2*time.Second, handler.GetConfig().Timeout)
}

// ==========================
// Input Parsing Tests
// ==========================

func TestHandler_ParseInput(t *testing.T) {
	handler := &Handler{config: DefaultConfig(), logger: logger.NewTestLogger(t)}

	tests := []struct {
		name      string
		variables map[string]interface{}
		wantErr   bool
		validate  func(*testing.T, *Input)
	}{
		{
			name: "full draft",
			variables: map[string]interface{}{
				"sessionToken": "tok-awa",
				"deal": map[string]interface{}{
					"brand_name":      "Orange CI",
					"status":          "negotiating",
					"deal_type":       "ugc",
					"proposed_amount": 250000,
				},
				"unrelatedProcessVar": true,
			},
			validate: func(t *testing.T, input *Input) {
				assert.Equal(t, "tok-awa", input.SessionToken)
				assert.Equal(t, "Orange CI", input.Deal.BrandName)
				assert.Equal(t, models.DealStatusNegotiating, input.Deal.Status)
				require.NotNil(t, input.Deal.ProposedAmount)
				assert.Equal(t, 250000.0, *input.Deal.ProposedAmount)
			},
		},
		{
			name:      "missing session token",
			variables: map[string]interface{}{"deal": map[string]interface{}{"brand_name": "Orange"}},
			wantErr:   true,
		},
		{
			name:      "missing brand name",
			variables: map[string]interface{}{"sessionToken": "tok-awa", "deal": map[string]interface{}{}},
			wantErr:   true,
		},
		{
			name: "negative amount",
			variables: map[string]interface{}{
				"sessionToken": "tok-awa",
				"deal":         map[string]interface{}{"brand_name": "Orange", "proposed_amount": -5},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := handler.parseInput(createMockJob(1, tt.variables))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ErrCodeValidationFailed))
				return
			}
			require.NoError(t, err)
			tt.validate(t, input)
		})
	}
}

// ==========================
// Execute Tests
// ==========================

func TestHandler_ExecuteDelegatesToService(t *testing.T) {
	svc := &MockService{}
	handler, err := NewHandler(HandlerOptions{Service: svc, Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)

	input := &Input{SessionToken: "tok-awa", Deal: models.DealDraft{BrandName: "Orange"}}
	svc.On("Execute", mock.Anything, input).Return(&Output{Deal: models.Deal{ID: "d-1"}}, nil)

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "d-1", output.Deal.ID)
	svc.AssertExpectations(t)
}

func TestService_Execute(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := createTestService(t, store)

	output, err := svc.Execute(context.Background(), &Input{
		SessionToken: "tok-awa",
		Deal:         models.DealDraft{BrandName: "Orange CI"},
	})
	require.NoError(t, err)

	deal := output.Deal
	assert.Equal(t, "deal-1", deal.ID)
	assert.Equal(t, models.DealStatusSent, deal.Status)
	assert.Equal(t, models.DealTypeSponsorship, deal.DealType)
	assert.Equal(t, "2026-03-02", deal.DateSent)
	assert.Equal(t, deal.CreatedAt, deal.UpdatedAt)

	raw, err := store.Get(context.Background(), ledger.KeyFor("fluiq", "user-awa"))
	require.NoError(t, err)
	var stored []models.Deal
	require.NoError(t, json.Unmarshal(raw, &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, "Orange CI", stored[0].BrandName)
}

func TestService_ExecuteFailures(t *testing.T) {
	tests := []struct {
		name  string
		store storage.KVStore
		token string
		code  errors.ErrorCode
	}{
		{name: "unknown session", store: storage.NewMemoryStore(), token: "tok-other", code: errors.ErrCodeUnauthenticated},
		{name: "empty session", store: storage.NewMemoryStore(), token: "", code: errors.ErrCodeUnauthenticated},
		{name: "store rejects write", store: failingStore{storage.NewMemoryStore()}, token: "tok-awa", code: errors.ErrCodeStorageWriteFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := createTestService(t, tt.store)
			output, err := svc.Execute(context.Background(), &Input{
				SessionToken: tt.token,
				Deal:         models.DealDraft{BrandName: "Orange"},
			})
			require.Error(t, err)
			assert.Nil(t, output)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestHandler_ProcessRecoversPanic(t *testing.T) {
	svc := &MockService{}
	svc.On("Execute", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("assignment to entry in nil map")
	})
	handler := &Handler{config: DefaultConfig(), logger: logger.NewTestLogger(t), service: svc}

	var (
		output *Output
		err    error
	)
	require.NotPanics(t, func() {
		output, err = handler.process(context.Background(), createMockJob(1, map[string]interface{}{"sessionToken": "tok-awa", "deal": map[string]interface{}{"brand_name": "Orange"}}))
	})
	assert.Nil(t, output)
	require.True(t, errors.HasCode(err, errors.ErrCodeInternal))

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, "panic: assignment to entry in nil map", stdErr.Details)
	assert.NotEmpty(t, stdErr.Metadata["stack"])
}
