package sessionopen

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/errors"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, ev models.SessionEvent) error {
	return m.Called(ctx, ev).Error(0)
}

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)

	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:           key,
		Type:          TaskType,
		CustomHeaders: "{}",
		Retries:       3,
		Variables:     string(variablesJSON),
	}}
}

func setupSessions(t *testing.T) (*auth.SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return auth.NewSessionStore(client, "session", time.Hour), mr
}

func TestHandler_ParseInput(t *testing.T) {
	handler := &Handler{config: DefaultConfig(), logger: logger.NewTestLogger(t)}

	input, err := handler.parseInput(createMockJob(1, map[string]interface{}{"userId": "user-awa", "email": "awa@example.com"}))
	require.NoError(t, err)
	assert.Equal(t, "user-awa", input.UserID)
	assert.Empty(t, input.Token)

	for _, vars := range []map[string]interface{}{
		{},
		{"userId": ""},
		{"userId": "user-awa", "token": "short"},
	} {
		_, err := handler.parseInput(createMockJob(2, vars))
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidationFailed), "vars %v", vars)
	}
}

func TestService_OpensSessionAndPublishes(t *testing.T) {
	sessions, mr := setupSessions(t)
	publisher := &MockPublisher{}
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(ev models.SessionEvent) bool {
		return ev.Type == models.SessionSignedIn && ev.UserID == "user-awa"
	})).Return(nil).Once()

	svc := NewService(ServiceDependencies{Sessions: sessions, Publisher: publisher, Logger: logger.NewTestLogger(t)}, DefaultConfig())
	output, err := svc.Execute(context.Background(), &Input{UserID: "user-awa", Email: "awa@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, output.SessionToken)
	assert.True(t, mr.Exists("session:"+output.SessionToken))
	assert.True(t, output.ExpiresAt.After(time.Now()))

	id, err := sessions.Resolve(context.Background(), output.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, "awa@example.com", id.Email)
	publisher.AssertExpectations(t)
}

func TestService_PublishFailureIsNotFatal(t *testing.T) {
	sessions, _ := setupSessions(t)
	publisher := &MockPublisher{}
	publisher.On("Publish", mock.Anything, mock.Anything).Return(assert.AnError)

	svc := NewService(ServiceDependencies{Sessions: sessions, Publisher: publisher, Logger: logger.NewTestLogger(t)}, DefaultConfig())
	output, err := svc.Execute(context.Background(), &Input{UserID: "user-awa", Token: "0123456789abcdef"})
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef", output.SessionToken)
}

func TestService_StoreDown(t *testing.T) {
	sessions, mr := setupSessions(t)
	mr.Close()

	svc := NewService(ServiceDependencies{Sessions: sessions, Logger: logger.NewTestLogger(t)}, DefaultConfig())
	_, err := svc.Execute(context.Background(), &Input{UserID: "user-awa"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeStorageWriteFailed))
}

// panickingService fails the way a nil dereference deep in a service would.
type panickingService struct{}

func (panickingService) Execute(context.Context, *Input) (*Output, error) {
	panic("assignment to entry in nil map")
}

func TestHandler_ProcessRecoversPanic(t *testing.T) {
	handler := &Handler{config: DefaultConfig(), logger: logger.NewTestLogger(t), service: panickingService{}}

	var (
		output *Output
		err    error
	)
	require.NotPanics(t, func() {
		output, err = handler.process(context.Background(), createMockJob(1, map[string]interface{}{"userId": "user-awa", "email": "awa@example.com"}))
	})
	assert.Nil(t, output)
	require.True(t, errors.HasCode(err, errors.ErrCodeInternal))

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, "panic: assignment to entry in nil map", stdErr.Details)
	assert.NotEmpty(t, stdErr.Metadata["stack"])
}
