package listevents

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/errors"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/corpus"
	"fluiq-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func createTestService(t *testing.T, events []models.Event) *Service {
	t.Helper()
	gate := auth.NewGate(auth.ResolverFunc(func(_ context.Context, token string) (models.Identity, error) {
		if token != "tok" {
			return models.Identity{}, errors.NewUnauthenticatedError("no session")
		}
		return models.Identity{UserID: "user-awa"}, nil
	}))
	svc := NewService(ServiceDependencies{Gate: gate, Events: events, Logger: logger.NewTestLogger(t)}, DefaultConfig())
	svc.now = func() time.Time { return time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func testEvents() []models.Event {
	return []models.Event{
		{ID: 1, Country: models.CountryAll, Date: "2026-01-01", Name: "Jour de l'An", Type: models.EventHoliday},
		{ID: 2, Country: "SN", Date: "2026-04-04", Name: "Independance", Type: models.EventNational},
		{ID: 3, Country: "TG", Date: "2026-04-27", Name: "Independance", Type: models.EventNational},
		{ID: 4, Country: "CI", Date: "2026-08-07", Name: "Independance", Type: models.EventNational},
		{ID: 5, Country: "SN", Date: "2026-04-04", Name: "Festival", Type: models.EventCultural},
		{ID: 6, Country: models.CountryAll, Date: "2026-05-01", Name: "Fete du Travail", Type: models.EventHoliday},
		{ID: 7, Country: models.CountryAll, Date: "2026-12-25", Name: "Noel", Type: models.EventReligious},
	}
}

func eventIDs(events []models.Event) []int {
	out := make([]int, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func TestHandler_ParseInput(t *testing.T) {
	handler := &Handler{config: DefaultConfig(), logger: logger.NewTestLogger(t)}

	input, err := handler.parseInput(createMockJob(1, map[string]interface{}{
		"sessionToken": "tok", "country": "SN", "year": 2026, "month": 4,
	}))
	require.NoError(t, err)
	assert.Equal(t, "SN", input.Country)
	assert.Equal(t, 4, input.Month)

	invalid := []map[string]interface{}{
		{"sessionToken": "tok", "country": "FR"},
		{"sessionToken": "tok", "month": 13},
		{"sessionToken": "tok", "date": "4 avril"},
	}
	for _, vars := range invalid {
		_, err := handler.parseInput(createMockJob(2, vars))
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidationFailed), "vars %v", vars)
	}
}

func TestService_Execute(t *testing.T) {
	svc := createTestService(t, testEvents())

	tests := []struct {
		name       string
		input      Input
		wantEvents []int
		wantTitle  string
		wantCount  map[int]int
	}{
		{
			name:       "all countries upcoming, current month",
			input:      Input{SessionToken: "tok"},
			wantEvents: []int{1, 2, 3, 4, 5},
			wantTitle:  "Avril 2026",
			wantCount:  map[int]int{4: 2, 27: 1},
		},
		{
			name:       "senegal on a date",
			input:      Input{SessionToken: "tok", Country: "SN", Date: "2026-04-04"},
			wantEvents: []int{2, 5},
			wantTitle:  "Avril 2026",
			wantCount:  map[int]int{4: 2, 27: 0},
		},
		{
			name:       "togo in may",
			input:      Input{SessionToken: "tok", Country: "TG", Year: 2026, Month: 5},
			wantEvents: []int{1, 3, 6, 7},
			wantTitle:  "Mai 2026",
			wantCount:  map[int]int{1: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			output, err := svc.Execute(context.Background(), &input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantEvents, eventIDs(output.Events))
			assert.Equal(t, tt.wantTitle, output.Grid.Title)
			for day, count := range tt.wantCount {
				assert.Equal(t, count, output.Grid.Days[day-1].Events, "day %d", day)
			}
			assert.Len(t, output.DayLabels, 7)
			assert.NotEmpty(t, output.Countries)
		})
	}
}

func TestService_EmbeddedCorpus(t *testing.T) {
	events, err := corpus.LoadEvents("")
	require.NoError(t, err)
	svc := createTestService(t, events)

	output, err := svc.Execute(context.Background(), &Input{SessionToken: "tok", Country: "CI"})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(output.Events), 5)
	for _, e := range output.Events {
		assert.Contains(t, []string{"CI", models.CountryAll}, e.Country)
	}
}

func TestService_RequiresSession(t *testing.T) {
	svc := createTestService(t, testEvents())

	_, err := svc.Execute(context.Background(), &Input{})
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthenticated))
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
		output, err = handler.process(context.Background(), createMockJob(1, map[string]interface{}{"sessionToken": "tok", "country": "SN", "year": 2026, "month": 4}))
	})
	assert.Nil(t, output)
	require.True(t, errors.HasCode(err, errors.ErrCodeInternal))

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, "panic: assignment to entry in nil map", stdErr.Details)
	assert.NotEmpty(t, stdErr.Metadata["stack"])
}
