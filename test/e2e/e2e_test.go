// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"os"
	"testing"
	"time"

	"fluiq-workers/internal/captions"
	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/camunda"
	"fluiq-workers/internal/common/config"
	"fluiq-workers/internal/common/errors"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/common/observability"
	"fluiq-workers/internal/common/storage"
	"fluiq-workers/internal/corpus"
	"fluiq-workers/internal/ledger"
	"fluiq-workers/internal/models"

	sessionclose "fluiq-workers/internal/workers/auth/session-close"
	sessionopen "fluiq-workers/internal/workers/auth/session-open"
	listevents "fluiq-workers/internal/workers/calendar/list-events"
	generatecaption "fluiq-workers/internal/workers/captions/generate-caption"
	dealcreate "fluiq-workers/internal/workers/deals/deal-create"
	dealdelete "fluiq-workers/internal/workers/deals/deal-delete"
	deallist "fluiq-workers/internal/workers/deals/deal-list"
	dealupdate "fluiq-workers/internal/workers/deals/deal-update"
	exportpitchdeck "fluiq-workers/internal/workers/pitch/export-pitch-deck"
	listtemplates "fluiq-workers/internal/workers/templates/list-templates"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stack is the worker manager wiring with miniredis in place of redis.
type stack struct {
	redis    *miniredis.Miniredis
	client   *redis.Client
	content  *corpus.Corpus
	registry *ledger.Registry

	sessionOpen  *sessionopen.Handler
	sessionClose *sessionclose.Handler
	caption      *generatecaption.Handler
	events       *listevents.Handler
	templates    *listtemplates.Handler
	pitchDeck    *exportpitchdeck.Handler
	dealCreate   *dealcreate.Handler
	dealUpdate   *dealupdate.Handler
	dealDelete   *dealdelete.Handler
	dealList     *deallist.Handler
}

func createTestStack(t *testing.T) *stack {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := logger.NewTestLogger(t)

	content, err := corpus.Load(config.CorpusConfig{})
	require.NoError(t, err)
	engine, err := captions.NewEngine(content.Captions)
	require.NoError(t, err)

	sessions := auth.NewSessionStore(client, "session", time.Hour)
	notifier := auth.NewNotifier(client, "session-events", log)
	gate := auth.NewGate(sessions)

	registry := ledger.NewRegistry(storage.NewRedisStore(client), "fluiq")

	obs := observability.Noop()
	s := &stack{redis: mr, client: client, content: content, registry: registry}

	s.sessionOpen, err = sessionopen.NewHandler(sessionopen.HandlerOptions{
		Dependencies: sessionopen.ServiceDependencies{Sessions: sessions, Publisher: notifier},
		Logger:       log,
	})
	require.NoError(t, err)
	s.sessionClose, err = sessionclose.NewHandler(sessionclose.HandlerOptions{
		Dependencies: sessionclose.ServiceDependencies{Sessions: sessions, Publisher: notifier},
		Logger:       log,
	})
	require.NoError(t, err)
	s.caption, err = generatecaption.NewHandler(generatecaption.HandlerOptions{
		Dependencies: generatecaption.ServiceDependencies{Gate: gate, Engine: engine},
		Logger:       log,
	})
	require.NoError(t, err)
	s.events, err = listevents.NewHandler(listevents.HandlerOptions{
		Dependencies: listevents.ServiceDependencies{Gate: gate, Events: content.Events},
		Logger:       log,
	})
	require.NoError(t, err)
	s.templates, err = listtemplates.NewHandler(listtemplates.HandlerOptions{
		Dependencies: listtemplates.ServiceDependencies{Gate: gate, Templates: content.Templates},
		Logger:       log,
	})
	require.NoError(t, err)
	s.pitchDeck, err = exportpitchdeck.NewHandler(exportpitchdeck.HandlerOptions{
		Dependencies: exportpitchdeck.ServiceDependencies{Gate: gate},
		Logger:       log,
	})
	require.NoError(t, err)
	s.dealCreate, err = dealcreate.NewHandler(dealcreate.HandlerOptions{
		Dependencies: dealcreate.ServiceDependencies{Gate: gate, Registry: registry, Observability: obs},
		Logger:       log,
	})
	require.NoError(t, err)
	s.dealUpdate, err = dealupdate.NewHandler(dealupdate.HandlerOptions{
		Dependencies: dealupdate.ServiceDependencies{Gate: gate, Registry: registry, Observability: obs},
		Logger:       log,
	})
	require.NoError(t, err)
	s.dealDelete, err = dealdelete.NewHandler(dealdelete.HandlerOptions{
		Dependencies: dealdelete.ServiceDependencies{Gate: gate, Registry: registry, Observability: obs},
		Logger:       log,
	})
	require.NoError(t, err)
	s.dealList, err = deallist.NewHandler(deallist.HandlerOptions{
		Dependencies: deallist.ServiceDependencies{Gate: gate, Registry: registry},
		Logger:       log,
	})
	require.NoError(t, err)
	return s
}

func (s *stack) signIn(t *testing.T, userID string) string {
	t.Helper()
	out, err := s.sessionOpen.Execute(context.Background(), &sessionopen.Input{
		UserID: userID,
		Email:  userID + "@fluiq.app",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.SessionToken)
	return out.SessionToken
}

func amount(v float64) *float64 { return &v }

// ==========================
// Full creator journey
// ==========================

func TestFullE2E(t *testing.T) {
	s := createTestStack(t)
	ctx := context.Background()
	token := s.signIn(t, "creator-1")

	t.Run("generate-caption", func(t *testing.T) {
		out, err := s.caption.Execute(ctx, &generatecaption.Input{
			SessionToken: token, Niche: "lifestyle", City: "abidjan", Tone: models.ToneFun,
		})
		require.NoError(t, err)
		assert.Equal(t, models.MatchExact, out.Caption.MatchLevel)
		assert.NotContains(t, out.Caption.Text, "{city}")
		assert.NotContains(t, out.Caption.Text, "{emoji}")
	})

	t.Run("list-events", func(t *testing.T) {
		out, err := s.events.Execute(ctx, &listevents.Input{SessionToken: token, Country: "SN", Year: 2026, Month: 4})
		require.NoError(t, err)
		assert.Equal(t, 2026, out.Grid.Year)
		assert.Equal(t, 4, out.Grid.Month)
		assert.LessOrEqual(t, len(out.Events), 5)
		for _, e := range out.Events {
			assert.Contains(t, []string{"SN", models.CountryAll}, e.Country)
		}
	})

	t.Run("list-templates", func(t *testing.T) {
		all, err := s.templates.Execute(ctx, &listtemplates.Input{SessionToken: token})
		require.NoError(t, err)
		assert.Len(t, all.Templates, len(s.content.Templates))

		kits, err := s.templates.Execute(ctx, &listtemplates.Input{SessionToken: token, Category: models.CategoryMediaKit})
		require.NoError(t, err)
		for _, tpl := range kits.Templates {
			assert.Equal(t, models.CategoryMediaKit, tpl.Category)
		}
	})

	t.Run("export-pitch-deck", func(t *testing.T) {
		out, err := s.pitchDeck.Execute(ctx, &exportpitchdeck.Input{
			SessionToken: token,
			Pitch: models.PitchData{
				Name: "Awa Diallo", Niche: "Lifestyle", Handle: "@awa", Followers: 12500,
				Engagement: 4.2, Platforms: []string{"Instagram", "TikTok"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "pitch-deck-awa-diallo.pdf", out.FileName)
		assert.False(t, out.Delivered)
		assert.Equal(t, "12.5K", out.Document.Stats[0].Value)
	})

	var dealID string
	t.Run("deal lifecycle", func(t *testing.T) {
		created, err := s.dealCreate.Execute(ctx, &dealcreate.Input{
			SessionToken: token,
			Deal:         models.DealDraft{BrandName: "Orange CI", ProposedAmount: amount(150000)},
		})
		require.NoError(t, err)
		dealID = created.Deal.ID
		assert.Equal(t, models.DealStatusSent, created.Deal.Status)

		_, err = s.dealCreate.Execute(ctx, &dealcreate.Input{
			SessionToken: token,
			Deal:         models.DealDraft{BrandName: "Moov", Status: models.DealStatusRejected},
		})
		require.NoError(t, err)

		accepted := models.DealStatusAccepted
		updated, err := s.dealUpdate.Execute(ctx, &dealupdate.Input{
			SessionToken: token, DealID: dealID, Patch: models.DealPatch{Status: &accepted},
		})
		require.NoError(t, err)
		assert.Equal(t, "updated", updated.Result)
		require.NotNil(t, updated.Deal)
		assert.Equal(t, models.DealStatusAccepted, updated.Deal.Status)

		listed, err := s.dealList.Execute(ctx, &deallist.Input{SessionToken: token})
		require.NoError(t, err)
		assert.Equal(t, models.DealStats{Total: 2, Accepted: 1, Rejected: 1, SuccessRate: 50}, listed.Stats)

		removed, err := s.dealDelete.Execute(ctx, &dealdelete.Input{SessionToken: token, DealID: dealID})
		require.NoError(t, err)
		assert.Equal(t, "removed", removed.Result)

		again, err := s.dealDelete.Execute(ctx, &dealdelete.Input{SessionToken: token, DealID: dealID})
		require.NoError(t, err)
		assert.Equal(t, "not_found", again.Result)

		_, err = s.dealDelete.Execute(ctx, &dealdelete.Input{SessionToken: token, DealID: dealID, FailIfMissing: true})
		assert.True(t, errors.HasCode(err, errors.ErrCodeDealNotFound))
	})

	t.Run("session-close", func(t *testing.T) {
		out, err := s.sessionClose.Execute(ctx, &sessionclose.Input{SessionToken: token})
		require.NoError(t, err)
		assert.True(t, out.Success)
		assert.Equal(t, "creator-1", out.UserID)

		_, err = s.dealList.Execute(ctx, &deallist.Input{SessionToken: token})
		assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthenticated))
	})
}

// ==========================
// Persistence and isolation
// ==========================

func TestDealsSurviveRegistryRestart(t *testing.T) {
	s := createTestStack(t)
	ctx := context.Background()
	token := s.signIn(t, "creator-2")

	_, err := s.dealCreate.Execute(ctx, &dealcreate.Input{
		SessionToken: token, Deal: models.DealDraft{BrandName: "Wave"},
	})
	require.NoError(t, err)

	// a fresh registry over the same redis sees the stored collection
	fresh := ledger.NewRegistry(storage.NewRedisStore(s.client), "fluiq")
	l, err := fresh.For(ctx, "creator-2")
	require.NoError(t, err)
	require.Len(t, l.List(), 1)
	assert.Equal(t, "Wave", l.List()[0].BrandName)
	assert.True(t, s.redis.Exists(ledger.KeyFor("fluiq", "creator-2")))
}

func TestUsersDoNotSeeEachOthersDeals(t *testing.T) {
	s := createTestStack(t)
	ctx := context.Background()
	alice := s.signIn(t, "alice")
	bob := s.signIn(t, "bob")

	_, err := s.dealCreate.Execute(ctx, &dealcreate.Input{SessionToken: alice, Deal: models.DealDraft{BrandName: "MTN"}})
	require.NoError(t, err)

	out, err := s.dealList.Execute(ctx, &deallist.Input{SessionToken: bob})
	require.NoError(t, err)
	assert.Empty(t, out.Deals)
	assert.Equal(t, 0, out.Stats.Total)
}

// A session that lapses without signing out leaves nothing behind: the next
// session reads whatever another replica wrote in the meantime.
func TestExpiredSessionLeavesNoCachedLedger(t *testing.T) {
	s := createTestStack(t)
	ctx := context.Background()
	token := s.signIn(t, "creator-3")

	_, err := s.dealCreate.Execute(ctx, &dealcreate.Input{SessionToken: token, Deal: models.DealDraft{BrandName: "Orange"}})
	require.NoError(t, err)

	s.redis.FastForward(2 * time.Hour)
	_, err = s.dealList.Execute(ctx, &deallist.Input{SessionToken: token})
	require.True(t, errors.HasCode(err, errors.ErrCodeUnauthenticated))

	replica := ledger.NewRegistry(storage.NewRedisStore(s.client), "fluiq")
	require.NoError(t, replica.Do(ctx, "creator-3", func(l *ledger.Ledger) error {
		_, err := l.Add(ctx, models.DealDraft{BrandName: "Wave"})
		return err
	}))

	out, err := s.dealList.Execute(ctx, &deallist.Input{SessionToken: s.signIn(t, "creator-3")})
	require.NoError(t, err)
	require.Len(t, out.Deals, 2)
	assert.Equal(t, "Orange", out.Deals[0].BrandName)
	assert.Equal(t, "Wave", out.Deals[1].BrandName)
}

func TestRedisOutageSurfacesStorageErrors(t *testing.T) {
	s := createTestStack(t)
	ctx := context.Background()
	token := s.signIn(t, "creator-4")

	s.redis.Close()

	_, err := s.dealList.Execute(ctx, &deallist.Input{SessionToken: token})
	require.Error(t, err)
}

// ==========================
// Broker connectivity
// ==========================

func TestZeebeTopology(t *testing.T) {
	address := os.Getenv("ZEEBE_ADDRESS")
	if address == "" {
		t.Skip("ZEEBE_ADDRESS not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := camunda.Connect(ctx, &camunda.ClientConfig{
		GatewayAddress:         address,
		UsePlaintextConnection: true,
		RetryConfig:            &camunda.RetryConfig{MaxRetries: 3, BaseDelay: time.Second, MaxDelay: 5 * time.Second},
	}, logger.NewTestLogger(t))
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.HealthCheck(ctx))
}

// ==========================
// Benchmark Tests
// ==========================

func BenchmarkHandler_GenerateCaption(b *testing.B) {
	content, _ := corpus.Load(config.CorpusConfig{})
	engine, _ := captions.NewEngine(content.Captions)
	gate := auth.NewGate(auth.ResolverFunc(func(ctx context.Context, token string) (models.Identity, error) {
		return models.Identity{UserID: "bench"}, nil
	}))

	handler, _ := generatecaption.NewHandler(generatecaption.HandlerOptions{
		Dependencies: generatecaption.ServiceDependencies{Gate: gate, Engine: engine},
		Logger:       logger.NewNoOpLogger(),
	})
	input := &generatecaption.Input{SessionToken: "bench", Niche: "food", City: "dakar", Tone: models.ToneFun}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}

func BenchmarkHandler_DealCreate(b *testing.B) {
	gate := auth.NewGate(auth.ResolverFunc(func(ctx context.Context, token string) (models.Identity, error) {
		return models.Identity{UserID: "bench"}, nil
	}))
	handler, _ := dealcreate.NewHandler(dealcreate.HandlerOptions{
		Dependencies: dealcreate.ServiceDependencies{
			Gate:          gate,
			Registry:      ledger.NewRegistry(storage.NewMemoryStore(), "bench"),
			Observability: observability.Noop(),
		},
		Logger: logger.NewNoOpLogger(),
	})
	input := &dealcreate.Input{SessionToken: "bench", Deal: models.DealDraft{BrandName: "Bench"}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}
