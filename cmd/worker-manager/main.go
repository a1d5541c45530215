package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fluiq-workers/internal/captions"
	"fluiq-workers/internal/common/auth"
	"fluiq-workers/internal/common/aws"
	"fluiq-workers/internal/common/camunda"
	"fluiq-workers/internal/common/config"
	"fluiq-workers/internal/common/database"
	"fluiq-workers/internal/common/logger"
	"fluiq-workers/internal/common/metrics"
	"fluiq-workers/internal/common/observability"
	"fluiq-workers/internal/common/storage"
	"fluiq-workers/internal/corpus"
	"fluiq-workers/internal/ledger"
	"fluiq-workers/internal/notify"
	"fluiq-workers/internal/pitch"

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

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// --- Load Configuration ---
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// --- Initialize Logger ---
	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	log.Info("Starting worker manager", map[string]interface{}{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs := observability.New(cfg.App.Name, log)

	// --- Init Zeebe with retry ---
	zeebe, err := camunda.Connect(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
	}, log)
	if err != nil {
		zapLog.Fatal("Failed to create Zeebe client after retries", zap.Error(err))
	}
	defer zeebe.Close()
	log.Info("Zeebe client connected", map[string]interface{}{"address": cfg.Camunda.BrokerAddress})

	// --- Init Redis with retry ---
	rc, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		zapLog.Fatal("Invalid redis configuration", zap.Error(err))
	}
	err = camunda.RetryWithBackoff(ctx, camunda.DefaultRetryConfig, log, "Redis connection", func() error {
		return rc.Ping(ctx)
	})
	if err != nil {
		zapLog.Fatal("Failed to connect to Redis after retries", zap.Error(err))
	}
	defer rc.Close()
	log.Info("Redis connected", map[string]interface{}{"address": cfg.Database.Redis.Address})

	// --- Init PostgreSQL with retry (postgres backend only) ---
	var pc *database.PostgresClient
	if cfg.Storage.Backend == config.StorageBackendPostgres {
		err = camunda.RetryWithBackoff(ctx, camunda.DefaultRetryConfig, log, "PostgreSQL connection", func() error {
			c, err := database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			if err := c.Ping(ctx); err != nil {
				_ = c.Close()
				return err
			}
			pc = c
			return nil
		})
		if err != nil {
			zapLog.Fatal("Failed to connect to PostgreSQL after retries", zap.Error(err))
		}
		defer pc.Close()
		log.Info("PostgreSQL connected", map[string]interface{}{"host": cfg.Database.Postgres.Host})
	}

	store, err := storage.New(ctx, cfg.Storage, rc, pc)
	if err != nil {
		zapLog.Fatal("Failed to initialize deal storage", zap.Error(err))
	}

	// --- Static corpora ---
	content, err := corpus.Load(cfg.Corpus)
	if err != nil {
		zapLog.Fatal("Failed to load corpora", zap.Error(err))
	}
	metrics.CorpusRecords.WithLabelValues(corpus.Captions).Set(float64(len(content.Captions)))
	metrics.CorpusRecords.WithLabelValues(corpus.Events).Set(float64(len(content.Events)))
	metrics.CorpusRecords.WithLabelValues(corpus.Templates).Set(float64(len(content.Templates)))

	engine, err := captions.NewEngine(content.Captions)
	if err != nil {
		zapLog.Fatal("Failed to build caption engine", zap.Error(err))
	}

	// --- Sessions ---
	sessions := auth.NewSessionStore(rc.GetClient(), cfg.Auth.Session.KeyPrefix, cfg.SessionTTL())
	sessionEvents := auth.NewNotifier(rc.GetClient(), cfg.Auth.Session.Channel, log)
	gate := auth.NewGate(sessions)

	registry := ledger.NewRegistry(store, cfg.Storage.KeyPrefix)

	// --- AWS integrations ---
	var exporter pitch.Exporter
	if cfg.Integrations.AWS.SES.Enabled {
		sesClient, err := aws.NewSESClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("Failed to create SES client", zap.Error(err))
		}
		exporter = pitch.NewSESExporter(sesClient, cfg.Integrations.AWS.SES.FromEmail)
	}

	var dealNotifier notify.Notifier = notify.Discard{}
	if cfg.Integrations.AWS.SNS.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("Failed to create SNS client", zap.Error(err))
		}
		dealNotifier = notify.NewSNSNotifier(snsClient, cfg.Integrations.AWS.SNS.TopicARN, log)
	}

	// --- Register Workers ---
	workers := camunda.NewWorkers(zeebe.GetClient(), log)

	register := func(taskType string, handler camunda.JobHandler, err error) {
		if err != nil {
			zapLog.Fatal("Failed to create handler", zap.String("taskType", taskType), zap.Error(err))
		}
		workers.StartWorker(taskType, config.GetWorkerConfig(cfg, taskType), handler)
	}

	{
		h, err := sessionopen.NewHandler(sessionopen.HandlerOptions{
			AppConfig:    cfg,
			Dependencies: sessionopen.ServiceDependencies{Sessions: sessions, Publisher: sessionEvents},
			Logger:       log,
		})
		register(sessionopen.TaskType, h, err)
	}
	{
		h, err := sessionclose.NewHandler(sessionclose.HandlerOptions{
			AppConfig:    cfg,
			Dependencies: sessionclose.ServiceDependencies{Sessions: sessions, Publisher: sessionEvents},
			Logger:       log,
		})
		register(sessionclose.TaskType, h, err)
	}
	{
		h, err := generatecaption.NewHandler(generatecaption.HandlerOptions{
			AppConfig:    cfg,
			Dependencies: generatecaption.ServiceDependencies{Gate: gate, Engine: engine},
			Logger:       log,
		})
		register(generatecaption.TaskType, h, err)
	}
	{
		h, err := listevents.NewHandler(listevents.HandlerOptions{
			AppConfig:    cfg,
			Dependencies: listevents.ServiceDependencies{Gate: gate, Events: content.Events},
			Logger:       log,
		})
		register(listevents.TaskType, h, err)
	}
	{
		h, err := listtemplates.NewHandler(listtemplates.HandlerOptions{
			AppConfig:    cfg,
			Dependencies: listtemplates.ServiceDependencies{Gate: gate, Templates: content.Templates},
			Logger:       log,
		})
		register(listtemplates.TaskType, h, err)
	}
	{
		h, err := exportpitchdeck.NewHandler(exportpitchdeck.HandlerOptions{
			AppConfig:    cfg,
			Dependencies: exportpitchdeck.ServiceDependencies{Gate: gate, Exporter: exporter},
			Logger:       log,
		})
		register(exportpitchdeck.TaskType, h, err)
	}
	{
		h, err := dealcreate.NewHandler(dealcreate.HandlerOptions{
			AppConfig:    cfg,
			Dependencies: dealcreate.ServiceDependencies{Gate: gate, Registry: registry, Observability: obs},
			Logger:       log,
		})
		register(dealcreate.TaskType, h, err)
	}
	{
		h, err := dealupdate.NewHandler(dealupdate.HandlerOptions{
			AppConfig: cfg,
			Dependencies: dealupdate.ServiceDependencies{
				Gate:          gate,
				Registry:      registry,
				Notifier:      dealNotifier,
				Observability: obs,
			},
			Logger: log,
		})
		register(dealupdate.TaskType, h, err)
	}
	{
		h, err := dealdelete.NewHandler(dealdelete.HandlerOptions{
			AppConfig:    cfg,
			Dependencies: dealdelete.ServiceDependencies{Gate: gate, Registry: registry, Observability: obs},
			Logger:       log,
		})
		register(dealdelete.TaskType, h, err)
	}
	{
		h, err := deallist.NewHandler(deallist.HandlerOptions{
			AppConfig:    cfg,
			Dependencies: deallist.ServiceDependencies{Gate: gate, Registry: registry},
			Logger:       log,
		})
		register(deallist.TaskType, h, err)
	}
	defer workers.Close()

	log.Info("Workers registered", map[string]interface{}{"taskTypes": workers.TaskTypes()})

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if err := zeebe.HealthCheck(checkCtx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "zeebe": err.Error()})
			return
		}
		if err := rc.Ping(checkCtx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "redis": err.Error()})
			return
		}
		writeStatus(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: cfg.Server.Address, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info("Health/Metrics server listening", map[string]interface{}{"address": cfg.Server.Address})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Health/Metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutdown signal received, stopping workers", nil)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Error stopping health server", map[string]interface{}{"error": err.Error()})
	}
	cancel()

	log.Info("Worker manager stopped", nil)
}

func writeStatus(w http.ResponseWriter, code int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
