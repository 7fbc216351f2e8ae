package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	paywallledger "paywall/contexts/finance-core/paywall-ledger"
	postgresadapter "paywall/contexts/finance-core/paywall-ledger/adapters/postgres"
	workerapp "paywall/contexts/finance-core/paywall-ledger/application/workers"
	"paywall/contexts/finance-core/paywall-ledger/ports"
	"paywall/internal/platform/config"
	"paywall/internal/platform/db"
	"paywall/internal/platform/httpserver"
	"paywall/internal/platform/messaging"
	"paywall/internal/platform/metrics"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const shutdownTimeout = 10 * time.Second

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	relay    *relayLoop
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres *db.Postgres
	relay    *relayLoop
	audit    *workerapp.EventAuditConsumer
	logger   *slog.Logger
}

// relayLoop drives an OutboxRelay on a fixed interval.
type relayLoop struct {
	relay        workerapp.OutboxRelay
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg).With("service", cfg.ServiceName, "process", "api")
	recorder := metrics.NewRecorder()

	options := httpserver.Options{EnableSwagger: cfg.EnableSwagger}
	if cfg.EnableMetrics {
		options.MetricsHandler = recorder.Handler()
	}

	if cfg.LedgerStore == config.LedgerStoreMemory {
		module := paywallledger.NewInMemoryModule(logger, recorder)
		kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
		if err != nil {
			return nil, err
		}
		logger.Warn("using in-memory ledger store",
			"event", "bootstrap_memory_ledger",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"kafka_brokers", kafka.Brokers(),
		)
		return &APIApp{
			server: httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort), options),
			relay:  newRelayLoop(cfg, module.Store, kafka, module.Store, recorder, logger),
			logger: logger,
		}, nil
	}

	pg, repo, err := connectLedger(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	module := paywallledger.NewModule(paywallledger.Dependencies{
		Ledger:      repo,
		Reader:      repo,
		Clock:       postgresadapter.SystemClock{},
		IDGenerator: postgresadapter.UUIDGenerator{},
		Metrics:     recorder,
		Logger:      logger,
	})

	return &APIApp{
		server:   httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort), options),
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker(ctx context.Context) (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg).With("service", cfg.ServiceName, "process", "worker")
	if cfg.LedgerStore != config.LedgerStorePostgres {
		return nil, errors.New("worker requires LEDGER_STORE=postgres; the memory store relays inside the api process")
	}

	pg, repo, err := connectLedger(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	logger.Info("event bus ready",
		"event", "bootstrap_event_bus_ready",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"kafka_brokers", kafka.Brokers(),
		"topic", cfg.PaywallEventsTopic,
	)

	app := &WorkerApp{
		postgres: pg,
		relay:    newRelayLoop(cfg, repo, kafka, postgresadapter.SystemClock{}, metrics.NewRecorder(), logger),
		logger:   logger,
	}
	if cfg.EnableEventAuditConsumer {
		app.audit = &workerapp.EventAuditConsumer{
			Subscriber: kafka,
			Topic:      cfg.PaywallEventsTopic,
			Logger:     logger,
		}
	}
	return app, nil
}

func (a *APIApp) Run(ctx context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)

	errCh := make(chan error, 2)
	go func() { errCh <- a.server.Start() }()
	if a.relay != nil {
		go func() { errCh <- a.relay.run(ctx) }()
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.server.Shutdown(shutdownCtx)
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if w.audit != nil {
		if err := w.audit.Start(ctx); err != nil {
			return err
		}
	}
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.relay.pollInterval.String(),
		"audit_consumer", w.audit != nil,
	)
	return w.relay.run(ctx)
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func newRelayLoop(
	cfg config.Config,
	outbox ports.OutboxRepository,
	publisher ports.EventPublisher,
	clock ports.Clock,
	recorder ports.Metrics,
	logger *slog.Logger,
) *relayLoop {
	return &relayLoop{
		relay: workerapp.OutboxRelay{
			Outbox:    outbox,
			Publisher: publisher,
			Clock:     clock,
			Metrics:   recorder,
			Topic:     cfg.PaywallEventsTopic,
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		pollInterval: cfg.OutboxPollInterval,
		logger:       logger,
	}
}

func (l *relayLoop) run(ctx context.Context) error {
	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		if _, err := l.relay.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func connectLedger(ctx context.Context, cfg config.Config, logger *slog.Logger) (*db.Postgres, *postgresadapter.Repository, error) {
	pg, err := db.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	repo := postgresadapter.NewRepository(pg.DB, logger)
	if err := repo.Migrate(ctx); err != nil {
		_ = pg.Close()
		return nil, nil, err
	}
	return pg, repo, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
