// Package app assembles the triage pipeline from configuration.
package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/agent"
	"github.com/spec-kit/ticket-triage/internal/api/http/handlers"
	"github.com/spec-kit/ticket-triage/internal/config"
	"github.com/spec-kit/ticket-triage/internal/events"
	"github.com/spec-kit/ticket-triage/internal/observability"
	"github.com/spec-kit/ticket-triage/internal/persistence"
	"github.com/spec-kit/ticket-triage/internal/repository"
	"github.com/spec-kit/ticket-triage/internal/service"
	"github.com/spec-kit/ticket-triage/internal/worker"
)

// App holds the long-lived resources shared by the CLI and the API server.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.Metrics
	Triage  *service.TriageService

	postgres *persistence.Postgres
	redis    *persistence.Redis
	worker   *worker.NotificationWorker
}

// New connects to storage, applies migrations when enabled and wires the
// classifier, cache and event subscribers. Close releases everything.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	metrics := observability.NewMetrics()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			pg.Close()
			return nil, err
		}
	}

	gemini, err := agent.NewGeminiAgent(ctx, cfg.Oracle, logger, metrics)
	if err != nil {
		pg.Close()
		return nil, err
	}
	var classifier agent.Classifier = gemini

	rdb := persistence.NewRedis(ctx, cfg.Redis, logger)
	if rdb.Enabled() {
		classifier = agent.NewCachedClassifier(gemini, rdb.Client, cfg.Redis.CacheTTL(), logger, metrics)
	}

	dispatcher := events.NewInMemoryDispatcher()
	w := worker.StartNotificationWorker(dispatcher, cfg.Kafka, logger)

	pool := pg.PoolHandle()
	triage := service.NewTriageService(service.TriageDependencies{
		Customers:  service.NewCustomerService(repository.NewCustomerRepository(pool), logger),
		TicketRepo: repository.NewTicketRepository(pool),
		Classifier: classifier,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})

	return &App{
		Config:   cfg,
		Logger:   logger,
		Metrics:  metrics,
		Triage:   triage,
		postgres: pg,
		redis:    rdb,
		worker:   w,
	}, nil
}

// Dependencies lists what readiness probes check. Redis appears only when
// the cache is enabled.
func (a *App) Dependencies() map[string]handlers.Pinger {
	deps := map[string]handlers.Pinger{"postgres": a.postgres}
	if a.redis.Enabled() {
		deps["redis"] = a.redis
	}
	return deps
}

// Close flushes publishers and closes connections.
func (a *App) Close() {
	a.worker.Close()
	a.redis.Close()
	a.postgres.Close()
}
