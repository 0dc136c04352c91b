package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/pawmatch/pawmatch/pkg/app"
	"github.com/pawmatch/pawmatch/pkg/cache"
	"github.com/pawmatch/pawmatch/pkg/config"
	"github.com/pawmatch/pawmatch/pkg/database"
	"github.com/pawmatch/pawmatch/pkg/events"
	"github.com/pawmatch/pawmatch/pkg/logger"
	"github.com/pawmatch/pawmatch/pkg/telemetry"
	"github.com/pawmatch/pawmatch/pkg/workflows"
	matchsvcs "github.com/pawmatch/pawmatch/services/match/application/services"
	swipeEvents "github.com/pawmatch/pawmatch/services/swipe/domain/events"
	syncsvcs "github.com/pawmatch/pawmatch/services/sync/application/services"
	syncworkflows "github.com/pawmatch/pawmatch/services/sync/application/workflows"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		log.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
		Metrics:  metrics,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	syncServices := syncsvcs.New(appConfig)

	retryCtx, cancelRetry := context.WithCancel(ctx)
	if cfg.TemporalHostPort != "" {
		stop, err := startTemporalRetry(retryCtx, cfg, log, syncServices)
		if err != nil {
			log.Error("failed to start temporal retry worker", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer stop()
	} else {
		// No Temporal server configured; a plain ticker drains the queue.
		go runFlushTicker(retryCtx, cfg, appConfig, syncServices)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancelRetry()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	matchServices := matchsvcs.New(a)

	errCh, err := a.EventBus.Subscribe(ctx, swipeEvents.TopicSwipeRecorded, matchServices.Match.HandleSwipeRecorded())
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error",
				"topic", swipeEvents.TopicSwipeRecorded,
				"error", err,
			)
		}
	}()

	a.Logger.Info("event subscribers registered", "topics", []string{swipeEvents.TopicSwipeRecorded})
	return nil
}

// startTemporalRetry runs the push-retry cron workflow on a Temporal worker.
// Returns a stop function for shutdown.
func startTemporalRetry(ctx context.Context, cfg *config.Config, log logger.Logger, svcs *syncsvcs.Services) (func(), error) {
	temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
	if err != nil {
		return nil, err
	}

	w := worker.New(temporalClient.Client, syncworkflows.PushRetryTaskQueue, worker.Options{})
	w.RegisterWorkflow(syncworkflows.PushRetryWorkflow)
	w.RegisterActivity(&syncworkflows.FlushActivities{Sync: svcs.Sync})

	if err := w.Start(); err != nil {
		temporalClient.Close()
		return nil, err
	}

	_, err = temporalClient.Client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:           syncworkflows.PushRetryWorkflowID,
		TaskQueue:    syncworkflows.PushRetryTaskQueue,
		CronSchedule: "@every 30s",
	}, syncworkflows.PushRetryWorkflow)
	if err != nil {
		log.Warn("failed to schedule push retry workflow (may already be running)", "error", err)
	}

	log.Info("temporal retry worker started", "task_queue", syncworkflows.PushRetryTaskQueue)
	return func() {
		w.Stop()
		temporalClient.Close()
	}, nil
}

// runFlushTicker drains the pending push queue on a fixed interval until ctx
// is cancelled. Fallback for deployments without Temporal.
func runFlushTicker(ctx context.Context, cfg *config.Config, a *app.Application, svcs *syncsvcs.Services) {
	interval := time.Duration(cfg.SyncFlushIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.Logger.Info("pending flush ticker shutting down")
			return
		case <-ticker.C:
			flushed, err := svcs.Sync.FlushPending(ctx)
			if err != nil {
				a.Logger.ErrorContext(ctx, "pending flush failed", "error", err)
				continue
			}
			if flushed > 0 {
				a.Logger.InfoContext(ctx, "replayed parked swipes", "count", flushed)
			}
		}
	}
}
