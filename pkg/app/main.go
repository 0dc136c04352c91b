package app

import (
	"github.com/gorilla/sessions"

	"github.com/pawmatch/pawmatch/pkg/cache"
	"github.com/pawmatch/pawmatch/pkg/config"
	"github.com/pawmatch/pawmatch/pkg/database"
	"github.com/pawmatch/pawmatch/pkg/events"
	"github.com/pawmatch/pawmatch/pkg/logger"
	"github.com/pawmatch/pawmatch/pkg/telemetry"
	"github.com/pawmatch/pawmatch/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service *Routes calls during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler â€” use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "recording swipe", "name_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config         *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	Metrics        *telemetry.Metrics
	TemporalClient *workflows.TemporalClient
	SessionStore   sessions.Store // Redis-backed session store; nil in worker process
}
