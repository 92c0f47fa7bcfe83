package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/pkg/database"
	"github.com/ghuser/stockroom/pkg/events"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/workflows"
	"github.com/ghuser/stockroom/services/inventory/application/state"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service route registrations during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "settling sale", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to reload inventory", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient
	SessionStore   sessions.Store  // Redis-backed state-id store; nil in worker process
	States         *state.Registry // per-client application state; nil in worker process
}
