package app

import (
	"github.com/ghuser/crmgraph/pkg/database"
	"github.com/ghuser/crmgraph/pkg/events"
	"github.com/ghuser/crmgraph/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Constructed once at process start and passed into each service's route
// registration — no package-level singletons.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "order created", "order_id", id)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Db       *database.Database
	Logger   logger.Logger
	EventBus *events.EventBus
}
