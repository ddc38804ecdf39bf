package observability

import (
	"context"
	"log/slog"
)

// RepoLogger provides structured logging for repository operations.
type RepoLogger struct {
	tableName string
	logger    *slog.Logger
}

// NewRepoLogger creates a new RepoLogger for the given table.
func NewRepoLogger(logger *slog.Logger, tableName string) *RepoLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &RepoLogger{tableName: tableName, logger: logger}
}

// LogWrite logs a repository write.
func (l *RepoLogger) LogWrite(ctx context.Context, operation string, rows int) {
	l.logger.InfoContext(ctx, "repository write",
		slog.String("table", l.tableName),
		slog.String("operation", operation),
		slog.Int("rows", rows),
	)
}

// LogError logs a repository error.
func (l *RepoLogger) LogError(ctx context.Context, err error, operation string) {
	l.logger.ErrorContext(ctx, "repository error",
		slog.String("table", l.tableName),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// WSLogger provides structured logging for WebSocket operations.
type WSLogger struct {
	hubName string
	logger  *slog.Logger
}

// NewWSLogger creates a new WSLogger for the given hub.
func NewWSLogger(logger *slog.Logger, hubName string) *WSLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &WSLogger{hubName: hubName, logger: logger}
}

// LogConnect logs a WebSocket connection event.
func (l *WSLogger) LogConnect(ctx context.Context, clientID string, clients int) {
	l.logger.InfoContext(ctx, "websocket connected",
		slog.String("hub", l.hubName),
		slog.String("client_id", clientID),
		slog.Int("clients", clients),
	)
}

// LogDisconnect logs a WebSocket disconnection event.
func (l *WSLogger) LogDisconnect(ctx context.Context, clientID, reason string) {
	l.logger.InfoContext(ctx, "websocket disconnected",
		slog.String("hub", l.hubName),
		slog.String("client_id", clientID),
		slog.String("reason", reason),
	)
}

// LogError logs a WebSocket error event.
func (l *WSLogger) LogError(ctx context.Context, clientID string, err error, eventType string) {
	l.logger.ErrorContext(ctx, "websocket error",
		slog.String("hub", l.hubName),
		slog.String("client_id", clientID),
		slog.String("event_type", eventType),
		slog.String("error", err.Error()),
	)
}
