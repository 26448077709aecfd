// Package observability provides structured logging for the client.
package observability

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// LogContextKey is a type for context keys used by the logging package.
type LogContextKey string

// CorrelationID keys the per-interaction correlation id in a context.
const CorrelationID LogContextKey = "correlation_id"

// LoggingConfig defines which types of automated logging are enabled.
type LoggingConfig struct {
	EnableStoreLogging bool
}

// Config holds the current logging configuration.
var Config = LoggingConfig{
	EnableStoreLogging: true,
}

// WithCorrelationID returns a new context with the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationID, id)
}

// ExtractCorrelationID retrieves the correlation ID from the context.
func ExtractCorrelationID(ctx context.Context) string {
	if id := ctx.Value(CorrelationID); id != nil {
		return id.(string)
	}
	return ""
}

// StoreLogger provides structured logging for remote store operations
// against one collection.
type StoreLogger struct {
	collection string
	logger     *Logger
}

// NewStoreLogger creates a new StoreLogger for the given collection.
func NewStoreLogger(collection string) *StoreLogger {
	return &StoreLogger{
		collection: collection,
		logger:     GlobalLogger,
	}
}

// LogInsert logs a remote insert operation.
func (l *StoreLogger) LogInsert(ctx context.Context, fields map[string]interface{}) {
	if !Config.EnableStoreLogging {
		return
	}
	attrs := []any{
		slog.String("collection", l.collection),
		slog.String("operation", "insert"),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.logger.InfoContext(ctx, "store insert", attrs...)
}

// LogQuery logs a remote query operation.
func (l *StoreLogger) LogQuery(ctx context.Context, fields map[string]interface{}) {
	if !Config.EnableStoreLogging {
		return
	}
	attrs := []any{
		slog.String("collection", l.collection),
		slog.String("operation", "query"),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.logger.InfoContext(ctx, "store query", attrs...)
}

// LogDelete logs a remote delete operation.
func (l *StoreLogger) LogDelete(ctx context.Context, fields map[string]interface{}) {
	if !Config.EnableStoreLogging {
		return
	}
	attrs := []any{
		slog.String("collection", l.collection),
		slog.String("operation", "delete"),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.logger.InfoContext(ctx, "store delete", attrs...)
}

// LogError logs a failed remote operation. Failures are never fatal to
// the client; they surface as inline indicators, so the log line is the
// durable trace.
func (l *StoreLogger) LogError(ctx context.Context, err error, operation string) {
	l.logger.ErrorContext(ctx, "store error",
		slog.String("collection", l.collection),
		slog.String("operation", operation),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
		slog.String("error", err.Error()),
	)
}
