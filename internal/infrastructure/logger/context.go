package logger

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is a type for context keys used by the logger package
type contextKey string

const (
	// LoggerKey is the context key for the logger
	LoggerKey contextKey = "logger"
	// CycleIDKey is the context key for the reconciliation cycle ID
	CycleIDKey contextKey = "cycle_id"
	// OrderNameKey is the context key for the order being mirrored
	OrderNameKey contextKey = "order_name"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context, returns a no-op logger if
// not found
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithCycleID tags the context and logger with the reconciliation cycle ID
// so every log line of one cycle can be correlated
func WithCycleID(ctx context.Context, logger *zap.Logger, cycleID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, CycleIDKey, cycleID)
	enrichedLogger := logger.With(zap.String("cycle_id", cycleID))
	return WithContext(ctx, enrichedLogger), enrichedLogger
}

// WithOrderName tags the context and logger with the order currently being
// mirrored to the ERP
func WithOrderName(ctx context.Context, logger *zap.Logger, orderName string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, OrderNameKey, orderName)
	enrichedLogger := logger.With(zap.String("order_name", orderName))
	return WithContext(ctx, enrichedLogger), enrichedLogger
}

// GetCycleID retrieves the reconciliation cycle ID from context
func GetCycleID(ctx context.Context) string {
	if cycleID, ok := ctx.Value(CycleIDKey).(string); ok {
		return cycleID
	}
	return ""
}

// GetOrderName retrieves the order name from context
func GetOrderName(ctx context.Context) string {
	if orderName, ok := ctx.Value(OrderNameKey).(string); ok {
		return orderName
	}
	return ""
}
