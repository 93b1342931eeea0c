package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey int

const (
	// loggerKey is the context key for the logger.
	loggerKey contextKey = iota
	// modelKey is the context key for the model name.
	modelKey
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}

	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}

	return Default()
}

// Ctx returns a logger from the context or the default logger.
// This is a shorter alias for FromContext.
func Ctx(ctx context.Context) *zerolog.Logger {
	return FromContext(ctx)
}

// WithModel tags the context logger with the model currently being
// imported, so every event of one import run carries the model name.
func WithModel(ctx context.Context, model string) context.Context {
	ctx = context.WithValue(ctx, modelKey, model)

	logger := FromContext(ctx)
	newLogger := logger.With().Str("model", model).Logger()
	return WithLogger(ctx, &newLogger)
}

// Model extracts the model name from context.
func Model(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if name, ok := ctx.Value(modelKey).(string); ok {
		return name
	}
	return ""
}
