package logging

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

type contextKey int

const (
	loggerKey contextKey = iota
	sessionKey
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

// HasLogger reports whether ctx carries a logger of its own.
func HasLogger(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	logger, ok := ctx.Value(loggerKey).(*zerolog.Logger)
	return ok && logger != nil
}

// Ctx is a shorter alias for FromContext.
func Ctx(ctx context.Context) *zerolog.Logger {
	return FromContext(ctx)
}

// WithSession tags the context and its logger with a reconciliation session ID.
func WithSession(ctx context.Context, sessionID string) context.Context {
	ctx = context.WithValue(ctx, sessionKey, sessionID)
	return WithField(ctx, "session_id", sessionID)
}

// Session extracts the reconciliation session ID from context.
func Session(ctx context.Context) string {
	if id, ok := ctx.Value(sessionKey).(string); ok {
		return id
	}
	return ""
}

// WithFields adds structured fields to the logger in the context.
func WithFields(ctx context.Context, fields map[string]any) context.Context {
	logCtx := FromContext(ctx).With()
	for key, value := range fields {
		logCtx = addField(logCtx, key, value)
	}
	logger := logCtx.Logger()
	return WithLogger(ctx, &logger)
}

// WithField adds a single field to the logger in the context.
func WithField(ctx context.Context, key string, value any) context.Context {
	logger := addField(FromContext(ctx).With(), key, value).Logger()
	return WithLogger(ctx, &logger)
}

// WithComparator adds comparator context to the logger.
func WithComparator(ctx context.Context, name string, category fmt.Stringer) context.Context {
	return WithFields(ctx, map[string]any{
		"comparator": name,
		"category":   category.String(),
	})
}

// WithObject adds the label of the object being compared.
func WithObject(ctx context.Context, label string) context.Context {
	return WithField(ctx, "object", label)
}

// WithOperation adds operation context to the logger.
func WithOperation(ctx context.Context, operation string) context.Context {
	return WithField(ctx, "operation", operation)
}
