// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Context key types for storing values in context
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// SessionIDKey is the context key for the discovery session ID
	SessionIDKey contextKey = "session_id"
	// AgentIDKey is the context key for the calling shopping agent ID
	AgentIDKey contextKey = "agent_id"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContext returns a logger with context values extracted.
// Supports request_id, session_id, and agent_id from context.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	newLogger := l

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		newLogger = &Logger{Logger: newLogger.With(slog.String("request_id", requestID))}
	}

	if sessionID, ok := ctx.Value(SessionIDKey).(string); ok && sessionID != "" {
		newLogger = newLogger.WithSessionID(sessionID)
	}

	if agentID, ok := ctx.Value(AgentIDKey).(string); ok && agentID != "" {
		newLogger = &Logger{Logger: newLogger.With(slog.String("agent_id", agentID))}
	}

	return newLogger
}

// WithSessionID returns a logger with the discovery session ID attached.
func (l *Logger) WithSessionID(sessionID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("session_id", sessionID)),
	}
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// StageFallback logs that a pipeline stage recovered through its local fallback.
func (l *Logger) StageFallback(stage, sessionID, reason string) {
	l.Warn("stage_fallback",
		slog.String("stage", stage),
		slog.String("session_id", sessionID),
		slog.String("reason", reason),
	)
}

// StageTransition logs a pipeline state transition.
func (l *Logger) StageTransition(sessionID, from, to string) {
	l.Debug("stage_transition",
		slog.String("session_id", sessionID),
		slog.String("from", from),
		slog.String("to", to),
	)
}

// CatalogError logs catalog source failures that were absorbed locally.
func (l *Logger) CatalogError(operation string, err error) {
	l.Warn("catalog_error",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// RateLimitExceeded logs rate limit events
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
