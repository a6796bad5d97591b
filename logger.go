package dataref

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with dataref-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithName adds an entry-name field to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("name", name),
	}
}

// LogOffload logs the outcome of one offloaded entry.
func (l *Logger) LogOffload(ctx context.Context, name string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "offload failed",
			"name", name,
			"size", size,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "offload completed",
			"name", name,
			"size", size,
		)
	}
}

// LogFetch logs the outcome of a URL fetch.
func (l *Logger) LogFetch(ctx context.Context, url string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "fetch failed",
			"url", url,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "fetch completed",
			"url", url,
			"size", size,
		)
	}
}
