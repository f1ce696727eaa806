package docgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with docgo-specific context.
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

// WithID adds an id field to the logger (useful for tagging operations).
func (l *Logger) WithID(id int64) *Logger {
	return &Logger{
		Logger: l.Logger.With("id", id),
	}
}

// WithPath adds the log file path to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(ctx context.Context, id int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "insert failed",
			"id", id,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "insert completed",
			"id", id,
		)
	}
}

// LogFind logs a find operation.
func (l *Logger) LogFind(ctx context.Context, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "find failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "find completed",
			"results", results,
		)
	}
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(ctx context.Context, deleted int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "delete failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "delete completed",
			"deleted", deleted,
		)
	}
}

// LogUpdate logs an update operation.
func (l *Logger) LogUpdate(ctx context.Context, id int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "update failed",
			"id", id,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "update completed",
			"id", id,
		)
	}
}

// LogBackup logs a backup operation.
func (l *Logger) LogBackup(ctx context.Context, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "backup failed",
			"bytes", bytes,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "backup completed",
			"bytes", bytes,
		)
	}
}

// LogRestore logs a restore operation.
func (l *Logger) LogRestore(ctx context.Context, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "restore failed",
			"bytes", bytes,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "restore completed",
			"bytes", bytes,
		)
	}
}
