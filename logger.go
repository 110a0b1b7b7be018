package lexgo

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with lexgo-specific context.
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

// WithQuery adds a query id field to the logger.
func (l *Logger) WithQuery(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("query", id),
	}
}

// WithAlgorithm adds an algorithm field to the logger.
func (l *Logger) WithAlgorithm(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("algorithm", name),
	}
}

// LogLoad logs the load of one artifact.
func (l *Logger) LogLoad(ctx context.Context, name string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "artifact load failed",
			"artifact", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "artifact loaded",
			"artifact", name,
			"bytes", size,
		)
	}
}

// LogEvaluate logs one query evaluation.
func (l *Logger) LogEvaluate(ctx context.Context, queryID string, k, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "evaluation failed",
			"query", queryID,
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "evaluation completed",
			"query", queryID,
			"k", k,
			"results", results,
		)
	}
}

// LogRun logs a completed batch run.
func (l *Logger) LogRun(ctx context.Context, queries int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run failed",
			"queries", queries,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "run completed",
			"queries", queries,
			"elapsed", elapsed,
		)
	}
}
