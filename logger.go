package streamkm

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with streamkm-specific context.
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

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithAlpha adds an alpha (weighting) field to the logger.
func (l *Logger) WithAlpha(alpha float64) *Logger {
	return &Logger{
		Logger: l.Logger.With("alpha", alpha),
	}
}

// LogBatchUpdate logs one batch update.
func (l *Logger) LogBatchUpdate(ctx context.Context, batchSize, rounds int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "batch update failed",
			"batch_size", batchSize,
			"rounds", rounds,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "batch update completed",
			"batch_size", batchSize,
			"rounds", rounds,
		)
	}
}

// LogCenter logs the final center of one cluster after a batch update.
// Informational only; emitted at debug level per cluster.
func (l *Logger) LogCenter(ctx context.Context, cluster int, center []float64, count int64) {
	l.DebugContext(ctx, "cluster center",
		"cluster", cluster,
		"center", center,
		"count", count,
	)
}

// LogPredict logs a predict operation.
func (l *Logger) LogPredict(ctx context.Context, cluster int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "predict failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "predict completed",
			"cluster", cluster,
		)
	}
}
