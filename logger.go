package iscc

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/iscc/codec"
)

// Logger wraps slog.Logger with generator-specific context.
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

// WithKind adds a component kind field to the logger.
func (l *Logger) WithKind(kind codec.Kind) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind.String()),
	}
}

// WithOp adds an operation field to the logger.
func (l *Logger) WithOp(op string) *Logger {
	return &Logger{
		Logger: l.Logger.With("op", op),
	}
}

// LogCode logs the derivation of a single component code.
func (l *Logger) LogCode(op, code string, err error) {
	if err != nil {
		l.Error("code derivation failed",
			"op", op,
			"error", err,
		)
	} else {
		l.Debug("code derived",
			"op", op,
			"code", code,
		)
	}
}

// LogStream logs a streaming derivation (data or instance codes).
func (l *Logger) LogStream(op string, bytes uint64, pieces int, err error) {
	if err != nil {
		l.Error("stream derivation failed",
			"op", op,
			"bytes", bytes,
			"error", err,
		)
	} else {
		l.Debug("stream processed",
			"op", op,
			"bytes", bytes,
			"pieces", pieces,
		)
	}
}

// LogCompute logs a composite derivation over a whole document.
func (l *Logger) LogCompute(ctx context.Context, components int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "compute failed",
			"components", components,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "compute completed",
			"components", components,
		)
	}
}
