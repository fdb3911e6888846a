// Package log provides structured logging for machine-learning workflow
// operations.
//
// The package defines a minimal, slog-compatible Logger interface so the
// backend can be swapped; the default implementation is backed by zerolog.
// Workflow code logs fit/predict/search progress with the ML attribute
// keys defined in attributes.go:
//
//	logger := log.GetLogger().With(log.ModelNameKey, "OneVsRestClassifier")
//	logger.Info("training started",
//	    log.OperationKey, "fit",
//	    log.SamplesKey, 1000,
//	    log.FeaturesKey, 5,
//	)
package log

import (
	"context"
)

// Logger is a structured logging interface with slog-compatible levels.
// Fields are alternating key/value pairs.
type Logger interface {
	// Debug logs detailed diagnostic information.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs potentially problematic situations that do not stop the
	// workflow.
	Warn(msg string, fields ...any)

	// Error logs error conditions. If the first field is an error value it
	// is recorded under the "error" key.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated on
	// every subsequent message.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, value-compatible with slog.Level.
type Level int

// Standard logging levels.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
