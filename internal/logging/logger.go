// =============================================================================
// Sales Computation - Logging
// =============================================================================
//
// Diagnostics (skipped records, detected shapes, file locations) are written
// as leveled key/value records on stderr. Stdout is reserved for the results
// block, so nothing in this package ever writes there.
//
// =============================================================================

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Logger is the logging interface used across the application.
// Arguments after msg are alternating keys and values.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ParseLevel converts a configured level name to a slog level.
//
// Valid values: "debug", "info", "warn", "error" (case-insensitive).
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// slogLogger adapts *slog.Logger to Logger.
type slogLogger struct {
	internal *slog.Logger
}

// New creates a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &slogLogger{internal: slog.New(handler)}
}

// NewRun creates a logger like New whose records all carry a fresh run_id,
// so the diagnostics of one invocation can be told apart in a shared log.
func NewRun(w io.Writer, level slog.Level) Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &slogLogger{internal: slog.New(handler).With("run_id", uuid.NewString())}
}

// Discard returns a logger that drops every record.
func Discard() Logger {
	return New(io.Discard, slog.LevelError+1)
}

func (l *slogLogger) Debug(msg string, args ...any) { l.internal.Debug(msg, args...) }

func (l *slogLogger) Info(msg string, args ...any) { l.internal.Info(msg, args...) }

func (l *slogLogger) Warn(msg string, args ...any) { l.internal.Warn(msg, args...) }

func (l *slogLogger) Error(msg string, args ...any) { l.internal.Error(msg, args...) }
