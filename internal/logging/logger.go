// Package logging defines the structured-logging interface used across the
// client. Backends wrap log/slog (terminal) or zap (JSON).
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "events fetched", "page", page, "count", len(items))
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// New builds a Logger writing to w. format "json" selects the zap backend,
// anything else a slog text handler.
func New(w io.Writer, format, level string) Logger {
	if strings.EqualFold(format, "json") {
		return NewZapLogger(newZap(w, level))
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseSlogLevel(level)})
	return NewSlogLogger(slog.New(h))
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func parseSlogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
