// Package logging defines the structured logger used across the client and
// its two backends: log/slog (text or JSON) and zerolog.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are key-value pairs:
//
//	log.Info(ctx, "favorite added", "username", u, "code", code)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}

const (
	BackendSlog    = "slog"
	BackendZerolog = "zerolog"

	FormatText = "text"
	FormatJSON = "json"
)

// New builds a Logger for the given backend ("slog" or "zerolog"), output
// format ("text" or "json") and level ("debug", "info", "warn", "error").
func New(backend, format, level string, w io.Writer) (Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(backend) {
	case "", BackendSlog:
		opts := &slog.HandlerOptions{Level: lvl}
		switch strings.ToLower(format) {
		case "", FormatText:
			return NewSlogLogger(slog.New(slog.NewTextHandler(w, opts))), nil
		case FormatJSON:
			return NewSlogLogger(slog.New(slog.NewJSONHandler(w, opts))), nil
		default:
			return nil, fmt.Errorf("unknown log format %q", format)
		}
	case BackendZerolog:
		return NewZerologLogger(w, format, lvl)
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return lvl, fmt.Errorf("unknown log level %q: %w", s, err)
	}
	return lvl, nil
}
