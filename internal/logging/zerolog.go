package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts zerolog to Logger. Key-value args go through
// zerolog's Fields, so slog.LogValuer values are resolved first.
type ZerologLogger struct {
	l zerolog.Logger
}

func NewZerologLogger(w io.Writer, format string, level slog.Level) (*ZerologLogger, error) {
	out := w
	if strings.ToLower(format) != FormatJSON {
		out = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	l := zerolog.New(out).Level(zerologLevel(level)).With().Timestamp().Logger()
	return &ZerologLogger{l: l}, nil
}

func zerologLevel(level slog.Level) zerolog.Level {
	switch {
	case level <= slog.LevelDebug:
		return zerolog.DebugLevel
	case level <= slog.LevelInfo:
		return zerolog.InfoLevel
	case level <= slog.LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

func (z *ZerologLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.l.Debug().Ctx(ctx).Fields(fields(args)).Msg(msg)
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	z.l.Info().Ctx(ctx).Fields(fields(args)).Msg(msg)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.l.Warn().Ctx(ctx).Fields(fields(args)).Msg(msg)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	z.l.Error().Ctx(ctx).Fields(fields(args)).Msg(msg)
}

func (z *ZerologLogger) With(args ...any) Logger {
	return &ZerologLogger{l: z.l.With().Fields(fields(args)).Logger()}
}

// fields turns slog-style key-value pairs into a zerolog field map.
// A dangling key is kept under "!BADKEY", like slog does.
func fields(args []any) map[string]any {
	m := make(map[string]any, len(args)/2)
	for i := 0; i < len(args); i++ {
		if attr, ok := args[i].(slog.Attr); ok {
			m[attr.Key] = valueOf(attr.Value.Resolve())
			continue
		}
		key, ok := args[i].(string)
		if !ok || i+1 >= len(args) {
			m["!BADKEY"] = args[i]
			continue
		}
		m[key] = resolve(args[i+1])
		i++
	}
	return m
}

func resolve(v any) any {
	if lv, ok := v.(slog.LogValuer); ok {
		return valueOf(slog.AnyValue(lv).Resolve())
	}
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return v
}

// valueOf unwraps a resolved slog.Value. Groups become nested maps so
// zerolog encodes their attrs instead of opaque slog.Value structs.
func valueOf(v slog.Value) any {
	switch v.Kind() {
	case slog.KindGroup:
		attrs := v.Group()
		m := make(map[string]any, len(attrs))
		for _, a := range attrs {
			m[a.Key] = valueOf(a.Value.Resolve())
		}
		return m
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
	}
	return v.Any()
}
