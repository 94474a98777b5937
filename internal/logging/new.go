package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rs/zerolog"
)

// Options selects and tunes a logging backend.
type Options struct {
	// Backend is "slog" or "zerolog".
	Backend string
	// Format is "text" or "json". zerolog "text" uses its console writer.
	Format string
	// Level is one of debug, info, warn, error.
	Level string
}

// New builds a Logger writing to w.
func New(w io.Writer, o Options) (Logger, error) {
	level, err := ParseLevel(o.Level)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(o.Backend) {
	case "", "slog":
		hopts := &slog.HandlerOptions{Level: level}
		if strings.EqualFold(o.Format, "json") {
			return NewSlogLogger(slog.New(slog.NewJSONHandler(w, hopts))), nil
		}
		return NewSlogLogger(slog.New(slog.NewTextHandler(w, hopts))), nil

	case "zerolog":
		out := w
		if !strings.EqualFold(o.Format, "json") {
			out = zerolog.ConsoleWriter{Out: w, NoColor: true}
		}
		zl := zerolog.New(out).Level(zerologLevel(level)).With().Timestamp().Logger()
		return NewZerologLogger(zl), nil

	default:
		return nil, fmt.Errorf("unknown log backend: %s", o.Backend)
	}
}

// ParseLevel converts a textual level to slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

func zerologLevel(l slog.Level) zerolog.Level {
	switch {
	case l <= slog.LevelDebug:
		return zerolog.DebugLevel
	case l <= slog.LevelInfo:
		return zerolog.InfoLevel
	case l <= slog.LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
