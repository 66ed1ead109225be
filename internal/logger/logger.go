// Package logger configures the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// New builds a logger writing to w. level is debug, info, warn or error;
// format is text or json. Unknown values fall back to info and text, and
// the fallback is logged through the new logger.
func New(w io.Writer, level, format string) *slog.Logger {
	lvl, levelOK := ParseLevel(level)

	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(time.RFC3339))
				}
			}

			return a
		},
	}

	var handler slog.Handler

	formatOK := true

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		formatOK = false
		handler = slog.NewTextHandler(w, opts)
	}

	l := slog.New(handler)

	if !levelOK {
		l.Warn("Invalid log level specified, defaulting to INFO", "configuredLevel", level)
	}

	if !formatOK {
		l.Warn("Invalid log format specified, defaulting to text", "configuredFormat", format)
	}

	return l
}

// Init builds a logger with New and installs it as the slog default.
func Init(w io.Writer, level, format string) *slog.Logger {
	l := New(w, level, format)
	slog.SetDefault(l)

	return l
}

// ParseLevel maps a level name to a slog level. ok is false for unknown
// names, which map to info.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
