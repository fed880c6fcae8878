// Package logging builds the zerolog logger used across stackctl.
//
// Logs always go to stderr (or the given writer); stdout is reserved for
// the compose tool's output so it can be piped or parsed.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New creates a logger writing to w at the given level. format "json"
// emits one JSON object per line; anything else uses the human-readable
// console writer.
func New(w io.Writer, level, format string) zerolog.Logger {
	var out io.Writer = w
	if !strings.EqualFold(format, "json") {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("app", "stackctl").
		Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to warn.
func ParseLevel(raw string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off", "none":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}
