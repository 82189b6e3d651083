// Package logger builds the zerolog logger shared by the HTTP stack, the
// database bootstrap and the tracing setup.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	JSONFormat    = "json"
	ConsoleFormat = "console"
)

// New returns a logger writing to stdout.
func New(level, format string, loc *time.Location) zerolog.Logger {
	return NewWithWriter(level, format, loc, os.Stdout)
}

// NewWithWriter returns a logger writing one event per line to w. Timestamps
// are rendered in loc under the "ts" key.
func NewWithWriter(level, format string, loc *time.Location, w io.Writer) zerolog.Logger {
	if loc == nil {
		loc = time.UTC
	}

	zerolog.TimestampFieldName = "ts"
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().In(loc)
	}

	out := w
	if strings.ToLower(format) == ConsoleFormat {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel maps a textual level to zerolog, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}
