// Package logging installs the league API's default slog logger.
//
// Records go to stderr through tint with source locations. Color is only
// emitted when stderr is a terminal, so container logs stay plain text.
// Every record carries service=volleyleague-api so payment, sweep and
// registration logs can be told apart from other processes in one stream.
// LOG_LEVEL accepts debug, info, warn and error (default: info).
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// ServiceName is attached to every record
const ServiceName = "volleyleague-api"

// Setup installs the default logger at the named level.
func Setup(level string) {
	SetupWithLevel(ParseLevel(level))
}

// SetupWithLevel installs the default logger on stderr at the given level.
func SetupWithLevel(level slog.Level) {
	slog.SetDefault(New(os.Stderr, level, isatty.IsTerminal(os.Stderr.Fd())))
}

// New builds the service logger writing to w.
func New(w io.Writer, level slog.Level, color bool) *slog.Logger {
	handler := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
		NoColor:    !color,
	})
	return slog.New(handler).With(slog.String("service", ServiceName))
}

// ParseLevel maps a level name to slog.Level, defaulting to Info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
