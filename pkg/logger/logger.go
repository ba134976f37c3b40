// Package logger builds the zerolog logger shared by the server, services and consumers.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config selects the output format and level.
type Config struct {
	Env   string // development: human-readable console; anything else: JSON
	Level string // trace, debug, info, warn, error
}

// New creates a structured logger and installs it as zerolog's global logger.
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(cfg Config, out io.Writer) zerolog.Logger {
	w := out
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: out}
	}

	zl := zerolog.New(w).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
	log.Logger = zl
	return zl
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
