// Package logger builds the zerolog loggers used across rosterdesk.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/config"
	"github.com/rs/zerolog"
)

// New returns a logger writing to out with a component field. The console
// format is also chosen when APP_ENV=dev.
func New(component string, cfg config.LogConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.WarnLevel
	}

	w := out
	if cfg.Format == config.LogFormatConsole || strings.EqualFold(os.Getenv("APP_ENV"), "dev") {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: !isTerminal(out)}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("component", component).Logger()
}

// Nop discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
