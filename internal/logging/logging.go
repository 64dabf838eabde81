// Package logging builds the zerolog logger used by showevs.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/dshills/devinput/internal/config"
)

// New returns a logger writing to w as configured by cfg. An empty format
// selects console output when w is a terminal and json otherwise. An
// invalid level falls back to info.
func New(cfg config.LogConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := w
	switch cfg.Format {
	case "json":
	case "console":
		out = consoleWriter(w)
	case "":
		if IsTerminal(w) {
			out = consoleWriter(w)
		}
	default:
		return zerolog.Nop(), fmt.Errorf("%w: format %q", config.ErrInvalidLogConfig, cfg.Format)
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	if err != nil {
		logger.Warn().Str("invalid_level", cfg.Level).Msg("Invalid log level, using info")
	}
	return logger, nil
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func consoleWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: !IsTerminal(w)}
}
