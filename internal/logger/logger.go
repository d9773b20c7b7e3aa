package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New creates a logger writing to stderr at level in the given format.
func New(level, format string) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	var w io.Writer
	switch strings.ToLower(format) {
	case "", FormatConsole:
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	case FormatJSON:
		w = os.Stderr
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", format)
	}
	return NewWithWriter(w).Level(lvl), nil
}

// NewWithWriter creates a logger with a custom writer.
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// ParseLevel parses a level name such as "info". An empty name means info.
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parsing log level: %w", err)
	}
	return lvl, nil
}

// Leveled adapts a zerolog.Logger to printf-style Infof/Warnf calls.
type Leveled struct {
	log zerolog.Logger
}

// NewLeveled wraps log.
func NewLeveled(log zerolog.Logger) Leveled {
	return Leveled{log: log}
}

func (l Leveled) Infof(format string, args ...any) { l.log.Info().Msgf(format, args...) }
func (l Leveled) Warnf(format string, args ...any) { l.log.Warn().Msgf(format, args...) }
