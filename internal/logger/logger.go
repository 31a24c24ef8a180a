package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New creates a console zerolog.Logger writing to stdout.
func New(level string) zerolog.Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter is New for an arbitrary destination. File destinations get
// plain JSON lines instead of the colored console format.
func NewWithWriter(w io.Writer, level string) zerolog.Logger {
	out := w
	if _, isFile := w.(*os.File); !isFile || w == os.Stdout || w == os.Stderr {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).
		With().
		Timestamp().
		Str("service", "newsapp").
		Logger().
		Level(parseLevel(level))
}

func parseLevel(raw string) zerolog.Level {
	if raw == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
