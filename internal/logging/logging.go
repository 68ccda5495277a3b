// Package logging builds the zerolog logger shared by the library and the CLI.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// DefaultLevel is used when Config.Level is empty or unknown.
const DefaultLevel = zerolog.WarnLevel

// Config holds logger configuration.
type Config struct {
	Level  string    // debug, info, warn, error
	Output io.Writer // nil = os.Stderr
	Pretty *bool     // nil = pretty when Output is a terminal
}

// New creates a logger. Output goes through a human-readable console writer
// when it is a terminal and as JSON lines otherwise.
func New(cfg Config) zerolog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	pretty := IsTerminal(output)
	if cfg.Pretty != nil {
		pretty = *cfg.Pretty
	}
	if pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.Kitchen,
			NoColor:    !IsTerminal(output),
		}
	}

	return zerolog.New(output).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a level name to a zerolog level, falling back to
// DefaultLevel.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return DefaultLevel
	}
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
