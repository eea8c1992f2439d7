// Package logging builds the zerolog loggers used by the demo runner.
package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

// Options control how log lines are written.
type Options struct {
	// Level is a zerolog level name such as "debug" or "warn". Empty means DefaultLevel.
	Level string

	// JSON disables the human-readable console format.
	JSON bool

	// NoColor turns off ANSI colors in the console format.
	NoColor bool
}

// New creates a logger writing to out, tagged with the component name.
func New(out io.Writer, component string, opts Options) (zerolog.Logger, error) {
	level := opts.Level
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), err
	}

	w := out
	if !opts.JSON {
		w = zerolog.ConsoleWriter{Out: out, NoColor: opts.NoColor, TimeFormat: "15:04:05.000"}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("component", component).Logger(), nil
}
