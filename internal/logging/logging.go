// Package logging configures the structured logger shared by the CLI and
// the core packages. The core never logs through the global
// github.com/rs/zerolog/log logger — callers pass a zerolog.Logger
// explicitly (defaulting to Nop) so library use never writes to stderr
// unasked.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Format selects the wire shape of log lines.
type Format string

const (
	// FormatConsole renders human-readable, colorized lines. Default for
	// interactive CLI use.
	FormatConsole Format = "console"
	// FormatJSON renders one JSON object per line, for log aggregation.
	FormatJSON Format = "json"
)

// Config configures New.
type Config struct {
	Level  zerolog.Level
	Format Format
	Output io.Writer
}

// DefaultConfig returns the CLI's default: info level, console output to
// stderr.
func DefaultConfig() Config {
	return Config{
		Level:  zerolog.InfoLevel,
		Format: FormatConsole,
		Output: os.Stderr,
	}
}

// New builds a zerolog.Logger from cfg.
func New(cfg Config) zerolog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	out := cfg.Output
	if cfg.Format == FormatConsole {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(cfg.Level).With().Timestamp().Logger()
}

// Nop is the logger the core packages default to: every event is
// discarded, so importing dcsim as a library never produces output unless
// the caller opts in.
var Nop = zerolog.Nop()

// FromEnv builds a Config from DCSIM_LOG_LEVEL / DCSIM_LOG_FORMAT, falling
// back to DefaultConfig for unset or unrecognized values.
func FromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("DCSIM_LOG_FORMAT"); v == string(FormatJSON) {
		cfg.Format = FormatJSON
	}

	if v := os.Getenv("DCSIM_LOG_LEVEL"); v != "" {
		if lvl, err := zerolog.ParseLevel(v); err == nil {
			cfg.Level = lvl
		}
	}

	return cfg
}
