package shared

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// LogFlags are the logging flags shared by every command.
type LogFlags struct {
	Debug   bool `help:"Enable debug logging"`
	LogJSON bool `name:"log-json" help:"Output JSON logs instead of console format"`
}

// Logger builds the logger selected by the flags.
func (f LogFlags) Logger() zerolog.Logger {
	if f.LogJSON {
		return SetupStructuredLogger(f.Debug)
	}
	return SetupLogger(f.Debug)
}

// SetupLogger configures zerolog with pretty console output
func SetupLogger(debug bool) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level(debug)).
		With().
		Timestamp().
		Logger()
}

// SetupStructuredLogger configures zerolog for structured (JSON) output
func SetupStructuredLogger(debug bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	return zerolog.New(os.Stderr).
		Level(level(debug)).
		With().
		Timestamp().
		Logger()
}

func level(debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
