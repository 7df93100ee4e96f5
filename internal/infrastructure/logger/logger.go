package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config selects the log level and output format. Format "console"
// renders human-readable lines for local runs; anything else emits
// JSON for log shippers.
type Config struct {
	Level  string
	Format string
}

// New builds the process-wide zerolog logger.
func New(cfg Config) zerolog.Logger {
	return zerolog.New(outputFor(cfg.Format)).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Caller().
		Logger()
}

func outputFor(format string) io.Writer {
	if format == "console" {
		return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return os.Stdout
}

// parseLevel falls back to info on anything it does not recognize, so
// a typo in LOG_LEVEL never silences the service.
func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
