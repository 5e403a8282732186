// Package logger owns the process-wide zerolog logger shared by the rinkside
// CLI and devserver. Until Init runs only warnings and errors reach stderr.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the application logger instance
var Logger = zerolog.New(os.Stderr).Level(zerolog.WarnLevel)

// Init rebuilds Logger. format "json" emits one object per line, anything
// else the console writer. A nil out means stderr, keeping stdout for
// command output.
func Init(level, format string, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}
	zerolog.SetGlobalLevel(ParseLevel(level))

	if !strings.EqualFold(format, "json") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	Logger = zerolog.New(out).With().Timestamp().Logger()
	log.Logger = Logger
}

// ParseLevel maps a config or env value onto a zerolog level. "warning" is
// accepted for warn; empty or unknown values mean info.
func ParseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// GetLogger returns the configured logger instance
func GetLogger() zerolog.Logger {
	return Logger
}
