// Package logging configures the process-wide diagnostic logger.
//
// Diagnostic output (command invocations, config resolution, retry
// attempts) goes to stderr through zerolog so it never interleaves with
// the user-facing step progress on stdout.
package logging

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvLogLevel overrides the configured log level when set.
const EnvLogLevel = "DEPLOYCTL_LOG_LEVEL"

var configureOnce sync.Once

// Configure sets up the global logger. Verbose lowers the level to debug;
// DEPLOYCTL_LOG_LEVEL wins over both.
func Configure(verbose bool) {
	configureOnce.Do(func() {
		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
			level = lvl
		}

		writer := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
		log.Logger = zerolog.New(writer).Level(level).With().Timestamp().Logger()
	})
}

func parseLevel(s string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "off", "disabled":
		return zerolog.Disabled, true
	default:
		return zerolog.NoLevel, false
	}
}
