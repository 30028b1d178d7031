// Package logx holds the process-wide structured logger.
package logx

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Log is the shared logger. It writes JSON lines to stdout, which the
// Lambda runtime forwards to CloudWatch.
var Log = zerolog.New(os.Stdout).With().Timestamp().Logger()

func init() {
	if strings.ToLower(os.Getenv("DEBUG")) == "true" {
		Configure("debug")
		return
	}
	Configure(os.Getenv("LOG_LEVEL"))
}

// Configure sets the global log level from a level name.
// Unknown or empty names fall back to info.
func Configure(level string) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "all", "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "none", "off", "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
