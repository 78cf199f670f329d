// Package logging provides structured logging for bimdiff using zerolog.
//
// Reconciliation sessions log through the logger carried in their context.
// Code without one falls back to the process default, which reads the
// LOG_LEVEL, LOG_FORMAT and NO_COLOR environment variables once at startup:
//
//	ctx := logging.WithLogger(context.Background(), logging.Default())
//	ctx = logging.WithSession(ctx, sessionID)
//	logging.FromContext(ctx).Info().Int("baseline_objects", n).Msg("Reconciliation started")
package logging

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger zerolog.Logger

func init() {
	defaultLogger = NewLoggerFromConfig(envConfig())
}

// envConfig derives the startup configuration. DEBUG lowers the level to
// debug unless LOG_LEVEL names one.
func envConfig() *Config {
	cfg := DefaultConfig()
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		cfg.Level = lvl
	} else if os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	if f := os.Getenv("LOG_FORMAT"); f != "" {
		cfg.Format = f
	}
	return cfg
}

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger, including zerolog's global one.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

func isatty() bool {
	fi, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
