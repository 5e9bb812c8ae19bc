package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger with sane defaults. It is safe to call
// before the config is loaded; Configure refines it afterwards.
func Init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

// Configure switches to JSON output outside development and applies the level.
func Configure(env, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if env != "development" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	if err != nil {
		log.Warn().Err(err).Str("level", level).Msg("Unknown log level, falling back to info")
	}
}
