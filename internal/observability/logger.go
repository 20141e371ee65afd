package observability

import (
	"github.com/danmuck/mossdecode/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the runtime logging profile and returns the global
// logger tagged with app. Output goes to stderr so stdout stays free for
// exported packets.
func InitLogger(app string) zerolog.Logger {
	logging.ConfigureRuntime()
	logger := log.Logger.With().Str("app", app).Logger()
	log.Logger = logger
	return logger
}
