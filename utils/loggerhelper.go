package utils

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// InitLogger points the global logger at a console writer on stderr. The
// debug and trace switches win over LOG_LEVEL.
func InitLogger(debug bool, trace bool) *zerolog.Logger {
	return initLogger(os.Stderr, debug, trace)
}

func initLogger(out io.Writer, debug bool, trace bool) *zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out}).With().Caller().Logger()

	zerolog.SetGlobalLevel(levelFromEnv())
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else if trace {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}
	return &log.Logger
}

func levelFromEnv() zerolog.Level {
	raw := strings.ToLower(GetEnvDefault("LOG_LEVEL", ""))
	if raw == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(raw)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
