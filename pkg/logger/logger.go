// backend-go/pkg/logger/logger.go
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Log is the process-wide logger. The server entrypoint points it at the
// right level and format before anything else runs.
var Log zerolog.Logger

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	}

	Log = zerolog.New(output).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Caller().
		Logger()
}

// SetLevel tunes the global logger from the server mode. Release mode emits
// plain JSON at info level for log aggregation; debug keeps the colored
// console writer with caller locations. Anything else is parsed as a zerolog
// level name.
func SetLevel(mode string) {
	switch mode {
	case "release":
		Log = zerolog.New(os.Stdout).
			Level(zerolog.InfoLevel).
			With().
			Timestamp().
			Logger()
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		Log = Log.Level(zerolog.DebugLevel)
	default:
		level, err := zerolog.ParseLevel(mode)
		if err != nil {
			Log.Warn().Str("level", mode).Msg("unknown log level, defaulting to info")
			level = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(level)
		Log = Log.Level(level)
	}
}
