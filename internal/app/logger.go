package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-board/internal/config"
)

var (
	globalLogger  zerolog.Logger
	globalLogFile *os.File
)

func InitDefaultLogger() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimestampFieldName = "timestamp"

	globalLogger = zerolog.New(os.Stderr).
		With().
		Timestamp().
		Caller().
		Int("pid", os.Getpid()).
		Logger()

	globalLogger.Debug().Msg("initialized default logger")
}

// MustInitApplicationLogger picks the level and output from the config.
// Without a log path, records go to stderr so command output on stdout
// stays parseable. With interactive set the logger is silenced instead,
// since anything written to the terminal would tear the UI.
func MustInitApplicationLogger(interactive bool) {
	cfg := config.Global()

	w := io.Writer(os.Stderr)
	switch cfg.Env {
	case config.EnvDev:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case config.EnvProd:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case config.EnvLocal:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)

		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = os.Stderr
		w = consoleWriter
	default:
		globalLogger.Error().
			Str("env", cfg.Env).
			Msg("unknown env")
		panic(fmt.Errorf("unknown env: %s", cfg.Env))
	}

	if cfg.Log.Path != "" {
		CloseLogger()
		f, err := os.OpenFile(cfg.Log.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			globalLogger.Error().
				Err(err).
				Str("path", cfg.Log.Path).
				Msg("failed to open log file")
			panic(err)
		}
		globalLogFile = f
		w = f
	} else if interactive {
		globalLogger = zerolog.Nop()
		return
	}

	globalLogger = globalLogger.Output(w)
	globalLogger.Debug().Msg("initialized application logger")
}

func CloseLogger() {
	if globalLogFile == nil {
		return
	}
	_ = globalLogFile.Close()
	globalLogFile = nil
}
