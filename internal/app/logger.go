package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-app/internal/config"
)

var globalLogger zerolog.Logger

func InitDefaultLogger() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimestampFieldName = "timestamp"

	globalLogger = zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Int("pid", os.Getpid()).
		Str("service", "todo-server").
		Logger()

	globalLogger.Info().Msg("initialized default logger")
}

func MustInitApplicationLogger() {
	cfg := config.Global()

	level, w, err := applicationLogOutput(cfg.Env, cfg.Log)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("env", cfg.Env).
			Msg("failed to configure application logger")
		panic(err)
	}

	zerolog.SetGlobalLevel(level)
	globalLogger = globalLogger.Output(w)
	globalLogger.Info().
		Str("level", level.String()).
		Msg("initialized application logger")
}

// applicationLogOutput picks the level and writer for env. Local runs log
// at trace level to the console; LOG_LEVEL and LOG_FORMAT override either.
func applicationLogOutput(env string, logCfg config.LogConfig) (zerolog.Level, io.Writer, error) {
	var (
		level  zerolog.Level
		format = config.LogFormatJSON
	)
	switch env {
	case config.EnvDev:
		level = zerolog.DebugLevel
	case config.EnvProd:
		level = zerolog.InfoLevel
	case config.EnvLocal:
		level = zerolog.TraceLevel
		format = config.LogFormatConsole
	default:
		return zerolog.NoLevel, nil, fmt.Errorf("unknown env: %s", env)
	}

	if logCfg.Level != "" {
		parsed, err := zerolog.ParseLevel(logCfg.Level)
		if err != nil {
			return zerolog.NoLevel, nil, fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}
	if logCfg.Format != "" {
		format = logCfg.Format
	}

	switch format {
	case config.LogFormatJSON:
		return level, os.Stdout, nil
	case config.LogFormatConsole:
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = os.Stdout
		return level, consoleWriter, nil
	default:
		return zerolog.NoLevel, nil, fmt.Errorf("unknown log format: %s", format)
	}
}
