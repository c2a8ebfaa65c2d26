package logger

import (
	"context"
	"io"
	"os"
	"shareit/config"
	"shareit/shared/constant"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger writes JSON lines in production and human readable output elsewhere.
func InitLogger(cfg *config.Config) {
	log.Logger = New(os.Stdout, cfg.Server.Env)

	SetLogLevel(cfg)
}

func New(out io.Writer, env string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if env != constant.ServerEnvProduction {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).With().Timestamp().Logger()
}

// Ctx returns the global logger enriched with the request and caller ids carried by ctx.
func Ctx(ctx context.Context) *zerolog.Logger {
	logCtx := log.Logger.With()

	if requestID, ok := ctx.Value(constant.ContextKeyRequestID).(string); ok && requestID != "" {
		logCtx = logCtx.Str("request_id", requestID)
	}

	if userID, ok := ctx.Value(constant.ContextKeyUserID).(int64); ok {
		logCtx = logCtx.Int64("user_id", userID)
	}

	logger := logCtx.Logger()

	return &logger
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
		log.Debug().Str("loglevel", level.String()).Msg("No usable log level configured, using default.")
	}

	zerolog.SetGlobalLevel(level)
}
