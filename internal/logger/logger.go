package logger

import (
	"context"
	"os"
	"path/filepath"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"manualdesk/internal/config"
	"manualdesk/internal/reqctx"
)

// Log — глобальный логгер. До InitLogger это no-op, поэтому пакеты и тесты
// могут писать в него без инициализации.
var Log = zap.NewNop()

// Dir — каталог JSON-логов; файлы ротирует lumberjack.
const Dir = "logs"

func InitLogger(cfg *config.Config) {
	logLevel := parseLevel(cfg.LogLevel)

	if cfg.Log == "dev" {
		devCfg := zap.NewDevelopmentConfig()
		devCfg.Level = zap.NewAtomicLevelAt(logLevel)
		logger, err := devCfg.Build()
		if err != nil {
			panic("не удалось собрать dev-логгер: " + err.Error())
		}
		Log = logger
		return
	}

	logDir := Dir
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		panic("не удалось создать папку для логов: " + err.Error())
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:      "time",
		LevelKey:     "level",
		MessageKey:   "message",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(logDir, "app.log"),
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     7,
		Compress:   true,
	})

	console := zapcore.Lock(os.Stdout)

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), writer, logLevel),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), console, logLevel),
	)

	Log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("env", cfg.Env))
}

// WithCtx — логгер с полями запроса: request_id, user_id, session_id.
func WithCtx(ctx context.Context) *zap.Logger {
	l := Log
	if ctx == nil {
		return l
	}
	if id, ok := reqctx.GetRequestID(ctx); ok {
		l = l.With(zap.String("request_id", id))
	}
	if id, ok := reqctx.GetUserID(ctx); ok {
		l = l.With(zap.String("user_id", id))
	}
	if id, ok := reqctx.GetSessionID(ctx); ok {
		l = l.With(zap.String("session_id", id))
	}
	return l
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
