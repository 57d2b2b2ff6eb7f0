// Package logger builds the zap logger shared by the gateway and the worker.
//
// Production logs are JSON with ISO8601 timestamps; everything else gets a
// colored console encoder. When a file is configured, output is duplicated
// into a lumberjack-rotated file.
package logger

import (
	"os"

	"github.com/Domenick1991/flightgateway/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const envProduction = "production"

func New(cfg config.LogConfig) *zap.Logger {
	level := parseLevel(cfg)

	var encoder zapcore.Encoder
	if cfg.Env == envProduction {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.TimeKey = "timestamp"
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encCfg.EncodeCaller = zapcore.ShortCallerEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.999")
		encCfg.EncodeCaller = zapcore.ShortCallerEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	sink := zapcore.AddSync(os.Stdout)
	if cfg.File != "" {
		sink = zapcore.NewMultiWriteSyncer(sink, zapcore.AddSync(fileWriter(cfg)))
	}

	return zap.New(zapcore.NewCore(encoder, sink, level), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

func fileWriter(cfg config.LogConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    orDefault(cfg.MaxSizeMB, 100),
		MaxBackups: orDefault(cfg.MaxBackups, 3),
		MaxAge:     orDefault(cfg.MaxAgeDays, 28),
	}
}

func parseLevel(cfg config.LogConfig) zap.AtomicLevel {
	fallback := zapcore.DebugLevel
	if cfg.Env == envProduction {
		fallback = zapcore.InfoLevel
	}
	if cfg.Level == "" {
		return zap.NewAtomicLevelAt(fallback)
	}
	lvl, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return zap.NewAtomicLevelAt(fallback)
	}
	return zap.NewAtomicLevelAt(lvl)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
