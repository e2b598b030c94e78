package logger

import (
	"go-pairchat/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin key/value facade over zap's sugared logger.
// The zero value discards everything.
type Logger struct {
	sugar *zap.SugaredLogger
}

func NewLogger(cfg *config.Config) (*Logger, error) {
	var zcfg zap.Config
	if cfg.LoggerMode.Prod || !cfg.LoggerMode.Development {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level := zap.InfoLevel
	if cfg.LoggerMode.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.LoggerMode.Level)); err != nil {
			return nil, err
		}
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	z, err := zcfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &Logger{sugar: z.Sugar()}, nil
}

// Nop returns a logger that drops every entry.
func Nop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// Zap exposes the underlying logger for libraries that take *zap.Logger.
func (l Logger) Zap() *zap.Logger {
	if l.sugar == nil {
		return zap.NewNop()
	}
	return l.sugar.Desugar()
}

func (l Logger) With(kv ...any) Logger {
	if l.sugar == nil {
		return l
	}
	return Logger{sugar: l.sugar.With(kv...)}
}

func (l Logger) Debug(msg string, kv ...any) {
	if l.sugar != nil {
		l.sugar.Debugw(msg, kv...)
	}
}

func (l Logger) Info(msg string, kv ...any) {
	if l.sugar != nil {
		l.sugar.Infow(msg, kv...)
	}
}

func (l Logger) Warn(msg string, kv ...any) {
	if l.sugar != nil {
		l.sugar.Warnw(msg, kv...)
	}
}

func (l Logger) Error(msg string, kv ...any) {
	if l.sugar != nil {
		l.sugar.Errorw(msg, kv...)
	}
}

func (l Logger) Infof(template string, args ...any) {
	if l.sugar != nil {
		l.sugar.Infof(template, args...)
	}
}

func (l Logger) Errorf(template string, args ...any) {
	if l.sugar != nil {
		l.sugar.Errorf(template, args...)
	}
}

func (l Logger) Fatal(msg string, kv ...any) {
	if l.sugar != nil {
		l.sugar.Fatalw(msg, kv...)
	}
}

func (l Logger) Sync() error {
	if l.sugar == nil {
		return nil
	}
	return l.sugar.Sync()
}
