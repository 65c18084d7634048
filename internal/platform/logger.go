package platform

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logging environment
const (
	EnvLogLevel     = "LOG_LEVEL"
	DefaultLogLevel = "info"
)

// NewLogger builds the application logger. The level comes from LOG_LEVEL
// and falls back to info when unset or invalid; output is human-readable
// console lines on stderr.
func NewLogger() (*zap.Logger, error) {
	return newLogger(os.Getenv(EnvLogLevel), []string{"stderr"})
}

func newLogger(levelText string, outputs []string) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(levelText)))); err != nil || levelText == "" {
		_ = level.UnmarshalText([]byte(DefaultLogLevel))
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey:    "message",
		TimeKey:       "time",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		StacktraceKey: "stacktrace",
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
		EncodeName:    zapcore.FullNameEncoder,
	}

	cfg := zap.Config{
		Level:             level,
		Encoding:          "console",
		EncoderConfig:     encoderCfg,
		OutputPaths:       outputs,
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}

	return cfg.Build()
}

// Sugar returns a printf-style logger, substituting a no-op logger for nil
func Sugar(logger *zap.Logger) *zap.SugaredLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger.Sugar()
}
