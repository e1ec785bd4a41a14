package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New собирает zap логгер для сервиса: JSON в проде, цветная консоль в debug
func New(level string, service string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	if level == "debug" {
		config.Development = true
		config.Encoding = "console"
		config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if service != "" {
		config.InitialFields = map[string]interface{}{"service": service}
	}

	return config.Build()
}

// NewConsole - консольный логгер в stderr для CLI, stdout остаётся под вывод команд.
// Пустой или неизвестный уровень - warn.
func NewConsole(level string) (*zap.Logger, error) {
	zapLevel := zapcore.WarnLevel
	if level != "" {
		if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
			zapLevel = zapcore.WarnLevel
		}
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.OutputPaths = []string{"stderr"}
	config.DisableStacktrace = true
	return config.Build()
}
