package logger

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"taskboard/pkg/config"
)

// New builds the application logger: a zap core wrapped with otelzap so
// every log line carries the active trace and span ids.
func New(cfg config.LoggerConfig, environment string) (*otelzap.Logger, error) {
	var zapConfig zap.Config

	if environment == "development" {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	if cfg.Encoding != "" {
		zapConfig.Encoding = cfg.Encoding
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err == nil {
		zapConfig.Level = zap.NewAtomicLevelAt(level)
	}

	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.TimeKey = "timestamp"

	zapLogger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	return otelzap.New(zapLogger, otelzap.WithMinLevel(zapConfig.Level.Level())), nil
}
