package logging

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	applog "github.com/andrescamacho/cardquest-go/internal/application/logging"
	"github.com/andrescamacho/cardquest-go/internal/infrastructure/config"
)

// NewLogger builds a zap logger from the logging config
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.DisableCaller = !cfg.IncludeCaller
	zcfg.DisableStacktrace = !cfg.IncludeStacktrace
	zcfg.Sampling = nil
	if cfg.Sampling.Initial > 0 {
		zcfg.Sampling = &zap.SamplingConfig{
			Initial:    cfg.Sampling.Initial,
			Thereafter: cfg.Sampling.Thereafter,
		}
	}

	if cfg.Format == "text" {
		zcfg.Encoding = "console"
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	switch cfg.Output {
	case "stderr":
		zcfg.OutputPaths = []string{"stderr"}
	case "file":
		zcfg.OutputPaths = []string{cfg.FilePath}
	default:
		zcfg.OutputPaths = []string{"stdout"}
	}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// ZapAdapter lets a zap logger serve as the application Logger
type ZapAdapter struct {
	logger *zap.Logger
}

var _ applog.Logger = (*ZapAdapter)(nil)

// NewZapAdapter wraps logger
func NewZapAdapter(logger *zap.Logger) *ZapAdapter {
	return &ZapAdapter{logger: logger}
}

// Log writes one entry. Metadata keys are emitted in sorted order.
func (a *ZapAdapter) Log(level, message string, metadata map[string]interface{}) {
	fields := make([]zap.Field, 0, len(metadata))
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err, ok := metadata[k].(error); ok {
			fields = append(fields, zap.NamedError(k, err))
			continue
		}
		fields = append(fields, zap.Any(k, metadata[k]))
	}

	switch level {
	case applog.LevelDebug:
		a.logger.Debug(message, fields...)
	case applog.LevelWarn:
		a.logger.Warn(message, fields...)
	case applog.LevelError:
		a.logger.Error(message, fields...)
	default:
		a.logger.Info(message, fields...)
	}
}

// Sync flushes buffered entries
func (a *ZapAdapter) Sync() error {
	return a.logger.Sync()
}
