package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Production uses JSON output at info level,
// everything else the human-readable development encoder at debug level.
func New(production bool) (*zap.Logger, error) {
	if production {
		config := zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "time"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return config.Build()
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	return config.Build()
}

// Must is New for main packages. A logger that cannot be built is replaced
// by a no-op logger.
func Must(production bool) *zap.Logger {
	logger, err := New(production)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
