package cmd

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newRunLogger builds the structured logger for sync runs. Logs go to
// stderr so stdout stays clean for table/json output.
func newRunLogger(verbose bool) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
