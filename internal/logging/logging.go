// Package logging builds the single process-wide logger: a dated
// append-only JSON file capturing everything, mirrored to stderr at a
// coarser verbosity. Construct it once in main and pass the handle to
// components that log.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates the logger, writing debug and above to
// <dir>/futuresctl_YYYYMMDD.log and info and above to stderr.
// The returned flush func syncs the file sink; call it before exit.
func New(dir string) (*zap.Logger, func(), error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	name := fmt.Sprintf("futuresctl_%s.log", time.Now().Format("20060102"))
	file, err := os.OpenFile(filepath.Join(dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(file), zap.DebugLevel),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(os.Stderr), zap.InfoLevel),
	)

	logger := zap.New(core)
	flush := func() {
		_ = logger.Sync()
		_ = file.Close()
	}

	return logger, flush, nil
}
