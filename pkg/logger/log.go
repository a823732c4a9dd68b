package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// NewLogger пишет одновременно в stdout и в файл. Пустой path - только stdout.
func NewLogger(path string) *zap.Logger {
	outputs := []string{"stdout"}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			outputs = append(outputs, path)
		}
	}

	dualConfig := zap.Config{
		Encoding:         "console",
		Level:            zap.NewAtomicLevelAt(zap.DebugLevel),
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}

	dualLogger, err := dualConfig.Build()
	if err != nil {
		panic(err)
	}

	return dualLogger
}

// NewFileLogger пишет только в файл: терминальный интерфейс занимает stdout.
func NewFileLogger(path string) *zap.Logger {
	if path == "" {
		return zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zap.NewNop()
	}

	fileConfig := zap.Config{
		Encoding:         "console",
		Level:            zap.NewAtomicLevelAt(zap.InfoLevel),
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{path},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}
	fileLogger, err := fileConfig.Build()
	if err != nil {
		return zap.NewNop()
	}
	return fileLogger
}
