// Package logging builds the application logger.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ganymede-tools/ganymede/internal/config"
)

// New creates a *zap.Logger based on the provided LogConfig.
//
// Encoding "json" produces structured JSON output.
// Encoding "console" produces human-readable output.
// Level is one of: debug, info, warn, error (case-insensitive); defaults to warn.
// Output is always os.Stderr so stdout carries only cell output.
func New(cfg config.LogConfig, verbose bool) *zap.Logger {
	return NewWithWriter(zapcore.Lock(os.Stderr), cfg, verbose)
}

// NewWithWriter creates a logger writing to ws, using the same logic as New.
func NewWithWriter(ws zapcore.WriteSyncer, cfg config.LogConfig, verbose bool) *zap.Logger {
	level := parseLevel(cfg.Level)
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if strings.EqualFold(cfg.Encoding, "json") {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, ws, zap.NewAtomicLevelAt(level))
	return zap.New(core)
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
