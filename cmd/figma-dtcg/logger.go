package main

import (
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns the console logger handed to the converter. Warnings and
// errors go to stderr; progress messages are shown only when verbose.
func newLogger(verbose bool) *zap.SugaredLogger {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	if color.NoColor {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	encoder := zapcore.NewConsoleEncoder(ec)

	minLevel := zapcore.WarnLevel
	if verbose {
		minLevel = zapcore.DebugLevel
	}

	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return minLevel <= lvl && lvl < zapcore.WarnLevel
	})
	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.WarnLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), lowPriority),
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), highPriority),
	)
	return zap.New(core).Sugar()
}
