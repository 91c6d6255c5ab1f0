// Package logx builds the zap loggers used by the tetris binaries.
package logx

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var levels = map[string]zapcore.Level{
	"debug":  zapcore.DebugLevel,
	"info":   zapcore.InfoLevel,
	"warn":   zapcore.WarnLevel,
	"error":  zapcore.ErrorLevel,
	"dpanic": zapcore.DPanicLevel,
	"panic":  zapcore.PanicLevel,
	"fatal":  zapcore.FatalLevel,
}

// LevelByName maps a level name to its zap level. Unknown names yield debug.
func LevelByName(name string) zapcore.Level {
	level, ok := levels[name]
	if !ok {
		return zapcore.DebugLevel
	}
	return level
}

// ValidLevel reports whether name is a known level.
func ValidLevel(name string) bool {
	_, ok := levels[name]
	return ok
}

// Options select the logger flavor.
type Options struct {
	Level string
	// Dev switches to zap's development encoder settings.
	Dev bool
	// Console writes human readable lines instead of JSON.
	Console bool
	// Output defaults to stderr.
	Output io.Writer
}

// New builds a logger from opts.
func New(opts Options) *zap.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var encoderCfg zapcore.EncoderConfig
	if opts.Dev {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderCfg = zap.NewProductionEncoderConfig()
	}
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if opts.Console {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), zap.NewAtomicLevelAt(LevelByName(opts.Level)))
	return zap.New(core, zap.AddCaller())
}
