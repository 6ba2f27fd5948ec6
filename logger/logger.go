// Package logger is a thin wrapper around zap so the rest of the code can log
// without carrying a logger handle around. Init wires file rotation via
// lumberjack; before Init is called everything goes to stderr, which keeps
// tests quiet to set up.
package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu  sync.Mutex
	log = newConsole(zapcore.InfoLevel)
)

// Init replaces the default console logger with one that also writes to a
// rotating file. An empty file path keeps console-only logging.
func Init(file, level string) {
	mu.Lock()
	defer mu.Unlock()

	lvl := parseLevel(level)
	if file == "" {
		log = newConsole(lvl)
		return
	}

	rotator := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(rotator), lvl),
		consoleCore(lvl),
	)
	log = zap.New(core)
}

func newConsole(lvl zapcore.Level) *zap.Logger {
	return zap.New(consoleCore(lvl))
}

func consoleCore(lvl zapcore.Level) zapcore.Core {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(os.Stderr), lvl)
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Pair builds a structured field from an arbitrary key/value.
func Pair(key string, value interface{}) zap.Field { return zap.Any(key, value) }

func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { log.Fatal(msg, fields...) }

func Infof(format string, args ...interface{})  { log.Sugar().Infof(format, args...) }
func Warnf(format string, args ...interface{})  { log.Sugar().Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { log.Sugar().Errorf(format, args...) }

// Sync flushes buffered entries. Call on shutdown.
func Sync() { _ = log.Sync() }
