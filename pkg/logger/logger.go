// Package logger provides structured logging for the gateway.
//
// The process-wide logger is a singleton, swappable via Initialize so that
// tests and alternate entrypoints can redirect output without threading a
// logger through every call site.
package logger

import (
	"os"
	"strconv"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var singleton atomic.Pointer[zap.SugaredLogger]

func init() {
	singleton.Store(newDefault())
}

func newDefault() *zap.SugaredLogger {
	return New(unstructuredLogs()).Sugar()
}

// New builds a zap.Logger writing to stderr. When unstructured is true it
// uses a human-readable console encoder (local development); otherwise it
// emits JSON suitable for log aggregation.
func New(unstructured bool) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if unstructured {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), zapcore.DebugLevel)
	return zap.New(core)
}

// unstructuredLogs reports whether UNSTRUCTURED_LOGS opts into the console
// encoder. Unset or unparseable values default to true (developer-friendly).
func unstructuredLogs() bool {
	return UnstructuredLogsFromEnv()
}

// UnstructuredLogsFromEnv reports whether UNSTRUCTURED_LOGS opts into the
// console encoder. Unset or unparseable values default to true
// (developer-friendly). Exported so entrypoints can decide how to call
// Initialize without duplicating the env-parsing rule.
func UnstructuredLogsFromEnv() bool {
	v := os.Getenv("UNSTRUCTURED_LOGS")
	if v == "" {
		return true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return true
	}
	return b
}

// Initialize replaces the singleton logger. Call once at process startup
// before any request handling begins.
func Initialize(unstructured bool) {
	singleton.Store(New(unstructured).Sugar())
}

// Get returns the current singleton logger.
func Get() *zap.SugaredLogger {
	return singleton.Load()
}

func Debug(args ...any)                   { Get().Debug(args...) }
func Debugf(template string, args ...any) { Get().Debugf(template, args...) }
func Debugw(msg string, kv ...any)        { Get().Debugw(msg, kv...) }

func Info(args ...any)                   { Get().Info(args...) }
func Infof(template string, args ...any) { Get().Infof(template, args...) }
func Infow(msg string, kv ...any)        { Get().Infow(msg, kv...) }

func Warn(args ...any)                   { Get().Warn(args...) }
func Warnf(template string, args ...any) { Get().Warnf(template, args...) }
func Warnw(msg string, kv ...any)        { Get().Warnw(msg, kv...) }

func Error(args ...any)                   { Get().Error(args...) }
func Errorf(template string, args ...any) { Get().Errorf(template, args...) }
func Errorw(msg string, kv ...any)        { Get().Errorw(msg, kv...) }
