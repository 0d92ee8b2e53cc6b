// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package log provides the structured logger used throughout the node. It is a thin
// wrapper over zap's SugaredLogger so that packages depend on a small, stable surface
// (NewFromGlobal, AddContext, Debugf/Infof/Warnf/Errorf) instead of on zap directly.
package log

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level mirrors zap's level so call sites never import zap themselves.
type Level int8

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelError:
		return zapcore.ErrorLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelInfo:
		return zapcore.InfoLevel
	default:
		// zap has no finer level than Debug; Trace collapses to Debug.
		return zapcore.DebugLevel
	}
}

var (
	globalMu    sync.RWMutex
	globalLevel = LevelInfo
	globalBase  *zap.SugaredLogger
)

func init() {
	globalBase = buildLogger(globalLevel)
}

func buildLogger(level Level) *zap.SugaredLogger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(cfg)
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level.zapLevel())
	return zap.New(core).Sugar()
}

// SetGlobalLevel adjusts the level new loggers (and the package-level default) are
// built at. It does not retroactively change loggers already handed out.
func SetGlobalLevel(level Level) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLevel = level
	globalBase = buildLogger(level)
}

// Option configures a Logger constructed by NewFromGlobal.
type Option func(*options)

type options struct {
	fields []any
}

// AddContext attaches a structured key/value pair to every line the logger emits, e.g.
// log.AddContext("pkg", "candidate-validation").
func AddContext(key string, value any) Option {
	return func(o *options) {
		o.fields = append(o.fields, key, value)
	}
}

// Logger is the logging capability used across the node.
type Logger struct {
	s *zap.SugaredLogger
}

// NewFromGlobal builds a Logger that inherits the process-wide level and appends any
// context supplied via AddContext.
func NewFromGlobal(opts ...Option) *Logger {
	globalMu.RLock()
	base := globalBase
	globalMu.RUnlock()

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if len(o.fields) > 0 {
		base = base.With(o.fields...)
	}
	return &Logger{s: base}
}

func (l *Logger) Debugf(template string, args ...any) { l.s.Debugf(template, args...) }
func (l *Logger) Infof(template string, args ...any)  { l.s.Infof(template, args...) }
func (l *Logger) Warnf(template string, args ...any)  { l.s.Warnf(template, args...) }
func (l *Logger) Errorf(template string, args ...any) { l.s.Errorf(template, args...) }

// With returns a Logger with additional structured fields attached.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{s: l.s.With(args...)}
}
