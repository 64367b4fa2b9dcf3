// Copyright 2026 The rs4lk Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log is the logging facade of rs4lk. It wraps a zap logger behind a
// small Logger interface so that components take loggers from their context
// and tests can redirect output to testing.TB.
package log

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the verbosity of a log message.
type Level zapcore.Level

const (
	DebugLevel = Level(zapcore.DebugLevel)
	InfoLevel  = Level(zapcore.InfoLevel)
	ErrorLevel = Level(zapcore.ErrorLevel)
)

// Logger describes the logger interface.
type Logger interface {
	New(ctx ...any) Logger
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Enabled(lvl Level) bool
}

var root atomic.Pointer[logger]

func init() {
	root.Store(&logger{logger: zap.NewNop()})
}

type logger struct {
	logger *zap.Logger
}

// Root returns the root logger. It is a no-op logger until Setup is called.
func Root() Logger {
	return root.Load()
}

// New creates a logger from the root logger with the given context.
func New(ctx ...any) Logger {
	return root.Load().New(ctx...)
}

// Debug logs at debug level on the root logger.
func Debug(msg string, ctx ...any) {
	root.Load().withSkip(1).Debug(msg, ctx...)
}

// Info logs at info level on the root logger.
func Info(msg string, ctx ...any) {
	root.Load().withSkip(1).Info(msg, ctx...)
}

// Error logs at error level on the root logger.
func Error(msg string, ctx ...any) {
	root.Load().withSkip(1).Error(msg, ctx...)
}

func (l *logger) New(ctx ...any) Logger {
	return &logger{logger: l.logger.With(convertCtx(ctx)...)}
}

func (l *logger) Debug(msg string, ctx ...any) {
	l.logger.Debug(msg, convertCtx(ctx)...)
}

func (l *logger) Info(msg string, ctx ...any) {
	l.logger.Info(msg, convertCtx(ctx)...)
}

func (l *logger) Error(msg string, ctx ...any) {
	l.logger.Error(msg, convertCtx(ctx)...)
}

func (l *logger) Enabled(lvl Level) bool {
	return l.logger.Core().Enabled(zapcore.Level(lvl))
}

// WithOptions returns a copy of the logger with the zap options applied.
func (l *logger) WithOptions(opts ...zap.Option) Logger {
	return &logger{logger: l.logger.WithOptions(opts...)}
}

func (l *logger) withSkip(n int) *logger {
	return &logger{logger: l.logger.WithOptions(zap.AddCallerSkip(n))}
}

// Setup configures the root logger. It must be called before any goroutine
// that logs is started.
func Setup(cfg Config) error {
	cfg.InitDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Console.Level)); err != nil {
		return fmt.Errorf("parsing console level %q: %w", cfg.Console.Level, err)
	}
	stackLevel := zapcore.InvalidLevel
	if cfg.Console.StacktraceLevel != "none" {
		if err := stackLevel.UnmarshalText([]byte(cfg.Console.StacktraceLevel)); err != nil {
			return fmt.Errorf("parsing stacktrace level %q: %w",
				cfg.Console.StacktraceLevel, err)
		}
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoding := "json"
	if cfg.Console.Format == "human" {
		encoding = "console"
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	zc := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		DisableCaller:     cfg.Console.DisableCaller,
		DisableStacktrace: true,
		Encoding:          encoding,
		EncoderConfig:     encCfg,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
	zl, err := zc.Build(zap.AddStacktrace(stackLevel))
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	root.Store(&logger{logger: zl})
	zap.ReplaceGlobals(zl)
	return nil
}

// Flush writes buffered log entries.
func Flush() {
	_ = root.Load().logger.Sync()
}

// HandlePanic catches panics, logs them with a stack trace and re-panics.
// It must be deferred at the root of every goroutine.
func HandlePanic() {
	if msg := recover(); msg != nil {
		root.Load().logger.Error("Panic", zap.Any("msg", msg),
			zap.ByteString("stack", debug.Stack()))
		Flush()
		fmt.Fprintf(os.Stderr, "panic: %v\n", msg)
		panic(msg)
	}
}

func convertCtx(ctx []any) []zap.Field {
	fields := make([]zap.Field, 0, len(ctx)/2)
	for i := 0; i+1 < len(ctx); i += 2 {
		key, ok := ctx[i].(string)
		if !ok {
			key = fmt.Sprint(ctx[i])
		}
		fields = append(fields, zap.Any(key, ctx[i+1]))
	}
	return fields
}
