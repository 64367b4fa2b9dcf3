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


// Package testlog routes rs4lk log output into the log of a test, so that it
// is only shown for failing tests or with -v.
package testlog

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"github.com/rs4lk/rs4lk/pkg/log"
)

// NewLogger returns a debug level Logger writing to t. Options override the
// level.
func NewLogger(t testing.TB, opts ...zaptest.LoggerOption) log.Logger {
	opts = append([]zaptest.LoggerOption{zaptest.Level(zapcore.DebugLevel)}, opts...)
	return testLogger{z: zaptest.NewLogger(t, opts...)}
}

// Context returns a background context carrying a Logger writing to t.
func Context(t testing.TB) context.Context {
	return log.CtxWith(context.Background(), NewLogger(t))
}

type testLogger struct {
	z *zap.Logger
}

func (l testLogger) New(ctx ...any) log.Logger {
	return testLogger{z: l.z.With(toFields(ctx)...)}
}

func (l testLogger) Debug(msg string, ctx ...any) { l.z.Debug(msg, toFields(ctx)...) }
func (l testLogger) Info(msg string, ctx ...any)  { l.z.Info(msg, toFields(ctx)...) }
func (l testLogger) Error(msg string, ctx ...any) { l.z.Error(msg, toFields(ctx)...) }

func (l testLogger) Enabled(lvl log.Level) bool {
	return l.z.Core().Enabled(zapcore.Level(lvl))
}

// toFields pairs up key/value context. A trailing key without value is
// dropped.
func toFields(ctx []any) []zap.Field {
	out := make([]zap.Field, 0, len(ctx)/2)
	for i := 1; i < len(ctx); i += 2 {
		out = append(out, zap.Any(fmt.Sprint(ctx[i-1]), ctx[i]))
	}
	return out
}
