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

package log

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

type ctxKey struct{}

// CtxWith returns a copy of ctx that carries l. An existing logger in ctx is
// replaced.
func CtxWith(ctx context.Context, l Logger) context.Context {
	if ctx == nil {
		panic("nil context")
	}
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromCtx returns the logger carried by ctx, or the root logger. If ctx holds
// an opentracing span, the returned logger also records entries on it.
// FromCtx never returns nil.
func FromCtx(ctx context.Context) Logger {
	if ctx == nil {
		return Root()
	}
	l, ok := ctx.Value(ctxKey{}).(Logger)
	if !ok {
		l = Root()
	}
	if _, ok := l.(Span); ok {
		return l
	}
	return attachSpan(ctx, l)
}

// WithLabels returns a context whose logger has the additional labels. The
// logger is returned as well for convenience.
func WithLabels(ctx context.Context, labels ...any) (context.Context, Logger) {
	l := FromCtx(ctx).New(labels...)
	return CtxWith(ctx, l), l
}

func attachSpan(ctx context.Context, l Logger) Logger {
	span := opentracing.SpanFromContext(ctx)
	if span == nil {
		return l
	}
	if o, ok := l.(interface{ WithOptions(...zap.Option) Logger }); ok {
		l = o.WithOptions(zap.AddCallerSkip(1))
	}
	return Span{Logger: l, Span: span}
}
