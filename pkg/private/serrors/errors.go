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

// Package serrors provides errors that carry key/value context. The context
// is rendered into the error string and, when the error is logged through
// zap, into structured fields. All returned errors support errors.Is and
// errors.As against their causes.
package serrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxPair struct {
	Key   string
	Value any
}

type errCtx []ctxPair

func mkCtx(kv []any) errCtx {
	n := len(kv) / 2
	c := make(errCtx, 0, n)
	for i := 0; i < n; i++ {
		c = append(c, ctxPair{Key: fmt.Sprint(kv[2*i]), Value: kv[2*i+1]})
	}
	sort.SliceStable(c, func(a, b int) bool { return c[a].Key < c[b].Key })
	return c
}

func (c errCtx) write(b *strings.Builder) {
	if len(c) == 0 {
		return
	}
	b.WriteString(" {")
	for i, p := range c {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s=%v", p.Key, p.Value)
	}
	b.WriteString("}")
}

func (c errCtx) marshal(enc zapcore.ObjectEncoder) {
	for _, p := range c {
		zap.Any(p.Key, p.Value).AddTo(enc)
	}
}

func marshalCause(enc zapcore.ObjectEncoder, cause error) error {
	if cause == nil {
		return nil
	}
	if m, ok := cause.(zapcore.ObjectMarshaler); ok {
		return enc.AddObject("cause", m)
	}
	enc.AddString("cause", cause.Error())
	return nil
}

// basicError is a message with context and an optional cause.
type basicError struct {
	msg   string
	ctx   errCtx
	cause error
}

func (e *basicError) Error() string {
	var b strings.Builder
	b.WriteString(e.msg)
	e.ctx.write(&b)
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

func (e *basicError) Unwrap() error {
	return e.cause
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (e *basicError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("msg", e.msg)
	if err := marshalCause(enc, e.cause); err != nil {
		return err
	}
	e.ctx.marshal(enc)
	return nil
}

// joinedError attaches context and a cause to an existing base error, usually
// a sentinel.
type joinedError struct {
	base  error
	ctx   errCtx
	cause error
}

func (e *joinedError) Error() string {
	var b strings.Builder
	b.WriteString(e.base.Error())
	e.ctx.write(&b)
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

func (e *joinedError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.base}
	}
	return []error{e.base, e.cause}
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (e *joinedError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("msg", e.base.Error())
	if err := marshalCause(enc, e.cause); err != nil {
		return err
	}
	e.ctx.marshal(enc)
	return nil
}

// New creates an error with the given message and key/value context. For
// sentinel errors that are compared with errors.Is, prefer errors.New.
func New(msg string, kv ...any) error {
	return &basicError{msg: msg, ctx: mkCtx(kv)}
}

// Wrap returns an error with the given message and context that wraps cause.
// errors.Is(Wrap(msg, cause), cause) is true.
func Wrap(msg string, cause error, kv ...any) error {
	return &basicError{msg: msg, ctx: mkCtx(kv), cause: cause}
}

// Join returns an error that is both err and cause, decorated with the given
// context. It returns nil if both err and cause are nil. If err is nil, the
// result behaves like a plain wrap of cause.
func Join(err, cause error, kv ...any) error {
	switch {
	case err == nil && cause == nil:
		return nil
	case err == nil:
		return WithCtx(cause, kv...)
	}
	return &joinedError{base: err, ctx: mkCtx(kv), cause: cause}
}

// WithCtx decorates err with additional context, keeping its message.
func WithCtx(err error, kv ...any) error {
	if err == nil {
		return nil
	}
	return &joinedError{base: err, ctx: mkCtx(kv)}
}

// IsTimeout returns whether err is or is caused by a timeout error.
func IsTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// List is a slice of errors.
type List []error

// Error implements the error interface.
func (e List) Error() string {
	s := make([]string, 0, len(e))
	for _, err := range e {
		s = append(s, err.Error())
	}
	return fmt.Sprintf("[ %s ]", strings.Join(s, "; "))
}

// Unwrap lets errors.Is and errors.As inspect every element.
func (e List) Unwrap() []error {
	return e
}

// ToError returns the list as an error, or nil if it is empty.
func (e List) ToError() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// MarshalLogArray implements zapcore.ArrayMarshaler.
func (e List) MarshalLogArray(ae zapcore.ArrayEncoder) error {
	for _, err := range e {
		if m, ok := err.(zapcore.ObjectMarshaler); ok {
			if err := ae.AppendObject(m); err != nil {
				return err
			}
			continue
		}
		ae.AppendString(err.Error())
	}
	return nil
}
