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


// Package grpc contains the client options for gRPC connections to the
// control APIs of emulated routers.
package grpc

import (
	"context"
	"time"

	grpc_retry "github.com/grpc-ecosystem/go-grpc-middleware/retry"
	grpcprom "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/grpc-ecosystem/grpc-opentracing/go/otgrpc"
	opentracing "github.com/opentracing/opentracing-go"
	jaeger "github.com/uber/jaeger-client-go"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/rs4lk/rs4lk/pkg/log"
)

const (
	// DefaultRetries is the number of retries of unary RPCs that fail with a
	// transient status.
	DefaultRetries = 3
	// DefaultRetryBackoff is the linear backoff between retries.
	DefaultRetryBackoff = 200 * time.Millisecond
)

// DialOptions are the options for plaintext connections to router daemons
// inside the emulated lab. Unary calls are retried, and all calls are
// counted, traced and logged.
func DialOptions() []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(
			grpc_retry.UnaryClientInterceptor(
				grpc_retry.WithMax(DefaultRetries),
				grpc_retry.WithBackoff(grpc_retry.BackoffLinear(DefaultRetryBackoff)),
			),
			grpcprom.UnaryClientInterceptor,
			unaryTracing,
			unaryLogging,
		),
		grpc.WithChainStreamInterceptor(
			grpcprom.StreamClientInterceptor,
			otgrpc.OpenTracingStreamClientInterceptor(opentracing.GlobalTracer()),
			streamLogging,
		),
	}
}

// unaryTracing opens a client span per call and tags it with the router
// daemon the call goes to.
func unaryTracing(ctx context.Context, method string, req, reply any,
	cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {

	tagTarget := func(span opentracing.Span, _ string, _, _ any, _ error) {
		span.SetTag("target", cc.Target())
	}
	return otgrpc.OpenTracingClientInterceptor(
		opentracing.GlobalTracer(),
		otgrpc.SpanDecorator(tagTarget),
	)(ctx, method, req, reply, cc, invoker, opts...)
}

func unaryLogging(ctx context.Context, method string, req, reply any,
	cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {

	ctx = withRPCLogger(ctx, method, cc.Target())
	return invoker(ctx, method, req, reply, cc, opts...)
}

func streamLogging(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn,
	method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {

	ctx = withRPCLogger(ctx, method, cc.Target())
	return streamer(ctx, desc, cc, method, opts...)
}

// withRPCLogger logs the outgoing call and attaches a logger carrying the
// jaeger trace id, if any, to the context.
func withRPCLogger(ctx context.Context, method, target string) context.Context {
	logger := log.FromCtx(ctx)
	if span := opentracing.SpanFromContext(ctx); span != nil {
		if sc, ok := span.Context().(jaeger.SpanContext); ok {
			logger = logger.New("trace_id", sc.TraceID())
		}
	}
	logger.Debug("Outgoing RPC", "method", method, "target", target)
	return log.CtxWith(ctx, logger)
}
