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

// Package env contains the configuration blocks for the process
// environment of rs4lk: metrics export and tracing.
package env

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	jaeger "github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"

	"github.com/rs4lk/rs4lk/pkg/log"
	"github.com/rs4lk/rs4lk/pkg/private/serrors"
	"github.com/rs4lk/rs4lk/private/config"
)

// HandlerTimeout bounds a single scrape of the metrics endpoint.
const HandlerTimeout = 30 * time.Second

var (
	_ config.Config = (*Metrics)(nil)
	_ config.Config = (*Tracing)(nil)
)

// Metrics configures the prometheus endpoint.
type Metrics struct {
	config.NoDefaulter
	// Prometheus is the address to export metrics on. Empty disables export.
	Prometheus string `toml:"prometheus,omitempty"`
}

// Validate checks that the address has a port.
func (cfg *Metrics) Validate() error {
	if cfg.Prometheus == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(cfg.Prometheus); err != nil {
		return serrors.Wrap("invalid prometheus address", err, "addr", cfg.Prometheus)
	}
	return nil
}

func (cfg *Metrics) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, metricsSample)
}

func (cfg *Metrics) ConfigName() string {
	return "metrics"
}

// ServePrometheus serves /metrics until ctx is done. It returns immediately
// if no address is configured.
func (cfg *Metrics) ServePrometheus(ctx context.Context) error {
	if cfg.Prometheus == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.InstrumentMetricHandler(
		prometheus.DefaultRegisterer,
		promhttp.HandlerFor(prometheus.DefaultGatherer,
			promhttp.HandlerOpts{Timeout: HandlerTimeout}),
	))
	server := &http.Server{Addr: cfg.Prometheus, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	log.Info("Exporting prometheus metrics", "addr", cfg.Prometheus)
	go func() {
		defer log.HandlePanic()
		<-ctx.Done()
		_ = server.Close()
	}()
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return serrors.Wrap("serving prometheus metrics", err)
	}
	return nil
}

// Tracing configures the jaeger tracer.
type Tracing struct {
	config.NoValidator
	Enabled bool   `toml:"enabled,omitempty"`
	Debug   bool   `toml:"debug,omitempty"`
	Agent   string `toml:"agent,omitempty"`
}

func (cfg *Tracing) InitDefaults() {
	if cfg.Agent == "" {
		cfg.Agent = net.JoinHostPort(jaeger.DefaultUDPSpanServerHost,
			strconv.Itoa(jaeger.DefaultUDPSpanServerPort))
	}
}

func (cfg *Tracing) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, tracingSample)
}

func (cfg *Tracing) ConfigName() string {
	return "tracing"
}

// NewTracer creates a tracer for the service id. When tracing is disabled
// the tracer is a no-op.
func (cfg *Tracing) NewTracer(id string) (opentracing.Tracer, io.Closer, error) {
	tc := jaegercfg.Configuration{
		ServiceName: id,
		Disabled:    !cfg.Enabled,
		Reporter:    &jaegercfg.ReporterConfig{LocalAgentHostPort: cfg.Agent},
	}
	if cfg.Debug {
		tc.Sampler = &jaegercfg.SamplerConfig{Type: jaeger.SamplerTypeConst, Param: 1}
	}
	return tc.NewTracer()
}
