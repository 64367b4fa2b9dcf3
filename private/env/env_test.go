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

package env_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rs4lk/rs4lk/private/config"
	"github.com/rs4lk/rs4lk/private/env"
)

func TestMetricsSample(t *testing.T) {
	var buf bytes.Buffer
	var sample env.Metrics
	sample.Sample(&buf, nil, nil)
	var cfg env.Metrics
	require.NoError(t, config.Decode(buf.Bytes(), &cfg))
	assert.Equal(t, sample, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestMetricsValidate(t *testing.T) {
	assert.NoError(t, (&env.Metrics{Prometheus: "127.0.0.1:9090"}).Validate())
	assert.Error(t, (&env.Metrics{Prometheus: "127.0.0.1"}).Validate())
}

func TestServePrometheusDisabled(t *testing.T) {
	var cfg env.Metrics
	assert.NoError(t, cfg.ServePrometheus(context.Background()))
}

func TestTracingSample(t *testing.T) {
	var buf bytes.Buffer
	var sample env.Tracing
	sample.Sample(&buf, nil, nil)
	var cfg env.Tracing
	require.NoError(t, config.Decode(buf.Bytes(), &cfg))
	var defaults env.Tracing
	defaults.InitDefaults()
	assert.Equal(t, defaults, cfg)
}

func TestNewTracerDisabled(t *testing.T) {
	cfg := env.Tracing{}
	cfg.InitDefaults()
	tracer, closer, err := cfg.NewTracer("rs4lk")
	require.NoError(t, err)
	assert.NotNil(t, tracer)
	assert.NoError(t, closer.Close())
}
