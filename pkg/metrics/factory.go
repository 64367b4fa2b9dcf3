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


package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Factory creates prometheus backed metrics and registers their collectors.
type Factory struct {
	reg prometheus.Registerer
}

// Option customizes a Factory.
type Option func(*Factory)

// WithRegistry registers collectors with reg instead of the default
// registerer.
func WithRegistry(reg prometheus.Registerer) Option {
	return func(f *Factory) {
		f.reg = reg
	}
}

// NewFactory returns a Factory that registers with the default registerer
// unless an option overrides it.
func NewFactory(opts ...Option) Factory {
	f := Factory{reg: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// Counter registers a counter vector with the given label names. It panics if
// the registration fails.
func (f Factory) Counter(opts prometheus.CounterOpts, labels ...string) Counter {
	cv := prometheus.NewCounterVec(opts, labels)
	f.reg.MustRegister(cv)
	return NewPromCounter(cv)
}

// Histogram registers a histogram vector with the given label names. It
// panics if the registration fails.
func (f Factory) Histogram(opts prometheus.HistogramOpts, labels ...string) Histogram {
	hv := prometheus.NewHistogramVec(opts, labels)
	f.reg.MustRegister(hv)
	return NewPromHistogram(hv)
}
