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

package check

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rs4lk/rs4lk/pkg/metrics"
	"github.com/rs4lk/rs4lk/pkg/private/prom"
)

// Metrics are the metrics of the check runner.
type Metrics struct {
	// Results counts results by check and result.
	Results metrics.Counter
	// Duration observes the run time of each check.
	Duration metrics.Histogram
}

// NewMetrics creates and registers the runner metrics.
func NewMetrics(opts ...metrics.Option) Metrics {
	f := metrics.NewFactory(opts...)
	return Metrics{
		Results: f.Counter(prometheus.CounterOpts{
			Namespace: prom.Namespace,
			Name:      "check_results_total",
			Help:      "Number of check results, by check and result.",
		}, prom.LabelCheck, prom.LabelResult),
		Duration: f.Histogram(prometheus.HistogramOpts{
			Namespace: prom.Namespace,
			Name:      "check_duration_seconds",
			Help:      "Duration of check runs in seconds.",
			Buckets:   prom.CheckDurationBuckets,
		}, prom.LabelCheck),
	}
}
