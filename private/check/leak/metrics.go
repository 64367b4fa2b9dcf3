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

package leak

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rs4lk/rs4lk/pkg/metrics"
	"github.com/rs4lk/rs4lk/pkg/private/prom"
)

// Metrics are the metrics of the route leak check.
type Metrics struct {
	// SubChecks counts sub-check verdicts by result.
	SubChecks metrics.Counter
}

// NewMetrics creates and registers the route leak metrics.
func NewMetrics(opts ...metrics.Option) Metrics {
	return Metrics{
		SubChecks: metrics.NewFactory(opts...).Counter(prometheus.CounterOpts{
			Namespace: prom.Namespace,
			Subsystem: Name,
			Name:      "subchecks_total",
			Help:      "Number of route leak sub-checks, by result.",
		}, prom.LabelResult),
	}
}

func (m Metrics) observe(r subCheck) {
	result := prom.Failure
	if r.Passed {
		result = prom.Success
	}
	metrics.CounterInc(metrics.CounterWith(m.SubChecks, prom.LabelResult, result))
}
