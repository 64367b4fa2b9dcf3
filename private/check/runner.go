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
	"context"
	"errors"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"

	"github.com/rs4lk/rs4lk/pkg/log"
	"github.com/rs4lk/rs4lk/pkg/metrics"
	"github.com/rs4lk/rs4lk/pkg/private/prom"
	"github.com/rs4lk/rs4lk/pkg/private/serrors"
	"github.com/rs4lk/rs4lk/pkg/topology"
)

// Result is the outcome of a single check.
type Result struct {
	Name        string
	DisplayName string
	Passed      bool
	Message     string
	Err         error
	Duration    time.Duration
}

// Status classifies the result with one of the prom result values.
func (r Result) Status() string {
	switch {
	case r.Err == nil && r.Passed:
		return prom.Success
	case r.Err == nil:
		return prom.Failure
	case errors.Is(r.Err, context.Canceled):
		return prom.Skipped
	case serrors.IsTimeout(r.Err) || errors.Is(r.Err, context.DeadlineExceeded):
		return prom.ErrTimeout
	default:
		return prom.ErrInternal
	}
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if r.Err != nil || !r.Passed {
			return false
		}
	}
	return true
}

// Runner runs checks in order against one candidate.
type Runner struct {
	Checks  []Check
	Metrics Metrics
}

// Run executes all checks and returns one result per check. Once ctx is
// done, the remaining checks are not started and report the context error.
func (r Runner) Run(ctx context.Context, cfg Configuration, topo *topology.Topology,
	net Network) []Result {

	results := make([]Result, 0, len(r.Checks))
	for _, c := range r.Checks {
		if err := ctx.Err(); err != nil {
			results = append(results, Result{
				Name:        c.Name(),
				DisplayName: c.DisplayName(),
				Err:         err,
			})
			continue
		}
		res := r.run(ctx, c, cfg, topo, net)
		metrics.CounterInc(metrics.CounterWith(r.Metrics.Results,
			prom.LabelCheck, res.Name, prom.LabelResult, res.Status()))
		metrics.HistogramObserve(metrics.HistogramWith(r.Metrics.Duration,
			prom.LabelCheck, res.Name), res.Duration.Seconds())
		results = append(results, res)
	}
	return results
}

func (r Runner) run(ctx context.Context, c Check, cfg Configuration,
	topo *topology.Topology, net Network) Result {

	span, ctx := opentracing.StartSpanFromContext(ctx, "check."+c.Name())
	defer span.Finish()
	ctx, logger := log.WithLabels(ctx, "check", c.Name())

	logger.Info("Running check", "display_name", c.DisplayName())
	start := time.Now()
	passed, msg, err := c.Verify(ctx, cfg, topo, net)
	res := Result{
		Name:        c.Name(),
		DisplayName: c.DisplayName(),
		Passed:      passed && err == nil,
		Message:     msg,
		Err:         err,
		Duration:    time.Since(start),
	}
	span.SetTag("passed", res.Passed)
	switch {
	case err != nil:
		ext.Error.Set(span, true)
		logger.Error("Check could not complete", "err", err, "duration", res.Duration)
	case passed:
		logger.Info("Check passed", "duration", res.Duration)
	default:
		logger.Info("Check not passed", "msg", msg, "duration", res.Duration)
	}
	return res
}
