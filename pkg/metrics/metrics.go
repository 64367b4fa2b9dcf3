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

// Package metrics provides label-aware counter and histogram interfaces with
// prometheus backed implementations. The helpers are nil safe, so code can
// be instrumented without requiring metrics to be set up.
package metrics

// Counter is a monotonically increasing value.
type Counter interface {
	With(labelValues ...string) Counter
	Add(delta float64)
}

// Histogram observes values into buckets.
type Histogram interface {
	With(labelValues ...string) Histogram
	Observe(value float64)
}

// CounterInc increases c by one. It is a no-op if c is nil.
func CounterInc(c Counter) {
	CounterAdd(c, 1)
}

// CounterAdd increases c by delta. It is a no-op if c is nil.
func CounterAdd(c Counter, delta float64) {
	if c == nil {
		return
	}
	c.Add(delta)
}

// CounterWith returns c with the given label pairs applied, or nil if c is
// nil.
func CounterWith(c Counter, labelValues ...string) Counter {
	if c == nil {
		return nil
	}
	return c.With(labelValues...)
}

// HistogramObserve records value in h. It is a no-op if h is nil.
func HistogramObserve(h Histogram, value float64) {
	if h == nil {
		return
	}
	h.Observe(value)
}

// HistogramWith returns h with the given label pairs applied, or nil if h is
// nil.
func HistogramWith(h Histogram, labelValues ...string) Histogram {
	if h == nil {
		return nil
	}
	return h.With(labelValues...)
}

// labelValues is a flat list of label name and value pairs.
type labelValues []string

// With returns a copy of lvs extended by the given pairs. A dangling name is
// paired with "unknown".
func (lvs labelValues) With(pairs ...string) labelValues {
	if len(pairs)%2 != 0 {
		pairs = append(pairs, "unknown")
	}
	result := make(labelValues, len(lvs), len(lvs)+len(pairs))
	copy(result, lvs)
	return append(result, pairs...)
}
