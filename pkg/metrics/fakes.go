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
	"strings"
	"sync"
)

// node holds the value of one labeled series.
type node struct {
	mtx sync.Mutex
	v   float64
}

func (b *node) add(delta float64) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	if delta < 0 {
		panic("counter increment value is < 0")
	}
	b.v += delta
}

func (b *node) value() float64 {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.v
}

// series maps the joined label values to their node.
type series struct {
	mtx   sync.Mutex
	nodes map[string]*node
}

func (s *series) get(lvs labelValues) *node {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	key := strings.Join(lvs, ",")
	n, ok := s.nodes[key]
	if !ok {
		n = &node{}
		s.nodes[key] = n
	}
	return n
}

// TestCounter implements a counter for use in tests. Counters derived with
// With share their series with the parent, so the value of a labeled series
// can be read back from any counter of the same family.
type TestCounter struct {
	*node
	lvs    labelValues
	series *series
}

// NewTestCounter creates a new counter for use in tests.
func NewTestCounter() *TestCounter {
	s := &series{nodes: make(map[string]*node)}
	return &TestCounter{node: s.get(nil), series: s}
}

// With returns the counter of the labeled series.
func (c *TestCounter) With(pairs ...string) Counter {
	lvs := c.lvs.With(pairs...)
	return &TestCounter{node: c.series.get(lvs), lvs: lvs, series: c.series}
}

// Add increases the value of the series by delta. Panics if delta is
// negative.
func (c *TestCounter) Add(delta float64) {
	c.add(delta)
}

// CounterValue extracts the value out of a TestCounter. If the argument is
// not a *TestCounter, CounterValue will panic.
func CounterValue(c Counter) float64 {
	return c.(*TestCounter).value()
}
