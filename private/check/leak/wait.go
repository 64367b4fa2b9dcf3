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
	"context"
	"time"
)

// Condition reports whether the announced test prefix has converged, that
// is whether it is already visible where the check looks for it.
type Condition func(ctx context.Context) bool

// Waiter waits for an announcement to propagate through the emulated
// network.
type Waiter interface {
	// Wait blocks until propagation is assumed complete. It returns the
	// context error if ctx is done first.
	Wait(ctx context.Context, converged Condition) error
}

// FixedWait waits for a fixed duration and ignores the condition.
type FixedWait struct {
	Duration time.Duration
}

func (w FixedWait) Wait(ctx context.Context, _ Condition) error {
	t := time.NewTimer(w.Duration)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PollWait evaluates the condition every Interval and returns as soon as it
// holds, or after Timeout. Reaching the timeout is not an error: a prefix
// that never shows up is the expected outcome of a passing check.
type PollWait struct {
	Interval time.Duration
	Timeout  time.Duration
}

func (w PollWait) Wait(ctx context.Context, converged Condition) error {
	deadline := time.NewTimer(w.Timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return nil
		case <-ticker.C:
			if converged(ctx) {
				return nil
			}
		}
	}
}
