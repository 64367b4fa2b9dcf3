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

package leak_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rs4lk/rs4lk/private/check/leak"
)

func never(context.Context) bool { return false }

func TestFixedWait(t *testing.T) {
	t.Run("elapses", func(t *testing.T) {
		w := leak.FixedWait{Duration: 10 * time.Millisecond}
		assert.NoError(t, w.Wait(context.Background(), never))
	})
	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		w := leak.FixedWait{Duration: time.Hour}
		assert.ErrorIs(t, w.Wait(ctx, never), context.Canceled)
	})
}

func TestPollWait(t *testing.T) {
	t.Run("converges", func(t *testing.T) {
		polls := 0
		w := leak.PollWait{Interval: time.Millisecond, Timeout: time.Hour}
		err := w.Wait(context.Background(), func(context.Context) bool {
			polls++
			return polls == 3
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, polls)
	})
	t.Run("times out", func(t *testing.T) {
		w := leak.PollWait{Interval: time.Millisecond, Timeout: 20 * time.Millisecond}
		assert.NoError(t, w.Wait(context.Background(), never))
	})
	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		w := leak.PollWait{Interval: time.Millisecond, Timeout: time.Hour}
		assert.ErrorIs(t, w.Wait(ctx, never), context.DeadlineExceeded)
	})
}
