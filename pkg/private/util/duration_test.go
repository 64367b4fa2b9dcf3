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

package util_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rs4lk/rs4lk/pkg/private/util"
)

func TestParseDuration(t *testing.T) {
	testCases := map[string]struct {
		input     string
		want      time.Duration
		assertErr assert.ErrorAssertionFunc
	}{
		"seconds":  {input: "20s", want: 20 * time.Second, assertErr: assert.NoError},
		"compound": {input: "1m30s", want: 90 * time.Second, assertErr: assert.NoError},
		"days":     {input: "2d", want: 48 * time.Hour, assertErr: assert.NoError},
		"weeks":    {input: "1w", want: 7 * 24 * time.Hour, assertErr: assert.NoError},
		"garbage":  {input: "soon", assertErr: assert.Error},
		"bad days": {input: "xd", assertErr: assert.Error},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got, err := util.ParseDuration(tc.input)
			tc.assertErr(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDurWrapRoundTrip(t *testing.T) {
	for _, d := range []time.Duration{0, 20 * time.Second, 48 * time.Hour, 14 * 24 * time.Hour} {
		w := util.DurWrap{Duration: d}
		text, err := w.MarshalText()
		require.NoError(t, err)
		var back util.DurWrap
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, d, back.Duration)
	}
}
