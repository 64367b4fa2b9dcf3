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

package prefix_test

import (
	"math/rand"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go4.org/netipx"

	"github.com/rs4lk/rs4lk/pkg/prefix"
)

func TestNewSet(t *testing.T) {
	s := prefix.NewSet(
		netip.MustParsePrefix("10.0.0.1/24"),
		netip.MustParsePrefix("10.0.0.0/24"),
		netip.MustParsePrefix("::ffff:192.0.2.0/120"),
		netip.Prefix{},
	)
	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/24"),
		netip.MustParsePrefix("192.0.2.0/24"),
	}, s.Prefixes())
	assert.True(t, s.Contains(netip.MustParsePrefix("10.0.0.0/24")))
	assert.False(t, s.Contains(netip.MustParsePrefix("10.0.0.0/25")))
}

func TestParseSet(t *testing.T) {
	s, err := prefix.ParseSet("203.0.113.0/24, 2001:db8::/32,")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Version(prefix.V6).Len())

	_, err = prefix.ParseSet("203.0.113.0/33")
	assert.Error(t, err)
}

func TestDropDefault(t *testing.T) {
	s := prefix.MustParseSet("0.0.0.0/0,203.0.113.0/24,::/0,2001:db8::/32")
	assert.True(t, prefix.MustParseSet("203.0.113.0/24,2001:db8::/32").Equal(
		prefix.DropDefault(s)))
	assert.Equal(t, 4, s.Len(), "input must not change")
}

func TestAggregate(t *testing.T) {
	testCases := map[string]struct {
		input   string
		version prefix.Version
		want    string
	}{
		"siblings merge": {
			input:   "10.0.0.0/25,10.0.0.128/25",
			version: prefix.V4,
			want:    "10.0.0.0/24",
		},
		"non adjacent stay": {
			input:   "10.0.0.0/24,10.0.2.0/24",
			version: prefix.V4,
			want:    "10.0.0.0/24,10.0.2.0/24",
		},
		"adjacent without common parent stay": {
			input:   "10.0.1.0/24,10.0.2.0/24",
			version: prefix.V4,
			want:    "10.0.1.0/24,10.0.2.0/24",
		},
		"contained dropped": {
			input:   "10.0.0.0/16,10.0.3.0/24",
			version: prefix.V4,
			want:    "10.0.0.0/16",
		},
		"cascading merge": {
			input:   "10.0.0.0/26,10.0.0.64/26,10.0.0.128/25",
			version: prefix.V4,
			want:    "10.0.0.0/24",
		},
		"versions kept apart": {
			input:   "10.0.0.0/25,10.0.0.128/25,2001:db8::/33,2001:db8:8000::/33",
			version: prefix.V6,
			want:    "2001:db8::/32",
		},
		"empty": {
			input:   "",
			version: prefix.V4,
			want:    "",
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got := prefix.Aggregate(prefix.MustParseSet(tc.input), tc.version)
			want := prefix.MustParseSet(tc.want)
			assert.True(t, want.Equal(got), "want %s, got %s", want, got)
		})
	}
}

func randomSet(r *rand.Rand, v prefix.Version, n int) prefix.Set {
	prefixes := make([]netip.Prefix, 0, n)
	for i := 0; i < n; i++ {
		var a netip.Addr
		var bits int
		if v == prefix.V4 {
			// Keep addresses in a small range so that merges happen.
			a = netip.AddrFrom4([4]byte{10, 0, byte(r.Intn(4)), byte(r.Intn(256))})
			bits = 22 + r.Intn(9)
		} else {
			a = netip.AddrFrom16([16]byte{0x20, 0x01, 0x0d, 0xb8, 0, byte(r.Intn(4))})
			bits = 44 + r.Intn(5)
		}
		prefixes = append(prefixes, netip.PrefixFrom(a, bits))
	}
	return prefix.NewSet(prefixes...)
}

func coverage(s prefix.Set) *netipx.IPSet {
	var b netipx.IPSetBuilder
	for _, p := range s.Prefixes() {
		b.AddPrefix(p)
	}
	set, _ := b.IPSet()
	return set
}

func TestAggregateProperties(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, v := range prefix.Versions {
		for i := 0; i < 200; i++ {
			in := randomSet(r, v, 1+r.Intn(12))
			agg := prefix.Aggregate(in, v)

			assert.True(t, agg.Equal(prefix.Aggregate(agg, v)), "idempotence for %s", in)
			assert.True(t, coverage(in).Equal(coverage(agg)), "coverage for %s", in)
			ps := agg.Prefixes()
			for a := range ps {
				for b := range ps {
					if a != b {
						assert.False(t, ps[a].Overlaps(ps[b]), "%s overlaps %s", ps[a], ps[b])
					}
				}
			}
		}
	}
}

func TestPickDisjoint(t *testing.T) {
	testCases := map[string]struct {
		version  prefix.Version
		occupied string
		want     string
	}{
		"lowest free v4 skips reserved": {
			version:  prefix.V4,
			occupied: "203.0.113.0/24",
			want:     "1.0.0.0/24",
		},
		"skips occupied": {
			version:  prefix.V4,
			occupied: "1.0.0.0/23",
			want:     "1.0.2.0/24",
		},
		"skips partially occupied": {
			version:  prefix.V4,
			occupied: "1.0.0.128/25",
			want:     "1.0.1.0/24",
		},
		"ignores other version": {
			version:  prefix.V4,
			occupied: "::/1",
			want:     "1.0.0.0/24",
		},
		"lowest free v6": {
			version:  prefix.V6,
			occupied: "2001:db8::/32",
			want:     "100::/48",
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got, err := prefix.PickDisjoint(tc.version, prefix.MustParseSet(tc.occupied))
			require.NoError(t, err)
			assert.Equal(t, netip.MustParsePrefix(tc.want), got)
		})
	}
}

func TestPickDisjointExhausted(t *testing.T) {
	_, err := prefix.PickDisjoint(prefix.V4, prefix.MustParseSet("0.0.0.0/0"))
	assert.ErrorIs(t, err, prefix.ErrExhaustedAddressSpace)

	// Only a fragment smaller than the target length is left.
	var b netipx.IPSetBuilder
	b.AddPrefix(netip.MustParsePrefix("0.0.0.0/0"))
	b.RemovePrefix(netip.MustParsePrefix("1.2.3.0/25"))
	full, err := b.IPSet()
	require.NoError(t, err)
	prefixes := full.Prefixes()
	_, err = prefix.PickDisjoint(prefix.V4, prefix.NewSet(prefixes...))
	assert.ErrorIs(t, err, prefix.ErrExhaustedAddressSpace)
	// The other version is not affected.
	_, err = prefix.PickDisjoint(prefix.V6, prefix.NewSet(prefixes...))
	assert.NoError(t, err)
}

func TestPickDisjointProperty(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, v := range prefix.Versions {
		for i := 0; i < 100; i++ {
			occupied := randomSet(r, v, 1+r.Intn(20))
			got, err := prefix.PickDisjoint(v, occupied)
			require.NoError(t, err)
			assert.Equal(t, prefix.TargetBits(v), got.Bits())
			assert.Equal(t, v, prefix.VersionOf(got))
			assert.False(t, prefix.Overlaps(occupied, got), "%s overlaps %s", got, occupied)
		}
	}
}
