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

package prefix

import (
	"net/netip"

	"go4.org/netipx"

	"github.com/rs4lk/rs4lk/pkg/private/serrors"
)

// reserved lists ranges that routers refuse to announce. Test prefixes are
// never picked from them.
var reserved = map[Version][]netip.Prefix{
	V4: {
		netip.MustParsePrefix("0.0.0.0/8"),
		netip.MustParsePrefix("127.0.0.0/8"),
		netip.MustParsePrefix("224.0.0.0/3"),
	},
	V6: {
		netip.MustParsePrefix("::/8"),
		netip.MustParsePrefix("fe80::/10"),
		netip.MustParsePrefix("ff00::/8"),
	},
}

// TargetBits returns the length of the prefixes returned by PickDisjoint.
func TargetBits(v Version) int {
	if v == V6 {
		return 48
	}
	return 24
}

func universe(v Version) netip.Prefix {
	if v == V6 {
		return netip.PrefixFrom(netip.IPv6Unspecified(), 0)
	}
	return netip.PrefixFrom(netip.IPv4Unspecified(), 0)
}

// PickDisjoint returns the lowest prefix of length TargetBits(v) that does
// not overlap any prefix of version v in occupied. Reserved ranges are
// skipped. If no such prefix exists, an error wrapping
// ErrExhaustedAddressSpace is returned.
func PickDisjoint(v Version, occupied Set) (netip.Prefix, error) {
	var b netipx.IPSetBuilder
	b.AddPrefix(universe(v))
	for _, p := range reserved[v] {
		b.RemovePrefix(p)
	}
	b.RemoveSet(occupied.ipset(v))
	free, err := b.IPSet()
	if err != nil {
		return netip.Prefix{}, serrors.Wrap("computing free address space", err)
	}
	bits := TargetBits(v)
	// Prefixes are sorted by address and each is aligned to its length, so
	// the first one that is at least as large as the target holds the lowest
	// free aligned candidate.
	for _, p := range free.Prefixes() {
		if p.Bits() <= bits {
			return netip.PrefixFrom(p.Addr(), bits), nil
		}
	}
	return netip.Prefix{}, serrors.Join(ErrExhaustedAddressSpace, nil,
		"version", v, "bits", bits, "occupied", occupied.Version(v).Len())
}
