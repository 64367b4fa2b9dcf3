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

// Package prefix implements set algebra over IPv4 and IPv6 network prefixes:
// aggregation into the minimal covering set and selection of a free prefix
// that does not overlap a set of prefixes in use.
//
// Sets are values. Every operation returns a new Set and leaves its inputs
// untouched, so a Set can be shared between pipeline stages.
package prefix

import (
	"errors"
	"fmt"
	"net/netip"
	"slices"
	"strings"

	"go4.org/netipx"

	"github.com/rs4lk/rs4lk/pkg/private/serrors"
)

// ErrExhaustedAddressSpace is returned when no free prefix of the requested
// length exists.
var ErrExhaustedAddressSpace = errors.New("exhausted address space")

// Version is an IP version.
type Version int

const (
	V4 Version = 4
	V6 Version = 6
)

// Versions lists the supported IP versions in processing order.
var Versions = []Version{V4, V6}

func (v Version) String() string {
	return fmt.Sprintf("IPv%d", int(v))
}

// Bits returns the address length of the version.
func (v Version) Bits() int {
	if v == V6 {
		return 128
	}
	return 32
}

// VersionOf returns the IP version of p.
func VersionOf(p netip.Prefix) Version {
	if p.Addr().Is4() {
		return V4
	}
	return V6
}

// AddrVersion returns the IP version of a.
func AddrVersion(a netip.Addr) Version {
	if a.Unmap().Is4() {
		return V4
	}
	return V6
}

// Set is an immutable set of prefixes of both IP versions. The zero value is
// the empty set.
type Set struct {
	prefixes []netip.Prefix
}

// NewSet returns the set of the given prefixes. Host bits are cleared and
// IPv4-mapped IPv6 prefixes are converted to IPv4. Invalid prefixes are
// ignored.
func NewSet(prefixes ...netip.Prefix) Set {
	out := make([]netip.Prefix, 0, len(prefixes))
	for _, p := range prefixes {
		if p = normalize(p); p.IsValid() {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, netipx.ComparePrefix)
	return Set{prefixes: slices.Compact(out)}
}

func normalize(p netip.Prefix) netip.Prefix {
	if !p.IsValid() {
		return netip.Prefix{}
	}
	if a := p.Addr(); a.Is4In6() {
		if p.Bits() < 96 {
			return netip.Prefix{}
		}
		p = netip.PrefixFrom(a.Unmap(), p.Bits()-96)
	}
	return p.Masked()
}

// ParseSet parses a comma separated list of prefixes.
func ParseSet(s string) (Set, error) {
	var prefixes []netip.Prefix
	for _, raw := range strings.Split(s, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		p, err := netip.ParsePrefix(raw)
		if err != nil {
			return Set{}, serrors.Wrap("parsing prefix", err, "input", raw)
		}
		prefixes = append(prefixes, p)
	}
	return NewSet(prefixes...), nil
}

// MustParseSet is ParseSet that panics on error.
func MustParseSet(s string) Set {
	set, err := ParseSet(s)
	if err != nil {
		panic(err)
	}
	return set
}

// Prefixes returns a sorted copy of the prefixes in the set.
func (s Set) Prefixes() []netip.Prefix {
	return slices.Clone(s.prefixes)
}

// Len returns the number of prefixes.
func (s Set) Len() int {
	return len(s.prefixes)
}

// IsEmpty reports whether the set has no prefixes.
func (s Set) IsEmpty() bool {
	return len(s.prefixes) == 0
}

// Contains reports whether p is an element of the set. Containment in a
// larger element does not count.
func (s Set) Contains(p netip.Prefix) bool {
	p = normalize(p)
	_, found := slices.BinarySearchFunc(s.prefixes, p, netipx.ComparePrefix)
	return found
}

// Union returns the set of prefixes in s or o.
func (s Set) Union(o Set) Set {
	return NewSet(append(slices.Clone(s.prefixes), o.prefixes...)...)
}

// Version returns the subset of prefixes of version v.
func (s Set) Version(v Version) Set {
	return s.filter(func(p netip.Prefix) bool { return VersionOf(p) == v })
}

// Equal reports whether both sets have the same elements.
func (s Set) Equal(o Set) bool {
	return slices.Equal(s.prefixes, o.prefixes)
}

func (s Set) String() string {
	parts := make([]string, 0, len(s.prefixes))
	for _, p := range s.prefixes {
		parts = append(parts, p.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (s Set) filter(keep func(netip.Prefix) bool) Set {
	out := make([]netip.Prefix, 0, len(s.prefixes))
	for _, p := range s.prefixes {
		if keep(p) {
			out = append(out, p)
		}
	}
	return Set{prefixes: out}
}

// DropDefault returns s without default routes.
func DropDefault(s Set) Set {
	return s.filter(func(p netip.Prefix) bool { return p.Bits() != 0 })
}

// Aggregate returns the minimal set of prefixes of version v that covers the
// same addresses as the prefixes of version v in s. Prefixes of the other
// version are not part of the result.
func Aggregate(s Set, v Version) Set {
	return NewSet(s.ipset(v).Prefixes()...)
}

// Overlaps reports whether p intersects any element of s.
func Overlaps(s Set, p netip.Prefix) bool {
	p = normalize(p)
	for _, q := range s.prefixes {
		if q.Overlaps(p) {
			return true
		}
	}
	return false
}

func (s Set) ipset(v Version) *netipx.IPSet {
	var b netipx.IPSetBuilder
	for _, p := range s.prefixes {
		if VersionOf(p) == v {
			b.AddPrefix(p)
		}
	}
	// The builder only fails on invalid input, which NewSet filters out.
	ipset, _ := b.IPSet()
	return ipset
}
