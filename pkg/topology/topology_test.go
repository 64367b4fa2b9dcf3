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

package topology_test

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rs4lk/rs4lk/pkg/prefix"
	"github.com/rs4lk/rs4lk/pkg/topology"
)

func loadTestTopology(t *testing.T) *topology.Topology {
	t.Helper()
	topo, err := topology.LoadFile("testdata/topology.yml")
	require.NoError(t, err)
	return topo
}

func TestRoles(t *testing.T) {
	topo := loadTestTopology(t)
	want := map[uint32]topology.Role{
		100: topology.RoleNone,
		200: topology.RoleProvider,
		300: topology.RoleCustomer,
		400: topology.RoleCustomer,
		500: topology.RolePeer,
		600: topology.RoleNone,
	}
	for asn, role := range want {
		r, err := topo.Get(asn)
		require.NoError(t, err)
		assert.Equal(t, role, r.Role, "AS %d", asn)
	}
	assert.Equal(t, uint32(100), topo.Candidate().ASN)
}

func TestGetUnknown(t *testing.T) {
	topo := loadTestTopology(t)
	_, err := topo.Get(65000)
	assert.ErrorIs(t, err, topology.ErrUnknownAS)
}

func TestAllIsOrderedAndRestartable(t *testing.T) {
	topo := loadTestTopology(t)
	collect := func() []uint32 {
		var asns []uint32
		for asn, r := range topo.All() {
			assert.Equal(t, asn, r.ASN)
			asns = append(asns, asn)
		}
		return asns
	}
	first := collect()
	assert.Equal(t, []uint32{100, 200, 300, 400, 500, 600}, first)
	assert.Equal(t, first, collect())

	// Early break stops the iteration.
	n := 0
	for range topo.All() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestFilter(t *testing.T) {
	topo := loadTestTopology(t)
	names := func(rs []*topology.Router) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.Name)
		}
		return out
	}
	assert.Equal(t, []string{"as200"}, names(topo.Providers()))
	assert.Equal(t, []string{"as300", "as400"}, names(topo.Customers()))
}

func TestNeighbours(t *testing.T) {
	topo := loadTestTopology(t)
	provider, err := topo.Get(200)
	require.NoError(t, err)

	n, ok := provider.NeighbourByName("as100")
	require.True(t, ok)
	assert.Equal(t, topology.Child, n.Link)
	assert.Equal(t, 1, n.IfID)
	addr, ok := n.PublicAddress(prefix.V4)
	require.True(t, ok)
	assert.Equal(t, netip.MustParseAddr("198.51.100.1"), addr)
	addr, ok = n.PublicAddress(prefix.V6)
	require.True(t, ok)
	assert.Equal(t, netip.MustParseAddr("2001:db8:1::1"), addr)

	_, ok = provider.NeighbourByName("as300")
	assert.False(t, ok)

	customer, err := topo.Get(400)
	require.NoError(t, err)
	n, ok = customer.NeighbourByName("as100")
	require.True(t, ok)
	assert.Equal(t, []netip.Addr{netip.MustParseAddr("10.1.0.1")},
		n.PublicAddresses(prefix.V4), "private address is filtered, override is kept")
	_, ok = n.PublicAddress(prefix.V6)
	assert.False(t, ok)
}

func TestPublicAddressPicksLowest(t *testing.T) {
	n := &topology.Neighbour{Addresses: map[prefix.Version][]topology.Address{
		prefix.V4: {
			{Addr: netip.MustParseAddr("198.51.100.1"), Public: true},
			{Addr: netip.MustParseAddr("198.51.100.9"), Public: true},
		},
	}}
	addr, ok := n.PublicAddress(prefix.V4)
	require.True(t, ok)
	assert.Equal(t, netip.MustParseAddr("198.51.100.1"), addr)
}

func TestParseErrors(t *testing.T) {
	testCases := map[string]string{
		"unknown candidate": `
candidate: 1
ases: [{asn: 2, name: a}]
`,
		"zero asn": `
candidate: 0
ases: [{asn: 0, name: a}]
`,
		"duplicate asn": `
candidate: 1
ases: [{asn: 1, name: a}, {asn: 1, name: b}]
`,
		"duplicate name": `
candidate: 1
ases: [{asn: 1, name: a}, {asn: 2, name: a}]
`,
		"duplicate adjacency": `
candidate: 1
ases: [{asn: 1, name: a}, {asn: 2, name: b}]
links:
  - {a: {asn: 1, ifid: 1}, b: {asn: 2, ifid: 1}, link_to: PARENT}
  - {a: {asn: 1, ifid: 2}, b: {asn: 2, ifid: 2}, link_to: PEER}
`,
		"duplicate interface": `
candidate: 1
ases: [{asn: 1, name: a}, {asn: 2, name: b}, {asn: 3, name: c}]
links:
  - {a: {asn: 1, ifid: 1}, b: {asn: 2, ifid: 1}, link_to: PARENT}
  - {a: {asn: 1, ifid: 1}, b: {asn: 3, ifid: 1}, link_to: CHILD}
`,
		"bad link type": `
candidate: 1
ases: [{asn: 1, name: a}, {asn: 2, name: b}]
links:
  - {a: {asn: 1, ifid: 1}, b: {asn: 2, ifid: 1}, link_to: SIBLING}
`,
		"unknown link end": `
candidate: 1
ases: [{asn: 1, name: a}]
links:
  - {a: {asn: 1, ifid: 1}, b: {asn: 9, ifid: 1}, link_to: PEER}
`,
		"bad address": `
candidate: 1
ases: [{asn: 1, name: a}, {asn: 2, name: b}]
links:
  - {a: {asn: 1, ifid: 1, addresses: [nope]}, b: {asn: 2, ifid: 1}, link_to: PEER}
`,
		"unknown field": `
candidate: 1
colour: blue
ases: [{asn: 1, name: a}]
`,
	}
	for name, raw := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := topology.Parse([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestIsPublicAddr(t *testing.T) {
	testCases := map[string]bool{
		"198.51.100.1": true,
		"2001:db8::1":  true,
		"10.0.0.1":     false,
		"100.64.0.1":   false,
		"127.0.0.1":    false,
		"fe80::1":      false,
		"fd00::1":      false,
	}
	for addr, want := range testCases {
		t.Run(addr, func(t *testing.T) {
			assert.Equal(t, want, topology.IsPublicAddr(netip.MustParseAddr(addr)))
		})
	}
}

func TestLinkTypeReverse(t *testing.T) {
	assert.Equal(t, topology.Child, topology.Parent.Reverse())
	assert.Equal(t, topology.Parent, topology.Child.Reverse())
	assert.Equal(t, topology.Peer, topology.Peer.Reverse())
	assert.Equal(t, topology.Core, topology.Core.Reverse())
}
