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

// Package topology models the AS graph under test. Every AS is one emulated
// router. Roles are classified once, relative to the candidate AS, when the
// topology is built.
package topology

import (
	"errors"
	"iter"
	"maps"
	"net/netip"
	"slices"

	"github.com/rs4lk/rs4lk/pkg/prefix"
	"github.com/rs4lk/rs4lk/pkg/private/serrors"
)

// ErrUnknownAS is returned when an AS is not part of the topology.
var ErrUnknownAS = errors.New("unknown AS")

// Topology is an immutable AS graph with a distinguished candidate AS.
type Topology struct {
	candidate *Router
	routers   map[uint32]*Router
	asns      []uint32
}

// Candidate returns the router of the AS under test.
func (t *Topology) Candidate() *Router {
	return t.candidate
}

// Get returns the router of the AS. It fails with ErrUnknownAS if the AS is
// not part of the topology.
func (t *Topology) Get(asn uint32) (*Router, error) {
	r, ok := t.routers[asn]
	if !ok {
		return nil, serrors.WithCtx(ErrUnknownAS, "asn", asn)
	}
	return r, nil
}

// All returns all routers in ascending AS number order. The sequence can be
// iterated any number of times.
func (t *Topology) All() iter.Seq2[uint32, *Router] {
	return func(yield func(uint32, *Router) bool) {
		for _, asn := range t.asns {
			if !yield(asn, t.routers[asn]) {
				return
			}
		}
	}
}

// Filter returns the routers matching pred in ascending AS number order.
func (t *Topology) Filter(pred func(*Router) bool) []*Router {
	var out []*Router
	for _, r := range t.All() {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// Providers returns the providers of the candidate AS.
func (t *Topology) Providers() []*Router {
	return t.Filter(IsProvider)
}

// Customers returns the customers of the candidate AS.
func (t *Topology) Customers() []*Router {
	return t.Filter(IsCustomer)
}

// Len returns the number of ASes.
func (t *Topology) Len() int {
	return len(t.asns)
}

// New builds a topology from its description. The description is validated:
// AS numbers and names are unique, every link connects two known ASes at most
// once, and interface indexes are unique per router.
func New(desc Description) (*Topology, error) {
	t := &Topology{routers: make(map[uint32]*Router, len(desc.ASes))}
	names := make(map[string]uint32, len(desc.ASes))
	for _, as := range desc.ASes {
		if as.ASN == 0 {
			return nil, serrors.New("AS number must be positive", "name", as.Name)
		}
		if as.Name == "" {
			return nil, serrors.New("AS without name", "asn", as.ASN)
		}
		if _, ok := t.routers[as.ASN]; ok {
			return nil, serrors.New("duplicate AS", "asn", as.ASN)
		}
		if other, ok := names[as.Name]; ok {
			return nil, serrors.New("duplicate router name", "name", as.Name,
				"asn", as.ASN, "other", other)
		}
		names[as.Name] = as.ASN
		t.routers[as.ASN] = &Router{ASN: as.ASN, Name: as.Name}
	}
	t.asns = slices.Sorted(maps.Keys(t.routers))

	candidate, err := t.Get(desc.Candidate)
	if err != nil {
		return nil, serrors.Wrap("resolving candidate AS", err)
	}
	t.candidate = candidate

	for i, l := range desc.Links {
		if err := t.addLink(l); err != nil {
			return nil, serrors.Wrap("adding link", err, "index", i)
		}
	}
	for _, n := range candidate.Neighbours {
		n.Router.Role = roleOf(n.Link)
	}
	return t, nil
}

func (t *Topology) addLink(l LinkDescription) error {
	linkType, err := LinkTypeFromString(l.LinkTo)
	if err != nil {
		return err
	}
	a, err := t.Get(l.A.ASN)
	if err != nil {
		return err
	}
	b, err := t.Get(l.B.ASN)
	if err != nil {
		return err
	}
	if a == b {
		return serrors.New("link to self", "asn", a.ASN)
	}
	aAddrs, err := l.A.addresses()
	if err != nil {
		return err
	}
	bAddrs, err := l.B.addresses()
	if err != nil {
		return err
	}
	if err := attach(a, b, l.A.IfID, linkType, bAddrs); err != nil {
		return err
	}
	return attach(b, a, l.B.IfID, linkType.Reverse(), aAddrs)
}

func attach(local, remote *Router, ifID int, link LinkType,
	addrs map[prefix.Version][]Address) error {

	if _, ok := local.NeighbourByName(remote.Name); ok {
		return serrors.New("duplicate adjacency", "local", local.ASN, "remote", remote.ASN)
	}
	if _, ok := local.NeighbourByIfID(ifID); ok {
		return serrors.New("duplicate interface", "asn", local.ASN, "ifid", ifID)
	}
	local.Neighbours = append(local.Neighbours, &Neighbour{
		Router:    remote,
		IfID:      ifID,
		Link:      link,
		Addresses: addrs,
	})
	return nil
}

func (e EndDescription) addresses() (map[prefix.Version][]Address, error) {
	out := make(map[prefix.Version][]Address)
	for _, raw := range e.Addresses {
		a, err := raw.parse()
		if err != nil {
			return nil, serrors.Wrap("parsing link address", err, "asn", e.ASN)
		}
		v := prefix.AddrVersion(a.Addr)
		out[v] = append(out[v], a)
	}
	for _, addrs := range out {
		slices.SortFunc(addrs, func(x, y Address) int { return x.Addr.Compare(y.Addr) })
	}
	return out, nil
}

func (a AddressDescription) parse() (Address, error) {
	var addr netip.Addr
	if p, err := netip.ParsePrefix(a.Addr); err == nil {
		addr = p.Addr()
	} else if addr, err = netip.ParseAddr(a.Addr); err != nil {
		return Address{}, err
	}
	addr = addr.Unmap()
	public := IsPublicAddr(addr)
	if a.Public != nil {
		public = *a.Public
	}
	return Address{Addr: addr, Public: public}, nil
}
