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

package topology

import (
	"net/netip"
	"slices"
	"strings"

	"github.com/rs4lk/rs4lk/pkg/prefix"
	"github.com/rs4lk/rs4lk/pkg/private/serrors"
)

// LinkType is the business relationship of the remote end of a link, as seen
// from the local end.
type LinkType int

const (
	// Unset is the zero value and never valid in a loaded topology.
	Unset LinkType = iota
	// Core indicates a link to a settlement-free core neighbour.
	Core
	// Parent indicates a link to an upstream provider.
	Parent
	// Child indicates a link to a downstream customer.
	Child
	// Peer indicates a link to a peer.
	Peer
)

const (
	CoreLinkName   = "CORE"
	ParentLinkName = "PARENT"
	ChildLinkName  = "CHILD"
	PeerLinkName   = "PEER"
)

// LinkTypeFromString parses the link type. Parsing is case insensitive.
func LinkTypeFromString(s string) (LinkType, error) {
	switch strings.ToUpper(s) {
	case CoreLinkName:
		return Core, nil
	case ParentLinkName:
		return Parent, nil
	case ChildLinkName:
		return Child, nil
	case PeerLinkName:
		return Peer, nil
	default:
		return Unset, serrors.New("unknown link type", "type", s)
	}
}

func (l LinkType) String() string {
	switch l {
	case Core:
		return CoreLinkName
	case Parent:
		return ParentLinkName
	case Child:
		return ChildLinkName
	case Peer:
		return PeerLinkName
	default:
		return "UNSET"
	}
}

// Reverse returns the link type as seen from the remote end.
func (l LinkType) Reverse() LinkType {
	switch l {
	case Parent:
		return Child
	case Child:
		return Parent
	default:
		return l
	}
}

// Role is the relationship of a router to the candidate AS.
type Role int

const (
	RoleNone Role = iota
	RoleProvider
	RoleCustomer
	RolePeer
)

func (r Role) String() string {
	switch r {
	case RoleProvider:
		return "provider"
	case RoleCustomer:
		return "customer"
	case RolePeer:
		return "peer"
	default:
		return "none"
	}
}

func roleOf(l LinkType) Role {
	switch l {
	case Parent:
		return RoleProvider
	case Child:
		return RoleCustomer
	case Peer, Core:
		return RolePeer
	default:
		return RoleNone
	}
}

// Address is an IP address assigned on a link.
type Address struct {
	Addr   netip.Addr
	Public bool
}

// IsPublicAddr reports whether a is globally routable. Private, shared,
// loopback, link-local and unspecified addresses are not.
func IsPublicAddr(a netip.Addr) bool {
	a = a.Unmap()
	switch {
	case !a.IsValid(), a.IsUnspecified(), a.IsLoopback(), a.IsPrivate(),
		a.IsLinkLocalUnicast(), a.IsMulticast():
		return false
	case sharedAddressSpace.Contains(a):
		return false
	}
	return true
}

var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

// Neighbour is an adjacency of a router.
type Neighbour struct {
	// Router is the remote router.
	Router *Router
	// IfID is the local interface index of the link.
	IfID int
	// Link is the relationship of the remote router.
	Link LinkType
	// Addresses holds the addresses of the remote router on the link, per
	// IP version and sorted.
	Addresses map[prefix.Version][]Address
}

// PublicAddresses returns the public addresses of version v, lowest first.
func (n *Neighbour) PublicAddresses(v prefix.Version) []netip.Addr {
	var out []netip.Addr
	for _, a := range n.Addresses[v] {
		if a.Public {
			out = append(out, a.Addr)
		}
	}
	return out
}

// PublicAddress returns the lowest public address of version v. Well formed
// topologies have at most one per link and version.
func (n *Neighbour) PublicAddress(v prefix.Version) (netip.Addr, bool) {
	addrs := n.PublicAddresses(v)
	if len(addrs) == 0 {
		return netip.Addr{}, false
	}
	return addrs[0], true
}

// Router is an AS in the topology. Each AS is represented by exactly one
// emulated router.
type Router struct {
	ASN        uint32
	Name       string
	Role       Role
	Neighbours []*Neighbour
}

// NeighbourByName returns the adjacency to the router with the given name.
func (r *Router) NeighbourByName(name string) (*Neighbour, bool) {
	i := slices.IndexFunc(r.Neighbours, func(n *Neighbour) bool {
		return n.Router.Name == name
	})
	if i < 0 {
		return nil, false
	}
	return r.Neighbours[i], true
}

// NeighbourByIfID returns the adjacency on the given interface.
func (r *Router) NeighbourByIfID(ifID int) (*Neighbour, bool) {
	i := slices.IndexFunc(r.Neighbours, func(n *Neighbour) bool {
		return n.IfID == ifID
	})
	if i < 0 {
		return nil, false
	}
	return r.Neighbours[i], true
}

func (r *Router) String() string {
	return r.Name
}

// IsProvider reports whether r is a provider of the candidate AS.
func IsProvider(r *Router) bool {
	return r.Role == RoleProvider
}

// IsCustomer reports whether r is a customer of the candidate AS.
func IsCustomer(r *Router) bool {
	return r.Role == RoleCustomer
}
