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

// Package configuration loads vendor device configurations and completes the
// facts extracted from them. Its main job is session inference: deciding
// which configured BGP sessions are directly connected by matching peering
// addresses against local interface subnets.
package configuration

import (
	"fmt"
	"net/netip"
	"slices"
	"strings"
)

// Interface is a configured interface of a device.
type Interface struct {
	Name string
	// Prefixes are the interface addresses with their subnet length.
	Prefixes []netip.Prefix
}

// Contains returns the local address of the interface whose subnet contains
// a. The first matching prefix in configuration order wins.
func (i *Interface) Contains(a netip.Addr) (netip.Addr, bool) {
	a = a.Unmap()
	for _, p := range i.Prefixes {
		if p.Masked().Contains(a) {
			return p.Addr(), true
		}
	}
	return netip.Addr{}, false
}

func (i *Interface) String() string {
	return i.Name
}

// Peering is one remote end of a BGP session.
type Peering struct {
	RemoteIP netip.Addr
	RemoteAS uint32
	// LocalIP is the local address towards RemoteIP. It is invalid until
	// session inference found a directly connected interface.
	LocalIP netip.Addr
}

func (p *Peering) String() string {
	if !p.LocalIP.IsValid() {
		return fmt.Sprintf("%s(AS%d)", p.RemoteIP, p.RemoteAS)
	}
	return fmt.Sprintf("%s->%s(AS%d)", p.LocalIP, p.RemoteIP, p.RemoteAS)
}

// BGPSession is a configured BGP session with one or more peerings.
type BGPSession struct {
	Key      int
	Peerings []*Peering
	// Iface is the directly connected interface of the session. It is nil
	// until inference ran, and stays nil for sessions that are not directly
	// connected, such as multi-hop or route reflector sessions.
	Iface *Interface
}

// DirectlyConnected reports whether inference bound the session to an
// interface.
func (s *BGPSession) DirectlyConnected() bool {
	return s.Iface != nil
}

func (s *BGPSession) String() string {
	peerings := make([]string, 0, len(s.Peerings))
	for _, p := range s.Peerings {
		peerings = append(peerings, p.String())
	}
	iface := "<none>"
	if s.Iface != nil {
		iface = s.Iface.Name
	}
	return fmt.Sprintf("session %d [%s] iface=%s", s.Key, strings.Join(peerings, ", "), iface)
}

// Facts are the structured facts of one device configuration, as computed by
// the configuration analysis engine. Accessors are idempotent: repeated calls
// return the same objects, so updates made by inference are visible to later
// readers.
type Facts interface {
	// Name is the device name.
	Name() string
	// Path is the location of the raw device configuration.
	Path() string
	Interfaces() map[string]*Interface
	BGPSessions() map[int]*BGPSession
	// LocalAS is the configured local AS, or 0 if the engine could not
	// determine it.
	LocalAS() uint32
	SetLocalAS(asn uint32)
	// InterfaceForPeering returns the interface whose subnet contains the
	// remote address of p, and the local address on it.
	InterfaceForPeering(p *Peering) (*Interface, netip.Addr, bool)
}

// SortedSessions returns the sessions ordered by key.
func SortedSessions(f Facts) []*BGPSession {
	sessions := f.BGPSessions()
	keys := make([]int, 0, len(sessions))
	for k := range sessions {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]*BGPSession, 0, len(keys))
	for _, k := range keys {
		out = append(out, sessions[k])
	}
	return out
}
