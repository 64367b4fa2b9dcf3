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

// Package bgptable reads the BGP tables of emulated routers.
package bgptable

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/tidwall/gjson"

	"github.com/rs4lk/rs4lk/pkg/log"
	"github.com/rs4lk/rs4lk/pkg/prefix"
	"github.com/rs4lk/rs4lk/pkg/private/serrors"
	"github.com/rs4lk/rs4lk/private/emulation"
)

// Reader reads BGP tables of devices.
type Reader interface {
	// BGPNetworks returns the networks in the BGP table of the device, for
	// both IP versions.
	BGPNetworks(ctx context.Context, device string) (prefix.Set, error)
	// NeighbourBGPNetworks returns the networks the device learned from
	// the peer with the given address.
	NeighbourBGPNetworks(ctx context.Context, device string, peer netip.Addr) (prefix.Set, error)
}

// Vtysh reads BGP tables with the JSON output of FRRouting's vtysh.
type Vtysh struct {
	Network emulation.Network
}

func (r Vtysh) BGPNetworks(ctx context.Context, device string) (prefix.Set, error) {
	var all prefix.Set
	for _, v := range prefix.Versions {
		set, err := r.show(ctx, device, fmt.Sprintf("show bgp ipv%d unicast json", int(v)))
		if err != nil {
			return prefix.Set{}, err
		}
		all = all.Union(set)
	}
	log.FromCtx(ctx).Debug("Read BGP networks", "device", device, "networks", all.Len())
	return all, nil
}

func (r Vtysh) NeighbourBGPNetworks(ctx context.Context, device string,
	peer netip.Addr) (prefix.Set, error) {

	peer = peer.Unmap()
	v := prefix.AddrVersion(peer)
	return r.show(ctx, device,
		fmt.Sprintf("show bgp ipv%d unicast neighbors %s routes json", int(v), peer))
}

func (r Vtysh) show(ctx context.Context, device, cmd string) (prefix.Set, error) {
	out, err := r.Network.Exec(ctx, device, "vtysh", "-c", cmd)
	if err != nil {
		return prefix.Set{}, serrors.Wrap("reading BGP table", err, "device", device)
	}
	set, err := ParseRoutes(out)
	if err != nil {
		return prefix.Set{}, serrors.Wrap("reading BGP table", err, "device", device,
			"cmd", cmd)
	}
	return set, nil
}

// ParseRoutes extracts the prefixes from the routes object of vtysh JSON
// output. Output without routes yields the empty set.
func ParseRoutes(raw []byte) (prefix.Set, error) {
	if !gjson.ValidBytes(raw) {
		return prefix.Set{}, serrors.New("invalid JSON", "output", truncate(raw, 64))
	}
	var (
		prefixes []netip.Prefix
		err      error
	)
	gjson.GetBytes(raw, "routes").ForEach(func(key, _ gjson.Result) bool {
		p, perr := netip.ParsePrefix(key.String())
		if perr != nil {
			err = serrors.Wrap("parsing route prefix", perr, "key", key.String())
			return false
		}
		prefixes = append(prefixes, p)
		return true
	})
	if err != nil {
		return prefix.Set{}, err
	}
	return prefix.NewSet(prefixes...), nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
