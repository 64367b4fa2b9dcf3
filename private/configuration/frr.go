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

package configuration

import (
	"net/netip"
	"strconv"
	"strings"

	"github.com/rs4lk/rs4lk/pkg/private/serrors"
)

// FRRTag is the vendor tag of FRRouting.
const FRRTag = "frr"

func init() {
	Register(FRRTag, func() Vendor { return &FRR{} })
}

// FRR is an FRRouting configuration.
type FRR struct {
	localAS uint32
	// remoteAS maps neighbor addresses to the configured remote-as.
	remoteAS map[netip.Addr]uint32
}

func (v *FRR) Image() string {
	return "frrouting/frr"
}

// Init scans the configuration for the router bgp stanza and the remote AS
// of every neighbor.
func (v *FRR) Init(c *Configuration) error {
	v.remoteAS = make(map[netip.Addr]uint32)
	for _, line := range c.Lines() {
		fields := strings.Fields(line)
		switch {
		case len(fields) >= 3 && fields[0] == "router" && fields[1] == "bgp":
			asn, err := strconv.ParseUint(fields[2], 10, 32)
			if err != nil {
				return serrors.Wrap("parsing router bgp", err, "line", line)
			}
			v.localAS = uint32(asn)
		case len(fields) == 4 && fields[0] == "neighbor" && fields[2] == "remote-as":
			addr, err := netip.ParseAddr(fields[1])
			if err != nil {
				// Peer groups and interface names are not addresses.
				continue
			}
			asn, err := strconv.ParseUint(fields[3], 10, 32)
			if err != nil {
				// remote-as external/internal carry no number.
				continue
			}
			v.remoteAS[addr.Unmap()] = uint32(asn)
		}
	}
	return nil
}

// OnLoadComplete fills remote AS numbers the analysis engine left empty.
func (v *FRR) OnLoadComplete(c *Configuration) error {
	for _, s := range c.BGPSessions() {
		for _, p := range s.Peerings {
			if p.RemoteAS != 0 {
				continue
			}
			if asn, ok := v.remoteAS[p.RemoteIP]; ok {
				p.RemoteAS = asn
			}
		}
	}
	return nil
}

func (v *FRR) LocalAS(_ *Configuration) (uint32, error) {
	return v.localAS, nil
}
