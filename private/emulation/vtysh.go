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

package emulation

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/mattn/go-shellwords"

	"github.com/rs4lk/rs4lk/pkg/log"
	"github.com/rs4lk/rs4lk/pkg/prefix"
	"github.com/rs4lk/rs4lk/pkg/private/serrors"
)

// Vtysh announces prefixes through the vtysh shell of FRRouting.
type Vtysh struct {
	Network Network
}

// Announce adds a network statement for p to the BGP instance of asn.
func (v Vtysh) Announce(ctx context.Context, device string, asn uint32, p netip.Prefix) error {
	log.FromCtx(ctx).Info("Announcing network", "device", device, "asn", asn, "prefix", p)
	return v.configure(ctx, device, asn, p, "network")
}

// Withdraw removes the network statement for p.
func (v Vtysh) Withdraw(ctx context.Context, device string, asn uint32, p netip.Prefix) error {
	log.FromCtx(ctx).Info("Removing network announcement", "device", device, "asn", asn,
		"prefix", p)
	return v.configure(ctx, device, asn, p, "no network")
}

func (v Vtysh) configure(ctx context.Context, device string, asn uint32, p netip.Prefix,
	stmt string) error {

	argv, err := NetworkCommand(asn, p, stmt)
	if err != nil {
		return err
	}
	if _, err := v.Network.Exec(ctx, device, argv...); err != nil {
		return serrors.Wrap("configuring network statement", err, "statement", stmt,
			"prefix", p)
	}
	return nil
}

// NetworkCommand returns the vtysh invocation that enters the address family
// of p in the BGP instance of asn, applies stmt to p and leaves
// configuration mode again.
func NetworkCommand(asn uint32, p netip.Prefix, stmt string) ([]string, error) {
	line := fmt.Sprintf("vtysh -c 'configure' -c 'router bgp %d' "+
		"-c 'address-family ipv%d unicast' -c '%s %s' -c 'exit' -c 'exit' -c 'exit'",
		asn, int(prefix.VersionOf(p)), stmt, p.Masked())
	argv, err := shellwords.Parse(line)
	if err != nil {
		return nil, serrors.Wrap("building vtysh command", err, "line", line)
	}
	return argv, nil
}
