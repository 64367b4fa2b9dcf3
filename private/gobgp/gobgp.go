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

// Package gobgp talks to GoBGP daemons of emulated routers over their gRPC
// API. It reads BGP tables and originates test prefixes.
package gobgp

import (
	"context"
	"errors"
	"io"
	"net/netip"
	"strings"
	"sync"

	api "github.com/osrg/gobgp/v3/api"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/anypb"

	libgrpc "github.com/rs4lk/rs4lk/pkg/grpc"
	"github.com/rs4lk/rs4lk/pkg/log"
	"github.com/rs4lk/rs4lk/pkg/prefix"
	"github.com/rs4lk/rs4lk/pkg/private/serrors"
	"github.com/rs4lk/rs4lk/private/emulation"
)

// DefaultPort is the default gRPC port of gobgpd.
const DefaultPort = 50051

// Dialer creates the API client of a device.
type Dialer interface {
	Dial(ctx context.Context, device string) (api.GobgpApiClient, error)
}

// GRPCDialer connects to gobgpd over plaintext gRPC with the default client
// interceptors. Address is a host:port template in which
// emulation.DevicePlaceholder is replaced by the device. Connections are
// reused per device.
type GRPCDialer struct {
	Address string

	mu    sync.Mutex
	conns map[string]*grpc.ClientConn
}

func (d *GRPCDialer) Dial(_ context.Context, device string) (api.GobgpApiClient, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if conn, ok := d.conns[device]; ok {
		return api.NewGobgpApiClient(conn), nil
	}
	target := strings.ReplaceAll(d.Address, emulation.DevicePlaceholder, device)
	conn, err := grpc.NewClient(target, libgrpc.DialOptions()...)
	if err != nil {
		return nil, serrors.Wrap("creating gobgp client", err, "device", device,
			"target", target)
	}
	if d.conns == nil {
		d.conns = make(map[string]*grpc.ClientConn)
	}
	d.conns[device] = conn
	return api.NewGobgpApiClient(conn), nil
}

// Close closes all connections.
func (d *GRPCDialer) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	var errs serrors.List
	for device, conn := range d.conns {
		if err := conn.Close(); err != nil {
			errs = append(errs, serrors.Wrap("closing gobgp client", err, "device", device))
		}
	}
	d.conns = nil
	return errs.ToError()
}

// Client reads tables of and announces prefixes on gobgpd instances.
type Client struct {
	Dialer Dialer
}

func family(v prefix.Version) *api.Family {
	afi := api.Family_AFI_IP
	if v == prefix.V6 {
		afi = api.Family_AFI_IP6
	}
	return &api.Family{Afi: afi, Safi: api.Family_SAFI_UNICAST}
}

// BGPNetworks lists the global RIB of both address families.
func (c Client) BGPNetworks(ctx context.Context, device string) (prefix.Set, error) {
	var all prefix.Set
	for _, v := range prefix.Versions {
		set, err := c.list(ctx, device, &api.ListPathRequest{
			TableType: api.TableType_GLOBAL,
			Family:    family(v),
		})
		if err != nil {
			return prefix.Set{}, err
		}
		all = all.Union(set)
	}
	return all, nil
}

// NeighbourBGPNetworks lists the Adj-RIB-In of the peer.
func (c Client) NeighbourBGPNetworks(ctx context.Context, device string,
	peer netip.Addr) (prefix.Set, error) {

	peer = peer.Unmap()
	return c.list(ctx, device, &api.ListPathRequest{
		TableType: api.TableType_ADJ_IN,
		Name:      peer.String(),
		Family:    family(prefix.AddrVersion(peer)),
	})
}

func (c Client) list(ctx context.Context, device string,
	req *api.ListPathRequest) (prefix.Set, error) {

	client, err := c.Dialer.Dial(ctx, device)
	if err != nil {
		return prefix.Set{}, err
	}
	stream, err := client.ListPath(ctx, req)
	if err != nil {
		return prefix.Set{}, serrors.Wrap("listing paths", err, "device", device,
			"table", req.TableType, "name", req.Name)
	}
	var prefixes []netip.Prefix
	for {
		rsp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return prefix.Set{}, serrors.Wrap("receiving paths", err, "device", device,
				"table", req.TableType, "name", req.Name)
		}
		p, err := netip.ParsePrefix(rsp.GetDestination().GetPrefix())
		if err != nil {
			return prefix.Set{}, serrors.Wrap("parsing destination", err, "device", device)
		}
		prefixes = append(prefixes, p)
	}
	log.FromCtx(ctx).Debug("Listed gobgp paths", "device", device,
		"table", req.TableType.String(), "paths", len(prefixes))
	return prefix.NewSet(prefixes...), nil
}

// Announce originates p from the global RIB. GoBGP runs a single BGP
// instance, so asn is only used for logging.
func (c Client) Announce(ctx context.Context, device string, asn uint32, p netip.Prefix) error {
	log.FromCtx(ctx).Info("Announcing network", "device", device, "asn", asn, "prefix", p)
	client, path, err := c.prepare(ctx, device, p)
	if err != nil {
		return err
	}
	if _, err := client.AddPath(ctx, &api.AddPathRequest{
		TableType: api.TableType_GLOBAL,
		Path:      path,
	}); err != nil {
		return serrors.Wrap("adding path", err, "device", device, "prefix", p)
	}
	return nil
}

// Withdraw removes a path added by Announce.
func (c Client) Withdraw(ctx context.Context, device string, asn uint32, p netip.Prefix) error {
	log.FromCtx(ctx).Info("Removing network announcement", "device", device, "asn", asn,
		"prefix", p)
	client, path, err := c.prepare(ctx, device, p)
	if err != nil {
		return err
	}
	if _, err := client.DeletePath(ctx, &api.DeletePathRequest{
		TableType: api.TableType_GLOBAL,
		Family:    path.Family,
		Path:      path,
	}); err != nil {
		return serrors.Wrap("deleting path", err, "device", device, "prefix", p)
	}
	return nil
}

func (c Client) prepare(ctx context.Context, device string,
	p netip.Prefix) (api.GobgpApiClient, *api.Path, error) {

	path, err := NewPath(p)
	if err != nil {
		return nil, nil, err
	}
	client, err := c.Dialer.Dial(ctx, device)
	if err != nil {
		return nil, nil, err
	}
	return client, path, nil
}

// NewPath builds a locally originated path for p with IGP origin. IPv6
// paths carry their NLRI in an MP_REACH_NLRI attribute.
func NewPath(p netip.Prefix) (*api.Path, error) {
	p = p.Masked()
	v := prefix.VersionOf(p)
	nlri, err := anypb.New(&api.IPAddressPrefix{
		Prefix:    p.Addr().String(),
		PrefixLen: uint32(p.Bits()),
	})
	if err != nil {
		return nil, serrors.Wrap("encoding NLRI", err, "prefix", p)
	}
	origin, err := anypb.New(&api.OriginAttribute{Origin: 0})
	if err != nil {
		return nil, serrors.Wrap("encoding origin", err)
	}
	var nextHop *anypb.Any
	if v == prefix.V4 {
		nextHop, err = anypb.New(&api.NextHopAttribute{NextHop: "0.0.0.0"})
	} else {
		nextHop, err = anypb.New(&api.MpReachNLRIAttribute{
			Family:   family(v),
			NextHops: []string{"::"},
			Nlris:    []*anypb.Any{nlri},
		})
	}
	if err != nil {
		return nil, serrors.Wrap("encoding next hop", err, "prefix", p)
	}
	return &api.Path{
		Family: family(v),
		Nlri:   nlri,
		Pattrs: []*anypb.Any{origin, nextHop},
	}, nil
}
