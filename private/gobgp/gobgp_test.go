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

package gobgp_test

import (
	"context"
	"io"
	"net/netip"
	"testing"

	api "github.com/osrg/gobgp/v3/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/rs4lk/rs4lk/pkg/prefix"
	"github.com/rs4lk/rs4lk/private/gobgp"
)

// fakeAPI serves canned tables. Methods not overridden panic.
type fakeAPI struct {
	api.GobgpApiClient

	tables  map[string][]string
	listed  []*api.ListPathRequest
	added   []*api.Path
	deleted []*api.Path
}

func tableKey(req *api.ListPathRequest) string {
	return req.TableType.String() + "/" + req.Name + "/" + req.Family.Afi.String()
}

func (f *fakeAPI) ListPath(_ context.Context, req *api.ListPathRequest,
	_ ...grpc.CallOption) (api.GobgpApi_ListPathClient, error) {

	f.listed = append(f.listed, req)
	return &fakeStream{prefixes: f.tables[tableKey(req)]}, nil
}

func (f *fakeAPI) AddPath(_ context.Context, req *api.AddPathRequest,
	_ ...grpc.CallOption) (*api.AddPathResponse, error) {

	f.added = append(f.added, req.Path)
	return &api.AddPathResponse{}, nil
}

func (f *fakeAPI) DeletePath(_ context.Context, req *api.DeletePathRequest,
	_ ...grpc.CallOption) (*emptypb.Empty, error) {

	f.deleted = append(f.deleted, req.Path)
	return &emptypb.Empty{}, nil
}

type fakeStream struct {
	grpc.ClientStream
	prefixes []string
}

func (s *fakeStream) Recv() (*api.ListPathResponse, error) {
	if len(s.prefixes) == 0 {
		return nil, io.EOF
	}
	p := s.prefixes[0]
	s.prefixes = s.prefixes[1:]
	return &api.ListPathResponse{Destination: &api.Destination{Prefix: p}}, nil
}

type fakeDialer struct {
	apis map[string]*fakeAPI
}

func (d fakeDialer) Dial(_ context.Context, device string) (api.GobgpApiClient, error) {
	return d.apis[device], nil
}

func TestBGPNetworks(t *testing.T) {
	f := &fakeAPI{tables: map[string][]string{
		"GLOBAL//AFI_IP":  {"10.0.0.0/8", "0.0.0.0/0"},
		"GLOBAL//AFI_IP6": {"2001:db8::/32"},
	}}
	c := gobgp.Client{Dialer: fakeDialer{apis: map[string]*fakeAPI{"as200": f}}}

	got, err := c.BGPNetworks(context.Background(), "as200")
	require.NoError(t, err)
	assert.True(t, prefix.MustParseSet("0.0.0.0/0,10.0.0.0/8,2001:db8::/32").Equal(got),
		"got %s", got)
	assert.Len(t, f.listed, 2)
}

func TestNeighbourBGPNetworks(t *testing.T) {
	f := &fakeAPI{tables: map[string][]string{
		"ADJ_IN/10.0.0.1/AFI_IP":       {"1.0.0.0/24"},
		"ADJ_IN/2001:db8:1::1/AFI_IP6": {"100::/48"},
	}}
	c := gobgp.Client{Dialer: fakeDialer{apis: map[string]*fakeAPI{"as200": f}}}

	got, err := c.NeighbourBGPNetworks(context.Background(), "as200",
		netip.MustParseAddr("::ffff:10.0.0.1"))
	require.NoError(t, err)
	assert.True(t, prefix.MustParseSet("1.0.0.0/24").Equal(got), "got %s", got)

	got, err = c.NeighbourBGPNetworks(context.Background(), "as200",
		netip.MustParseAddr("2001:db8:1::1"))
	require.NoError(t, err)
	assert.True(t, prefix.MustParseSet("100::/48").Equal(got), "got %s", got)
}

func TestAnnounceWithdraw(t *testing.T) {
	f := &fakeAPI{}
	c := gobgp.Client{Dialer: fakeDialer{apis: map[string]*fakeAPI{"as300": f}}}
	p := netip.MustParsePrefix("1.0.0.0/24")

	require.NoError(t, c.Announce(context.Background(), "as300", 300, p))
	require.NoError(t, c.Withdraw(context.Background(), "as300", 300, p))
	require.Len(t, f.added, 1)
	require.Len(t, f.deleted, 1)

	var nlri api.IPAddressPrefix
	require.NoError(t, f.added[0].Nlri.UnmarshalTo(&nlri))
	assert.Equal(t, "1.0.0.0", nlri.Prefix)
	assert.EqualValues(t, 24, nlri.PrefixLen)
}

func TestNewPath(t *testing.T) {
	t.Run("IPv4", func(t *testing.T) {
		path, err := gobgp.NewPath(netip.MustParsePrefix("1.0.0.7/24"))
		require.NoError(t, err)
		assert.Equal(t, api.Family_AFI_IP, path.Family.Afi)
		require.Len(t, path.Pattrs, 2)
		var nh api.NextHopAttribute
		require.NoError(t, path.Pattrs[1].UnmarshalTo(&nh))
		assert.Equal(t, "0.0.0.0", nh.NextHop)
	})
	t.Run("IPv6", func(t *testing.T) {
		path, err := gobgp.NewPath(netip.MustParsePrefix("100::/48"))
		require.NoError(t, err)
		assert.Equal(t, api.Family_AFI_IP6, path.Family.Afi)
		var mp api.MpReachNLRIAttribute
		require.NoError(t, path.Pattrs[1].UnmarshalTo(&mp))
		assert.Equal(t, []string{"::"}, mp.NextHops)
		require.Len(t, mp.Nlris, 1)
	})
}

func TestGRPCDialerReusesConnections(t *testing.T) {
	d := &gobgp.GRPCDialer{Address: "{device}:50051"}
	a, err := d.Dial(context.Background(), "as100")
	require.NoError(t, err)
	b, err := d.Dial(context.Background(), "as100")
	require.NoError(t, err)
	assert.NotNil(t, a)
	assert.NotNil(t, b)
	assert.NoError(t, d.Close())
}
