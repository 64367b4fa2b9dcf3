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

package configuration_test

import (
	"context"
	"net/netip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rs4lk/rs4lk/pkg/log/testlog"
	"github.com/rs4lk/rs4lk/private/configuration"
)

func testCtx(t *testing.T) context.Context {
	return testlog.Context(t)
}

func loadStore(t *testing.T) *configuration.Store {
	t.Helper()
	ff, err := configuration.LoadFactsFile("testdata/facts.yml")
	require.NoError(t, err)
	store, err := configuration.NewStore(ff, configuration.DefaultStoreSize)
	require.NoError(t, err)
	return store
}

func loadDevice(t *testing.T, store *configuration.Store, device string) *configuration.Configuration {
	t.Helper()
	facts, err := store.Facts(device)
	require.NoError(t, err)
	vendor, err := configuration.NewVendor(store.Vendor(device))
	require.NoError(t, err)
	cfg := configuration.New(vendor, facts)
	require.NoError(t, cfg.Load(testCtx(t)))
	return cfg
}

func TestLoadInfersSessions(t *testing.T) {
	cfg := loadDevice(t, loadStore(t), "as100")
	sessions := cfg.BGPSessions()
	require.Len(t, sessions, 5)

	ifName := func(s *configuration.BGPSession) string {
		if s.Iface == nil {
			return ""
		}
		return s.Iface.Name
	}

	assert.Equal(t, "eth1", ifName(sessions[0]))
	assert.Equal(t, netip.MustParseAddr("198.51.100.1"), sessions[0].Peerings[0].LocalIP)
	assert.Equal(t, netip.MustParseAddr("2001:db8:1::1"), sessions[0].Peerings[1].LocalIP)

	assert.Equal(t, "eth2", ifName(sessions[1]))
	assert.Equal(t, uint32(300), sessions[1].Peerings[0].RemoteAS, "filled from config")

	assert.False(t, sessions[2].DirectlyConnected())
	assert.False(t, sessions[2].Peerings[0].LocalIP.IsValid())

	// The last peering decides the interface of the session.
	assert.Nil(t, sessions[3].Iface, "last peering is not directly connected")
	assert.False(t, sessions[3].DirectlyConnected())
	assert.True(t, sessions[3].Peerings[0].LocalIP.IsValid())
	assert.False(t, sessions[3].Peerings[1].LocalIP.IsValid())

	assert.Equal(t, "eth2", ifName(sessions[4]), "last peering is directly connected")
	assert.False(t, sessions[4].Peerings[0].LocalIP.IsValid())
	assert.Equal(t, netip.MustParseAddr("192.0.2.1"), sessions[4].Peerings[1].LocalIP)
}

func TestInferenceIsDeterministic(t *testing.T) {
	snapshot := func() map[int]string {
		cfg := loadDevice(t, loadStore(t), "as100")
		out := map[int]string{}
		for k, s := range cfg.BGPSessions() {
			out[k] = s.String()
		}
		return out
	}
	assert.Equal(t, snapshot(), snapshot())

	// Running inference again on completed facts changes nothing.
	store := loadStore(t)
	cfg := loadDevice(t, store, "as100")
	before := map[int]string{}
	for k, s := range cfg.BGPSessions() {
		before[k] = s.String()
	}
	facts, err := store.Facts("as100")
	require.NoError(t, err)
	configuration.InferDirectSessions(testCtx(t), facts)
	for k, s := range cfg.BGPSessions() {
		assert.Equal(t, before[k], s.String())
	}
}

func TestLocalAS(t *testing.T) {
	store := loadStore(t)
	testCases := map[string]uint32{
		"as100": 100,    // vendor fallback
		"as200": 200,    // analysis engine
		"as300": 262145, // asdot 4.1
	}
	for device, want := range testCases {
		t.Run(device, func(t *testing.T) {
			cfg := loadDevice(t, store, device)
			asn, err := cfg.LocalAS()
			require.NoError(t, err)
			assert.Equal(t, want, asn)

			facts, err := store.Facts(device)
			require.NoError(t, err)
			assert.Equal(t, want, facts.LocalAS(), "value is cached in the facts")
		})
	}
}

func TestLoadErrors(t *testing.T) {
	store := loadStore(t)
	t.Run("empty file", func(t *testing.T) {
		facts, err := store.Facts("empty")
		require.NoError(t, err)
		cfg := configuration.New(&configuration.FRR{}, facts)
		err = cfg.Load(testCtx(t))
		assert.ErrorIs(t, err, configuration.ErrConfig)
		assert.Contains(t, err.Error(), "empty config file")
	})
	t.Run("missing file", func(t *testing.T) {
		facts, err := configuration.NewStaticFacts("ghost", configuration.DeviceFacts{
			Path: filepath.Join(t.TempDir(), "missing.conf"),
		})
		require.NoError(t, err)
		err = configuration.New(&configuration.FRR{}, facts).Load(testCtx(t))
		assert.ErrorIs(t, err, configuration.ErrConfig)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("bad router bgp", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.conf")
		require.NoError(t, os.WriteFile(path, []byte("router bgp many\n"), 0o644))
		facts, err := configuration.NewStaticFacts("bad", configuration.DeviceFacts{Path: path})
		require.NoError(t, err)
		err = configuration.New(&configuration.FRR{}, facts).Load(testCtx(t))
		assert.ErrorIs(t, err, configuration.ErrConfig)
	})
	t.Run("unknown device", func(t *testing.T) {
		_, err := store.Facts("as999")
		assert.Error(t, err)
	})
}

func TestVendorRegistry(t *testing.T) {
	assert.Equal(t, []string{configuration.FRRTag, configuration.JunosTag},
		configuration.Vendors())
	v, err := configuration.NewVendor(configuration.JunosTag)
	require.NoError(t, err)
	assert.Equal(t, "juniper/crpd", v.Image())

	_, err = configuration.NewVendor("nxos")
	assert.ErrorIs(t, err, configuration.ErrConfig)

	assert.Panics(t, func() {
		configuration.Register(configuration.FRRTag, func() configuration.Vendor {
			return &configuration.FRR{}
		})
	})
}

func TestStoreCachesFacts(t *testing.T) {
	store := loadStore(t)
	a, err := store.Facts("as100")
	require.NoError(t, err)
	b, err := store.Facts("as100")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, []string{"as100"}, store.Cached())
	assert.Equal(t, []string{"as100", "as200", "as300", "empty"}, store.Devices())
}

func TestLoadFactsFileResolvesPaths(t *testing.T) {
	ff, err := configuration.LoadFactsFile("testdata/facts.yml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("testdata", "as100.conf"), ff.Devices["as100"].Path)
}
