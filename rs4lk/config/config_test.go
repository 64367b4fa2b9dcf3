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

package config_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rs4lk/rs4lk/private/check/leak"
	"github.com/rs4lk/rs4lk/private/config"
	rs4lkconfig "github.com/rs4lk/rs4lk/rs4lk/config"
)

func TestSampleCorrect(t *testing.T) {
	var sample bytes.Buffer
	var cfg rs4lkconfig.Config
	cfg.Sample(&sample, nil, nil)

	require.NoError(t, config.Decode(sample.Bytes(), &cfg))
	cfg.InitDefaults()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "topology.yml", cfg.General.Topology)
	assert.Equal(t, "facts.yml", cfg.General.Facts)
	assert.Equal(t, "as100", cfg.General.Device)
	assert.Equal(t, uint32(100), cfg.General.CandidateAS)
	assert.Equal(t, []string{leak.Name}, cfg.General.Checks)
	assert.Equal(t, "info", cfg.Logging.Console.Level)
	assert.Equal(t, "docker exec clab-rs4lk-{device}", cfg.Emulation.Template)
	assert.Equal(t, rs4lkconfig.BGPTableVtysh, cfg.BGPTable.Kind)
	assert.Equal(t, "{device}:50051", cfg.BGPTable.GoBGPAddress)
	assert.Equal(t, leak.WaitFixed, cfg.Leak.WaitKind)
	assert.Equal(t, 20*time.Second, cfg.Leak.Wait.Duration)
}

func TestDefaults(t *testing.T) {
	cfg := rs4lkconfig.Config{
		General:   rs4lkconfig.General{Topology: "t.yml", Facts: "f.yml"},
		Emulation: rs4lkconfig.Emulation{Lab: "lab"},
	}
	cfg.InitDefaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "docker exec clab-lab-{device}", cfg.Emulation.Template)
	assert.Equal(t, []string{"leak"}, cfg.General.Checks)
	assert.Equal(t, leak.DefaultCleanupTimeout, cfg.Leak.CleanupTimeout.Duration)
}

func badGoBGPAddress(c *rs4lkconfig.Config) {
	c.BGPTable.Kind = rs4lkconfig.BGPTableGoBGP
	c.BGPTable.GoBGPAddress = "x"
}

func TestValidate(t *testing.T) {
	testCases := map[string]func(*rs4lkconfig.Config){
		"no topology":      func(c *rs4lkconfig.Config) { c.General.Topology = "" },
		"no facts":         func(c *rs4lkconfig.Config) { c.General.Facts = "" },
		"unknown vendor":   func(c *rs4lkconfig.Config) { c.General.Vendor = "ios" },
		"unknown check":    func(c *rs4lkconfig.Config) { c.General.Checks = []string{"rpki"} },
		"no template":      func(c *rs4lkconfig.Config) { c.Emulation.Template = "" },
		"no placeholder":   func(c *rs4lkconfig.Config) { c.Emulation.Template = "docker exec r1" },
		"unknown table":    func(c *rs4lkconfig.Config) { c.BGPTable.Kind = "bird" },
		"bad gobgp addr":   badGoBGPAddress,
		"unknown log form": func(c *rs4lkconfig.Config) { c.Logging.Console.Format = "xml" },
	}
	for name, mutate := range testCases {
		t.Run(name, func(t *testing.T) {
			cfg := rs4lkconfig.Config{
				General:   rs4lkconfig.General{Topology: "t.yml", Facts: "f.yml"},
				Emulation: rs4lkconfig.Emulation{Lab: "lab"},
			}
			cfg.InitDefaults()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestUnknownKeysRejected(t *testing.T) {
	var cfg rs4lkconfig.Config
	err := config.Decode([]byte("[general]\ntopolgy = \"t.yml\"\n"), &cfg)
	assert.Error(t, err)
}
