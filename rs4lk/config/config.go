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

// Package config contains the configuration of rs4lk.
package config

import (
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/rs4lk/rs4lk/pkg/log"
	"github.com/rs4lk/rs4lk/pkg/private/serrors"
	"github.com/rs4lk/rs4lk/private/check/leak"
	"github.com/rs4lk/rs4lk/private/config"
	"github.com/rs4lk/rs4lk/private/configuration"
	"github.com/rs4lk/rs4lk/private/emulation"
	"github.com/rs4lk/rs4lk/private/env"
	"github.com/rs4lk/rs4lk/private/gobgp"
)

const (
	// BGPTableVtysh reads tables and announces prefixes with vtysh.
	BGPTableVtysh = "vtysh"
	// BGPTableGoBGP talks to gobgpd over gRPC.
	BGPTableGoBGP = "gobgp"

	// DefaultDocker is the default docker binary.
	DefaultDocker = "docker"
)

var (
	_ config.Config = (*Config)(nil)
	_ config.Config = (*General)(nil)
	_ config.Config = (*Emulation)(nil)
	_ config.Config = (*BGPTable)(nil)
)

// Config is the configuration of rs4lk.
type Config struct {
	General   General     `toml:"general,omitempty"`
	Logging   log.Config  `toml:"log,omitempty"`
	Metrics   env.Metrics `toml:"metrics,omitempty"`
	Tracing   env.Tracing `toml:"tracing,omitempty"`
	Emulation Emulation   `toml:"emulation,omitempty"`
	BGPTable  BGPTable    `toml:"bgp_table,omitempty"`
	Leak      leak.Config `toml:"leak,omitempty"`
}

func (cfg *Config) InitDefaults() {
	config.InitAll(
		&cfg.General,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.Tracing,
		&cfg.Emulation,
		&cfg.BGPTable,
		&cfg.Leak,
	)
}

func (cfg *Config) Validate() error {
	return config.ValidateAll(
		&cfg.General,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.Tracing,
		&cfg.Emulation,
		&cfg.BGPTable,
		&cfg.Leak,
	)
}

func (cfg *Config) Sample(dst io.Writer, path config.Path, _ config.CtxMap) {
	config.WriteSample(dst, path, nil,
		&cfg.General,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.Tracing,
		&cfg.Emulation,
		&cfg.BGPTable,
		&cfg.Leak,
	)
}

func (cfg *Config) ConfigName() string {
	return "rs4lk_config"
}

// General holds the inputs of a run.
type General struct {
	// Topology is the AS topology file. (required)
	Topology string `toml:"topology,omitempty"`
	// Facts is the device facts file. (required)
	Facts string `toml:"facts,omitempty"`
	// Device is the facts entry of the candidate. (default: the name of the
	// candidate router in the topology)
	Device string `toml:"device,omitempty"`
	// Vendor overrides the vendor of the candidate's facts entry.
	Vendor string `toml:"vendor,omitempty"`
	// CandidateAS must match the candidate of the topology if set.
	CandidateAS uint32 `toml:"candidate_as,omitempty"`
	// Checks are the names of the checks to run, in order. (default ["leak"])
	Checks []string `toml:"checks,omitempty"`
}

func (cfg *General) InitDefaults() {
	if len(cfg.Checks) == 0 {
		cfg.Checks = []string{leak.Name}
	}
}

func (cfg *General) Validate() error {
	if cfg.Topology == "" {
		return serrors.New("topology file must be set")
	}
	if cfg.Facts == "" {
		return serrors.New("facts file must be set")
	}
	if cfg.Vendor != "" {
		if _, err := configuration.NewVendor(cfg.Vendor); err != nil {
			return err
		}
	}
	for _, name := range cfg.Checks {
		if name != leak.Name {
			return serrors.New("unknown check", "check", name)
		}
	}
	return nil
}

func (cfg *General) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, generalSample)
}

func (cfg *General) ConfigName() string {
	return "general"
}

// Emulation locates the containers of the emulated routers.
type Emulation struct {
	// Lab is the containerlab lab name.
	Lab string `toml:"lab,omitempty"`
	// Docker is the docker binary. (default "docker")
	Docker string `toml:"docker,omitempty"`
	// Template is the command prefix to run a command on a device, with
	// "{device}" replaced by the device name. (default: docker exec into the
	// containerlab container of the device)
	Template string `toml:"template,omitempty"`
}

func (cfg *Emulation) InitDefaults() {
	if cfg.Docker == "" {
		cfg.Docker = DefaultDocker
	}
	if cfg.Template == "" && cfg.Lab != "" {
		cfg.Template = emulation.ContainerlabTemplate(cfg.Docker, cfg.Lab)
	}
}

func (cfg *Emulation) Validate() error {
	if cfg.Template == "" {
		return serrors.New("either lab or template must be set")
	}
	if !strings.Contains(cfg.Template, emulation.DevicePlaceholder) {
		return serrors.New("template without device placeholder",
			"template", cfg.Template, "placeholder", emulation.DevicePlaceholder)
	}
	return nil
}

func (cfg *Emulation) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, emulationSample)
}

func (cfg *Emulation) ConfigName() string {
	return "emulation"
}

// BGPTable selects how routes are injected and read.
type BGPTable struct {
	// Kind is "vtysh" or "gobgp". (default "vtysh")
	Kind string `toml:"kind,omitempty"`
	// GoBGPAddress is the gRPC address template of gobgpd, with "{device}"
	// replaced by the device name. (default "{device}:50051")
	GoBGPAddress string `toml:"gobgp_address,omitempty"`
}

func (cfg *BGPTable) InitDefaults() {
	if cfg.Kind == "" {
		cfg.Kind = BGPTableVtysh
	}
	if cfg.GoBGPAddress == "" {
		cfg.GoBGPAddress = net.JoinHostPort(emulation.DevicePlaceholder,
			strconv.Itoa(gobgp.DefaultPort))
	}
}

func (cfg *BGPTable) Validate() error {
	switch cfg.Kind {
	case BGPTableVtysh:
		return nil
	case BGPTableGoBGP:
		if _, _, err := net.SplitHostPort(cfg.GoBGPAddress); err != nil {
			return serrors.Wrap("invalid gobgp address", err, "addr", cfg.GoBGPAddress)
		}
		return nil
	default:
		return serrors.New("unknown bgp table kind", "kind", cfg.Kind)
	}
}

func (cfg *BGPTable) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, bgpTableSample)
}

func (cfg *BGPTable) ConfigName() string {
	return "bgp_table"
}
