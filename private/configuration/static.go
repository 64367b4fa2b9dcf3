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
	"os"
	"path/filepath"
	"sort"

	yaml "gopkg.in/yaml.v2"

	"github.com/rs4lk/rs4lk/pkg/private/serrors"
)

// FactsFile is the serialized output of the configuration analysis engine
// for a set of devices.
//
//	devices:
//	  as100:
//	    path: configs/as100.conf
//	    vendor: frr
//	    local_as: 100
//	    interfaces:
//	      eth1: ["198.51.100.1/30"]
//	    bgp_sessions:
//	      - peerings: [{remote_ip: 198.51.100.2, remote_as: 200}]
//
// Relative paths are resolved against the directory of the facts file.
type FactsFile struct {
	Devices map[string]DeviceFacts `yaml:"devices"`
}

type DeviceFacts struct {
	Path        string              `yaml:"path"`
	Vendor      string              `yaml:"vendor"`
	LocalAS     uint32              `yaml:"local_as"`
	Interfaces  map[string][]string `yaml:"interfaces"`
	BGPSessions []SessionFacts      `yaml:"bgp_sessions"`
}

type SessionFacts struct {
	Peerings []PeeringFacts `yaml:"peerings"`
}

type PeeringFacts struct {
	RemoteIP string `yaml:"remote_ip"`
	RemoteAS uint32 `yaml:"remote_as"`
}

// LoadFactsFile reads a facts file.
func LoadFactsFile(file string) (*FactsFile, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, serrors.Wrap("reading facts file", err, "file", file)
	}
	var ff FactsFile
	if err := yaml.UnmarshalStrict(raw, &ff); err != nil {
		return nil, serrors.Wrap("parsing facts file", err, "file", file)
	}
	dir := filepath.Dir(file)
	for name, d := range ff.Devices {
		if d.Path != "" && !filepath.IsAbs(d.Path) {
			d.Path = filepath.Join(dir, d.Path)
			ff.Devices[name] = d
		}
	}
	return &ff, nil
}

// StaticFacts are facts loaded from a facts file.
type StaticFacts struct {
	name       string
	path       string
	localAS    uint32
	interfaces map[string]*Interface
	sessions   map[int]*BGPSession
	ifOrder    []string
}

// NewStaticFacts builds the facts of the named device.
func NewStaticFacts(name string, d DeviceFacts) (*StaticFacts, error) {
	f := &StaticFacts{
		name:       name,
		path:       d.Path,
		localAS:    d.LocalAS,
		interfaces: make(map[string]*Interface, len(d.Interfaces)),
		sessions:   make(map[int]*BGPSession, len(d.BGPSessions)),
	}
	for ifName, raw := range d.Interfaces {
		iface := &Interface{Name: ifName}
		for _, s := range raw {
			p, err := netip.ParsePrefix(s)
			if err != nil {
				return nil, serrors.Wrap("parsing interface address", err,
					"device", name, "interface", ifName)
			}
			iface.Prefixes = append(iface.Prefixes, p)
		}
		f.interfaces[ifName] = iface
		f.ifOrder = append(f.ifOrder, ifName)
	}
	sort.Strings(f.ifOrder)
	for i, s := range d.BGPSessions {
		session := &BGPSession{Key: i}
		for _, p := range s.Peerings {
			ip, err := netip.ParseAddr(p.RemoteIP)
			if err != nil {
				return nil, serrors.Wrap("parsing peering address", err,
					"device", name, "session", i)
			}
			session.Peerings = append(session.Peerings,
				&Peering{RemoteIP: ip.Unmap(), RemoteAS: p.RemoteAS})
		}
		f.sessions[i] = session
	}
	return f, nil
}

func (f *StaticFacts) Name() string                      { return f.name }
func (f *StaticFacts) Path() string                      { return f.path }
func (f *StaticFacts) Interfaces() map[string]*Interface { return f.interfaces }
func (f *StaticFacts) BGPSessions() map[int]*BGPSession  { return f.sessions }
func (f *StaticFacts) LocalAS() uint32                   { return f.localAS }
func (f *StaticFacts) SetLocalAS(asn uint32)             { f.localAS = asn }

// InterfaceForPeering scans interfaces in name order.
func (f *StaticFacts) InterfaceForPeering(p *Peering) (*Interface, netip.Addr, bool) {
	for _, name := range f.ifOrder {
		iface := f.interfaces[name]
		if local, ok := iface.Contains(p.RemoteIP); ok {
			return iface, local, true
		}
	}
	return nil, netip.Addr{}, false
}
