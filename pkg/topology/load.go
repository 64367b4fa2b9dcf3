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

package topology

import (
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/rs4lk/rs4lk/pkg/private/serrors"
)

// Description is the serialized form of a topology.
//
//	candidate: 100
//	ases:
//	  - {asn: 100, name: as100}
//	  - {asn: 200, name: as200}
//	links:
//	  - a: {asn: 100, ifid: 1, addresses: ["198.51.100.1/30"]}
//	    b: {asn: 200, ifid: 1, addresses: ["198.51.100.2/30"]}
//	    link_to: PARENT
//
// LinkTo is the relationship of B as seen from A.
type Description struct {
	Candidate uint32            `yaml:"candidate"`
	ASes      []ASDescription   `yaml:"ases"`
	Links     []LinkDescription `yaml:"links"`
}

type ASDescription struct {
	ASN  uint32 `yaml:"asn"`
	Name string `yaml:"name"`
}

type LinkDescription struct {
	A      EndDescription `yaml:"a"`
	B      EndDescription `yaml:"b"`
	LinkTo string         `yaml:"link_to"`
}

type EndDescription struct {
	ASN       uint32               `yaml:"asn"`
	IfID      int                  `yaml:"ifid"`
	Addresses []AddressDescription `yaml:"addresses"`
}

// AddressDescription is an address, optionally with a prefix length. Whether
// it is public is derived from the address unless Public is set. In YAML it
// is either a plain string or a map with the keys addr and public.
type AddressDescription struct {
	Addr   string `yaml:"addr"`
	Public *bool  `yaml:"public,omitempty"`
}

// UnmarshalYAML accepts the plain string form.
func (a *AddressDescription) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		*a = AddressDescription{Addr: s}
		return nil
	}
	type plain AddressDescription
	return unmarshal((*plain)(a))
}

// Parse builds a topology from YAML.
func Parse(raw []byte) (*Topology, error) {
	var desc Description
	if err := yaml.UnmarshalStrict(raw, &desc); err != nil {
		return nil, serrors.Wrap("parsing topology", err)
	}
	return New(desc)
}

// LoadFile builds a topology from a YAML file.
func LoadFile(file string) (*Topology, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, serrors.Wrap("reading topology", err, "file", file)
	}
	topo, err := Parse(raw)
	if err != nil {
		return nil, serrors.WithCtx(err, "file", file)
	}
	return topo, nil
}
