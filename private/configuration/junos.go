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
	"strconv"
	"strings"

	"github.com/rs4lk/rs4lk/pkg/private/serrors"
)

// JunosTag is the vendor tag of Juniper Junos.
const JunosTag = "junos"

func init() {
	Register(JunosTag, func() Vendor { return &Junos{} })
}

// Junos is a Juniper configuration in curly brace format.
type Junos struct {
	localAS uint32
}

func (v *Junos) Image() string {
	return "juniper/crpd"
}

// Init finds the autonomous-system statement of routing-options.
func (v *Junos) Init(c *Configuration) error {
	for _, line := range c.Lines() {
		rest, ok := strings.CutPrefix(line, "autonomous-system ")
		if !ok {
			continue
		}
		fields := strings.Fields(strings.TrimSuffix(rest, ";"))
		if len(fields) == 0 {
			return serrors.New("empty autonomous-system statement")
		}
		// Junos allows asdot notation for 4-byte AS numbers.
		asn, err := parseASN(fields[0])
		if err != nil {
			return serrors.Wrap("parsing autonomous-system", err, "line", line)
		}
		v.localAS = asn
		return nil
	}
	return nil
}

func (v *Junos) OnLoadComplete(_ *Configuration) error {
	return nil
}

func (v *Junos) LocalAS(_ *Configuration) (uint32, error) {
	return v.localAS, nil
}

func parseASN(s string) (uint32, error) {
	high, low, dotted := strings.Cut(s, ".")
	if !dotted {
		asn, err := strconv.ParseUint(s, 10, 32)
		return uint32(asn), err
	}
	h, err := strconv.ParseUint(high, 10, 16)
	if err != nil {
		return 0, err
	}
	l, err := strconv.ParseUint(low, 10, 16)
	if err != nil {
		return 0, err
	}
	return uint32(h<<16 | l), nil
}
