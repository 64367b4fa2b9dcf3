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

// Package check defines the verification checks that run against an emulated
// network, and the runner that executes and reports them.
package check

import (
	"context"

	"github.com/rs4lk/rs4lk/pkg/topology"
	"github.com/rs4lk/rs4lk/private/bgptable"
	"github.com/rs4lk/rs4lk/private/emulation"
)

// Configuration is the view of the candidate's device configuration that
// checks depend on.
type Configuration interface {
	LocalAS() (uint32, error)
}

// Network is the emulated network a check acts on. It can originate prefixes
// on devices and read their BGP tables.
type Network interface {
	emulation.Announcer
	bgptable.Reader
}

// Lab is a Network composed of an independent announcer and table reader.
type Lab struct {
	emulation.Announcer
	bgptable.Reader
}

// Check is a single verification of the candidate AS.
type Check interface {
	// Name is the short identifier of the check, used in metrics and
	// configuration.
	Name() string
	// DisplayName is the human readable name of the check.
	DisplayName() string
	// Verify runs the check. A non-nil error means the check could not
	// produce a verdict.
	Verify(ctx context.Context, cfg Configuration, topo *topology.Topology,
		net Network) (bool, string, error)
}
