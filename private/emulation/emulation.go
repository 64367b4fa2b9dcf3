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

// Package emulation drives the routers of an emulated network. Devices are
// addressed by the name of their AS node in the topology.
package emulation

import (
	"bytes"
	"context"
	"net/netip"
	"os/exec"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/rs4lk/rs4lk/pkg/log"
	"github.com/rs4lk/rs4lk/pkg/private/serrors"
)

// DevicePlaceholder is replaced by the device name in exec templates.
const DevicePlaceholder = "{device}"

// Network executes commands on emulated devices.
type Network interface {
	// Exec runs argv on the device and returns its standard output.
	Exec(ctx context.Context, device string, argv ...string) ([]byte, error)
}

// Announcer originates and withdraws prefixes on emulated routers.
type Announcer interface {
	// Announce originates p from the device under its AS number.
	Announce(ctx context.Context, device string, asn uint32, p netip.Prefix) error
	// Withdraw stops originating p.
	Withdraw(ctx context.Context, device string, asn uint32, p netip.Prefix) error
}

// CommandNetwork runs device commands by prefixing them with a host command,
// such as "docker exec clab-lab-{device}".
type CommandNetwork struct {
	prefix []string
}

// NewCommandNetwork parses the exec template with shell quoting rules. Every
// occurrence of DevicePlaceholder is replaced by the device name.
func NewCommandNetwork(template string) (*CommandNetwork, error) {
	words, err := shellwords.Parse(template)
	if err != nil {
		return nil, serrors.Wrap("parsing exec template", err, "template", template)
	}
	if len(words) == 0 {
		return nil, serrors.New("empty exec template")
	}
	return &CommandNetwork{prefix: words}, nil
}

// ContainerlabTemplate returns the exec template for containers deployed by
// containerlab, which are named clab-<lab>-<node>.
func ContainerlabTemplate(docker, lab string) string {
	return docker + " exec clab-" + lab + "-" + DevicePlaceholder
}

// Command returns the host command line that runs argv on the device.
func (n *CommandNetwork) Command(device string, argv ...string) []string {
	cmd := make([]string, 0, len(n.prefix)+len(argv))
	for _, w := range n.prefix {
		cmd = append(cmd, strings.ReplaceAll(w, DevicePlaceholder, device))
	}
	return append(cmd, argv...)
}

func (n *CommandNetwork) Exec(ctx context.Context, device string, argv ...string) ([]byte, error) {
	args := n.Command(device, argv...)
	log.FromCtx(ctx).Debug("Executing on device", "device", device, "cmd", args)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, serrors.Wrap("executing on device", err, "device", device,
			"cmd", strings.Join(argv, " "), "stderr", strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
