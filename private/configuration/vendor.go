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
	"bufio"
	"context"
	"errors"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/rs4lk/rs4lk/pkg/log"
	"github.com/rs4lk/rs4lk/pkg/private/serrors"
)

// ErrConfig indicates a device configuration that cannot be processed.
var ErrConfig = errors.New("invalid configuration")

// Vendor is the vendor specific part of a device configuration.
type Vendor interface {
	// Image is the container image that runs the vendor's router software.
	Image() string
	// Init parses vendor specific details from the raw configuration. It
	// runs after the facts are available and before session inference.
	Init(c *Configuration) error
	// OnLoadComplete runs after session inference.
	OnLoadComplete(c *Configuration) error
	// LocalAS returns the local AS as configured in the raw configuration,
	// or 0 if none is configured.
	LocalAS(c *Configuration) (uint32, error)
}

var (
	registryMtx sync.RWMutex
	registry    = map[string]func() Vendor{}
)

// Register makes a vendor available under tag. It panics if the tag is
// already taken.
func Register(tag string, newVendor func() Vendor) {
	registryMtx.Lock()
	defer registryMtx.Unlock()
	if _, ok := registry[tag]; ok {
		panic("vendor registered twice: " + tag)
	}
	registry[tag] = newVendor
}

// NewVendor returns a new instance of the vendor registered under tag.
func NewVendor(tag string) (Vendor, error) {
	registryMtx.RLock()
	defer registryMtx.RUnlock()
	newVendor, ok := registry[tag]
	if !ok {
		return nil, serrors.Join(ErrConfig, nil, "reason", "unknown vendor", "vendor", tag,
			"known", strings.Join(vendorTags(), ","))
	}
	return newVendor(), nil
}

// Vendors returns the registered vendor tags in order.
func Vendors() []string {
	registryMtx.RLock()
	defer registryMtx.RUnlock()
	return vendorTags()
}

func vendorTags() []string {
	tags := make([]string, 0, len(registry))
	for tag := range registry {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Configuration is a loaded device configuration: the raw lines, the facts
// of the analysis engine and the vendor specific behaviour.
type Configuration struct {
	vendor Vendor
	facts  Facts
	lines  []string
}

// New creates a configuration of the given vendor backed by facts. It must
// be loaded before use.
func New(vendor Vendor, facts Facts) *Configuration {
	return &Configuration{vendor: vendor, facts: facts}
}

// Load reads the raw configuration and completes the facts. It fails with
// ErrConfig if the configuration file is empty.
func (c *Configuration) Load(ctx context.Context) error {
	lines, err := readLines(c.facts.Path())
	if err != nil {
		return serrors.Join(ErrConfig, err, "device", c.Name())
	}
	if len(lines) == 0 {
		return serrors.Join(ErrConfig, nil, "reason", "empty config file",
			"device", c.Name(), "path", c.Path())
	}
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	c.lines = lines

	// Prime the facts so that every later step sees the same objects.
	c.facts.Interfaces()
	c.facts.BGPSessions()

	if err := c.vendor.Init(c); err != nil {
		return serrors.Join(ErrConfig, err, "step", "init", "device", c.Name())
	}
	InferDirectSessions(ctx, c.facts)
	if err := c.vendor.OnLoadComplete(c); err != nil {
		return serrors.Join(ErrConfig, err, "step", "load complete", "device", c.Name())
	}
	log.FromCtx(ctx).Debug("Loaded device configuration", "device", c.Name(),
		"lines", len(c.lines), "sessions", len(c.facts.BGPSessions()))
	return nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

// Name is the device name.
func (c *Configuration) Name() string {
	return c.facts.Name()
}

// Path is the location of the raw configuration.
func (c *Configuration) Path() string {
	return c.facts.Path()
}

// Image is the container image of the device.
func (c *Configuration) Image() string {
	return c.vendor.Image()
}

// Lines returns the stripped lines of the raw configuration.
func (c *Configuration) Lines() []string {
	return c.lines
}

// Interfaces returns the configured interfaces.
func (c *Configuration) Interfaces() map[string]*Interface {
	return c.facts.Interfaces()
}

// BGPSessions returns the BGP sessions completed by inference.
func (c *Configuration) BGPSessions() map[int]*BGPSession {
	return c.facts.BGPSessions()
}

// LocalAS returns the local AS of the device. If the analysis engine does
// not know it, the vendor configuration is consulted and the result is
// stored back into the facts.
func (c *Configuration) LocalAS() (uint32, error) {
	if asn := c.facts.LocalAS(); asn > 0 {
		return asn, nil
	}
	asn, err := c.vendor.LocalAS(c)
	if err != nil {
		return 0, serrors.Wrap("reading vendor local AS", err, "device", c.Name())
	}
	c.facts.SetLocalAS(asn)
	return asn, nil
}
