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
	"sort"
	"sync"

	"github.com/hashicorp/golang-lru/arc/v2"

	"github.com/rs4lk/rs4lk/pkg/private/serrors"
)

// DefaultStoreSize is the number of device facts kept in memory.
const DefaultStoreSize = 256

// Store hands out the facts of devices in a facts file. Facts are built on
// first access and cached per device in an adaptive replacement cache, so
// repeated lookups of a device return the same object.
type Store struct {
	file *FactsFile

	mu    sync.Mutex
	cache *arc.ARCCache[string, *StaticFacts]
}

// NewStore creates a store for the devices in file with room for size
// devices.
func NewStore(file *FactsFile, size int) (*Store, error) {
	cache, err := arc.NewARC[string, *StaticFacts](size)
	if err != nil {
		return nil, serrors.Wrap("creating facts cache", err, "size", size)
	}
	return &Store{file: file, cache: cache}, nil
}

// Facts returns the facts of the device.
func (s *Store) Facts(device string) (*StaticFacts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.cache.Get(device); ok {
		return f, nil
	}
	d, ok := s.file.Devices[device]
	if !ok {
		return nil, serrors.New("no facts for device", "device", device)
	}
	f, err := NewStaticFacts(device, d)
	if err != nil {
		return nil, err
	}
	s.cache.Add(device, f)
	return f, nil
}

// Vendor returns the vendor tag of the device, or "" if it is not set.
func (s *Store) Vendor(device string) string {
	return s.file.Devices[device].Vendor
}

// Devices returns the device names in name order.
func (s *Store) Devices() []string {
	names := make([]string, 0, len(s.file.Devices))
	for name := range s.file.Devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Cached returns the devices whose facts are currently in memory.
func (s *Store) Cached() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := s.cache.Keys()
	sort.Strings(keys)
	return keys
}
