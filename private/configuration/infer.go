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
	"context"

	"github.com/rs4lk/rs4lk/pkg/log"
)

// InferDirectSessions binds every BGP session of f to the interface that
// directly connects it to its peers.
//
// Peerings are resolved in order. A resolved peering gets its LocalIP set.
// The session takes the outcome of its last peering lookup: if that peering
// has no directly connected interface, the session keeps a nil interface and
// is not directly connected, even when an earlier peering matched. A miss
// does not stop the remaining lookups.
func InferDirectSessions(ctx context.Context, f Facts) {
	logger := log.FromCtx(ctx)
	logger.Info("Inferring directly connected BGP sessions", "device", f.Name())

	for _, session := range SortedSessions(f) {
		session.Iface = nil
		for _, peering := range session.Peerings {
			iface, local, ok := f.InterfaceForPeering(peering)
			if !ok {
				session.Iface = nil
				continue
			}
			peering.LocalIP = local
			session.Iface = iface
		}
	}
	if logger.Enabled(log.DebugLevel) {
		for _, session := range SortedSessions(f) {
			logger.Debug("Resulting session", "device", f.Name(), "session", session.String())
		}
	}
}
