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

package config

const generalSample = `
# The AS topology file. (required)
topology = "topology.yml"

# The device facts file. (required)
facts = "facts.yml"

# The facts entry of the candidate. (default: name of the candidate router)
device = "as100"

# Overrides the vendor of the candidate's facts entry (frr|junos).
# (default: vendor of the facts entry)
vendor = "frr"

# If set, the candidate AS of the topology must match. (default 0)
candidate_as = 100

# The checks to run, in order. (default ["leak"])
checks = ["leak"]
`

const emulationSample = `
# The containerlab lab that runs the emulated routers.
lab = "rs4lk"

# The docker binary. (default "docker")
docker = "docker"

# The command prefix to run commands on a device. "{device}" is replaced by
# the device name. (default "<docker> exec clab-<lab>-{device}")
template = "docker exec clab-rs4lk-{device}"
`

const bgpTableSample = `
# How routes are injected and BGP tables are read (vtysh|gobgp).
# (default "vtysh")
kind = "vtysh"

# The gRPC address of gobgpd. "{device}" is replaced by the device name.
# (default "{device}:50051")
gobgp_address = "{device}:50051"
`
