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

package env

const metricsSample = `
# Listen address of the prometheus endpoint, for example ":9100" or
# "127.0.0.1:9100". Metrics are exported on /metrics while the checks run.
# Empty disables the endpoint. (default "")
prometheus = ""
`

const tracingSample = `
# Report a span per check and per verification phase. (default false)
enabled = false
# Sample every trace instead of the remote sampling strategy. (default false)
debug = false
# UDP address of the jaeger agent spans are sent to.
# (default: localhost:6831)
agent = "localhost:6831"
`
