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

// Package prom contains label names, result values and buckets shared by the
// prometheus metrics of rs4lk.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace is the metric namespace of all rs4lk metrics.
const Namespace = "rs4lk"

// Common label names.
const (
	// LabelResult is the label for result classifications.
	LabelResult = "result"
	// LabelCheck is the name of a verification check.
	LabelCheck = "check"
	// LabelVersion is the IP version of a prefix.
	LabelVersion = "ip_version"
	// LabelOperation is the label for the name of an executed operation.
	LabelOperation = "op"
)

// Common result values.
const (
	// Success is no error and a positive verdict.
	Success = "ok_success"
	// Failure is no error but a negative verdict.
	Failure = "ok_failure"
	// Skipped means the unit of work did not run.
	Skipped = "skipped"
	// ErrNetwork is used for errors talking to emulated devices.
	ErrNetwork = "err_network"
	// ErrInternal is an internal error.
	ErrInternal = "err_internal"
	// ErrTimeout is a timeout error.
	ErrTimeout = "err_timeout"
)

// CheckDurationBuckets 1s, 2s, 4s, ... 512s, 1024s. A leak check waits for
// propagation once per customer and IP version.
var CheckDurationBuckets = prometheus.ExponentialBuckets(1, 2, 11)
