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

package leak

import (
	"io"
	"time"

	"github.com/rs4lk/rs4lk/pkg/private/serrors"
	"github.com/rs4lk/rs4lk/pkg/private/util"
	"github.com/rs4lk/rs4lk/private/config"
)

const (
	// WaitFixed waits a fixed duration after each announcement.
	WaitFixed = "fixed"
	// WaitPoll polls the providers until the test prefix shows up or the
	// wait duration elapses.
	WaitPoll = "poll"

	// DefaultWait is the propagation delay after an announcement.
	DefaultWait = 20 * time.Second
	// DefaultPollInterval is the interval between polls of the providers.
	DefaultPollInterval = 2 * time.Second
	// DefaultCleanupTimeout bounds the withdrawal of a test prefix.
	DefaultCleanupTimeout = 10 * time.Second
)

var _ config.Config = (*Config)(nil)

// Config configures the route leak check.
type Config struct {
	// WaitKind is either "fixed" or "poll". (default "fixed")
	WaitKind string `toml:"wait_kind,omitempty"`
	// Wait is the propagation delay, or the poll timeout. (default 20s)
	Wait util.DurWrap `toml:"wait,omitempty"`
	// PollInterval is the interval between polls. (default 2s)
	PollInterval util.DurWrap `toml:"poll_interval,omitempty"`
	// CleanupTimeout bounds each withdrawal. (default 10s)
	CleanupTimeout util.DurWrap `toml:"cleanup_timeout,omitempty"`
}

func (cfg *Config) InitDefaults() {
	if cfg.WaitKind == "" {
		cfg.WaitKind = WaitFixed
	}
	if cfg.Wait.Duration == 0 {
		cfg.Wait.Duration = DefaultWait
	}
	if cfg.PollInterval.Duration == 0 {
		cfg.PollInterval.Duration = DefaultPollInterval
	}
	if cfg.CleanupTimeout.Duration == 0 {
		cfg.CleanupTimeout.Duration = DefaultCleanupTimeout
	}
}

func (cfg *Config) Validate() error {
	switch cfg.WaitKind {
	case WaitFixed, WaitPoll:
	default:
		return serrors.New("unknown wait kind", "kind", cfg.WaitKind)
	}
	if cfg.Wait.Duration < 0 {
		return serrors.New("wait must not be negative", "wait", cfg.Wait)
	}
	if cfg.WaitKind == WaitPoll && cfg.PollInterval.Duration <= 0 {
		return serrors.New("poll interval must be positive", "interval", cfg.PollInterval)
	}
	if cfg.CleanupTimeout.Duration <= 0 {
		return serrors.New("cleanup timeout must be positive", "timeout", cfg.CleanupTimeout)
	}
	return nil
}

func (cfg *Config) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, sample)
}

func (cfg *Config) ConfigName() string {
	return "leak"
}

// Waiter returns the configured waiter.
func (cfg *Config) Waiter() Waiter {
	if cfg.WaitKind == WaitPoll {
		return PollWait{Interval: cfg.PollInterval.Duration, Timeout: cfg.Wait.Duration}
	}
	return FixedWait{Duration: cfg.Wait.Duration}
}

const sample = `
# How to wait for an announcement to propagate, "fixed" or "poll".
# (default "fixed")
wait_kind = "fixed"

# Propagation delay for "fixed", upper bound for "poll". (default 20s)
wait = "20s"

# Interval between polls of the provider tables. (default 2s)
poll_interval = "2s"

# Upper bound for withdrawing a test prefix. (default 10s)
cleanup_timeout = "10s"
`
