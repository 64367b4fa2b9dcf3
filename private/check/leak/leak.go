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

// Package leak implements the route leak check.
//
// The check announces a prefix that nobody else originates from each
// customer of the candidate AS, and verifies that none of the candidate's
// providers learns it over its session with the candidate. A provider that
// does learn it means the candidate leaks customer routes it should not
// accept, or should not export.
//
// Verification runs as a state machine:
//
//	Idle -> CollectProviderRoutes -> Aggregate -> SelectTestPrefix ->
//	InjectAndVerify -> Cleanup -> Done
//
// Topologies without providers or without customers pass without touching
// the network.
package leak

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"
	"golang.org/x/sync/errgroup"

	"github.com/rs4lk/rs4lk/pkg/log"
	"github.com/rs4lk/rs4lk/pkg/prefix"
	"github.com/rs4lk/rs4lk/pkg/private/serrors"
	"github.com/rs4lk/rs4lk/pkg/topology"
	"github.com/rs4lk/rs4lk/private/check"
)

const (
	// Name is the name of the check.
	Name = "leak"
	// DisplayName is the human readable name of the check.
	DisplayName = "Route Leak Check"
)

var _ check.Check = (*Check)(nil)

// State is a phase of a leak verification.
type State int

const (
	StateIdle State = iota
	StateCollectProviderRoutes
	StateAggregate
	StateSelectTestPrefix
	StateInjectAndVerify
	StateCleanup
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCollectProviderRoutes:
		return "collect_provider_routes"
	case StateAggregate:
		return "aggregate"
	case StateSelectTestPrefix:
		return "select_test_prefix"
	case StateInjectAndVerify:
		return "inject_and_verify"
	case StateCleanup:
		return "cleanup"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Check is the route leak check.
type Check struct {
	// Waiter waits for announcements to propagate. Defaults to a fixed wait
	// of DefaultWait.
	Waiter Waiter
	// CleanupTimeout bounds each withdrawal. Defaults to
	// DefaultCleanupTimeout.
	CleanupTimeout time.Duration
	Metrics        Metrics
}

// New creates the check from its configuration.
func New(cfg *Config, metrics Metrics) *Check {
	return &Check{
		Waiter:         cfg.Waiter(),
		CleanupTimeout: cfg.CleanupTimeout.Duration,
		Metrics:        metrics,
	}
}

func (c *Check) Name() string {
	return Name
}

func (c *Check) DisplayName() string {
	return DisplayName
}

// Verify runs the route leak check for the AS of cfg. It returns an error
// only if no verdict can be produced. Failures of individual network
// operations are recorded as failed sub-checks.
func (c *Check) Verify(ctx context.Context, cfg check.Configuration, topo *topology.Topology,
	net check.Network) (bool, string, error) {

	asn, err := cfg.LocalAS()
	if err != nil {
		return false, "", serrors.Wrap("determining local AS", err)
	}
	candidate, err := topo.Get(asn)
	if err != nil {
		return false, "", err
	}
	if want := topo.Candidate(); candidate.ASN != want.ASN {
		return false, "", serrors.New("local AS is not the topology candidate",
			"local_as", asn, "candidate", want.ASN)
	}
	v := &verification{
		check:     c,
		net:       net,
		candidate: candidate,
		providers: topo.Providers(),
		customers: topo.Customers(),
	}
	return v.run(ctx)
}

func (c *Check) waiter() Waiter {
	if c.Waiter == nil {
		return FixedWait{Duration: DefaultWait}
	}
	return c.Waiter
}

func (c *Check) cleanupTimeout() time.Duration {
	if c.CleanupTimeout <= 0 {
		return DefaultCleanupTimeout
	}
	return c.CleanupTimeout
}

// subCheck is the verdict for one version, customer and provider. Provider
// is nil for withdrawal failures.
type subCheck struct {
	Version  prefix.Version
	Customer *topology.Router
	Provider *topology.Router
	Passed   bool
	Reason   string
}

// injection is a test prefix announced at a customer.
type injection struct {
	Customer *topology.Router
	Prefix   netip.Prefix
}

type verification struct {
	check     *Check
	net       check.Network
	candidate *topology.Router
	providers []*topology.Router
	customers []*topology.Router

	state      State
	vacuous    string
	announced  prefix.Set
	aggregated map[prefix.Version]prefix.Set
	tests      []netip.Prefix
	live       *injection
	results    []subCheck
}

func (v *verification) run(ctx context.Context) (bool, string, error) {
	ctx, logger := log.WithLabels(ctx, "candidate", v.candidate.ASN)
	for v.state != StateDone {
		prev := v.state
		next, err := v.step(ctx)
		if err != nil {
			v.cleanup(ctx)
			return false, "", serrors.Wrap("leak verification aborted", err,
				"state", prev)
		}
		logger.Debug("Leak verification state change", "from", prev, "to", next)
		v.state = next
	}
	return v.verdict()
}

func (v *verification) step(ctx context.Context) (State, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "leak."+v.state.String())
	defer span.Finish()

	switch v.state {
	case StateIdle:
		return v.start(ctx), nil
	case StateCollectProviderRoutes:
		return StateAggregate, v.collect(ctx)
	case StateAggregate:
		v.aggregate(ctx)
		return StateSelectTestPrefix, nil
	case StateSelectTestPrefix:
		return StateInjectAndVerify, v.selectTests(ctx)
	case StateInjectAndVerify:
		return StateCleanup, v.injectAll(ctx)
	case StateCleanup:
		v.cleanup(ctx)
		return StateDone, nil
	default:
		return StateDone, serrors.New("invalid state", "state", v.state)
	}
}

func (v *verification) start(ctx context.Context) State {
	logger := log.FromCtx(ctx)
	switch {
	case len(v.providers) == 0:
		v.vacuous = "no providers found"
	case len(v.customers) == 0:
		v.vacuous = "no customers found"
	default:
		return StateCollectProviderRoutes
	}
	logger.Info("Skipping leak check", "reason", v.vacuous)
	return StateDone
}

// collect reads the tables of all providers in parallel. A provider whose
// table cannot be read does not contribute routes.
func (v *verification) collect(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	sets := make([]prefix.Set, len(v.providers))
	g, gctx := errgroup.WithContext(ctx)
	for i, provider := range v.providers {
		g.Go(func() error {
			defer log.HandlePanic()
			logger.Info("Reading networks from provider", "asn", provider.ASN)
			set, err := v.net.BGPNetworks(gctx, provider.Name)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Info("Ignoring provider networks, reading failed",
					"asn", provider.ASN, "err", err)
				return nil
			}
			sets[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	var all prefix.Set
	for _, set := range sets {
		all = all.Union(set)
	}
	v.announced = prefix.DropDefault(all)
	return nil
}

func (v *verification) aggregate(ctx context.Context) {
	v.aggregated = make(map[prefix.Version]prefix.Set, len(prefix.Versions))
	for _, version := range prefix.Versions {
		v.aggregated[version] = prefix.Aggregate(v.announced, version)
	}
	log.FromCtx(ctx).Debug("Aggregated provider networks",
		"ipv4", v.aggregated[prefix.V4], "ipv6", v.aggregated[prefix.V6])
}

func (v *verification) selectTests(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	for _, version := range prefix.Versions {
		occupied := v.aggregated[version]
		if occupied.IsEmpty() {
			logger.Info("No networks announced, skipping version", "version", version)
			continue
		}
		p, err := prefix.PickDisjoint(version, occupied)
		if errors.Is(err, prefix.ErrExhaustedAddressSpace) {
			logger.Error("No free test prefix, skipping version", "version", version,
				"bits", prefix.TargetBits(version), "err", err)
			v.record(ctx, subCheck{
				Version: version,
				Reason:  fmt.Sprintf("no free %s test prefix: %s", version, err),
			})
			continue
		}
		if err != nil {
			return err
		}
		logger.Info("Chosen network to announce", "version", version, "prefix", p)
		v.tests = append(v.tests, p)
	}
	return nil
}

func (v *verification) injectAll(ctx context.Context) error {
	for _, p := range v.tests {
		version := prefix.VersionOf(p)
		for _, customer := range v.customers {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := v.inject(ctx, version, customer, p); err != nil {
				return err
			}
		}
	}
	return nil
}

// inject runs the sub-checks of one customer. The test prefix is withdrawn
// before returning, whatever the outcome. Only context errors are returned.
func (v *verification) inject(ctx context.Context, version prefix.Version,
	customer *topology.Router, p netip.Prefix) error {

	logger := log.FromCtx(ctx).New("version", version, "customer", customer.ASN,
		"prefix", p)
	adj, ok := customer.NeighbourByName(v.candidate.Name)
	if !ok {
		logger.Info("Skipping customer, not directly connected")
		return nil
	}
	if len(adj.PublicAddresses(version)) == 0 {
		logger.Info("Skipping customer, no public address towards candidate")
		return nil
	}

	v.live = &injection{Customer: customer, Prefix: p}
	defer v.cleanup(ctx)
	if err := v.net.Announce(ctx, customer.Name, customer.ASN, p); err != nil {
		logger.Error("Announcing test prefix failed", "err", err)
		for _, provider := range v.providers {
			v.record(ctx, subCheck{
				Version:  version,
				Customer: customer,
				Provider: provider,
				Reason:   fmt.Sprintf("announcing %s at AS%d failed: %s", p, customer.ASN, err),
			})
		}
		return ctx.Err()
	}

	logger.Info("Waiting for announcement to propagate")
	if err := v.check.waiter().Wait(ctx, v.leaked(customer, p)); err != nil {
		return err
	}

	for _, provider := range v.providers {
		passed, reason, err := v.verifyProvider(ctx, provider, p)
		if err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		v.record(ctx, subCheck{
			Version:  version,
			Customer: customer,
			Provider: provider,
			Passed:   passed,
			Reason:   reason,
		})
	}
	return nil
}

// verifyProvider checks that the provider did not learn p from the
// candidate.
func (v *verification) verifyProvider(ctx context.Context, provider *topology.Router,
	p netip.Prefix) (bool, string, error) {

	version := prefix.VersionOf(p)
	peer, err := v.candidatePeer(provider, version)
	if err != nil {
		return false, err.Error(), err
	}
	learned, err := v.net.NeighbourBGPNetworks(ctx, provider.Name, peer)
	if err != nil {
		return false, fmt.Sprintf("reading routes of AS%d from %s failed: %s",
			provider.ASN, peer, err), err
	}
	if learned.Contains(p) {
		return false, fmt.Sprintf("AS%d learned %s from AS%d",
			provider.ASN, p, v.candidate.ASN), nil
	}
	return true, "", nil
}

// candidatePeer returns the candidate's address on its link to the
// provider.
func (v *verification) candidatePeer(provider *topology.Router,
	version prefix.Version) (netip.Addr, error) {

	adj, ok := provider.NeighbourByName(v.candidate.Name)
	if !ok {
		return netip.Addr{}, serrors.New("provider not adjacent to candidate",
			"provider", provider.ASN)
	}
	peer, ok := adj.PublicAddress(version)
	if !ok {
		return netip.Addr{}, serrors.New("no public candidate address on provider link",
			"provider", provider.ASN, "version", version)
	}
	return peer, nil
}

// leaked is the convergence condition: some provider learned p from the
// candidate.
func (v *verification) leaked(customer *topology.Router, p netip.Prefix) Condition {
	return func(ctx context.Context) bool {
		for _, provider := range v.providers {
			if passed, _, err := v.verifyProvider(ctx, provider, p); err == nil && !passed {
				log.FromCtx(ctx).Debug("Test prefix propagated", "customer", customer.ASN,
					"provider", provider.ASN, "prefix", p)
				return true
			}
		}
		return false
	}
}

// cleanup withdraws the live test prefix, if any. The withdrawal is not
// bound to the cancellation of ctx.
func (v *verification) cleanup(ctx context.Context) {
	if v.live == nil {
		return
	}
	live := v.live
	v.live = nil

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), v.check.cleanupTimeout())
	defer cancel()
	logger := log.FromCtx(ctx)
	err := v.net.Withdraw(ctx, live.Customer.Name, live.Customer.ASN, live.Prefix)
	if err == nil {
		return
	}
	logger.Error("Withdrawing test prefix failed", "customer", live.Customer.ASN,
		"prefix", live.Prefix, "err", err)
	reason := fmt.Sprintf("withdrawing %s at AS%d failed: %s",
		live.Prefix, live.Customer.ASN, err)
	v.record(ctx, subCheck{
		Version:  prefix.VersionOf(live.Prefix),
		Customer: live.Customer,
		Reason:   reason,
	})
}

func (v *verification) record(ctx context.Context, r subCheck) {
	v.results = append(v.results, r)
	v.check.Metrics.observe(r)
	if r.Provider == nil {
		return
	}
	logger := log.FromCtx(ctx)
	if r.Passed {
		logger.Info("Check passed", "version", r.Version, "customer", r.Customer.ASN,
			"provider", r.Provider.ASN)
		return
	}
	logger.Info("Check not passed", "version", r.Version, "customer", r.Customer.ASN,
		"provider", r.Provider.ASN, "reason", r.Reason)
}

func (v *verification) verdict() (bool, string, error) {
	if v.vacuous != "" {
		return true, v.vacuous, nil
	}
	var failures []string
	for _, r := range v.results {
		if !r.Passed {
			failures = append(failures, r.Reason)
		}
	}
	if len(failures) > 0 {
		return false, strings.Join(failures, "; "), nil
	}
	return true, fmt.Sprintf("%d sub-checks passed", len(v.results)), nil
}
