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


// rs4lk verifies that a router configuration does not leak routes learned
// from one provider to another.
package main

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/opentracing/opentracing-go"
	"golang.org/x/sync/errgroup"

	"github.com/rs4lk/rs4lk/pkg/log"
	"github.com/rs4lk/rs4lk/pkg/private/serrors"
	"github.com/rs4lk/rs4lk/pkg/topology"
	"github.com/rs4lk/rs4lk/private/app/launcher"
	"github.com/rs4lk/rs4lk/private/bgptable"
	"github.com/rs4lk/rs4lk/private/check"
	"github.com/rs4lk/rs4lk/private/check/leak"
	"github.com/rs4lk/rs4lk/private/configuration"
	"github.com/rs4lk/rs4lk/private/emulation"
	"github.com/rs4lk/rs4lk/private/gobgp"
	"github.com/rs4lk/rs4lk/rs4lk/config"
)

var globalCfg config.Config

func main() {
	application := launcher.Application{
		TOMLConfig: &globalCfg,
		ShortName:  "rs4lk",
		Main:       realMain,
	}
	application.Run()
}

func realMain(ctx context.Context) error {
	topo, err := topology.LoadFile(globalCfg.General.Topology)
	if err != nil {
		return serrors.Wrap("loading topology", err)
	}
	candidate := topo.Candidate()
	if asn := globalCfg.General.CandidateAS; asn != 0 && asn != candidate.ASN {
		return serrors.New("candidate AS mismatch",
			"configured", asn, "topology", candidate.ASN)
	}

	devCfg, err := loadConfiguration(ctx, candidate.Name)
	if err != nil {
		return err
	}

	tracer, closer, err := globalCfg.Tracing.NewTracer("rs4lk")
	if err != nil {
		return serrors.Wrap("initializing tracer", err)
	}
	defer closer.Close()
	opentracing.SetGlobalTracer(tracer)

	lab, labCloser, err := newNetwork(globalCfg.Emulation, globalCfg.BGPTable)
	if err != nil {
		return err
	}
	defer labCloser.Close()

	checks, err := newChecks(globalCfg.General.Checks)
	if err != nil {
		return err
	}
	runner := check.Runner{
		Checks:  checks,
		Metrics: check.NewMetrics(),
	}

	var results []check.Result
	g, errCtx := errgroup.WithContext(ctx)
	metricsCtx, stopMetrics := context.WithCancel(errCtx)
	defer stopMetrics()
	g.Go(func() error {
		defer log.HandlePanic()
		return globalCfg.Metrics.ServePrometheus(metricsCtx)
	})
	g.Go(func() error {
		defer log.HandlePanic()
		defer stopMetrics()
		results = runner.Run(errCtx, devCfg, topo, lab)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	check.Report(os.Stdout, results, isatty.IsTerminal(os.Stdout.Fd()))
	if !check.Passed(results) {
		return serrors.New("verification failed", "device", devCfg.Name())
	}
	return nil
}

// loadConfiguration parses the configuration of the candidate device. The
// device defaults to the name of the candidate router.
func loadConfiguration(ctx context.Context, candidate string) (*configuration.Configuration,
	error) {

	factsFile, err := configuration.LoadFactsFile(globalCfg.General.Facts)
	if err != nil {
		return nil, serrors.Wrap("loading facts", err)
	}
	store, err := configuration.NewStore(factsFile, configuration.DefaultStoreSize)
	if err != nil {
		return nil, serrors.Wrap("creating facts store", err)
	}
	device := globalCfg.General.Device
	if device == "" {
		device = candidate
	}
	facts, err := store.Facts(device)
	if err != nil {
		return nil, err
	}
	tag := globalCfg.General.Vendor
	if tag == "" {
		tag = store.Vendor(device)
	}
	vendor, err := configuration.NewVendor(tag)
	if err != nil {
		return nil, err
	}
	devCfg := configuration.New(vendor, facts)
	if err := devCfg.Load(ctx); err != nil {
		return nil, serrors.Wrap("loading device configuration", err, "device", device)
	}
	return devCfg, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newNetwork returns the lab the checks run against. Routes are injected
// and read either with vtysh inside the containers or through the gobgpd
// API of each device.
func newNetwork(emu config.Emulation, table config.BGPTable) (check.Network, io.Closer,
	error) {

	switch table.Kind {
	case config.BGPTableGoBGP:
		dialer := &gobgp.GRPCDialer{Address: table.GoBGPAddress}
		client := gobgp.Client{Dialer: dialer}
		return check.Lab{Announcer: client, Reader: client}, dialer, nil
	default:
		cmdNet, err := emulation.NewCommandNetwork(emu.Template)
		if err != nil {
			return nil, nil, err
		}
		return check.Lab{
			Announcer: emulation.Vtysh{Network: cmdNet},
			Reader:    bgptable.Vtysh{Network: cmdNet},
		}, nopCloser{}, nil
	}
}

func newChecks(names []string) ([]check.Check, error) {
	checks := make([]check.Check, 0, len(names))
	for _, name := range names {
		switch name {
		case leak.Name:
			checks = append(checks, leak.New(&globalCfg.Leak, leak.NewMetrics()))
		default:
			return nil, serrors.New("unknown check", "name", name)
		}
	}
	return checks, nil
}
