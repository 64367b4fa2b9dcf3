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

// Package command contains the generic subcommands of rs4lk applications.
package command

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/rs4lk/rs4lk/private/config"
)

// Pather returns the command path of the parent command.
type Pather interface {
	CommandPath() string
}

// NewSample creates a command that prints the sample configuration.
func NewSample(pather Pather, sampler config.Sampler) *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Display a sample configuration file",
		Example: fmt.Sprintf("  %[1]s sample > rs4lk.toml\n"+
			"  %[1]s --config rs4lk.toml", pather.CommandPath()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sampler.Sample(cmd.OutOrStdout(), nil, nil)
			return nil
		},
	}
}

// NewVersion creates a command that prints the build information.
func NewVersion(pather Pather) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), VersionInfo(pather.CommandPath()))
		},
	}
}

// VersionInfo returns the module version and VCS state of the binary.
func VersionInfo(name string) string {
	version, revision, modified := "(devel)", "unknown", ""
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" {
			version = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				revision = s.Value
			case "vcs.modified":
				if s.Value == "true" {
					modified = " (modified)"
				}
			}
		}
	}
	return fmt.Sprintf("%s\n  Version:  %s\n  Revision: %s%s\n", name, version, revision,
		modified)
}
