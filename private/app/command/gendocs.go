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

package command

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// NewGendocs creates a hidden command that writes markdown documentation of
// the command tree to a directory.
func NewGendocs(pather Pather) *cobra.Command {
	return &cobra.Command{
		Use:    "gendocs <directory>",
		Short:  "Generate documentation",
		Args:   cobra.ExactArgs(1),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			root.DisableAutoGenTag = true

			directory := args[0]
			if err := os.MkdirAll(directory, 0o755); err != nil {
				return fmt.Errorf("creating directory: %w", err)
			}
			prepend := func(file string) string {
				name := strings.TrimSuffix(filepath.Base(file), ".md")
				return fmt.Sprintf("---\ntitle: %s\n---\n\n",
					strings.ReplaceAll(name, "_", " "))
			}
			link := func(name string) string {
				return strings.ToLower(name)
			}
			if err := doc.GenMarkdownTreeCustom(root, directory, prepend, link); err != nil {
				return fmt.Errorf("generating documentation for %s: %w",
					pather.CommandPath(), err)
			}
			return nil
		},
	}
}
