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

package command_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rs4lk/rs4lk/private/app/command"
	"github.com/rs4lk/rs4lk/private/config"
)

func newRoot() *cobra.Command {
	root := &cobra.Command{Use: "rs4lk"}
	root.AddCommand(
		command.NewSample(root, config.StringSampler{Text: "key = 1\n", Name: "test"}),
		command.NewVersion(root),
		command.NewGendocs(root),
	)
	return root
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRoot()
	root.SetOut(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestSample(t *testing.T) {
	assert.Equal(t, "key = 1\n", execute(t, "sample"))
}

func TestVersion(t *testing.T) {
	out := execute(t, "version")
	assert.Contains(t, out, "rs4lk\n")
	assert.Contains(t, out, "Version:")
	assert.Contains(t, out, "Revision:")
}

func TestGendocs(t *testing.T) {
	dir := t.TempDir()
	execute(t, "gendocs", dir)
	raw, err := os.ReadFile(filepath.Join(dir, "rs4lk_sample.md"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "title: rs4lk sample")
}
