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

// Package config defines the pattern shared by all rs4lk configuration
// structs.
//
// A config struct is prepared in three steps. InitDefaults fills every field
// the user left unset. Validate checks the resulting values recursively.
// Sample writes a commented TOML sample of the struct; tests decode that
// sample again to keep it in sync with the defaults.
//
// Sample may panic if writing fails.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/rs4lk/rs4lk/pkg/private/serrors"
)

// Config is implemented by every configuration struct.
type Config interface {
	Sampler
	Validator
	Defaulter
}

// Validator checks that all fields hold valid values.
type Validator interface {
	Validate() error
}

// Defaulter fills unset fields with their default values.
type Defaulter interface {
	InitDefaults()
}

// Sampler writes a commented sample of the config to dst.
type Sampler interface {
	Sample(dst io.Writer, path Path, ctx CtxMap)
}

// TableSampler is a Sampler that is written as its own TOML table.
type TableSampler interface {
	Sampler
	// ConfigName is the name of the TOML table.
	ConfigName() string
}

// Path is the dotted header of a TOML table.
type Path []string

// Extend returns a copy of p with s appended.
func (p Path) Extend(s string) Path {
	return append(append(Path(nil), p...), s)
}

// NoValidator can be embedded by configs without validation.
type NoValidator struct{}

// Validate always returns nil.
func (NoValidator) Validate() error {
	return nil
}

// NoDefaulter can be embedded by configs without defaults.
type NoDefaulter struct{}

// InitDefaults does nothing.
func (NoDefaulter) InitDefaults() {}

// StringSampler is a TableSampler with a fixed sample text.
type StringSampler struct {
	Text string
	Name string
}

// Sample writes the text to dst.
func (s StringSampler) Sample(dst io.Writer, _ Path, _ CtxMap) {
	WriteString(dst, s.Text)
}

// ConfigName returns the table name.
func (s StringSampler) ConfigName() string {
	return s.Name
}

// ValidateAll validates in order and returns the first error.
func ValidateAll(validators ...Validator) error {
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return serrors.Wrap("validating config", err, "type", fmt.Sprintf("%T", v))
		}
	}
	return nil
}

// InitAll initializes all defaulters in order.
func InitAll(defaulters ...Defaulter) {
	for _, d := range defaulters {
		d.InitDefaults()
	}
}

// Decode decodes raw TOML into cfg. Unknown keys are an error.
func Decode(raw []byte, cfg any) error {
	return toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields().Decode(cfg)
}

// LoadFile decodes the TOML file into cfg.
func LoadFile(file string, cfg any) error {
	raw, err := os.ReadFile(file)
	if err != nil {
		return serrors.Wrap("reading config file", err, "file", file)
	}
	if err := Decode(raw, cfg); err != nil {
		return serrors.Wrap("decoding config file", err, "file", file)
	}
	return nil
}

type renamedSampler struct {
	Sampler
	name string
}

func (s renamedSampler) ConfigName() string {
	return s.name
}

// OverrideName returns s written under the table name.
func OverrideName(s Sampler, name string) Sampler {
	return renamedSampler{Sampler: s, name: name}
}
