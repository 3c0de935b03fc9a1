// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0


package engine

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrSettings is returned for malformed settings files.
var ErrSettings = errors.New("invalid settings")

// Settings represents the configuration file of an [Engine].
// Only settings that are present override the defaults.
type Settings struct {
	// MayDangle honors the may-dangle predicate at drop points.
	MayDangle *bool `yaml:"may-dangle,omitempty"`
	// UseAfterScope reports borrows outliving their storage.
	UseAfterScope *bool `yaml:"use-after-scope,omitempty"`
	// Explain selects a use point for each conflict.
	Explain *bool `yaml:"explain,omitempty"`
	// Invariance emits reverse constraints for invariant positions.
	Invariance *bool `yaml:"invariance,omitempty"`
	// MaxRounds limits outlives constraint applications per function.
	MaxRounds *int `yaml:"max-rounds,omitempty"`
	// Concurrency limits the number of functions analyzed in parallel.
	Concurrency *int `yaml:"concurrency,omitempty"`
}

// DecodeSettings reads [Settings] in YAML from r. Unknown keys are an error,
// an empty document yields zero Settings.
func DecodeSettings(r io.Reader) (Settings, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Settings
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("%w: %w", ErrSettings, err)
	}

	if s.MaxRounds != nil && *s.MaxRounds < 0 {
		return Settings{}, fmt.Errorf("%w: negative max-rounds %d", ErrSettings, *s.MaxRounds)
	}

	return s, nil
}

// ReadSettings reads [Settings] from the named file.
func ReadSettings(name string) (Settings, error) {
	f, err := os.Open(name)
	if err != nil {
		return Settings{}, err
	}
	defer f.Close()

	s, err := DecodeSettings(f)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", name, err)
	}

	return s, nil
}

// Options converts [Settings] into a list of [Option] for [New].
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() Options {
	var opts Options

	opts = appendOption(opts, s.MayDangle, WithMayDangle)
	opts = appendOption(opts, s.UseAfterScope, WithUseAfterScope)
	opts = appendOption(opts, s.Explain, WithExplain)
	opts = appendOption(opts, s.Invariance, WithInvariance)
	opts = appendOption(opts, s.MaxRounds, WithMaxRounds)
	opts = appendOption(opts, s.Concurrency, WithConcurrency)

	return opts
}

// appendOption appends a non-nil setting to an [Option] list.
func appendOption[T any](opts Options, value *T, constructor func(T) Option) Options {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
