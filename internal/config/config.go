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

// Package config holds the behavior switches of the region inference pipeline.
package config

import "strings"

// Behavior represents switches for the analysis stages.
type Behavior uint8

const (
	// MayDangle honors the may-dangle predicate at drop points. When disabled,
	// a drop keeps every lifetime in the dropped variable's type live.
	MayDangle Behavior = 1 << iota

	// UseAfterScope reports borrows whose region continues past the end of the
	// borrowed storage.
	UseAfterScope

	// Explain selects a later use point for each conflict.
	Explain

	// Invariance emits reverse outlives constraints for invariant positions.
	Invariance
)

// BehaviorFlags is the set of enabled [Behavior] switches.
type BehaviorFlags = BitMask[Behavior]

// DefaultBehavior returns the switches enabled by default.
func DefaultBehavior() BehaviorFlags {
	return NewBitMask(MayDangle, UseAfterScope, Explain, Invariance)
}

// Names maps flag names to behaviors, in display order.
var Names = []struct {
	Name  string
	Flag  Behavior
	Usage string
}{
	{"may-dangle", MayDangle, "honor the may-dangle predicate at drop points"},
	{"use-after-scope", UseAfterScope, "report borrows outliving their storage"},
	{"explain", Explain, "select a later use point for each conflict"},
	{"invariance", Invariance, "emit reverse constraints for invariant positions"},
}

// Describe lists the enabled behaviors by name, e.g. "may-dangle,explain".
func Describe(b BehaviorFlags) string {
	var sb strings.Builder

	for _, n := range Names {
		if !b.Enabled(n.Flag) {
			continue
		}

		if sb.Len() > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(n.Name)
	}

	return sb.String()
}
