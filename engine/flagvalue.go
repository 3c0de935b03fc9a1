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
	"strconv"
	"strings"

	"fillmore-labs.com/regionck/internal/config"
)

// behaviorValue is a boolean [pflag.Value] bound to one switch of a behavior set.
type behaviorValue struct {
	flags *config.BehaviorFlags
	bit   config.Behavior
}

func newBehaviorValue(flags *config.BehaviorFlags, bit config.Behavior) behaviorValue {
	return behaviorValue{flags: flags, bit: bit}
}

// Set implements [pflag.Value]. Besides the forms of [strconv.ParseBool] it accepts "on" and "off".
func (v behaviorValue) Set(s string) error {
	var on bool

	switch strings.ToLower(s) {
	case "on":
		on = true

	case "off":

	default:
		var err error
		if on, err = strconv.ParseBool(s); err != nil {
			return err
		}
	}

	v.flags.Set(v.bit, on)

	return nil
}

// String implements [pflag.Value].
func (v behaviorValue) String() string {
	return strconv.FormatBool(v.enabled())
}

// Type implements [pflag.Value].
func (behaviorValue) Type() string { return "bool" }

// Get implements [flag.Getter].
func (v behaviorValue) Get() any { return v.enabled() }

// IsBoolFlag marks the value as a boolean flag for the standard flag package.
func (behaviorValue) IsBoolFlag() bool { return true }

func (v behaviorValue) enabled() bool {
	return v.flags != nil && v.flags.Enabled(v.bit)
}
