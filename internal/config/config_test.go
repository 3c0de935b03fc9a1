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

package config_test

import (
	"testing"

	. "fillmore-labs.com/regionck/internal/config"
)

func TestBitMask(t *testing.T) {
	t.Parallel()

	b := NewBitMask(MayDangle, Explain)

	if !b.Enabled(MayDangle) || !b.Enabled(Explain) || b.Enabled(Invariance) {
		t.Fatalf("Unexpected flags %08b", b.Value())
	}

	b.Set(MayDangle, false)
	b.Set(Invariance, true)

	if b.Enabled(MayDangle) || !b.Enabled(Invariance) {
		t.Errorf("Set did not update flags: %08b", b.Value())
	}

	c := b.With(UseAfterScope, true)
	if b.Enabled(UseAfterScope) || !c.Enabled(UseAfterScope) {
		t.Error("With modified the receiver")
	}
}

func TestDefaultBehavior(t *testing.T) {
	t.Parallel()

	d := DefaultBehavior()

	for _, n := range Names {
		if !d.Enabled(n.Flag) {
			t.Errorf("Behavior %s disabled by default", n.Name)
		}
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flags BehaviorFlags
		want  string
	}{
		{"None", NewBitMask[Behavior](), ""},
		{"One", NewBitMask(Invariance), "invariance"},
		{"Ordered", NewBitMask(Explain, MayDangle), "may-dangle,explain"},
		{"Default", DefaultBehavior(), "may-dangle,use-after-scope,explain,invariance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Describe(tt.flags); got != tt.want {
				t.Errorf("Describe = %q, want %q", got, tt.want)
			}
		})
	}
}
