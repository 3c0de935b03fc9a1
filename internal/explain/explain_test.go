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

package explain_test

import (
	"testing"

	"fillmore-labs.com/regionck/internal/constraint"
	. "fillmore-labs.com/regionck/internal/explain"
	"fillmore-labs.com/regionck/internal/liveness"
	"fillmore-labs.com/regionck/internal/testsource"
	"fillmore-labs.com/regionck/ir"
	"fillmore-labs.com/regionck/region"
)

func explainer(t *testing.T, fn *ir.Function) *Explainer {
	t.Helper()

	live := liveness.Analyze(t.Context(), fn, true)
	set := constraint.Generate(t.Context(), fn, live, constraint.Options{Invariance: true})

	return New(fn, set, true)
}

func TestUseTieBreak(t *testing.T) {
	t.Parallel()

	fn := testsource.Parse(t, `
function: tie
variables:
  - {name: x, type: u32}
  - {name: r, type: "&'r u32"}
blocks:
  - label: A
    stmts:
      - def: [r]
        borrow: [{lifetime: "'a", path: x}]
        subtype: [{sub: "&'a u32", sup: "&'r u32"}]
      - def: [x]
    succ: [C, B]
  - label: B
    term: {use: [r]}
  - label: C
    term: {use: [r]}
`)

	e := explainer(t, fn)
	all := region.Full(fn.Graph.NumPoints())

	u, ok := e.Use(testsource.Lifetime(t, fn, "'a"), testsource.Point(t, fn, "A.1"), all)
	if !ok {
		t.Fatal("No use found")
	}

	if got, want := fn.Graph.Name(u), "B.0"; got != want {
		t.Errorf("Got use %s, want %s", got, want)
	}
}

func TestUseNearest(t *testing.T) {
	t.Parallel()

	fn := testsource.Scenario(t, "get-mut-conflict")
	e := explainer(t, fn)

	within := testsource.Region(t, fn, "A.1", "B.0", "B.1", "B.2")

	u, ok := e.Use(testsource.Lifetime(t, fn, "'m"), testsource.Point(t, fn, "B.1"), within)
	if !ok || fn.Graph.Name(u) != "B.2" {
		t.Errorf("Got use %s (%t), want B.2", fn.Graph.Name(u), ok)
	}

	// 'x does not flow back into 'm, so value is no use of 'x.
	if _, ok := e.Use(testsource.Lifetime(t, fn, "'x"), testsource.Point(t, fn, "A.0"), testsource.Region(t, fn, "A.1")); ok {
		t.Error("Found use of a lifetime the borrow does not flow into")
	}
}

func TestUseDrop(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scenario string
		found    bool
	}{
		{"drop-dangle", false},
		{"drop-strict", true},
	}

	for _, tt := range tests {
		t.Run(tt.scenario, func(t *testing.T) {
			t.Parallel()

			fn := testsource.Scenario(t, tt.scenario)
			e := explainer(t, fn)

			u, ok := e.Use(testsource.Lifetime(t, fn, "'a"), testsource.Point(t, fn, "A.2"), region.Full(fn.Graph.NumPoints()))
			if ok != tt.found {
				t.Fatalf("Found use %t, want %t", ok, tt.found)
			}

			if ok && fn.Graph.Name(u) != "A.3" {
				t.Errorf("Got use %s, want A.3", fn.Graph.Name(u))
			}
		})
	}
}

func TestUseAcrossGap(t *testing.T) {
	t.Parallel()

	fn := testsource.Scenario(t, "scope-gap")
	e := explainer(t, fn)

	// A.3 lies between the storage end and the next point of the region.
	within := testsource.Region(t, fn, "A.1", "A.4")

	u, ok := e.Use(testsource.Lifetime(t, fn, "'a"), testsource.Point(t, fn, "A.2"), within)
	if !ok || fn.Graph.Name(u) != "A.4" {
		t.Errorf("Got use %s (%t), want A.4", fn.Graph.Name(u), ok)
	}

	if _, ok := e.Use(testsource.Lifetime(t, fn, "'a"), testsource.Point(t, fn, "A.2"), testsource.Region(t, fn, "A.1")); ok {
		t.Error("Found use outside the region")
	}
}
