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

package solver_test

import (
	"context"
	"errors"
	"testing"

	"fillmore-labs.com/regionck/cfg"
	"fillmore-labs.com/regionck/internal/constraint"
	"fillmore-labs.com/regionck/internal/liveness"
	. "fillmore-labs.com/regionck/internal/solver"
	"fillmore-labs.com/regionck/internal/testsource"
	"fillmore-labs.com/regionck/ir"
	"fillmore-labs.com/regionck/region"
)

func constraints(t *testing.T, fn *ir.Function, mayDangle bool) *constraint.Set {
	t.Helper()

	live := liveness.Analyze(t.Context(), fn, mayDangle)

	return constraint.Generate(t.Context(), fn, live, constraint.Options{Invariance: true})
}

func solve(t *testing.T, fn *ir.Function, opts Options) *Solution {
	t.Helper()

	sol, err := Solve(t.Context(), fn, constraints(t, fn, true), opts)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	return sol
}

func TestSolveScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scenario string
		want     map[string][]string
	}{
		{"branch-join", map[string][]string{
			"'foo": {"A.1", "B.0", "C.0"},
			"'bar": {"B.2", "C.0"},
			"'p":   {"A.1", "B.0", "B.2", "C.0"},
		}},
		{"branch-join-cell", map[string][]string{
			"'foo": {"A.1", "B.0", "C.0"},
			"'bar": {"B.2", "C.0"},
			"'p":   {"A.1", "B.0", "B.2", "C.0"},
		}},
		{"get-mut", map[string][]string{
			"'m": {"A.1", "B.0", "B.1"},
			"'v": {"A.1", "B.0", "B.1"},
			"'x": {"B.1"},
		}},
		{"shared-write", map[string][]string{
			"'b": {"A.1", "A.2"},
			"'r": {"A.1", "A.2"},
		}},
		{"reassign", map[string][]string{
			"'a": {"A.1"},
			"'b": {"A.3", "A.4"},
			"'r": {"A.1", "A.3", "A.4"},
		}},
		{"gap", map[string][]string{
			"'a": {"A.1"},
			"'b": {"A.4"},
			"'r": {"A.1", "A.4"},
		}},
		{"drop-dangle", map[string][]string{"'a": {"A.1"}}},
		{"drop-strict", map[string][]string{"'a": {"A.1", "A.2", "A.3"}}},
		{"loop", map[string][]string{
			"'a": {"A.1", "B.0", "B.1"},
			"'r": {"A.1", "B.0", "B.1"},
		}},
		{"scope-gap", map[string][]string{
			"'a": {"A.1", "A.4"},
			"'r": {"A.1"},
			"'s": {"A.4"},
		}},
		{"scope-loop", map[string][]string{
			"'a": {"B.1"},
			"'r": {"B.1"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.scenario, func(t *testing.T) {
			t.Parallel()

			fn := testsource.Scenario(t, tt.scenario)
			sol := solve(t, fn, Options{})

			if got, want := sol.Len(), len(fn.Lifetimes); got != want {
				t.Errorf("Got %d regions, want %d", got, want)
			}

			for name, points := range tt.want {
				l := testsource.Lifetime(t, fn, name)
				want := testsource.Region(t, fn, points...)

				if got := sol.Region(l); !got.Equal(want) {
					t.Errorf("Region of %s is %s, want %s", name, fn.Graph.Format(got), fn.Graph.Format(want))
				}
			}

			if len(sol.Violations) != 0 {
				t.Errorf("Got %d placeholder violations", len(sol.Violations))
			}
		})
	}
}

func TestInvarianceNeutrality(t *testing.T) {
	t.Parallel()

	fn := testsource.Scenario(t, "branch-join-cell")
	live := liveness.Analyze(t.Context(), fn, true)

	results := make([]*Solution, 0, 2)

	for _, invariance := range []bool{false, true} {
		set := constraint.Generate(t.Context(), fn, live, constraint.Options{Invariance: invariance})

		sol, err := Solve(t.Context(), fn, set, Options{})
		if err != nil {
			t.Fatal(err)
		}

		results = append(results, sol)
	}

	for i := range fn.Lifetimes {
		l := ir.LifetimeID(i + 1)
		if !results[0].Region(l).Equal(results[1].Region(l)) {
			t.Errorf("Reverse constraints changed region of %s", fn.LifetimeName(l))
		}
	}
}

func TestPlaceholder(t *testing.T) {
	t.Parallel()

	fn := testsource.Scenario(t, "placeholder")
	sol := solve(t, fn, Options{})

	p := testsource.Lifetime(t, fn, "'p")

	if got, want := sol.Region(p), testsource.Region(t, fn, "A.0", "A.1"); !got.Equal(want) {
		t.Errorf("Placeholder region changed to %s", fn.Graph.Format(got))
	}

	if len(sol.Violations) != 1 {
		t.Fatalf("Got %d placeholder violations, want 1", len(sol.Violations))
	}

	v := sol.Violations[0]

	if v.Lifetime != p {
		t.Errorf("Violation of %s, want 'p", fn.LifetimeName(v.Lifetime))
	}

	if got, want := fn.Graph.Name(v.Constraint.Point()), "A.1"; got != want {
		t.Errorf("Violation at %s, want %s", got, want)
	}

	if want := testsource.Region(t, fn, "A.2"); !v.Missing.Equal(want) {
		t.Errorf("Missing points %s, want %s", fn.Graph.Format(v.Missing), fn.Graph.Format(want))
	}
}

func TestPlaceholderAllPoints(t *testing.T) {
	t.Parallel()

	fn := testsource.Parse(t, `
function: static
lifetimes:
  - {name: "'static", placeholder: true}
variables:
  - {name: q, type: "&'static u32"}
  - {name: r, type: "&'r u32"}
blocks:
  - label: A
    stmts:
      - use: [q]
        def: [r]
        subtype: [{sub: "&'static u32", sup: "&'r u32"}]
      - use: [r]
`)

	sol := solve(t, fn, Options{})

	if len(sol.Violations) != 0 {
		t.Errorf("Got %d placeholder violations", len(sol.Violations))
	}

	if got := sol.Region(testsource.Lifetime(t, fn, "'static")).Len(); got != fn.Graph.NumPoints() {
		t.Errorf("Static region has %d points, want %d", got, fn.Graph.NumPoints())
	}
}

func TestIdempotence(t *testing.T) {
	t.Parallel()

	for _, fn := range testsource.Scenarios(t) {
		first := solve(t, fn, Options{})

		seeds := make(map[ir.LifetimeID]*region.Region, first.Len())
		for i := range first.Len() {
			l := ir.LifetimeID(i + 1)
			seeds[l] = first.Region(l)
		}

		grew := false
		second := solve(t, fn, Options{Initial: seeds, OnGrow: func(ir.LifetimeID, *region.Region) { grew = true }})

		if grew {
			t.Errorf("%s: re-solving grew a region", fn.Name)
		}

		for l, r := range seeds {
			if !second.Region(l).Equal(r) {
				t.Errorf("%s: re-solving changed region of %s", fn.Name, fn.LifetimeName(l))
			}
		}
	}
}

func TestMonotonicity(t *testing.T) {
	t.Parallel()

	for _, fn := range testsource.Scenarios(t) {
		last := make(map[ir.LifetimeID]*region.Region)

		sol := solve(t, fn, Options{OnGrow: func(l ir.LifetimeID, r *region.Region) {
			if prev, ok := last[l]; ok && (!prev.SubsetOf(r) || prev.Equal(r)) {
				t.Errorf("%s: region of %s did not strictly grow", fn.Name, fn.LifetimeName(l))
			}

			last[l] = r.Clone()
		}})

		for l, r := range last {
			if !sol.Region(l).Equal(r) {
				t.Errorf("%s: final region of %s differs from last growth", fn.Name, fn.LifetimeName(l))
			}
		}
	}
}

// TestLeastSolution compares the solution against every assignment of
// regions on small graphs.
func TestLeastSolution(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"shared-write", "branch"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var fn *ir.Function
			if name == "branch" {
				fn = testsource.Parse(t, branch)
			} else {
				fn = testsource.Scenario(t, name)
			}

			set := constraints(t, fn, true)

			sol, err := Solve(t.Context(), fn, set, Options{})
			if err != nil {
				t.Fatal(err)
			}

			if u := constraint.Check(fn.Graph, set, sol); len(u) != 0 {
				t.Fatalf("Solution violates %d constraints", len(u))
			}

			n, k := fn.Graph.NumPoints(), len(fn.Lifetimes)
			if n*k > 16 {
				t.Fatalf("Graph too large for enumeration: %d points, %d lifetimes", n, k)
			}

			satisfying := 0

			for bits := range 1 << (n * k) {
				candidate := assignment(bits, n, k)
				if len(constraint.Check(fn.Graph, set, candidate)) != 0 {
					continue
				}

				satisfying++

				for i := range k {
					l := ir.LifetimeID(i + 1)
					if !sol.Region(l).SubsetOf(candidate.Region(l)) {
						t.Errorf("Region of %s is not below satisfying assignment %b", fn.LifetimeName(l), bits)
					}
				}
			}

			if satisfying == 0 {
				t.Error("No satisfying assignment found")
			}
		})
	}
}

const branch = `
function: branch
variables:
  - {name: x, type: u32}
  - {name: r, type: "&'r u32"}
blocks:
  - label: A
    stmts:
      - def: [r]
        borrow: [{lifetime: "'a", path: x}]
        subtype: [{sub: "&'a u32", sup: "&'r u32"}]
    succ: [B, C]
  - label: B
    term: {use: [r]}
  - label: C
`

type regions []*region.Region

func (r regions) Region(l ir.LifetimeID) *region.Region { return r[l.Index()] }

// assignment decodes bits into k regions over n points.
func assignment(bits, n, k int) regions {
	r := make(regions, k)
	for i := range k {
		r[i] = new(region.Region)
		for p := range n {
			if bits&(1<<(i*n+p)) != 0 {
				r[i].Insert(p)
			}
		}
	}

	return r
}

func TestRoundLimit(t *testing.T) {
	t.Parallel()

	fn := testsource.Scenario(t, "branch-join")

	_, err := Solve(t.Context(), fn, constraints(t, fn, true), Options{MaxRounds: 1})
	if !errors.Is(err, ErrRoundLimit) {
		t.Errorf("Got error %v, want %v", err, ErrRoundLimit)
	}
}

func TestCancel(t *testing.T) {
	t.Parallel()

	b := cfg.NewBuilder()
	b.Block("A", 1)

	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	fn := ir.NewFunction("chain", g)
	set := constraint.NewSet()

	prev := fn.AddLifetime("")
	for range 2 * 256 {
		next := fn.AddLifetime("")
		set.AddOutlives(prev, next, cfg.Point{})
		prev = next
	}

	set.Freeze()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if _, err := Solve(ctx, fn, set, Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Got error %v, want %v", err, context.Canceled)
	}
}

func TestUnfrozenPanics(t *testing.T) {
	t.Parallel()

	fn := testsource.Scenario(t, "gap")

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for unfrozen set")
		}
	}()

	_, _ = Solve(t.Context(), fn, constraint.NewSet(), Options{})
}
