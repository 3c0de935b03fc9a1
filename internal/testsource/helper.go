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

// Package testsource provides functions for tests.
//
// It is designed to simplify testing of the analysis stages by handling
// common boilerplate: parsing functions written in fixture notation, looking
// up shared scenarios and resolving names of points, lifetimes and variables.
package testsource

import (
	_ "embed"
	"testing"

	"fillmore-labs.com/regionck/cfg"
	"fillmore-labs.com/regionck/internal/fixture"
	"fillmore-labs.com/regionck/ir"
	"fillmore-labs.com/regionck/region"
)

//go:embed testdata/scenarios.txtar
var scenarios []byte

// Parse parses a single function in fixture notation.
func Parse(tb testing.TB, src string) *ir.Function {
	tb.Helper()

	fn, err := fixture.Parse([]byte(src))
	if err != nil {
		tb.Fatalf("Failed to parse function: %v", err)
	}

	return fn
}

// Scenarios returns all shared scenarios.
func Scenarios(tb testing.TB) []*ir.Function {
	tb.Helper()

	fns, err := fixture.ParseArchive(scenarios)
	if err != nil {
		tb.Fatalf("Failed to parse scenarios: %v", err)
	}

	return fns
}

// Scenario returns the shared scenario with the given function name.
func Scenario(tb testing.TB, name string) *ir.Function {
	tb.Helper()

	for _, fn := range Scenarios(tb) {
		if fn.Name == name {
			return fn
		}
	}

	tb.Fatalf("Unknown scenario %q", name)

	return nil
}

// Point resolves a point name like "A.1".
func Point(tb testing.TB, fn *ir.Function, name string) cfg.Point {
	tb.Helper()

	p, err := fn.Graph.Lookup(name)
	if err != nil {
		tb.Fatal(err)
	}

	return p
}

// Region returns the region of the named points.
func Region(tb testing.TB, fn *ir.Function, names ...string) *region.Region {
	tb.Helper()

	r := new(region.Region)
	for _, name := range names {
		r.Insert(fn.Graph.Index(Point(tb, fn, name)))
	}

	return r
}

// Lifetime resolves a lifetime name like "'a".
func Lifetime(tb testing.TB, fn *ir.Function, name string) ir.LifetimeID {
	tb.Helper()

	l, ok := fn.LookupLifetime(name)
	if !ok {
		tb.Fatalf("Unknown lifetime %s", name)
	}

	return l
}

// Variable resolves a variable name.
func Variable(tb testing.TB, fn *ir.Function, name string) ir.VarID {
	tb.Helper()

	v, ok := fn.LookupVariable(name)
	if !ok {
		tb.Fatalf("Unknown variable %s", name)
	}

	return v
}
