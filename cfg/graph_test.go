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

package cfg_test

import (
	"errors"
	"slices"
	"testing"

	. "fillmore-labs.com/regionck/cfg"
)

// diamond builds
//
//	A -> B -> C
//	A ------> C
func diamond(t *testing.T) *Graph {
	t.Helper()

	b := NewBuilder()
	a, bb, c := b.Block("A", 1), b.Block("B", 2), b.Block("C", 1)
	a.LinkBranch(bb, c)
	bb.Link(c)

	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	return g
}

func TestBuild(t *testing.T) {
	t.Parallel()

	g := diamond(t)

	if got, want := g.NumPoints(), 2+3+2; got != want {
		t.Errorf("Got %d points, want %d", got, want)
	}

	if got, want := g.Entry().Label, "A"; got != want {
		t.Errorf("Got entry %q, want %q", got, want)
	}

	c, ok := g.BlockByLabel("C")
	if !ok {
		t.Fatal("Block C not found")
	}

	if got, want := c.Predecessors, []BlockID{0, 1}; !slices.Equal(got, want) {
		t.Errorf("Got predecessors %v, want %v", got, want)
	}

	for i := range g.NumPoints() {
		if got := g.Index(g.PointAt(i)); got != i {
			t.Errorf("Index(PointAt(%d)) = %d", i, got)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func(b *Builder)
	}{
		{"Empty", func(*Builder) {}},
		{"DuplicateLabel", func(b *Builder) { b.Block("A", 0); b.Block("A", 0) }},
		{"NegativeStatements", func(b *Builder) { b.Block("A", -1) }},
		{"ForeignEntry", func(b *Builder) {
			b.Block("A", 0)
			b.SetEntry(NewBuilder().Block("X", 0))
		}},
		{"UnknownSuccessor", func(b *Builder) {
			a := b.Block("A", 0)
			a.Successors = append(a.Successors, 7)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := NewBuilder()
			tt.build(b)

			if _, err := b.Build(); !errors.Is(err, ErrInvalidGraph) {
				t.Errorf("Got error %v, want %v", err, ErrInvalidGraph)
			}
		})
	}
}

func TestLinkDeduplicates(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	a, c := b.Block("A", 0), b.Block("C", 0)
	a.Link(c, c)
	a.Link(c)

	if got := len(a.Successors); got != 1 {
		t.Errorf("Got %d successors, want 1", got)
	}
}

func TestSuccessorsAndPredecessors(t *testing.T) {
	t.Parallel()

	g := diamond(t)

	tests := []struct {
		point      string
		succ, pred []string
	}{
		{"A.0", []string{"A.1"}, nil},
		{"A.1", []string{"B.0", "C.0"}, []string{"A.0"}},
		{"B.0", []string{"B.1"}, []string{"A.1"}},
		{"B.2", []string{"C.0"}, []string{"B.1"}},
		{"C.0", []string{"C.1"}, []string{"A.1", "B.2"}},
		{"C.1", nil, []string{"C.0"}},
	}

	names := func(points []Point) []string {
		var s []string
		for _, p := range points {
			s = append(s, g.Name(p))
		}

		return s
	}

	for _, tt := range tests {
		p, err := g.Lookup(tt.point)
		if err != nil {
			t.Fatalf("Lookup(%q) failed: %v", tt.point, err)
		}

		if got := names(g.Successors(p)); !slices.Equal(got, tt.succ) {
			t.Errorf("Successors(%s) = %v, want %v", tt.point, got, tt.succ)
		}

		if got := names(g.Predecessors(p)); !slices.Equal(got, tt.pred) {
			t.Errorf("Predecessors(%s) = %v, want %v", tt.point, got, tt.pred)
		}
	}
}

func TestLookupErrors(t *testing.T) {
	t.Parallel()

	g := diamond(t)

	for _, name := range []string{"A", "X.0", "A.x", "A.2", "B.-1"} {
		if _, err := g.Lookup(name); err == nil {
			t.Errorf("Lookup(%q) succeeded", name)
		}
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	g := diamond(t)

	r := g.Region(Point{Block: 2, Index: 0}, Point{Block: 0, Index: 1})

	if got, want := g.Format(r), "{A.1, C.0}"; got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestPointCompare(t *testing.T) {
	t.Parallel()

	a0, a1, b0 := Point{Block: 0, Index: 0}, Point{Block: 0, Index: 1}, Point{Block: 1, Index: 0}

	if a0.Compare(a1) >= 0 || a1.Compare(b0) >= 0 || b0.Compare(a0) <= 0 || a1.Compare(a1) != 0 {
		t.Error("Points are not ordered lexically")
	}
}
