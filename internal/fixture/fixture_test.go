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


package fixture_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "fillmore-labs.com/regionck/internal/fixture"
	"fillmore-labs.com/regionck/ir"
)

const header = `
function: f
adts:
  Pair: ["+", "="]
variables:
  - {name: x, type: u32}
  - {name: s, type: S}
  - {name: v, type: Vec}
`

func parse(t *testing.T, src string) *ir.Function {
	t.Helper()

	fn, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	return fn
}

func TestTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src, want string
		kind      ir.Kind
	}{
		{"u32", "u32", ir.KindScalar},
		{"'a", "'a", ir.KindRegion},
		{"&'a u32", "&'a u32", ir.KindRef},
		{"&'a mut &'b u32", "&'a mut &'b u32", ir.KindRefMut},
		{"Cell<&'a u32>", "Cell<&'a u32>", ir.KindCell},
		{"RefCell<u32>", "RefCell<u32>", ir.KindCell},
		{"Pair<'a, &'b u32>", "Pair<'a, &'b u32>", ir.KindAdt},
		{"Vec<&'a u32>", "Vec<&'a u32>", ir.KindAdt},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			fn := parse(t, header+"  - {name: t, type: \""+tt.src+"\"}\nblocks:\n  - label: A\n")

			id, ok := fn.LookupVariable("t")
			if !ok {
				t.Fatal("Variable t not declared")
			}

			typ := fn.Variable(id).Type

			if got := typ.Format(fn.LifetimeName); got != tt.want {
				t.Errorf("Got type %q, want %q", got, tt.want)
			}

			if typ.Kind != tt.kind {
				t.Errorf("Got kind %s, want %s", typ.Kind, tt.kind)
			}
		})
	}
}

func TestADTVariance(t *testing.T) {
	t.Parallel()

	fn := parse(t, header+"  - {name: p, type: \"Pair<'a, 'b>\"}\nblocks:\n  - label: A\n")

	id, _ := fn.LookupVariable("p")
	typ := fn.Variable(id).Type

	if got := typ.ArgVariance(0); got != ir.Covariant {
		t.Errorf("Got variance %s for first argument, want %s", got, ir.Covariant)
	}

	if got := typ.ArgVariance(1); got != ir.Invariant {
		t.Errorf("Got variance %s for second argument, want %s", got, ir.Invariant)
	}
}

func TestPaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src, want string
	}{
		{"x", "x"},
		{"s.f", "s.f"},
		{"v[i]", "v[]"},
		{"v[0].f", "v[].f"},
		{"*s", "*s"},
		{"(*s).f", "(*s).f"},
		{"s.*.f", "(*s).f"},
		{"*s.f", "*s.f"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			fn := parse(t, header+"blocks:\n  - label: A\n    stmts:\n      - access: [{kind: read, path: \""+tt.src+"\"}]\n")

			if len(fn.Accesses) != 1 {
				t.Fatalf("Got %d accesses, want 1", len(fn.Accesses))
			}

			if got := fn.Accesses[0].Path.Format(fn.VariableName); got != tt.want {
				t.Errorf("Got path %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDerivedAccesses(t *testing.T) {
	t.Parallel()

	fn := parse(t, `
function: derived
variables:
  - {name: x, type: u32}
  - {name: r, type: "&'r u32"}
blocks:
  - label: A
    stmts:
      - use: [x]
        move: [x]
        drop: [x]
        def: [x]
        dead: [x]
        borrow: [{lifetime: "'s", path: x}, {lifetime: "'m", path: x, mut: true}]
`)

	want := []struct {
		kind    ir.AccessKind
		through string
	}{
		{ir.AccessRead, ""},
		{ir.AccessMove, ""},
		{ir.AccessWrite, ""},
		{ir.AccessWrite, ""},
		{ir.AccessStorageDead, ""},
		{ir.AccessRead, "'s"},
		{ir.AccessWrite, "'m"},
	}

	if len(fn.Accesses) != len(want) {
		t.Fatalf("Got %d accesses, want %d", len(fn.Accesses), len(want))
	}

	for i, a := range fn.Accesses {
		through := ""
		if a.Through.IsValid() {
			through = fn.LifetimeName(a.Through)
		}

		if a.Kind != want[i].kind || through != want[i].through {
			t.Errorf("Access %d: got %s through %q, want %s through %q", i, a.Kind, through, want[i].kind, want[i].through)
		}
	}

	if got, want := len(fn.Actions), 5; got != want {
		t.Errorf("Got %d actions, want %d", got, want)
	}

	if got, want := len(fn.Borrows), 2; got != want {
		t.Errorf("Got %d borrows, want %d", got, want)
	}

	if fn.Borrows[1].Kind != ir.BorrowMutable {
		t.Errorf("Got %s borrow, want %s", fn.Borrows[1].Kind, ir.BorrowMutable)
	}
}

func TestGraph(t *testing.T) {
	t.Parallel()

	fn := parse(t, `
function: graph
entry: B
blocks:
  - label: A
    stmts: [{}, {}]
  - label: B
    stmts: [{}]
    succ: [A]
`)

	g := fn.Graph

	if got, want := g.Entry().Label, "B"; got != want {
		t.Errorf("Got entry %s, want %s", got, want)
	}

	if got, want := g.NumPoints(), 5; got != want {
		t.Errorf("Got %d points, want %d", got, want)
	}

	b, _ := g.BlockByLabel("B")
	succ := g.Successors(b.Terminator())

	if len(succ) != 1 || g.Name(succ[0]) != "A.0" {
		t.Errorf("Got successors %v of B's terminator, want [A.0]", succ)
	}
}

func TestPlaceholder(t *testing.T) {
	t.Parallel()

	fn := parse(t, `
function: placeholder
lifetimes:
  - {name: "'all", placeholder: true}
  - {name: "'some", placeholder: true, fixed: [A.1]}
  - {name: "'free"}
blocks:
  - label: A
    stmts: [{}]
`)

	tests := []struct {
		name        string
		placeholder bool
		fixed       int
	}{
		{"'all", true, 0},
		{"'some", true, 1},
		{"'free", false, 0},
	}

	for _, tt := range tests {
		l, ok := fn.LookupLifetime(tt.name)
		if !ok {
			t.Errorf("Lifetime %s not declared", tt.name)
			continue
		}

		lt := fn.Lifetime(l)
		if lt.Placeholder != tt.placeholder || len(lt.Fixed) != tt.fixed {
			t.Errorf("Lifetime %s: got placeholder %t with %d fixed points, want %t with %d",
				tt.name, lt.Placeholder, len(lt.Fixed), tt.placeholder, tt.fixed)
		}
	}
}

func TestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, src string
	}{
		{"UnknownKey", "function: f\nblock: []\n"},
		{"UnknownVariable", "function: f\nblocks:\n  - label: A\n    stmts:\n      - use: [y]\n"},
		{"UnknownSuccessor", "function: f\nblocks:\n  - label: A\n    succ: [Z]\n"},
		{"UnknownEntry", "function: f\nentry: Z\nblocks:\n  - label: A\n"},
		{"BadType", "function: f\nvariables:\n  - {name: x, type: \"&u32\"}\nblocks:\n  - label: A\n"},
		{"UnclosedArgs", "function: f\nvariables:\n  - {name: x, type: \"Vec<u32\"}\nblocks:\n  - label: A\n"},
		{"Arity", "function: f\nadts:\n  Pair: [\"+\", \"+\"]\nvariables:\n  - {name: x, type: \"Pair<u32>\"}\nblocks:\n  - label: A\n"},
		{"Variance", "function: f\nadts:\n  Box: [\"~\"]\nblocks:\n  - label: A\n"},
		{"LifetimeName", "function: f\nlifetimes:\n  - {name: a}\nblocks:\n  - label: A\n"},
		{"DuplicateLifetime", "function: f\nlifetimes:\n  - {name: \"'a\"}\n  - {name: \"'a\"}\nblocks:\n  - label: A\n"},
		{"FreeFixed", "function: f\nlifetimes:\n  - {name: \"'a\", fixed: [A.0]}\nblocks:\n  - label: A\n"},
		{"DuplicateVariable", "function: f\nvariables:\n  - {name: x, type: u32}\n  - {name: x, type: u32}\nblocks:\n  - label: A\n"},
		{"MayDangle", "function: f\nvariables:\n  - {name: x, type: u32, may_dangle: [\"'z\"]}\nblocks:\n  - label: A\n"},
		{"AccessKind", "function: f\nvariables:\n  - {name: x, type: u32}\nblocks:\n  - label: A\n    stmts:\n      - access: [{kind: poke, path: x}]\n"},
		{"Path", "function: f\nvariables:\n  - {name: x, type: u32}\nblocks:\n  - label: A\n    stmts:\n      - access: [{kind: read, path: \"x[\"}]\n"},
		{"BorrowLifetime", "function: f\nvariables:\n  - {name: x, type: u32}\nblocks:\n  - label: A\n    stmts:\n      - borrow: [{lifetime: b, path: x}]\n"},
		{"Through", "function: f\nvariables:\n  - {name: x, type: u32}\nblocks:\n  - label: A\n    stmts:\n      - access: [{kind: read, path: x, through: \"'q\"}]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Parse([]byte(tt.src)); !errors.Is(err, ErrSyntax) {
				t.Errorf("Got error %v, want %v", err, ErrSyntax)
			}
		})
	}
}

func TestMismatchedObligation(t *testing.T) {
	t.Parallel()

	src := "function: f\nblocks:\n  - label: A\n    stmts:\n      - subtype: [{sub: \"&'a u32\", sup: u32}]\n"

	if _, err := Parse([]byte(src)); !errors.Is(err, ir.ErrInvalidFunction) {
		t.Errorf("Got error %v, want %v", err, ir.ErrInvalidFunction)
	}
}

func TestDecodeStream(t *testing.T) {
	t.Parallel()

	fns, err := Decode(strings.NewReader("function: a\nblocks: [{label: A}]\n---\nfunction: b\nblocks: [{label: B}]\n"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if len(fns) != 2 || fns[0].Name != "a" || fns[1].Name != "b" {
		t.Errorf("Got %d functions, want a and b", len(fns))
	}

	if _, err := Parse([]byte("function: a\nblocks: [{label: A}]\n---\nfunction: b\nblocks: [{label: B}]\n")); !errors.Is(err, ErrSyntax) {
		t.Errorf("Got error %v for two functions, want %v", err, ErrSyntax)
	}
}

func TestArchive(t *testing.T) {
	t.Parallel()

	archive := []byte(`Comment.
-- first.yaml --
blocks: [{label: A}]
-- named.yml --
function: second
blocks: [{label: A}]
-- README --
not a function
`)

	fns, err := ParseArchive(archive)
	if err != nil {
		t.Fatalf("ParseArchive failed: %v", err)
	}

	if len(fns) != 2 || fns[0].Name != "first" || fns[1].Name != "second" {
		t.Fatalf("Got %d functions, want first and second", len(fns))
	}

	dir := t.TempDir()

	name := filepath.Join(dir, "bundle.txtar")
	if err := os.WriteFile(name, archive, 0o600); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(name)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(loaded) != 2 {
		t.Errorf("Loaded %d functions, want 2", len(loaded))
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("function: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(bad); !errors.Is(err, ErrSyntax) || !strings.Contains(err.Error(), "bad.yaml") {
		t.Errorf("Got error %v, want %v naming the file", err, ErrSyntax)
	}
}
