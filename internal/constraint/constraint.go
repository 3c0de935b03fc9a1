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

// Package constraint defines region constraints and generates them for a function.
package constraint

import (
	"fmt"
	"slices"

	"fillmore-labs.com/regionck/cfg"
	"fillmore-labs.com/regionck/ir"
)

// Constraint is either [Live] or [Outlives].
type Constraint interface {
	// Target is the lifetime whose region the constraint may grow.
	Target() ir.LifetimeID
	// Point is the point the constraint applies at.
	Point() cfg.Point
	// Format renders the constraint with the names of fn.
	Format(fn *ir.Function) string
}

// Live requires the region of L to contain At.
type Live struct {
	L  ir.LifetimeID
	At cfg.Point
}

// Target implements [Constraint].
func (c Live) Target() ir.LifetimeID { return c.L }

// Point implements [Constraint].
func (c Live) Point() cfg.Point { return c.At }

// Format implements [Constraint].
func (c Live) Format(fn *ir.Function) string {
	return fmt.Sprintf("%s @ %s", fn.LifetimeName(c.L), fn.Graph.Name(c.At))
}

// Outlives requires the region of Sub to contain every point reachable from
// At without leaving the region of Sup.
type Outlives struct {
	Sub, Sup ir.LifetimeID
	At       cfg.Point
}

// Target implements [Constraint].
func (c Outlives) Target() ir.LifetimeID { return c.Sub }

// Point implements [Constraint].
func (c Outlives) Point() cfg.Point { return c.At }

// Format implements [Constraint].
func (c Outlives) Format(fn *ir.Function) string {
	return fmt.Sprintf("%s: %s @ %s", fn.LifetimeName(c.Sub), fn.LifetimeName(c.Sup), fn.Graph.Name(c.At))
}

// Set is an append-only collection of constraints.
//
// A Set is built once, then frozen; afterwards it is read-only and may be shared.
type Set struct {
	live     []Live
	outlives []Outlives
	seen     map[any]struct{}
	frozen   bool
}

// NewSet returns an empty [Set]. The zero value is also ready to use.
func NewSet() *Set {
	return &Set{}
}

// AddLive appends Live(l, at), ignoring duplicates. It panics on a frozen set.
func (s *Set) AddLive(l ir.LifetimeID, at cfg.Point) {
	c := Live{L: l, At: at}
	if s.add(c) {
		s.live = append(s.live, c)
	}
}

// AddOutlives appends Outlives(sub, sup, at), ignoring duplicates and
// constraints of a lifetime on itself. It panics on a frozen set.
func (s *Set) AddOutlives(sub, sup ir.LifetimeID, at cfg.Point) {
	c := Outlives{Sub: sub, Sup: sup, At: at}
	if sub != sup && s.add(c) {
		s.outlives = append(s.outlives, c)
	}
}

func (s *Set) add(c Constraint) bool {
	if s.frozen {
		panic(fmt.Errorf("internal error: adding %T to frozen constraint set", c))
	}

	if s.seen == nil {
		s.seen = make(map[any]struct{})
	}

	if _, ok := s.seen[c]; ok {
		return false
	}

	s.seen[c] = struct{}{}

	return true
}

// Freeze makes the set read-only.
func (s *Set) Freeze() {
	s.frozen = true
	s.seen = nil
}

// Frozen reports whether the set is read-only.
func (s *Set) Frozen() bool {
	return s.frozen
}

// Live returns the liveness constraints in insertion order. The result must not be modified.
func (s *Set) Live() []Live {
	return s.live
}

// Outlives returns the outlives constraints in insertion order. The result must not be modified.
func (s *Set) Outlives() []Outlives {
	return s.outlives
}

// Len returns the number of constraints.
func (s *Set) Len() int {
	return len(s.live) + len(s.outlives)
}

// All returns all constraints, liveness constraints first.
func (s *Set) All() []Constraint {
	all := make([]Constraint, 0, s.Len())
	for _, c := range s.live {
		all = append(all, c)
	}

	for _, c := range s.outlives {
		all = append(all, c)
	}

	return all
}

// Sorted returns the outlives constraints ordered by point, then by lifetimes.
func (s *Set) Sorted() []Outlives {
	sorted := slices.Clone(s.outlives)
	slices.SortFunc(sorted, func(a, b Outlives) int {
		if c := a.At.Compare(b.At); c != 0 {
			return c
		}

		if a.Sub != b.Sub {
			return int(a.Sub) - int(b.Sub)
		}

		return int(a.Sup) - int(b.Sup)
	})

	return sorted
}
