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

// Package solver computes the least regions satisfying a constraint set.
package solver

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"runtime/trace"
	"slices"

	"fillmore-labs.com/regionck/cfg"
	"fillmore-labs.com/regionck/internal/constraint"
	"fillmore-labs.com/regionck/ir"
	"fillmore-labs.com/regionck/region"
)

// ErrRoundLimit is returned when solving needs more constraint applications than allowed.
var ErrRoundLimit = errors.New("solver round limit exceeded")

// checkInterval is the number of constraint applications between cancellation checks.
const checkInterval = 256

// Options configure the solver.
type Options struct {
	// MaxRounds limits the number of outlives constraint applications. Zero means no limit.
	MaxRounds int

	// Initial seeds the regions of free lifetimes. Seeds of placeholders are ignored.
	Initial map[ir.LifetimeID]*region.Region

	// OnGrow is called whenever the region of a lifetime grows.
	// The region must not be modified.
	OnGrow func(l ir.LifetimeID, r *region.Region)
}

// PlaceholderViolation records that a constraint requires a placeholder to
// contain points outside its fixed region.
type PlaceholderViolation struct {
	Lifetime   ir.LifetimeID
	Constraint constraint.Constraint
	Missing    *region.Region
}

// Solution maps every lifetime of a function to its region.
type Solution struct {
	regions []*region.Region

	// Violations are the placeholder violations, ordered by point and lifetime.
	Violations []PlaceholderViolation

	// Applications is the number of outlives constraint applications.
	Applications int
}

// Region returns the region of l. The result must not be modified.
func (s *Solution) Region(l ir.LifetimeID) *region.Region {
	return s.regions[l.Index()]
}

// Len returns the number of lifetimes.
func (s *Solution) Len() int {
	return len(s.regions)
}

type solver struct {
	fn      *ir.Function
	walker  *cfg.Walker
	regions []*region.Region
	opts    Options

	// violations by constraint, to report each constraint once
	violations map[constraint.Constraint]int
	result     []PlaceholderViolation
}

// Solve grows the regions of free lifetimes until all constraints of set hold.
//
// Free regions start empty, placeholder regions start at their fixed value
// and never grow. The result is the least fixpoint, independent of the
// order in which constraints are applied.
func Solve(ctx context.Context, fn *ir.Function, set *constraint.Set, opts Options) (*Solution, error) {
	if !set.Frozen() {
		panic(errors.New("internal error: solving an unfrozen constraint set"))
	}

	defer trace.StartRegion(ctx, "solve").End()

	s := &solver{
		fn:         fn,
		walker:     cfg.NewWalker(fn.Graph),
		regions:    initial(fn, opts.Initial),
		opts:       opts,
		violations: make(map[constraint.Constraint]int),
	}

	for _, c := range set.Live() {
		s.live(c)
	}

	applications, err := s.outlives(ctx, set.Outlives())
	if err != nil {
		return nil, fmt.Errorf("function %q: %w", fn.Name, err)
	}

	slices.SortStableFunc(s.result, func(a, b PlaceholderViolation) int {
		if c := a.Constraint.Point().Compare(b.Constraint.Point()); c != 0 {
			return c
		}

		return cmp.Compare(a.Lifetime, b.Lifetime)
	})

	return &Solution{regions: s.regions, Violations: s.result, Applications: applications}, nil
}

func initial(fn *ir.Function, seeds map[ir.LifetimeID]*region.Region) []*region.Region {
	regions := make([]*region.Region, len(fn.Lifetimes))

	for i := range fn.Lifetimes {
		lt := &fn.Lifetimes[i]

		switch {
		case lt.Placeholder && lt.Fixed == nil:
			regions[i] = region.Full(fn.Graph.NumPoints())

		case lt.Placeholder:
			regions[i] = fn.Graph.Region(lt.Fixed...)

		default:
			regions[i] = seeds[ir.LifetimeID(i+1)].Clone()
		}
	}

	return regions
}

func (s *solver) live(c constraint.Live) {
	i := s.fn.Graph.Index(c.At)

	if s.fn.Lifetime(c.L).Placeholder {
		if !s.regions[c.L.Index()].Has(i) {
			s.violate(c.L, c, region.New(i))
		}

		return
	}

	if s.regions[c.L.Index()].Insert(i) {
		s.grew(c.L)
	}
}

// outlives runs a FIFO worklist over the outlives constraints. A constraint
// is queued again whenever the region of its Sup grows.
func (s *solver) outlives(ctx context.Context, cs []constraint.Outlives) (int, error) {
	deps := make([][]int, len(s.regions))
	for i, c := range cs {
		deps[c.Sup.Index()] = append(deps[c.Sup.Index()], i)
	}

	queue := make([]int, len(cs))
	inQueue := make([]bool, len(cs))

	for i := range cs {
		queue[i] = i
		inQueue[i] = true
	}

	applications := 0

	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		inQueue[i] = false

		applications++
		if s.opts.MaxRounds > 0 && applications > s.opts.MaxRounds {
			return applications, ErrRoundLimit
		}

		if applications%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return applications, err
			}
		}

		c := cs[i]
		required := s.walker.ReachableWithin(c.At, s.regions[c.Sup.Index()])
		sub := s.regions[c.Sub.Index()]

		if s.fn.Lifetime(c.Sub).Placeholder {
			if missing := required.Difference(sub); !missing.IsEmpty() {
				s.violate(c.Sub, c, missing)
			}

			continue
		}

		if !sub.UnionWith(required) {
			continue
		}

		s.grew(c.Sub)

		for _, d := range deps[c.Sub.Index()] {
			if !inQueue[d] {
				queue = append(queue, d)
				inQueue[d] = true
			}
		}
	}

	return applications, nil
}

func (s *solver) grew(l ir.LifetimeID) {
	if s.opts.OnGrow != nil {
		s.opts.OnGrow(l, s.regions[l.Index()])
	}
}

func (s *solver) violate(l ir.LifetimeID, c constraint.Constraint, missing *region.Region) {
	if i, ok := s.violations[c]; ok {
		s.result[i].Missing.UnionWith(missing)
		return
	}

	s.violations[c] = len(s.result)
	s.result = append(s.result, PlaceholderViolation{Lifetime: l, Constraint: c, Missing: missing})
}
