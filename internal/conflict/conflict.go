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

// Package conflict detects accesses that invalidate live borrows.
package conflict

import (
	"cmp"
	"context"
	"runtime/trace"
	"slices"

	"fillmore-labs.com/regionck/cfg"
	"fillmore-labs.com/regionck/internal/constraint"
	"fillmore-labs.com/regionck/ir"
	"fillmore-labs.com/regionck/region"
)

// Reason tells why a [Record] was reported.
type Reason uint8

//go:generate go tool stringer -type Reason -linecomment
const (
	// Invalidation is an access that conflicts with a live borrow.
	Invalidation Reason = iota // invalidation
	// UseAfterScope is the end of storage that a live borrow still refers to.
	UseAfterScope // use-after-scope
)

// Record describes one conflict: the borrow at BorrowPoint is invalidated by
// the access at Action and its reference is used later at Use.
type Record struct {
	Borrow      ir.BorrowID
	Kind        ir.BorrowKind
	Lifetime    ir.LifetimeID
	Path        ir.Path
	BorrowPoint cfg.Point

	Action cfg.Point
	Access ir.AccessKind
	Reason Reason

	// Use is only meaningful if HasUse is set.
	Use    cfg.Point
	HasUse bool
}

// Explainer selects the use point of a conflict.
type Explainer interface {
	// Use returns a point in within, reachable from action, where a reference
	// of lifetime l is used.
	Use(l ir.LifetimeID, action cfg.Point, within *region.Region) (cfg.Point, bool)
}

// Options configure conflict detection.
type Options struct {
	// UseAfterScope reports borrows whose region continues past a storage-dead access.
	UseAfterScope bool

	// Explainer selects use points. Without one, records have no use point.
	Explainer Explainer
}

type key struct {
	borrow ir.BorrowID
	action cfg.Point
}

// Detect returns the conflicts of fn, given the solved regions.
//
// A shared borrow conflicts with writes and moves, a mutable borrow with any
// access, of an overlapping path at a point inside its region. An access
// through a reference whose lifetime the borrow flows into, following the
// outlives constraints of set, goes through the borrowing reference and does
// not conflict with it. Records are reported once per borrow and action
// point, ordered by action point, then borrow point.
func Detect(ctx context.Context, fn *ir.Function, set *constraint.Set, regions constraint.Regions, opts Options) []Record {
	defer trace.StartRegion(ctx, "conflicts").End()

	g := fn.Graph
	d := detector{
		g:             g,
		walker:        cfg.NewWalker(g),
		flows:         constraint.NewFlows(set),
		useAfterScope: opts.UseAfterScope,
	}

	var (
		records []Record
		seen    = make(map[key]struct{})
	)

	for _, a := range fn.Accesses {
		at := g.Index(a.At)

		for i := range fn.Borrows {
			b := &fn.Borrows[i]
			id := ir.BorrowID(i + 1)

			if d.through(a, b) || !a.Path.Overlaps(b.Path) {
				continue
			}

			within := regions.Region(b.Lifetime)

			reason, ok := d.conflicts(a, b, at, within)
			if !ok {
				continue
			}

			k := key{borrow: id, action: a.At}
			if _, dup := seen[k]; dup {
				continue
			}

			seen[k] = struct{}{}

			r := Record{
				Borrow:      id,
				Kind:        b.Kind,
				Lifetime:    b.Lifetime,
				Path:        b.Path,
				BorrowPoint: b.At,
				Action:      a.At,
				Access:      a.Kind,
				Reason:      reason,
			}

			if opts.Explainer != nil {
				r.Use, r.HasUse = opts.Explainer.Use(b.Lifetime, a.At, within)
			}

			records = append(records, r)
		}
	}

	slices.SortStableFunc(records, func(x, y Record) int {
		if c := x.Action.Compare(y.Action); c != 0 {
			return c
		}

		if c := x.BorrowPoint.Compare(y.BorrowPoint); c != 0 {
			return c
		}

		return cmp.Compare(x.Borrow, y.Borrow)
	})

	return records
}

type detector struct {
	g             *cfg.Graph
	walker        *cfg.Walker
	flows         *constraint.Flows
	useAfterScope bool
}

// through reports whether a goes through a reference derived from b.
func (d *detector) through(a ir.Access, b *ir.Borrow) bool {
	return a.Through.IsValid() && d.flows.Reaches(b.Lifetime, a.Through)
}

func (d *detector) conflicts(a ir.Access, b *ir.Borrow, at int, within *region.Region) (Reason, bool) {
	if a.Kind == ir.AccessStorageDead {
		// Executing the borrow point again creates a new loan.
		if d.useAfterScope && d.walker.Beyond(at, d.g.Index(b.At), within) {
			return UseAfterScope, true
		}

		return 0, false
	}

	if !within.Has(at) {
		return 0, false
	}

	switch a.Kind {
	case ir.AccessRead:
		return Invalidation, b.Kind == ir.BorrowMutable

	default:
		return Invalidation, true
	}
}
