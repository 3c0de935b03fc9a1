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

package constraint

import (
	"context"
	"fmt"
	"runtime/trace"

	"fillmore-labs.com/regionck/cfg"
	"fillmore-labs.com/regionck/internal/liveness"
	"fillmore-labs.com/regionck/ir"
)

// Options configure constraint generation.
type Options struct {
	// Invariance emits the reverse constraint for regions in invariant positions.
	Invariance bool
}

// Generate produces the frozen constraint set of fn in a single pass.
//
// Every lifetime live at a point must contain that point. Every obligation
// Sub <: Sup at an event point E is related structurally at each successor of E.
func Generate(ctx context.Context, fn *ir.Function, live *liveness.Result, opts Options) *Set {
	defer trace.StartRegion(ctx, "constraints").End()

	g := fn.Graph
	s := NewSet()

	for i := range g.NumPoints() {
		p := g.PointAt(i)
		for _, l := range live.LiveLifetimesAt(i) {
			s.AddLive(l, p)
		}
	}

	for _, o := range fn.Obligations {
		for _, succ := range g.Successors(o.At) {
			r := relater{set: s, at: succ, invariance: opts.Invariance}
			r.relate(o.Sub, o.Sup, ir.Covariant)
		}
	}

	s.Freeze()

	return s
}

type relater struct {
	set        *Set
	at         cfg.Point
	invariance bool
}

// relate records the constraints for sub <: sup in a position with variance v.
func (r relater) relate(sub, sup *ir.Type, v ir.Variance) {
	if sub.Kind != sup.Kind || len(sub.Args) != len(sup.Args) {
		panic(fmt.Errorf("internal error: relating %v with %v", sub.Kind, sup.Kind))
	}

	switch sub.Kind {
	case ir.KindRegion, ir.KindRef, ir.KindRefMut:
		r.regions(sub.Lifetime, sup.Lifetime, v)
	}

	for i := range sub.Args {
		r.relate(sub.Args[i], sup.Args[i], v.Compose(sub.ArgVariance(i)))
	}
}

// regions relates the lifetime a of the subtype to the lifetime b of the supertype.
// In covariant position a must outlive b.
func (r relater) regions(a, b ir.LifetimeID, v ir.Variance) {
	switch v {
	case ir.Covariant:
		r.set.AddOutlives(a, b, r.at)

	case ir.Contravariant:
		r.set.AddOutlives(b, a, r.at)

	case ir.Invariant:
		r.set.AddOutlives(a, b, r.at)

		if r.invariance {
			r.set.AddOutlives(b, a, r.at)
		}

	case ir.Bivariant:
	}
}
