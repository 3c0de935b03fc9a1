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

// Package liveness computes variable and lifetime liveness over a control-flow graph.
//
// Two backward dataflow problems are solved. A variable is drop-live at a
// point if its value may be used or dropped later; this is ordinary liveness.
// It is use-live if its value may be used later other than by a drop.
// A lifetime is live where it occurs in the type of a use-live variable, or
// in the type of a drop-live variable whose destructor may access it.
package liveness

import (
	"context"
	"runtime/trace"

	"golang.org/x/tools/container/intsets"

	"fillmore-labs.com/regionck/cfg"
	"fillmore-labs.com/regionck/ir"
	"fillmore-labs.com/regionck/region"
)

// Result holds the liveness facts of a function.
type Result struct {
	fn *ir.Function

	// Sets of zero-based variable and lifetime indices, by dense point index
	useLive, dropLive []intsets.Sparse
	lifetimes         []intsets.Sparse
}

// transfer holds the gen and kill sets of one point.
type transfer struct {
	gen, kill intsets.Sparse
}

// Analyze computes liveness for fn. With mayDangle, a drop keeps only the
// lifetimes live that the variable's destructor may access.
func Analyze(ctx context.Context, fn *ir.Function, mayDangle bool) *Result {
	defer trace.StartRegion(ctx, "liveness").End()

	g := fn.Graph
	n := g.NumPoints()

	use, drop := make([]transfer, n), make([]transfer, n)

	for _, a := range fn.Actions {
		i, v := g.Index(a.At), a.Var.Index()

		switch a.Kind {
		case ir.ActionUse, ir.ActionMove:
			use[i].gen.Insert(v)
			drop[i].gen.Insert(v)

		case ir.ActionDrop:
			drop[i].gen.Insert(v)

		case ir.ActionDef, ir.ActionStorageDead:
			use[i].kill.Insert(v)
			drop[i].kill.Insert(v)
		}
	}

	r := &Result{
		fn:       fn,
		useLive:  backward(g, use),
		dropLive: backward(g, drop),
	}

	r.lifetimes = r.liveLifetimes(mayDangle)

	return r
}

// backward solves in = gen ∪ (out − kill) to a fixpoint, out being the union
// of the successors' in sets.
func backward(g *cfg.Graph, tr []transfer) []intsets.Sparse {
	in := make([]intsets.Sparse, g.NumPoints())

	nb := g.NumBlocks()
	queue := make([]cfg.BlockID, 0, nb)
	inQueue := make([]bool, nb)

	// Reverse order converges faster for forward-built graphs.
	for i := nb - 1; i >= 0; i-- {
		queue = append(queue, cfg.BlockID(i))
		inQueue[i] = true
	}

	var out, next intsets.Sparse

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		inQueue[id] = false

		blk := g.Block(id)

		out.Clear()

		for _, s := range blk.Successors {
			out.UnionWith(&in[g.Index(g.Block(s).Entry())])
		}

		changed := false

		for i := blk.Statements; i >= 0; i-- {
			idx := g.Index(blk.At(i))

			next.Difference(&out, &tr[idx].kill)
			next.UnionWith(&tr[idx].gen)

			if i == 0 {
				changed = !next.Equals(&in[idx])
			}

			in[idx].Copy(&next)
			out.Copy(&next)
		}

		if !changed {
			continue
		}

		for _, p := range blk.Predecessors {
			if !inQueue[p] {
				queue = append(queue, p)
				inQueue[p] = true
			}
		}
	}

	return in
}

func (r *Result) liveLifetimes(mayDangle bool) []intsets.Sparse {
	regions := make([][]ir.LifetimeID, len(r.fn.Variables))
	for i := range r.fn.Variables {
		regions[i] = r.fn.Variables[i].Type.Regions()
	}

	lifetimes := make([]intsets.Sparse, len(r.dropLive))

	var vars []int
	for i := range r.dropLive {
		vars = r.dropLive[i].AppendTo(vars[:0])

		for _, v := range vars {
			full := !mayDangle || r.useLive[i].Has(v)
			variable := &r.fn.Variables[v]

			for _, l := range regions[v] {
				if full || !variable.CanDangle(l) {
					lifetimes[i].Insert(l.Index())
				}
			}
		}
	}

	return lifetimes
}

// IsLive reports whether the value of v may be used or dropped at or after p.
func (r *Result) IsLive(v ir.VarID, p cfg.Point) bool {
	return r.dropLive[r.fn.Graph.Index(p)].Has(v.Index())
}

// UseLive reports whether the value of v may be used at or after p, not counting drops.
func (r *Result) UseLive(v ir.VarID, p cfg.Point) bool {
	return r.useLive[r.fn.Graph.Index(p)].Has(v.Index())
}

// LiveIn returns the variables live at p in ascending order.
func (r *Result) LiveIn(p cfg.Point) []ir.VarID {
	return toIDs[ir.VarID](&r.dropLive[r.fn.Graph.Index(p)])
}

// LiveLifetimes returns the lifetimes live at p in ascending order.
func (r *Result) LiveLifetimes(p cfg.Point) []ir.LifetimeID {
	return r.LiveLifetimesAt(r.fn.Graph.Index(p))
}

// LiveLifetimesAt returns the lifetimes live at dense point index i in ascending order.
func (r *Result) LiveLifetimesAt(i int) []ir.LifetimeID {
	return toIDs[ir.LifetimeID](&r.lifetimes[i])
}

// IsLifetimeLive reports whether lifetime l is live at p.
func (r *Result) IsLifetimeLive(l ir.LifetimeID, p cfg.Point) bool {
	return r.lifetimes[r.fn.Graph.Index(p)].Has(l.Index())
}

// Region returns the points at which v is live.
func (r *Result) Region(v ir.VarID) *region.Region {
	live := new(region.Region)
	for i := range r.dropLive {
		if r.dropLive[i].Has(v.Index()) {
			live.Insert(i)
		}
	}

	return live
}

func toIDs[T ~uint32](s *intsets.Sparse) []T {
	if s.IsEmpty() {
		return nil
	}

	ids := make([]T, 0, s.Len())
	for _, i := range s.AppendTo(nil) {
		ids = append(ids, T(i+1))
	}

	return ids
}
