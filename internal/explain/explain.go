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

// Package explain selects the later use point that completes a conflict narrative.
//
// Selection is a reporting policy layered on top of solved regions: it never
// influences which conflicts are found.
package explain

import (
	"golang.org/x/tools/container/intsets"

	"fillmore-labs.com/regionck/cfg"
	"fillmore-labs.com/regionck/internal/constraint"
	"fillmore-labs.com/regionck/ir"
	"fillmore-labs.com/regionck/region"
)

// Explainer finds the points at which references derived from a borrow are used.
//
// An Explainer keeps search state and must not be used concurrently.
type Explainer struct {
	fn        *ir.Function
	walker    *cfg.Walker
	flows     *constraint.Flows
	mayDangle bool

	// Actions by dense point index
	actions [][]ir.Action
}

// New returns an [Explainer] for fn. The outlives constraints of set determine
// which lifetimes a borrow flows into. With mayDangle, a drop only counts as a
// use for lifetimes the destructor may access.
func New(fn *ir.Function, set *constraint.Set, mayDangle bool) *Explainer {
	g := fn.Graph

	actions := make([][]ir.Action, g.NumPoints())
	for _, a := range fn.Actions {
		i := g.Index(a.At)
		actions[i] = append(actions[i], a)
	}

	return &Explainer{
		fn:        fn,
		walker:    cfg.NewWalker(g),
		flows:     constraint.NewFlows(set),
		mayDangle: mayDangle,
		actions:   actions,
	}
}

// Use returns the point nearest to action, by shortest path in the graph,
// that lies in within and where a variable carrying a lifetime that l flows
// into is used. The path itself may leave within.
// Ties are broken by the lexically earliest point.
func (e *Explainer) Use(l ir.LifetimeID, action cfg.Point, within *region.Region) (cfg.Point, bool) {
	flows := e.flows.From(l)

	i, ok := e.walker.Nearest(e.fn.Graph.Index(action), nil, func(i int) bool {
		return within.Has(i) && e.isUse(i, flows)
	})
	if !ok {
		return cfg.Point{}, false
	}

	return e.fn.Graph.PointAt(i), true
}

func (e *Explainer) isUse(i int, flows *intsets.Sparse) bool {
	for _, a := range e.actions[i] {
		v := e.fn.Variable(a.Var)

		switch a.Kind {
		case ir.ActionUse, ir.ActionMove:
			for _, l := range v.Type.Regions() {
				if flows.Has(l.Index()) {
					return true
				}
			}

		case ir.ActionDrop:
			for _, l := range v.Type.Regions() {
				if flows.Has(l.Index()) && (!e.mayDangle || !v.CanDangle(l)) {
					return true
				}
			}
		}
	}

	return false
}
