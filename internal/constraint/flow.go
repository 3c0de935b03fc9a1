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
	"golang.org/x/tools/container/intsets"

	"fillmore-labs.com/regionck/ir"
)

// Flows follows outlives constraints from a lifetime to the lifetimes it must outlive.
//
// A reference created with lifetime l may end up in any place whose type
// mentions a lifetime l flows into. Flows caches its answers and must not be
// used concurrently.
type Flows struct {
	// Outlives edges Sub -> Sup
	edges map[ir.LifetimeID][]ir.LifetimeID
	cache map[ir.LifetimeID]*intsets.Sparse
}

// NewFlows returns the [Flows] over the outlives constraints of s.
func NewFlows(s *Set) *Flows {
	edges := make(map[ir.LifetimeID][]ir.LifetimeID)
	for _, c := range s.Outlives() {
		edges[c.Sub] = append(edges[c.Sub], c.Sup)
	}

	return &Flows{
		edges: edges,
		cache: make(map[ir.LifetimeID]*intsets.Sparse),
	}
}

// From returns the zero-based indices of the lifetimes l flows into,
// including l itself. The result must not be modified.
func (f *Flows) From(l ir.LifetimeID) *intsets.Sparse {
	if flows, ok := f.cache[l]; ok {
		return flows
	}

	flows := new(intsets.Sparse)
	flows.Insert(l.Index())

	stack := []ir.LifetimeID{l}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, sup := range f.edges[curr] {
			if flows.Insert(sup.Index()) {
				stack = append(stack, sup)
			}
		}
	}

	f.cache[l] = flows

	return flows
}

// Reaches reports whether l flows into m.
func (f *Flows) Reaches(l, m ir.LifetimeID) bool {
	return f.From(l).Has(m.Index())
}
