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
	"fillmore-labs.com/regionck/cfg"
	"fillmore-labs.com/regionck/ir"
	"fillmore-labs.com/regionck/region"
)

// Regions maps lifetimes to their regions.
type Regions interface {
	Region(l ir.LifetimeID) *region.Region
}

// Unsatisfied is a constraint that does not hold, with the points missing from its target region.
type Unsatisfied struct {
	Constraint Constraint
	Missing    *region.Region
}

// Check returns the constraints of s that regions do not satisfy.
func Check(g *cfg.Graph, s *Set, regions Regions) []Unsatisfied {
	var unsatisfied []Unsatisfied

	for _, c := range s.Live() {
		if i := g.Index(c.At); !regions.Region(c.L).Has(i) {
			unsatisfied = append(unsatisfied, Unsatisfied{Constraint: c, Missing: region.New(i)})
		}
	}

	w := cfg.NewWalker(g)

	for _, c := range s.Outlives() {
		required := w.ReachableWithin(c.At, regions.Region(c.Sup))
		if missing := required.Difference(regions.Region(c.Sub)); !missing.IsEmpty() {
			unsatisfied = append(unsatisfied, Unsatisfied{Constraint: c, Missing: missing})
		}
	}

	return unsatisfied
}
