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


package engine

import (
	"iter"

	"fillmore-labs.com/regionck/internal/conflict"
	"fillmore-labs.com/regionck/internal/constraint"
	"fillmore-labs.com/regionck/internal/run"
	"fillmore-labs.com/regionck/internal/solver"
	"fillmore-labs.com/regionck/ir"
	"fillmore-labs.com/regionck/region"
)

type (
	// Conflict is a borrow invalidated by an access, with a later use of the reference.
	Conflict = conflict.Record

	// Reason tells why a [Conflict] was reported.
	Reason = conflict.Reason

	// Violation is a constraint that requires a placeholder region to grow.
	Violation = solver.PlaceholderViolation

	// Constraint is a liveness or outlives constraint.
	Constraint = constraint.Constraint

	// ConstraintSet is the frozen set of constraints of a function.
	ConstraintSet = constraint.Set

	// Unsatisfied is a constraint that a solution fails to meet.
	Unsatisfied = constraint.Unsatisfied
)

const (
	// Invalidation is an access that conflicts with a live borrow.
	Invalidation = conflict.Invalidation
	// UseAfterScope is the end of storage that a live borrow still refers to.
	UseAfterScope = conflict.UseAfterScope
)

// ErrRoundLimit is returned when solving exceeds the configured maximum of rounds.
var ErrRoundLimit = solver.ErrRoundLimit

// Result is the analysis of one function.
type Result struct {
	Function *ir.Function

	// Conflicts are ordered by action point, then borrow point.
	Conflicts []Conflict

	// Violations are ordered by point, then lifetime.
	Violations []Violation

	Constraints *ConstraintSet

	solution *solver.Solution
}

func newResult(r *run.Result) *Result {
	return &Result{
		Function:    r.Function,
		Conflicts:   r.Conflicts,
		Violations:  r.Solution.Violations,
		Constraints: r.Constraints,
		solution:    r.Solution,
	}
}

// Region returns the region of l. The result must not be modified.
func (r *Result) Region(l ir.LifetimeID) *region.Region {
	return r.solution.Region(l)
}

// Regions yields every lifetime with its region, in declaration order.
func (r *Result) Regions() iter.Seq2[ir.LifetimeID, *region.Region] {
	return func(yield func(ir.LifetimeID, *region.Region) bool) {
		for i := range r.solution.Len() {
			l := ir.LifetimeID(i + 1)
			if !yield(l, r.solution.Region(l)) {
				return
			}
		}
	}
}

// Applications is the number of outlives constraint applications needed to solve.
func (r *Result) Applications() int {
	return r.solution.Applications
}

// Verify checks the regions against the constraints and returns the unsatisfied ones.
// Violated placeholder constraints are among them.
func (r *Result) Verify() []Unsatisfied {
	return constraint.Check(r.Function.Graph, r.Constraints, r.solution)
}
