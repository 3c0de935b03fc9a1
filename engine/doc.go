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


// Package engine infers regions of lifetimes and detects borrow conflicts.
//
// # Overview
//
// The input is a function lowered to a control-flow graph: typed variables,
// borrows, accesses and the subtyping obligations between types. The engine
// computes the least region for every lifetime, that is the set of points
// where a reference carrying the lifetime may still be used, and reports
// every access that invalidates a borrow inside its region.
//
// Analysis runs in four stages, each completing before the next one starts:
//
//   - Liveness: which variables, and thereby which lifetimes, are live at each point
//   - Constraints: liveness and outlives constraints derived from the function
//   - Solving: the least fixpoint of all constraints
//   - Conflicts: accesses that conflict with borrows, with a later use point
//
// # Example
//
//	e, err := engine.New(engine.WithMayDangle(false))
//	if err != nil {
//	    return err
//	}
//
//	res, err := e.Analyze(ctx, fn)
//	if err != nil {
//	    return err
//	}
//
//	for _, c := range res.Conflicts {
//	    // c.BorrowPoint, c.Action, c.Use
//	}
//
// Placeholder lifetimes have fixed regions. Constraints that would grow one
// are reported as [Violation] values instead of conflicts.
package engine
