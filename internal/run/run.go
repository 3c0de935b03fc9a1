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

// Package run executes the region inference pipeline for a single function.
package run

import (
	"context"
	"runtime/trace"

	"fillmore-labs.com/regionck/internal/config"
	"fillmore-labs.com/regionck/internal/conflict"
	"fillmore-labs.com/regionck/internal/constraint"
	"fillmore-labs.com/regionck/internal/explain"
	"fillmore-labs.com/regionck/internal/liveness"
	"fillmore-labs.com/regionck/internal/solver"
	"fillmore-labs.com/regionck/ir"
)

// Result holds the outputs of all stages for one function.
type Result struct {
	Function    *ir.Function
	Liveness    *liveness.Result
	Constraints *constraint.Set
	Solution    *solver.Solution
	Conflicts   []conflict.Record
}

// Run executes the pipeline for fn. Each stage completes before the next one starts.
func (o *Options) Run(ctx context.Context, fn *ir.Function) (*Result, error) {
	if err := fn.Validate(); err != nil {
		return nil, err
	}

	ctx, task := trace.NewTask(ctx, "RegionCheck")
	defer task.End()

	trace.Log(ctx, "function", fn.Name)
	trace.Log(ctx, "behavior", config.Describe(o.Behavior))

	mayDangle := o.Behavior.Enabled(config.MayDangle)

	// Stage 1: Variable and lifetime liveness
	live := liveness.Analyze(ctx, fn, mayDangle)

	// Stage 2: Liveness and outlives constraints
	set := constraint.Generate(ctx, fn, live, constraint.Options{
		Invariance: o.Behavior.Enabled(config.Invariance),
	})

	// Stage 3: Least regions
	sol, err := solver.Solve(ctx, fn, set, solver.Options{MaxRounds: o.MaxRounds})
	if err != nil {
		return nil, err
	}

	// Stage 4: Conflicts between accesses and live borrows
	opts := conflict.Options{UseAfterScope: o.Behavior.Enabled(config.UseAfterScope)}
	if o.Behavior.Enabled(config.Explain) {
		opts.Explainer = explain.New(fn, set, mayDangle)
	}

	conflicts := conflict.Detect(ctx, fn, set, sol, opts)

	return &Result{
		Function:    fn,
		Liveness:    live,
		Constraints: set,
		Solution:    sol,
		Conflicts:   conflicts,
	}, nil
}
