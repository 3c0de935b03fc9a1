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

// Package batch analyzes independent functions in parallel.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/regionck/internal/run"
	"fillmore-labs.com/regionck/ir"
)

var tracer = otel.Tracer("fillmore-labs.com/regionck")

// Options configure a batch run.
type Options struct {
	// Run configures the per-function pipeline.
	Run *run.Options

	// Concurrency limits the number of functions analyzed at the same time.
	// Zero or less means GOMAXPROCS.
	Concurrency int

	Metrics *Metrics
	Logger  *slog.Logger
}

// Run analyzes fns concurrently. Results are returned in input order.
//
// Functions share no state, so a failing function does not affect the others:
// its result is nil and its error is part of the joined error.
// Cancellation of ctx stops functions not yet started.
func Run(ctx context.Context, fns []*ir.Function, opts Options) ([]*run.Result, error) {
	ro := opts.Run
	if ro == nil {
		ro = run.DefaultOptions()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]*run.Result, len(fns))
	errs := make([]error, len(fns))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, fn := range fns {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i], errs[i] = analyze(gctx, ro, fn, logger)
			opts.Metrics.observe(results[i], errs[i])

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	if err := ctx.Err(); err != nil {
		return results, err
	}

	return results, errors.Join(errs...)
}

func analyze(ctx context.Context, ro *run.Options, fn *ir.Function, logger *slog.Logger) (*run.Result, error) {
	ctx, span := tracer.Start(ctx, "regionck.Analyze",
		trace.WithAttributes(attribute.String("function", fn.Name)),
	)
	defer span.End()

	res, err := ro.Run(ctx, fn)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "analysis failed")
		logger.LogAttrs(ctx, slog.LevelWarn, "Analysis failed", slog.String("function", fn.Name), slog.Any("error", err))

		return nil, fmt.Errorf("function %q: %w", fn.Name, err)
	}

	span.SetAttributes(
		attribute.Int("constraints", res.Constraints.Len()),
		attribute.Int("conflicts", len(res.Conflicts)),
		attribute.Int("placeholder_violations", len(res.Solution.Violations)),
	)

	logger.LogAttrs(ctx, slog.LevelDebug, "Analyzed function",
		slog.String("function", fn.Name),
		slog.Int("constraints", res.Constraints.Len()),
		slog.Int("conflicts", len(res.Conflicts)),
	)

	return res, nil
}
