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
	"context"
	"log/slog"

	"fillmore-labs.com/regionck/internal/batch"
	"fillmore-labs.com/regionck/internal/run"
	"fillmore-labs.com/regionck/ir"
)

// Engine analyzes functions. It holds no per-function state and is safe for
// concurrent use.
type Engine struct {
	run         *run.Options
	concurrency int
	metrics     *batch.Metrics
	logger      *slog.Logger
}

// New creates an [Engine] configured by opts, applied in order over the defaults.
func New(opts ...Option) (*Engine, error) {
	o := makeEngineOptions(opts)

	var metrics *batch.Metrics
	if o.registerer != nil {
		m, err := batch.NewMetrics(o.registerer)
		if err != nil {
			return nil, err
		}

		metrics = m
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Debug("Engine created", Options(opts).LogAttr())

	return &Engine{
		run:         &o.run,
		concurrency: o.concurrency,
		metrics:     metrics,
		logger:      logger,
	}, nil
}

// Analyze infers the regions of fn and detects its conflicts.
func (e *Engine) Analyze(ctx context.Context, fn *ir.Function) (*Result, error) {
	results, err := e.AnalyzeAll(ctx, []*ir.Function{fn})
	if err != nil {
		return nil, err
	}

	return results[0], nil
}

// AnalyzeAll analyzes independent functions concurrently.
//
// Results are in the order of fns. A function that fails has a nil result,
// and its error is part of the returned error.
func (e *Engine) AnalyzeAll(ctx context.Context, fns []*ir.Function) ([]*Result, error) {
	rs, err := batch.Run(ctx, fns, batch.Options{
		Run:         e.run,
		Concurrency: e.concurrency,
		Metrics:     e.metrics,
		Logger:      e.logger,
	})

	results := make([]*Result, len(rs))
	for i, r := range rs {
		if r != nil {
			results[i] = newResult(r)
		}
	}

	return results, err
}
