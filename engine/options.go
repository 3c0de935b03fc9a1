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
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"fillmore-labs.com/regionck/internal/config"
	"fillmore-labs.com/regionck/internal/run"
)

// engineOptions is the configuration an [Engine] is built from.
type engineOptions struct {
	run         run.Options
	concurrency int
	registerer  prometheus.Registerer
	logger      *slog.Logger
}

// makeEngineOptions returns the defaults with opts applied.
func makeEngineOptions(opts Options) *engineOptions {
	o := &engineOptions{run: *run.DefaultOptions()}
	opts.apply(o)

	return o
}

// Option configures specific behavior of a [New] engine.
type Option interface {
	apply(o *engineOptions)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(e *engineOptions) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(e)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithMayDangle is an [Option] to configure whether drops honor the may-dangle
// predicate. When disabled, dropping a variable keeps every lifetime of its type live.
func WithMayDangle(mayDangle bool) Option {
	return behaviorOption{name: "may-dangle", flag: config.MayDangle, value: mayDangle}
}

// WithUseAfterScope is an [Option] to configure reporting of borrows whose
// region continues past the end of the borrowed storage.
func WithUseAfterScope(useAfterScope bool) Option {
	return behaviorOption{name: "use-after-scope", flag: config.UseAfterScope, value: useAfterScope}
}

// WithExplain is an [Option] to configure whether conflicts carry a use point.
func WithExplain(explain bool) Option {
	return behaviorOption{name: "explain", flag: config.Explain, value: explain}
}

// WithInvariance is an [Option] to configure reverse outlives constraints for
// invariant type positions.
func WithInvariance(invariance bool) Option {
	return behaviorOption{name: "invariance", flag: config.Invariance, value: invariance}
}

type behaviorOption struct {
	name  string
	flag  config.Behavior
	value bool
}

func (o behaviorOption) apply(e *engineOptions) {
	e.run.Behavior.Set(o.flag, o.value)
}

func (o behaviorOption) LogAttr() slog.Attr {
	return slog.Bool(o.name, o.value)
}

// WithMaxRounds is an [Option] to limit the outlives constraint applications per function.
// Zero means no limit.
func WithMaxRounds(maxRounds int) Option { return maxRoundsOption{maxRounds: maxRounds} }

type maxRoundsOption struct{ maxRounds int }

func (o maxRoundsOption) apply(e *engineOptions) {
	e.run.MaxRounds = o.maxRounds
}

func (o maxRoundsOption) LogAttr() slog.Attr {
	return slog.Int("max-rounds", o.maxRounds)
}

// WithConcurrency is an [Option] to limit the number of functions analyzed at
// the same time. Zero or less means GOMAXPROCS.
func WithConcurrency(concurrency int) Option { return concurrencyOption{concurrency: concurrency} }

type concurrencyOption struct{ concurrency int }

func (o concurrencyOption) apply(e *engineOptions) {
	e.concurrency = o.concurrency
}

func (o concurrencyOption) LogAttr() slog.Attr {
	return slog.Int("concurrency", o.concurrency)
}

// WithMetrics is an [Option] to record Prometheus metrics with reg.
// A nil registerer disables metrics.
func WithMetrics(reg prometheus.Registerer) Option { return metricsOption{reg: reg} }

type metricsOption struct{ reg prometheus.Registerer }

func (o metricsOption) apply(e *engineOptions) {
	e.registerer = o.reg
}

func (o metricsOption) LogAttr() slog.Attr {
	return slog.Bool("metrics", o.reg != nil)
}

// WithLogger is an [Option] to log analysis progress to logger.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(e *engineOptions) {
	e.logger = o.logger
}

func (o loggerOption) LogAttr() slog.Attr {
	return slog.Bool("logger", o.logger != nil)
}
