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

package batch

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"fillmore-labs.com/regionck/internal/run"
)

// Metrics collects Prometheus metrics of analysis runs.
// A nil *Metrics records nothing.
type Metrics struct {
	functions    *prometheus.CounterVec
	conflicts    *prometheus.CounterVec
	violations   prometheus.Counter
	applications prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// Collectors already registered with reg are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	const namespace = "regionck"

	m := &Metrics{
		functions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "functions_total",
			Help:      "Functions analyzed, by outcome.",
		}, []string{"outcome"}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conflicts_total",
			Help:      "Borrow conflicts found, by reason.",
		}, []string{"reason"}),
		violations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "placeholder_violations_total",
			Help:      "Constraints requiring a placeholder region to grow.",
		}),
		applications: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solver_applications",
			Help:      "Outlives constraint applications per function.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}

	if err := register(reg, &m.functions, &m.conflicts); err != nil {
		return nil, err
	}

	if err := register(reg, &m.violations); err != nil {
		return nil, err
	}

	if err := register(reg, &m.applications); err != nil {
		return nil, err
	}

	return m, nil
}

// register registers the collectors, replacing each by an already registered equal collector.
func register[C prometheus.Collector](reg prometheus.Registerer, cs ...*C) error {
	for _, c := range cs {
		err := reg.Register(*c)
		if err == nil {
			continue
		}

		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return fmt.Errorf("registering metrics: %w", err)
		}

		existing, ok := already.ExistingCollector.(C)
		if !ok {
			return fmt.Errorf("registering metrics: %w", err)
		}

		*c = existing
	}

	return nil
}

func (m *Metrics) observe(res *run.Result, err error) {
	if m == nil {
		return
	}

	if err != nil {
		m.functions.WithLabelValues("error").Inc()
		return
	}

	m.functions.WithLabelValues("ok").Inc()

	for _, c := range res.Conflicts {
		m.conflicts.WithLabelValues(c.Reason.String()).Inc()
	}

	m.violations.Add(float64(len(res.Solution.Violations)))
	m.applications.Observe(float64(res.Solution.Applications))
}
