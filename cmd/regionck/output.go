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


package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"fillmore-labs.com/regionck/engine"
	"fillmore-labs.com/regionck/ir"
	"fillmore-labs.com/regionck/region"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

type encoder interface {
	encode(v any) error
}

type yamlEncoder struct{ w io.Writer }

func (e yamlEncoder) encode(v any) error {
	enc := yaml.NewEncoder(e.w)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}

type jsonEncoder struct{ w io.Writer }

func (e jsonEncoder) encode(v any) error {
	enc := json.NewEncoder(e.w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func newEncoder(format string, w io.Writer) (encoder, error) {
	switch format {
	case formatYAML:
		return yamlEncoder{w}, nil

	case formatJSON:
		return jsonEncoder{w}, nil

	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// conflictReport is a [engine.Conflict] with names instead of ids.
type conflictReport struct {
	Reason   string `json:"reason" yaml:"reason"`
	Borrow   string `json:"borrow" yaml:"borrow"`
	Path     string `json:"path" yaml:"path"`
	Lifetime string `json:"lifetime" yaml:"lifetime"`
	Access   string `json:"access" yaml:"access"`
	Created  string `json:"created" yaml:"created"`
	Action   string `json:"action" yaml:"action"`
	Use      string `json:"use,omitempty" yaml:"use,omitempty"`
}

type violationReport struct {
	Lifetime   string   `json:"lifetime" yaml:"lifetime"`
	Constraint string   `json:"constraint" yaml:"constraint"`
	Missing    []string `json:"missing" yaml:"missing,flow"`
}

type regionReport struct {
	Lifetime    string   `json:"lifetime" yaml:"lifetime"`
	Placeholder bool     `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Points      []string `json:"points" yaml:"points,flow"`
}

type unsatisfiedReport struct {
	Constraint string   `json:"constraint" yaml:"constraint"`
	Missing    []string `json:"missing" yaml:"missing,flow"`
}

func points(fn *ir.Function, r *region.Region) []string {
	names := []string{}
	for _, p := range fn.Graph.PointsOf(r) {
		names = append(names, fn.Graph.Name(p))
	}

	return names
}

func newConflictReport(fn *ir.Function, c engine.Conflict) conflictReport {
	r := conflictReport{
		Reason:   c.Reason.String(),
		Borrow:   c.Kind.String(),
		Path:     c.Path.Format(fn.VariableName),
		Lifetime: fn.LifetimeName(c.Lifetime),
		Access:   c.Access.String(),
		Created:  fn.Graph.Name(c.BorrowPoint),
		Action:   fn.Graph.Name(c.Action),
	}

	if c.HasUse {
		r.Use = fn.Graph.Name(c.Use)
	}

	return r
}

func newViolationReport(fn *ir.Function, v engine.Violation) violationReport {
	return violationReport{
		Lifetime:   fn.LifetimeName(v.Lifetime),
		Constraint: v.Constraint.Format(fn),
		Missing:    points(fn, v.Missing),
	}
}
