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
	"github.com/spf13/cobra"

	"fillmore-labs.com/regionck/engine"
)

type regionsReport struct {
	Function    string              `json:"function" yaml:"function"`
	Regions     []regionReport      `json:"regions" yaml:"regions"`
	Unsatisfied []unsatisfiedReport `json:"unsatisfied,omitempty" yaml:"unsatisfied,omitempty"`
}

func newRegionsCmd(c *cli) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "regions files...",
		Short: "Print the inferred region of every lifetime",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := c.analyze(cmd.Context(), args)
			if err != nil {
				return err
			}

			reports := make([]regionsReport, 0, len(results))
			for _, res := range results {
				reports = append(reports, newRegionsReport(res, verify))
			}

			return c.write(reports)
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "check the regions against all constraints")

	return cmd
}

func newRegionsReport(res *engine.Result, verify bool) regionsReport {
	fn := res.Function
	r := regionsReport{Function: fn.Name}

	for l, reg := range res.Regions() {
		r.Regions = append(r.Regions, regionReport{
			Lifetime:    fn.LifetimeName(l),
			Placeholder: fn.Lifetime(l).Placeholder,
			Points:      points(fn, reg),
		})
	}

	if verify {
		for _, u := range res.Verify() {
			r.Unsatisfied = append(r.Unsatisfied, unsatisfiedReport{
				Constraint: u.Constraint.Format(fn),
				Missing:    points(fn, u.Missing),
			})
		}
	}

	return r
}
