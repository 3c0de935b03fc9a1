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
)

type constraintsReport struct {
	Function string   `json:"function" yaml:"function"`
	Live     []string `json:"live" yaml:"live"`
	Outlives []string `json:"outlives" yaml:"outlives"`
}

func newConstraintsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "constraints files...",
		Short: "Print the liveness and outlives constraints of every function",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := c.analyze(cmd.Context(), args)
			if err != nil {
				return err
			}

			reports := make([]constraintsReport, 0, len(results))

			for _, res := range results {
				fn := res.Function
				r := constraintsReport{Function: fn.Name, Live: []string{}, Outlives: []string{}}

				for _, l := range res.Constraints.Live() {
					r.Live = append(r.Live, l.Format(fn))
				}

				for _, o := range res.Constraints.Sorted() {
					r.Outlives = append(r.Outlives, o.Format(fn))
				}

				reports = append(reports, r)
			}

			return c.write(reports)
		},
	}
}
