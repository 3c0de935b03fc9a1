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
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
)

// errConflicts is returned by the check command when a function has conflicts or placeholder violations.
var errConflicts = errors.New("conflicts found")

type checkReport struct {
	Function   string            `json:"function" yaml:"function"`
	Conflicts  []conflictReport  `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
	Violations []violationReport `json:"violations,omitempty" yaml:"violations,omitempty"`
}

func newCheckCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "check files...",
		Short: "Report borrow conflicts and placeholder violations",
		Long: `Analyzes all functions of the given files and reports every access that
invalidates a borrow while its reference is still in use.
Exits with status 1 when a function has conflicts.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := c.analyze(cmd.Context(), args)
			if err != nil {
				return err
			}

			reports := make([]checkReport, 0, len(results))
			found := 0

			for _, res := range results {
				fn := res.Function
				r := checkReport{Function: fn.Name}

				for _, conflict := range res.Conflicts {
					r.Conflicts = append(r.Conflicts, newConflictReport(fn, conflict))
				}

				for _, v := range res.Violations {
					r.Violations = append(r.Violations, newViolationReport(fn, v))
				}

				found += len(r.Conflicts) + len(r.Violations)

				reports = append(reports, r)
			}

			if err := c.write(reports); err != nil {
				return err
			}

			if found > 0 {
				c.logger.Info("Check failed", slog.Int("functions", len(results)), slog.Int("findings", found))

				return errConflicts
			}

			return nil
		},
	}
}
