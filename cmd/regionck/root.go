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
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"fillmore-labs.com/regionck/engine"
	"fillmore-labs.com/regionck/internal/fixture"
	"fillmore-labs.com/regionck/ir"
)

// cli holds the state shared by all commands.
type cli struct {
	stdout, stderr io.Writer

	configFile string
	logLevel   string
	format     string
	timeout    time.Duration

	flags  engine.Option
	logger *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:               "regionck",
		Short:             "regionck - region inference and borrow conflict detection",
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&c.configFile, "config", "c", "", "settings file (YAML)")
	pf.StringVar(&c.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&c.format, "format", "f", formatYAML, "output format (yaml, json)")
	pf.DurationVar(&c.timeout, "timeout", 0, "analysis timeout (0 = none)")
	c.flags = engine.RegisterFlags(pf)

	root.AddCommand(newCheckCmd(c))
	root.AddCommand(newRegionsCmd(c))
	root.AddCommand(newConstraintsCmd(c))

	return root
}

func (c *cli) setup(*cobra.Command, []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.logLevel, err)
	}

	if _, err := newEncoder(c.format, io.Discard); err != nil {
		return err
	}

	c.logger = slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{Level: level}))

	return nil
}

// engine creates an engine from the settings file, overridden by command line flags.
func (c *cli) engine() (*engine.Engine, error) {
	var opts engine.Options

	if c.configFile != "" {
		s, err := engine.ReadSettings(c.configFile)
		if err != nil {
			return nil, err
		}

		opts = append(opts, s.Options())
	}

	opts = append(opts, c.flags, engine.WithLogger(c.logger))

	c.logger.Debug("Configured engine", slog.String("config", c.configFile))

	return engine.New(opts...)
}

// analyze loads all functions of files and analyzes them.
func (c *cli) analyze(ctx context.Context, files []string) ([]*engine.Result, error) {
	var fns []*ir.Function

	for _, name := range files {
		loaded, err := fixture.Load(name)
		if err != nil {
			return nil, err
		}

		c.logger.Info("Loaded functions", slog.String("file", name), slog.Int("count", len(loaded)))

		fns = append(fns, loaded...)
	}

	e, err := c.engine()
	if err != nil {
		return nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)

		defer cancel()
	}

	return e.AnalyzeAll(ctx, fns)
}

// write encodes v to standard output in the selected format.
func (c *cli) write(v any) error {
	enc, err := newEncoder(c.format, c.stdout)
	if err != nil {
		return err
	}

	return enc.encode(v)
}
