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

	"github.com/spf13/pflag"

	"fillmore-labs.com/regionck/internal/config"
	"fillmore-labs.com/regionck/internal/run"
)

const (
	maxRoundsFlag   = "max-rounds"
	concurrencyFlag = "concurrency"
)

// RegisterFlags binds engine settings to command line flags of fs.
//
// The returned [Option] applies the flags explicitly set on the command line
// and leaves every other setting untouched, so it is meant to be passed
// after options from a configuration file.
// A nil flag set value defaults to the program's command line.
func RegisterFlags(fs *pflag.FlagSet) Option {
	if fs == nil {
		fs = pflag.CommandLine
	}

	d := run.DefaultOptions()
	o := &flagsOption{fs: fs, behavior: d.Behavior}

	for _, n := range config.Names {
		f := fs.VarPF(newBehaviorValue(&o.behavior, n.Flag), n.Name, "", n.Usage)
		f.NoOptDefVal = "true"
	}

	fs.IntVar(&o.maxRounds, maxRoundsFlag, d.MaxRounds, "maximum outlives constraint applications per function (0 = unlimited)")
	fs.IntVar(&o.concurrency, concurrencyFlag, 0, "number of functions analyzed in parallel (0 = GOMAXPROCS)")

	return o
}

type flagsOption struct {
	fs          *pflag.FlagSet
	behavior    config.BehaviorFlags
	maxRounds   int
	concurrency int
}

func (o *flagsOption) apply(e *engineOptions) {
	for _, n := range config.Names {
		if o.fs.Changed(n.Name) {
			e.run.Behavior.Set(n.Flag, o.behavior.Enabled(n.Flag))
		}
	}

	if o.fs.Changed(maxRoundsFlag) {
		e.run.MaxRounds = o.maxRounds
	}

	if o.fs.Changed(concurrencyFlag) {
		e.concurrency = o.concurrency
	}
}

func (o *flagsOption) LogAttr() slog.Attr {
	var as []slog.Attr

	for _, n := range config.Names {
		if o.fs.Changed(n.Name) {
			as = append(as, slog.Bool(n.Name, o.behavior.Enabled(n.Flag)))
		}
	}

	if o.fs.Changed(maxRoundsFlag) {
		as = append(as, slog.Int(maxRoundsFlag, o.maxRounds))
	}

	if o.fs.Changed(concurrencyFlag) {
		as = append(as, slog.Int(concurrencyFlag, o.concurrency))
	}

	return slog.Attr{Key: "flags", Value: slog.GroupValue(as...)}
}
