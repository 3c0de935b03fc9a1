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


// Regionck infers lifetime regions of lowered functions and reports borrow conflicts.
//
// Usage:
//
//	regionck check [flags] files...
//	regionck regions [--verify] files...
//	regionck constraints files...
//
// Files contain functions in YAML, either as a stream of documents or
// bundled in a ".txtar" archive.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

// Exit codes.
const (
	exitOK        = 0
	exitConflicts = 1
	exitError     = 2
)

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)

	switch {
	case err == nil:
		return exitOK

	case errors.Is(err, errConflicts):
		return exitConflicts

	default:
		fmt.Fprintln(stderr, "Error:", err)

		return exitError
	}
}
