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

// Package ir defines the input of the region inference engine: a function's
// control-flow graph annotated with lifetimes, typed variables, variable
// events, subtyping obligations, borrows and accesses.
package ir

// VarID identifies a [Variable] of a [Function]. IDs start at 1; the zero value is [NoVar].
type VarID uint32

// NoVar is the invalid variable ID.
const NoVar VarID = 0

// IsValid reports whether v refers to a variable.
func (v VarID) IsValid() bool { return v != NoVar }

// Index returns the zero-based index of v.
func (v VarID) Index() int { return int(v) - 1 }

// LifetimeID identifies a [Lifetime] of a [Function]. IDs start at 1; the zero value is [NoLifetime].
type LifetimeID uint32

// NoLifetime is the invalid lifetime ID.
const NoLifetime LifetimeID = 0

// IsValid reports whether l refers to a lifetime.
func (l LifetimeID) IsValid() bool { return l != NoLifetime }

// Index returns the zero-based index of l.
func (l LifetimeID) Index() int { return int(l) - 1 }

// BorrowID identifies a [Borrow] of a [Function]. IDs start at 1; the zero value is [NoBorrow].
type BorrowID uint32

// NoBorrow is the invalid borrow ID.
const NoBorrow BorrowID = 0

// IsValid reports whether b refers to a borrow.
func (b BorrowID) IsValid() bool { return b != NoBorrow }

// Index returns the zero-based index of b.
func (b BorrowID) Index() int { return int(b) - 1 }
