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

package config

// BitMask is a small set of flags of type T.
// The zero value is the empty set.
type BitMask[T ~uint8 | ~uint16 | ~uint32] struct {
	bits T
}

// NewBitMask returns a [BitMask] with the given flags set.
func NewBitMask[T ~uint8 | ~uint16 | ~uint32](flags ...T) BitMask[T] {
	var b BitMask[T]
	for _, f := range flags {
		b.bits |= f
	}

	return b
}

// Set enables flag when value is true and disables it otherwise.
func (b *BitMask[T]) Set(flag T, value bool) {
	if value {
		b.bits |= flag
		return
	}

	b.bits &^= flag
}

// Enable sets flag.
func (b *BitMask[T]) Enable(flag T) { b.Set(flag, true) }

// Disable clears flag.
func (b *BitMask[T]) Disable(flag T) { b.Set(flag, false) }

// Enabled reports whether any bit of flag is set.
func (b BitMask[T]) Enabled(flag T) bool {
	return b.bits&flag != 0
}

// Value returns the raw bits.
func (b BitMask[T]) Value() T {
	return b.bits
}

// With returns a copy of b with flag set to value, leaving b unchanged.
func (b BitMask[T]) With(flag T, value bool) BitMask[T] {
	b.Set(flag, value)

	return b
}
