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

package cfg

import (
	"cmp"
	"fmt"
)

// BlockID identifies a [Block] within its [Graph].
// Block IDs are dense, starting at zero in creation order.
type BlockID uint32

// Point addresses one statement or the terminator of a block.
//
// Statements of a block are numbered from zero; the terminator follows the
// last statement, so its Index equals the number of statements.
type Point struct {
	Block BlockID
	Index int
}

// Compare orders points lexically: first by block, then by index within the block.
func (p Point) Compare(q Point) int {
	if c := cmp.Compare(p.Block, q.Block); c != 0 {
		return c
	}

	return cmp.Compare(p.Index, q.Index)
}

// String returns the point as "block.index" using numeric block IDs.
// Use [Graph.Name] for labeled output.
func (p Point) String() string {
	return fmt.Sprintf("bb%d.%d", p.Block, p.Index)
}
