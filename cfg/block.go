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

// Block represents a [basic block] in the [control-flow graph].
// It is a sequence of statement points with a single entry, followed by one
// terminator point that transfers control to the successor blocks.
//
// [basic block]: https://en.wikipedia.org/wiki/Basic_block
// [control-flow graph]: https://en.wikipedia.org/wiki/Control-flow_graph
type Block struct {
	ID    BlockID
	Label string

	// Statements is the number of statement points before the terminator.
	Statements int

	// The successors in the order they were linked.
	//
	// For conditional branches the first successor is the "then" branch,
	// the second one the "else" branch.
	Successors []BlockID

	// Predecessors in ascending ID order. Only set on blocks of a built [Graph].
	Predecessors []BlockID

	offset int // dense index of the first point
}

// Len returns the number of points in the block, including the terminator.
func (b *Block) Len() int {
	return b.Statements + 1
}

// Entry returns the first point of the block.
func (b *Block) Entry() Point {
	return Point{Block: b.ID}
}

// Terminator returns the terminator point of the block.
func (b *Block) Terminator() Point {
	return Point{Block: b.ID, Index: b.Statements}
}

// At returns the i-th point of the block.
func (b *Block) At(i int) Point {
	return Point{Block: b.ID, Index: i}
}

// Link appends successor blocks, skipping blocks that are already successors.
func (b *Block) Link(succs ...*Block) {
	for _, s := range succs {
		if s == nil || b.hasSuccessor(s.ID) {
			continue
		}

		b.Successors = append(b.Successors, s.ID)
	}
}

// LinkBranch sets the successors for a conditional branch.
//
//	current -> then
//	   |
//	   v
//	  else
func (b *Block) LinkBranch(then, els *Block) {
	b.Successors = b.Successors[:0]
	b.Link(then, els)
}

func (b *Block) hasSuccessor(id BlockID) bool {
	for _, s := range b.Successors {
		if s == id {
			return true
		}
	}

	return false
}
