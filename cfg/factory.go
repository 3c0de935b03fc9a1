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

// factory creates and manages [Block]s in a [slab list].
//
// Pointers handed out by New stay valid while more blocks are added.
//
// [slab list]: https://en.wikipedia.org/wiki/Slab_allocation
type factory struct {
	start, current *chunk
	count, total   int
}

// chunk is a linked list of fixed-size arrays of Blocks.
type chunk struct {
	blocks [ChunkSize]Block
	next   *chunk
}

// ChunkSize defines the number of Blocks stored in a single chunk.
const ChunkSize = 127

// New creates and returns a new *[Block] with the next free ID.
func (f *factory) New(label string, statements int) *Block {
	if f.count == ChunkSize {
		f.current.next = new(chunk)
		f.current = f.current.next
		f.count = 0
		f.total += ChunkSize
	} else if f.current == nil {
		f.current = new(chunk)
		f.start = f.current
	}

	f.count++

	block := &f.current.blocks[f.count-1]
	block.ID = BlockID(f.total + f.count - 1)
	block.Label = label
	block.Statements = statements

	return block
}

// Len returns the number of blocks created so far.
func (f *factory) Len() int {
	return f.total + f.count
}

// Owns reports whether b was created by this factory.
func (f *factory) Owns(b *Block) bool {
	id := int(b.ID)
	if id >= f.Len() {
		return false
	}

	c := f.start
	for range id / ChunkSize {
		c = c.next
	}

	return &c.blocks[id%ChunkSize] == b
}

// All retrieves all Blocks in ID order.
func (f *factory) All() []*Block {
	if f.current == nil {
		return nil
	}

	blocks := make([]*Block, 0, f.Len())
	for next := f.start; next != nil; next = next.next {
		n := ChunkSize
		if next == f.current {
			n = f.count
		}

		for i := range n {
			blocks = append(blocks, &next.blocks[i])
		}
	}

	return blocks
}
