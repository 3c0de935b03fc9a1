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
	"errors"
	"fmt"
)

// ErrInvalidGraph is returned by [Builder.Build] for malformed graphs.
var ErrInvalidGraph = errors.New("invalid control-flow graph")

// Builder assembles a [Graph] block by block.
//
// Blocks returned by [Builder.Block] are linked with [Block.Link] and
// [Block.LinkBranch]. The built graph holds copies; changes to builder
// blocks after [Builder.Build] do not affect it.
type Builder struct {
	factory
	labels map[string]*Block
	entry  *Block
	errs   []error
}

// NewBuilder returns an empty [Builder].
func NewBuilder() *Builder {
	return &Builder{labels: make(map[string]*Block)}
}

// Block creates a new block with the given label and number of statements.
// The first block created is the entry unless [Builder.SetEntry] is called.
func (b *Builder) Block(label string, statements int) *Block {
	if statements < 0 {
		b.errs = append(b.errs, fmt.Errorf("%w: block %q has negative statement count %d", ErrInvalidGraph, label, statements))
		statements = 0
	}

	if label == "" {
		label = fmt.Sprintf("bb%d", b.Len())
	}

	blk := b.New(label, statements)

	if _, ok := b.labels[label]; ok {
		b.errs = append(b.errs, fmt.Errorf("%w: duplicate block label %q", ErrInvalidGraph, label))
	} else {
		b.labels[label] = blk
	}

	return blk
}

// Lookup returns the block with the given label.
func (b *Builder) Lookup(label string) (*Block, bool) {
	blk, ok := b.labels[label]

	return blk, ok
}

// SetEntry sets the entry block of the graph.
func (b *Builder) SetEntry(blk *Block) {
	b.entry = blk
}

// Build validates the blocks and returns an immutable [Graph].
func (b *Builder) Build() (*Graph, error) {
	blocks := b.All()
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: no blocks", ErrInvalidGraph)
	}

	errs := b.errs

	entry := blocks[0]
	if b.entry != nil {
		if b.Owns(b.entry) {
			entry = b.entry
		} else {
			errs = append(errs, fmt.Errorf("%w: entry block %q is not part of this graph", ErrInvalidGraph, b.entry.Label))
		}
	}

	for _, blk := range blocks {
		for _, s := range blk.Successors {
			if int(s) >= len(blocks) {
				errs = append(errs, fmt.Errorf("%w: block %q links to unknown block %d", ErrInvalidGraph, blk.Label, s))
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return newGraph(blocks, entry.ID), nil
}
