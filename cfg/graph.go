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
	"fmt"
	"iter"
	"strconv"
	"strings"

	"fillmore-labs.com/regionck/region"
)

// Graph is an immutable control-flow graph of [Block]s.
//
// Every point of the graph has a dense index in [0, NumPoints()), assigned in
// block order. Regions over a graph use these indices.
type Graph struct {
	blocks []Block
	points []Point
	labels map[string]BlockID
	entry  BlockID
}

func newGraph(src []*Block, entry BlockID) *Graph {
	g := &Graph{
		blocks: make([]Block, len(src)),
		labels: make(map[string]BlockID, len(src)),
		entry:  entry,
	}

	offset := 0
	for i, s := range src {
		blk := &g.blocks[i]
		blk.ID = s.ID
		blk.Label = s.Label
		blk.Statements = s.Statements
		blk.Successors = append([]BlockID(nil), s.Successors...)
		blk.offset = offset

		offset += blk.Len()
		g.labels[blk.Label] = blk.ID
	}

	for i := range g.blocks {
		for _, s := range g.blocks[i].Successors {
			succ := &g.blocks[s]
			succ.Predecessors = append(succ.Predecessors, BlockID(i))
		}
	}

	g.points = make([]Point, 0, offset)
	for i := range g.blocks {
		blk := &g.blocks[i]
		for j := range blk.Len() {
			g.points = append(g.points, blk.At(j))
		}
	}

	return g
}

// Entry returns the entry block.
func (g *Graph) Entry() *Block {
	return &g.blocks[g.entry]
}

// NumBlocks returns the number of blocks.
func (g *Graph) NumBlocks() int {
	return len(g.blocks)
}

// Block returns the block with the given ID. The result must not be modified.
func (g *Graph) Block(id BlockID) *Block {
	return &g.blocks[id]
}

// Blocks yields all blocks in ID order.
func (g *Graph) Blocks() iter.Seq[*Block] {
	return func(yield func(*Block) bool) {
		for i := range g.blocks {
			if !yield(&g.blocks[i]) {
				return
			}
		}
	}
}

// NumPoints returns the number of points in the graph.
func (g *Graph) NumPoints() int {
	return len(g.points)
}

// Valid reports whether p addresses a point of the graph.
func (g *Graph) Valid(p Point) bool {
	return int(p.Block) < len(g.blocks) && p.Index >= 0 && p.Index <= g.blocks[p.Block].Statements
}

// Index returns the dense index of point p. It panics if p is not a point of the graph.
func (g *Graph) Index(p Point) int {
	if !g.Valid(p) {
		panic(fmt.Errorf("internal error: point %v not in graph", p))
	}

	return g.blocks[p.Block].offset + p.Index
}

// PointAt returns the point with dense index i.
func (g *Graph) PointAt(i int) Point {
	return g.points[i]
}

// Points yields all points in lexical order.
func (g *Graph) Points() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for _, p := range g.points {
			if !yield(p) {
				return
			}
		}
	}
}

// Successors returns the successor points of p.
//
// Within a block the successor of a statement is the next point.
// The successors of a terminator are the entry points of the successor blocks.
func (g *Graph) Successors(p Point) []Point {
	var succ []Point

	blk := &g.blocks[p.Block]
	if p.Index < blk.Statements {
		return append(succ, blk.At(p.Index+1))
	}

	for _, s := range blk.Successors {
		succ = append(succ, g.blocks[s].Entry())
	}

	return succ
}

// AppendSuccessors appends the dense indices of the successors of point index i to dst.
func (g *Graph) AppendSuccessors(dst []int, i int) []int {
	p := g.points[i]

	blk := &g.blocks[p.Block]
	if p.Index < blk.Statements {
		return append(dst, i+1)
	}

	for _, s := range blk.Successors {
		dst = append(dst, g.blocks[s].offset)
	}

	return dst
}

// Predecessors returns the predecessor points of p.
func (g *Graph) Predecessors(p Point) []Point {
	var pred []Point

	if p.Index > 0 {
		return append(pred, Point{Block: p.Block, Index: p.Index - 1})
	}

	for _, s := range g.blocks[p.Block].Predecessors {
		pred = append(pred, g.blocks[s].Terminator())
	}

	return pred
}

// Name returns the point as "label.index", e.g. "A.1".
func (g *Graph) Name(p Point) string {
	if !g.Valid(p) {
		return p.String()
	}

	return g.blocks[p.Block].Label + "." + strconv.Itoa(p.Index)
}

// Lookup parses a point name of the form "label.index".
func (g *Graph) Lookup(name string) (Point, error) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return Point{}, fmt.Errorf("point %q: missing index", name)
	}

	id, ok := g.labels[name[:i]]
	if !ok {
		return Point{}, fmt.Errorf("point %q: unknown block %q", name, name[:i])
	}

	idx, err := strconv.Atoi(name[i+1:])
	if err != nil {
		return Point{}, fmt.Errorf("point %q: %w", name, err)
	}

	p := Point{Block: id, Index: idx}
	if !g.Valid(p) {
		return Point{}, fmt.Errorf("point %q: index out of range [0, %d]", name, g.blocks[id].Statements)
	}

	return p, nil
}

// BlockByLabel returns the block with the given label.
func (g *Graph) BlockByLabel(label string) (*Block, bool) {
	id, ok := g.labels[label]
	if !ok {
		return nil, false
	}

	return &g.blocks[id], true
}

// Region returns a region containing the given points.
func (g *Graph) Region(points ...Point) *region.Region {
	r := new(region.Region)
	for _, p := range points {
		r.Insert(g.Index(p))
	}

	return r
}

// PointsOf returns the points of r in lexical order.
func (g *Graph) PointsOf(r *region.Region) []Point {
	points := make([]Point, 0, r.Len())
	for i := range r.All() {
		points = append(points, g.points[i])
	}

	return points
}

// Format returns the points of r by name, e.g. "{A.1, B.0}".
func (g *Graph) Format(r *region.Region) string {
	var sb strings.Builder

	sb.WriteByte('{')

	for i, p := range g.PointsOf(r) {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(g.Name(p))
	}

	sb.WriteByte('}')

	return sb.String()
}

// ReachableWithin returns the points reachable from "from" by zero or more
// steps that stay inside barrier. The result is empty when from is not in barrier.
func (g *Graph) ReachableWithin(from Point, barrier *region.Region) *region.Region {
	return NewWalker(g).ReachableWithin(from, barrier)
}
