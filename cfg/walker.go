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

import "fillmore-labs.com/regionck/region"

// Walker answers reachability queries on a [Graph].
//
// A Walker keeps its search state between queries and must not be used concurrently.
type Walker struct {
	g *Graph

	// Reusable BFS state to avoid allocations on each query
	seen  []bool // Visited set
	queue []int  // Each point is enqueued at most once
	succ  []int  // Successor scratch buffer
}

// NewWalker returns a [Walker] for g.
func NewWalker(g *Graph) *Walker {
	n := g.NumPoints()

	return &Walker{
		g:     g,
		seen:  make([]bool, n),
		queue: make([]int, n),
	}
}

// ReachableWithin returns the points reachable from "from" by zero or more
// steps that stay inside barrier. The result is empty when from is not in barrier.
func (w *Walker) ReachableWithin(from Point, barrier *region.Region) *region.Region {
	return w.Within(w.g.Index(from), barrier)
}

// Within is [Walker.ReachableWithin] on dense point indices.
func (w *Walker) Within(from int, barrier *region.Region) *region.Region {
	result := new(region.Region)
	if !barrier.Has(from) {
		return result
	}

	clear(w.seen)

	w.seen[from] = true
	w.queue[0] = from
	qTail := 1

	for qHead := 0; qHead < qTail; qHead++ {
		curr := w.queue[qHead]
		result.Insert(curr)

		qTail = w.enqueueSuccessors(curr, qTail, barrier)
	}

	return result
}

// Reachable reports whether "to" is reachable from "from" by zero or more steps.
func (w *Walker) Reachable(from, to Point) bool {
	source, target := w.g.Index(from), w.g.Index(to)
	if source == target {
		return true
	}

	clear(w.seen)

	qTail := w.enqueueSuccessors(source, 0, nil)

	for qHead := 0; qHead < qTail; qHead++ {
		curr := w.queue[qHead]
		if curr == target {
			return true
		}

		qTail = w.enqueueSuccessors(curr, qTail, nil)
	}

	return false
}

// Nearest searches breadth-first from the successors of "from", staying
// inside barrier, for points satisfying match. It returns the lowest matching
// point index of the first BFS layer that contains a match.
// A nil barrier admits every point.
//
// Dense indices follow lexical point order, so ties resolve to the
// lexically earliest point.
func (w *Walker) Nearest(from int, barrier *region.Region, match func(int) bool) (int, bool) {
	clear(w.seen)

	qHead, qTail := 0, w.enqueueSuccessors(from, 0, barrier)

	for qHead < qTail {
		layerEnd := qTail
		best := -1

		for ; qHead < layerEnd; qHead++ {
			curr := w.queue[qHead]
			if match(curr) && (best < 0 || curr < best) {
				best = curr
			}

			qTail = w.enqueueSuccessors(curr, qTail, barrier)
		}

		if best >= 0 {
			return best, true
		}
	}

	return 0, false
}

// Beyond reports whether a point of target is reachable from the successors
// of "from" without passing through stop. A negative stop blocks no point.
func (w *Walker) Beyond(from, stop int, target *region.Region) bool {
	if target.IsEmpty() {
		return false
	}

	clear(w.seen)

	if stop >= 0 {
		w.seen[stop] = true
	}

	qTail := w.enqueueSuccessors(from, 0, nil)

	for qHead := 0; qHead < qTail; qHead++ {
		curr := w.queue[qHead]
		if target.Has(curr) {
			return true
		}

		qTail = w.enqueueSuccessors(curr, qTail, nil)
	}

	return false
}

// enqueueSuccessors adds unseen successors of point s to the queue.
// A nil barrier admits every point.
func (w *Walker) enqueueSuccessors(s, qTail int, barrier *region.Region) int {
	w.succ = w.g.AppendSuccessors(w.succ[:0], s)

	for _, succ := range w.succ {
		if w.seen[succ] || barrier != nil && !barrier.Has(succ) {
			continue
		}
		w.seen[succ] = true

		w.queue[qTail] = succ
		qTail++
	}

	return qTail
}
