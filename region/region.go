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

// Package region provides monotone sets of control-flow points.
//
// A [Region] addresses points by their dense index in a control-flow graph.
// Regions only grow: there is no operation that removes a point, so every
// sequence of updates to a Region is increasing with respect to set inclusion.
package region

import (
	"iter"

	"golang.org/x/tools/container/intsets"
)

// Region is a set of dense point indices.
//
// The zero value is an empty Region ready to use.
// A Region must not be copied after first use; pass it by pointer.
// A nil *Region is treated as empty by all read-only methods.
type Region struct {
	s intsets.Sparse
}

// New returns a Region containing the given point indices.
func New(points ...int) *Region {
	r := new(Region)
	for _, p := range points {
		r.s.Insert(p)
	}

	return r
}

// Full returns a Region containing every point index in [0, n).
func Full(n int) *Region {
	r := new(Region)
	for p := range n {
		r.s.Insert(p)
	}

	return r
}

// Insert adds point p, reporting whether the Region grew.
func (r *Region) Insert(p int) bool {
	return r.s.Insert(p)
}

// UnionWith adds all points of o, reporting whether the Region grew.
func (r *Region) UnionWith(o *Region) bool {
	if o == nil {
		return false
	}

	return r.s.UnionWith(&o.s)
}

// Has reports whether point p is in the Region.
func (r *Region) Has(p int) bool {
	if r == nil {
		return false
	}

	return r.s.Has(p)
}

// Len returns the number of points in the Region.
func (r *Region) Len() int {
	if r == nil {
		return 0
	}

	return r.s.Len()
}

// IsEmpty reports whether the Region has no points.
func (r *Region) IsEmpty() bool {
	return r == nil || r.s.IsEmpty()
}

// SubsetOf reports whether every point of r is also in o.
func (r *Region) SubsetOf(o *Region) bool {
	switch {
	case r.IsEmpty():
		return true

	case o == nil:
		return false

	default:
		return r.s.SubsetOf(&o.s)
	}
}

// Equal reports whether r and o contain the same points.
func (r *Region) Equal(o *Region) bool {
	return r.SubsetOf(o) && o.SubsetOf(r)
}

// Intersects reports whether r and o share at least one point.
func (r *Region) Intersects(o *Region) bool {
	if r == nil || o == nil {
		return false
	}

	return r.s.Intersects(&o.s)
}

// Difference returns a new Region with the points of r that are not in o.
// Neither operand is modified.
func (r *Region) Difference(o *Region) *Region {
	d := new(Region)
	if r == nil {
		return d
	}

	if o == nil {
		d.s.Copy(&r.s)
		return d
	}

	d.s.Difference(&r.s, &o.s)

	return d
}

// Clone returns an independent copy of the Region.
func (r *Region) Clone() *Region {
	c := new(Region)
	if r != nil {
		c.s.Copy(&r.s)
	}

	return c
}

// Slice returns the points of the Region in ascending order.
func (r *Region) Slice() []int {
	if r == nil {
		return nil
	}

	return r.s.AppendTo(nil)
}

// All yields the points of the Region in ascending order.
func (r *Region) All() iter.Seq[int] {
	points := r.Slice()

	return func(yield func(int) bool) {
		for _, p := range points {
			if !yield(p) {
				return
			}
		}
	}
}

// String returns the point indices in braces, e.g. "{1 2 5}".
func (r *Region) String() string {
	if r == nil {
		return "{}"
	}

	return r.s.String()
}
