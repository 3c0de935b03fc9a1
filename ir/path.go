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

package ir

import "strings"

// ProjectionKind is the kind of a [Projection].
type ProjectionKind uint8

//go:generate go tool stringer -type ProjectionKind -linecomment
const (
	ProjField ProjectionKind = iota // field
	ProjIndex                       // index
	ProjDeref                       // deref
)

// Projection selects a part of a place: a named field, an element or the referent.
type Projection struct {
	Kind  ProjectionKind
	Field string
}

// Path is a place: a base variable plus a sequence of projections.
type Path struct {
	Base        VarID
	Projections []Projection
}

// PathOf returns the path consisting only of variable v.
func PathOf(v VarID) Path {
	return Path{Base: v}
}

// Field returns p extended by a field projection.
func (p Path) Field(name string) Path {
	return p.project(Projection{Kind: ProjField, Field: name})
}

// Index returns p extended by an element projection.
func (p Path) Index() Path {
	return p.project(Projection{Kind: ProjIndex})
}

// Deref returns p extended by a dereference.
func (p Path) Deref() Path {
	return p.project(Projection{Kind: ProjDeref})
}

func (p Path) project(proj Projection) Path {
	projections := make([]Projection, len(p.Projections), len(p.Projections)+1)
	copy(projections, p.Projections)

	return Path{Base: p.Base, Projections: append(projections, proj)}
}

// Overlaps reports whether p and q may denote overlapping storage.
//
// Paths on different variables never overlap. Otherwise, one being a prefix
// of the other means overlap; element projections overlap any element.
func (p Path) Overlaps(q Path) bool {
	if p.Base != q.Base {
		return false
	}

	n := min(len(p.Projections), len(q.Projections))
	for i := range n {
		a, b := p.Projections[i], q.Projections[i]

		if a.Kind == ProjIndex || b.Kind == ProjIndex {
			return true
		}

		if a != b {
			return false
		}
	}

	return true
}

// Format renders p as "x.f", "x[]", "*x" or "(*x).f", naming the base with name.
func (p Path) Format(name func(VarID) string) string {
	s := name(p.Base)

	for _, proj := range p.Projections {
		if proj.Kind != ProjDeref && strings.HasPrefix(s, "*") {
			s = "(" + s + ")"
		}

		switch proj.Kind {
		case ProjField:
			s += "." + proj.Field

		case ProjIndex:
			s += "[]"

		case ProjDeref:
			s = "*" + s
		}
	}

	return s
}
