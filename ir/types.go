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

import (
	"slices"
	"strings"
)

// Kind is the shape of a [Type] term.
type Kind uint8

//go:generate go tool stringer -type Kind -linecomment
const (
	// KindScalar is a type without lifetimes, like an integer.
	KindScalar Kind = iota // scalar
	// KindRegion is a bare lifetime argument 'a.
	KindRegion // region
	// KindRef is a shared reference &'a T, covariant in 'a and T.
	KindRef // ref
	// KindRefMut is a mutable reference &'a mut T, covariant in 'a and invariant in T.
	KindRefMut // refmut
	// KindCell is an interior mutability wrapper, invariant in its argument.
	KindCell // cell
	// KindAdt is a named type with per-argument variance.
	KindAdt // adt
)

// Variance describes how subtyping of a type argument relates to subtyping of the enclosing type.
type Variance uint8

//go:generate go tool stringer -type Variance -linecomment
const (
	Covariant     Variance = iota // +
	Contravariant                 // -
	Invariant                     // =
	Bivariant                     // *
)

// Compose returns the variance of a position with variance inner nested in a
// position with variance v.
func (v Variance) Compose(inner Variance) Variance {
	switch v {
	case Covariant:
		return inner

	case Contravariant:
		return inner.Flip()

	case Invariant:
		if inner == Bivariant {
			return Bivariant
		}

		return Invariant

	default:
		return Bivariant
	}
}

// Flip swaps covariance and contravariance.
func (v Variance) Flip() Variance {
	switch v {
	case Covariant:
		return Contravariant

	case Contravariant:
		return Covariant

	default:
		return v
	}
}

// Type is a type term as far as region inference is concerned.
//
// Lifetimes occur as [KindRegion] terms and in references. Type terms are
// immutable once built and may be shared.
type Type struct {
	Kind Kind

	// Name of a scalar or ADT.
	Name string

	// Lifetime of a region term or a reference.
	Lifetime LifetimeID

	// Args holds the pointee of a reference, the wrapped type of a cell, or
	// the arguments of an ADT.
	Args []*Type

	// Variance holds the declared variance per argument of an ADT.
	Variance []Variance
}

// Scalar returns a type without lifetimes.
func Scalar(name string) *Type {
	return &Type{Kind: KindScalar, Name: name}
}

// RegionTerm returns the bare lifetime argument l.
func RegionTerm(l LifetimeID) *Type {
	return &Type{Kind: KindRegion, Lifetime: l}
}

// Ref returns &'l elem.
func Ref(l LifetimeID, elem *Type) *Type {
	return &Type{Kind: KindRef, Lifetime: l, Args: []*Type{elem}}
}

// RefMut returns &'l mut elem.
func RefMut(l LifetimeID, elem *Type) *Type {
	return &Type{Kind: KindRefMut, Lifetime: l, Args: []*Type{elem}}
}

// Cell returns an interior mutability wrapper around elem.
func Cell(elem *Type) *Type {
	return &Type{Kind: KindCell, Name: "Cell", Args: []*Type{elem}}
}

// Adt returns the named type name<args...> with the given per-argument variance.
// Missing variances default to [Covariant].
func Adt(name string, args []*Type, variance []Variance) *Type {
	v := make([]Variance, len(args))
	copy(v, variance)

	return &Type{Kind: KindAdt, Name: name, Args: args, Variance: v}
}

// Elem returns the first argument, the pointee of a reference or content of a cell.
func (t *Type) Elem() *Type {
	if len(t.Args) == 0 {
		return nil
	}

	return t.Args[0]
}

// ArgVariance returns the variance of argument i.
func (t *Type) ArgVariance(i int) Variance {
	switch t.Kind {
	case KindRef:
		return Covariant

	case KindRefMut, KindCell:
		return Invariant

	case KindAdt:
		if i < len(t.Variance) {
			return t.Variance[i]
		}

		return Covariant

	default:
		return Bivariant
	}
}

// Regions returns the lifetimes occurring in t, in order of first occurrence.
func (t *Type) Regions() []LifetimeID {
	var regions []LifetimeID

	t.walk(func(l LifetimeID) {
		if !slices.Contains(regions, l) {
			regions = append(regions, l)
		}
	})

	return regions
}

// Mentions reports whether lifetime l occurs in t.
func (t *Type) Mentions(l LifetimeID) bool {
	found := false

	t.walk(func(m LifetimeID) { found = found || m == l })

	return found
}

func (t *Type) walk(f func(LifetimeID)) {
	if t == nil {
		return
	}

	if t.Lifetime.IsValid() {
		f(t.Lifetime)
	}

	for _, a := range t.Args {
		a.walk(f)
	}
}

// Format renders t, naming lifetimes with name.
func (t *Type) Format(name func(LifetimeID) string) string {
	var sb strings.Builder

	t.format(&sb, name)

	return sb.String()
}

func (t *Type) format(sb *strings.Builder, name func(LifetimeID) string) {
	if t == nil {
		sb.WriteString("?")
		return
	}

	switch t.Kind {
	case KindScalar:
		sb.WriteString(t.Name)

	case KindRegion:
		sb.WriteString(name(t.Lifetime))

	case KindRef, KindRefMut:
		sb.WriteByte('&')
		sb.WriteString(name(t.Lifetime))
		sb.WriteByte(' ')

		if t.Kind == KindRefMut {
			sb.WriteString("mut ")
		}

		t.Elem().format(sb, name)

	default:
		sb.WriteString(t.Name)
		sb.WriteByte('<')

		for i, a := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}

			a.format(sb, name)
		}

		sb.WriteByte('>')
	}
}

// Compatible reports whether a and b have the same shape, so that they can be
// related structurally. Lifetimes may differ.
func Compatible(a, b *Type) bool {
	if a == nil || b == nil || a.Kind != b.Kind || len(a.Args) != len(b.Args) {
		return false
	}

	switch a.Kind {
	case KindScalar, KindAdt:
		if a.Name != b.Name {
			return false
		}
	}

	for i := range a.Args {
		if !Compatible(a.Args[i], b.Args[i]) {
			return false
		}
	}

	return true
}
