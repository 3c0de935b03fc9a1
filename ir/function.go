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
	"errors"
	"fmt"

	"fillmore-labs.com/regionck/cfg"
)

// ErrInvalidFunction is returned by [Function.Validate] for malformed input.
var ErrInvalidFunction = errors.New("invalid function")

// Lifetime is an inference variable of a function.
type Lifetime struct {
	Name string

	// Placeholder lifetimes stand for named parameters. Their region is fixed
	// and never grows during solving.
	Placeholder bool

	// Fixed lists the region of a placeholder. Nil means all points of the graph.
	Fixed []cfg.Point
}

// Variable is a typed storage slot.
type Variable struct {
	Name string
	Type *Type

	// MayDangle lists the lifetimes of Type that the destructor of the
	// variable does not access. Other lifetimes of Type cannot dangle.
	MayDangle []LifetimeID
}

// CanDangle reports whether lifetime l may dangle when the variable is dropped.
func (v *Variable) CanDangle(l LifetimeID) bool {
	for _, m := range v.MayDangle {
		if m == l {
			return true
		}
	}

	return false
}

// ActionKind is the kind of a variable event relevant to liveness.
type ActionKind uint8

//go:generate go tool stringer -type ActionKind -linecomment
const (
	// ActionUse reads the current value of the variable.
	ActionUse ActionKind = iota // use
	// ActionDef assigns a fresh value to the variable.
	ActionDef // def
	// ActionMove reads the value and leaves the variable uninitialized.
	ActionMove // move
	// ActionDrop runs the destructor of the variable.
	ActionDrop // drop
	// ActionStorageDead ends the storage of the variable.
	ActionStorageDead // dead
)

// Action is a variable event at a point.
//
// At one point, uses take effect before definitions: "x = f(x)" is a use of x
// followed by a definition of x.
type Action struct {
	Kind ActionKind
	Var  VarID
	At   cfg.Point
}

// Obligation requires Sub to be a subtype of Sup after the event at At.
type Obligation struct {
	Sub, Sup *Type
	At       cfg.Point
}

// BorrowKind distinguishes shared from mutable borrows.
type BorrowKind uint8

//go:generate go tool stringer -type BorrowKind -linecomment
const (
	BorrowShared  BorrowKind = iota // shared
	BorrowMutable                   // mutable
)

// Borrow is a borrow expression &'l path or &'l mut path at a point.
type Borrow struct {
	Lifetime LifetimeID
	Kind     BorrowKind
	Path     Path
	At       cfg.Point
}

// AccessKind is the kind of an [Access].
type AccessKind uint8

//go:generate go tool stringer -type AccessKind -linecomment
const (
	AccessRead        AccessKind = iota // read
	AccessWrite                         // write
	AccessMove                          // move
	AccessStorageDead                   // storage-dead
)

// Access is a memory access to a path at a point.
type Access struct {
	Kind AccessKind
	Path Path
	At   cfg.Point

	// Through names the lifetime of the reference the access goes through, if any.
	// Accesses through a reference a borrow flows into never conflict with that borrow.
	Through LifetimeID
}

// Function is a control-flow graph annotated with the facts region inference works on.
type Function struct {
	Name  string
	Graph *cfg.Graph

	Lifetimes   []Lifetime
	Variables   []Variable
	Actions     []Action
	Obligations []Obligation
	Borrows     []Borrow
	Accesses    []Access
}

// NewFunction returns an empty function over g.
func NewFunction(name string, g *cfg.Graph) *Function {
	return &Function{Name: name, Graph: g}
}

// AddLifetime adds a free lifetime.
func (f *Function) AddLifetime(name string) LifetimeID {
	f.Lifetimes = append(f.Lifetimes, Lifetime{Name: name})

	return LifetimeID(len(f.Lifetimes))
}

// AddPlaceholder adds a placeholder lifetime with a fixed region.
// Without points, the region covers the whole graph.
func (f *Function) AddPlaceholder(name string, fixed ...cfg.Point) LifetimeID {
	f.Lifetimes = append(f.Lifetimes, Lifetime{Name: name, Placeholder: true, Fixed: fixed})

	return LifetimeID(len(f.Lifetimes))
}

// AddVariable adds a variable of type typ.
func (f *Function) AddVariable(name string, typ *Type, mayDangle ...LifetimeID) VarID {
	f.Variables = append(f.Variables, Variable{Name: name, Type: typ, MayDangle: mayDangle})

	return VarID(len(f.Variables))
}

// Act records a variable event.
func (f *Function) Act(kind ActionKind, v VarID, at cfg.Point) {
	f.Actions = append(f.Actions, Action{Kind: kind, Var: v, At: at})
}

// Require records the obligation sub <: sup after the event at at.
func (f *Function) Require(sub, sup *Type, at cfg.Point) {
	f.Obligations = append(f.Obligations, Obligation{Sub: sub, Sup: sup, At: at})
}

// AddBorrow records a borrow expression.
func (f *Function) AddBorrow(l LifetimeID, kind BorrowKind, path Path, at cfg.Point) BorrowID {
	f.Borrows = append(f.Borrows, Borrow{Lifetime: l, Kind: kind, Path: path, At: at})

	return BorrowID(len(f.Borrows))
}

// AddAccess records a memory access.
func (f *Function) AddAccess(kind AccessKind, path Path, at cfg.Point, through LifetimeID) {
	f.Accesses = append(f.Accesses, Access{Kind: kind, Path: path, At: at, Through: through})
}

// Lifetime returns the lifetime with the given ID.
func (f *Function) Lifetime(l LifetimeID) *Lifetime {
	return &f.Lifetimes[l.Index()]
}

// Variable returns the variable with the given ID.
func (f *Function) Variable(v VarID) *Variable {
	return &f.Variables[v.Index()]
}

// Borrow returns the borrow with the given ID.
func (f *Function) Borrow(b BorrowID) *Borrow {
	return &f.Borrows[b.Index()]
}

// LookupLifetime returns the lifetime with the given name.
func (f *Function) LookupLifetime(name string) (LifetimeID, bool) {
	for i := range f.Lifetimes {
		if f.Lifetimes[i].Name == name {
			return LifetimeID(i + 1), true
		}
	}

	return NoLifetime, false
}

// LookupVariable returns the variable with the given name.
func (f *Function) LookupVariable(name string) (VarID, bool) {
	for i := range f.Variables {
		if f.Variables[i].Name == name {
			return VarID(i + 1), true
		}
	}

	return NoVar, false
}

// LifetimeName returns the name of l, or a numbered name for unnamed lifetimes.
func (f *Function) LifetimeName(l LifetimeID) string {
	if l.IsValid() && l.Index() < len(f.Lifetimes) && f.Lifetimes[l.Index()].Name != "" {
		return f.Lifetimes[l.Index()].Name
	}

	return fmt.Sprintf("'%d", l)
}

// VariableName returns the name of v, or a numbered name for unnamed variables.
func (f *Function) VariableName(v VarID) string {
	if v.IsValid() && v.Index() < len(f.Variables) && f.Variables[v.Index()].Name != "" {
		return f.Variables[v.Index()].Name
	}

	return fmt.Sprintf("_%d", v)
}

// Validate checks that all facts refer to points, variables and lifetimes of the function.
func (f *Function) Validate() error {
	if f.Graph == nil {
		return fmt.Errorf("%w %q: no control-flow graph", ErrInvalidFunction, f.Name)
	}

	v := validator{f: f}

	for i := range f.Lifetimes {
		for _, p := range f.Lifetimes[i].Fixed {
			v.point(p, "lifetime %s", f.LifetimeName(LifetimeID(i+1)))
		}
	}

	for i := range f.Variables {
		vr := &f.Variables[i]
		if vr.Type == nil {
			v.fail("variable %s has no type", vr.Name)
			continue
		}

		v.typ(vr.Type, "variable %s", vr.Name)

		for _, l := range vr.MayDangle {
			if !vr.Type.Mentions(l) {
				v.fail("variable %s: may-dangle lifetime %s not in type", vr.Name, f.LifetimeName(l))
			}
		}
	}

	for _, a := range f.Actions {
		v.variable(a.Var, "%v action", a.Kind)
		v.point(a.At, "%v action", a.Kind)
	}

	for _, o := range f.Obligations {
		v.point(o.At, "obligation")
		v.typ(o.Sub, "obligation at %s", f.Graph.Name(o.At))
		v.typ(o.Sup, "obligation at %s", f.Graph.Name(o.At))

		if !Compatible(o.Sub, o.Sup) {
			v.fail("obligation at %s: mismatched types", f.Graph.Name(o.At))
		}
	}

	for _, b := range f.Borrows {
		v.lifetime(b.Lifetime, "borrow")
		v.variable(b.Path.Base, "borrow")
		v.point(b.At, "borrow")
	}

	for _, a := range f.Accesses {
		if a.Through != NoLifetime {
			v.lifetime(a.Through, "%v access", a.Kind)
		}

		v.variable(a.Path.Base, "%v access", a.Kind)
		v.point(a.At, "%v access", a.Kind)
	}

	return errors.Join(v.errs...)
}

type validator struct {
	f    *Function
	errs []error
}

func (v *validator) fail(format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf("%w %q: %s", ErrInvalidFunction, v.f.Name, fmt.Sprintf(format, args...)))
}

func (v *validator) point(p cfg.Point, format string, args ...any) {
	if !v.f.Graph.Valid(p) {
		v.fail("%s: unknown point %v", fmt.Sprintf(format, args...), p)
	}
}

func (v *validator) variable(id VarID, format string, args ...any) {
	if !id.IsValid() || id.Index() >= len(v.f.Variables) {
		v.fail("%s: unknown variable %d", fmt.Sprintf(format, args...), id)
	}
}

func (v *validator) lifetime(id LifetimeID, format string, args ...any) {
	if !id.IsValid() || id.Index() >= len(v.f.Lifetimes) {
		v.fail("%s: unknown lifetime %d", fmt.Sprintf(format, args...), id)
	}
}

func (v *validator) typ(t *Type, format string, args ...any) {
	if t == nil {
		v.fail("%s: missing type", fmt.Sprintf(format, args...))
		return
	}

	switch t.Kind {
	case KindRegion:
		v.lifetime(t.Lifetime, format, args...)

	case KindRef, KindRefMut:
		v.lifetime(t.Lifetime, format, args...)

		fallthrough

	case KindCell:
		if len(t.Args) != 1 {
			v.fail("%s: %v needs exactly one argument", fmt.Sprintf(format, args...), t.Kind)
		}
	}

	for _, a := range t.Args {
		v.typ(a, format, args...)
	}
}
