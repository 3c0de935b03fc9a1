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

// Package fixture reads functions in a YAML notation.
//
// A document describes one function:
//
//	function: example
//	adts:
//	  Wrapper: ["+"]
//	lifetimes:
//	  - {name: "'p", placeholder: true, fixed: [A.0]}
//	variables:
//	  - {name: x, type: u32}
//	  - {name: r, type: "&'r u32"}
//	blocks:
//	  - label: A
//	    stmts:
//	      - {def: [r], borrow: [{lifetime: "'b", path: x}], subtype: [{sub: "&'b u32", sup: "&'r u32"}]}
//	      - {use: [r]}
//	    succ: [B]
//
// Statement i of a block is point i; the terminator ("term") is the point
// after the last statement. Lifetimes mentioned in types are declared
// implicitly as free lifetimes. Use, definition, move, drop, storage-dead
// and borrow facts also produce the corresponding accesses.
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"

	"fillmore-labs.com/regionck/cfg"
	"fillmore-labs.com/regionck/ir"
)

// ErrSyntax is returned for malformed fixtures.
var ErrSyntax = errors.New("fixture syntax error")

type document struct {
	Function  string              `yaml:"function"`
	Entry     string              `yaml:"entry"`
	ADTs      map[string][]string `yaml:"adts"`
	Lifetimes []lifetimeDoc       `yaml:"lifetimes"`
	Variables []variableDoc       `yaml:"variables"`
	Blocks    []blockDoc          `yaml:"blocks"`
}

type lifetimeDoc struct {
	Name        string   `yaml:"name"`
	Placeholder bool     `yaml:"placeholder"`
	Fixed       []string `yaml:"fixed"`
}

type variableDoc struct {
	Name      string   `yaml:"name"`
	Type      string   `yaml:"type"`
	MayDangle []string `yaml:"may_dangle"`
}

type blockDoc struct {
	Label string    `yaml:"label"`
	Stmts []stmtDoc `yaml:"stmts"`
	Term  stmtDoc   `yaml:"term"`
	Succ  []string  `yaml:"succ"`
}

type stmtDoc struct {
	Use     []string     `yaml:"use"`
	Def     []string     `yaml:"def"`
	Move    []string     `yaml:"move"`
	Drop    []string     `yaml:"drop"`
	Dead    []string     `yaml:"dead"`
	Borrow  []borrowDoc  `yaml:"borrow"`
	Access  []accessDoc  `yaml:"access"`
	Subtype []subtypeDoc `yaml:"subtype"`
}

type borrowDoc struct {
	Lifetime string `yaml:"lifetime"`
	Path     string `yaml:"path"`
	Mut      bool   `yaml:"mut"`
}

type accessDoc struct {
	Kind    string `yaml:"kind"`
	Path    string `yaml:"path"`
	Through string `yaml:"through"`
}

type subtypeDoc struct {
	Sub string `yaml:"sub"`
	Sup string `yaml:"sup"`
}

// Decode reads all functions of a YAML stream.
func Decode(r io.Reader) ([]*ir.Function, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fns []*ir.Function

	for {
		var doc document

		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return fns, nil
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
		}

		fn, err := build(&doc)
		if err != nil {
			return nil, err
		}

		fns = append(fns, fn)
	}
}

// Parse reads a single function.
func Parse(data []byte) (*ir.Function, error) {
	fns, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if len(fns) != 1 {
		return nil, fmt.Errorf("%w: expected one function, got %d", ErrSyntax, len(fns))
	}

	return fns[0], nil
}

// ParseArchive reads the functions of all ".yaml" and ".yml" files of a txtar archive.
// Other files are ignored. Unnamed functions are named after their file.
func ParseArchive(data []byte) ([]*ir.Function, error) {
	ar := txtar.Parse(data)

	var fns []*ir.Function

	for _, f := range ar.Files {
		ext := filepath.Ext(f.Name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		decoded, err := Decode(bytes.NewReader(f.Data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}

		for _, fn := range decoded {
			if fn.Name == "" {
				fn.Name = strings.TrimSuffix(f.Name, ext)
			}
		}

		fns = append(fns, decoded...)
	}

	return fns, nil
}

// Load reads the functions of a file, either a YAML stream or a ".txtar" archive.
func Load(name string) ([]*ir.Function, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	var fns []*ir.Function
	if filepath.Ext(name) == ".txtar" {
		fns, err = ParseArchive(data)
	} else {
		fns, err = Decode(bytes.NewReader(data))
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return fns, nil
}

type loader struct {
	fn   *ir.Function
	adts map[string][]ir.Variance
	errs []error
}

func (l *loader) fail(format string, args ...any) {
	l.errs = append(l.errs, fmt.Errorf("%w: function %q: %s", ErrSyntax, l.fn.Name, fmt.Sprintf(format, args...)))
}

func (l *loader) check(err error) {
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("function %q: %w", l.fn.Name, err))
	}
}

// lifetime returns the lifetime with the given name, declaring a free lifetime if necessary.
func (l *loader) lifetime(name string) ir.LifetimeID {
	if id, ok := l.fn.LookupLifetime(name); ok {
		return id
	}

	return l.fn.AddLifetime(name)
}

func build(doc *document) (*ir.Function, error) {
	g, err := buildGraph(doc)
	if err != nil {
		return nil, fmt.Errorf("function %q: %w", doc.Function, err)
	}

	l := &loader{
		fn:   ir.NewFunction(doc.Function, g),
		adts: make(map[string][]ir.Variance, len(doc.ADTs)),
	}

	for name, params := range doc.ADTs {
		variance := make([]ir.Variance, len(params))
		for i, s := range params {
			v, err := parseVariance(s)
			l.check(err)

			variance[i] = v
		}

		l.adts[name] = variance
	}

	for _, lt := range doc.Lifetimes {
		l.declareLifetime(lt)
	}

	for _, v := range doc.Variables {
		l.declareVariable(v)
	}

	if len(l.errs) == 0 {
		for i := range doc.Blocks {
			blk := &doc.Blocks[i]
			id := cfg.BlockID(i)

			for j := range blk.Stmts {
				l.statement(&blk.Stmts[j], cfg.Point{Block: id, Index: j})
			}

			l.statement(&blk.Term, cfg.Point{Block: id, Index: len(blk.Stmts)})
		}
	}

	if len(l.errs) > 0 {
		return nil, errors.Join(l.errs...)
	}

	if err := l.fn.Validate(); err != nil {
		return nil, err
	}

	return l.fn, nil
}

func buildGraph(doc *document) (*cfg.Graph, error) {
	b := cfg.NewBuilder()

	for _, blk := range doc.Blocks {
		b.Block(blk.Label, len(blk.Stmts))
	}

	var errs []error

	for _, blk := range doc.Blocks {
		from, _ := b.Lookup(blk.Label)

		for _, s := range blk.Succ {
			to, ok := b.Lookup(s)
			if !ok {
				errs = append(errs, fmt.Errorf("%w: block %q: unknown successor %q", ErrSyntax, blk.Label, s))
				continue
			}

			from.Link(to)
		}
	}

	if doc.Entry != "" {
		entry, ok := b.Lookup(doc.Entry)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: unknown entry block %q", ErrSyntax, doc.Entry))
		}

		b.SetEntry(entry)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return b.Build()
}

func (l *loader) declareLifetime(lt lifetimeDoc) {
	if !strings.HasPrefix(lt.Name, "'") {
		l.fail("lifetime name %q must start with '", lt.Name)
		return
	}

	if _, ok := l.fn.LookupLifetime(lt.Name); ok {
		l.fail("duplicate lifetime %s", lt.Name)
		return
	}

	if !lt.Placeholder {
		if len(lt.Fixed) > 0 {
			l.fail("free lifetime %s has a fixed region", lt.Name)
		}

		l.fn.AddLifetime(lt.Name)

		return
	}

	fixed := make([]cfg.Point, 0, len(lt.Fixed))
	for _, name := range lt.Fixed {
		p, err := l.fn.Graph.Lookup(name)
		if err != nil {
			l.fail("lifetime %s: %v", lt.Name, err)
			continue
		}

		fixed = append(fixed, p)
	}

	if len(fixed) == 0 {
		fixed = nil
	}

	l.fn.AddPlaceholder(lt.Name, fixed...)
}

func (l *loader) declareVariable(v variableDoc) {
	if _, ok := l.fn.LookupVariable(v.Name); ok || v.Name == "" {
		l.fail("invalid or duplicate variable %q", v.Name)
		return
	}

	typ, err := l.parseType(v.Type)
	if err != nil {
		l.check(err)
		return
	}

	mayDangle := make([]ir.LifetimeID, 0, len(v.MayDangle))
	for _, name := range v.MayDangle {
		id, ok := l.fn.LookupLifetime(name)
		if !ok {
			l.fail("variable %s: unknown may-dangle lifetime %s", v.Name, name)
			continue
		}

		mayDangle = append(mayDangle, id)
	}

	l.fn.AddVariable(v.Name, typ, mayDangle...)
}

func (l *loader) statement(s *stmtDoc, at cfg.Point) {
	where := l.fn.Graph.Name(at)

	// Uses precede definitions at the same point.
	events := []struct {
		names  []string
		action ir.ActionKind
		access ir.AccessKind
	}{
		{s.Use, ir.ActionUse, ir.AccessRead},
		{s.Move, ir.ActionMove, ir.AccessMove},
		{s.Drop, ir.ActionDrop, ir.AccessWrite},
		{s.Def, ir.ActionDef, ir.AccessWrite},
		{s.Dead, ir.ActionStorageDead, ir.AccessStorageDead},
	}

	for _, e := range events {
		for _, name := range e.names {
			v, ok := l.fn.LookupVariable(name)
			if !ok {
				l.fail("%s: unknown variable %q", where, name)
				continue
			}

			l.fn.Act(e.action, v, at)
			l.fn.AddAccess(e.access, ir.PathOf(v), at, ir.NoLifetime)
		}
	}

	for _, b := range s.Borrow {
		path, err := l.parsePath(b.Path)
		if err != nil {
			l.check(fmt.Errorf("%s: %w", where, err))
			continue
		}

		if !strings.HasPrefix(b.Lifetime, "'") {
			l.fail("%s: borrow lifetime %q must start with '", where, b.Lifetime)
			continue
		}

		lt := l.lifetime(b.Lifetime)

		kind, access := ir.BorrowShared, ir.AccessRead
		if b.Mut {
			kind, access = ir.BorrowMutable, ir.AccessWrite
		}

		l.fn.AddBorrow(lt, kind, path, at)
		l.fn.AddAccess(access, path, at, lt)
	}

	for _, a := range s.Access {
		l.access(a, at)
	}

	for _, st := range s.Subtype {
		sub, err := l.parseType(st.Sub)
		l.check(err)

		sup, err := l.parseType(st.Sup)
		l.check(err)

		if sub != nil && sup != nil {
			l.fn.Require(sub, sup, at)
		}
	}
}

var accessKinds = map[string]ir.AccessKind{
	"read":         ir.AccessRead,
	"write":        ir.AccessWrite,
	"move":         ir.AccessMove,
	"storage-dead": ir.AccessStorageDead,
}

func (l *loader) access(a accessDoc, at cfg.Point) {
	where := l.fn.Graph.Name(at)

	kind, ok := accessKinds[a.Kind]
	if !ok {
		l.fail("%s: unknown access kind %q", where, a.Kind)
		return
	}

	path, err := l.parsePath(a.Path)
	if err != nil {
		l.check(fmt.Errorf("%s: %w", where, err))
		return
	}

	through := ir.NoLifetime
	if a.Through != "" {
		var ok bool
		if through, ok = l.fn.LookupLifetime(a.Through); !ok {
			l.fail("%s: unknown lifetime %s", where, a.Through)
			return
		}
	}

	l.fn.AddAccess(kind, path, at, through)
}
