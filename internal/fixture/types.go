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

package fixture

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"fillmore-labs.com/regionck/ir"
)

// typeParser parses type strings like "&'a mut Vec<&'b u32>".
//
//	type  = "&" lifetime ["mut"] type
//	      | lifetime
//	      | name ["<" type {"," type} ">"]
type typeParser struct {
	src  string
	pos  int
	tok  string
	l    *loader
	errs []string
}

func (l *loader) parseType(src string) (*ir.Type, error) {
	p := &typeParser{src: src, l: l}
	p.next()

	t := p.typ()
	if p.tok != "" {
		p.fail("unexpected %q", p.tok)
	}

	if len(p.errs) > 0 {
		return nil, fmt.Errorf("%w: type %q: %s", ErrSyntax, src, strings.Join(p.errs, "; "))
	}

	return t, nil
}

func (p *typeParser) fail(format string, args ...any) {
	p.errs = append(p.errs, fmt.Sprintf(format, args...))
}

// next advances to the next token. At the end of input tok is empty.
func (p *typeParser) next() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}

	if p.pos >= len(p.src) {
		p.tok = ""
		return
	}

	start := p.pos

	switch c := p.src[p.pos]; c {
	case '&', '<', '>', ',':
		p.pos++

	case '\'':
		p.pos++
		p.scanIdent()

	default:
		p.scanIdent()

		if p.pos == start { // unknown character, consume it for the error message
			_, size := utf8.DecodeRuneInString(p.src[p.pos:])
			p.pos += size
		}
	}

	p.tok = p.src[start:p.pos]
}

func (p *typeParser) scanIdent() {
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if r != '_' && r != ':' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}

		p.pos += size
	}
}

func (p *typeParser) typ() *ir.Type {
	switch tok := p.tok; {
	case tok == "":
		p.fail("unexpected end of type")
		return ir.Scalar("?")

	case tok == "&":
		p.next()

		l := p.lifetime()

		mut := p.tok == "mut"
		if mut {
			p.next()
		}

		elem := p.typ()
		if mut {
			return ir.RefMut(l, elem)
		}

		return ir.Ref(l, elem)

	case strings.HasPrefix(tok, "'"):
		return ir.RegionTerm(p.lifetime())

	case isIdent(tok):
		p.next()

		var args []*ir.Type
		if p.tok == "<" {
			args = p.args()
		}

		return p.named(tok, args)

	default:
		p.fail("unexpected %q", tok)
		p.next()

		return ir.Scalar("?")
	}
}

func (p *typeParser) args() []*ir.Type {
	var args []*ir.Type

	p.next() // "<"

	for {
		args = append(args, p.typ())

		switch p.tok {
		case ",":
			p.next()

		case ">":
			p.next()
			return args

		default:
			p.fail("expected \",\" or \">\", got %q", p.tok)
			return args
		}
	}
}

func (p *typeParser) named(name string, args []*ir.Type) *ir.Type {
	if name == "Cell" || name == "RefCell" || name == "UnsafeCell" {
		if len(args) != 1 {
			p.fail("%s needs exactly one argument", name)
			return ir.Scalar(name)
		}

		t := ir.Cell(args[0])
		t.Name = name

		return t
	}

	variance, declared := p.l.adts[name]
	if !declared && len(args) == 0 {
		return ir.Scalar(name)
	}

	if declared && len(variance) != len(args) {
		p.fail("%s has %d parameters, got %d arguments", name, len(variance), len(args))
	}

	return ir.Adt(name, args, variance)
}

func (p *typeParser) lifetime() ir.LifetimeID {
	tok := p.tok
	if !strings.HasPrefix(tok, "'") || len(tok) < 2 {
		p.fail("expected lifetime, got %q", tok)
		return ir.NoLifetime
	}

	p.next()

	return p.l.lifetime(tok)
}

func isIdent(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)

	return r == '_' || unicode.IsLetter(r)
}

// parseVariance accepts "+", "-", "=", "*" or the spelled-out names.
func parseVariance(s string) (ir.Variance, error) {
	switch s {
	case "+", "covariant":
		return ir.Covariant, nil

	case "-", "contravariant":
		return ir.Contravariant, nil

	case "=", "invariant":
		return ir.Invariant, nil

	case "*", "bivariant":
		return ir.Bivariant, nil

	default:
		return 0, fmt.Errorf("%w: unknown variance %q", ErrSyntax, s)
	}
}
