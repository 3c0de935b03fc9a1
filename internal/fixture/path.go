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

	"fillmore-labs.com/regionck/ir"
)

// parsePath parses places like "x", "x.f", "x[i]", "*x", "(*x).f" or "x.*.f".
// A leading "*" dereferences the whole place that follows it.
func (l *loader) parsePath(src string) (ir.Path, error) {
	p, rest, err := l.path(strings.TrimSpace(src))
	if err == nil && rest != "" {
		err = fmt.Errorf("unexpected %q", rest)
	}

	if err != nil {
		return ir.Path{}, fmt.Errorf("%w: path %q: %w", ErrSyntax, src, err)
	}

	return p, nil
}

func (l *loader) path(s string) (ir.Path, string, error) {
	if rest, ok := strings.CutPrefix(s, "*"); ok {
		p, rest, err := l.path(rest)

		return p.Deref(), rest, err
	}

	var (
		p    ir.Path
		rest string
	)

	if inner, ok := strings.CutPrefix(s, "("); ok {
		var err error

		p, rest, err = l.path(inner)
		if err != nil {
			return p, rest, err
		}

		var closed bool
		if rest, closed = strings.CutPrefix(rest, ")"); !closed {
			return p, rest, fmt.Errorf("missing %q", ")")
		}
	} else {
		name, r := cutIdent(s)
		if name == "" {
			return p, s, fmt.Errorf("expected variable at %q", s)
		}

		v, ok := l.fn.LookupVariable(name)
		if !ok {
			return p, s, fmt.Errorf("unknown variable %q", name)
		}

		p, rest = ir.PathOf(v), r
	}

	for rest != "" {
		switch rest[0] {
		case '.':
			if r, ok := strings.CutPrefix(rest[1:], "*"); ok {
				p, rest = p.Deref(), r
				continue
			}

			name, r := cutIdent(rest[1:])
			if name == "" {
				return p, rest, fmt.Errorf("expected field at %q", rest)
			}

			p, rest = p.Field(name), r

		case '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return p, rest, fmt.Errorf("missing %q", "]")
			}

			p, rest = p.Index(), rest[end+1:]

		default:
			return p, rest, nil
		}
	}

	return p, rest, nil
}

func cutIdent(s string) (ident, rest string) {
	i := 0
	for i < len(s) && (s[i] == '_' || 'a' <= s[i] && s[i] <= 'z' || 'A' <= s[i] && s[i] <= 'Z' || i > 0 && '0' <= s[i] && s[i] <= '9') {
		i++
	}

	return s[:i], s[i:]
}
