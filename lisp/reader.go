// This file is part of liblisp - https://github.com/moneytech/liblisp
//
// Copyright 2026 The liblisp Authors
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

package lisp

import (
	"io"
	"regexp"
	"strconv"
)

// maxReadDepth bounds reader recursion (spec §4.2), shared conceptually with
// the printer's cap.
const maxReadDepth = 4096

// Number-token classification regexes, specified verbatim in spec §4.2. Using
// regexp here for the same reason other from-scratch Lisp readers in the
// ecosystem do (see DESIGN.md): a single-pass tokenizer still wants a crisp,
// auditable definition of "is this token a number", and these patterns are
// the spec's own grammar.
var (
	intPattern   = regexp.MustCompile(`^[-+]?(0[xX][0-9a-fA-F]+|0[0-7]*|[1-9][0-9]+|0)$`)
	floatPattern = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)
)

type reader struct {
	l     *Lisp
	in    *Stream
	depth int
}

// Read parses one s-expression from stream. Returns io.EOF if the stream is
// exhausted before any token is read.
func (l *Lisp) Read(stream *Stream) (*Cell, error) {
	r := &reader{l: l, in: stream}
	return r.readExpr()
}

func (r *reader) readByte() (byte, error) { return r.in.ReadByte() }

// skipAtmosphere consumes whitespace and `;` line comments.
func (r *reader) skipAtmosphere() error {
	for {
		b, err := r.readByte()
		if err != nil {
			return err
		}
		switch {
		case b == ';':
			for {
				b2, err := r.readByte()
				if err != nil {
					return err
				}
				if b2 == '\n' {
					break
				}
			}
		case isSpace(b):
			continue
		default:
			return r.in.UngetByte(b)
		}
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDelimiter(b byte) bool {
	return isSpace(b) || b == '(' || b == ')' || b == ';' || b == '"'
}

func (r *reader) readExpr() (*Cell, error) {
	if err := r.skipAtmosphere(); err != nil {
		return nil, err
	}
	b, err := r.readByte()
	if err != nil {
		return nil, err
	}
	switch b {
	case '(':
		return r.readList()
	case ')':
		return nil, newError(Syntax, "unexpected close paren", nil)
	case '\'':
		inner, err := r.readExpr()
		if err != nil {
			return nil, err
		}
		return r.l.list(quoteCell, inner), nil
	case '"':
		return r.readString()
	default:
		return r.readAtom(b)
	}
}

// readList is entered once per nesting level, from readExpr's '(' case or
// recursively for a nested sub-list; it tracks maxReadDepth accordingly.
// Continuing the *same* list for its remaining elements does not nest, so
// that part is readListElems, a separate, depth-uncounted recursion.
func (r *reader) readList() (*Cell, error) {
	r.depth++
	if r.depth > maxReadDepth {
		return nil, newError(Overflow, "reader nesting depth exceeded", nil)
	}
	defer func() { r.depth-- }()
	return r.readListElems()
}

func (r *reader) readListElems() (*Cell, error) {
	if err := r.skipAtmosphere(); err != nil {
		if err == io.EOF {
			return nil, newError(Syntax, "unterminated list", nil)
		}
		return nil, err
	}
	b, err := r.readByte()
	if err != nil {
		return nil, newError(Syntax, "unterminated list", nil)
	}
	if b == ')' {
		return nilCell, nil
	}
	if err := r.in.UngetByte(b); err != nil {
		return nil, err
	}

	head, err := r.readExpr()
	if err != nil {
		return nil, err
	}

	// Dotted-pair syntax: `(a . b)` (spec §9 open question resolved: parsed).
	if err := r.skipAtmosphere(); err != nil {
		return nil, newError(Syntax, "unterminated list", nil)
	}
	b, err = r.readByte()
	if err != nil {
		return nil, newError(Syntax, "unterminated list", nil)
	}
	if b == '.' {
		nb, err := r.readByte()
		if err != nil {
			return nil, newError(Syntax, "unterminated dotted pair", nil)
		}
		if isDelimiter(nb) || nb == ')' {
			if err := r.in.UngetByte(nb); err != nil {
				return nil, err
			}
			tail, err := r.readExpr()
			if err != nil {
				return nil, err
			}
			if err := r.skipAtmosphere(); err != nil {
				return nil, newError(Syntax, "unterminated dotted pair", nil)
			}
			closeb, err := r.readByte()
			if err != nil || closeb != ')' {
				return nil, newError(Syntax, "malformed dotted pair", nil)
			}
			return r.l.cons(head, tail), nil
		}
		// "." followed directly by more atom characters: not a dotted pair,
		// it's a symbol/number starting with '.' -- put everything back by
		// reconstructing the atom read from '.' onward is not supported by
		// this single-byte pushback stream, so treat as syntax error: the
		// grammar in spec §4.2 does not define bare '.'-prefixed atoms inside
		// a list position ambiguously with dotted pairs.
		return nil, newError(Syntax, "malformed token after '.'", nil)
	}
	if err := r.in.UngetByte(b); err != nil {
		return nil, err
	}

	rest, err := r.readListElems()
	if err != nil {
		return nil, err
	}
	return r.l.cons(head, rest), nil
}

func (r *reader) readString() (*Cell, error) {
	var out []byte
	for {
		b, err := r.readByte()
		if err != nil {
			return nil, newError(Syntax, "unterminated string literal", nil)
		}
		if b == '"' {
			return r.l.mkStringBytes(out), nil
		}
		if b != '\\' {
			out = append(out, b)
			continue
		}
		esc, err := r.readByte()
		if err != nil {
			return nil, newError(Syntax, "unterminated string literal", nil)
		}
		switch esc {
		case '\\':
			out = append(out, '\\')
		case '"':
			out = append(out, '"')
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case 'r':
			out = append(out, '\r')
		default:
			if esc >= '0' && esc <= '7' {
				digits := []byte{esc}
				for i := 0; i < 2; i++ {
					d, err := r.readByte()
					if err != nil {
						return nil, newError(Syntax, "bad octal escape", nil)
					}
					digits = append(digits, d)
				}
				v, err := strconv.ParseUint(string(digits), 8, 8)
				if err != nil {
					return nil, newError(Syntax, "bad octal escape", nil)
				}
				out = append(out, byte(v))
			} else {
				return nil, newError(Syntax, "unknown string escape", nil)
			}
		}
	}
}

func (r *reader) readAtom(first byte) (*Cell, error) {
	buf := []byte{first}
	for {
		b, err := r.readByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if isDelimiter(b) {
			if err := r.in.UngetByte(b); err != nil {
				return nil, err
			}
			break
		}
		buf = append(buf, b)
	}
	tok := string(buf)
	switch {
	case intPattern.MatchString(tok):
		v, err := parseInt(tok)
		if err != nil {
			return nil, newError(Syntax, "malformed integer literal: "+tok, nil)
		}
		return r.l.mkInt(v), nil
	case floatPattern.MatchString(tok):
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, newError(Syntax, "malformed float literal: "+tok, nil)
		}
		return r.l.mkFloat(v), nil
	default:
		return r.l.intern(tok), nil
	}
}

func parseInt(tok string) (int, error) {
	neg := false
	s := tok
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	base := 10
	switch {
	case len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X'):
		base = 16
		s = s[2:]
	case len(s) > 1 && s[0] == '0':
		base = 8
	}
	v, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, err
	}
	if neg {
		v = -v
	}
	return int(v), nil
}
