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
	"strconv"
	"strings"

	"github.com/moneytech/liblisp/internal/util"
)

// installStringPrimitives wires the string family promised by SPEC_FULL.md
// §1/§2b against the standard library `strings`/`strconv` packages.
func installStringPrimitives(l *Lisp) error {
	type def struct {
		name, valid, doc string
		fn               SubrFunc
	}
	defs := []def{
		{"string-length", "S", "(string-length s)", subrStringLength},
		{"string-ref", "S d", "(string-ref s i) returns the byte at i as an integer", subrStringRef},
		{"substring", "S d d", "(substring s start end)", subrSubstring},
		{"string-append", "", "(string-append s ...) concatenates its arguments", subrStringAppend},
		{"string->symbol", "S", "(string->symbol s)", subrStringToSymbol},
		{"symbol->string", "s", "(symbol->string sym)", subrSymbolToString},
		{"string->number", "S", "(string->number s) returns error on malformed input", subrStringToNumber},
		{"number->string", "a", "(number->string n)", subrNumberToString},
		{"string-upcase", "S", "(string-upcase s)", subrStringUpcase},
		{"string-downcase", "S", "(string-downcase s)", subrStringDowncase},
		{"string=?", "S S", "(string=? a b)", subrStringEq},
		{"string-split", "S S", "(string-split s sep) returns a list of strings", subrStringSplit},
		{"string-trim", "S", "(string-trim s)", subrStringTrim},
		{"string-join", "L S", "(string-join strings sep) joins a list of strings with sep", subrStringJoin},
		{"match", "S S", "(match pattern s) tests s against a '*'/'?' glob pattern", subrMatch},
	}
	for _, d := range defs {
		if err := add(l, d.name, d.valid, d.doc, d.fn); err != nil {
			return err
		}
	}
	return nil
}

func subrStringLength(l *Lisp, args *Cell) (*Cell, error) {
	return l.mkInt(len(args.car.StrVal())), nil
}

func subrStringRef(l *Lisp, args *Cell) (*Cell, error) {
	s := args.car.StrVal()
	i := args.cdr.car.IntVal()
	if i < 0 || i >= len(s) {
		return nil, newError(Domain, "string-ref: index out of range", args)
	}
	return l.mkInt(int(s[i])), nil
}

func subrSubstring(l *Lisp, args *Cell) (*Cell, error) {
	s := args.car.StrVal()
	start := args.cdr.car.IntVal()
	end := args.cdr.cdr.car.IntVal()
	if start < 0 || end > len(s) || start > end {
		return nil, newError(Domain, "substring: range out of bounds", args)
	}
	out := make([]byte, end-start)
	copy(out, s[start:end])
	return l.mkStringBytes(out), nil
}

func subrStringAppend(l *Lisp, args *Cell) (*Cell, error) {
	var sb strings.Builder
	for p := args; p.IsCons(); p = p.cdr {
		if !p.car.IsString() {
			return nil, newError(Type, "string-append: not a string", p.car)
		}
		sb.Write(p.car.StrVal())
	}
	return l.MkString(sb.String()), nil
}

func subrStringToSymbol(l *Lisp, args *Cell) (*Cell, error) {
	return l.intern(args.car.String()), nil
}

func subrSymbolToString(l *Lisp, args *Cell) (*Cell, error) {
	return l.MkString(args.car.SymVal()), nil
}

func subrStringToNumber(l *Lisp, args *Cell) (*Cell, error) {
	s := args.car.String()
	if iv, err := strconv.ParseInt(s, 0, 64); err == nil {
		return l.mkInt(int(iv)), nil
	}
	if fv, err := strconv.ParseFloat(s, 64); err == nil {
		return l.mkFloat(fv), nil
	}
	return errorCell, nil
}

func subrNumberToString(l *Lisp, args *Cell) (*Cell, error) {
	c := args.car
	if c.IsFloat() {
		return l.MkString(strconv.FormatFloat(c.FloatVal(), 'g', -1, 64)), nil
	}
	return l.MkString(strconv.Itoa(c.IntVal())), nil
}

func subrStringUpcase(l *Lisp, args *Cell) (*Cell, error) {
	return l.MkString(strings.ToUpper(args.car.String())), nil
}

func subrStringDowncase(l *Lisp, args *Cell) (*Cell, error) {
	return l.MkString(strings.ToLower(args.car.String())), nil
}

func subrStringEq(l *Lisp, args *Cell) (*Cell, error) {
	return boolCell(args.car.String() == args.cdr.car.String()), nil
}

func subrStringSplit(l *Lisp, args *Cell) (*Cell, error) {
	parts := strings.Split(args.car.String(), args.cdr.car.String())
	cells := make([]*Cell, len(parts))
	for i, p := range parts {
		cells[i] = l.MkString(p)
	}
	return l.list(cells...), nil
}

func subrStringTrim(l *Lisp, args *Cell) (*Cell, error) {
	return l.MkString(strings.TrimSpace(args.car.String())), nil
}

func subrStringJoin(l *Lisp, args *Cell) (*Cell, error) {
	var parts []string
	for p := args.car; p.IsCons(); p = p.cdr {
		if !p.car.IsString() {
			return nil, newError(Type, "string-join: not a string", p.car)
		}
		parts = append(parts, p.car.String())
	}
	return l.MkString(util.VstrcatSep(args.cdr.car.String(), parts...)), nil
}

func subrMatch(l *Lisp, args *Cell) (*Cell, error) {
	return boolCell(util.Match(args.car.String(), args.cdr.car.String())), nil
}
