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

// installHashPrimitives wires the hash-table family (spec §4.7), including
// the coercion round-trip resolved in SPEC_FULL.md §9: `hash-create` accepts
// a flattened `(k1 v1 k2 v2 ...)` list, and `hash->list` produces one.
func installHashPrimitives(l *Lisp) error {
	type def struct {
		name, valid, doc string
		fn               SubrFunc
	}
	defs := []def{
		{"hash-create", "", "(hash-create k1 v1 k2 v2 ...) builds a table from a flattened key/value list", subrHashCreate},
		{"hash-insert!", "h Z A", "(hash-insert! table key value)", subrHashInsert},
		{"hash-lookup", "h Z", "(hash-lookup table key) returns error if absent", subrHashLookup},
		{"hash-delete!", "h Z", "(hash-delete! table key)", subrHashDelete},
		{"hash-keys", "h", "(hash-keys table) returns the keys as a list of symbols", subrHashKeys},
		{"hash->list", "h", "(hash->list table) flattens to (k1 v1 k2 v2 ...)", subrHashToList},
		{"hash-length", "h", "(hash-length table)", subrHashLength},
	}
	for _, d := range defs {
		if err := add(l, d.name, d.valid, d.doc, d.fn); err != nil {
			return err
		}
	}
	return nil
}

func hashKeyString(c *Cell) string {
	if c.IsString() {
		return c.String()
	}
	return c.SymVal()
}

func subrHashCreate(l *Lisp, args *Cell) (*Cell, error) {
	n := args.Length()
	if n%2 != 0 {
		return nil, newError(Arity, "hash-create: expected an even number of arguments", args)
	}
	h := NewHash(n/2 + 1)
	for p := args; p.IsCons(); p = p.cdr.cdr {
		k := p.car
		if !k.IsSymbol() && !k.IsString() {
			return nil, newError(Type, "hash-create: key must be a symbol or string", k)
		}
		h.Insert(hashKeyString(k), p.cdr.car)
	}
	return l.MkHash(h), nil
}

func subrHashInsert(l *Lisp, args *Cell) (*Cell, error) {
	h := args.car.HashVal()
	h.Insert(hashKeyString(args.cdr.car), args.cdr.cdr.car)
	return args.car, nil
}

func subrHashLookup(l *Lisp, args *Cell) (*Cell, error) {
	h := args.car.HashVal()
	v, ok := h.Lookup(hashKeyString(args.cdr.car))
	if !ok {
		return errorCell, nil
	}
	return v, nil
}

func subrHashDelete(l *Lisp, args *Cell) (*Cell, error) {
	h := args.car.HashVal()
	h.Delete(hashKeyString(args.cdr.car))
	return args.car, nil
}

func subrHashKeys(l *Lisp, args *Cell) (*Cell, error) {
	keys := args.car.HashVal().Keys()
	cells := make([]*Cell, len(keys))
	for i, k := range keys {
		cells[i] = l.intern(k)
	}
	return l.list(cells...), nil
}

func subrHashToList(l *Lisp, args *Cell) (*Cell, error) {
	h := args.car.HashVal()
	var cells []*Cell
	h.ForEach(func(k string, v *Cell) *Cell {
		cells = append(cells, l.intern(k), v)
		return nil
	})
	return l.list(cells...), nil
}

func subrHashLength(l *Lisp, args *Cell) (*Cell, error) {
	return l.mkInt(args.car.HashVal().Len()), nil
}
