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

// Canonical, process-wide singleton cells (spec §3). They are never
// collected and are shared by every *Lisp instance.
var (
	nilCell   = mkCanonicalSymbol("nil")
	tCell     = mkCanonicalSymbol("t")
	quoteCell = mkCanonicalSymbol("quote")
	errorCell = mkCanonicalSymbol("error")
)

func mkCanonicalSymbol(name string) *Cell {
	c := newCell(KindSymbol)
	c.str = []byte(name)
	c.setUncollectable()
	return c
}

// Nil returns the canonical nil/empty-list/false singleton.
func Nil() *Cell { return nilCell }

// T returns the canonical true singleton.
func T() *Cell { return tCell }

// ErrorCell returns the canonical error singleton, returned by primitives
// that fail non-fatally without unwinding.
func ErrorCell() *Cell { return errorCell }

// Interner canonicalises symbol names to cell identity (spec §4.4). It is
// backed by a Hash so that two symbols with the same name are always the
// same *Cell (invariant 1), making eq? on symbols a pointer comparison.
type Interner struct {
	table *Hash
}

func newInterner() *Interner {
	it := &Interner{table: NewHash(1024)}
	for _, c := range []*Cell{nilCell, tCell, quoteCell, errorCell} {
		it.table.Insert(c.SymVal(), c)
	}
	return it
}

// Intern returns the canonical symbol cell for name, allocating and
// registering a new one (via newSym, supplied by the owning *Lisp so that GC
// bookkeeping and root registration stay centralised) if none exists yet.
func (it *Interner) Intern(name string, newSym func(string) *Cell) *Cell {
	if c, ok := it.table.Lookup(name); ok {
		return c
	}
	c := newSym(name)
	it.table.Insert(name, c)
	return c
}

// Find looks up an already-interned symbol without creating one.
func (it *Interner) Find(name string) (*Cell, bool) {
	return it.table.Lookup(name)
}

// mark roots every interned symbol (the interner is itself a GC root, spec
// §4.8); canonical singletons are skipped since they are uncollectable.
func (it *Interner) mark(markFn func(*Cell)) {
	it.table.ForEach(func(_ string, v *Cell) *Cell {
		markFn(v)
		return nil
	})
}
