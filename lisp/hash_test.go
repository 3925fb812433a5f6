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

package lisp_test

import (
	"testing"

	"github.com/moneytech/liblisp/lisp"
)

func TestHashInsertLookupDelete(t *testing.T) {
	h := lisp.NewHash(4)
	l := newInterp(t)

	h.Insert("a", l.MkInt(11))
	h.Insert("b", l.MkInt(22))
	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}
	v, ok := h.Lookup("a")
	if !ok || v.IntVal() != 11 {
		t.Errorf("Lookup(a) = %v, %v", v, ok)
	}

	h.Insert("a", l.MkInt(33))
	if h.Len() != 2 {
		t.Errorf("re-insert of existing key should not grow Len(), got %d", h.Len())
	}
	v, _ = h.Lookup("a")
	if v.IntVal() != 33 {
		t.Errorf("re-insert did not replace value, got %v", v)
	}

	h.Delete("a")
	if _, ok := h.Lookup("a"); ok {
		t.Error("a should be gone after Delete")
	}
	if h.Len() != 1 {
		t.Errorf("Len() after Delete = %d, want 1", h.Len())
	}
}

func TestHashForEachVisitsAllEntries(t *testing.T) {
	h := lisp.NewHash(1) // two buckets for three keys: forces chaining
	l := newInterp(t)
	want := map[string]int{"x": 11, "y": 22, "z": 33}
	for k, v := range want {
		h.Insert(k, l.MkInt(v))
	}
	seen := map[string]int{}
	h.ForEach(func(k string, v *lisp.Cell) *lisp.Cell {
		seen[k] = v.IntVal()
		return nil
	})
	if len(seen) != len(want) {
		t.Fatalf("ForEach visited %d entries, want %d", len(seen), len(want))
	}
	for k, v := range want {
		if seen[k] != v {
			t.Errorf("seen[%q] = %d, want %d", k, seen[k], v)
		}
	}
}

func TestHashCreateAndLookupPrimitives(t *testing.T) {
	l := newInterp(t)
	mustEval(t, l, `(define h (hash-create "a" 11 "b" 22))`)
	v := mustEval(t, l, `(hash-lookup h "a")`)
	if !v.IsInt() || v.IntVal() != 11 {
		t.Errorf(`(hash-lookup h "a") = %v, want 11`, v)
	}
	mustEval(t, l, `(hash-insert! h "c" 33)`)
	v = mustEval(t, l, `(hash-lookup h "c")`)
	if !v.IsInt() || v.IntVal() != 33 {
		t.Errorf(`(hash-lookup h "c") = %v, want 33`, v)
	}
	n := mustEval(t, l, "(hash-length h)")
	if n.IntVal() != 3 {
		t.Errorf("(hash-length h) = %v, want 3", n)
	}
}

func TestHashLookupMissingKeyReturnsError(t *testing.T) {
	l := newInterp(t)
	mustEval(t, l, `(define h (hash-create "a" 11))`)
	v := mustEval(t, l, `(hash-lookup h "missing")`)
	if !lisp.Eq(v, lisp.ErrorCell()) {
		t.Fatalf("hash-lookup on a missing key should return the error cell, got %v", v)
	}
}
