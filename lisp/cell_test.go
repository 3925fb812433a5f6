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

func TestCellAccessorsAndTypePredicates(t *testing.T) {
	l := newInterp(t)

	i := l.MkInt(7)
	if !i.IsInt() || i.IsFloat() || i.IntVal() != 7 {
		t.Errorf("MkInt accessors wrong: %+v", i)
	}

	f := l.MkFloat(2.5)
	if !f.IsFloat() || f.FloatVal() != 2.5 {
		t.Errorf("MkFloat accessors wrong: %+v", f)
	}
	if !f.IsArith() || !i.IsArith() {
		t.Error("int/float should both satisfy IsArith")
	}

	s := l.MkString("hi")
	if !s.IsString() || s.String() != "hi" {
		t.Errorf("MkString accessors wrong: %+v", s)
	}

	pair := l.Cons(i, f)
	if !pair.IsCons() {
		t.Fatal("Cons did not build a cons cell")
	}
	car, err := lisp.Car(pair)
	if err != nil || car != i {
		t.Errorf("Car(pair) = %v, %v; want i, nil", car, err)
	}
	cdr, err := lisp.Cdr(pair)
	if err != nil || cdr != f {
		t.Errorf("Cdr(pair) = %v, %v; want f, nil", cdr, err)
	}

	if _, err := lisp.Car(i); err == nil {
		t.Error("Car of a non-cons should error")
	}
}

func TestCellSetCarSetCdr(t *testing.T) {
	l := newInterp(t)
	pair := l.Cons(l.MkInt(1), l.MkInt(2))
	if err := lisp.SetCar(pair, l.MkInt(9)); err != nil {
		t.Fatal(err)
	}
	got, _ := lisp.Car(pair)
	if got.IntVal() != 9 {
		t.Errorf("after set-car!, car = %v, want 9", got.IntVal())
	}
}

func TestCellLengthCaching(t *testing.T) {
	l := newInterp(t)
	lst := l.List(l.MkInt(1), l.MkInt(2), l.MkInt(3))
	if n := lst.Length(); n != 3 {
		t.Errorf("Length() = %d, want 3", n)
	}
	// Length should remain correct after being queried once (cached path).
	if n := lst.Length(); n != 3 {
		t.Errorf("cached Length() = %d, want 3", n)
	}
}

func TestEqIdentityAndValue(t *testing.T) {
	l := newInterp(t)
	sym1 := l.Intern("foo")
	sym2 := l.Intern("foo")
	if !lisp.Eq(sym1, sym2) {
		t.Error("two interns of the same name must be eq? (spec invariant 1)")
	}
	if !lisp.Eq(l.MkInt(5), l.MkInt(5)) {
		t.Error("integers should compare eq? by value")
	}
	if lisp.Eq(l.MkInt(5), l.MkInt(6)) {
		t.Error("different integers should not be eq?")
	}
	if lisp.Eq(l.Cons(l.MkInt(1), lisp.Nil()), l.Cons(l.MkInt(1), lisp.Nil())) {
		t.Error("distinct cons cells should not be eq? even with equal contents")
	}
}

func TestProperList(t *testing.T) {
	l := newInterp(t)
	proper := l.List(l.MkInt(1), l.MkInt(2))
	if !proper.IsProperList() {
		t.Error("list built by List() should be a proper list")
	}
	dotted := l.Cons(l.MkInt(1), l.MkInt(2))
	if dotted.IsProperList() {
		t.Error("(1 . 2) should not be a proper list")
	}
}
