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

func TestRandomReturnsNonNegativeIntegers(t *testing.T) {
	l := newInterp(t)
	for i := 0; i < 20; i++ {
		v := mustEval(t, l, "(random)")
		if !v.IsInt() {
			t.Fatalf("(random) = %v, want integer", v)
		}
		if v.IntVal() < 0 {
			t.Errorf("(random) = %d, want non-negative", v.IntVal())
		}
	}
}

func TestRandomVariesAcrossCalls(t *testing.T) {
	l := newInterp(t)
	first := mustEval(t, l, "(random)").IntVal()
	differed := false
	for i := 0; i < 10; i++ {
		if mustEval(t, l, "(random)").IntVal() != first {
			differed = true
			break
		}
	}
	if !differed {
		t.Error("(random) returned the same value on every call")
	}
}

func TestStringJoin(t *testing.T) {
	v := mustEval(t, newInterp(t), `(string-join (list "a" "b" "c") ", ")`)
	if !v.IsString() || v.String() != "a, b, c" {
		t.Errorf("string-join = %v, want %q", v, "a, b, c")
	}
}

func TestStringJoinEmptyList(t *testing.T) {
	v := mustEval(t, newInterp(t), `(string-join (list) ", ")`)
	if !v.IsString() || v.String() != "" {
		t.Errorf("string-join of empty list = %v, want empty string", v)
	}
}

func TestProcedureReflection(t *testing.T) {
	l := newInterp(t)
	mustEval(t, l, "(define add1 (lambda (x) (+ x 01)))")

	params := mustEval(t, l, "(procedure-params add1)")
	if params.Length() != 1 || params.IsNil() {
		t.Errorf("procedure-params = %v, want a one-element list", params)
	}
	body := mustEval(t, l, "(procedure-body add1)")
	if body.IsNil() {
		t.Errorf("procedure-body = %v, want the lambda's body expressions", body)
	}
	env := mustEval(t, l, "(procedure-env add1)")
	if !env.IsCons() && !env.IsNil() {
		t.Errorf("procedure-env = %v, want an environment frame", env)
	}
}

func TestSubrReflection(t *testing.T) {
	l := newInterp(t)
	name := mustEval(t, l, "(subr-name car)")
	if !name.IsString() || name.String() != "car" {
		t.Errorf("subr-name car = %v, want \"car\"", name)
	}
	doc := mustEval(t, l, "(subr-doc car)")
	if !doc.IsString() || doc.String() == "" {
		t.Errorf("subr-doc car = %v, want a non-empty docstring", doc)
	}
}

func TestUserTypeTagPrimitive(t *testing.T) {
	l := newInterp(t)
	tag, err := l.NewUserType(nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewUserType: %v", err)
	}
	c, err := l.MkUserDefined(tag, "payload")
	if err != nil {
		t.Fatalf("MkUserDefined: %v", err)
	}
	v, err := l.Apply(mustLookup(t, l, "user-type-tag"), l.List(c))
	if err != nil {
		t.Fatalf("user-type-tag: %v", err)
	}
	if !v.IsInt() || v.IntVal() != tag {
		t.Errorf("(user-type-tag obj) = %v, want %d", v, tag)
	}
}

func mustLookup(t *testing.T, l *lisp.Lisp, name string) *lisp.Cell {
	t.Helper()
	v, err := l.EvalString(name)
	if err != nil {
		t.Fatalf("EvalString(%q): %v", name, err)
	}
	return v
}

func TestAddCellBindsAPreBuiltValue(t *testing.T) {
	l := newInterp(t)
	if err := l.AddCell("*greeting*", l.MkString("hello")); err != nil {
		t.Fatalf("AddCell: %v", err)
	}
	v := mustEval(t, l, "*greeting*")
	if !v.IsString() || v.String() != "hello" {
		t.Errorf("*greeting* = %v, want %q", v, "hello")
	}
}

func TestAddCellRejectsNilValue(t *testing.T) {
	l := newInterp(t)
	if err := l.AddCell("*bad*", nil); err == nil {
		t.Error("AddCell(nil value) should fail")
	}
}

func TestMatchGlob(t *testing.T) {
	cases := []struct {
		pattern, s string
		want       bool
	}{
		{"hello", "hello", true},
		{"hello", "world", false},
		{"h*o", "hello", true},
		{"h?llo", "hello", true},
		{"h?llo", "heello", false},
		{"*", "anything", true},
	}
	l := newInterp(t)
	for _, c := range cases {
		v := mustEval(t, l, `(match "`+c.pattern+`" "`+c.s+`")`)
		if got := !v.IsNil(); got != c.want {
			t.Errorf("(match %q %q) = %v, want %v", c.pattern, c.s, got, c.want)
		}
	}
}
