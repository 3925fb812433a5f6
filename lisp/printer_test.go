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
	"strings"
	"testing"

	"github.com/moneytech/liblisp/lisp"
)

func printString(t *testing.T, l *lisp.Lisp, c *lisp.Cell) string {
	t.Helper()
	out := lisp.NewStringOutputStream(32)
	if err := l.Print(out, c); err != nil {
		t.Fatalf("Print: %v", err)
	}
	return out.String()
}

func TestPrintAtomsAndLists(t *testing.T) {
	l := newInterp(t)
	if s := printString(t, l, l.MkInt(42)); s != "42" {
		t.Errorf("print(42) = %q", s)
	}
	if s := printString(t, l, l.List(l.MkInt(11), l.MkInt(22), l.MkInt(33))); s != "(11 22 33)" {
		t.Errorf("print list = %q", s)
	}
	if s := printString(t, l, l.Cons(l.MkInt(11), l.MkInt(22))); s != "(11 . 22)" {
		t.Errorf("print dotted pair = %q", s)
	}
	if s := printString(t, l, lisp.Nil()); s != "()" {
		t.Errorf("print nil = %q", s)
	}
}

func TestPrintStringEscaping(t *testing.T) {
	l := newInterp(t)
	s := printString(t, l, l.MkString("a\nb\t\"c\""))
	want := `"a\nb\t\"c\""`
	if s != want {
		t.Errorf("print string = %q, want %q", s, want)
	}
}

func TestPrintHashAsReconstructionExpression(t *testing.T) {
	l := newInterp(t)
	v := mustEval(t, l, `(hash-create "a" 11)`)
	s := printString(t, l, v)
	if !strings.HasPrefix(s, "(hash-create") || !strings.Contains(s, `"a" 11`) {
		t.Errorf("print hash = %q, want a (hash-create ...) reconstruction", s)
	}
}

func TestPrintColorWrapsANSICodes(t *testing.T) {
	l := newInterp(t)
	out := lisp.NewStringOutputStream(32)
	out.SetColor(true)
	if err := l.Print(out, l.MkInt(42)); err != nil {
		t.Fatalf("Print: %v", err)
	}
	s := out.String()
	if !strings.HasPrefix(s, "\x1b[") || !strings.HasSuffix(s, "\x1b[0m") {
		t.Errorf("colourised print = %q, want ANSI-wrapped", s)
	}
}

func TestPrintPrettyIndentsNestedLists(t *testing.T) {
	l := newInterp(t)
	out := lisp.NewStringOutputStream(32)
	out.SetPretty(true)
	nested := l.Cons(l.List(l.MkInt(11)), l.List(l.MkInt(22)))
	if err := l.Print(out, nested); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if !strings.Contains(out.String(), "\n") {
		t.Errorf("pretty print of nested list has no newline: %q", out.String())
	}
}
