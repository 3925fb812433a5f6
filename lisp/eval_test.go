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

func mustEval(t *testing.T, l *lisp.Lisp, src string) *lisp.Cell {
	t.Helper()
	v, err := l.EvalString(src)
	if err != nil {
		t.Fatalf("EvalString(%q): %v", src, err)
	}
	return v
}

func newInterp(t *testing.T) *lisp.Lisp {
	t.Helper()
	l, err := lisp.New()
	if err != nil {
		t.Fatalf("lisp.New: %v", err)
	}
	t.Cleanup(l.Destroy)
	return l
}

// Bare decimal literals below use two or more digits: the reader's integer
// grammar requires at least two digits for a non-octal, non-hex, non-zero
// decimal (single digits like "2" fall through to the float grammar).
func TestEvalArithmetic(t *testing.T) {
	cases := []struct {
		src  string
		want int
	}{
		{"(+ 12 13)", 25},
		{"(+ 11 12 13 14)", 50},
		{"(- 100 30 20)", 50},
		{"(- 50)", -50},
		{"(* 12 13 14)", 2184},
		{"(/ 1200 30 10)", 4},
		{"(mod 100 30)", 10},
	}
	l := newInterp(t)
	for _, c := range cases {
		v := mustEval(t, l, c.src)
		if !v.IsInt() || v.IntVal() != c.want {
			t.Errorf("%s = %v, want %d", c.src, v, c.want)
		}
	}
}

func TestEvalComparisons(t *testing.T) {
	l := newInterp(t)
	cases := []struct {
		src  string
		want bool
	}{
		{"(< 11 12 13)", true},
		{"(< 11 13 12)", false},
		{"(= 22 22 22)", true},
		{"(>= 33 33 22)", true},
	}
	for _, c := range cases {
		v := mustEval(t, l, c.src)
		got := !v.IsNil()
		if got != c.want {
			t.Errorf("%s = %v, want %v", c.src, v, c.want)
		}
	}
}

func TestEvalIf(t *testing.T) {
	l := newInterp(t)
	v := mustEval(t, l, "(if t 11 22)")
	if v.IntVal() != 11 {
		t.Errorf("if-true = %v", v)
	}
	v = mustEval(t, l, "(if nil 11 22)")
	if v.IntVal() != 22 {
		t.Errorf("if-false = %v", v)
	}
	v = mustEval(t, l, "(if nil 11)")
	if !v.IsNil() {
		t.Errorf("if with no else should return nil, got %v", v)
	}
}

func TestEvalCondNoBodyReturnsTest(t *testing.T) {
	l := newInterp(t)
	// spec §9: a (test) arm with no body returns the test's own value.
	v := mustEval(t, l, "(cond (nil) (42))")
	if !v.IsInt() || v.IntVal() != 42 {
		t.Errorf("cond no-body arm = %v, want 42", v)
	}
}

func TestEvalAndOr(t *testing.T) {
	l := newInterp(t)
	if v := mustEval(t, l, "(and 11 22 33)"); v.IntVal() != 33 {
		t.Errorf("and = %v, want 33", v)
	}
	if v := mustEval(t, l, "(and 11 nil 33)"); !v.IsNil() {
		t.Errorf("and with nil = %v, want nil", v)
	}
	if v := mustEval(t, l, "(or nil nil 55)"); v.IntVal() != 55 {
		t.Errorf("or = %v, want 55", v)
	}
	if v := mustEval(t, l, "(or nil nil)"); !v.IsNil() {
		t.Errorf("or all-nil = %v, want nil", v)
	}
}

func TestEvalLambdaAndClosures(t *testing.T) {
	l := newInterp(t)
	mustEval(t, l, "(define add1 (lambda (x) (+ x 01)))")
	v := mustEval(t, l, "(add1 41)")
	if v.IntVal() != 42 {
		t.Errorf("add1 41 = %v, want 42", v)
	}

	mustEval(t, l, "(define make-counter (lambda (n) (lambda () (set! n (+ n 01)) n)))")
	mustEval(t, l, "(define c (make-counter 0))")
	v = mustEval(t, l, "(c)")
	if v.IntVal() != 1 {
		t.Errorf("counter first call = %v, want 1", v)
	}
	v = mustEval(t, l, "(c)")
	if v.IntVal() != 2 {
		t.Errorf("counter second call = %v, want 2 (closure must capture by reference)", v)
	}
}

func TestEvalVariadicLambda(t *testing.T) {
	l := newInterp(t)
	mustEval(t, l, "(define f (lambda args (length args)))")
	v := mustEval(t, l, "(f 1 2 3 4)")
	if v.IntVal() != 4 {
		t.Errorf("variadic length = %v, want 4", v)
	}
}

func TestApplyAndMap(t *testing.T) {
	l := newInterp(t)
	v := mustEval(t, l, "(apply + (list 11 12 13))")
	if v.IntVal() != 36 {
		t.Errorf("apply = %v, want 36", v)
	}
	mustEval(t, l, "(define add11 (lambda (x) (+ x 11)))")
	v = mustEval(t, l, "(map add11 (list 11 22 33))")
	if v.Length() != 3 {
		t.Fatalf("map result length = %d, want 3", v.Length())
	}
	car, _ := lisp.Car(v)
	if car.IntVal() != 22 {
		t.Errorf("first mapped element = %v, want 22", car)
	}
}

func TestEvalFlambda(t *testing.T) {
	l := newInterp(t)
	// an f-procedure receives its argument list unevaluated.
	mustEval(t, l, "(define quote-like (flambda (x) x))")
	v := mustEval(t, l, "(quote-like (+ 1 2))")
	if !v.IsCons() {
		t.Errorf("flambda should see unevaluated form, got %v", v)
	}
}

func TestEvalUnboundSymbol(t *testing.T) {
	l := newInterp(t)
	_, err := l.EvalString("undefined-name-xyz")
	if err == nil {
		t.Fatal("expected an unbound-symbol error")
	}
	le, ok := lisp.AsLispError(err)
	if !ok || le.Kind != lisp.Unbound {
		t.Errorf("err = %v, want Unbound LispError", err)
	}
}

func TestEvalDivisionByZero(t *testing.T) {
	l := newInterp(t)
	_, err := l.EvalString("(/ 10 0)")
	le, ok := lisp.AsLispError(err)
	if !ok || le.Kind != lisp.Domain {
		t.Errorf("err = %v, want Domain LispError", err)
	}
}

func TestEvalTailCallDoesNotOverflowGoStack(t *testing.T) {
	l := newInterp(t)
	mustEval(t, l, `(define loop (lambda (n acc) (if (= n 0) acc (loop (- n 01) (+ acc 01)))))`)
	v, err := l.EvalString("(loop 100000 0)")
	if err != nil {
		t.Fatalf("deep tail recursion failed: %v", err)
	}
	if v.IntVal() != 100000 {
		t.Errorf("loop result = %v, want 100000", v)
	}
}

func TestEvalDepthOverflowOnNonTailRecursion(t *testing.T) {
	l, err := lisp.New(lisp.MaxDepth(64))
	if err != nil {
		t.Fatalf("lisp.New: %v", err)
	}
	defer l.Destroy()
	mustEval(t, l, `(define count (lambda (n) (if (= n 0) 0 (+ 01 (count (- n 01))))))`)
	_, err = l.EvalString("(count 10000)")
	if err == nil {
		t.Fatal("expected an overflow error for unbounded non-tail recursion")
	}
	le, ok := lisp.AsLispError(err)
	if !ok || le.Kind != lisp.Overflow {
		t.Errorf("err = %v, want Overflow LispError", err)
	}
}

func TestDynamicScope(t *testing.T) {
	l, err := lisp.New(lisp.DynamicScope(true))
	if err != nil {
		t.Fatalf("lisp.New: %v", err)
	}
	defer l.Destroy()
	mustEval(t, l, "(define x 1)")
	mustEval(t, l, "(define f (lambda () x))")
	mustEval(t, l, "(define g (lambda (x) (f)))")
	// under dynamic scope, f's lookup of x should see g's local binding.
	v := mustEval(t, l, "(g 99)")
	if v.IntVal() != 99 {
		t.Errorf("dynamic scope lookup = %v, want 99", v)
	}
}

func TestErrorsHaltUpgradesToFatal(t *testing.T) {
	l, err := lisp.New(lisp.ErrorsHalt(true))
	if err != nil {
		t.Fatalf("lisp.New: %v", err)
	}
	defer l.Destroy()
	_, err = l.EvalString("undefined-name-xyz")
	le, ok := lisp.AsLispError(err)
	if !ok || le.Kind != lisp.Fatal {
		t.Errorf("err = %v, want Fatal LispError under ErrorsHalt", err)
	}
}
