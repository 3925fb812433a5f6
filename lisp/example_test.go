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
	"fmt"

	"github.com/moneytech/liblisp/lisp"
)

// Shows a minimal embedding: create an interpreter, evaluate a form, print
// the result to a captured output stream.
func ExampleLisp_EvalString() {
	l, err := lisp.New(lisp.OutputStream(lisp.NewNullOutputStream()))
	if err != nil {
		panic(err)
	}
	defer l.Destroy()

	v, err := l.EvalString("(+ 11 12 19)")
	if err != nil {
		panic(err)
	}
	out := lisp.NewStringOutputStream(16)
	if err := l.Print(out, v); err != nil {
		panic(err)
	}
	fmt.Println(out.String())
	// Output:
	// 42
}

// Shows installing a host primitive and calling it from Lisp source.
func ExampleLisp_AddSubr() {
	l, err := lisp.New(lisp.OutputStream(lisp.NewNullOutputStream()))
	if err != nil {
		panic(err)
	}
	defer l.Destroy()

	greet := func(l *lisp.Lisp, args *lisp.Cell) (*lisp.Cell, error) {
		name, err := lisp.Car(args)
		if err != nil {
			return nil, err
		}
		return l.MkString("hello, " + name.String()), nil
	}
	if err := l.AddSubr("greet", greet, "S", "(greet name) builds a greeting string"); err != nil {
		panic(err)
	}

	v, err := l.EvalString(`(greet "world")`)
	if err != nil {
		panic(err)
	}
	fmt.Println(v.String())
	// Output:
	// hello, world
}

// Shows defining a closure and evaluating a call that exercises tail-position
// looping without overflowing the Go call stack.
func ExampleLisp_EvalString_tailRecursion() {
	l, err := lisp.New(lisp.OutputStream(lisp.NewNullOutputStream()))
	if err != nil {
		panic(err)
	}
	defer l.Destroy()

	if _, err := l.EvalString(`(define sum-to (lambda (n acc) (if (= n 0) acc (sum-to (- n 01) (+ acc n)))))`); err != nil {
		panic(err)
	}
	v, err := l.EvalString("(sum-to 1000 0)")
	if err != nil {
		panic(err)
	}
	fmt.Println(v.IntVal())
	// Output:
	// 500500
}
