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

func TestValidateAcceptsMatchingTokens(t *testing.T) {
	l := newInterp(t)
	args := l.List(l.Intern("foo"), l.MkInt(11), l.MkString("s"))
	if err := lisp.Validate("s d S", args); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateEmptyStringSkipsChecking(t *testing.T) {
	args := lisp.Nil()
	if err := lisp.Validate("", args); err != nil {
		t.Errorf("Validate(\"\", nil) = %v, want nil (no validation)", err)
	}
}

func TestValidateRejectsWrongType(t *testing.T) {
	l := newInterp(t)
	args := l.List(l.MkInt(11))
	err := lisp.Validate("s", args)
	if err == nil {
		t.Fatal("expected a Type error for an integer where a symbol was required")
	}
	le, ok := lisp.AsLispError(err)
	if !ok || le.Kind != lisp.Type {
		t.Errorf("err = %v, want Type LispError", err)
	}
}

func TestValidateRejectsArityMismatch(t *testing.T) {
	l := newInterp(t)
	tooFew := l.List(l.MkInt(11))
	if err := lisp.Validate("d d", tooFew); err == nil {
		t.Error("expected an Arity error for too few arguments")
	}
	tooMany := l.List(l.MkInt(11), l.MkInt(22), l.MkInt(33))
	if err := lisp.Validate("d d", tooMany); err == nil {
		t.Error("expected an Arity error for too many arguments")
	}
}

func TestValidateArithTokenAcceptsIntOrFloat(t *testing.T) {
	l := newInterp(t)
	if err := lisp.Validate("a", l.List(l.MkInt(11))); err != nil {
		t.Errorf("int against 'a': %v", err)
	}
	if err := lisp.Validate("a", l.List(l.MkFloat(1.5))); err != nil {
		t.Errorf("float against 'a': %v", err)
	}
}

func TestValidateClosureTokenAcceptsProcOrFProc(t *testing.T) {
	l := newInterp(t)
	proc := mustEval(t, l, "(lambda (x) x)")
	fproc := mustEval(t, l, "(flambda (x) x)")
	// 'l' means "defined closure", either ordinary or f-expr -- distinct
	// from 'F', which accepts only f-expressions.
	if err := lisp.Validate("l", l.List(proc)); err != nil {
		t.Errorf("lambda-made proc against 'l': %v", err)
	}
	if err := lisp.Validate("l", l.List(fproc)); err != nil {
		t.Errorf("flambda-made fproc against 'l': %v", err)
	}
	if err := lisp.Validate("F", l.List(proc)); err == nil {
		t.Error("expected a Type error for an ordinary proc against 'F'")
	}
}

func TestValidateBooleanTokenAcceptsNilOrT(t *testing.T) {
	l := newInterp(t)
	if err := lisp.Validate("b", l.List(lisp.Nil())); err != nil {
		t.Errorf("nil against 'b': %v", err)
	}
	if err := lisp.Validate("b", l.List(lisp.T())); err != nil {
		t.Errorf("t against 'b': %v", err)
	}
	if err := lisp.Validate("b", l.List(l.MkInt(11))); err == nil {
		t.Error("expected a Type error for a non-boolean against 'b'")
	}
}
