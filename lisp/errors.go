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
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies an interpreter error, per spec §7.
type ErrorKind uint8

const (
	Syntax ErrorKind = iota
	Type
	Arity
	Unbound
	Resource
	Domain
	Signal
	Overflow
	Fatal
)

func (k ErrorKind) String() string {
	switch k {
	case Syntax:
		return "syntax"
	case Type:
		return "type"
	case Arity:
		return "arity"
	case Unbound:
		return "unbound"
	case Resource:
		return "resource"
	case Domain:
		return "domain"
	case Signal:
		return "signal"
	case Overflow:
		return "overflow"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// LispError is the typed, non-local error every evaluator entry point may
// return. Form, if non-nil, is the s-expression that triggered the error and
// is rendered by Error() and by the REPL's logged "(error ...)" form.
type LispError struct {
	Kind ErrorKind
	Msg  string
	Form *Cell
}

func (e *LispError) Error() string {
	if e.Form != nil {
		return fmt.Sprintf("(error %q %s)", e.Msg, writeToString(e.Form))
	}
	return fmt.Sprintf("(error %q)", e.Msg)
}

func newError(kind ErrorKind, msg string, form *Cell) *LispError {
	return &LispError{Kind: kind, Msg: msg, Form: form}
}

func newErrorf(kind ErrorKind, form *Cell, format string, args ...interface{}) *LispError {
	return &LispError{Kind: kind, Msg: errors.Errorf(format, args...).Error(), Form: form}
}

// AsLispError unwraps err (following Cause chains built with
// github.com/pkg/errors) into a *LispError, if any.
func AsLispError(err error) (*LispError, bool) {
	for err != nil {
		if le, ok := err.(*LispError); ok {
			return le, true
		}
		cause := errors.Cause(err)
		if cause == err {
			return nil, false
		}
		err = cause
	}
	return nil, false
}

// writeToString is a best-effort renderer used only for error messages; it
// never fails (falls back to a placeholder on write error) and does not
// require a live *Lisp instance.
func writeToString(c *Cell) string {
	if c == nil {
		return "()"
	}
	s := NewStringOutputStream(64)
	p := &printer{out: s, depth: 0}
	if err := p.print(c); err != nil {
		return "<unprintable>"
	}
	return s.String()
}
