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

import "github.com/pkg/errors"

// AddSubr installs a host primitive, callable from Lisp as name. valid is an
// optional validation string (spec §6); an empty string means the host
// function is responsible for its own argument checking. Returns an error
// only if fn is nil; an existing binding for name in the top frame, of any
// kind, is replaced (matching the REPL's `define` semantics).
func (l *Lisp) AddSubr(name string, fn SubrFunc, valid, doc string) error {
	if fn == nil {
		return errors.Errorf("AddSubr %q: nil function", name)
	}
	c := newCell(KindSubr)
	c.subr = &subrInfo{fn: fn, valid: valid, doc: doc, name: name}
	c.setUncollectable()
	sym := l.intern(name)
	l.define(l.topEnv, sym, c)
	return nil
}

// AddCell binds a pre-built value under name in the top frame.
func (l *Lisp) AddCell(name string, val *Cell) error {
	if val == nil {
		return errors.Errorf("AddCell %q: nil value", name)
	}
	sym := l.intern(name)
	l.define(l.topEnv, sym, val)
	return nil
}

// NewUserType registers a new user-defined type and returns its small
// integer tag. Any of the four callbacks may be nil. Returns an error once
// this interpreter has registered maxUserTypes types, matching the "-1 if no more tokens" contract
// of the source material expressed as a Go error instead of a sentinel.
func (l *Lisp) NewUserType(free UserFree, mark UserMark, equal UserEqual, print UserPrint) (int, error) {
	if len(l.userTypes) >= maxUserTypes {
		return -1, errors.Errorf("NewUserType: no more user type tags available (max %d)", maxUserTypes)
	}
	tag := len(l.userTypes)
	l.userTypes[tag] = &userType{free: free, mark: mark, equal: equal, print: print}
	return tag, nil
}

const maxUserTypes = 256

// MkUserDefined wraps opaque in a new cell tagged with a type previously
// returned by NewUserType.
func (l *Lisp) MkUserDefined(tag int, opaque interface{}) (*Cell, error) {
	if _, ok := l.userTypes[tag]; !ok {
		return nil, errors.Errorf("MkUserDefined: unknown user type tag %d", tag)
	}
	c := newCell(KindUserDefined)
	c.udTag = tag
	c.udData = opaque
	l.gc.register(l, c)
	return c, nil
}
