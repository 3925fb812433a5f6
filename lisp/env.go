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

// Environment frames are represented as cons cells whose car is an
// association list of `(symbol . value)` pairs and whose cdr is the parent
// frame (spec §4.5), terminated by nil. This file implements lookup/define/
// set!/extend over that representation plus the lexical/dynamic frame
// construction used when applying a closure.

// newFrame builds an empty frame whose parent is parent.
func (l *Lisp) newFrame(parent *Cell) *Cell {
	return l.cons(nilCell, parent)
}

// extend prepends a new `(sym . val)` pair onto env's association list.
func (l *Lisp) extend(env, sym, val *Cell) {
	pair := l.cons(sym, val)
	env.car = l.cons(pair, env.car)
	env.length = 0
}

// lookup scans env's frames, head to tail within a frame and then into the
// parent, returning the bound value and true, or nil and false.
func lookup(sym, env *Cell) (*Cell, bool) {
	for e := env; e != nil && !e.IsNil(); e = e.cdr {
		for al := e.car; al.IsCons(); al = al.cdr {
			pair := al.car
			if pair.car == sym {
				return pair.cdr, true
			}
		}
	}
	return nil, false
}

// define binds sym in the topmost frame of env, overwriting any existing
// binding for sym in that same frame.
func (l *Lisp) define(env, sym, val *Cell) {
	for al := env.car; al.IsCons(); al = al.cdr {
		pair := al.car
		if pair.car == sym {
			pair.cdr = val
			return
		}
	}
	l.extend(env, sym, val)
}

// setBang mutates an existing binding for sym, searching outward through
// parent frames; returns an Unbound error if sym is not bound anywhere.
func setBang(env, sym, val *Cell) error {
	for e := env; e != nil && !e.IsNil(); e = e.cdr {
		for al := e.car; al.IsCons(); al = al.cdr {
			pair := al.car
			if pair.car == sym {
				pair.cdr = val
				return nil
			}
		}
	}
	return newError(Unbound, "set!: unbound symbol "+sym.SymVal(), sym)
}

// applyFrame builds the new frame for a closure application: the parent is
// the closure's captured environment under lexical scope, or the caller's
// current environment under dynamic scope (spec §4.5).
func (l *Lisp) applyFrame(closureEnv, callerEnv *Cell) *Cell {
	if l.dynamicScope {
		return l.newFrame(callerEnv)
	}
	return l.newFrame(closureEnv)
}
