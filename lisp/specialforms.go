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

// specialForms caches the interned symbols the evaluator dispatches on by
// identity, so recognising `(if ...)` is a pointer compare rather than a
// string compare on every step (spec §4.6).
type specialForms struct {
	quote   *Cell
	ifSym   *Cell
	begin   *Cell
	lambda  *Cell
	flambda *Cell
	define  *Cell
	setBang *Cell
	cond    *Cell
	and     *Cell
	or      *Cell
}

func (l *Lisp) initSpecialForms() {
	l.sf = &specialForms{
		quote:   quoteCell,
		ifSym:   l.intern("if"),
		begin:   l.intern("begin"),
		lambda:  l.intern("lambda"),
		flambda: l.intern("flambda"),
		define:  l.intern("define"),
		setBang: l.intern("set!"),
		cond:    l.intern("cond"),
		and:     l.intern("and"),
		or:      l.intern("or"),
	}
}
