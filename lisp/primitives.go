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

// installPrimitives wires up the representative primitive set named in spec
// §1 (cons/car/cdr/eq/arith/define/set!/if/lambda/quote/eval/read/print --
// the special forms among these are handled directly by the evaluator, not
// registered here) plus the string/hash/IO/math families that exercise the
// domain dependency surface described in SPEC_FULL.md §2b.
func installPrimitives(l *Lisp) error {
	installers := []func(*Lisp) error{
		installCorePrimitives,
		installStringPrimitives,
		installHashPrimitives,
		installIOPrimitives,
		installMathPrimitives,
	}
	for _, install := range installers {
		if err := install(l); err != nil {
			return errors.Wrap(err, "installPrimitives")
		}
	}
	return nil
}

// add is a small local convenience over AddSubr used by every
// installXxxPrimitives function, so each family reads as a flat table.
func add(l *Lisp, name string, valid, doc string, fn SubrFunc) error {
	return l.AddSubr(name, fn, valid, doc)
}
