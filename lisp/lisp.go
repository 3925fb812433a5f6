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

// Package lisp implements a small, embeddable Lisp interpreter: an
// s-expression reader, a tree-walking evaluator with lambda/flambda closures
// and tail-position trampolining, a mark-and-sweep garbage collector, a
// string-interning symbol table, a generic I/O abstraction over files and
// in-memory buffers, a string-keyed hash table, and a registry through which
// host programs install primitive subroutines and opaque user-defined
// types.
//
// A minimal embedding looks like:
//
//	l, err := lisp.New(lisp.Output(os.Stdout))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer l.Destroy()
//	v, err := l.EvalString("(+ 2 3)")
//
// The interpreter is strictly single-threaded; the only legal cross-goroutine
// interaction is raising the signal flag with (*Lisp).RaiseSignal.
package lisp

import (
	"os"
	"time"

	"github.com/pkg/errors"
)

// TraceLevel selects how much of the evaluator's dispatch is logged.
type TraceLevel uint8

const (
	TraceOff TraceLevel = iota
	TraceMarked
	TraceAll
)

// Lisp is a fully initialised interpreter instance. Create one with New.
type Lisp struct {
	topEnv *Cell
	gc     *gc

	interner *Interner

	input   *Stream
	output  *Stream
	logging *Stream

	dynamicScope bool
	errorsHalt   bool
	trace        TraceLevel
	signal       *int32

	userTypes map[int]*userType

	eval *evalState
	sf   *specialForms

	editor EditorFunc

	rngState [2]uint64 // xorshift128+ state backing the `random` primitive
}

// Option configures a Lisp instance at construction time, following the same
// functional-options shape as vm.Option in the teacher package.
type Option func(*Lisp) error

// Input sets the interpreter's default input stream.
func Input(s *Stream) Option {
	return func(l *Lisp) error { l.input = s; return nil }
}

// Output sets the interpreter's default output stream.
func Output(w *os.File) Option {
	return func(l *Lisp) error { l.output = NewFileOutputStream(w); return nil }
}

// OutputStream sets the interpreter's default output stream directly.
func OutputStream(s *Stream) Option {
	return func(l *Lisp) error { l.output = s; return nil }
}

// Logging sets the interpreter's error-logging stream.
func Logging(s *Stream) Option {
	return func(l *Lisp) error { l.logging = s; return nil }
}

// DynamicScope selects dynamic (true) or lexical (false, the default) scope
// for closure application (spec §4.5).
func DynamicScope(on bool) Option {
	return func(l *Lisp) error { l.dynamicScope = on; return nil }
}

// ErrorsHalt upgrades every non-fatal error to fatal, for strict embedding
// (spec §4.9).
func ErrorsHalt(on bool) Option {
	return func(l *Lisp) error { l.errorsHalt = on; return nil }
}

// GCThreshold sets the allocation count that triggers an automatic
// mark-and-sweep pass (spec §4.8, default ~1,048,576).
func GCThreshold(n int) Option {
	return func(l *Lisp) error { l.gc.threshold = n; return nil }
}

// MaxDepth sets the evaluator's recursion depth cap (spec §4.6, default
// ~4096).
func MaxDepth(n int) Option {
	return func(l *Lisp) error { l.eval.maxDepth = n; return nil }
}

// Trace sets the interpreter-wide trace level (spec §4.6).
func Trace(level TraceLevel) Option {
	return func(l *Lisp) error { l.trace = level; return nil }
}

// New creates and initialises a Lisp environment: by default it reads from
// stdin, prints to stdout, and logs errors to stderr, then installs the
// representative primitive set (spec §1).
func New(opts ...Option) (*Lisp, error) {
	zero := int32(0)
	l := &Lisp{
		gc:        newGC(0),
		userTypes: make(map[int]*userType),
		eval:      newEvalState(),
		signal:    &zero,
		rngState:  [2]uint64{uint64(time.Now().UnixNano()) | 1, uint64(os.Getpid())<<1 | 1},
	}
	l.interner = newInterner()
	l.topEnv = l.newFrame(nilCell)
	l.input = NewFileInputStream(os.Stdin)
	l.output = NewFileOutputStream(os.Stdout)
	l.logging = NewFileOutputStream(os.Stderr)

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, errors.Wrap(err, "lisp.New: option failed")
		}
	}

	l.define(l.topEnv, nilCell, nilCell)
	l.define(l.topEnv, tCell, tCell)
	l.initSpecialForms()

	if err := installPrimitives(l); err != nil {
		return nil, errors.Wrap(err, "lisp.New: installing primitives")
	}
	return l, nil
}

// intern canonicalises name to a symbol cell, allocating a fresh one
// (uncollectable: symbols live for the interpreter's lifetime, matching the
// source's "keep the interner alive" design note) if it hasn't been seen.
func (l *Lisp) intern(name string) *Cell {
	return l.interner.Intern(name, func(n string) *Cell {
		c := newCell(KindSymbol)
		c.str = []byte(n)
		c.setUncollectable()
		return c
	})
}

// Intern exposes symbol interning to embedders.
func (l *Lisp) Intern(name string) *Cell { return l.intern(name) }

// cons allocates a new, GC-tracked cons cell.
func (l *Lisp) cons(a, b *Cell) *Cell {
	c := newCell(KindCons)
	c.car, c.cdr = a, b
	l.gc.register(l, c)
	return c
}

// list builds a proper list from args.
func (l *Lisp) list(args ...*Cell) *Cell {
	result := nilCell
	for i := len(args) - 1; i >= 0; i-- {
		result = l.cons(args[i], result)
	}
	return result
}

// mkInt allocates an integer cell.
func (l *Lisp) mkInt(v int) *Cell {
	c := newCell(KindInteger)
	c.i = v
	l.gc.register(l, c)
	return c
}

// mkFloat allocates a float cell.
func (l *Lisp) mkFloat(v float64) *Cell {
	c := newCell(KindFloat)
	c.f = v
	l.gc.register(l, c)
	return c
}

// MkInt exposes integer cell construction to primitives/embedders.
func (l *Lisp) MkInt(v int) *Cell { return l.mkInt(v) }

// MkFloat exposes float cell construction to primitives/embedders.
func (l *Lisp) MkFloat(v float64) *Cell { return l.mkFloat(v) }

// MkString allocates a string cell from s.
func (l *Lisp) MkString(s string) *Cell { return l.mkStringBytes([]byte(s)) }

func (l *Lisp) mkStringBytes(b []byte) *Cell {
	c := newCell(KindString)
	c.str = b
	l.gc.register(l, c)
	return c
}

// Cons exposes cons-cell construction to primitives/embedders.
func (l *Lisp) Cons(a, b *Cell) *Cell { return l.cons(a, b) }

// List exposes proper-list construction to primitives/embedders.
func (l *Lisp) List(args ...*Cell) *Cell { return l.list(args...) }

// MkIO wraps a Stream as a Lisp cell.
func (l *Lisp) MkIO(s *Stream) *Cell {
	c := newCell(KindIO)
	c.stream = s
	l.gc.register(l, c)
	return c
}

// MkHash wraps a Hash as a Lisp cell.
func (l *Lisp) MkHash(h *Hash) *Cell {
	c := newCell(KindHash)
	c.table = h
	l.gc.register(l, c)
	return c
}

// mkProc allocates a procedure or f-procedure cell.
func (l *Lisp) mkProc(fproc bool, params, body, env *Cell) *Cell {
	kind := KindProcedure
	if fproc {
		kind = KindFProcedure
	}
	c := newCell(kind)
	c.proc = &procInfo{params: params, body: body, env: env}
	l.gc.register(l, c)
	return c
}

// TopEnv returns the interpreter's outermost environment frame.
func (l *Lisp) TopEnv() *Cell { return l.topEnv }

// SetInput replaces the default input stream.
func (l *Lisp) SetInput(s *Stream) { l.input = s }

// SetOutput replaces the default output stream.
func (l *Lisp) SetOutput(s *Stream) { l.output = s }

// SetLogging replaces the error-logging stream.
func (l *Lisp) SetLogging(s *Stream) { l.logging = s }

// GetInput returns the default input stream.
func (l *Lisp) GetInput() *Stream { return l.input }

// GetOutput returns the default output stream.
func (l *Lisp) GetOutput() *Stream { return l.output }

// GetLogging returns the error-logging stream.
func (l *Lisp) GetLogging() *Stream { return l.logging }

// RaiseSignal atomically sets the interpreter's external interrupt flag; the
// evaluator observes it between steps and unwinds with a Signal error (spec
// §5).
func (l *Lisp) RaiseSignal() {
	l.raiseSignal()
}

// EvalString parses and evaluates a single s-expression from src, discarding
// any trailing input (spec §6).
func (l *Lisp) EvalString(src string) (*Cell, error) {
	stream := NewStringInputStream([]byte(src))
	expr, err := l.Read(stream)
	if err != nil {
		return nil, err
	}
	return l.Eval(expr, l.topEnv)
}

// Destroy releases the interpreter's resources. After Destroy, l must not be
// used again.
func (l *Lisp) Destroy() {
	l.gc.mode = GCOn
	l.gc.threshold = 0
	l.gc.head = nil
	if l.input != nil {
		l.input.Close()
	}
	if l.output != nil {
		l.output.Flush()
		l.output.Close()
	}
	if l.logging != nil {
		l.logging.Flush()
		l.logging.Close()
	}
}
