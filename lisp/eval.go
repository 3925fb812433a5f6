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
	"sync/atomic"
)

// evalState holds the evaluator's GC pinning stack and depth counter -- the
// pieces that must be snapshotted and restored around a recovery point (spec
// §4.9). The external interrupt flag lives on *Lisp itself (spec §9: "an
// explicit *int32 field threaded through *Lisp"), since it must be settable
// from a goroutine that may never otherwise touch the evaluator.
type evalState struct {
	pins     []*Cell
	depth    int
	maxDepth int
}

func newEvalState() *evalState {
	return &evalState{maxDepth: 4096}
}

// raiseSignal implements (*Lisp).RaiseSignal.
func (l *Lisp) raiseSignal() { atomic.StoreInt32(l.signal, 1) }

// checkSignal atomically consumes a pending interrupt, returning true at
// most once per raise.
func (l *Lisp) checkSignal() bool {
	return atomic.CompareAndSwapInt32(l.signal, 1, 0)
}

// pin pushes c onto the GC pinning stack so a mark phase that runs while c is
// not yet reachable from any variable still treats it as live.
func (e *evalState) pin(c *Cell) { e.pins = append(e.pins, c) }

// unpin pops n entries off the pinning stack (LIFO), used once the pinned
// cells become reachable or are returned.
func (e *evalState) unpin(n int) { e.pins = e.pins[:len(e.pins)-n] }

// snapshot captures depth and pin-stack length for later restoration.
type snapshot struct {
	depth int
	pins  int
}

func (e *evalState) snapshot() snapshot {
	return snapshot{depth: e.depth, pins: len(e.pins)}
}

func (e *evalState) restore(s snapshot) {
	e.depth = s.depth
	if s.pins <= len(e.pins) {
		e.pins = e.pins[:s.pins]
	}
}

// Eval evaluates expr in env (spec §4.6). It is re-entrant: primitives such
// as `eval` call back into it, and each such nested call snapshots and
// restores the evaluator's depth/pin state around itself so a failure deep
// inside a primitive cannot corrupt the enclosing call's bookkeeping (spec
// §4.9).
func (l *Lisp) Eval(expr, env *Cell) (result *Cell, err error) {
	snap := l.eval.snapshot()
	defer l.eval.restore(snap)
	return l.eval1(expr, env)
}

// eval1 is the trampolined evaluator core: tail positions (if/cond/begin/
// and/or, and the body of a procedure/f-procedure call) are implemented by
// rewriting expr/env in place and looping, rather than by recursing, so a
// long chain of these does not consume Go-stack proportional to its length
// (spec §4.6 "Tail position").
func (l *Lisp) eval1(expr, env *Cell) (*Cell, error) {
	// evalCons/applyProcTail/applyFProcTail pin whatever they allocate
	// (callee, evaluated args, the new call frame) for as long as this
	// trampoline loop keeps tail-continuing through it -- a frame built for
	// a tail call stays the active (unrooted) env across every further
	// iteration until a non-tail result pops back out, so it must stay
	// pinned for that whole stretch, not just until the call that built it
	// returns control to this loop.
	base := len(l.eval.pins)
	defer func() { l.eval.pins = l.eval.pins[:base] }()
	for {
		if l.checkSignal() {
			return nil, newError(Signal, "interrupted", expr)
		}
		l.eval.depth++
		if l.eval.depth > l.eval.maxDepth {
			l.eval.depth--
			return nil, newError(Overflow, "evaluator depth exceeded", expr)
		}
		result, tailExpr, tailEnv, isTail, err := l.evalStep(expr, env)
		l.eval.depth--
		if err != nil {
			return nil, l.maybeHalt(err)
		}
		if !isTail {
			return result, nil
		}
		expr, env = tailExpr, tailEnv
	}
}

func (l *Lisp) maybeHalt(err error) error {
	if l.errorsHalt {
		if le, ok := AsLispError(err); ok && le.Kind != Fatal {
			return &LispError{Kind: Fatal, Msg: le.Msg, Form: le.Form}
		}
	}
	return err
}

// evalStep evaluates one dispatch step. When the expression being evaluated
// is itself in tail position relative to its caller, it returns isTail=true
// along with the rewritten (expr, env) instead of recursing, letting eval1's
// loop do the work.
func (l *Lisp) evalStep(expr, env *Cell) (result, tailExpr, tailEnv *Cell, isTail bool, err error) {
	if l.trace == TraceAll || (l.trace == TraceMarked && expr.Traced()) {
		if expr.IsCons() || expr.Traced() {
			l.logging.WriteString("; eval: ")
			l.Print(l.logging, expr)
			l.logging.WriteByte('\n')
		}
	}

	switch expr.kind {
	case KindSymbol:
		if expr == nilCell || expr == tCell {
			return expr, nil, nil, false, nil
		}
		v, ok := lookup(expr, env)
		if !ok {
			return nil, nil, nil, false, newError(Unbound, "unbound symbol: "+expr.SymVal(), expr)
		}
		return v, nil, nil, false, nil
	case KindCons:
		return l.evalCons(expr, env)
	default:
		// Integer, Float, String, Subr, Procedure, FProcedure, Hash, Io:
		// self-evaluating.
		return expr, nil, nil, false, nil
	}
}

func (l *Lisp) evalCons(expr, env *Cell) (result, tailExpr, tailEnv *Cell, isTail bool, err error) {
	head := expr.car
	if head.IsSymbol() {
		switch head {
		case l.sf.quote:
			args := expr.cdr
			if args.Length() != 1 {
				return nil, nil, nil, false, newError(Arity, "quote: expected 1 argument", expr)
			}
			return args.car, nil, nil, false, nil
		case l.sf.ifSym:
			return l.evalIf(expr.cdr, env)
		case l.sf.begin:
			return l.evalBegin(expr.cdr, env)
		case l.sf.lambda:
			r, e := l.evalLambdaForm(expr.cdr, env, false)
			return r, nil, nil, false, e
		case l.sf.flambda:
			r, e := l.evalLambdaForm(expr.cdr, env, true)
			return r, nil, nil, false, e
		case l.sf.define:
			r, e := l.evalDefine(expr.cdr, env)
			return r, nil, nil, false, e
		case l.sf.setBang:
			r, e := l.evalSetBang(expr.cdr, env)
			return r, nil, nil, false, e
		case l.sf.cond:
			return l.evalCond(expr.cdr, env)
		case l.sf.and:
			return l.evalAnd(expr.cdr, env)
		case l.sf.or:
			return l.evalOr(expr.cdr, env)
		}
	}

	fn, err := l.eval1(head, env)
	if err != nil {
		return nil, nil, nil, false, err
	}
	// fn/args/the frame a proc call builds are pinned for the remainder of
	// the enclosing eval1 trampoline, not just until this call returns: a
	// tail-continued call keeps using them (as the new tailEnv, or
	// transitively through it) across further loop iterations. eval1's own
	// deferred truncation releases them once the trampoline finally
	// produces a non-tail result.
	l.eval.pin(fn)

	if fn.IsFProc() {
		result, tailExpr, tailEnv, isTail, err = l.applyFProcTail(fn, expr.cdr, env)
		return
	}

	args, err := l.evalArgs(expr.cdr, env)
	if err != nil {
		return nil, nil, nil, false, err
	}
	l.eval.pin(args)

	switch {
	case fn.IsSubr():
		r, e := l.applySubr(fn, args)
		return r, nil, nil, false, e
	case fn.IsProc():
		return l.applyProcTail(fn, args, env)
	default:
		return nil, nil, nil, false, newError(Type, "not callable", fn)
	}
}

func (l *Lisp) pinOne(c *Cell) int {
	l.eval.pin(c)
	return 1
}

func (l *Lisp) evalArgs(list, env *Cell) (*Cell, error) {
	if list.IsNil() {
		return nilCell, nil
	}
	if !list.IsCons() {
		return nil, newError(Type, "improper argument list", list)
	}
	head, err := l.eval1(list.car, env)
	if err != nil {
		return nil, err
	}
	n := l.pinOne(head)
	rest, err := l.evalArgs(list.cdr, env)
	if err != nil {
		l.eval.unpin(n)
		return nil, err
	}
	result := l.cons(head, rest)
	l.eval.unpin(n)
	return result, nil
}

func (l *Lisp) evalIf(rest, env *Cell) (result, tailExpr, tailEnv *Cell, isTail bool, err error) {
	n := rest.Length()
	if n < 2 || n > 3 {
		return nil, nil, nil, false, newError(Arity, "if: expected 2 or 3 arguments", rest)
	}
	test, err := l.eval1(rest.car, env)
	if err != nil {
		return nil, nil, nil, false, err
	}
	rest = rest.cdr
	if !test.IsNil() {
		return nil, rest.car, env, true, nil
	}
	rest = rest.cdr
	if rest.IsNil() {
		return nilCell, nil, nil, false, nil
	}
	return nil, rest.car, env, true, nil
}

func (l *Lisp) evalBegin(rest, env *Cell) (result, tailExpr, tailEnv *Cell, isTail bool, err error) {
	if rest.IsNil() {
		return nilCell, nil, nil, false, nil
	}
	for rest.cdr.IsCons() {
		if _, err := l.eval1(rest.car, env); err != nil {
			return nil, nil, nil, false, err
		}
		rest = rest.cdr
	}
	return nil, rest.car, env, true, nil
}

func (l *Lisp) evalCond(clauses, env *Cell) (result, tailExpr, tailEnv *Cell, isTail bool, err error) {
	for c := clauses; c.IsCons(); c = c.cdr {
		clause := c.car
		if !clause.IsCons() {
			return nil, nil, nil, false, newError(Type, "cond: malformed clause", clause)
		}
		test, err := l.eval1(clause.car, env)
		if err != nil {
			return nil, nil, nil, false, err
		}
		if !test.IsNil() {
			body := clause.cdr
			if body.IsNil() {
				// spec §9: a (test) arm with no body returns the test value.
				return test, nil, nil, false, nil
			}
			return l.evalBegin(body, env)
		}
	}
	return nilCell, nil, nil, false, nil
}

func (l *Lisp) evalAnd(rest, env *Cell) (result, tailExpr, tailEnv *Cell, isTail bool, err error) {
	if rest.IsNil() {
		return tCell, nil, nil, false, nil
	}
	for rest.cdr.IsCons() {
		v, err := l.eval1(rest.car, env)
		if err != nil {
			return nil, nil, nil, false, err
		}
		if v.IsNil() {
			return nilCell, nil, nil, false, nil
		}
		rest = rest.cdr
	}
	return nil, rest.car, env, true, nil
}

func (l *Lisp) evalOr(rest, env *Cell) (result, tailExpr, tailEnv *Cell, isTail bool, err error) {
	if rest.IsNil() {
		return nilCell, nil, nil, false, nil
	}
	for rest.cdr.IsCons() {
		v, err := l.eval1(rest.car, env)
		if err != nil {
			return nil, nil, nil, false, err
		}
		if !v.IsNil() {
			return v, nil, nil, false, nil
		}
		rest = rest.cdr
	}
	return nil, rest.car, env, true, nil
}

// isValidParamSpec accepts a bare symbol (fully variadic), nil (no
// parameters), or a chain of cons cells whose cars are symbols, optionally
// ending in a symbol instead of nil (a dotted "rest" parameter).
func isValidParamSpec(params *Cell) bool {
	for {
		switch {
		case params.IsNil():
			return true
		case params.IsSymbol():
			return true
		case params.IsCons():
			if !params.car.IsSymbol() {
				return false
			}
			params = params.cdr
		default:
			return false
		}
	}
}

func (l *Lisp) evalLambdaForm(rest, env *Cell, fproc bool) (*Cell, error) {
	if !rest.IsCons() {
		return nil, newError(Arity, "lambda: missing parameter list", rest)
	}
	params := rest.car
	if !isValidParamSpec(params) {
		return nil, newError(Type, "lambda: parameter list must be a symbol or a (possibly dotted) list of symbols", params)
	}
	return l.mkProc(fproc, params, rest.cdr, env), nil
}

func (l *Lisp) evalDefine(rest, env *Cell) (*Cell, error) {
	if rest.Length() != 2 || !rest.car.IsSymbol() {
		return nil, newError(Arity, "define: expected (define symbol expr)", rest)
	}
	val, err := l.eval1(rest.cdr.car, env)
	if err != nil {
		return nil, err
	}
	l.define(env, rest.car, val)
	return val, nil
}

func (l *Lisp) evalSetBang(rest, env *Cell) (*Cell, error) {
	if rest.Length() != 2 || !rest.car.IsSymbol() {
		return nil, newError(Arity, "set!: expected (set! symbol expr)", rest)
	}
	val, err := l.eval1(rest.cdr.car, env)
	if err != nil {
		return nil, err
	}
	if err := setBang(env, rest.car, val); err != nil {
		return nil, err
	}
	return val, nil
}

// bindParams zips evaluated/raw args into a fresh frame according to
// params: a bare symbol binds the whole argument list (variadic); a list of
// symbols binds positionally, with a final bare-symbol tail (improper list)
// binding the remainder, spec §4.6.
func (l *Lisp) bindParams(frame, params, args *Cell) error {
	for {
		switch {
		case params.IsNil():
			if !args.IsNil() {
				return newError(Arity, "too many arguments", args)
			}
			return nil
		case params.IsSymbol():
			l.extend(frame, params, args)
			return nil
		case params.IsCons():
			if !args.IsCons() {
				return newError(Arity, "too few arguments", args)
			}
			l.extend(frame, params.car, args.car)
			params, args = params.cdr, args.cdr
		default:
			return newError(Type, "malformed parameter list", params)
		}
	}
}

func (l *Lisp) applySubr(fn, args *Cell) (*Cell, error) {
	if fn.subr.valid != "" {
		if err := Validate(fn.subr.valid, args); err != nil {
			return nil, err
		}
	}
	return fn.subr.fn(l, args)
}

// applyProcTail applies a procedure, returning its body as a tail
// continuation rather than recursing into Eval. The new frame becomes
// tailEnv, the env the trampoline loop in eval1 will keep using across
// every further tail-continued step of the body -- it is pinned so a
// collection triggered by an allocation inside the body cannot reclaim it
// (or the argument values bound into it) out from under the still-running
// call.
func (l *Lisp) applyProcTail(fn, args, callerEnv *Cell) (result, tailExpr, tailEnv *Cell, isTail bool, err error) {
	frame := l.applyFrame(fn.proc.env, callerEnv)
	l.eval.pin(frame)
	if err := l.bindParams(frame, fn.proc.params, args); err != nil {
		return nil, nil, nil, false, err
	}
	return l.evalBegin(fn.proc.body, frame)
}

func (l *Lisp) applyFProcTail(fn, rawArgs, callerEnv *Cell) (result, tailExpr, tailEnv *Cell, isTail bool, err error) {
	frame := l.applyFrame(fn.proc.env, callerEnv)
	l.eval.pin(frame)
	if err := l.bindParams(frame, fn.proc.params, rawArgs); err != nil {
		return nil, nil, nil, false, err
	}
	return l.evalBegin(fn.proc.body, frame)
}

// Apply evaluates fn applied to args (an already-built argument list),
// exposed so primitives such as `apply` and `map` can invoke Lisp-level
// procedures. It is not in tail position: it recurses into Eval.
func (l *Lisp) Apply(fn, args *Cell) (*Cell, error) {
	switch {
	case fn.IsSubr():
		return l.applySubr(fn, args)
	case fn.IsProc():
		frame := l.applyFrame(fn.proc.env, l.topEnv)
		n := l.pinOne(frame)
		defer l.eval.unpin(n)
		if err := l.bindParams(frame, fn.proc.params, args); err != nil {
			return nil, err
		}
		return l.evalImplicitBegin(fn.proc.body, frame)
	case fn.IsFProc():
		frame := l.applyFrame(fn.proc.env, l.topEnv)
		n := l.pinOne(frame)
		defer l.eval.unpin(n)
		if err := l.bindParams(frame, fn.proc.params, args); err != nil {
			return nil, err
		}
		return l.evalImplicitBegin(fn.proc.body, frame)
	default:
		return nil, newError(Type, "apply: not callable", fn)
	}
}

func (l *Lisp) evalImplicitBegin(body, env *Cell) (*Cell, error) {
	var result *Cell = nilCell
	var err error
	for b := body; b.IsCons(); b = b.cdr {
		result, err = l.Eval(b.car, env)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
