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

// installCorePrimitives installs the minimal self-testing set named in spec
// §1: cons/car/cdr, eq?, arithmetic, eval/read/print, plus the handful of
// predicates and list helpers every other primitive family and test relies
// on. `if`, `lambda`, `quote`, `define` and `set!` are special forms handled
// directly by the evaluator (lisp/eval.go) and are not registered here.
func installCorePrimitives(l *Lisp) error {
	type def struct {
		name  string
		valid string
		doc   string
		fn    SubrFunc
	}
	defs := []def{
		{"cons", "A A", "(cons a b) builds a pair", subrCons},
		{"car", "c", "(car pair) returns the first element", subrCar},
		{"cdr", "c", "(cdr pair) returns the rest", subrCdr},
		{"set-car!", "c A", "(set-car! pair v) destructively replaces the car", subrSetCar},
		{"set-cdr!", "c A", "(set-cdr! pair v) destructively replaces the cdr", subrSetCdr},
		{"list", "", "(list a b c ...) builds a proper list", subrList},
		{"length", "L", "(length lst) counts a proper list's elements", subrLength},
		{"append", "", "(append lst ...) concatenates proper lists", subrAppend},
		{"reverse", "L", "(reverse lst) returns lst reversed", subrReverse},
		{"eq?", "A A", "(eq? a b) tests cell identity (spec §3)", subrEq},
		{"not", "A", "(not x) is t iff x is nil", subrNot},
		{"pair?", "A", "(pair? x) tests for a cons cell", subrPairP},
		{"null?", "A", "(null? x) tests for nil", subrNullP},
		{"symbol?", "A", "(symbol? x)", subrSymbolP},
		{"string?", "A", "(string? x)", subrStringP},
		{"integer?", "A", "(integer? x)", subrIntegerP},
		{"float?", "A", "(float? x)", subrFloatP},
		{"procedure?", "A", "(procedure? x)", subrProcedureP},
		{"hash?", "A", "(hash? x)", subrHashP},
		{"+", "", "(+ a b ...) sums its arguments", subrAdd},
		{"-", "", "(- a b ...) subtracts, or negates with one argument", subrSub},
		{"*", "", "(* a b ...) multiplies its arguments", subrMul},
		{"/", "", "(/ a b ...) divides; division by zero is a domain error", subrDiv},
		{"mod", "d d", "(mod a b) integer remainder", subrMod},
		{"=", "", "(= a b ...) numeric equality chain", subrNumEq},
		{"<", "", "(< a b ...) strictly increasing chain", subrLt},
		{">", "", "(> a b ...) strictly decreasing chain", subrGt},
		{"<=", "", "(<= a b ...) non-decreasing chain", subrLe},
		{">=", "", "(>= a b ...) non-increasing chain", subrGe},
		{"eval", "A", "(eval expr) evaluates expr in the top environment", subrEval},
		{"read", "i", "(read port) reads one expression from port", subrRead},
		{"print", "", "(print x [port]) writes x readably to port (default the interpreter's output stream)", subrPrint},
		{"write", "", "(write x [port]) is an alias for print", subrPrint},
		{"apply", "x L", "(apply fn args) calls fn with the elements of args", subrApply},
		{"map", "x L", "(map fn lst) returns a new list of (fn x) for each x in lst", subrMap},
		{"procedure-params", "x", "(procedure-params proc) returns the lambda-list of a closure", subrProcedureParams},
		{"procedure-body", "x", "(procedure-body proc) returns the body expressions of a closure", subrProcedureBody},
		{"procedure-env", "x", "(procedure-env proc) returns the environment a closure was created in", subrProcedureEnv},
		{"subr-name", "r", "(subr-name subr) returns a primitive's registered name", subrSubrName},
		{"subr-doc", "r", "(subr-doc subr) returns a primitive's docstring", subrSubrDoc},
		{"user-type-tag", "u", "(user-type-tag obj) returns the registered type tag of a user-defined object", subrUserTypeTag},
	}
	for _, d := range defs {
		if err := add(l, d.name, d.valid, d.doc, d.fn); err != nil {
			return err
		}
	}
	return nil
}

func subrCons(l *Lisp, args *Cell) (*Cell, error) {
	return l.cons(args.car, args.cdr.car), nil
}

func subrCar(l *Lisp, args *Cell) (*Cell, error) { return Car(args.car) }
func subrCdr(l *Lisp, args *Cell) (*Cell, error) { return Cdr(args.car) }

func subrSetCar(l *Lisp, args *Cell) (*Cell, error) {
	if err := SetCar(args.car, args.cdr.car); err != nil {
		return nil, err
	}
	return args.car, nil
}

func subrSetCdr(l *Lisp, args *Cell) (*Cell, error) {
	if err := SetCdr(args.car, args.cdr.car); err != nil {
		return nil, err
	}
	return args.car, nil
}

func subrList(l *Lisp, args *Cell) (*Cell, error) { return args, nil }

func subrLength(l *Lisp, args *Cell) (*Cell, error) {
	return l.mkInt(args.car.Length()), nil
}

func subrAppend(l *Lisp, args *Cell) (*Cell, error) {
	if args.IsNil() {
		return nilCell, nil
	}
	var lists []*Cell
	for p := args; p.IsCons(); p = p.cdr {
		lists = append(lists, p.car)
	}
	result := lists[len(lists)-1]
	for i := len(lists) - 2; i >= 0; i-- {
		var elems []*Cell
		for p := lists[i]; p.IsCons(); p = p.cdr {
			elems = append(elems, p.car)
		}
		for j := len(elems) - 1; j >= 0; j-- {
			result = l.cons(elems[j], result)
		}
	}
	return result, nil
}

func subrReverse(l *Lisp, args *Cell) (*Cell, error) {
	result := nilCell
	for p := args.car; p.IsCons(); p = p.cdr {
		result = l.cons(p.car, result)
	}
	return result, nil
}

func subrEq(l *Lisp, args *Cell) (*Cell, error) {
	return boolCell(Eq(args.car, args.cdr.car)), nil
}

func subrNot(l *Lisp, args *Cell) (*Cell, error) { return boolCell(args.car.IsNil()), nil }

func subrPairP(l *Lisp, args *Cell) (*Cell, error)      { return boolCell(args.car.IsCons()), nil }
func subrNullP(l *Lisp, args *Cell) (*Cell, error)      { return boolCell(args.car.IsNil()), nil }
func subrSymbolP(l *Lisp, args *Cell) (*Cell, error)    { return boolCell(args.car.IsSymbol()), nil }
func subrStringP(l *Lisp, args *Cell) (*Cell, error)    { return boolCell(args.car.IsString()), nil }
func subrIntegerP(l *Lisp, args *Cell) (*Cell, error)   { return boolCell(args.car.IsInt()), nil }
func subrFloatP(l *Lisp, args *Cell) (*Cell, error)     { return boolCell(args.car.IsFloat()), nil }
func subrHashP(l *Lisp, args *Cell) (*Cell, error)      { return boolCell(args.car.IsHash()), nil }
func subrProcedureP(l *Lisp, args *Cell) (*Cell, error) {
	c := args.car
	return boolCell(c.IsProc() || c.IsFProc() || c.IsSubr()), nil
}

func boolCell(b bool) *Cell {
	if b {
		return tCell
	}
	return nilCell
}

// numArgs flattens a proper argument list of arith cells into their float64
// values plus whether any argument was a float, reporting a Type error on the
// first non-numeric argument.
func numArgs(args *Cell) ([]float64, bool, error) {
	var vals []float64
	anyFloat := false
	for p := args; p.IsCons(); p = p.cdr {
		c := p.car
		if !c.IsArith() {
			return nil, false, newError(Type, "arithmetic on non-number", c)
		}
		if c.IsFloat() {
			anyFloat = true
		}
		vals = append(vals, c.FloatVal())
	}
	return vals, anyFloat, nil
}

func (l *Lisp) numResult(v float64, isFloat bool) *Cell {
	if isFloat {
		return l.mkFloat(v)
	}
	return l.mkInt(int(v))
}

func subrAdd(l *Lisp, args *Cell) (*Cell, error) {
	vals, isFloat, err := numArgs(args)
	if err != nil {
		return nil, err
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return l.numResult(sum, isFloat), nil
}

func subrMul(l *Lisp, args *Cell) (*Cell, error) {
	vals, isFloat, err := numArgs(args)
	if err != nil {
		return nil, err
	}
	prod := 1.0
	for _, v := range vals {
		prod *= v
	}
	return l.numResult(prod, isFloat), nil
}

func subrSub(l *Lisp, args *Cell) (*Cell, error) {
	vals, isFloat, err := numArgs(args)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, newError(Arity, "-: expected at least 1 argument", args)
	}
	if len(vals) == 1 {
		return l.numResult(-vals[0], isFloat), nil
	}
	acc := vals[0]
	for _, v := range vals[1:] {
		acc -= v
	}
	return l.numResult(acc, isFloat), nil
}

func subrDiv(l *Lisp, args *Cell) (*Cell, error) {
	vals, isFloat, err := numArgs(args)
	if err != nil {
		return nil, err
	}
	if len(vals) < 2 {
		return nil, newError(Arity, "/: expected at least 2 arguments", args)
	}
	acc := vals[0]
	for _, v := range vals[1:] {
		if v == 0 {
			return nil, newError(Domain, "/: division by zero", args)
		}
		acc /= v
	}
	if !isFloat {
		return l.mkInt(int(acc)), nil
	}
	return l.mkFloat(acc), nil
}

func subrMod(l *Lisp, args *Cell) (*Cell, error) {
	a, b := args.car.IntVal(), args.cdr.car.IntVal()
	if b == 0 {
		return nil, newError(Domain, "mod: division by zero", args)
	}
	return l.mkInt(a % b), nil
}

func chainCompare(args *Cell, cmp func(a, b float64) bool) (*Cell, error) {
	vals, _, err := numArgs(args)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(vals); i++ {
		if !cmp(vals[i-1], vals[i]) {
			return nilCell, nil
		}
	}
	return tCell, nil
}

func subrNumEq(l *Lisp, args *Cell) (*Cell, error) {
	return chainCompare(args, func(a, b float64) bool { return a == b })
}
func subrLt(l *Lisp, args *Cell) (*Cell, error) {
	return chainCompare(args, func(a, b float64) bool { return a < b })
}
func subrGt(l *Lisp, args *Cell) (*Cell, error) {
	return chainCompare(args, func(a, b float64) bool { return a > b })
}
func subrLe(l *Lisp, args *Cell) (*Cell, error) {
	return chainCompare(args, func(a, b float64) bool { return a <= b })
}
func subrGe(l *Lisp, args *Cell) (*Cell, error) {
	return chainCompare(args, func(a, b float64) bool { return a >= b })
}

func subrEval(l *Lisp, args *Cell) (*Cell, error) {
	return l.Eval(args.car, l.topEnv)
}

func subrRead(l *Lisp, args *Cell) (*Cell, error) {
	return l.Read(args.car.StreamVal())
}

func subrApply(l *Lisp, args *Cell) (*Cell, error) {
	return l.Apply(args.car, args.cdr.car)
}

func subrMap(l *Lisp, args *Cell) (*Cell, error) {
	fn := args.car
	var results []*Cell
	for p := args.cdr.car; p.IsCons(); p = p.cdr {
		r, err := l.Apply(fn, l.list(p.car))
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return l.list(results...), nil
}

func subrProcedureParams(l *Lisp, args *Cell) (*Cell, error) {
	c := args.car
	if !c.IsProc() && !c.IsFProc() {
		return nil, newError(Type, "procedure-params: not a closure", c)
	}
	return c.ProcArgs(), nil
}

func subrProcedureBody(l *Lisp, args *Cell) (*Cell, error) {
	c := args.car
	if !c.IsProc() && !c.IsFProc() {
		return nil, newError(Type, "procedure-body: not a closure", c)
	}
	return c.ProcCode(), nil
}

func subrProcedureEnv(l *Lisp, args *Cell) (*Cell, error) {
	c := args.car
	if !c.IsProc() && !c.IsFProc() {
		return nil, newError(Type, "procedure-env: not a closure", c)
	}
	return c.ProcEnv(), nil
}

func subrSubrName(l *Lisp, args *Cell) (*Cell, error) {
	return l.MkString(args.car.SubrName()), nil
}

func subrSubrDoc(l *Lisp, args *Cell) (*Cell, error) {
	return l.MkString(args.car.SubrDoc()), nil
}

func subrUserTypeTag(l *Lisp, args *Cell) (*Cell, error) {
	return l.mkInt(args.car.UserTag()), nil
}

func subrPrint(l *Lisp, args *Cell) (*Cell, error) {
	if !args.IsCons() {
		return nil, newError(Arity, "print: expected at least 1 argument", args)
	}
	port := l.output
	if args.cdr.IsCons() {
		if !args.cdr.car.IsOut() {
			return nil, newError(Type, "print: not an output port", args.cdr.car)
		}
		port = args.cdr.car.StreamVal()
	}
	if err := l.Print(port, args.car); err != nil {
		return nil, err
	}
	return args.car, nil
}
