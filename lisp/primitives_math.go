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
	"hash/crc32"
	"math"
	"regexp"
	"time"

	"github.com/moneytech/liblisp/internal/util"
)

// installMathPrimitives wires the math-library, CRC, regex and time
// primitive families promised by spec §1 ("math-library bindings, CRC,
// regex, ... time") against the Go standard library, per the justification
// in DESIGN.md: no third-party binding for any of these four families
// appears anywhere in the example corpus to ground an alternative choice.
func installMathPrimitives(l *Lisp) error {
	type def struct {
		name, valid, doc string
		fn               SubrFunc
	}
	defs := []def{
		{"sqrt", "a", "(sqrt x)", mathUnary(math.Sqrt)},
		{"sin", "a", "(sin x)", mathUnary(math.Sin)},
		{"cos", "a", "(cos x)", mathUnary(math.Cos)},
		{"tan", "a", "(tan x)", mathUnary(math.Tan)},
		{"log", "a", "(log x)", mathUnary(math.Log)},
		{"exp", "a", "(exp x)", mathUnary(math.Exp)},
		{"floor", "a", "(floor x)", mathUnary(math.Floor)},
		{"ceiling", "a", "(ceiling x)", mathUnary(math.Ceil)},
		{"round", "a", "(round x)", mathUnary(math.Round)},
		{"abs", "a", "(abs x)", subrAbs},
		{"pow", "a a", "(pow base exp)", subrPow},
		{"crc32", "S", "(crc32 s) returns the IEEE CRC-32 checksum of a string's bytes", subrCRC32},
		{"regex-match", "S S", "(regex-match pattern s) returns t, nil, or error on a malformed pattern", subrRegexMatch},
		{"current-time", "", "(current-time) returns Unix seconds as an integer", subrCurrentTime},
		{"random", "", "(random) returns a non-negative pseudo-random integer", subrRandom},
	}
	for _, d := range defs {
		if err := add(l, d.name, d.valid, d.doc, d.fn); err != nil {
			return err
		}
	}
	return nil
}

// mathUnary adapts a float64->float64 standard-library function into a
// SubrFunc, promoting an integer argument and always returning a float
// (spec §1: "Non-goals: numerical-tower correctness beyond integer and
// IEEE-754 double" -- these are float-producing by construction).
func mathUnary(fn func(float64) float64) SubrFunc {
	return func(l *Lisp, args *Cell) (*Cell, error) {
		return l.mkFloat(fn(args.car.FloatVal())), nil
	}
}

func subrAbs(l *Lisp, args *Cell) (*Cell, error) {
	c := args.car
	if c.IsInt() {
		v := c.IntVal()
		if v < 0 {
			v = -v
		}
		return l.mkInt(v), nil
	}
	return l.mkFloat(math.Abs(c.FloatVal())), nil
}

func subrPow(l *Lisp, args *Cell) (*Cell, error) {
	base, exp := args.car, args.cdr.car
	if base.IsInt() && exp.IsInt() && exp.IntVal() >= 0 {
		return l.mkInt(int(math.Pow(base.FloatVal(), exp.FloatVal()))), nil
	}
	return l.mkFloat(math.Pow(base.FloatVal(), exp.FloatVal())), nil
}

func subrCRC32(l *Lisp, args *Cell) (*Cell, error) {
	return l.mkInt(int(crc32.ChecksumIEEE(args.car.StrVal()))), nil
}

func subrRegexMatch(l *Lisp, args *Cell) (*Cell, error) {
	re, err := regexp.Compile(args.car.String())
	if err != nil {
		return errorCell, nil
	}
	return boolCell(re.MatchString(args.cdr.car.String())), nil
}

func subrCurrentTime(l *Lisp, args *Cell) (*Cell, error) {
	return l.mkInt(int(time.Now().Unix())), nil
}

func subrRandom(l *Lisp, args *Cell) (*Cell, error) {
	v := util.Xorshift128Plus(&l.rngState) & (1<<63 - 1) // mask off the sign bit
	return l.mkInt(int(v)), nil
}
