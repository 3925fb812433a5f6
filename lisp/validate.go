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

// Validate checks an already-evaluated argument list against a
// space-separated validation string (spec §6). Each token classifies one
// positional argument; returns a descriptive Type/Arity error on the first
// mismatch.
func Validate(valid string, args *Cell) error {
	if valid == "" {
		return nil
	}
	toks := splitTokens(valid)
	cur := args
	for idx, tok := range toks {
		if !cur.IsCons() {
			return newErrorf(Arity, args, "expected %d arguments, got %d", len(toks), idx)
		}
		if err := validateOne(tok, cur.car, idx); err != nil {
			return err
		}
		cur = cur.cdr
	}
	if cur.IsCons() {
		n := len(toks)
		for p := cur; p.IsCons(); p = p.cdr {
			n++
		}
		return newErrorf(Arity, args, "expected %d arguments, got %d", len(toks), n)
	}
	return nil
}

func splitTokens(valid string) []string {
	var toks []string
	cur := make([]byte, 0, 1)
	for i := 0; i < len(valid); i++ {
		if valid[i] == ' ' {
			if len(cur) > 0 {
				toks = append(toks, string(cur))
				cur = cur[:0]
			}
			continue
		}
		cur = append(cur, valid[i])
	}
	if len(cur) > 0 {
		toks = append(toks, string(cur))
	}
	return toks
}

func validateOne(tok string, v *Cell, idx int) error {
	ok := false
	switch tok {
	case "s":
		ok = v.IsSymbol()
	case "d":
		ok = v.IsInt()
	case "f":
		ok = v.IsFloat()
	case "a":
		ok = v.IsArith()
	case "S":
		ok = v.IsString()
	case "Z":
		ok = v.IsSymbol() || v.IsString()
	case "c":
		ok = v.IsCons()
	case "L":
		ok = v.IsCons() || v.IsNil()
	case "h":
		ok = v.IsHash()
	case "P":
		ok = v.IsIO()
	case "i":
		ok = v.IsIn()
	case "o":
		ok = v.IsOut()
	case "x":
		ok = v.IsSubr() || v.IsProc() || v.IsFProc()
	case "l":
		ok = v.IsProc() || v.IsFProc()
	case "p":
		ok = v.IsProc()
	case "r":
		ok = v.IsSubr()
	case "F":
		ok = v.IsFProc()
	case "u":
		ok = v.IsUserDef()
	case "b":
		ok = v.IsNil() || v == tCell
	case "I":
		ok = v.IsIn() || v.IsString()
	case "C":
		ok = v.IsSymbol() || v.IsString() || v.IsInt()
	case "A":
		ok = true
	default:
		return newErrorf(Type, v, "invalid validation token %q", tok)
	}
	if !ok {
		return newErrorf(Type, v, "argument %d failed validation %q", idx+1, tok)
	}
	return nil
}
