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
	"strconv"
)

// maxPrintDepth bounds the printer's recursion (spec §4.3), guarding against
// stack exhaustion on malicious or cyclic-by-accident input; the reader's
// nesting cap, maxReadDepth, has the same value.
const maxPrintDepth = 4096

// ANSI SGR colour codes used when a stream has colourised output enabled.
const (
	ansiReset   = "\x1b[0m"
	ansiSymbol  = "\x1b[36m" // cyan
	ansiString  = "\x1b[32m" // green
	ansiNumber  = "\x1b[33m" // yellow
	ansiSpecial = "\x1b[35m" // magenta
)

// printer renders cells to a Stream, tracking pretty-print indentation depth
// and a hard recursion cap shared with the reader.
type printer struct {
	out   *Stream
	depth int
}

// Print renders ob to stream, honouring the stream's colour/pretty flags.
func (l *Lisp) Print(stream *Stream, ob *Cell) error {
	p := &printer{out: stream}
	return p.print(ob)
}

func (p *printer) print(c *Cell) error {
	if p.depth > maxPrintDepth {
		return newError(Overflow, "printer recursion depth exceeded", c)
	}
	if c == nil || c == nilCell {
		return p.out.WriteString("()")
	}
	switch c.kind {
	case KindInteger:
		return p.color(ansiNumber, func() error { return p.out.WriteInt(c.i) })
	case KindFloat:
		return p.color(ansiNumber, func() error { return p.out.WriteFloat(c.f) })
	case KindSymbol:
		return p.color(ansiSpecial, func() error { return p.out.WriteString(c.SymVal()) })
	case KindString:
		return p.color(ansiString, func() error { return p.printString(c) })
	case KindCons:
		return p.printCons(c)
	case KindSubr:
		return p.out.WriteString(fmt.Sprintf("#<subr:%s>", c.subr.name))
	case KindProcedure:
		return p.out.WriteString("#<procedure>")
	case KindFProcedure:
		return p.out.WriteString("#<f-procedure>")
	case KindIO:
		return p.out.WriteString("#<io>")
	case KindHash:
		return p.printHash(c)
	case KindUserDefined:
		return p.out.WriteString(fmt.Sprintf("#<user:%d>", c.udTag))
	default:
		return newError(Type, "print: unknown cell kind", c)
	}
}

func (p *printer) color(code string, body func() error) error {
	if !p.out.Color() {
		return body()
	}
	if err := p.out.WriteString(code); err != nil {
		return err
	}
	if err := body(); err != nil {
		return err
	}
	return p.out.WriteString(ansiReset)
}

// printString escapes non-printable bytes as the inverse of the reader's
// escape rules: \\ \" \n \t \r verbatim, everything else non-printable as
// \ooo (three octal digits).
func (p *printer) printString(c *Cell) error {
	if err := p.out.WriteByte('"'); err != nil {
		return err
	}
	for _, b := range c.str {
		var esc string
		switch b {
		case '\\':
			esc = `\\`
		case '"':
			esc = `\"`
		case '\n':
			esc = `\n`
		case '\t':
			esc = `\t`
		case '\r':
			esc = `\r`
		default:
			if b < 0x20 || b >= 0x7f {
				esc = `\` + octal3(b)
			}
		}
		if esc != "" {
			if err := p.out.WriteString(esc); err != nil {
				return err
			}
			continue
		}
		if err := p.out.WriteByte(b); err != nil {
			return err
		}
	}
	return p.out.WriteByte('"')
}

func octal3(b byte) string {
	s := strconv.FormatInt(int64(b), 8)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}

func (p *printer) indent() error {
	if !p.out.Pretty() || p.depth == 0 {
		return nil
	}
	if err := p.out.WriteByte('\n'); err != nil {
		return err
	}
	for i := 0; i < p.depth; i++ {
		if err := p.out.WriteString("  "); err != nil {
			return err
		}
	}
	return nil
}

// printCons prints a list, or a dotted pair `(a . b)` if the tail is not a
// proper list (spec §9 open question resolved: dotted pairs round-trip).
func (p *printer) printCons(c *Cell) error {
	if err := p.indent(); err != nil {
		return err
	}
	if err := p.out.WriteByte('('); err != nil {
		return err
	}
	p.depth++
	first := true
	cur := c
	for {
		if !first {
			if err := p.out.WriteByte(' '); err != nil {
				return err
			}
		}
		first = false
		if err := p.print(cur.car); err != nil {
			return err
		}
		switch {
		case cur.cdr.IsNil():
			p.depth--
			return p.out.WriteByte(')')
		case cur.cdr.IsCons():
			cur = cur.cdr
		default:
			if err := p.out.WriteString(" . "); err != nil {
				return err
			}
			if err := p.print(cur.cdr); err != nil {
				return err
			}
			p.depth--
			return p.out.WriteByte(')')
		}
	}
}

// printHash prints a hash table as a reconstruction expression
// `(hash-create k1 v1 ...)` so it reads back (spec §4.3, §9).
func (p *printer) printHash(c *Cell) error {
	if err := p.out.WriteString("(hash-create"); err != nil {
		return err
	}
	var ferr error
	c.table.ForEach(func(k string, v *Cell) *Cell {
		if ferr != nil {
			return Nil()
		}
		if err := p.out.WriteByte(' '); err != nil {
			ferr = err
			return Nil()
		}
		if err := p.out.WriteByte('"'); err != nil {
			ferr = err
			return Nil()
		}
		if err := p.out.WriteString(k); err != nil {
			ferr = err
			return Nil()
		}
		if err := p.out.WriteByte('"'); err != nil {
			ferr = err
			return Nil()
		}
		if err := p.out.WriteByte(' '); err != nil {
			ferr = err
			return Nil()
		}
		if err := p.print(v); err != nil {
			ferr = err
			return Nil()
		}
		return nil
	})
	if ferr != nil {
		return ferr
	}
	return p.out.WriteByte(')')
}
