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

package main

import (
	"os"

	"github.com/moneytech/liblisp/lisp"
)

// lineEditor is a minimal in-memory line editor: it echoes keystrokes back
// to stdout itself (the terminal is in raw mode, so the kernel won't), and
// recalls previous lines with the up/down arrow keys. No on-disk history
// file is kept (spec §6: "none of the corpus's REPL drivers persist history
// either").
type lineEditor struct {
	history []string
	pos     int
}

func newLineEditor() lisp.EditorFunc {
	e := &lineEditor{}
	return e.readLine
}

const (
	keyBackspace = 127
	keyCtrlD     = 4
	keyEnter     = '\r'
	keyEscape    = 27
)

func (e *lineEditor) readLine(prompt string) (string, bool) {
	os.Stdout.WriteString(prompt)
	var buf []rune
	var one [1]byte
	for {
		n, err := os.Stdin.Read(one[:])
		if n == 0 || err != nil {
			return "", false
		}
		b := one[0]
		switch {
		case b == keyEnter || b == '\n':
			os.Stdout.WriteString("\r\n")
			line := string(buf)
			if line != "" {
				e.history = append(e.history, line)
			}
			e.pos = len(e.history)
			return line, true
		case b == keyCtrlD && len(buf) == 0:
			return "", false
		case b == keyBackspace || b == 8:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
				os.Stdout.WriteString("\b \b")
			}
		case b == keyEscape:
			if e.readArrow() {
				e.recallHistory(&buf)
			}
		default:
			buf = append(buf, rune(b))
			os.Stdout.Write([]byte{b})
		}
	}
}

// readArrow consumes the remainder of a VT100 arrow-key escape sequence
// (`ESC [ A/B/C/D`) and reports whether it was an up/down arrow (history
// recall); left/right and anything else are swallowed and ignored, matching
// the teacher's narrow raw-mode key handling in port1Handler/port2Handler.
func (e *lineEditor) readArrow() bool {
	var seq [2]byte
	if n, _ := os.Stdin.Read(seq[:1]); n == 0 || seq[0] != '[' {
		return false
	}
	if n, _ := os.Stdin.Read(seq[1:2]); n == 0 {
		return false
	}
	switch seq[1] {
	case 'A': // up
		if e.pos > 0 {
			e.pos--
		}
		return true
	case 'B': // down
		if e.pos < len(e.history) {
			e.pos++
		}
		return true
	default:
		return false
	}
}

func (e *lineEditor) recallHistory(buf *[]rune) {
	for range *buf {
		os.Stdout.WriteString("\b \b")
	}
	if e.pos < len(e.history) {
		*buf = []rune(e.history[e.pos])
	} else {
		*buf = nil
	}
	os.Stdout.WriteString(string(*buf))
}
