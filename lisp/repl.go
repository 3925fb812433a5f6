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

import "io"

// EditorFunc is a driver-supplied line-reading hook (spec §6): given a
// prompt, it returns one line of input and whether it was able to (a false
// ok falls back to a plain stream read).
type EditorFunc func(prompt string) (line string, ok bool)

// SetLineEditor installs a line editor used by REPL in place of reading
// l.input directly.
func (l *Lisp) SetLineEditor(editor EditorFunc) { l.editor = editor }

// REPL reads, evaluates and prints forms from the interpreter's input stream
// until EOF or a fatal error, writing prompt before each read when prompt is
// non-empty. Non-fatal errors are logged as `(error "message" 'form)` and the
// loop continues with the next form (spec §4.9); the evaluator's depth and
// GC pin stack are reset to the snapshot taken at the top of each iteration.
func (l *Lisp) REPL(prompt string, useEditor bool) error {
	for {
		if prompt != "" && !useEditor {
			if err := l.output.WriteString(prompt); err != nil {
				return err
			}
			if err := l.output.Flush(); err != nil {
				return err
			}
		}

		var stream *Stream
		if useEditor && l.editor != nil {
			line, ok := l.editor(prompt)
			if !ok {
				useEditor = false
				continue
			}
			stream = NewStringInputStream([]byte(line + "\n"))
		} else {
			stream = l.input
		}

		snap := l.eval.snapshot()
		expr, err := l.Read(stream)
		if err == io.EOF {
			if stream != l.input {
				// a blank editor line holds no form; go on to the next line
				continue
			}
			return nil
		}
		if err != nil {
			if logErr := l.logError(err, nil); logErr != nil {
				return logErr
			}
			l.eval.restore(snap)
			continue
		}

		result, err := l.Eval(expr, l.topEnv)
		l.eval.restore(snap)
		if err != nil {
			if le, ok := AsLispError(err); ok && le.Kind == Fatal {
				return le
			}
			if logErr := l.logError(err, expr); logErr != nil {
				return logErr
			}
			continue
		}
		if prompt != "" {
			if err := l.Print(l.output, result); err != nil {
				return err
			}
			l.output.WriteByte('\n')
			l.output.Flush()
		}
	}
}

// logError writes `(error "message" 'form)` to the logging stream (spec §7).
func (l *Lisp) logError(err error, form *Cell) error {
	msg := err.Error()
	if le, ok := AsLispError(err); ok {
		msg = le.Msg
		if form == nil {
			form = le.Form
		}
	}
	if werr := l.logging.WriteString("(error \"" + msg + "\""); werr != nil {
		return werr
	}
	if form != nil {
		if werr := l.logging.WriteString(" '" + writeToString(form)); werr != nil {
			return werr
		}
	}
	if werr := l.logging.WriteString(")\n"); werr != nil {
		return werr
	}
	return l.logging.Flush()
}
