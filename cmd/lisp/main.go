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

// Command lisp is an interactive REPL driver and script runner for the
// github.com/moneytech/liblisp/lisp interpreter.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/moneytech/liblisp/lisp"
	"github.com/pkg/errors"
)

type fileList []string

func (f *fileList) String() string     { return "" }
func (f *fileList) Set(s string) error { *f = append(*f, s); return nil }

func atExit(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "\n%v\n", err)
	os.Exit(1)
}

func main() {
	var err error
	defer func() { atExit(err) }()

	var loadFiles fileList
	expr := flag.String("e", "", "evaluate `expr` and exit instead of starting a REPL")
	flag.Var(&loadFiles, "load", "load and evaluate `filename` before the REPL starts (can be specified multiple times)")
	prompt := flag.String("prompt", "> ", "REPL prompt string, empty for none")
	noRaw := flag.Bool("noraw", false, "disable raw terminal IO / built-in line editor")
	dynamic := flag.Bool("dynamic", false, "use dynamic scope instead of the default lexical scope")
	halt := flag.Bool("halt", false, "treat every evaluation error as fatal")
	trace := flag.String("trace", "off", "evaluator trace level: off, marked, all")
	flag.Parse()

	traceLevel, err := parseTraceLevel(*trace)
	if err != nil {
		return
	}

	l, err := lisp.New(
		lisp.Output(os.Stdout),
		lisp.Logging(lisp.NewFileOutputStream(os.Stderr)),
		lisp.DynamicScope(*dynamic),
		lisp.ErrorsHalt(*halt),
		lisp.Trace(traceLevel),
	)
	if err != nil {
		err = errors.Wrap(err, "initializing interpreter")
		return
	}
	defer l.Destroy()

	var argCells []*lisp.Cell
	for _, a := range flag.Args() {
		argCells = append(argCells, l.MkString(a))
	}
	if err = l.AddCell("*args*", l.List(argCells...)); err != nil {
		err = errors.Wrap(err, "binding *args*")
		return
	}

	for _, name := range loadFiles {
		if err = loadFile(l, name); err != nil {
			err = errors.Wrapf(err, "loading %s", name)
			return
		}
	}

	if *expr != "" {
		var result *lisp.Cell
		result, err = l.EvalString(*expr)
		if err != nil {
			return
		}
		if err = l.Print(l.GetOutput(), result); err != nil {
			return
		}
		l.GetOutput().WriteByte('\n')
		l.GetOutput().Flush()
		return
	}

	useEditor := false
	if !*noRaw {
		if tearDown, rawErr := setRawIO(); rawErr == nil {
			defer tearDown()
			useEditor = true
			l.SetLineEditor(newLineEditor())
		}
	}

	err = l.REPL(*prompt, useEditor)
}

func parseTraceLevel(s string) (lisp.TraceLevel, error) {
	switch s {
	case "off":
		return lisp.TraceOff, nil
	case "marked":
		return lisp.TraceMarked, nil
	case "all":
		return lisp.TraceAll, nil
	default:
		return lisp.TraceOff, errors.Errorf("unknown trace level %q", s)
	}
}

func loadFile(l *lisp.Lisp, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	stream := lisp.NewFileInputStream(f)
	defer stream.Close()
	for {
		expr, err := l.Read(stream)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if _, err := l.Eval(expr, l.TopEnv()); err != nil {
			return err
		}
	}
}
