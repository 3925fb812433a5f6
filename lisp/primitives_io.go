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

import "os"

// installIOPrimitives wires the generic I/O abstraction of spec §4.1 to the
// Lisp surface: opening files, the in-memory string ports, and the
// byte/line/flush/seek/close operations common to both.
func installIOPrimitives(l *Lisp) error {
	type def struct {
		name, valid, doc string
		fn               SubrFunc
	}
	defs := []def{
		{"open-input-file", "S", "(open-input-file path)", subrOpenInputFile},
		{"open-output-file", "S", "(open-output-file path)", subrOpenOutputFile},
		{"open-input-string", "S", "(open-input-string s)", subrOpenInputString},
		{"open-output-string", "", "(open-output-string) creates a growable in-memory output port", subrOpenOutputString},
		{"get-output-string", "o", "(get-output-string port) returns the bytes written so far", subrGetOutputString},
		{"close-port", "P", "(close-port port)", subrClosePort},
		{"read-byte", "i", "(read-byte port) returns an integer, or error at EOF", subrReadByte},
		{"peek-byte", "i", "(peek-byte port)", subrPeekByte},
		{"write-byte", "o d", "(write-byte port byte)", subrWriteByte},
		{"read-line", "i", "(read-line port)", subrReadLine},
		{"write-string", "o S", "(write-string port s)", subrWriteString},
		{"flush", "o", "(flush port)", subrFlush},
		{"eof?", "P", "(eof? port)", subrEOF},
		{"tell", "P", "(tell port)", subrTell},
		{"seek", "P d d", "(seek port offset whence)", subrSeek},
	}
	for _, d := range defs {
		if err := add(l, d.name, d.valid, d.doc, d.fn); err != nil {
			return err
		}
	}
	return nil
}

func subrOpenInputFile(l *Lisp, args *Cell) (*Cell, error) {
	f, err := os.Open(args.car.String())
	if err != nil {
		return nil, newError(Resource, "open-input-file: "+err.Error(), args.car)
	}
	return l.MkIO(NewFileInputStream(f)), nil
}

func subrOpenOutputFile(l *Lisp, args *Cell) (*Cell, error) {
	f, err := os.Create(args.car.String())
	if err != nil {
		return nil, newError(Resource, "open-output-file: "+err.Error(), args.car)
	}
	return l.MkIO(NewFileOutputStream(f)), nil
}

func subrOpenInputString(l *Lisp, args *Cell) (*Cell, error) {
	return l.MkIO(NewStringInputStream(args.car.StrVal())), nil
}

func subrOpenOutputString(l *Lisp, args *Cell) (*Cell, error) {
	return l.MkIO(NewStringOutputStream(64)), nil
}

func subrGetOutputString(l *Lisp, args *Cell) (*Cell, error) {
	return l.MkString(args.car.StreamVal().String()), nil
}

func subrClosePort(l *Lisp, args *Cell) (*Cell, error) {
	if err := args.car.StreamVal().Close(); err != nil {
		return nil, err
	}
	args.car.setClosed()
	return tCell, nil
}

func subrReadByte(l *Lisp, args *Cell) (*Cell, error) {
	b, err := args.car.StreamVal().ReadByte()
	if err != nil {
		return errorCell, nil
	}
	return l.mkInt(int(b)), nil
}

func subrPeekByte(l *Lisp, args *Cell) (*Cell, error) {
	b, err := args.car.StreamVal().PeekByte()
	if err != nil {
		return errorCell, nil
	}
	return l.mkInt(int(b)), nil
}

func subrWriteByte(l *Lisp, args *Cell) (*Cell, error) {
	v := args.cdr.car.IntVal()
	if v < 0 || v > 255 {
		return nil, newError(Domain, "write-byte: value out of range", args.cdr.car)
	}
	if err := args.car.StreamVal().WriteByte(byte(v)); err != nil {
		return nil, err
	}
	return tCell, nil
}

func subrReadLine(l *Lisp, args *Cell) (*Cell, error) {
	s, err := args.car.StreamVal().ReadLine('\n')
	if err != nil {
		return errorCell, nil
	}
	return l.MkString(s), nil
}

func subrWriteString(l *Lisp, args *Cell) (*Cell, error) {
	if err := args.car.StreamVal().WriteString(args.cdr.car.String()); err != nil {
		return nil, err
	}
	return tCell, nil
}

func subrFlush(l *Lisp, args *Cell) (*Cell, error) {
	if err := args.car.StreamVal().Flush(); err != nil {
		return nil, err
	}
	return tCell, nil
}

func subrEOF(l *Lisp, args *Cell) (*Cell, error) {
	return boolCell(args.car.StreamVal().EOF()), nil
}

func subrTell(l *Lisp, args *Cell) (*Cell, error) {
	n, err := args.car.StreamVal().Tell()
	if err != nil {
		return nil, err
	}
	return l.mkInt(n), nil
}

func subrSeek(l *Lisp, args *Cell) (*Cell, error) {
	offset := args.cdr.car.IntVal()
	whence := args.cdr.cdr.car.IntVal()
	if err := args.car.StreamVal().Seek(int64(offset), whence); err != nil {
		return nil, err
	}
	return tCell, nil
}
