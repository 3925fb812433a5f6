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
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/moneytech/liblisp/internal/util"
	"github.com/pkg/errors"
)

// streamKind tags which backing medium a Stream uses.
type streamKind uint8

const (
	streamFileIn streamKind = iota
	streamFileOut
	streamStringIn
	streamStringOut
	streamNullOut
)

// Stream is the generic I/O abstraction unifying files and in-memory
// buffers (spec §4.1). Exactly one of the backing fields is active,
// selected by kind.
type Stream struct {
	kind   streamKind
	closed bool
	color  bool
	pretty bool

	// file-backed streams
	file   *os.File
	reader *bufio.Reader
	writer *bufio.Writer
	errw   *util.ErrWriter // latches the first write error, see vm/io_helpers.go ancestry
	isStd  bool            // stdin/stdout/stderr: Close is a no-op

	// string-backed streams
	buf   []byte // streamStringIn: fixed source; streamStringOut: growable dest
	pos   int    // read/write cursor
	limit int     // streamStringIn: len(buf) high-water mark for EOF

	pushback int // -1 if empty, else a pushed-back byte
}

func newStream(kind streamKind) *Stream {
	return &Stream{kind: kind, pushback: -1}
}

// NewFileInputStream wraps an already-open file for reading.
func NewFileInputStream(f *os.File) *Stream {
	s := newStream(streamFileIn)
	s.file = f
	s.reader = bufio.NewReader(f)
	s.isStd = f == os.Stdin
	return s
}

// NewFileOutputStream wraps an already-open file for writing.
func NewFileOutputStream(f *os.File) *Stream {
	s := newStream(streamFileOut)
	s.file = f
	s.errw = util.NewErrWriter(f)
	s.writer = bufio.NewWriter(s.errw)
	s.isStd = f == os.Stdout || f == os.Stderr
	return s
}

// NewStringInputStream creates a read-only stream over a fixed buffer.
func NewStringInputStream(src []byte) *Stream {
	s := newStream(streamStringIn)
	s.buf = src
	s.limit = len(src)
	return s
}

// NewStringOutputStream creates a growable output buffer stream, with cap as
// its initial capacity hint.
func NewStringOutputStream(cap int) *Stream {
	s := newStream(streamStringOut)
	if cap <= 0 {
		cap = 16
	}
	s.buf = make([]byte, 0, cap)
	return s
}

// NewNullOutputStream creates a stream that discards everything written to
// it.
func NewNullOutputStream() *Stream {
	return newStream(streamNullOut)
}

func (s *Stream) isInput() bool {
	return s.kind == streamFileIn || s.kind == streamStringIn
}
func (s *Stream) isOutput() bool {
	return s.kind == streamFileOut || s.kind == streamStringOut || s.kind == streamNullOut
}

// SetColor turns ANSI colourised output on or off.
func (s *Stream) SetColor(on bool) { s.color = on }

// Color reports whether ANSI colourised output is on.
func (s *Stream) Color() bool { return s.color }

// SetPretty turns pretty-printing (indentation) on or off.
func (s *Stream) SetPretty(on bool) { s.pretty = on }

// Pretty reports whether pretty-printing is on.
func (s *Stream) Pretty() bool { return s.pretty }

// Closed reports whether the stream has been closed.
func (s *Stream) Closed() bool { return s.closed }

func (s *Stream) checkOpen() error {
	if s.closed {
		return newError(Resource, "operation on closed stream", nil)
	}
	return nil
}

// ReadByte reads one byte, returning io.EOF at end of stream.
func (s *Stream) ReadByte() (byte, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	if s.pushback >= 0 {
		b := byte(s.pushback)
		s.pushback = -1
		return b, nil
	}
	switch s.kind {
	case streamFileIn:
		return s.reader.ReadByte()
	case streamStringIn:
		if s.pos >= s.limit {
			return 0, io.EOF
		}
		b := s.buf[s.pos]
		s.pos++
		return b, nil
	default:
		return 0, newError(Type, "read on output stream", nil)
	}
}

// PeekByte returns the next byte without consuming it.
func (s *Stream) PeekByte() (byte, error) {
	b, err := s.ReadByte()
	if err != nil {
		return 0, err
	}
	return b, s.UngetByte(b)
}

// UngetByte pushes back a single byte, to be returned by the next ReadByte.
func (s *Stream) UngetByte(b byte) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.pushback = int(b)
	return nil
}

// WriteByte writes one byte.
func (s *Stream) WriteByte(b byte) error {
	return s.Write([]byte{b})
}

// Write writes a run of bytes, growing string-output buffers geometrically.
func (s *Stream) Write(p []byte) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	switch s.kind {
	case streamFileOut:
		// errw latches the first write error; once set, every subsequent
		// write through s.writer becomes a no-op instead of repeating a
		// failing syscall.
		s.writer.Write(p)
		if s.errw.Err != nil {
			return errors.Wrap(s.errw.Err, "write failed")
		}
		return nil
	case streamStringOut:
		need := s.pos + len(p)
		if need > cap(s.buf) {
			newCap := cap(s.buf) * 2
			if newCap < need {
				newCap = need
			}
			grown := make([]byte, len(s.buf), newCap)
			copy(grown, s.buf)
			s.buf = grown
		}
		if need > len(s.buf) {
			s.buf = s.buf[:need]
		}
		copy(s.buf[s.pos:], p)
		s.pos = need
		return nil
	case streamNullOut:
		return nil
	default:
		return newError(Type, "write on input stream", nil)
	}
}

// WriteString writes a Go string.
func (s *Stream) WriteString(str string) error {
	return s.Write([]byte(str))
}

// WriteInt writes a formatted integer.
func (s *Stream) WriteInt(v int) error {
	return s.WriteString(strconv.Itoa(v))
}

// WriteFloat writes a formatted float.
func (s *Stream) WriteFloat(v float64) error {
	return s.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
}

// ReadLine reads up to and including delim (io.EOF is a valid delimiter
// meaning "read to end"); the returned string excludes the delimiter.
func (s *Stream) ReadLine(delim byte) (string, error) {
	var out []byte
	for {
		b, err := s.ReadByte()
		if err != nil {
			if err == io.EOF {
				if len(out) > 0 {
					return string(out), nil
				}
				return "", io.EOF
			}
			return "", err
		}
		if b == delim {
			return string(out), nil
		}
		out = append(out, b)
	}
}

// String returns the contents of a string-output stream.
func (s *Stream) String() string { return string(s.buf) }

// Bytes returns the contents of a string-output stream.
func (s *Stream) Bytes() []byte { return s.buf }

// Tell returns the current stream position.
func (s *Stream) Tell() (int, error) {
	switch s.kind {
	case streamFileIn, streamFileOut:
		off, err := s.file.Seek(0, io.SeekCurrent)
		return int(off), errors.Wrap(err, "tell failed")
	case streamStringIn, streamStringOut:
		return s.pos, nil
	default:
		return 0, newError(Type, "tell on null stream", nil)
	}
}

// Seek-whence constants, matching os.Seek* values.
const (
	SeekSet = io.SeekStart
	SeekCur = io.SeekCurrent
	SeekEnd = io.SeekEnd
)

// Seek repositions the stream.
func (s *Stream) Seek(offset int64, whence int) error {
	switch s.kind {
	case streamFileIn:
		if s.writer != nil {
			return newError(Type, "seek on output-only file", nil)
		}
		off, err := s.file.Seek(offset, whence)
		if err != nil {
			return errors.Wrap(err, "seek failed")
		}
		s.reader.Reset(s.file)
		_ = off
		return nil
	case streamFileOut:
		off, err := s.file.Seek(offset, whence)
		if err != nil {
			return errors.Wrap(err, "seek failed")
		}
		_ = off
		return nil
	case streamStringIn:
		np, err := seekWithin(int64(s.pos), int64(s.limit), offset, whence)
		if err != nil {
			return err
		}
		s.pos = int(np)
		return nil
	case streamStringOut:
		np, err := seekWithin(int64(s.pos), int64(len(s.buf)), offset, whence)
		if err != nil {
			return err
		}
		s.pos = int(np)
		return nil
	default:
		return newError(Domain, "seek on null stream", nil)
	}
}

func seekWithin(cur, size, offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = cur
	case io.SeekEnd:
		base = size
	default:
		return 0, newError(Domain, "invalid seek whence", nil)
	}
	np := base + offset
	if np < 0 || np > size {
		return 0, newError(Domain, "seek out of range", nil)
	}
	return np, nil
}

// Flush flushes any buffered writer state.
func (s *Stream) Flush() error {
	if s.kind == streamFileOut && s.writer != nil {
		return errors.Wrap(s.writer.Flush(), "flush failed")
	}
	return nil
}

// Close releases the backing resource. Closing a process standard stream is
// a no-op (spec §4.1); closing twice is safe.
func (s *Stream) Close() error {
	if s.closed || s.isStd {
		return nil
	}
	s.closed = true
	switch s.kind {
	case streamFileIn, streamFileOut:
		if s.writer != nil {
			s.writer.Flush()
		}
		return errors.Wrap(s.file.Close(), "close failed")
	}
	return nil
}

// EOF reports whether the stream has hit end of input.
func (s *Stream) EOF() bool {
	switch s.kind {
	case streamStringIn:
		return s.pushback < 0 && s.pos >= s.limit
	case streamFileIn:
		if s.pushback >= 0 {
			return false
		}
		_, err := s.reader.Peek(1)
		return err == io.EOF
	default:
		return false
	}
}
