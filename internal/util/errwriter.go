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

package util

import (
	"io"

	"github.com/pkg/errors"
)

// ErrWriter is an io.Writer wrapper that latches the first write error it
// encounters; subsequent writes become no-ops that keep returning that error.
// Handy for the printer, which emits a stream of small writes and only wants
// to check for failure once at the end.
type ErrWriter struct {
	w   io.Writer
	Err error
}

// NewErrWriter returns a new ErrWriter wrapping w.
func NewErrWriter(w io.Writer) *ErrWriter {
	return &ErrWriter{w: w}
}

func (w *ErrWriter) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}
