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

//go:build !windows

package main

import (
	"syscall"

	"github.com/pkg/errors"
	"github.com/pkg/term/termios"
)

// setRawIO switches stdin to raw mode so the built-in line editor can read
// one keystroke at a time (spec §6 / SPEC_FULL.md §2b), returning a function
// that restores the previous terminal settings.
func setRawIO() (func(), error) {
	var tios syscall.Termios
	if err := termios.Tcgetattr(0, &tios); err != nil {
		return nil, errors.Wrap(err, "Tcgetattr failed")
	}
	a := tios
	a.Iflag &^= syscall.IGNBRK | syscall.ISTRIP | syscall.IXON | syscall.IXOFF
	a.Iflag |= syscall.BRKINT | syscall.IGNPAR
	a.Lflag &^= syscall.ICANON | syscall.IEXTEN | syscall.ECHO
	a.Cc[syscall.VMIN] = 1
	a.Cc[syscall.VTIME] = 0
	if err := termios.Tcsetattr(0, termios.TCSANOW, &a); err != nil {
		termios.Tcsetattr(0, termios.TCSANOW, &tios)
		return nil, errors.Wrap(err, "Tcsetattr failed")
	}
	return func() {
		termios.Tcsetattr(0, termios.TCSANOW, &tios)
	}, nil
}
