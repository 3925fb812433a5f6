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

//go:build windows

package main

import "github.com/pkg/errors"

// setRawIO is unsupported on Windows; the REPL falls back to plain
// line-buffered stream reads (-noraw behavior), matching the teacher's
// cmd/retro/term_windows.go stub.
func setRawIO() (func(), error) {
	return nil, errors.New("raw IO not supported")
}
