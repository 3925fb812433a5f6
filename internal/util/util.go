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

// Package util collects small, self-contained algorithms shared by the
// interpreter: string hashing, bucket-count sizing, a tiny glob matcher and a
// fast non-cryptographic PRNG. None of it depends on the lisp package so it
// can be tested in isolation.
package util

// Djb2 is Dan Bernstein's string hash, see
// <http://www.cse.yorku.ca/~oz/hash.html>. It is used by the hash table
// implementation and, through it, by the symbol interner.
func Djb2(s []byte) uint32 {
	var h uint32 = 5381
	for _, c := range s {
		h = ((h << 5) + h) + uint32(c)
	}
	return h
}

// Binlog returns the binary logarithm of v, rounded down. It is used to pick
// a power-of-two bucket count for a hash table sized to hold roughly v
// entries.
func Binlog(v uint64) uint8 {
	var r uint8
	for v >>= 1; v != 0; v >>= 1 {
		r++
	}
	return r
}

// Xorshift128Plus is the xorshift128+ pseudo-random generator. s holds the
// generator's 128 bits of state and is updated in place; the caller owns the
// seed.
//
// See <https://en.wikipedia.org/wiki/Xorshift#Xorshift.2B> and
// <http://xorshift.di.unimi.it/xorshift128plus.c>.
func Xorshift128Plus(s *[2]uint64) uint64 {
	x := s[0]
	y := s[1]
	s[0] = y
	x ^= x << 23
	x ^= x >> 17
	x ^= y ^ (y >> 26)
	s[1] = x
	return x + y
}

// Match is a small glob matcher supporting '*' (any run, including empty) and
// '?' (any single character). Adapted from the classic regex matcher at
// <http://c-faq.com/lib/regex.html>.
func Match(pat, str string) bool {
	switch {
	case pat == "":
		return str == ""
	case pat[0] == '*':
		return Match(pat[1:], str) || (str != "" && Match(pat, str[1:]))
	case str == "":
		return false
	case pat[0] == '?':
		return Match(pat[1:], str[1:])
	default:
		return pat[0] == str[0] && Match(pat[1:], str[1:])
	}
}

// VstrcatSep concatenates strs separated by sep.
func VstrcatSep(sep string, strs ...string) string {
	if len(strs) == 0 {
		return ""
	}
	n := len(sep) * (len(strs) - 1)
	for _, s := range strs {
		n += len(s)
	}
	buf := make([]byte, 0, n)
	for i, s := range strs {
		if i > 0 {
			buf = append(buf, sep...)
		}
		buf = append(buf, s...)
	}
	return string(buf)
}
