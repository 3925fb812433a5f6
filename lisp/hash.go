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

import "github.com/moneytech/liblisp/internal/util"

// hashEntry is one chained bucket entry. Value is a *Cell so Hash can be used
// both internally (the symbol interner) and as a first-class Lisp value
// (spec §4.7). The value cell is stored as given; it is not wrapped in a
// `(key . value)` cons pair.
type hashEntry struct {
	key   string
	value *Cell
	next  *hashEntry
}

// Hash is a string-keyed open hash table with separate chaining, sized at
// creation (no automatic rehash, matching spec §4.7).
type Hash struct {
	buckets []*hashEntry
	count   int
}

// NewHash creates a hash table sized to hold roughly capacity entries,
// rounding the bucket count up to the next power of two (spec §4.7).
func NewHash(capacity int) *Hash {
	if capacity <= 0 {
		capacity = 1
	}
	n := 1 << (util.Binlog(uint64(capacity)) + 1)
	return &Hash{buckets: make([]*hashEntry, n)}
}

func (h *Hash) bucketFor(key string) int {
	return int(util.Djb2([]byte(key))) % len(h.buckets)
}

// Insert adds or replaces the value for key, copying the key string.
func (h *Hash) Insert(key string, value *Cell) {
	b := h.bucketFor(key)
	for e := h.buckets[b]; e != nil; e = e.next {
		if e.key == key {
			e.value = value
			return
		}
	}
	h.buckets[b] = &hashEntry{key: key, value: value, next: h.buckets[b]}
	h.count++
}

// Lookup returns the value for key and whether it was found.
func (h *Hash) Lookup(key string) (*Cell, bool) {
	b := h.bucketFor(key)
	for e := h.buckets[b]; e != nil; e = e.next {
		if e.key == key {
			return e.value, true
		}
	}
	return nil, false
}

// Delete removes key from the table, if present.
func (h *Hash) Delete(key string) {
	b := h.bucketFor(key)
	var prev *hashEntry
	for e := h.buckets[b]; e != nil; e = e.next {
		if e.key == key {
			if prev == nil {
				h.buckets[b] = e.next
			} else {
				prev.next = e.next
			}
			h.count--
			return
		}
		prev = e
	}
}

// Len returns the number of entries in the table.
func (h *Hash) Len() int { return h.count }

// ForEach applies fn to each key/value pair until fn returns a non-nil
// result, which ForEach then returns immediately (short-circuiting). Order is
// bucket-chain order, which is unspecified (spec §4.7/§9).
func (h *Hash) ForEach(fn func(key string, value *Cell) *Cell) *Cell {
	for _, b := range h.buckets {
		for e := b; e != nil; e = e.next {
			if r := fn(e.key, e.value); r != nil {
				return r
			}
		}
	}
	return nil
}

// Keys returns all keys in bucket-chain order.
func (h *Hash) Keys() []string {
	keys := make([]string, 0, h.count)
	h.ForEach(func(k string, _ *Cell) *Cell {
		keys = append(keys, k)
		return nil
	})
	return keys
}
