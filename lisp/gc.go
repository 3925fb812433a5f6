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

// GCMode selects the collector's run-time behaviour (spec §4.8).
type GCMode uint8

const (
	// GCOn collects normally, triggering a sweep every GCThreshold
	// allocations.
	GCOn GCMode = iota
	// GCPostponed temporarily suspends automatic collection; allocation
	// still grows the registry, and a manual Collect() still works.
	GCPostponed
	// GCOff disables collection entirely. This is a one-way trip: the
	// interpreter only tolerates GCOn and GCPostponed at initialisation
	// (spec §4.8).
	GCOff
)

// gc owns the allocation registry and mark-and-sweep machinery for one
// interpreter instance.
type gc struct {
	head      *Cell // intrusive singly-linked allocation registry
	count     int
	threshold int
	mode      GCMode
	sweeps    int
}

func newGC(threshold int) *gc {
	if threshold <= 0 {
		threshold = 1 << 20
	}
	return &gc{threshold: threshold}
}

// register adds a freshly allocated, collectable cell to the registry and
// triggers a sweep if the allocation threshold has been crossed.
func (g *gc) register(l *Lisp, c *Cell) {
	c.next = g.head
	g.head = c
	g.count++
	if g.mode == GCOn && g.count >= g.threshold {
		g.collect(l)
	}
}

// Collect forces a mark-and-sweep pass regardless of mode (except GCOff,
// where it is a no-op, matching the one-way disable semantics).
func (l *Lisp) Collect() {
	if l.gc.mode == GCOff {
		return
	}
	l.gc.collect(l)
}

// SetGCMode changes the collector's run-time mode. Once GCOff is selected
// it stays in effect: later calls are ignored.
func (l *Lisp) SetGCMode(m GCMode) {
	if l.gc.mode == GCOff {
		return
	}
	l.gc.mode = m
}

func (g *gc) collect(l *Lisp) {
	g.mark(l)
	g.sweep(l)
	g.count = 0
	g.sweeps++
}

func (g *gc) mark(l *Lisp) {
	var markFn func(*Cell)
	markFn = func(c *Cell) {
		if c == nil || c.uncollectable() || c.marked() {
			return
		}
		c.setMark(true)
		switch c.kind {
		case KindCons:
			markFn(c.car)
			markFn(c.cdr)
		case KindProcedure, KindFProcedure:
			markFn(c.proc.params)
			markFn(c.proc.body)
			markFn(c.proc.env)
		case KindHash:
			c.table.ForEach(func(_ string, v *Cell) *Cell {
				markFn(v)
				return nil
			})
		case KindUserDefined:
			if ut, ok := l.userTypes[c.udTag]; ok && ut.mark != nil {
				ut.mark(c.udData, markFn)
			}
		}
	}

	// Roots: top environment, symbol interner, evaluator pin stack, and
	// (transitively, via the switch above) hash contents / user mark
	// callbacks (spec §4.8).
	markFn(l.topEnv)
	l.interner.mark(markFn)
	for _, c := range l.eval.pins {
		markFn(c)
	}
}

func (g *gc) sweep(l *Lisp) {
	var kept *Cell
	for c := g.head; c != nil; {
		next := c.next
		if c.uncollectable() {
			c.next = kept
			kept = c
			c = next
			continue
		}
		if c.marked() {
			c.setMark(false)
			c.next = kept
			kept = c
		} else {
			reclaim(l, c)
		}
		c = next
	}
	g.head = kept
}

// reclaim runs the type-specific reclaimer for an unmarked cell (spec §4.8):
// close-then-drop for I/O, drop-backing-buffer for strings, user.Free for
// user cells, simple drop otherwise. Go's own GC performs the actual memory
// reclamation once the cell is unreachable from the registry; this function
// only runs the cells' side-effecting release logic.
func reclaim(l *Lisp, c *Cell) {
	switch c.kind {
	case KindIO:
		if c.stream != nil && !c.closed() {
			c.stream.Close()
			c.setClosed()
		}
	case KindUserDefined:
		if !c.closed() {
			if ut, ok := l.userTypes[c.udTag]; ok && ut.free != nil {
				ut.free(c.udData)
			}
			c.setClosed()
		}
	case KindString:
		c.str = nil
	}
}
