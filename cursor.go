// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package squaremap

// A Cursor is a forward iterator over a Map or MapFunc. It carries two
// positions into the owning map's backing sequence: c, the slot it
// currently denotes, and a, the next larger slot in whichever run c
// does not currently occupy (possibly the copy of an erased key, which
// Next skips), or the map's own maximum slot if no such element
// exists. Cursor is deliberately small and copyable (the two
// positions, a generation count and a pointer), close to the shape of
// the two-iterator design it is grounded on.
//
// A Cursor is invalidated by any call that structurally mutates the
// map it was obtained from; using an invalidated Cursor's Key, Val, or
// Next is undefined, and passing one to Erase returns ErrInvalidCursor
// when the map can detect the staleness.
type Cursor[K, V any] struct {
	c, a int
	m    *squareMap[K, V]
	gen  int
}

func newCursor[K, V any](m *squareMap[K, V], c, a int) Cursor[K, V] {
	return Cursor[K, V]{c: c, a: a, m: m, gen: m.gen}
}

// Ok reports whether the cursor denotes a live element, i.e. is not
// the end cursor.
func (cur Cursor[K, V]) Ok() bool {
	return cur.c < len(cur.m.seq)
}

// Key returns the key the cursor denotes. Key panics if the cursor is
// the end cursor.
func (cur Cursor[K, V]) Key() K {
	return cur.m.seq[cur.c].key
}

// Val returns the value the cursor denotes. Val panics if the cursor
// is the end cursor.
func (cur Cursor[K, V]) Val() V {
	return cur.m.seq[cur.c].val
}

// Equal reports whether two cursors denote the same slot. Cursors from
// different maps are never equal.
func (cur Cursor[K, V]) Equal(other Cursor[K, V]) bool {
	return cur.m == other.m && cur.c == other.c
}

// Next advances the cursor to the next live element in key order,
// skipping any erased-marker pair. Calling Next on the end cursor is
// undefined.
func (cur *Cursor[K, V]) Next() {
	cur.m.advance(&cur.c, &cur.a)
}

func (cur Cursor[K, V]) valid(m *squareMap[K, V]) bool {
	return cur.m == m && cur.gen == m.gen
}
