// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package squaremap

import (
	"cmp"
	"iter"
)

// A Map is a map[K]V ordered according to K's standard Go ordering.
// The zero value of a Map is an empty Map ready to use.
type Map[K cmp.Ordered, V any] struct {
	squareMap[K, V]
}

// NewMap returns an empty Map configured with opts.
func NewMap[K cmp.Ordered, V any](opts ...Option) *Map[K, V] {
	m := new(Map[K, V])
	m.ensure()
	m.applyOptions(resolveOptions(opts))
	return m
}

func (m *Map[K, V]) ensure() {
	if m.less == nil {
		m.less = func(a, b K) bool { return a < b }
	}
}

// Len returns the number of live elements in m.
func (m *Map[K, V]) Len() int {
	m.ensure()
	return m.len()
}

// Empty reports whether m has no live elements.
func (m *Map[K, V]) Empty() bool {
	return m.Len() == 0
}

// Get returns the value associated with key and whether it was found.
func (m *Map[K, V]) Get(key K) (val V, ok bool) {
	m.ensure()
	if c, _, found := m.find(key); found {
		return m.seq[c].val, true
	}
	return val, false
}

// At returns the value associated with key, or ErrKeyNotFound if key
// is absent or was erased.
func (m *Map[K, V]) At(key K) (V, error) {
	if val, ok := m.Get(key); ok {
		return val, nil
	}
	var zero V
	return zero, errKeyNotFound(key)
}

// Count returns 1 if key is present, 0 otherwise.
func (m *Map[K, V]) Count(key K) int {
	if _, ok := m.Get(key); ok {
		return 1
	}
	return 0
}

// Find returns a cursor denoting key, and whether key was found.
func (m *Map[K, V]) Find(key K) (Cursor[K, V], bool) {
	m.ensure()
	c, a, ok := m.find(key)
	if !ok {
		return Cursor[K, V]{}, false
	}
	return newCursor(&m.squareMap, c, a), true
}

// Insert inserts key with value val, or overwrites val if key is
// already present. It reports whether a new key was inserted.
func (m *Map[K, V]) Insert(key K, val V) (Cursor[K, V], bool, error) {
	m.ensure()
	c, a, inserted, err := m.insert(key, val)
	if err != nil {
		return Cursor[K, V]{}, false, err
	}
	return newCursor(&m.squareMap, c, a), inserted, nil
}

// Set inserts key with value val, overwriting any existing value.
func (m *Map[K, V]) Set(key K, val V) {
	m.ensure()
	m.insert(key, val)
}

// Subscript returns a pointer to the value associated with key,
// inserting a zero value first if key is absent. The pointer is valid
// until the next structural mutation of m.
func (m *Map[K, V]) Subscript(key K) *V {
	m.ensure()
	if c, _, ok := m.find(key); ok {
		return &m.seq[c].val
	}
	var zero V
	c, _, _, err := m.insert(key, zero)
	if err != nil {
		panic(err)
	}
	return &m.seq[c].val
}

// Delete removes key from m, if present.
func (m *Map[K, V]) Delete(key K) {
	m.ensure()
	if c, _, ok := m.find(key); ok {
		m.erase(c)
	}
}

// Erase removes the element cur denotes, returning a cursor to the
// element that follows it, or the end cursor. Erase returns
// ErrInvalidCursor if cur does not belong to m or was produced before
// a structural mutation.
func (m *Map[K, V]) Erase(cur Cursor[K, V]) (Cursor[K, V], error) {
	m.ensure()
	if !cur.valid(&m.squareMap) {
		return Cursor[K, V]{}, ErrInvalidCursor
	}
	c, a, err := m.erase(cur.c)
	if err != nil {
		return Cursor[K, V]{}, err
	}
	return newCursor(&m.squareMap, c, a), nil
}

// Clear removes every element from m.
func (m *Map[K, V]) Clear() {
	m.ensure()
	m.clear()
}

// Merge reduces the two runs to a single flat run. Merge is
// idempotent.
func (m *Map[K, V]) Merge() {
	m.ensure()
	m.reduceToFlat()
}

// Reserve grows m's backing capacity to hold at least n elements.
func (m *Map[K, V]) Reserve(n int) {
	m.ensure()
	m.reserve(n)
}

// ShrinkToFit releases any spare backing capacity.
func (m *Map[K, V]) ShrinkToFit() {
	m.shrinkToFit()
}

// Extract removes every element from m and returns them as key/value
// pairs in their current backing-sequence order (which may include
// duplicate-marker pairs from unmerged erasures).
func (m *Map[K, V]) Extract() []KV[K, V] {
	m.ensure()
	return m.extract()
}

// Replace discards m's current contents and adopts pairs as a single
// flat run. The caller is responsible for pairs already being sorted
// by key.
func (m *Map[K, V]) Replace(pairs []KV[K, V]) {
	m.ensure()
	m.replace(pairs)
}

// ReplaceSplit is like Replace but additionally sets the split point
// to split, adopting pairs as two runs [0, split) and [split, len).
// The caller is responsible for invariants 1, 2, and 4 holding for the
// given split. split == len(pairs) is treated as split == 0.
func (m *Map[K, V]) ReplaceSplit(pairs []KV[K, V], split int) {
	m.ensure()
	m.replaceSplit(pairs, split)
}

// All returns an iterator over m in ascending key order. Structurally
// mutating m during iteration is not supported: keys may then be
// skipped or yielded more than once.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	m.ensure()
	return func(yield func(K, V) bool) {
		if len(m.seq) == 0 {
			return
		}
		c, a := m.begin()
		for c < len(m.seq) {
			if !yield(m.seq[c].key, m.seq[c].val) {
				return
			}
			m.advance(&c, &a)
		}
	}
}

// Scan returns an iterator over m limited to keys k satisfying
// lo <= k <= hi.
func (m *Map[K, V]) Scan(lo, hi K) iter.Seq2[K, V] {
	m.ensure()
	return func(yield func(K, V) bool) {
		c, a, ok := m.find(lo)
		if !ok {
			c, a = m.begin()
			for c < len(m.seq) && m.less(m.seq[c].key, lo) {
				m.advance(&c, &a)
			}
		}
		for c < len(m.seq) && !m.less(hi, m.seq[c].key) {
			if !yield(m.seq[c].key, m.seq[c].val) {
				return
			}
			m.advance(&c, &a)
		}
	}
}

// SplitPoint returns a cursor to the first slot of the right run and
// true. It returns a zero Cursor and false if m is flat, or if that
// slot holds the copy of an erased key.
func (m *Map[K, V]) SplitPoint() (Cursor[K, V], bool) {
	m.ensure()
	c, a, ok := m.splitPoint()
	if !ok {
		return Cursor[K, V]{}, false
	}
	return newCursor(&m.squareMap, c, a), true
}

// Begin returns a cursor to the smallest live key, or the end cursor
// if m is empty.
func (m *Map[K, V]) Begin() Cursor[K, V] {
	m.ensure()
	c, a := m.begin()
	return newCursor(&m.squareMap, c, a)
}

// End returns the end cursor.
func (m *Map[K, V]) End() Cursor[K, V] {
	m.ensure()
	c, a := m.end()
	return newCursor(&m.squareMap, c, a)
}

// A MapFunc is a map[K]V ordered according to an explicit comparison
// function, for key types with no natural ordering.
type MapFunc[K, V any] struct {
	squareMap[K, V]
}

// NewMapFunc returns an empty MapFunc ordered by cmp, configured with
// opts. cmp must implement a strict weak order: cmp(a, b) < 0 if a
// sorts before b, > 0 if after, 0 if equal.
func NewMapFunc[K, V any](cmp func(K, K) int, opts ...Option) *MapFunc[K, V] {
	m := new(MapFunc[K, V])
	m.less = func(a, b K) bool { return cmp(a, b) < 0 }
	m.applyOptions(resolveOptions(opts))
	return m
}

// Len returns the number of live elements in m.
func (m *MapFunc[K, V]) Len() int {
	return m.len()
}

// Empty reports whether m has no live elements.
func (m *MapFunc[K, V]) Empty() bool {
	return m.Len() == 0
}

// Get returns the value associated with key and whether it was found.
func (m *MapFunc[K, V]) Get(key K) (val V, ok bool) {
	if c, _, found := m.find(key); found {
		return m.seq[c].val, true
	}
	return val, false
}

// At returns the value associated with key, or ErrKeyNotFound if key
// is absent or was erased.
func (m *MapFunc[K, V]) At(key K) (V, error) {
	if val, ok := m.Get(key); ok {
		return val, nil
	}
	var zero V
	return zero, errKeyNotFound(key)
}

// Count returns 1 if key is present, 0 otherwise.
func (m *MapFunc[K, V]) Count(key K) int {
	if _, ok := m.Get(key); ok {
		return 1
	}
	return 0
}

// Find returns a cursor denoting key, and whether key was found.
func (m *MapFunc[K, V]) Find(key K) (Cursor[K, V], bool) {
	c, a, ok := m.find(key)
	if !ok {
		return Cursor[K, V]{}, false
	}
	return newCursor(&m.squareMap, c, a), true
}

// Insert inserts key with value val, or overwrites val if key is
// already present. It reports whether a new key was inserted.
func (m *MapFunc[K, V]) Insert(key K, val V) (Cursor[K, V], bool, error) {
	c, a, inserted, err := m.insert(key, val)
	if err != nil {
		return Cursor[K, V]{}, false, err
	}
	return newCursor(&m.squareMap, c, a), inserted, nil
}

// Set inserts key with value val, overwriting any existing value.
func (m *MapFunc[K, V]) Set(key K, val V) {
	m.insert(key, val)
}

// Subscript returns a pointer to the value associated with key,
// inserting a zero value first if key is absent. The pointer is valid
// until the next structural mutation of m.
func (m *MapFunc[K, V]) Subscript(key K) *V {
	if c, _, ok := m.find(key); ok {
		return &m.seq[c].val
	}
	var zero V
	c, _, _, err := m.insert(key, zero)
	if err != nil {
		panic(err)
	}
	return &m.seq[c].val
}

// Delete removes key from m, if present.
func (m *MapFunc[K, V]) Delete(key K) {
	if c, _, ok := m.find(key); ok {
		m.erase(c)
	}
}

// Erase removes the element cur denotes, returning a cursor to the
// element that follows it, or the end cursor.
func (m *MapFunc[K, V]) Erase(cur Cursor[K, V]) (Cursor[K, V], error) {
	if !cur.valid(&m.squareMap) {
		return Cursor[K, V]{}, ErrInvalidCursor
	}
	c, a, err := m.erase(cur.c)
	if err != nil {
		return Cursor[K, V]{}, err
	}
	return newCursor(&m.squareMap, c, a), nil
}

// Clear removes every element from m.
func (m *MapFunc[K, V]) Clear() {
	m.clear()
}

// Merge reduces the two runs to a single flat run. Merge is
// idempotent.
func (m *MapFunc[K, V]) Merge() {
	m.reduceToFlat()
}

// Reserve grows m's backing capacity to hold at least n elements.
func (m *MapFunc[K, V]) Reserve(n int) {
	m.reserve(n)
}

// ShrinkToFit releases any spare backing capacity.
func (m *MapFunc[K, V]) ShrinkToFit() {
	m.shrinkToFit()
}

// Extract removes every element from m and returns them as key/value
// pairs in their current backing-sequence order.
func (m *MapFunc[K, V]) Extract() []KV[K, V] {
	return m.extract()
}

// Replace discards m's current contents and adopts pairs as a single
// flat run.
func (m *MapFunc[K, V]) Replace(pairs []KV[K, V]) {
	m.replace(pairs)
}

// ReplaceSplit is like Replace but additionally sets the split point.
func (m *MapFunc[K, V]) ReplaceSplit(pairs []KV[K, V], split int) {
	m.replaceSplit(pairs, split)
}

// All returns an iterator over m in ascending key order.
func (m *MapFunc[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if len(m.seq) == 0 {
			return
		}
		c, a := m.begin()
		for c < len(m.seq) {
			if !yield(m.seq[c].key, m.seq[c].val) {
				return
			}
			m.advance(&c, &a)
		}
	}
}

// Scan returns an iterator over m limited to keys k satisfying
// lo <= k <= hi.
func (m *MapFunc[K, V]) Scan(lo, hi K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		c, a, ok := m.find(lo)
		if !ok {
			c, a = m.begin()
			for c < len(m.seq) && m.less(m.seq[c].key, lo) {
				m.advance(&c, &a)
			}
		}
		for c < len(m.seq) && !m.less(hi, m.seq[c].key) {
			if !yield(m.seq[c].key, m.seq[c].val) {
				return
			}
			m.advance(&c, &a)
		}
	}
}

// SplitPoint returns a cursor to the first slot of the right run and
// true. It returns a zero Cursor and false if m is flat, or if that
// slot holds the copy of an erased key.
func (m *MapFunc[K, V]) SplitPoint() (Cursor[K, V], bool) {
	c, a, ok := m.splitPoint()
	if !ok {
		return Cursor[K, V]{}, false
	}
	return newCursor(&m.squareMap, c, a), true
}

// Begin returns a cursor to the smallest live key, or the end cursor
// if m is empty.
func (m *MapFunc[K, V]) Begin() Cursor[K, V] {
	c, a := m.begin()
	return newCursor(&m.squareMap, c, a)
}

// End returns the end cursor.
func (m *MapFunc[K, V]) End() Cursor[K, V] {
	c, a := m.end()
	return newCursor(&m.squareMap, c, a)
}
