// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package squaremap

import "fmt"

// defaultShortShiftThreshold is the constant K below which insert
// always prefers a shift-insert over rebalancing the two runs. The
// source this package is grounded on uses 50 in debug builds and
// somewhere around 128 in release; K need only be a small positive
// constant independent of N.
const defaultShortShiftThreshold = 128

// squareMap is the shared engine behind Map and MapFunc: a slice of
// slots partitioned into at most two sorted runs, [0, split) and
// [split, len(seq)). split == 0 means the slice is a single flat
// sorted run. erased counts duplicate-key pairs, one per erasure
// inside the left run, that iteration skips over.
//
// gen is bumped on every structural mutation so that a Cursor can
// detect it was produced before the map's last mutation.
type squareMap[K, V any] struct {
	seq    []slot[K, V]
	split  int
	erased int
	less   func(K, K) bool

	shortShift int
	gen        int
}

func (m *squareMap[K, V]) equal(a, b K) bool {
	return !m.less(a, b) && !m.less(b, a)
}

func (m *squareMap[K, V]) threshold() int {
	if m.shortShift <= 0 {
		return defaultShortShiftThreshold
	}
	return m.shortShift
}

func (m *squareMap[K, V]) len() int {
	return len(m.seq) - 2*m.erased
}

// growBy extends the backing slice by delta slots, recovering from an
// allocation panic and reporting it as ErrAllocation. This is the
// single choke point through which the backing sequence grows, so the
// AllocationFailure error kind from the specification has somewhere
// to originate even though Go slices otherwise fail growth by
// panicking rather than by return value.
func (m *squareMap[K, V]) growBy(delta int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrAllocation, r)
		}
	}()
	n := len(m.seq)
	if cap(m.seq)-n < delta {
		grown := make([]slot[K, V], n, n+delta+n/2+1)
		copy(grown, m.seq)
		m.seq = grown
	}
	m.seq = m.seq[:n+delta]
	return nil
}

// insertAt shifts seq[idx:] right by one slot and stores key/val at
// idx.
func (m *squareMap[K, V]) insertAt(idx int, key K, val V) error {
	if err := m.growBy(1); err != nil {
		return err
	}
	copy(m.seq[idx+1:], m.seq[idx:len(m.seq)-1])
	m.seq[idx] = slot[K, V]{key: key, val: val}
	m.gen++
	return nil
}

// eraseAt shifts seq[idx+1:] left by one slot, removing idx.
func (m *squareMap[K, V]) eraseAt(idx int) {
	copy(m.seq[idx:], m.seq[idx+1:])
	m.seq = m.seq[:len(m.seq)-1]
	m.gen++
}

// reduceToFlat merges the two runs into one via mergeWithBinarySearch
// and, if any keys were erased, compacts away the resulting adjacent
// duplicate pairs. It is idempotent and is the operation behind both
// the public Merge and the invariant-5/invariant-6 rebalancing
// triggers inside insert and erase.
func (m *squareMap[K, V]) reduceToFlat() {
	if m.split > 0 {
		mergeWithBinarySearch(m.seq, 0, m.split, len(m.seq), m.less)
		m.split = 0
	}
	if m.erased > 0 {
		newEnd := compactEqualNeighbors(m.seq, 0, len(m.seq), m.less)
		m.seq = m.seq[:newEnd]
		m.erased = 0
	}
	m.gen++
}

// find locates key, returning cursor positions (c, a) as described in
// the package's Cursor doc: c is the slot denoting key, a is the next
// larger key in the opposite run (or, if none exists, the map's last,
// and therefore maximum, slot, which is always dereferenceable).
func (m *squareMap[K, V]) find(key K) (c, a int, ok bool) {
	n := len(m.seq)
	if m.split == 0 {
		i := lowerBound(m.seq, 0, n, key, m.less)
		if i == n || m.less(key, m.seq[i].key) {
			return 0, 0, false
		}
		return i, n - 1, true
	}

	split := m.split
	leftIt := lowerBound(m.seq, 0, split, key, m.less)
	rightIt := lowerBound(m.seq, split, n, key, m.less)
	inLeft := leftIt < split && !m.less(key, m.seq[leftIt].key)
	inRight := rightIt < n && !m.less(key, m.seq[rightIt].key)

	if inLeft == inRight {
		return 0, 0, false // erased (present in both) or absent (neither)
	}
	if inLeft {
		return leftIt, rightIt, true
	}
	if leftIt != split {
		return rightIt, leftIt, true
	}
	return rightIt, n - 1, true
}

// insert implements the specification's insert(k, v): overwrite in
// place if k is live, undo an erasure if k was erased, or insert a
// new slot into the right run, either directly (short shift) or,
// once that would move more than O(√N) elements, by flattening the
// map and reopening a minimal split with the new key and the old
// maximum as its sole two members.
func (m *squareMap[K, V]) insert(key K, val V) (c, a int, inserted bool, err error) {
	n := len(m.seq)
	split := m.split
	leftIt := lowerBound(m.seq, 0, split, key, m.less)
	rightIt := lowerBound(m.seq, split, n, key, m.less)
	inLeft := leftIt < split && !m.less(key, m.seq[leftIt].key)
	inRight := rightIt < n && !m.less(key, m.seq[rightIt].key)

	if inLeft {
		if inRight {
			m.eraseAt(rightIt)
			m.erased--
		}
		m.seq[leftIt].val = val
		return leftIt, rightIt, false, nil
	}
	if inRight {
		m.seq[rightIt].val = val
		if leftIt == split {
			leftIt = n - 1
		}
		return rightIt, leftIt, false, nil
	}

	moveDistance := n - rightIt
	rightSize := n - split
	leftIndex := leftIt
	if leftIndex == split {
		leftIndex = n // the last slot once the new key is in place
	}

	if moveDistance < m.threshold() || rightSize*rightSize*4 < split {
		if err = m.insertAt(rightIt, key, val); err != nil {
			return 0, 0, false, err
		}
		return rightIt, leftIndex, true, nil
	}

	// Rebalance: a plain shift-insert here would move Θ(N) elements.
	// Flatten the two runs, then reopen the smallest possible split:
	// the new key and the previous maximum become its only two
	// members, so the resulting right run trivially satisfies
	// invariant 5 (r=2).
	m.reduceToFlat()
	insertIdx := len(m.seq) - 1
	if err = m.insertAt(insertIdx, key, val); err != nil {
		return 0, 0, false, err
	}
	m.split = insertIdx

	aIdx := lowerBound(m.seq, 0, insertIdx, key, m.less)
	if aIdx == insertIdx {
		aIdx = len(m.seq) - 1
	}
	return insertIdx, aIdx, true, nil
}

// erase implements the specification's erase(cursor): a shift-erase
// when the position is in the right run or is the last slot of the
// left run (invariant 2 guarantees that can never itself be an
// erased-marker slot), or a duplicate-marker insertion into the right
// run when it lies strictly inside the left run.
func (m *squareMap[K, V]) erase(p int) (c, a int, err error) {
	split := m.split

	var atEnd bool
	var returnKey K

	switch {
	case split == 0:
		m.eraseAt(p)
		if p >= len(m.seq) {
			atEnd = true
		} else {
			returnKey = m.seq[p].key
		}

	case p >= split-1:
		m.eraseAt(p)
		if p < split {
			// The left run lost its last slot.
			m.split--
			split--
		}
		newN := len(m.seq)
		merged := p == 0 ||
			(p == newN && split == newN) ||
			(p == split && p > 0 && p < newN && m.less(m.seq[p-1].key, m.seq[p].key))
		if merged {
			m.split = 0
		} else if p == newN && !m.less(m.seq[split-1].key, m.seq[p-1].key) {
			// The maximum was erased and the right run's new last slot
			// no longer sorts after the left run: flatten so that the
			// maximum stays last.
			m.reduceToFlat()
		}
		if p >= newN {
			atEnd = true
		} else {
			returnKey = m.seq[p].key
		}

	default:
		key := m.seq[p].key
		insertPos := lowerBound(m.seq, m.split, len(m.seq), key, m.less)

		// The successor may lie in either run: the next slot in the
		// left run, or the right run's nearest key above the one
		// being erased, whichever sorts first.
		returnKey = m.seq[p+1].key
		if insertPos < len(m.seq) && m.less(m.seq[insertPos].key, returnKey) {
			returnKey = m.seq[insertPos].key
		}

		var zero V
		if err = m.insertAt(insertPos, key, zero); err != nil {
			return 0, 0, err
		}
		m.erased++
	}

	if m.erased > 0 && m.erased*m.erased > len(m.seq) {
		m.reduceToFlat()
	}

	if atEnd {
		e := len(m.seq)
		return e, e, nil
	}
	if fc, fa, ok := m.find(returnKey); ok {
		return fc, fa, nil
	}
	e := len(m.seq)
	return e, e, nil
}

func (m *squareMap[K, V]) begin() (c, a int) {
	if len(m.seq) == 0 {
		return 0, 0
	}
	alt := m.split
	if m.less(m.seq[alt].key, m.seq[0].key) {
		return alt, 0
	}
	if alt > 0 && !m.less(m.seq[0].key, m.seq[alt].key) {
		// seq[0] was erased and its marker heads the right run.
		c, a = 0, alt+1
		m.advance(&c, &a)
		return c, a
	}
	return 0, alt
}

func (m *squareMap[K, V]) end() (c, a int) {
	n := len(m.seq)
	return n, n
}

// advance moves a cursor to the next live element, skipping any
// erased-marker pair. See the Cursor doc comment for the invariant it
// maintains between calls.
func (m *squareMap[K, V]) advance(c, a *int) {
	initialKey := m.seq[*c].key
	for {
		if *c == *a {
			*c++
			*a = *c
			return
		}
		*c++
		if *c == *a {
			return
		}

		ck := m.seq[*c].key
		ak := m.seq[*a].key
		switch {
		case m.less(ck, ak):
			if !m.less(initialKey, ck) {
				*c = *a
			}
			return
		case m.less(ak, ck):
			if !m.less(initialKey, ck) {
				*c = *a
			}
			*c, *a = *a, *c
			return
		default:
			// ck == ak: an erased-marker pair. Step a past its copy (if
			// that exhausts the left run, only c's run remains) and
			// loop, which steps c past its own copy.
			initialKey = ck
			*a++
			if *a == m.split {
				*a = *c
			}
		}
	}
}

func (m *squareMap[K, V]) splitPoint() (c, a int, ok bool) {
	n := len(m.seq)
	if n == 0 || m.split == 0 || m.split >= n {
		return n, n, false
	}
	return m.find(m.seq[m.split].key)
}

func (m *squareMap[K, V]) clear() {
	m.seq = nil
	m.split = 0
	m.erased = 0
	m.gen++
}

func (m *squareMap[K, V]) reserve(n int) {
	if cap(m.seq) >= n {
		return
	}
	grown := make([]slot[K, V], len(m.seq), n)
	copy(grown, m.seq)
	m.seq = grown
}

func (m *squareMap[K, V]) shrinkToFit() {
	if cap(m.seq) == len(m.seq) {
		return
	}
	shrunk := make([]slot[K, V], len(m.seq))
	copy(shrunk, m.seq)
	m.seq = shrunk
}

func (m *squareMap[K, V]) replace(pairs []KV[K, V]) {
	seq := make([]slot[K, V], len(pairs))
	for i, p := range pairs {
		seq[i] = slot[K, V]{key: p.Key, val: p.Val}
	}
	m.seq = seq
	m.split = 0
	m.erased = 0
	m.gen++
}

func (m *squareMap[K, V]) replaceSplit(pairs []KV[K, V], split int) {
	m.replace(pairs)
	if split < len(pairs) {
		m.split = split
	}
}

func (m *squareMap[K, V]) extract() []KV[K, V] {
	pairs := make([]KV[K, V], len(m.seq))
	for i, s := range m.seq {
		pairs[i] = KV[K, V]{Key: s.key, Val: s.val}
	}
	m.clear()
	return pairs
}
