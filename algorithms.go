// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package squaremap

// lowerBound returns the smallest index in [lo, hi) at which key could
// be inserted without violating the ascending order of seq[lo:hi], i.e.
// the first index i with !less(seq[i].key, key). seq[lo:hi] must
// already be sorted by less.
func lowerBound[K, V any](seq []slot[K, V], lo, hi int, key K, less func(K, K) bool) int {
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if less(seq[mid].key, key) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// upperBound returns the smallest index in [lo, hi) at which key could
// be inserted while keeping it after any equal-keyed elements, i.e. the
// first index i with less(key, seq[i].key).
func upperBound[K, V any](seq []slot[K, V], lo, hi int, key K, less func(K, K) bool) int {
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if less(key, seq[mid].key) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// mergeWithBinarySearch merges the two consecutive sorted runs
// seq[first:middle] and seq[middle:last] in place, stably: elements
// that compare equal keep their relative order, with elements
// originally in the first run preceding equal-keyed elements
// originally in the second.
//
// It moves the second run into scratch space, then walks it in
// reverse, using an upper-bound binary search against the
// (monotonically shrinking) first run to find where each scratch
// element belongs, shifting the intervening elements of the first run
// up to make room. This costs O(N log M) comparisons and O(M+N)
// moves, where N is the size of the second run and M the first (the
// square map only calls this with N ≪ M, so the log-M searches
// dominate comparisons without dominating moves).
func mergeWithBinarySearch[K, V any](seq []slot[K, V], first, middle, last int, less func(K, K) bool) {
	if middle >= last || first >= middle {
		return
	}

	n := last - middle
	buffer := make([]slot[K, V], n)
	copy(buffer, seq[middle:last])

	for i := n - 1; i >= 0; i-- {
		b := buffer[i]
		pos := upperBound(seq, first, middle, b.key, less)
		copy(seq[pos+(last-middle):last], seq[pos:middle])
		last = pos + (last - middle)
		middle = pos
		last--
		seq[last] = b
	}
}

// compactEqualNeighbors removes every run of two or more consecutive
// equal-keyed slots from the sorted range seq[first:last), dropping
// all copies rather than keeping one, since a square map represents an
// erased key as exactly such an adjacent pair once the two runs have
// been merged, and both copies must disappear. It returns the new
// logical end of the range; elements at or beyond it are left in an
// unspecified but valid state for the caller to truncate.
//
// This costs O(N) comparisons and O(D) moves, where D is the distance
// from the first duplicate to the end of the range.
func compactEqualNeighbors[K, V any](seq []slot[K, V], first, last int, less func(K, K) bool) int {
	if first == last {
		return last
	}

	for first+1 != last && less(seq[first].key, seq[first+1].key) {
		first++
	}
	if first+1 == last {
		return last
	}

	write := first
	for first+1 != last {
		// seq[first] begins a run of two or more equal-keyed slots;
		// skip all of them.
		first++
		for first+1 != last && !less(seq[first].key, seq[first+1].key) {
			first++
		}
		if first++; first == last {
			break
		}
		for first+1 != last && less(seq[first].key, seq[first+1].key) {
			seq[write] = seq[first]
			write++
			first++
		}
	}
	if first != last {
		seq[write] = seq[first]
		write++
	}
	return write
}
