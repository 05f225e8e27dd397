// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package squaremap implements an ordered map backed by a single
// contiguous slice split into at most two sorted runs.
//
// [Map][K, V] is suitable for ordered types K, while [MapFunc][K, V]
// supports arbitrary keys and an explicit comparison function.
//
// Insertion and erasure cost O(√N) amortized element moves and O(log N)
// comparisons, trading the O(log N) moves of a balanced tree for far
// better cache locality: the whole map lives in one slice, and a full
// traversal touches memory sequentially rather than chasing pointers.
//
// A Map or MapFunc value is not safe for concurrent use by multiple
// goroutines without external synchronization. Iterators (Cursor
// values) are invalidated by any call that structurally mutates the
// map: Insert, Set, Subscript on a missing key, Erase, Clear, Merge,
// or Replace.
package squaremap
