// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package squaremap

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Map and MapFunc. Use errors.Is to test
// for a specific kind; the wrapped message carries the offending key
// where one is available.
var (
	// ErrKeyNotFound is returned by At when the key is absent, or was
	// erased and is currently represented only as a duplicate-marker
	// pair skipped by iteration.
	ErrKeyNotFound = errors.New("squaremap: key not found")

	// ErrAllocation is returned when the backing sequence cannot grow
	// to accommodate a new slot.
	ErrAllocation = errors.New("squaremap: allocation failure")

	// ErrInvalidCursor is returned by Erase when given a cursor that
	// does not belong to the receiving map, or that was produced
	// before a structural mutation invalidated it.
	ErrInvalidCursor = errors.New("squaremap: invalid cursor")
)

func errKeyNotFound[K any](key K) error {
	return fmt.Errorf("%w: %v", ErrKeyNotFound, key)
}
