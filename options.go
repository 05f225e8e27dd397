// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package squaremap

// An Option configures a Map or MapFunc at construction time.
type Option func(*options)

type options struct {
	shortShift int
	capacity   int
}

// WithShortShiftThreshold sets the constant K below which insert
// always prefers a shift-insert of the right run over rebalancing
// (see the package's amortization argument). n must be a small
// positive constant independent of map size; the zero value keeps the
// package default.
func WithShortShiftThreshold(n int) Option {
	return func(o *options) { o.shortShift = n }
}

// WithCapacity reserves room for n elements up front, avoiding the
// early reallocations a freshly constructed map would otherwise pay
// for.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

func resolveOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (m *squareMap[K, V]) applyOptions(o options) {
	if o.shortShift > 0 {
		m.shortShift = o.shortShift
	}
	if o.capacity > 0 {
		m.reserve(o.capacity)
	}
}
