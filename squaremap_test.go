// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package squaremap

import (
	"cmp"
	"math/rand/v2"
	"testing"
)

// collect drains m's iterator into a slice of key/value pairs, in
// ascending key order.
func collect[K cmp.Ordered, V any](m *Map[K, V]) []KV[K, V] {
	var got []KV[K, V]
	for k, v := range m.All() {
		got = append(got, KV[K, V]{Key: k, Val: v})
	}
	return got
}

func TestEmpty(t *testing.T) {
	m := NewMap[int, bool]()
	if m.Len() != 0 || !m.Empty() {
		t.Fatalf("new map: Len=%d Empty=%v, want 0 true", m.Len(), m.Empty())
	}
	if _, ok := m.Find(42); ok {
		t.Fatal("Find on empty map found a key")
	}
	if _, err := m.At(42); err == nil {
		t.Fatal("At on empty map did not error")
	}
	if !m.Begin().Equal(m.End()) {
		t.Fatal("Begin != End on empty map")
	}
}

func TestSingleValue(t *testing.T) {
	m := NewMap[int, bool]()
	m.Set(0, false)
	if m.Len() != 1 {
		t.Fatalf("Len=%d, want 1", m.Len())
	}
	got := collect(m)
	if len(got) != 1 || got[0].Key != 0 || got[0].Val != false {
		t.Fatalf("iteration = %v, want [{0 false}]", got)
	}
	if v, ok := m.Get(0); !ok || v != false {
		t.Fatalf("Get(0) = %v, %v; want false, true", v, ok)
	}
}

func TestSortTen(t *testing.T) {
	m := NewMap[int, bool]()
	for _, k := range []int{4, 3, 2, 7, 9, 1, 6, 8, 10, 5} {
		m.Set(k, false)
	}
	if m.Len() != 10 {
		t.Fatalf("Len=%d, want 10", m.Len())
	}
	got := collect(m)
	for i, kv := range got {
		if kv.Key != i+1 {
			t.Fatalf("iteration[%d].Key = %d, want %d", i, kv.Key, i+1)
		}
	}
	for k := 1; k <= 10; k++ {
		if m.Count(k) != 1 {
			t.Fatalf("Count(%d) = %d, want 1", k, m.Count(k))
		}
	}
}

func TestFindThenScan(t *testing.T) {
	keys := []int{10, 5, 12, 4, 3, 2, 9, 14, 15, 8, 1, 13, 6, 11, 7}
	m := NewMap[int, bool]()
	for _, k := range keys {
		m.Set(k, true)
	}
	for _, k := range keys {
		cur, ok := m.Find(k)
		if !ok {
			t.Fatalf("Find(%d) not found", k)
		}
		for want := k; ; want++ {
			if want > 15 {
				if cur.Ok() {
					t.Fatalf("from %d: cursor still live past 15", k)
				}
				break
			}
			if !cur.Ok() || cur.Key() != want {
				t.Fatalf("from %d: got key %v (ok=%v), want %d", k, safeKey(cur), cur.Ok(), want)
			}
			cur.Next()
		}
	}
}

func safeKey(cur Cursor[int, bool]) any {
	if !cur.Ok() {
		return "<end>"
	}
	return cur.Key()
}

// TestSieve reproduces the sieve of Eratosthenes to 1000 against a
// Map[int,bool], relying only on Set, Get, and iteration.
func TestSieve(t *testing.T) {
	order := rand.New(rand.NewPCG(1, 2)).Perm(1000)
	m := NewMap[int, bool]()
	for _, i := range order {
		m.Set(i+1, true)
	}
	m.Set(1, false)
	for d := 2; d*d <= 1000; d++ {
		v, ok := m.Get(d)
		if !ok || !v {
			continue
		}
		for j := 2 * d; j <= 1000; j += d {
			m.Set(j, false)
		}
	}
	sum := 0
	for k, v := range m.All() {
		if v {
			sum += k
		}
	}
	if sum != 76127 {
		t.Fatalf("sum of primes to 1000 = %d, want 76127", sum)
	}
}

func TestEraseAllOddThenReinsert(t *testing.T) {
	const n = 4000 // comfortably above the default short-shift threshold
	m := NewMap[int, bool]()
	for k := 1; k <= n; k++ {
		m.Set(k, k%2 == 0)
	}
	for k := 1; k <= n; k += 2 {
		cur, ok := m.Find(k)
		if !ok {
			t.Fatalf("Find(%d) before erase: not found", k)
		}
		if _, err := m.Erase(cur); err != nil {
			t.Fatalf("Erase(%d): %v", k, err)
		}
	}
	if m.Len() != n/2 {
		t.Fatalf("Len=%d, want %d", m.Len(), n/2)
	}
	for k := 1; k <= n; k++ {
		_, ok := m.Find(k)
		wantOk := k%2 == 0
		if ok != wantOk {
			t.Fatalf("Find(%d) after erase = %v, want %v", k, ok, wantOk)
		}
	}
	for k := 1; k <= n; k += 2 {
		m.Set(k, true)
	}
	if m.Len() != n {
		t.Fatalf("Len after reinsert=%d, want %d", m.Len(), n)
	}
	for k := 1; k <= n; k++ {
		v, ok := m.Get(k)
		if !ok {
			t.Fatalf("Get(%d) after reinsert: not found", k)
		}
		if !v {
			t.Fatalf("Get(%d) after reinsert = %v, want true", k, v)
		}
	}
}

func TestExtractReplaceRoundTrip(t *testing.T) {
	m := NewMap[int, string]()
	for _, k := range []int{5, 1, 4, 2, 3} {
		m.Set(k, "v")
	}
	before := collect(m)
	pairs := m.Extract()
	if m.Len() != 0 {
		t.Fatalf("Len after Extract=%d, want 0", m.Len())
	}
	m.Replace(pairs)
	after := collect(m)
	if len(before) != len(after) {
		t.Fatalf("len mismatch: %d vs %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("pair %d: before=%v after=%v", i, before[i], after[i])
		}
	}
}

func TestMergeIdempotent(t *testing.T) {
	m := NewMap[int, int]()
	for i := 0; i < 500; i++ {
		m.Set(i, i)
	}
	m.Merge()
	first := collect(m)
	m.Merge()
	second := collect(m)
	if len(first) != len(second) {
		t.Fatalf("len changed across idempotent Merge: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("pair %d changed across idempotent Merge: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestInsertReportsInserted(t *testing.T) {
	m := NewMap[int, int]()
	_, inserted, err := m.Insert(1, 10)
	if err != nil || !inserted {
		t.Fatalf("first Insert(1): inserted=%v err=%v, want true, nil", inserted, err)
	}
	_, inserted, err = m.Insert(1, 20)
	if err != nil || inserted {
		t.Fatalf("second Insert(1): inserted=%v err=%v, want false, nil", inserted, err)
	}
	v, _ := m.Get(1)
	if v != 20 {
		t.Fatalf("Get(1) = %d, want 20 (overwrite)", v)
	}
}

// TestRandomAgainstReference inserts and erases a random sequence of
// keys against m and a reference Go map, and checks their live
// contents agree after every operation.
func TestRandomAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	m := NewMap[int, int]()
	ref := make(map[int]int)

	for i := 0; i < 20000; i++ {
		k := rng.IntN(500)
		if rng.IntN(3) == 0 {
			if cur, ok := m.Find(k); ok {
				if _, err := m.Erase(cur); err != nil {
					t.Fatalf("Erase(%d): %v", k, err)
				}
				delete(ref, k)
			}
			continue
		}
		v := rng.IntN(1 << 30)
		m.Set(k, v)
		ref[k] = v
	}

	if m.Len() != len(ref) {
		t.Fatalf("Len=%d, want %d", m.Len(), len(ref))
	}
	for k, want := range ref {
		got, ok := m.Get(k)
		if !ok || got != want {
			t.Fatalf("Get(%d) = %v, %v; want %v, true", k, got, ok, want)
		}
	}

	prev := -1
	count := 0
	for k := range m.All() {
		if k <= prev {
			t.Fatalf("iteration out of order: %d after %d", k, prev)
		}
		prev = k
		count++
		if _, ok := ref[k]; !ok {
			t.Fatalf("iteration yielded key %d absent from reference", k)
		}
	}
	if count != len(ref) {
		t.Fatalf("iteration yielded %d keys, want %d", count, len(ref))
	}
}

func TestMapFuncReverseOrder(t *testing.T) {
	m := NewMapFunc[int, int](func(a, b int) int { return cmp.Compare(b, a) })
	for _, k := range []int{4, 3, 2, 7, 9, 1, 6, 8, 10, 5} {
		m.Set(k, k)
	}
	var got []int
	for k := range m.All() {
		got = append(got, k)
	}
	for i := 0; i < len(got)-1; i++ {
		if got[i] < got[i+1] {
			t.Fatalf("MapFunc with reversed comparator not descending: %v", got)
		}
	}
	if len(got) != 10 {
		t.Fatalf("len=%d, want 10", len(got))
	}
}

func TestSubscriptDoesNotOverwriteLiveKey(t *testing.T) {
	m := NewMap[int, int]()
	m.Set(5, 99)
	p := m.Subscript(5)
	if *p != 99 {
		t.Fatalf("Subscript(5) = %d, want 99 (existing value preserved)", *p)
	}
	*p = 100
	v, _ := m.Get(5)
	if v != 100 {
		t.Fatalf("Get(5) after Subscript write = %d, want 100", v)
	}
}

func TestSubscriptInsertsAbsentKey(t *testing.T) {
	m := NewMap[int, int]()
	p := m.Subscript(7)
	if *p != 0 {
		t.Fatalf("Subscript(7) on absent key = %d, want zero value", *p)
	}
	if m.Len() != 1 {
		t.Fatalf("Len after Subscript=%d, want 1", m.Len())
	}
}

func TestEraseInvalidatesCursor(t *testing.T) {
	m := NewMap[int, int]()
	for i := 0; i < 10; i++ {
		m.Set(i, i)
	}
	cur, ok := m.Find(3)
	if !ok {
		t.Fatal("Find(3) not found")
	}
	m.Set(1000, 1000) // structural mutation, bumps gen
	if _, err := m.Erase(cur); err != ErrInvalidCursor {
		t.Fatalf("Erase with stale cursor = %v, want ErrInvalidCursor", err)
	}
}

// TestEraseInteriorLeftCrossesIntoRightRun erases a key strictly
// inside the left run whose true successor lives in the right run,
// ahead of the erased key's own left-run neighbor, then scans forward
// from the cursor Erase returns to check the crossing is followed
// correctly.
func TestEraseInteriorLeftCrossesIntoRightRun(t *testing.T) {
	m := NewMap[int, int]()
	// left run [1,2,5,8], right run [3,9]; 3 sorts between the erased
	// key 2 and its left-run neighbor 5.
	pairs := []KV[int, int]{{1, 1}, {2, 2}, {5, 5}, {8, 8}, {3, 3}, {9, 9}}
	m.ReplaceSplit(pairs, 4)

	cur, ok := m.Find(2)
	if !ok {
		t.Fatal("Find(2) not found")
	}
	next, err := m.Erase(cur)
	if err != nil {
		t.Fatalf("Erase(2): %v", err)
	}

	var got []int
	for c := next; c.Ok(); c.Next() {
		got = append(got, c.Key())
	}
	want := []int{3, 5, 8, 9}
	if len(got) != len(want) {
		t.Fatalf("scan after erase = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("scan after erase = %v, want %v", got, want)
		}
	}
	if m.Count(2) != 0 {
		t.Fatalf("Count(2) after erase = %d, want 0", m.Count(2))
	}
}

func TestReplaceSplitPreservesLookup(t *testing.T) {
	m := NewMap[int, int]()
	pairs := []KV[int, int]{{1, 1}, {2, 2}, {4, 4}, {3, 3}, {5, 5}}
	m.ReplaceSplit(pairs, 3)
	if _, ok := m.SplitPoint(); !ok {
		t.Fatal("SplitPoint not found after ReplaceSplit")
	}
	for _, kv := range pairs {
		v, ok := m.Get(kv.Key)
		if !ok || v != kv.Val {
			t.Fatalf("Get(%d) = %v, %v; want %v, true", kv.Key, v, ok, kv.Val)
		}
	}
	m.Merge()
	if _, ok := m.SplitPoint(); ok {
		t.Fatal("SplitPoint still found after Merge")
	}
}
