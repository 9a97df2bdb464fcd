// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package flatmap

import (
	"fmt"
	"iter"
	"sort"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"

	"github.com/tsdb2/tsdb2/common/fingerprint"
)

// Entry is a single key/value pair stored in a FlatMap, exposed rather than
// hidden because the backing slice IS the map's representation.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

// Less reports whether a sorts strictly before b. FlatMap keeps its entries
// sorted by Less at all times.
type Less[K any] func(a, b K) bool

// OrderedLess returns the natural Less for any ordered key type.
func OrderedLess[K constraints.Ordered]() Less[K] {
	return func(a, b K) bool { return a < b }
}

// FlatMap is a sorted map backed by a single contiguous slice of entries.
// The zero value is not usable; construct with New, NewFunc or NewFrozen.
type FlatMap[K any, V any] struct {
	less    Less[K]
	entries []Entry[K, V]
}

// New creates an empty FlatMap over an ordered key type, using the type's
// natural ordering.
func New[K constraints.Ordered, V any]() *FlatMap[K, V] {
	return NewFunc[K, V](OrderedLess[K]())
}

// NewFunc creates an empty FlatMap using a custom ordering.
func NewFunc[K any, V any](less Less[K]) *FlatMap[K, V] {
	return &FlatMap[K, V]{less: less}
}

// NewFrozen builds a FlatMap from entries that may be unsorted and may
// contain duplicate keys (the first occurrence of a duplicate wins), sorting
// and deduplicating them once at construction time. This mirrors the
// original's fixed_flat_map_of: meant for static, compile-time-shaped
// tables that are built once and then only read.
func NewFrozen[K constraints.Ordered, V any](entries []Entry[K, V]) *FlatMap[K, V] {
	return NewFrozenFunc(OrderedLess[K](), entries)
}

// NewFrozenFunc is NewFrozen with a custom ordering.
func NewFrozenFunc[K any, V any](less Less[K], entries []Entry[K, V]) *FlatMap[K, V] {
	sorted := slices.Clone(entries)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i].Key, sorted[j].Key) })
	deduped := sorted[:0:0]
	for i, e := range sorted {
		if i == 0 || less(sorted[i-1].Key, e.Key) {
			deduped = append(deduped, e)
		}
	}
	return &FlatMap[K, V]{less: less, entries: deduped}
}

// NewFromSorted builds a FlatMap directly from entries that the caller
// guarantees are already sorted by key with no duplicates. No verification
// is performed; passing unsorted or duplicate-keyed entries produces a
// FlatMap with undefined lookup behavior.
func NewFromSorted[K any, V any](less Less[K], entries []Entry[K, V]) *FlatMap[K, V] {
	return &FlatMap[K, V]{less: less, entries: entries}
}

// Len returns the number of entries.
func (m *FlatMap[K, V]) Len() int { return len(m.entries) }

// IsEmpty reports whether the map has no entries.
func (m *FlatMap[K, V]) IsEmpty() bool { return len(m.entries) == 0 }

// search returns the index of the first entry whose key is not less than
// key (i.e. lower_bound), and whether that entry's key equals key exactly.
func (m *FlatMap[K, V]) search(key K) (index int, found bool) {
	index = sort.Search(len(m.entries), func(i int) bool {
		return !m.less(m.entries[i].Key, key)
	})
	found = index < len(m.entries) && !m.less(key, m.entries[index].Key)
	return index, found
}

// Find returns the value for key and true if present.
func (m *FlatMap[K, V]) Find(key K) (V, bool) {
	i, ok := m.search(key)
	if !ok {
		var zero V
		return zero, false
	}
	return m.entries[i].Value, true
}

// Contains reports whether key is present.
func (m *FlatMap[K, V]) Contains(key K) bool {
	_, ok := m.search(key)
	return ok
}

// At returns the value for key, panicking if key is not present. This
// mirrors the original flat_map::at(), which LOG(FATAL)s on a missing key
// rather than returning a recoverable error: a missing key here is a
// programming bug, not an expected runtime condition.
func (m *FlatMap[K, V]) At(key K) V {
	i, ok := m.search(key)
	if !ok {
		panic(fmt.Sprintf("flatmap: key not found: %v", key))
	}
	return m.entries[i].Value
}

// Insert adds key/value if key is not already present. It reports whether
// the insertion happened; an existing entry is left untouched.
func (m *FlatMap[K, V]) Insert(key K, value V) bool {
	i, ok := m.search(key)
	if ok {
		return false
	}
	m.insertAt(i, Entry[K, V]{Key: key, Value: value})
	return true
}

// InsertOrAssign inserts key/value, overwriting any existing value for key.
// It reports whether an existing entry was overwritten.
func (m *FlatMap[K, V]) InsertOrAssign(key K, value V) bool {
	i, ok := m.search(key)
	if ok {
		m.entries[i].Value = value
		return true
	}
	m.insertAt(i, Entry[K, V]{Key: key, Value: value})
	return false
}

// TryEmplace inserts a value computed by makeValue only if key is absent,
// returning the (possibly pre-existing) value and whether it was just
// inserted.
func (m *FlatMap[K, V]) TryEmplace(key K, makeValue func() V) (V, bool) {
	i, ok := m.search(key)
	if ok {
		return m.entries[i].Value, false
	}
	value := makeValue()
	m.insertAt(i, Entry[K, V]{Key: key, Value: value})
	return value, true
}

func (m *FlatMap[K, V]) insertAt(index int, entry Entry[K, V]) {
	m.entries = append(m.entries, entry)
	copy(m.entries[index+1:], m.entries[index:])
	m.entries[index] = entry
}

// Erase removes key if present, reporting whether it was removed.
func (m *FlatMap[K, V]) Erase(key K) bool {
	i, ok := m.search(key)
	if !ok {
		return false
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	return true
}

// Clear removes all entries.
func (m *FlatMap[K, V]) Clear() { m.entries = m.entries[:0] }

// LowerBound returns the index of the first entry whose key is not less
// than key.
func (m *FlatMap[K, V]) LowerBound(key K) int {
	i, _ := m.search(key)
	return i
}

// UpperBound returns the index of the first entry whose key is greater than
// key.
func (m *FlatMap[K, V]) UpperBound(key K) int {
	return sort.Search(len(m.entries), func(i int) bool {
		return m.less(key, m.entries[i].Key)
	})
}

// EqualRange returns the [lo, hi) index range of entries matching key; for a
// FlatMap (which disallows duplicate keys) hi-lo is always 0 or 1.
func (m *FlatMap[K, V]) EqualRange(key K) (lo, hi int) {
	return m.LowerBound(key), m.UpperBound(key)
}

// At index i returns the entry at that position in sorted order.
func (m *FlatMap[K, V]) EntryAt(i int) Entry[K, V] { return m.entries[i] }

// All returns an iterator over the entries in sorted key order.
func (m *FlatMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, e := range m.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Keys returns an iterator over the keys in sorted order.
func (m *FlatMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, e := range m.entries {
			if !yield(e.Key) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the entry slice (shallow-copying keys and
// values) sharing the same comparator.
func (m *FlatMap[K, V]) Clone() *FlatMap[K, V] {
	return &FlatMap[K, V]{less: m.less, entries: slices.Clone(m.entries)}
}

// Equal reports whether two maps hold the same entries in the same order.
// As in the original, this intentionally compares the raw backing sequence
// and ignores the comparator: two FlatMaps with different orderings that
// happen to produce the same sorted sequence are equal, but the comparator
// itself never participates in the comparison.
func (m *FlatMap[K, V]) Equal(other *FlatMap[K, V], keyEqual func(a, b K) bool, valueEqual func(a, b V) bool) bool {
	if len(m.entries) != len(other.entries) {
		return false
	}
	for i, e := range m.entries {
		o := other.entries[i]
		if !keyEqual(e.Key, o.Key) || !valueEqual(e.Value, o.Value) {
			return false
		}
	}
	return true
}

// Fingerprint folds the map's entries, in their stored sorted order, into
// state. Because FlatMap's backing sequence already has a well-defined
// order, this is an ordered fold rather than a hash-then-sort, matching
// the original's `Tsdb2FingerprintValue(h, fm.rep_)` over the representation.
func (m *FlatMap[K, V]) Fingerprint(state fingerprint.State) fingerprint.State {
	return fingerprint.OrderedRangeFunc(state, len(m.entries), func(s fingerprint.State, i int) fingerprint.State {
		e := m.entries[i]
		s = fingerprint.Combine(s, e.Key)
		return fingerprint.Combine(s, e.Value)
	})
}
