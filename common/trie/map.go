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

package trie

import (
	"iter"
	"regexp"

	"github.com/tsdb2/tsdb2/common/fingerprint"
)

// Map is a string-keyed map implemented as a compressed trie. The zero
// value is ready to use.
type Map[V any] struct {
	root *node[V]
	size int
}

// NewMap returns an empty Map.
func NewMap[V any]() *Map[V] {
	return &Map[V]{root: newNode[V]()}
}

func (m *Map[V]) ensureRoot() *node[V] {
	if m.root == nil {
		m.root = newNode[V]()
	}
	return m.root
}

// Len returns the number of entries.
func (m *Map[V]) Len() int { return m.size }

// IsEmpty reports whether the map has no entries.
func (m *Map[V]) IsEmpty() bool { return m.size == 0 }

// Find returns the value stored under key, if any.
func (m *Map[V]) Find(key string) (V, bool) {
	if m.root == nil {
		var zero V
		return zero, false
	}
	n, ok := find(m.root, key)
	if !ok {
		var zero V
		return zero, false
	}
	return n.value, true
}

// Contains reports whether key is present.
func (m *Map[V]) Contains(key string) bool {
	_, ok := m.Find(key)
	return ok
}

// Insert adds key/value if key is not already present, reporting whether
// the insertion happened.
func (m *Map[V]) Insert(key string, value V) bool {
	inserted := insert(m.ensureRoot(), key, value)
	if inserted {
		m.size++
	}
	return inserted
}

// InsertOrAssign inserts key/value, overwriting any existing value,
// reporting whether an existing entry was overwritten.
func (m *Map[V]) InsertOrAssign(key string, value V) bool {
	existed := insertOrAssign(m.ensureRoot(), key, value)
	if !existed {
		m.size++
	}
	return existed
}

// Remove deletes key, reporting whether it was present.
func (m *Map[V]) Remove(key string) bool {
	if m.root == nil {
		return false
	}
	removed := remove(m.root, key)
	if removed {
		m.size--
	}
	return removed
}

// Clear removes all entries.
func (m *Map[V]) Clear() {
	m.root = newNode[V]()
	m.size = 0
}

// Iterator returns a forward iterator over the map's entries in ascending
// key order.
func (m *Map[V]) Iterator() *Iterator[V] { return newIterator(m.ensureRoot()) }

// ReverseIterator returns an iterator over the map's entries in descending
// key order.
func (m *Map[V]) ReverseIterator() *ReverseIterator[V] { return newReverseIterator(m.ensureRoot()) }

// LowerBound returns a forward iterator positioned at the first entry whose
// key is >= key.
func (m *Map[V]) LowerBound(key string) *Iterator[V] {
	return newSeekedIterator(m.ensureRoot(), key, false)
}

// UpperBound returns a forward iterator positioned at the first entry whose
// key is > key.
func (m *Map[V]) UpperBound(key string) *Iterator[V] {
	return newSeekedIterator(m.ensureRoot(), key, true)
}

// All returns a range-over-func iterator in ascending key order.
func (m *Map[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		it := m.Iterator()
		for {
			k, v, ok := it.Next()
			if !ok {
				return
			}
			if !yield(k, v) {
				return
			}
		}
	}
}

// Filter returns a view enumerating only the entries whose key matches re
// in full. Unlike the backing store's subtree-pruning original, this is a
// linear scan over every entry rather than a walk that skips mismatching
// subtrees outright.
func (m *Map[V]) Filter(re *regexp.Regexp) iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for k, v := range m.All() {
			loc := re.FindStringIndex(k)
			if loc != nil && loc[0] == 0 && loc[1] == len(k) {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}

// FilterPrefix returns a view enumerating only the entries whose key has a
// prefix matching re.
func (m *Map[V]) FilterPrefix(re *regexp.Regexp) iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for k, v := range m.All() {
			if loc := re.FindStringIndex(k); loc != nil && loc[0] == 0 {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}

// Fingerprint folds the map's entries, in ascending key order, into state.
func (m *Map[V]) Fingerprint(state fingerprint.State) fingerprint.State {
	state = fingerprint.Combine(state, m.size)
	for k, v := range m.All() {
		state = fingerprint.Combine(state, k, v)
	}
	return state
}
