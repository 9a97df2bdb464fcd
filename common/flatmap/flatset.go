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
	"iter"

	"golang.org/x/exp/constraints"

	"github.com/tsdb2/tsdb2/common/fingerprint"
)

// FlatSet is a sorted set backed by a single contiguous slice, implemented
// on top of FlatMap[K, struct{}].
type FlatSet[K any] struct {
	m *FlatMap[K, struct{}]
}

// NewSet creates an empty FlatSet over an ordered key type.
func NewSet[K constraints.Ordered]() *FlatSet[K] {
	return &FlatSet[K]{m: New[K, struct{}]()}
}

// NewSetFunc creates an empty FlatSet using a custom ordering.
func NewSetFunc[K any](less Less[K]) *FlatSet[K] {
	return &FlatSet[K]{m: NewFunc[K, struct{}](less)}
}

// NewFrozenSet builds a FlatSet from possibly-unsorted, possibly-duplicated
// keys, sorting and deduplicating once at construction time.
func NewFrozenSet[K constraints.Ordered](keys []K) *FlatSet[K] {
	entries := make([]Entry[K, struct{}], len(keys))
	for i, k := range keys {
		entries[i] = Entry[K, struct{}]{Key: k}
	}
	return &FlatSet[K]{m: NewFrozen(entries)}
}

func (s *FlatSet[K]) Len() int               { return s.m.Len() }
func (s *FlatSet[K]) IsEmpty() bool          { return s.m.IsEmpty() }
func (s *FlatSet[K]) Contains(key K) bool    { return s.m.Contains(key) }
func (s *FlatSet[K]) Insert(key K) bool      { return s.m.Insert(key, struct{}{}) }
func (s *FlatSet[K]) Erase(key K) bool       { return s.m.Erase(key) }
func (s *FlatSet[K]) Clear()                 { s.m.Clear() }
func (s *FlatSet[K]) LowerBound(key K) int   { return s.m.LowerBound(key) }
func (s *FlatSet[K]) UpperBound(key K) int   { return s.m.UpperBound(key) }
func (s *FlatSet[K]) KeyAt(i int) K          { return s.m.EntryAt(i).Key }

// All returns an iterator over the keys in sorted order.
func (s *FlatSet[K]) All() iter.Seq[K] { return s.m.Keys() }

// Fingerprint folds the set's keys, in sorted order, into state.
func (s *FlatSet[K]) Fingerprint(state fingerprint.State) fingerprint.State {
	return fingerprint.OrderedRangeFunc(state, s.m.Len(), func(st fingerprint.State, i int) fingerprint.State {
		return fingerprint.Combine(st, s.m.EntryAt(i).Key)
	})
}
