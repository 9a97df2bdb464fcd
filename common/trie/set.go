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

// Set is a set of strings implemented as a compressed trie.
type Set struct {
	m *Map[struct{}]
}

// NewSet returns an empty Set, optionally pre-populated with keys.
func NewSet(keys ...string) *Set {
	s := &Set{m: NewMap[struct{}]()}
	for _, k := range keys {
		s.Insert(k)
	}
	return s
}

func (s *Set) Len() int      { return s.m.Len() }
func (s *Set) IsEmpty() bool { return s.m.IsEmpty() }

func (s *Set) Contains(key string) bool { return s.m.Contains(key) }
func (s *Set) Insert(key string) bool   { return s.m.Insert(key, struct{}{}) }
func (s *Set) Remove(key string) bool   { return s.m.Remove(key) }
func (s *Set) Clear()                   { s.m.Clear() }

// All returns a range-over-func iterator over keys in ascending order.
func (s *Set) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for k := range s.m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Keys materializes all keys in ascending order. Convenience for callers
// that don't need streaming iteration.
func (s *Set) Keys() []string {
	keys := make([]string, 0, s.Len())
	for k := range s.All() {
		keys = append(keys, k)
	}
	return keys
}

// Filter returns a view enumerating only the keys matching re in full.
//
// Example:
//
//	s := trie.NewSet("lorem", "ipsum", "dolor", "color")
//	for k := range s.Filter(regexp.MustCompile(`.*lor$`)) {
//		fmt.Println(k)
//	}
//
// prints "color" and then "dolor".
func (s *Set) Filter(re *regexp.Regexp) iter.Seq[string] {
	return func(yield func(string) bool) {
		for k := range s.m.Filter(re) {
			if !yield(k) {
				return
			}
		}
	}
}

// FilterPrefix returns a view enumerating only the keys with a prefix
// matching re.
//
// Example:
//
//	s := trie.NewSet("lorem ipsum", "lorem dolor", "amet")
//	for k := range s.FilterPrefix(regexp.MustCompile(`^lorem`)) {
//		fmt.Println(k)
//	}
//
// prints "lorem dolor" and then "lorem ipsum".
func (s *Set) FilterPrefix(re *regexp.Regexp) iter.Seq[string] {
	return func(yield func(string) bool) {
		for k := range s.m.FilterPrefix(re) {
			if !yield(k) {
				return
			}
		}
	}
}

// Fingerprint folds the set's keys, in ascending order, into state.
func (s *Set) Fingerprint(state fingerprint.State) fingerprint.State {
	return s.m.Fingerprint(state)
}
