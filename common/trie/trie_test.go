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

package trie_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsdb2/tsdb2/common/fingerprint"
	"github.com/tsdb2/tsdb2/common/trie"
)

func TestSetInsertAndContains(t *testing.T) {
	s := trie.NewSet()
	assert.True(t, s.Insert("car"))
	assert.True(t, s.Insert("cat"))
	assert.True(t, s.Insert("dog"))
	assert.False(t, s.Insert("cat"))

	assert.True(t, s.Contains("car"))
	assert.True(t, s.Contains("cat"))
	assert.False(t, s.Contains("ca"))
	assert.False(t, s.Contains("caterpillar"))
	assert.Equal(t, 3, s.Len())
}

func TestSetSharedPrefixSplitting(t *testing.T) {
	s := trie.NewSet("car", "cart", "care")
	assert.True(t, s.Contains("car"))
	assert.True(t, s.Contains("cart"))
	assert.True(t, s.Contains("care"))
	assert.False(t, s.Contains("ca"))
	assert.Equal(t, 3, s.Len())
}

func TestSetIterationOrder(t *testing.T) {
	s := trie.NewSet("banana", "apple", "cherry", "apricot")
	assert.Equal(t, []string{"apple", "apricot", "banana", "cherry"}, s.Keys())
}

func TestSetRemoveCompactsNodes(t *testing.T) {
	s := trie.NewSet("car", "cart", "care")
	require.True(t, s.Remove("cart"))
	assert.False(t, s.Contains("cart"))
	assert.True(t, s.Contains("car"))
	assert.True(t, s.Contains("care"))
	assert.Equal(t, 2, s.Len())

	require.True(t, s.Remove("car"))
	assert.False(t, s.Contains("car"))
	assert.True(t, s.Contains("care"))
}

func TestSetEmptyKey(t *testing.T) {
	s := trie.NewSet()
	assert.True(t, s.Insert(""))
	assert.True(t, s.Contains(""))
	assert.False(t, s.Insert(""))
}

func TestMapBasics(t *testing.T) {
	m := trie.NewMap[int]()
	assert.True(t, m.Insert("one", 1))
	assert.True(t, m.Insert("two", 2))
	assert.False(t, m.Insert("one", 100))

	v, ok := m.Find("one")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	existed := m.InsertOrAssign("one", 999)
	assert.True(t, existed)
	v, _ = m.Find("one")
	assert.Equal(t, 999, v)
}

func TestMapIterationIsSortedByKey(t *testing.T) {
	m := trie.NewMap[int]()
	m.Insert("banana", 2)
	m.Insert("apple", 1)
	m.Insert("cherry", 3)

	var keys []string
	for k, v := range m.All() {
		keys = append(keys, k)
		_ = v
	}
	assert.Equal(t, []string{"apple", "banana", "cherry"}, keys)
}

func TestMapLowerUpperBound(t *testing.T) {
	m := trie.NewMap[int]()
	for i, k := range []string{"car", "cart", "care", "dog"} {
		m.Insert(k, i)
	}

	it := m.LowerBound("care")
	k, _, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, "care", k)

	it = m.UpperBound("care")
	k, _, ok = it.Next()
	require.True(t, ok)
	assert.NotEqual(t, "care", k)

	it = m.LowerBound("cas")
	k, _, ok = it.Next()
	require.True(t, ok)
	assert.Equal(t, "dog", k)

	it = m.LowerBound("zzz")
	_, _, ok = it.Next()
	assert.False(t, ok)
}

func TestReverseIterator(t *testing.T) {
	s := trie.NewSet("apple", "banana", "cherry")
	it := s.All() // forward, for comparison
	var forward []string
	for k := range it {
		forward = append(forward, k)
	}
	assert.Equal(t, []string{"apple", "banana", "cherry"}, forward)

	m := trie.NewMap[int]()
	for i, k := range []string{"apple", "banana", "cherry"} {
		m.Insert(k, i)
	}
	rit := m.ReverseIterator()
	var reverse []string
	for {
		k, _, ok := rit.Next()
		if !ok {
			break
		}
		reverse = append(reverse, k)
	}
	assert.Equal(t, []string{"cherry", "banana", "apple"}, reverse)
}

func TestFilterFullMatch(t *testing.T) {
	s := trie.NewSet("lorem", "ipsum", "dolor", "color")
	re := regexp.MustCompile(`^.*lor$`)
	var got []string
	for k := range s.Filter(re) {
		got = append(got, k)
	}
	assert.ElementsMatch(t, []string{"dolor", "color"}, got)
}

func TestFilterPrefix(t *testing.T) {
	s := trie.NewSet("lorem ipsum", "lorem dolor", "amet", "consectetur")
	re := regexp.MustCompile(`^lorem`)
	var got []string
	for k := range s.FilterPrefix(re) {
		got = append(got, k)
	}
	assert.ElementsMatch(t, []string{"lorem ipsum", "lorem dolor"}, got)
}

func TestFingerprintDeterministic(t *testing.T) {
	s1 := trie.NewSet("a", "b", "c")
	s2 := trie.NewSet("c", "b", "a")
	f1 := s1.Fingerprint(fingerprint.NewState()).Finish()
	f2 := s2.Fingerprint(fingerprint.NewState()).Finish()
	assert.Equal(t, f1, f2)
}
