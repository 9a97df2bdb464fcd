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

package flatmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsdb2/tsdb2/common/flatmap"
)

func TestInsertAndFind(t *testing.T) {
	m := flatmap.New[string, int]()
	assert.True(t, m.Insert("b", 2))
	assert.True(t, m.Insert("a", 1))
	assert.True(t, m.Insert("c", 3))
	assert.False(t, m.Insert("a", 100))

	v, ok := m.Find("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = m.Find("z")
	assert.False(t, ok)

	assert.Equal(t, 3, m.Len())
}

func TestSortedOrder(t *testing.T) {
	m := flatmap.New[int, string]()
	for _, k := range []int{5, 3, 1, 4, 2} {
		m.Insert(k, "")
	}
	var keys []int
	for k := range m.Keys() {
		keys = append(keys, k)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, keys)
}

func TestInsertOrAssign(t *testing.T) {
	m := flatmap.New[string, int]()
	existed := m.InsertOrAssign("a", 1)
	assert.False(t, existed)
	existed = m.InsertOrAssign("a", 2)
	assert.True(t, existed)
	v, _ := m.Find("a")
	assert.Equal(t, 2, v)
}

func TestTryEmplace(t *testing.T) {
	m := flatmap.New[string, int]()
	calls := 0
	makeValue := func() int { calls++; return 42 }

	v, inserted := m.TryEmplace("a", makeValue)
	assert.True(t, inserted)
	assert.Equal(t, 42, v)

	v, inserted = m.TryEmplace("a", makeValue)
	assert.False(t, inserted)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)
}

func TestErase(t *testing.T) {
	m := flatmap.New[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)
	assert.True(t, m.Erase("a"))
	assert.False(t, m.Erase("a"))
	assert.Equal(t, 1, m.Len())
	assert.False(t, m.Contains("a"))
	assert.True(t, m.Contains("b"))
}

func TestAtPanicsOnMissingKey(t *testing.T) {
	m := flatmap.New[string, int]()
	m.Insert("a", 1)
	assert.Equal(t, 1, m.At("a"))
	assert.Panics(t, func() { m.At("missing") })
}

func TestLowerUpperBound(t *testing.T) {
	m := flatmap.New[int, string]()
	for _, k := range []int{10, 20, 30, 40} {
		m.Insert(k, "")
	}
	assert.Equal(t, 1, m.LowerBound(15))
	assert.Equal(t, 1, m.UpperBound(15))
	assert.Equal(t, 1, m.LowerBound(20))
	assert.Equal(t, 2, m.UpperBound(20))
}

func TestNewFrozenDeduplicatesKeepingFirst(t *testing.T) {
	m := flatmap.NewFrozen([]flatmap.Entry[string, int]{
		{Key: "b", Value: 2},
		{Key: "a", Value: 1},
		{Key: "a", Value: 999},
	})
	assert.Equal(t, 2, m.Len())
	v, _ := m.Find("a")
	assert.Equal(t, 1, v)
}

func TestFlatSet(t *testing.T) {
	s := flatmap.NewSet[string]()
	assert.True(t, s.Insert("x"))
	assert.False(t, s.Insert("x"))
	assert.True(t, s.Contains("x"))
	assert.True(t, s.Erase("x"))
	assert.False(t, s.Contains("x"))
}

func TestFlatSetSortedIteration(t *testing.T) {
	s := flatmap.NewFrozenSet([]int{3, 1, 2, 1})
	var got []int
	for k := range s.All() {
		got = append(got, k)
	}
	assert.Equal(t, []int{1, 2, 3}, got)
}
