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

package reflect

import (
	"fmt"
	"sort"

	"github.com/tsdb2/tsdb2/common/flatmap"
	"github.com/tsdb2/tsdb2/common/trie"
)

// mapBackend is the v-table a MapHandle binds to at construction time: one
// small set of closures per backing shape, rather than one FieldDescriptor
// arm per shape. reserve is a no-op on every backend here because none of
// them pre-size; it exists so the interface matches the uniform API
// described for the reflective map handle.
type mapBackend interface {
	Len() int
	Clear()
	Reserve(n int)
	Contains(key any) bool
	Find(key any) (any, bool)
	Erase(key any) bool
	Set(key, value any)
	IsOrdered() bool
	All() func(yield func(key, value any) bool)
}

// MapHandle is a field handle bound to a map field on a specific Message
// instance.
type MapHandle struct {
	keyType FieldType
	backend mapBackend
}

func newMapBackend(shape MapShape) mapBackend {
	switch shape {
	case ShapeHashMap, ShapeFlatHashMap, ShapeNodeHashMap:
		return &hashMapBackend{entries: make(map[any]any)}
	case ShapeSortedMap, ShapeBTreeMap:
		return &sortedMapBackend{entries: make(map[any]any)}
	case ShapeFlatMap:
		return &flatMapBackend{m: flatmap.NewFunc[any, any](lessKey)}
	case ShapeTrieMap:
		return &trieMapBackend{m: trie.NewMap[any]()}
	default:
		panic(fmt.Sprintf("reflect: unknown map shape %v", shape))
	}
}

// IsOrdered reports whether iteration yields keys in ascending order.
func (h *MapHandle) IsOrdered() bool { return h.backend.IsOrdered() }

// Len returns the number of entries.
func (h *MapHandle) Len() int { return h.backend.Len() }

// Empty reports whether the map has no entries.
func (h *MapHandle) Empty() bool { return h.backend.Len() == 0 }

// Clear removes all entries.
func (h *MapHandle) Clear() { h.backend.Clear() }

// Reserve is a no-op hint; present for API parity with reserving shapes the
// original supported and this module does not implement.
func (h *MapHandle) Reserve(n int) { h.backend.Reserve(n) }

// Contains reports whether key is present. Fails with FailedPrecondition if
// key's concrete type doesn't match the map's declared key type.
func (h *MapHandle) Contains(key any) (bool, error) {
	if err := h.checkKeyType(key); err != nil {
		return false, err
	}
	return h.backend.Contains(key), nil
}

// Find looks up key, returning the stored value and whether it was found.
func (h *MapHandle) Find(key any) (any, bool, error) {
	if err := h.checkKeyType(key); err != nil {
		return nil, false, err
	}
	v, ok := h.backend.Find(key)
	return v, ok, nil
}

// Erase removes key if present, reporting whether it was found.
func (h *MapHandle) Erase(key any) (bool, error) {
	if err := h.checkKeyType(key); err != nil {
		return false, err
	}
	return h.backend.Erase(key), nil
}

// Set inserts or overwrites the entry for key.
func (h *MapHandle) Set(key, value any) error {
	if err := h.checkKeyType(key); err != nil {
		return err
	}
	h.backend.Set(key, value)
	return nil
}

// All iterates all (key, value) pairs. Order is ascending when IsOrdered,
// unspecified otherwise.
func (h *MapHandle) All() func(yield func(key, value any) bool) {
	return h.backend.All()
}

func (h *MapHandle) checkKeyType(key any) error {
	if !keyMatchesType(key, h.keyType) {
		return newFailedPrecondition("reflect: map key %v does not match declared key type %s", key, h.keyType)
	}
	return nil
}

func keyMatchesType(key any, typ FieldType) bool {
	switch typ {
	case Int32:
		_, ok := key.(int32)
		return ok
	case Uint32:
		_, ok := key.(uint32)
		return ok
	case Int64:
		_, ok := key.(int64)
		return ok
	case Uint64:
		_, ok := key.(uint64)
		return ok
	case Bool:
		_, ok := key.(bool)
		return ok
	case String:
		_, ok := key.(string)
		return ok
	default:
		return false
	}
}

// lessKey orders the admissible map key types ({int32, uint32, int64,
// uint64, bool, string}) for the ordered backends.
func lessKey(a, b any) bool {
	switch av := a.(type) {
	case int32:
		return av < b.(int32)
	case uint32:
		return av < b.(uint32)
	case int64:
		return av < b.(int64)
	case uint64:
		return av < b.(uint64)
	case bool:
		return !av && b.(bool)
	case string:
		return av < b.(string)
	default:
		panic(fmt.Sprintf("reflect: unorderable map key %v (%T)", a, a))
	}
}

// hashMapBackend backs ShapeHashMap, ShapeFlatHashMap and ShapeNodeHashMap:
// Go exposes no memory-layout distinction among the three, so all three
// collapse onto a plain map.
type hashMapBackend struct {
	entries map[any]any
}

func (b *hashMapBackend) Len() int       { return len(b.entries) }
func (b *hashMapBackend) Clear()         { b.entries = make(map[any]any) }
func (b *hashMapBackend) Reserve(int)    {}
func (b *hashMapBackend) IsOrdered() bool { return false }

func (b *hashMapBackend) Contains(key any) bool {
	_, ok := b.entries[key]
	return ok
}

func (b *hashMapBackend) Find(key any) (any, bool) {
	v, ok := b.entries[key]
	return v, ok
}

func (b *hashMapBackend) Erase(key any) bool {
	if _, ok := b.entries[key]; !ok {
		return false
	}
	delete(b.entries, key)
	return true
}

func (b *hashMapBackend) Set(key, value any) { b.entries[key] = value }

func (b *hashMapBackend) All() func(yield func(key, value any) bool) {
	return func(yield func(key, value any) bool) {
		for k, v := range b.entries {
			if !yield(k, v) {
				return
			}
		}
	}
}

// sortedMapBackend backs ShapeSortedMap and ShapeBTreeMap: a plain map plus
// a key slice kept sorted on every mutation.
type sortedMapBackend struct {
	entries map[any]any
	keys    []any
}

func (b *sortedMapBackend) Len() int        { return len(b.entries) }
func (b *sortedMapBackend) Clear()          { b.entries = make(map[any]any); b.keys = nil }
func (b *sortedMapBackend) Reserve(int)     {}
func (b *sortedMapBackend) IsOrdered() bool { return true }

func (b *sortedMapBackend) Contains(key any) bool {
	_, ok := b.entries[key]
	return ok
}

func (b *sortedMapBackend) Find(key any) (any, bool) {
	v, ok := b.entries[key]
	return v, ok
}

func (b *sortedMapBackend) Erase(key any) bool {
	if _, ok := b.entries[key]; !ok {
		return false
	}
	delete(b.entries, key)
	idx := sort.Search(len(b.keys), func(i int) bool { return !lessKey(b.keys[i], key) })
	if idx < len(b.keys) && b.keys[idx] == key {
		b.keys = append(b.keys[:idx], b.keys[idx+1:]...)
	}
	return true
}

func (b *sortedMapBackend) Set(key, value any) {
	if _, ok := b.entries[key]; !ok {
		idx := sort.Search(len(b.keys), func(i int) bool { return !lessKey(b.keys[i], key) })
		b.keys = append(b.keys, nil)
		copy(b.keys[idx+1:], b.keys[idx:])
		b.keys[idx] = key
	}
	b.entries[key] = value
}

func (b *sortedMapBackend) All() func(yield func(key, value any) bool) {
	return func(yield func(key, value any) bool) {
		for _, k := range b.keys {
			if !yield(k, b.entries[k]) {
				return
			}
		}
	}
}

// flatMapBackend backs ShapeFlatMap with common/flatmap.FlatMap.
type flatMapBackend struct {
	m *flatmap.FlatMap[any, any]
}

func (b *flatMapBackend) Len() int        { return b.m.Len() }
func (b *flatMapBackend) Clear()          { b.m.Clear() }
func (b *flatMapBackend) Reserve(int)     {}
func (b *flatMapBackend) IsOrdered() bool { return true }

func (b *flatMapBackend) Contains(key any) bool { return b.m.Contains(key) }

func (b *flatMapBackend) Find(key any) (any, bool) { return b.m.Find(key) }

func (b *flatMapBackend) Erase(key any) bool { return b.m.Erase(key) }

func (b *flatMapBackend) Set(key, value any) { b.m.InsertOrAssign(key, value) }

func (b *flatMapBackend) All() func(yield func(key, value any) bool) {
	return func(yield func(key, value any) bool) {
		for k, v := range b.m.All() {
			if !yield(k, v) {
				return
			}
		}
	}
}

// trieMapBackend backs ShapeTrieMap with common/trie.Map, which requires
// string keys.
type trieMapBackend struct {
	m *trie.Map[any]
}

func (b *trieMapBackend) Len() int        { return b.m.Len() }
func (b *trieMapBackend) Clear()          { b.m.Clear() }
func (b *trieMapBackend) Reserve(int)     {}
func (b *trieMapBackend) IsOrdered() bool { return true }

func (b *trieMapBackend) Contains(key any) bool { return b.m.Contains(key.(string)) }

func (b *trieMapBackend) Find(key any) (any, bool) { return b.m.Find(key.(string)) }

func (b *trieMapBackend) Erase(key any) bool { return b.m.Remove(key.(string)) }

func (b *trieMapBackend) Set(key, value any) { b.m.InsertOrAssign(key.(string), value) }

func (b *trieMapBackend) All() func(yield func(key, value any) bool) {
	return func(yield func(key, value any) bool) {
		for k, v := range b.m.All() {
			if !yield(k, v) {
				return
			}
		}
	}
}
