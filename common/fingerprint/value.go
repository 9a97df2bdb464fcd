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

package fingerprint

import (
	"math"
	"reflect"
	"sort"
)

// Fingerprinter is implemented by types that know how to fold themselves
// into a fingerprinting [State]. It plays the role the original framework
// gives to a free function named `Tsdb2FingerprintValue`: Go has no
// argument-dependent lookup, so the hook is a method instead.
type Fingerprinter interface {
	Fingerprint(State) State
}

// Of computes the fingerprint of a single value. value may implement
// [Fingerprinter], be one of the built-in kinds handled natively (integers,
// floats, bool, strings, byte slices), or be a slice, array, map, struct, or
// pointer composed of such values.
func Of(value any) uint64 {
	return fingerprintValue(NewState(), value).Finish()
}

func fingerprintValue(state State, value any) State {
	if value == nil {
		return state.Add(0)
	}
	if f, ok := value.(Fingerprinter); ok {
		return f.Fingerprint(state)
	}
	switch v := value.(type) {
	case bool:
		if v {
			return state.Add(1)
		}
		return state.Add(0)
	case int:
		return state.Add(uint64(v))
	case int8:
		return state.Add(uint64(v))
	case int16:
		return state.Add(uint64(v))
	case int32:
		return state.Add(uint64(v))
	case int64:
		return state.Add(uint64(v))
	case uint:
		return state.Add(uint64(v))
	case uint8:
		return state.Add(uint64(v))
	case uint16:
		return state.Add(uint64(v))
	case uint32:
		return state.Add(uint64(v))
	case uint64:
		return state.Add(v)
	case uintptr:
		return state.Add(uint64(v))
	case float32:
		return state.AddBytes(float32Bytes(v))
	case float64:
		return state.AddBytes(float64Bytes(v))
	case string:
		state = state.Add(uint64(len(v)))
		return state.AddBytes([]byte(v))
	case []byte:
		state = state.Add(uint64(len(v)))
		return state.AddBytes(v)
	}
	return fingerprintReflect(state, reflect.ValueOf(value))
}

func float32Bytes(v float32) []byte {
	bits := math.Float32bits(v)
	return []byte{byte(bits), byte(bits >> 8), byte(bits >> 16), byte(bits >> 24)}
}

func float64Bytes(v float64) []byte {
	bits := math.Float64bits(v)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(bits >> (8 * i))
	}
	return b
}

// fingerprintReflect is the generic fallback for composite kinds that have no
// native case in fingerprintValue and do not implement Fingerprinter
// directly on the concrete type (e.g. a typedef'd slice, a plain struct, or
// a pointer to either).
func fingerprintReflect(state State, rv reflect.Value) State {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return state.Add(0)
		}
		state = state.Add(1)
		return fingerprintValue(state, rv.Elem().Interface())

	case reflect.Slice, reflect.Array:
		return OrderedRangeFunc(state, rv.Len(), func(s State, i int) State {
			return fingerprintValue(s, rv.Index(i).Interface())
		})

	case reflect.Map:
		keys := rv.MapKeys()
		digests := make([]uint64, len(keys))
		for i, k := range keys {
			pairState := fingerprintValue(NewState(), k.Interface())
			pairState = fingerprintValue(pairState, rv.MapIndex(k).Interface())
			digests[i] = pairState.Finish()
		}
		sort.Slice(digests, func(i, j int) bool { return digests[i] < digests[j] })
		return OrderedRangeFunc(state, len(digests), func(s State, i int) State {
			return s.Add(digests[i])
		})

	case reflect.Struct:
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).PkgPath != "" {
				continue // unexported
			}
			state = fingerprintValue(state, rv.Field(i).Interface())
		}
		return state

	default:
		// Best effort: fold in the kind tag so distinct unsupported types
		// don't silently collide.
		return state.Add(uint64(rv.Kind()))
	}
}

// OrderedRange folds a sequence whose iteration order is part of its
// identity (slices, arrays, sorted containers) into state: the length
// followed by each element in order.
func OrderedRange[T any](state State, items []T) State {
	return OrderedRangeFunc(state, len(items), func(s State, i int) State {
		return fingerprintValue(s, items[i])
	})
}

// OrderedRangeFunc is the index-driven form of OrderedRange, used when the
// elements aren't already materialized into a slice.
func OrderedRangeFunc(state State, length int, at func(State, int) State) State {
	state = state.Add(uint64(length))
	for i := 0; i < length; i++ {
		state = at(state, i)
	}
	return state
}

// UnorderedRange folds a sequence whose iteration order is NOT part of its
// identity (hash sets, hash maps) into state deterministically: each
// element is fingerprinted independently, the resulting digests are sorted,
// and the sorted digests are folded as an OrderedRange.
func UnorderedRange[T any](state State, items []T) State {
	digests := make([]uint64, len(items))
	for i, item := range items {
		digests[i] = Of(item)
	}
	sort.Slice(digests, func(i, j int) bool { return digests[i] < digests[j] })
	return OrderedRange(state, digests)
}
