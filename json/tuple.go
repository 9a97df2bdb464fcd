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

package json

import "reflect"

// Tuple is a fixed, heterogeneous sequence of values that always
// stringifies on a single line, even under StringifyOptions.Pretty --
// matching the original's pair/tuple serializers, which never indent.
// Elements round-trip through ParseValue's generic representation
// (nil/bool/Number/string/[]any/map[string]any) unless Values already
// holds concretely typed elements, which are preserved as-is on encode.
type Tuple struct {
	Values []any
}

// NewTuple wraps values as a Tuple.
func NewTuple(values ...any) Tuple {
	return Tuple{Values: values}
}

// StringifyJSON implements Marshaler, always emitting a single-line array.
func (t Tuple) StringifyJSON(s *Stringifier) error {
	s.buf.WriteByte('[')
	for i, v := range t.Values {
		if i > 0 {
			s.buf.WriteByte(',')
			if s.options.Pretty {
				s.buf.WriteByte(' ')
			}
		}
		if err := s.writeReflect(reflect.ValueOf(v)); err != nil {
			return err
		}
	}
	s.buf.WriteByte(']')
	return nil
}

// ParseJSON implements Unmarshaler, reading a plain JSON array into
// Values using the generic value representation.
func (t *Tuple) ParseJSON(p *Parser) error {
	v, err := p.ParseValue()
	if err != nil {
		return err
	}
	arr, ok := v.([]any)
	if !ok {
		return invalidFormat("expected array for tuple")
	}
	t.Values = arr
	return nil
}
