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

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tsdb2/tsdb2/common/flatmap"
)

// jsonEscapeByByte is the fixed table of single-character JSON escapes,
// frozen at init time since the escape set never changes after startup.
var jsonEscapeByByte = flatmap.NewFrozen([]flatmap.Entry[byte, string]{
	{Key: '"', Value: `\"`},
	{Key: '\\', Value: `\\`},
	{Key: '\b', Value: `\b`},
	{Key: '\f', Value: `\f`},
	{Key: '\n', Value: `\n`},
	{Key: '\r', Value: `\r`},
	{Key: '\t', Value: `\t`},
})

// Marshaler is implemented by types that stringify themselves into a
// Stringifier, the Go stand-in for the original's free-function
// `Tsdb2JsonStringify(Stringifier*, T const&)` hook.
type Marshaler interface {
	StringifyJSON(s *Stringifier) error
}

// Stringifier emits JSON into an internal buffer. The zero value is not
// usable; construct with NewStringifier.
type Stringifier struct {
	options StringifyOptions
	buf     strings.Builder
	depth   int
	indents *lru.Cache[int, string]
}

// NewStringifier creates a Stringifier with the given options.
func NewStringifier(options StringifyOptions) *Stringifier {
	cache, err := lru.New[int, string](64)
	if err != nil {
		panic("json: failed to allocate indent cache: " + err.Error())
	}
	return &Stringifier{options: options, indents: cache}
}

// Options returns the stringifier's configured options.
func (s *Stringifier) Options() StringifyOptions { return s.options }

// String returns the bytes written so far.
func (s *Stringifier) String() string {
	out := s.buf.String()
	if s.options.TrailingNewline {
		out += s.options.LineFeedType.sequence()
	}
	return out
}

// indentFor returns the indentation string for the given nesting depth,
// computing it once per depth and caching the result so that repeated
// emission at the same depth is amortized O(1), matching the original's
// cached per-level indentation string.
func (s *Stringifier) indentFor(depth int) string {
	if cached, ok := s.indents.Get(depth); ok {
		return cached
	}
	ind := strings.Repeat(" ", depth*s.options.IndentWidth)
	s.indents.Add(depth, ind)
	return ind
}

func (s *Stringifier) newline() {
	if s.options.Pretty {
		s.buf.WriteString(s.options.LineFeedType.sequence())
		s.buf.WriteString(s.indentFor(s.depth))
	}
}

// Stringify returns the JSON encoding of v under options, using a fresh
// Stringifier. It panics if v cannot be encoded.
func Stringify(v any, options StringifyOptions) string {
	s := NewStringifier(options)
	if err := s.Write(v); err != nil {
		panic("json: Stringify: " + err.Error())
	}
	return s.String()
}

// Write appends the JSON encoding of v.
func (s *Stringifier) Write(v any) error {
	if m, ok := v.(Marshaler); ok {
		return m.StringifyJSON(s)
	}
	return s.writeReflect(reflect.ValueOf(v))
}

func (s *Stringifier) writeReflect(rv reflect.Value) error {
	if !rv.IsValid() {
		s.buf.WriteString("null")
		return nil
	}
	if rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			s.buf.WriteString("null")
			return nil
		}
		return s.writeReflect(rv.Elem())
	}
	if rv.CanInterface() {
		if m, ok := rv.Interface().(Marshaler); ok {
			return m.StringifyJSON(s)
		}
		if n, ok := rv.Interface().(Number); ok {
			s.buf.WriteString(string(n))
			return nil
		}
	}
	switch rv.Kind() {
	case reflect.Bool:
		s.buf.WriteString(strconv.FormatBool(rv.Bool()))
		return nil
	case reflect.String:
		s.writeString(rv.String())
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		s.buf.WriteString(strconv.FormatInt(rv.Int(), 10))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		s.buf.WriteString(strconv.FormatUint(rv.Uint(), 10))
		return nil
	case reflect.Float32:
		s.buf.WriteString(strconv.FormatFloat(rv.Float(), 'g', -1, 32))
		return nil
	case reflect.Float64:
		s.buf.WriteString(strconv.FormatFloat(rv.Float(), 'g', -1, 64))
		return nil
	case reflect.Slice, reflect.Array:
		return s.writeSequence(rv)
	case reflect.Map:
		return s.writeMap(rv)
	case reflect.Struct:
		return s.writeStruct(rv)
	default:
		return fmt.Errorf("json: unsupported stringify value %v (%s)", rv, rv.Kind())
	}
}

func (s *Stringifier) writeString(str string) {
	s.buf.WriteByte('"')
	for i := 0; i < len(str); i++ {
		ch := str[i]
		if esc, ok := jsonEscapeByByte.Find(ch); ok {
			s.buf.WriteString(esc)
		} else if ch >= 0x80 {
			fmt.Fprintf(&s.buf, `\u%04x`, ch)
		} else {
			s.buf.WriteByte(ch)
		}
	}
	s.buf.WriteByte('"')
}

func (s *Stringifier) writeSequence(rv reflect.Value) error {
	n := rv.Len()
	s.buf.WriteByte('[')
	if n == 0 {
		s.buf.WriteByte(']')
		return nil
	}
	s.depth++
	for i := 0; i < n; i++ {
		if i > 0 {
			s.buf.WriteByte(',')
		}
		s.newline()
		if err := s.writeReflect(rv.Index(i)); err != nil {
			return err
		}
	}
	s.depth--
	s.newline()
	s.buf.WriteByte(']')
	return nil
}

func (s *Stringifier) writeMap(rv reflect.Value) error {
	keys := rv.MapKeys()
	sortMapKeys(keys)
	s.buf.WriteByte('{')
	if len(keys) == 0 {
		s.buf.WriteByte('}')
		return nil
	}
	s.depth++
	for i, k := range keys {
		if i > 0 {
			s.buf.WriteByte(',')
		}
		s.newline()
		s.writeString(fmt.Sprint(k.Interface()))
		s.buf.WriteByte(':')
		if s.options.Pretty {
			s.buf.WriteByte(' ')
		}
		if err := s.writeReflect(rv.MapIndex(k)); err != nil {
			return err
		}
	}
	s.depth--
	s.newline()
	s.buf.WriteByte('}')
	return nil
}

func sortMapKeys(keys []reflect.Value) {
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && fmt.Sprint(keys[j-1].Interface()) > fmt.Sprint(keys[j].Interface()); j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
}

func (s *Stringifier) writeStruct(rv reflect.Value) error {
	rt := rv.Type()
	s.buf.WriteByte('{')
	s.depth++
	first := true
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name, skip := fieldTag(f)
		if skip {
			continue
		}
		fv := rv.Field(i)
		omitEmpty := strings.Contains(f.Tag.Get("json"), "omitempty")
		if omitEmpty && isEmptyValue(fv) && !s.options.OutputEmptyFields {
			continue
		}
		if (fv.Kind() == reflect.Ptr || fv.Kind() == reflect.Interface) && fv.IsNil() {
			if !s.options.OutputEmptyFields {
				continue
			}
		}
		if !first {
			s.buf.WriteByte(',')
		}
		first = false
		s.newline()
		s.writeString(name)
		s.buf.WriteByte(':')
		if s.options.Pretty {
			s.buf.WriteByte(' ')
		}
		if err := s.writeReflect(fv); err != nil {
			return err
		}
	}
	s.depth--
	s.newline()
	s.buf.WriteByte('}')
	return nil
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return v.IsNil()
	case reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	default:
		return false
	}
}
