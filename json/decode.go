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
	"reflect"
	"strings"

	"github.com/tsdb2/tsdb2/tsdb2err"
)

// decodeReflect is the fallback path for Decode when v is not an
// Unmarshaler: it walks v's type with the standard library's reflect
// package and drives the low-level token readers directly, the way the
// original's ReadBoolean/ReadInteger/ReadFloat/ReadVector/... family does
// per C++ type.
func (p *Parser) decodeReflect(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return unsupportedDecodeTarget(v)
	}
	return p.decodeValue(rv.Elem())
}

func (p *Parser) decodeValue(rv reflect.Value) error {
	if rv.Kind() == reflect.Ptr {
		p.consumeWhitespace()
		if ch, ok := p.peek(); ok && ch == 'n' {
			if err := p.requirePrefix("null"); err != nil {
				return err
			}
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		rv.Set(reflect.New(rv.Type().Elem()))
		return p.decodeValue(rv.Elem())
	}

	if rv.CanAddr() {
		if u, ok := rv.Addr().Interface().(Unmarshaler); ok {
			return u.ParseJSON(p)
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		p.consumeWhitespace()
		if err := p.requireBoolPrefix(rv); err != nil {
			return err
		}
		return nil
	case reflect.String:
		p.consumeWhitespace()
		s, err := p.readString()
		if err != nil {
			return err
		}
		rv.SetString(s)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		p.consumeWhitespace()
		n, err := p.readRawNumber()
		if err != nil {
			return err
		}
		i, err := n.Int64()
		if err != nil {
			return err
		}
		rv.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		p.consumeWhitespace()
		n, err := p.readRawNumber()
		if err != nil {
			return err
		}
		u, err := n.Uint64()
		if err != nil {
			return err
		}
		rv.SetUint(u)
		return nil
	case reflect.Float32, reflect.Float64:
		p.consumeWhitespace()
		n, err := p.readRawNumber()
		if err != nil {
			return err
		}
		f, err := n.Float64()
		if err != nil {
			return err
		}
		rv.SetFloat(f)
		return nil
	case reflect.Slice:
		return p.decodeSlice(rv)
	case reflect.Array:
		return p.decodeArray(rv)
	case reflect.Map:
		return p.decodeMap(rv)
	case reflect.Struct:
		return p.decodeStruct(rv)
	case reflect.Interface:
		val, err := p.ParseValue()
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(val))
		return nil
	default:
		return unsupportedDecodeTarget(rv.Interface())
	}
}

func (p *Parser) requireBoolPrefix(rv reflect.Value) error {
	if p.consumePrefix("true") {
		rv.SetBool(true)
		return nil
	}
	if p.consumePrefix("false") {
		rv.SetBool(false)
		return nil
	}
	return invalidSyntax("expected boolean at offset %d", p.pos)
}

func (p *Parser) decodeSlice(rv reflect.Value) error {
	if err := p.requirePrefix("["); err != nil {
		return err
	}
	elemType := rv.Type().Elem()
	out := reflect.MakeSlice(rv.Type(), 0, 0)
	p.consumeWhitespace()
	if p.consumePrefix("]") {
		rv.Set(out)
		return nil
	}
	for {
		elem := reflect.New(elemType).Elem()
		if err := p.decodeValue(elem); err != nil {
			return err
		}
		out = reflect.Append(out, elem)
		p.consumeWhitespace()
		if p.consumePrefix(",") {
			p.consumeWhitespace()
			continue
		}
		if err := p.requirePrefix("]"); err != nil {
			return err
		}
		rv.Set(out)
		return nil
	}
}

func (p *Parser) decodeArray(rv reflect.Value) error {
	if err := p.requirePrefix("["); err != nil {
		return err
	}
	n := rv.Len()
	p.consumeWhitespace()
	for i := 0; i < n; i++ {
		if i > 0 {
			if err := p.requirePrefix(","); err != nil {
				return invalidFormat("array has fewer than %d elements", n)
			}
			p.consumeWhitespace()
		}
		if err := p.decodeValue(rv.Index(i)); err != nil {
			return err
		}
		p.consumeWhitespace()
	}
	if p.consumePrefix(",") {
		return invalidFormat("array has more than %d elements", n)
	}
	return p.requirePrefix("]")
}

func (p *Parser) decodeMap(rv reflect.Value) error {
	if err := p.requirePrefix("{"); err != nil {
		return err
	}
	rv.Set(reflect.MakeMap(rv.Type()))
	keyType := rv.Type().Key()
	valType := rv.Type().Elem()
	seen := make(map[string]bool)
	p.consumeWhitespace()
	if p.consumePrefix("}") {
		return nil
	}
	for {
		p.consumeWhitespace()
		keyStr, err := p.readString()
		if err != nil {
			return err
		}
		if seen[keyStr] {
			return invalidFormat("duplicate map key %q", keyStr)
		}
		seen[keyStr] = true
		key, err := convertMapKey(keyStr, keyType)
		if err != nil {
			return err
		}
		p.consumeWhitespace()
		if err := p.requirePrefix(":"); err != nil {
			return err
		}
		p.consumeWhitespace()
		val := reflect.New(valType).Elem()
		if err := p.decodeValue(val); err != nil {
			return err
		}
		rv.SetMapIndex(key, val)
		p.consumeWhitespace()
		if p.consumePrefix(",") {
			continue
		}
		return p.requirePrefix("}")
	}
}

func convertMapKey(s string, keyType reflect.Type) (reflect.Value, error) {
	if keyType.Kind() == reflect.String {
		return reflect.ValueOf(s).Convert(keyType), nil
	}
	return reflect.Value{}, tsdb2err.InvalidArgumentf("json: unsupported map key type %s", keyType)
}

// fieldTag returns the JSON field name for a struct field, honoring a
// `json:"name"` tag and falling back to the Go field name. A tag of "-"
// skips the field entirely.
func fieldTag(f reflect.StructField) (name string, skip bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", true
	}
	if tag == "" {
		return f.Name, false
	}
	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "" {
		return f.Name, false
	}
	return tag, false
}

func (p *Parser) decodeStruct(rv reflect.Value) error {
	if err := p.requirePrefix("{"); err != nil {
		return err
	}
	type fieldSlot struct {
		value reflect.Value
		seen  bool
	}
	byName := make(map[string]*fieldSlot)
	var required []string
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name, skip := fieldTag(f)
		if skip {
			continue
		}
		slot := &fieldSlot{value: rv.Field(i)}
		byName[name] = slot
		if f.Type.Kind() != reflect.Ptr && !strings.Contains(f.Tag.Get("json"), "omitempty") {
			required = append(required, name)
		}
	}

	p.consumeWhitespace()
	if !p.consumePrefix("}") {
		for {
			p.consumeWhitespace()
			key, err := p.readString()
			if err != nil {
				return err
			}
			p.consumeWhitespace()
			if err := p.requirePrefix(":"); err != nil {
				return err
			}
			p.consumeWhitespace()
			slot, ok := byName[key]
			if !ok {
				if !p.options.AllowExtraFields {
					return invalidFormat("unrecognized field %q", key)
				}
				if err := p.SkipValue(); err != nil {
					return err
				}
			} else {
				if slot.seen {
					return invalidFormat("field %q specified multiple times", key)
				}
				if err := p.decodeValue(slot.value); err != nil {
					return err
				}
				slot.seen = true
			}
			p.consumeWhitespace()
			if p.consumePrefix(",") {
				continue
			}
			if err := p.requirePrefix("}"); err != nil {
				return err
			}
			break
		}
	}

	for _, name := range required {
		if !byName[name].seen {
			return invalidFormat("missing required field %q", name)
		}
	}
	return nil
}
