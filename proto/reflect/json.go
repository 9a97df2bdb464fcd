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
	"time"

	"github.com/tsdb2/tsdb2/json"
)

// StringifyJSON implements json.Marshaler, driving the message's descriptor
// field by field the same way WriteMessage drives it for the text format.
// Oneof fields are emitted as a single-entry object keyed by the selected
// arm's name; every other field is keyed by its declared name.
func (m *Message) StringifyJSON(s *json.Stringifier) error {
	out := make(map[string]any, len(m.desc.order))
	for _, name := range m.desc.order {
		f := m.desc.fields[name]
		v, present, err := m.jsonFieldValue(f)
		if err != nil {
			return err
		}
		if !present {
			continue
		}
		out[name] = v
	}
	return s.Write(out)
}

func (m *Message) jsonFieldValue(f *FieldDescriptor) (any, bool, error) {
	switch f.Kind() {
	case Raw, Optional:
		return m.jsonScalarFieldValue(f)
	case Repeated:
		vals, err := m.Repeated(f.name)
		if err != nil {
			return nil, false, err
		}
		out := make([]any, len(vals))
		for i, v := range vals {
			jv, err := m.jsonScalarValue(f, v)
			if err != nil {
				return nil, false, err
			}
			out[i] = jv
		}
		return out, true, nil
	case Map:
		h, err := m.Map(f.name)
		if err != nil {
			return nil, false, err
		}
		valDesc, err := f.MapValueDescriptor()
		if err != nil {
			return nil, false, err
		}
		out := make(map[string]any, h.Len())
		for k, v := range h.All() {
			jv, err := m.jsonScalarValue(valDesc, v)
			if err != nil {
				return nil, false, err
			}
			out[fmt.Sprint(k)] = jv
		}
		return out, true, nil
	case OneOf:
		h, err := m.OneOf(f.name)
		if err != nil {
			return nil, false, err
		}
		if h.Index() == 0 {
			return nil, false, nil
		}
		arm, err := h.Descriptor().ArmAt(h.Index())
		if err != nil {
			return nil, false, err
		}
		armField := &FieldDescriptor{name: arm.Name, label: labelOf(arm.Type, Raw), enumDesc: arm.EnumDesc, subDesc: arm.SubDesc}
		jv, err := m.jsonScalarValue(armField, h.Value())
		if err != nil {
			return nil, false, err
		}
		return map[string]any{arm.Name: jv}, true, nil
	default:
		return nil, false, newFailedPrecondition("reflect: unknown field kind for %q", f.name)
	}
}

func (m *Message) jsonScalarFieldValue(f *FieldDescriptor) (any, bool, error) {
	if f.Type() == SubMessage {
		sub, ok, err := m.SubMessage(f.name)
		if err != nil || !ok {
			return nil, ok, err
		}
		return sub, true, nil
	}
	v, ok, err := m.Get(f.name)
	if err != nil || !ok {
		return nil, ok, err
	}
	jv, err := m.jsonScalarValue(f, v)
	return jv, true, err
}

// jsonScalarValue converts one stored field value (of the type described by
// f, ignoring f's Kind) into the representation StringifyJSON hands to the
// generic Stringifier: enums become their name, sub-messages stay as
// *Message (itself a Marshaler), times and durations become their string
// form, bytes become a string holding the same bytes, and every other
// scalar passes through unchanged.
func (m *Message) jsonScalarValue(f *FieldDescriptor, v any) (any, error) {
	switch f.Type() {
	case Enum:
		n, err := f.enumDesc.NameByValue(v.(int32))
		if err != nil {
			return nil, err
		}
		return n, nil
	case SubMessage:
		return v, nil
	case Time:
		return v.(time.Time).Format(time.RFC3339Nano), nil
	case Duration:
		return v.(time.Duration).String(), nil
	case Bytes:
		return string(v.([]byte)), nil
	default:
		return v, nil
	}
}

// ParseJSON implements json.Unmarshaler, populating m's fields from a JSON
// object keyed by declared field name.
func (m *Message) ParseJSON(p *json.Parser) error {
	raw, err := p.ParseValue()
	if err != nil {
		return err
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return newInvalidArgument("reflect: expected JSON object to parse message %q", m.desc.name)
	}
	for key, jv := range obj {
		if !m.desc.HasField(key) {
			if !p.Options().AllowExtraFields {
				return newInvalidArgument("reflect: message %q has no field %q", m.desc.name, key)
			}
			continue
		}
		f := m.desc.fields[key]
		if err := m.setJSONField(f, jv); err != nil {
			return err
		}
	}
	for _, name := range m.desc.required {
		has, err := m.Has(name)
		if err != nil {
			return err
		}
		if has && m.desc.fields[name].Kind() == Raw {
			// Has reports Raw fields as always present; check for a stored value.
			_, has = m.fields[name]
		}
		if !has {
			return newInvalidArgument("reflect: missing required field %q in message %q", name, m.desc.name)
		}
	}
	return nil
}

func (m *Message) setJSONField(f *FieldDescriptor, jv any) error {
	switch f.Kind() {
	case Raw, Optional:
		return m.setJSONScalarField(f, jv)
	case Repeated:
		arr, ok := jv.([]any)
		if !ok {
			return newInvalidArgument("reflect: field %q expects a JSON array", f.name)
		}
		for _, elem := range arr {
			v, err := m.jsonToScalar(f, elem)
			if err != nil {
				return err
			}
			if err := m.AppendRepeated(f.name, v); err != nil {
				return err
			}
		}
		return nil
	case Map:
		obj, ok := jv.(map[string]any)
		if !ok {
			return newInvalidArgument("reflect: field %q expects a JSON object", f.name)
		}
		h, err := m.Map(f.name)
		if err != nil {
			return err
		}
		valDesc, err := f.MapValueDescriptor()
		if err != nil {
			return err
		}
		for k, elem := range obj {
			key, err := parseMapKey(k, f.mapKeyType)
			if err != nil {
				return err
			}
			val, err := m.jsonToScalar(valDesc, elem)
			if err != nil {
				return err
			}
			if err := h.Set(key, val); err != nil {
				return err
			}
		}
		return nil
	case OneOf:
		obj, ok := jv.(map[string]any)
		if !ok || len(obj) != 1 {
			return newInvalidArgument("reflect: oneof field %q expects a single-entry JSON object", f.name)
		}
		h, err := m.OneOf(f.name)
		if err != nil {
			return err
		}
		for armName, elem := range obj {
			index, err := h.Descriptor().IndexByName(armName)
			if err != nil {
				return err
			}
			arm, err := h.Descriptor().ArmAt(index)
			if err != nil {
				return err
			}
			switch arm.Type {
			case Enum:
				name, ok := elem.(string)
				if !ok {
					return newInvalidArgument("reflect: oneof %q arm %q expects a string", f.name, armName)
				}
				return h.SetEnumValue(index, name)
			case SubMessage:
				sub := arm.SubDesc.CreateInstance()
				if err := sub.fromJSONValue(elem); err != nil {
					return err
				}
				return h.SetSubMessageValue(index, sub)
			default:
				v, err := jsonToScalarValue(arm.Type, elem)
				if err != nil {
					return err
				}
				return h.SetValue(index, v)
			}
		}
		return nil
	default:
		return newFailedPrecondition("reflect: unknown field kind for %q", f.name)
	}
}

func (m *Message) setJSONScalarField(f *FieldDescriptor, jv any) error {
	if f.Type() == SubMessage {
		sub, ok, err := m.SubMessage(f.name)
		if err != nil {
			return err
		}
		if !ok {
			sub = f.subDesc.CreateInstance()
		}
		if err := sub.fromJSONValue(jv); err != nil {
			return err
		}
		if f.Kind() == Optional {
			return m.SetSubMessage(f.name, sub)
		}
		return nil
	}
	if f.Type() == Enum {
		name, ok := jv.(string)
		if !ok {
			return newInvalidArgument("reflect: field %q expects a string", f.name)
		}
		return m.SetEnumByName(f.name, name)
	}
	v, err := jsonToScalarValue(f.Type(), jv)
	if err != nil {
		return err
	}
	return m.Set(f.name, v)
}

// fromJSONValue populates m from an already-decoded JSON value (as produced
// by json.Parser.ParseValue), used for nested sub-messages reached while
// decoding a parent field rather than via the top-level Decode entry point.
func (m *Message) fromJSONValue(jv any) error {
	obj, ok := jv.(map[string]any)
	if !ok {
		return newInvalidArgument("reflect: expected JSON object to parse message %q", m.desc.name)
	}
	for key, fv := range obj {
		if !m.desc.HasField(key) {
			continue
		}
		if err := m.setJSONField(m.desc.fields[key], fv); err != nil {
			return err
		}
	}
	return nil
}

func (m *Message) jsonToScalar(f *FieldDescriptor, jv any) (any, error) {
	switch f.Type() {
	case Enum:
		name, ok := jv.(string)
		if !ok {
			return nil, newInvalidArgument("reflect: field %q expects a string", f.name)
		}
		return f.enumDesc.ValueByName(name)
	case SubMessage:
		sub := f.subDesc.CreateInstance()
		if err := sub.fromJSONValue(jv); err != nil {
			return nil, err
		}
		return sub, nil
	default:
		return jsonToScalarValue(f.Type(), jv)
	}
}

// jsonToScalarValue converts a decoded JSON value into its Go scalar
// representation for the given non-enum, non-submessage FieldType.
func jsonToScalarValue(typ FieldType, jv any) (any, error) {
	switch typ {
	case Int32:
		n, err := numberOf(jv)
		if err != nil {
			return nil, err
		}
		i, err := n.Int64()
		if err != nil {
			return nil, err
		}
		return int32(i), nil
	case Uint32:
		n, err := numberOf(jv)
		if err != nil {
			return nil, err
		}
		u, err := n.Uint64()
		if err != nil {
			return nil, err
		}
		return uint32(u), nil
	case Int64:
		n, err := numberOf(jv)
		if err != nil {
			return nil, err
		}
		return n.Int64()
	case Uint64:
		n, err := numberOf(jv)
		if err != nil {
			return nil, err
		}
		return n.Uint64()
	case Bool:
		b, ok := jv.(bool)
		if !ok {
			return nil, newInvalidArgument("reflect: expected a boolean, got %T", jv)
		}
		return b, nil
	case String:
		s, ok := jv.(string)
		if !ok {
			return nil, newInvalidArgument("reflect: expected a string, got %T", jv)
		}
		return s, nil
	case Bytes:
		s, ok := jv.(string)
		if !ok {
			return nil, newInvalidArgument("reflect: expected a string, got %T", jv)
		}
		return []byte(s), nil
	case Double:
		n, err := numberOf(jv)
		if err != nil {
			return nil, err
		}
		return n.Float64()
	case Float:
		n, err := numberOf(jv)
		if err != nil {
			return nil, err
		}
		f, err := n.Float64()
		if err != nil {
			return nil, err
		}
		return float32(f), nil
	case Time:
		s, ok := jv.(string)
		if !ok {
			return nil, newInvalidArgument("reflect: expected a timestamp string, got %T", jv)
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, newInvalidArgument("reflect: malformed timestamp %q: %v", s, err)
		}
		return t, nil
	case Duration:
		s, ok := jv.(string)
		if !ok {
			return nil, newInvalidArgument("reflect: expected a duration string, got %T", jv)
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, newInvalidArgument("reflect: malformed duration %q: %v", s, err)
		}
		return d, nil
	default:
		return nil, newFailedPrecondition("reflect: unsupported scalar field type %s", typ)
	}
}

func numberOf(jv any) (json.Number, error) {
	switch v := jv.(type) {
	case json.Number:
		return v, nil
	case string:
		return json.Number(v), nil
	default:
		return "", newInvalidArgument("reflect: expected a number, got %T", jv)
	}
}

func parseMapKey(s string, typ FieldType) (any, error) {
	switch typ {
	case String:
		return s, nil
	default:
		return jsonToScalarValue(typ, s)
	}
}
