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
	"github.com/tiendc/go-deepcopy"

	"github.com/tsdb2/tsdb2/tsdb2err"
)

// VoidDescriptor is the sentinel MessageDescriptor used for primitive oneof
// arms, where no nested descriptor applies.
var VoidDescriptor = &MessageDescriptor{name: "<void>"}

// MessageDescriptor holds the ordered field list and required-field list of
// a message type. Descriptors are meant to be built once, at
// package-init time, and then shared read-only across every Message
// instance of that type.
type MessageDescriptor struct {
	name     string
	library  *Library
	order    []string
	fields   map[string]*FieldDescriptor
	required []string
}

// NewMessageDescriptor builds a MessageDescriptor from fields in the given
// declaration order, with the given list of required field names (a field
// not in this list is optional for parsing purposes even if its FieldKind
// is Raw).
func NewMessageDescriptor(name string, fields []*FieldDescriptor, required []string) *MessageDescriptor {
	d := &MessageDescriptor{
		name:     name,
		order:    make([]string, 0, len(fields)),
		fields:   make(map[string]*FieldDescriptor, len(fields)),
		required: required,
	}
	for _, f := range fields {
		if _, ok := d.fields[f.name]; ok {
			panic("reflect: duplicate field name " + f.name + " in message " + name)
		}
		d.order = append(d.order, f.name)
		d.fields[f.name] = f
	}
	return d
}

// Name returns the message type's declared name.
func (d *MessageDescriptor) Name() string { return d.name }

// GetAllFieldNames returns the field names in declaration order.
func (d *MessageDescriptor) GetAllFieldNames() []string { return d.order }

// GetRequiredFieldNames returns the names of fields that must be present
// for a parse of this message to succeed.
func (d *MessageDescriptor) GetRequiredFieldNames() []string { return d.required }

// HasField reports whether name is a declared field of this message.
func (d *MessageDescriptor) HasField(name string) bool {
	_, ok := d.fields[name]
	return ok
}

// FieldDescriptor returns the descriptor for the named field.
func (d *MessageDescriptor) FieldDescriptor(name string) (*FieldDescriptor, error) {
	f, ok := d.fields[name]
	if !ok {
		return nil, tsdb2err.FailedPreconditionf("reflect: message %q has no field %q", d.name, name)
	}
	return f, nil
}

// GetFieldType returns the FieldType of the named field.
func (d *MessageDescriptor) GetFieldType(name string) (FieldType, error) {
	f, err := d.FieldDescriptor(name)
	if err != nil {
		return 0, err
	}
	if k := f.Kind(); k == Map || k == OneOf {
		return 0, newFailedPrecondition("reflect: field %q is a %s field, has no single FieldType", name, k)
	}
	return f.Type(), nil
}

// GetFieldKind returns the FieldKind of the named field.
func (d *MessageDescriptor) GetFieldKind(name string) (FieldKind, error) {
	f, err := d.FieldDescriptor(name)
	if err != nil {
		return 0, err
	}
	return f.Kind(), nil
}

// GetEnumFieldDescriptor returns the nested enum descriptor of an
// enum-typed field.
func (d *MessageDescriptor) GetEnumFieldDescriptor(name string) (*EnumDescriptor, error) {
	f, err := d.FieldDescriptor(name)
	if err != nil {
		return nil, err
	}
	return f.EnumDescriptor()
}

// GetSubMessageFieldDescriptor returns the nested message descriptor of a
// sub-message-typed field.
func (d *MessageDescriptor) GetSubMessageFieldDescriptor(name string) (*MessageDescriptor, error) {
	f, err := d.FieldDescriptor(name)
	if err != nil {
		return nil, err
	}
	return f.SubMessageDescriptor()
}

// CreateInstance produces a default-initialized Message of this type.
func (d *MessageDescriptor) CreateInstance() *Message {
	return &Message{desc: d, fields: make(map[string]any, len(d.order))}
}

// Message is a dynamic value conforming to a MessageDescriptor: its fields
// are addressed by name rather than by compiled-in Go struct accessors, so
// that generic code (the JSON codec, the text-format parser) can traverse
// and mutate any message type without a type parameter per message.
type Message struct {
	desc   *MessageDescriptor
	fields map[string]any
}

// Descriptor returns the message's descriptor.
func (m *Message) Descriptor() *MessageDescriptor { return m.desc }

// Has reports whether the named field currently holds a value: always true
// for Raw/Map/Repeated fields (which default to their zero value rather
// than being absent), and dependent on presence for Optional and OneOf
// fields.
func (m *Message) Has(name string) (bool, error) {
	f, err := m.desc.FieldDescriptor(name)
	if err != nil {
		return false, err
	}
	switch f.Kind() {
	case Optional:
		_, ok := m.fields[name]
		return ok, nil
	case OneOf:
		h, err := m.OneOf(name)
		if err != nil {
			return false, err
		}
		return h.Index() != 0, nil
	default:
		return true, nil
	}
}

// Clear removes any value set on the named field, returning it to its
// zero/absent state.
func (m *Message) Clear(name string) error {
	if _, err := m.desc.FieldDescriptor(name); err != nil {
		return err
	}
	delete(m.fields, name)
	return nil
}

// Get returns the raw stored value of a Raw or Optional scalar/enum field
// (the underlying Go value for scalars, the enum's int32 for enum fields),
// and whether it was present. Repeated, map and oneof fields have their own
// accessors (Repeated, Map, OneOf) because their shapes don't fit a single
// value.
func (m *Message) Get(name string) (any, bool, error) {
	f, err := m.desc.FieldDescriptor(name)
	if err != nil {
		return nil, false, err
	}
	if k := f.Kind(); k != Raw && k != Optional {
		return nil, false, newFailedPrecondition("reflect: field %q is a %s field, use the matching accessor", name, k)
	}
	v, ok := m.fields[name]
	return v, ok, nil
}

// Set stores value on a Raw or Optional scalar/enum field.
func (m *Message) Set(name string, value any) error {
	f, err := m.desc.FieldDescriptor(name)
	if err != nil {
		return err
	}
	if k := f.Kind(); k != Raw && k != Optional {
		return newFailedPrecondition("reflect: field %q is a %s field, use the matching accessor", name, k)
	}
	m.fields[name] = value
	return nil
}

// EnumName returns the current name of an enum-typed Raw or Optional field,
// using the nested EnumDescriptor to resolve the underlying value.
func (m *Message) EnumName(name string) (string, bool, error) {
	f, err := m.desc.FieldDescriptor(name)
	if err != nil {
		return "", false, err
	}
	if f.Type() != Enum {
		return "", false, fieldNotEnum(name)
	}
	v, ok := m.fields[name]
	if !ok {
		return "", false, nil
	}
	n, err := f.enumDesc.NameByValue(v.(int32))
	if err != nil {
		return "", false, err
	}
	return n, true, nil
}

// SetEnumByName sets an enum-typed field by resolving name through its
// nested EnumDescriptor.
func (m *Message) SetEnumByName(field, name string) error {
	f, err := m.desc.FieldDescriptor(field)
	if err != nil {
		return err
	}
	if f.Type() != Enum {
		return fieldNotEnum(field)
	}
	v, err := f.enumDesc.ValueByName(name)
	if err != nil {
		return err
	}
	m.fields[field] = v
	return nil
}

// SubMessage returns the nested Message of a Raw or Optional sub-message
// field, creating and storing a default instance on first access for Raw
// fields. Optional fields return ok=false until explicitly set.
func (m *Message) SubMessage(name string) (sub *Message, ok bool, err error) {
	f, err := m.desc.FieldDescriptor(name)
	if err != nil {
		return nil, false, err
	}
	if f.Type() != SubMessage {
		return nil, false, fieldNotSubMessage(name)
	}
	v, present := m.fields[name]
	if !present {
		if f.Kind() == Optional {
			return nil, false, nil
		}
		fresh := f.subDesc.CreateInstance()
		m.fields[name] = fresh
		return fresh, true, nil
	}
	return v.(*Message), true, nil
}

// SetSubMessage stores sub on a Raw or Optional sub-message field.
func (m *Message) SetSubMessage(name string, sub *Message) error {
	f, err := m.desc.FieldDescriptor(name)
	if err != nil {
		return err
	}
	if f.Type() != SubMessage {
		return fieldNotSubMessage(name)
	}
	m.fields[name] = sub
	return nil
}

// Repeated returns the backing slice of a Repeated field. The returned
// slice is the live storage; Append and index assignment through it
// mutate the message directly... except that because Go slices aren't
// addressable through an any, mutation goes through AppendRepeated and
// SetRepeatedAt instead.
func (m *Message) Repeated(name string) ([]any, error) {
	f, err := m.desc.FieldDescriptor(name)
	if err != nil {
		return nil, err
	}
	if f.Kind() != Repeated {
		return nil, newFailedPrecondition("reflect: field %q is not a repeated field", name)
	}
	v, _ := m.fields[name].([]any)
	return v, nil
}

// AppendRepeated appends value to a Repeated field.
func (m *Message) AppendRepeated(name string, value any) error {
	f, err := m.desc.FieldDescriptor(name)
	if err != nil {
		return err
	}
	if f.Kind() != Repeated {
		return newFailedPrecondition("reflect: field %q is not a repeated field", name)
	}
	v, _ := m.fields[name].([]any)
	m.fields[name] = append(v, value)
	return nil
}

// SetRepeatedAt overwrites the element at index of a Repeated field.
func (m *Message) SetRepeatedAt(name string, index int, value any) error {
	f, err := m.desc.FieldDescriptor(name)
	if err != nil {
		return err
	}
	if f.Kind() != Repeated {
		return newFailedPrecondition("reflect: field %q is not a repeated field", name)
	}
	v, _ := m.fields[name].([]any)
	if index < 0 || index >= len(v) {
		return newOutOfRange("reflect: index %d out of range for repeated field %q of length %d", index, name, len(v))
	}
	v[index] = value
	return nil
}

// AllValuesAreKnown reports, for a Repeated enum field, whether every
// stored underlying value maps to a known name in the nested enum
// descriptor.
func (m *Message) AllValuesAreKnown(name string) (bool, error) {
	f, err := m.desc.FieldDescriptor(name)
	if err != nil {
		return false, err
	}
	if f.Kind() != Repeated || f.Type() != Enum {
		return false, newFailedPrecondition("reflect: field %q is not a repeated enum field", name)
	}
	v, _ := m.fields[name].([]any)
	for _, e := range v {
		if !f.enumDesc.HasValue(e.(int32)) {
			return false, nil
		}
	}
	return true, nil
}

// Map returns a MapHandle bound to the named map field, creating its
// backend on first access.
func (m *Message) Map(name string) (*MapHandle, error) {
	f, err := m.desc.FieldDescriptor(name)
	if err != nil {
		return nil, err
	}
	if f.Kind() != Map {
		return nil, fieldNotMap(name)
	}
	h, ok := m.fields[name].(*MapHandle)
	if !ok {
		h = &MapHandle{keyType: f.mapKeyType, backend: newMapBackend(f.mapShape)}
		m.fields[name] = h
	}
	return h, nil
}

// OneOf returns a OneOfHandle bound to the named oneof field.
func (m *Message) OneOf(name string) (*OneOfHandle, error) {
	f, err := m.desc.FieldDescriptor(name)
	if err != nil {
		return nil, err
	}
	if f.Kind() != OneOf {
		return nil, fieldNotOneOf(name)
	}
	return &OneOfHandle{msg: m, name: name, desc: f.oneof}, nil
}

// Clone returns a deep copy of m. Panics if the deep-copy machinery fails,
// which only happens on malformed field values a well-behaved caller never
// produces.
func (m *Message) Clone() *Message {
	clone := m.desc.CreateInstance()
	if err := deepcopy.Copy(&clone.fields, &m.fields); err != nil {
		panic("reflect: Clone: " + err.Error())
	}
	return clone
}
