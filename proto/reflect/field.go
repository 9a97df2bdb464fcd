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

// FieldType enumerates the primitive, enum, and sub-message value kinds a
// field can carry. It excludes Map and OneOf, which are FieldKind values
// instead: a map or oneof field's element/arm types are described
// separately (see FieldDescriptor).
type FieldType int

const (
	Int32 FieldType = iota
	Uint32
	Int64
	Uint64
	Bool
	String
	Bytes
	Double
	Float
	Time
	Duration
	Enum
	SubMessage

	numFieldTypes = int(SubMessage) + 1
)

func (t FieldType) String() string {
	switch t {
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Int64:
		return "int64"
	case Uint64:
		return "uint64"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Bytes:
		return "bytes"
	case Double:
		return "double"
	case Float:
		return "float"
	case Time:
		return "time"
	case Duration:
		return "duration"
	case Enum:
		return "enum"
	case SubMessage:
		return "submessage"
	default:
		return "unknown"
	}
}

// FieldKind describes how a field's value is held: always-present, nilable,
// a slice, a map, or a oneof arm.
type FieldKind int

const (
	Raw FieldKind = iota
	Optional
	Repeated
	Map
	OneOf
)

func (k FieldKind) String() string {
	switch k {
	case Raw:
		return "raw"
	case Optional:
		return "optional"
	case Repeated:
		return "repeated"
	case Map:
		return "map"
	case OneOf:
		return "oneof"
	default:
		return "unknown"
	}
}

// LabeledFieldType is the combined (type, kind) label assigned to a field.
// For every non-map, non-oneof field, LabeledFieldType/3 recovers the
// FieldType and LabeledFieldType%3 recovers the FieldKind (one of Raw,
// Optional, Repeated). Map and oneof fields get a single label each beyond
// that range, since their element/arm types are carried separately on the
// FieldDescriptor rather than folded into the label.
type LabeledFieldType int

const (
	labeledMap LabeledFieldType = LabeledFieldType(numFieldTypes * 3)
	labeledOneOf = labeledMap + 1
)

func labelOf(typ FieldType, kind FieldKind) LabeledFieldType {
	return LabeledFieldType(int(typ)*3 + int(kind))
}

// Type recovers the FieldType component of a non-map, non-oneof label.
func (l LabeledFieldType) Type() FieldType {
	return FieldType(int(l) / 3)
}

// Kind recovers the FieldKind component of a label, including the Map and
// OneOf singleton labels.
func (l LabeledFieldType) Kind() FieldKind {
	switch l {
	case labeledMap:
		return Map
	case labeledOneOf:
		return OneOf
	default:
		return FieldKind(int(l) % 3)
	}
}

// MapShape names one of the seven backing-container shapes the original
// reflective map handle abstracted over. This module collapses three
// unordered shapes and two ordered-tree shapes down to a single Go
// implementation each, since Go exposes no memory-layout distinction among
// them; ShapeFlatMap and ShapeTrieMap keep their own backends because those
// really do behave differently (see DESIGN.md).
type MapShape int

const (
	// ShapeHashMap, ShapeFlatHashMap and ShapeNodeHashMap all map onto a
	// plain Go map: the distinction among node-based, open-addressed and
	// plain hash maps is a memory-layout concern the Go runtime doesn't
	// expose to user code.
	ShapeHashMap MapShape = iota
	ShapeFlatHashMap
	ShapeNodeHashMap
	// ShapeSortedMap and ShapeBTreeMap both map onto a plain Go map plus a
	// sorted key slice, maintained on every insert/erase.
	ShapeSortedMap
	ShapeBTreeMap
	// ShapeFlatMap is backed by common/flatmap.FlatMap.
	ShapeFlatMap
	// ShapeTrieMap is backed by common/trie.Map and requires string keys.
	ShapeTrieMap
)

func (s MapShape) String() string {
	switch s {
	case ShapeHashMap:
		return "hash_map"
	case ShapeFlatHashMap:
		return "flat_hash_map"
	case ShapeNodeHashMap:
		return "node_hash_map"
	case ShapeSortedMap:
		return "sorted_map"
	case ShapeBTreeMap:
		return "btree_map"
	case ShapeFlatMap:
		return "flat_map"
	case ShapeTrieMap:
		return "trie_map"
	default:
		return "unknown"
	}
}

// IsOrdered reports whether iteration over this shape yields keys in
// ascending order.
func (s MapShape) IsOrdered() bool {
	switch s {
	case ShapeSortedMap, ShapeBTreeMap, ShapeFlatMap, ShapeTrieMap:
		return true
	default:
		return false
	}
}

// FieldDescriptor describes one field of a MessageDescriptor: its label
// (type and kind), and whatever extra metadata that type/kind combination
// requires (nested enum/sub-message descriptor, map shape and key/value
// types, or oneof arm list).
type FieldDescriptor struct {
	name  string
	label LabeledFieldType

	enumDesc *EnumDescriptor
	subDesc  *MessageDescriptor

	mapShape     MapShape
	mapKeyType   FieldType
	mapValDesc   *FieldDescriptor

	oneof *OneOfDescriptor
}

// Name returns the field's declared name (snake_case, as used in
// descriptors, text-format and JSON).
func (f *FieldDescriptor) Name() string { return f.name }

// Type returns the field's FieldType. Panics if the field is a map or
// oneof, which carry no single type; callers must check Kind first.
func (f *FieldDescriptor) Type() FieldType {
	if k := f.label.Kind(); k == Map || k == OneOf {
		panic("reflect: Type called on a " + k.String() + " field")
	}
	return f.label.Type()
}

// Kind returns the field's FieldKind.
func (f *FieldDescriptor) Kind() FieldKind { return f.label.Kind() }

// EnumDescriptor returns the nested enum descriptor of an Enum-typed field.
// Returns an error (FailedPrecondition) if the field is not an enum field.
func (f *FieldDescriptor) EnumDescriptor() (*EnumDescriptor, error) {
	if f.label.Kind() == Map || f.label.Kind() == OneOf || f.label.Type() != Enum {
		return nil, fieldNotEnum(f.name)
	}
	return f.enumDesc, nil
}

// SubMessageDescriptor returns the nested message descriptor of a
// SubMessage-typed field. Returns an error (FailedPrecondition) if the
// field is not a sub-message field.
func (f *FieldDescriptor) SubMessageDescriptor() (*MessageDescriptor, error) {
	if f.label.Kind() == Map || f.label.Kind() == OneOf || f.label.Type() != SubMessage {
		return nil, fieldNotSubMessage(f.name)
	}
	return f.subDesc, nil
}

// MapShape returns the backing shape of a Map-kind field. Returns an error
// if the field is not a map field.
func (f *FieldDescriptor) MapShape() (MapShape, error) {
	if f.label.Kind() != Map {
		return 0, fieldNotMap(f.name)
	}
	return f.mapShape, nil
}

// MapKeyType returns the key type of a Map-kind field.
func (f *FieldDescriptor) MapKeyType() (FieldType, error) {
	if f.label.Kind() != Map {
		return 0, fieldNotMap(f.name)
	}
	return f.mapKeyType, nil
}

// MapValueDescriptor returns the value field descriptor of a Map-kind
// field: a synthetic Raw-kind FieldDescriptor describing the value type.
func (f *FieldDescriptor) MapValueDescriptor() (*FieldDescriptor, error) {
	if f.label.Kind() != Map {
		return nil, fieldNotMap(f.name)
	}
	return f.mapValDesc, nil
}

// OneOfDescriptor returns the arm list of a OneOf-kind field.
func (f *FieldDescriptor) OneOfDescriptor() (*OneOfDescriptor, error) {
	if f.label.Kind() != OneOf {
		return nil, fieldNotOneOf(f.name)
	}
	return f.oneof, nil
}

// ScalarFieldDescriptor declares a Raw/Optional/Repeated field of a
// non-enum, non-submessage scalar type.
func ScalarFieldDescriptor(name string, typ FieldType, kind FieldKind) *FieldDescriptor {
	if typ == Enum || typ == SubMessage {
		panic("reflect: ScalarFieldDescriptor called with " + typ.String())
	}
	return &FieldDescriptor{name: name, label: labelOf(typ, kind)}
}

// EnumFieldDescriptor declares a Raw/Optional/Repeated field whose values
// are names of enumDesc.
func EnumFieldDescriptor(name string, enumDesc *EnumDescriptor, kind FieldKind) *FieldDescriptor {
	return &FieldDescriptor{name: name, label: labelOf(Enum, kind), enumDesc: enumDesc}
}

// SubMessageFieldDescriptor declares a Raw/Optional/Repeated field whose
// values are instances of subDesc.
func SubMessageFieldDescriptor(name string, subDesc *MessageDescriptor, kind FieldKind) *FieldDescriptor {
	return &FieldDescriptor{name: name, label: labelOf(SubMessage, kind), subDesc: subDesc}
}

// MapFieldDescriptor declares a map field backed by shape, with the given
// key type and value field descriptor (itself built with one of the
// *FieldDescriptor constructors above, using Raw kind).
func MapFieldDescriptor(name string, shape MapShape, keyType FieldType, valueDesc *FieldDescriptor) *FieldDescriptor {
	if shape == ShapeTrieMap && keyType != String {
		panic("reflect: ShapeTrieMap requires a string key, got " + keyType.String())
	}
	return &FieldDescriptor{
		name:       name,
		label:      labeledMap,
		mapShape:   shape,
		mapKeyType: keyType,
		mapValDesc: valueDesc,
	}
}

// OneOfFieldDescriptor declares a oneof field with the given arm list.
func OneOfFieldDescriptor(name string, oneof *OneOfDescriptor) *FieldDescriptor {
	return &FieldDescriptor{name: name, label: labeledOneOf, oneof: oneof}
}

func fieldNotEnum(name string) error {
	return newFailedPrecondition("field %q is not an enum field", name)
}

func fieldNotSubMessage(name string) error {
	return newFailedPrecondition("field %q is not a sub-message field", name)
}

func fieldNotMap(name string) error {
	return newFailedPrecondition("field %q is not a map field", name)
}

func fieldNotOneOf(name string) error {
	return newFailedPrecondition("field %q is not a oneof field", name)
}
