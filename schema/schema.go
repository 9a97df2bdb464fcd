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

package schema

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsdb2/tsdb2/proto/reflect"
	"github.com/tsdb2/tsdb2/tsdb2err"
)

// Document is the top-level shape of a schema YAML file. It is exported so
// that tools like cmd/gendescriptor can walk the declared schema directly,
// rather than only the reflect.Library that Load builds from it.
type Document struct {
	Enums    []EnumDoc    `yaml:"enums"`
	Messages []MessageDoc `yaml:"messages"`
}

type EnumDoc struct {
	Name   string         `yaml:"name"`
	Values []EnumValueDoc `yaml:"values"`
}

type EnumValueDoc struct {
	Name  string `yaml:"name"`
	Value int32  `yaml:"value"`
}

type MessageDoc struct {
	Name     string     `yaml:"name"`
	Required []string   `yaml:"required"`
	Fields   []FieldDoc `yaml:"fields"`
}

// FieldDoc describes one field declaration. Not every key applies to every
// field `type`: Enum/Message name the nested descriptor for an enum/message
// field; MapShape/KeyType/ValueType(/ValueEnum/ValueMessage) describe a map
// field; OneOf lists the arms of a oneof field.
type FieldDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Kind string `yaml:"kind"`

	Enum    string `yaml:"enum"`
	Message string `yaml:"message"`

	MapShape     string `yaml:"map_shape"`
	KeyType      string `yaml:"key_type"`
	ValueType    string `yaml:"value_type"`
	ValueEnum    string `yaml:"value_enum"`
	ValueMessage string `yaml:"value_message"`

	OneOf []OneOfArmDoc `yaml:"oneof"`
}

type OneOfArmDoc struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Enum    string `yaml:"enum"`
	Message string `yaml:"message"`
}

// ParseFile reads and parses the schema YAML file at path without building
// a Library from it.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tsdb2err.InvalidArgumentf("schema: cannot read %q: %v", path, err)
	}
	return Parse(data)
}

// Parse decodes a schema YAML document without building a Library from it.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, tsdb2err.InvalidArgumentf("schema: malformed YAML: %v", err)
	}
	return &doc, nil
}

// LoadFile reads and parses the schema YAML file at path.
func LoadFile(path string) (*reflect.Library, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return build(doc)
}

// Load parses a schema YAML document and returns a populated Library.
//
// Enums are declared and registered first, then messages in the order they
// appear in the `messages` list. A message field referencing another
// message or enum must name one already registered by that point: messages
// must be declared leaf-first. This module's MessageDescriptor is built
// atomically by reflect.NewMessageDescriptor and cannot be patched after
// the fact, so there is no second pass to resolve forward references —
// unlike a wire-format schema compiler, which can build a dependency graph
// before emitting any single descriptor.
func Load(data []byte) (*reflect.Library, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return build(doc)
}

func build(doc *Document) (*reflect.Library, error) {
	lib := reflect.NewLibrary()
	ld := &loader{
		enums:    make(map[string]*reflect.EnumDescriptor, len(doc.Enums)),
		messages: make(map[string]*reflect.MessageDescriptor, len(doc.Messages)),
	}
	for _, e := range doc.Enums {
		values := make([]reflect.EnumValue, 0, len(e.Values))
		for _, v := range e.Values {
			values = append(values, reflect.EnumValue{Name: v.Name, Value: v.Value})
		}
		desc := reflect.NewEnumDescriptor(e.Name, values...)
		ld.enums[e.Name] = desc
		lib.RegisterEnum(desc)
	}
	for _, m := range doc.Messages {
		fields := make([]*reflect.FieldDescriptor, 0, len(m.Fields))
		for _, f := range m.Fields {
			fd, err := ld.buildField(f)
			if err != nil {
				return nil, tsdb2err.InvalidArgumentf("schema: message %q field %q: %v", m.Name, f.Name, err)
			}
			fields = append(fields, fd)
		}
		desc := reflect.NewMessageDescriptor(m.Name, fields, m.Required)
		ld.messages[m.Name] = desc
		lib.RegisterMessage(desc)
	}
	return lib, nil
}

// loader carries the descriptors built so far, so that later messages can
// resolve references to earlier ones.
type loader struct {
	enums    map[string]*reflect.EnumDescriptor
	messages map[string]*reflect.MessageDescriptor
}

func (l *loader) buildField(f FieldDoc) (*reflect.FieldDescriptor, error) {
	switch f.Type {
	case "map":
		return l.buildMapField(f)
	case "oneof":
		return l.buildOneOfField(f)
	default:
		typ, err := parseFieldType(f.Type)
		if err != nil {
			return nil, err
		}
		kind, err := parseKind(f.Kind)
		if err != nil {
			return nil, err
		}
		switch typ {
		case reflect.Enum:
			enumDesc, ok := l.enums[f.Enum]
			if !ok {
				return nil, tsdb2err.InvalidArgumentf("schema: unknown enum %q", f.Enum)
			}
			return reflect.EnumFieldDescriptor(f.Name, enumDesc, kind), nil
		case reflect.SubMessage:
			subDesc, ok := l.messages[f.Message]
			if !ok {
				return nil, tsdb2err.InvalidArgumentf("schema: unknown message %q", f.Message)
			}
			return reflect.SubMessageFieldDescriptor(f.Name, subDesc, kind), nil
		default:
			return reflect.ScalarFieldDescriptor(f.Name, typ, kind), nil
		}
	}
}

func (l *loader) buildMapField(f FieldDoc) (*reflect.FieldDescriptor, error) {
	keyType, err := parseFieldType(f.KeyType)
	if err != nil {
		return nil, err
	}
	shape, err := parseMapShape(f.MapShape)
	if err != nil {
		return nil, err
	}
	valDesc, err := l.buildMapValueField(f)
	if err != nil {
		return nil, err
	}
	return reflect.MapFieldDescriptor(f.Name, shape, keyType, valDesc), nil
}

func (l *loader) buildMapValueField(f FieldDoc) (*reflect.FieldDescriptor, error) {
	typ, err := parseFieldType(f.ValueType)
	if err != nil {
		return nil, err
	}
	switch typ {
	case reflect.Enum:
		enumDesc, ok := l.enums[f.ValueEnum]
		if !ok {
			return nil, tsdb2err.InvalidArgumentf("schema: unknown value enum %q", f.ValueEnum)
		}
		return reflect.EnumFieldDescriptor("value", enumDesc, reflect.Raw), nil
	case reflect.SubMessage:
		subDesc, ok := l.messages[f.ValueMessage]
		if !ok {
			return nil, tsdb2err.InvalidArgumentf("schema: unknown value message %q", f.ValueMessage)
		}
		return reflect.SubMessageFieldDescriptor("value", subDesc, reflect.Raw), nil
	default:
		return reflect.ScalarFieldDescriptor("value", typ, reflect.Raw), nil
	}
}

func (l *loader) buildOneOfField(f FieldDoc) (*reflect.FieldDescriptor, error) {
	arms := make([]reflect.OneOfArm, 0, len(f.OneOf))
	for _, a := range f.OneOf {
		typ, err := parseFieldType(a.Type)
		if err != nil {
			return nil, err
		}
		arm := reflect.OneOfArm{Name: a.Name, Type: typ}
		switch typ {
		case reflect.Enum:
			enumDesc, ok := l.enums[a.Enum]
			if !ok {
				return nil, tsdb2err.InvalidArgumentf("schema: unknown enum %q", a.Enum)
			}
			arm.EnumDesc = enumDesc
		case reflect.SubMessage:
			subDesc, ok := l.messages[a.Message]
			if !ok {
				return nil, tsdb2err.InvalidArgumentf("schema: unknown message %q", a.Message)
			}
			arm.SubDesc = subDesc
		}
		arms = append(arms, arm)
	}
	return reflect.OneOfFieldDescriptor(f.Name, reflect.NewOneOfDescriptor(f.Name, arms...)), nil
}

func parseFieldType(s string) (reflect.FieldType, error) {
	switch s {
	case "int32":
		return reflect.Int32, nil
	case "uint32":
		return reflect.Uint32, nil
	case "int64":
		return reflect.Int64, nil
	case "uint64":
		return reflect.Uint64, nil
	case "bool":
		return reflect.Bool, nil
	case "string":
		return reflect.String, nil
	case "bytes":
		return reflect.Bytes, nil
	case "double":
		return reflect.Double, nil
	case "float":
		return reflect.Float, nil
	case "time":
		return reflect.Time, nil
	case "duration":
		return reflect.Duration, nil
	case "enum":
		return reflect.Enum, nil
	case "message":
		return reflect.SubMessage, nil
	default:
		return 0, tsdb2err.InvalidArgumentf("schema: unknown field type %q", s)
	}
}

func parseKind(s string) (reflect.FieldKind, error) {
	switch s {
	case "", "raw":
		return reflect.Raw, nil
	case "optional":
		return reflect.Optional, nil
	case "repeated":
		return reflect.Repeated, nil
	default:
		return 0, tsdb2err.InvalidArgumentf("schema: unknown field kind %q", s)
	}
}

func parseMapShape(s string) (reflect.MapShape, error) {
	switch s {
	case "", "hash_map":
		return reflect.ShapeHashMap, nil
	case "flat_hash_map":
		return reflect.ShapeFlatHashMap, nil
	case "node_hash_map":
		return reflect.ShapeNodeHashMap, nil
	case "sorted_map":
		return reflect.ShapeSortedMap, nil
	case "btree_map":
		return reflect.ShapeBTreeMap, nil
	case "flat_map":
		return reflect.ShapeFlatMap, nil
	case "trie_map":
		return reflect.ShapeTrieMap, nil
	default:
		return 0, tsdb2err.InvalidArgumentf("schema: unknown map shape %q", s)
	}
}
