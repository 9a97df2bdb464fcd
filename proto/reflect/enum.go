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
	"github.com/tsdb2/tsdb2/tsdb2err"
)

// EnumDescriptor holds the fixed (name, underlying-value) pairs of an enum
// type: a name list in declaration order plus the two maps needed to look
// either direction up in O(1).
type EnumDescriptor struct {
	name       string
	names      []string
	nameToVal  map[string]int32
	valToName  map[int32]string
}

// NewEnumDescriptor builds an EnumDescriptor from (name, value) pairs given
// in declaration order. Panics if a name or value repeats: that is a bug in
// the caller's schema, not a runtime condition.
func NewEnumDescriptor(name string, values ...EnumValue) *EnumDescriptor {
	d := &EnumDescriptor{
		name:      name,
		names:     make([]string, 0, len(values)),
		nameToVal: make(map[string]int32, len(values)),
		valToName: make(map[int32]string, len(values)),
	}
	for _, v := range values {
		if _, ok := d.nameToVal[v.Name]; ok {
			panic("reflect: duplicate enum value name " + v.Name + " in " + name)
		}
		if _, ok := d.valToName[v.Value]; ok {
			panic("reflect: duplicate enum underlying value for " + v.Name + " in " + name)
		}
		d.names = append(d.names, v.Name)
		d.nameToVal[v.Name] = v.Value
		d.valToName[v.Value] = v.Name
	}
	return d
}

// EnumValue is one (name, underlying_value) pair passed to
// NewEnumDescriptor.
type EnumValue struct {
	Name  string
	Value int32
}

// Name returns the enum type's own name.
func (d *EnumDescriptor) Name() string { return d.name }

// Names returns the value names in declaration order. The returned slice
// must not be mutated.
func (d *EnumDescriptor) Names() []string { return d.names }

// ValueByName resolves a name to its underlying numeric value.
func (d *EnumDescriptor) ValueByName(name string) (int32, error) {
	v, ok := d.nameToVal[name]
	if !ok {
		return 0, tsdb2err.InvalidArgumentf("reflect: unknown enum value name %q in %s", name, d.name)
	}
	return v, nil
}

// NameByValue resolves an underlying numeric value to its name.
func (d *EnumDescriptor) NameByValue(value int32) (string, error) {
	n, ok := d.valToName[value]
	if !ok {
		return "", tsdb2err.InvalidArgumentf("reflect: unknown enum value %d in %s", value, d.name)
	}
	return n, nil
}

// HasName reports whether name is a known value of this enum.
func (d *EnumDescriptor) HasName(name string) bool {
	_, ok := d.nameToVal[name]
	return ok
}

// HasValue reports whether value is a known underlying value of this enum.
func (d *EnumDescriptor) HasValue(value int32) bool {
	_, ok := d.valToName[value]
	return ok
}

// SetValueByName resolves name and stores the resulting value through ptr
// in a single step, combining ValueByName with the store.
func (d *EnumDescriptor) SetValueByName(ptr *int32, name string) error {
	v, err := d.ValueByName(name)
	if err != nil {
		return err
	}
	*ptr = v
	return nil
}
