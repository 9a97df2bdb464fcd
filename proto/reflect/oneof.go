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

// OneOfDescriptor lists the arms of a tagged union field. Index 0 is always
// the canonical empty arm, which carries VoidDescriptor as its type and no
// value.
type OneOfDescriptor struct {
	name string
	arms []OneOfArm
}

// OneOfArm describes one alternative of a oneof field. For scalar arms,
// SubDesc and EnumDesc are nil and Type is one of the non-Enum,
// non-SubMessage FieldType values. For the canonical empty arm 0, Type is
// ignored and the arm holds no value.
type OneOfArm struct {
	Name     string
	Type     FieldType
	EnumDesc *EnumDescriptor
	SubDesc  *MessageDescriptor
}

// NewOneOfDescriptor builds a OneOfDescriptor. The empty arm at index 0 is
// inserted automatically; arms should not include it.
func NewOneOfDescriptor(name string, arms ...OneOfArm) *OneOfDescriptor {
	all := make([]OneOfArm, 0, len(arms)+1)
	all = append(all, OneOfArm{Name: "none"})
	all = append(all, arms...)
	return &OneOfDescriptor{name: name, arms: all}
}

// Name returns the oneof's declared name.
func (d *OneOfDescriptor) Name() string { return d.name }

// Size returns the number of alternatives, including the empty arm.
func (d *OneOfDescriptor) Size() int { return len(d.arms) }

// ArmAt returns the arm at index, or an error if index is out of range.
func (d *OneOfDescriptor) ArmAt(index int) (OneOfArm, error) {
	if index < 0 || index >= len(d.arms) {
		return OneOfArm{}, newOutOfRange("reflect: oneof %q arm index %d out of range [0,%d)", d.name, index, len(d.arms))
	}
	return d.arms[index], nil
}

// IndexByName returns the index of the arm with the given name, or an error
// if no arm has that name. The canonical empty arm is named "none".
func (d *OneOfDescriptor) IndexByName(name string) (int, error) {
	for i, arm := range d.arms {
		if arm.Name == name {
			return i, nil
		}
	}
	return 0, newInvalidArgument("reflect: oneof %q has no arm named %q", d.name, name)
}

// oneOfValue is the runtime state of a oneof field on a Message: which arm
// is selected (0 = empty) and its held value, if any.
type oneOfValue struct {
	index int
	value any
}

// OneOfHandle is a field handle bound to a oneof field on a specific
// Message instance.
type OneOfHandle struct {
	msg  *Message
	name string
	desc *OneOfDescriptor
}

func (h *OneOfHandle) state() *oneOfValue {
	v, _ := h.msg.fields[h.name].(*oneOfValue)
	if v == nil {
		v = &oneOfValue{}
		h.msg.fields[h.name] = v
	}
	return v
}

// Descriptor returns the oneof's arm list.
func (h *OneOfHandle) Descriptor() *OneOfDescriptor { return h.desc }

// Index returns the currently selected arm (0 = empty).
func (h *OneOfHandle) Index() int { return h.state().index }

// Type returns the FieldType of the currently held arm, or an error if the
// oneof is empty.
func (h *OneOfHandle) Type() (FieldType, error) {
	s := h.state()
	if s.index == 0 {
		return 0, newFailedPrecondition("reflect: oneof %q is empty", h.name)
	}
	arm, err := h.desc.ArmAt(s.index)
	if err != nil {
		return 0, err
	}
	return arm.Type, nil
}

// Value returns the value currently held, or nil if the oneof is empty.
func (h *OneOfHandle) Value() any { return h.state().value }

// SetValue sets the oneof to the scalar arm at index with the given value.
// Fails with OutOfRange if index is invalid, and with FailedPrecondition if
// that arm is an enum or sub-message arm (those require SetEnumValue /
// SetSubMessageValue) or the empty arm (index 0 takes no value; use
// Clear).
func (h *OneOfHandle) SetValue(index int, value any) error {
	if index == 0 {
		return newFailedPrecondition("reflect: oneof %q arm 0 is the empty arm and takes no value", h.name)
	}
	arm, err := h.desc.ArmAt(index)
	if err != nil {
		return err
	}
	if arm.Type == Enum || arm.Type == SubMessage {
		return newFailedPrecondition("reflect: oneof %q arm %d (%s) requires a typed setter, not SetValue", h.name, index, arm.Type)
	}
	s := h.state()
	s.index = index
	s.value = value
	return nil
}

// SetEnumValue sets the oneof to the enum arm at index, resolving name
// through that arm's EnumDescriptor. Fails with FailedPrecondition if the
// arm at index is not an enum arm.
func (h *OneOfHandle) SetEnumValue(index int, name string) error {
	arm, err := h.desc.ArmAt(index)
	if err != nil {
		return err
	}
	if arm.Type != Enum || arm.EnumDesc == nil {
		return newFailedPrecondition("reflect: oneof %q arm %d (%s) is not an enum arm", h.name, index, arm.Name)
	}
	v, err := arm.EnumDesc.ValueByName(name)
	if err != nil {
		return err
	}
	s := h.state()
	s.index = index
	s.value = v
	return nil
}

// SetSubMessageValue sets the oneof to the sub-message arm at index. Fails
// with FailedPrecondition if the arm at index is not a sub-message arm.
func (h *OneOfHandle) SetSubMessageValue(index int, sub *Message) error {
	arm, err := h.desc.ArmAt(index)
	if err != nil {
		return err
	}
	if arm.Type != SubMessage || arm.SubDesc == nil {
		return newFailedPrecondition("reflect: oneof %q arm %d (%s) is not a sub-message arm", h.name, index, arm.Name)
	}
	s := h.state()
	s.index = index
	s.value = sub
	return nil
}

// Clear resets the oneof to its empty arm.
func (h *OneOfHandle) Clear() {
	s := h.state()
	s.index = 0
	s.value = nil
}
