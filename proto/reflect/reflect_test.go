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

package reflect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsdb2/tsdb2/proto/reflect"
	"github.com/tsdb2/tsdb2/tsdb2err"
)

func colorEnum() *reflect.EnumDescriptor {
	return reflect.NewEnumDescriptor("Color",
		reflect.EnumValue{Name: "RED", Value: 0},
		reflect.EnumValue{Name: "GREEN", Value: 1},
		reflect.EnumValue{Name: "BLUE", Value: 2},
	)
}

func TestEnumDescriptor(t *testing.T) {
	e := colorEnum()
	assert.Equal(t, []string{"RED", "GREEN", "BLUE"}, e.Names())

	v, err := e.ValueByName("GREEN")
	require.NoError(t, err)
	assert.Equal(t, int32(1), v)

	n, err := e.NameByValue(2)
	require.NoError(t, err)
	assert.Equal(t, "BLUE", n)

	_, err = e.ValueByName("PURPLE")
	require.Error(t, err)
	code, ok := tsdb2err.GetCode(err)
	require.True(t, ok)
	assert.Equal(t, tsdb2err.InvalidArgument, code)
}

func addressDescriptor() *reflect.MessageDescriptor {
	return reflect.NewMessageDescriptor("Address",
		[]*reflect.FieldDescriptor{
			reflect.ScalarFieldDescriptor("city", reflect.String, reflect.Raw),
			reflect.ScalarFieldDescriptor("zip", reflect.String, reflect.Optional),
		},
		[]string{"city"},
	)
}

func personDescriptor() *reflect.MessageDescriptor {
	colorField := reflect.EnumFieldDescriptor("favorite_color", colorEnum(), reflect.Raw)
	addrField := reflect.SubMessageFieldDescriptor("address", addressDescriptor(), reflect.Optional)
	tagsField := reflect.ScalarFieldDescriptor("tags", reflect.String, reflect.Repeated)
	scoresField := reflect.MapFieldDescriptor("scores", reflect.ShapeFlatMap, reflect.String,
		reflect.ScalarFieldDescriptor("score_value", reflect.Int64, reflect.Raw))
	contactField := reflect.OneOfFieldDescriptor("contact", reflect.NewOneOfDescriptor("contact",
		reflect.OneOfArm{Name: "email", Type: reflect.String},
		reflect.OneOfArm{Name: "phone", Type: reflect.String},
	))
	return reflect.NewMessageDescriptor("Person",
		[]*reflect.FieldDescriptor{
			reflect.ScalarFieldDescriptor("name", reflect.String, reflect.Raw),
			colorField,
			addrField,
			tagsField,
			scoresField,
			contactField,
		},
		[]string{"name"},
	)
}

func TestMessageDescriptorFieldIntrospection(t *testing.T) {
	d := personDescriptor()
	assert.Equal(t, []string{"name", "favorite_color", "address", "tags", "scores", "contact"}, d.GetAllFieldNames())
	assert.Equal(t, []string{"name"}, d.GetRequiredFieldNames())

	typ, err := d.GetFieldType("name")
	require.NoError(t, err)
	assert.Equal(t, reflect.String, typ)

	kind, err := d.GetFieldKind("address")
	require.NoError(t, err)
	assert.Equal(t, reflect.Optional, kind)

	_, err = d.GetFieldType("scores")
	require.Error(t, err)
}

func TestLabeledFieldTypeArithmetic(t *testing.T) {
	f := reflect.ScalarFieldDescriptor("x", reflect.Int64, reflect.Repeated)
	assert.Equal(t, reflect.Int64, f.Type())
	assert.Equal(t, reflect.Repeated, f.Kind())
}

func TestRawAndOptionalScalarFields(t *testing.T) {
	d := personDescriptor()
	m := d.CreateInstance()

	require.NoError(t, m.Set("name", "Ada"))
	v, ok, err := m.Get("name")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Ada", v)

	has, err := m.Has("address")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestEnumField(t *testing.T) {
	d := personDescriptor()
	m := d.CreateInstance()

	require.NoError(t, m.SetEnumByName("favorite_color", "GREEN"))
	name, ok, err := m.EnumName("favorite_color")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "GREEN", name)

	err = m.SetEnumByName("favorite_color", "PURPLE")
	require.Error(t, err)
}

func TestSubMessageField(t *testing.T) {
	d := personDescriptor()
	m := d.CreateInstance()

	addr, ok, err := m.SubMessage("address")
	require.NoError(t, err)
	require.False(t, ok)
	assert.Nil(t, addr)

	fresh, err := d.GetSubMessageFieldDescriptor("address")
	require.NoError(t, err)
	inst := fresh.CreateInstance()
	require.NoError(t, inst.Set("city", "Paris"))
	require.NoError(t, m.SetSubMessage("address", inst))

	addr, ok, err = m.SubMessage("address")
	require.NoError(t, err)
	require.True(t, ok)
	city, _, err := addr.Get("city")
	require.NoError(t, err)
	assert.Equal(t, "Paris", city)
}

func TestRepeatedField(t *testing.T) {
	d := personDescriptor()
	m := d.CreateInstance()

	require.NoError(t, m.AppendRepeated("tags", "a"))
	require.NoError(t, m.AppendRepeated("tags", "b"))

	tags, err := m.Repeated("tags")
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, tags)

	require.NoError(t, m.SetRepeatedAt("tags", 0, "z"))
	tags, _ = m.Repeated("tags")
	assert.Equal(t, []any{"z", "b"}, tags)

	err = m.SetRepeatedAt("tags", 5, "oops")
	require.Error(t, err)
	code, ok := tsdb2err.GetCode(err)
	require.True(t, ok)
	assert.Equal(t, tsdb2err.OutOfRange, code)
}

func TestMapField(t *testing.T) {
	d := personDescriptor()
	m := d.CreateInstance()

	h, err := m.Map("scores")
	require.NoError(t, err)
	assert.True(t, h.IsOrdered())

	require.NoError(t, h.Set("alice", int64(10)))
	require.NoError(t, h.Set("bob", int64(20)))

	v, ok, err := h.Find("alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(10), v)

	_, _, err = h.Find(42)
	require.Error(t, err)
	code, ok := tsdb2err.GetCode(err)
	require.True(t, ok)
	assert.Equal(t, tsdb2err.FailedPrecondition, code)

	var keys []string
	for k := range h.All() {
		keys = append(keys, k.(string))
	}
	assert.Equal(t, []string{"alice", "bob"}, keys)
}

func TestOneOfField(t *testing.T) {
	d := personDescriptor()
	m := d.CreateInstance()

	h, err := m.OneOf("contact")
	require.NoError(t, err)
	assert.Equal(t, 0, h.Index())

	require.NoError(t, h.SetValue(1, "ada@example.com"))
	assert.Equal(t, 1, h.Index())
	assert.Equal(t, "ada@example.com", h.Value())

	err = h.SetValue(99, "nope")
	require.Error(t, err)

	h.Clear()
	assert.Equal(t, 0, h.Index())
}

func TestCloneIsDeep(t *testing.T) {
	d := personDescriptor()
	m := d.CreateInstance()
	require.NoError(t, m.AppendRepeated("tags", "a"))

	clone := m.Clone()
	require.NoError(t, clone.AppendRepeated("tags", "b"))

	tags, _ := m.Repeated("tags")
	cloneTags, _ := clone.Repeated("tags")
	assert.Equal(t, []any{"a"}, tags)
	assert.Equal(t, []any{"a", "b"}, cloneTags)
}

func TestLibraryRegistration(t *testing.T) {
	lib := reflect.NewLibrary()
	d := lib.RegisterMessage(addressDescriptor())
	got, ok := lib.Message("Address")
	require.True(t, ok)
	assert.Same(t, d, got)

	_, ok = lib.Message("NoSuchMessage")
	assert.False(t, ok)
}
