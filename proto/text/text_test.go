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

package text_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsdb2/tsdb2/proto/reflect"
	"github.com/tsdb2/tsdb2/proto/text"
	"github.com/tsdb2/tsdb2/tsdb2err"
)

func colorEnum() *reflect.EnumDescriptor {
	return reflect.NewEnumDescriptor("Color",
		reflect.EnumValue{Name: "RED", Value: 0},
		reflect.EnumValue{Name: "GREEN", Value: 1},
		reflect.EnumValue{Name: "BLUE", Value: 2},
	)
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
	contact := reflect.OneOfFieldDescriptor("contact", reflect.NewOneOfDescriptor("contact",
		reflect.OneOfArm{Name: "email", Type: reflect.String},
		reflect.OneOfArm{Name: "fallback_color", Type: reflect.Enum, EnumDesc: colorEnum()},
		reflect.OneOfArm{Name: "secondary_address", Type: reflect.SubMessage, SubDesc: addressDescriptor()},
	))
	return reflect.NewMessageDescriptor("Person",
		[]*reflect.FieldDescriptor{
			reflect.ScalarFieldDescriptor("name", reflect.String, reflect.Raw),
			reflect.EnumFieldDescriptor("favorite_color", colorEnum(), reflect.Raw),
			reflect.SubMessageFieldDescriptor("address", addressDescriptor(), reflect.Optional),
			reflect.ScalarFieldDescriptor("tags", reflect.String, reflect.Repeated),
			reflect.SubMessageFieldDescriptor("aliases", addressDescriptor(), reflect.Repeated),
			reflect.MapFieldDescriptor("scores", reflect.ShapeFlatMap, reflect.String,
				reflect.ScalarFieldDescriptor("score_value", reflect.Int64, reflect.Raw)),
			contact,
		},
		[]string{"name"},
	)
}

func TestParseScalarAndEnumFields(t *testing.T) {
	input := `
		name: "Ada Lovelace"
		favorite_color: BLUE
		tags: ["math", "computing"]
	`
	msg, err := text.Unmarshal([]byte(input), personDescriptor())
	require.NoError(t, err)

	name, _, err := msg.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", name)

	color, _, err := msg.EnumName("favorite_color")
	require.NoError(t, err)
	assert.Equal(t, "BLUE", color)

	tags, err := msg.Repeated("tags")
	require.NoError(t, err)
	assert.Equal(t, []any{"math", "computing"}, tags)
}

func TestParseSubMessageOptionalColon(t *testing.T) {
	withColon := `name: "Ada" address: { city: "London" }`
	withoutColon := `name: "Ada" address { city: "London" }`
	for _, input := range []string{withColon, withoutColon} {
		msg, err := text.Unmarshal([]byte(input), personDescriptor())
		require.NoError(t, err)
		addr, ok, err := msg.SubMessage("address")
		require.NoError(t, err)
		require.True(t, ok)
		city, _, err := addr.Get("city")
		require.NoError(t, err)
		assert.Equal(t, "London", city)
	}
}

func TestParseRepeatedSubMessage(t *testing.T) {
	input := `
		name: "Ada"
		aliases: { city: "London" }
		aliases: { city: "Paris" }
	`
	msg, err := text.Unmarshal([]byte(input), personDescriptor())
	require.NoError(t, err)
	aliases, err := msg.Repeated("aliases")
	require.NoError(t, err)
	require.Len(t, aliases, 2)
	city0, _, err := aliases[0].(*reflect.Message).Get("city")
	require.NoError(t, err)
	assert.Equal(t, "London", city0)
	city1, _, err := aliases[1].(*reflect.Message).Get("city")
	require.NoError(t, err)
	assert.Equal(t, "Paris", city1)
}

func TestParseMapField(t *testing.T) {
	input := `
		name: "Ada"
		scores { key: "algebra" value: 90 }
		scores { key: "calculus" value: 95 }
	`
	msg, err := text.Unmarshal([]byte(input), personDescriptor())
	require.NoError(t, err)
	h, err := msg.Map("scores")
	require.NoError(t, err)
	v, ok, err := h.Find("algebra")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(90), v)
}

func TestParseOneOfField(t *testing.T) {
	input := `name: "Ada" contact: { email: "ada@example.com" }`
	msg, err := text.Unmarshal([]byte(input), personDescriptor())
	require.NoError(t, err)
	h, err := msg.OneOf("contact")
	require.NoError(t, err)
	assert.Equal(t, 1, h.Index())
	assert.Equal(t, "ada@example.com", h.Value())
}

func TestParseOneOfEnumArm(t *testing.T) {
	input := `name: "Ada" contact: { fallback_color: GREEN }`
	msg, err := text.Unmarshal([]byte(input), personDescriptor())
	require.NoError(t, err)
	h, err := msg.OneOf("contact")
	require.NoError(t, err)
	assert.Equal(t, 2, h.Index())
	assert.Equal(t, int32(1), h.Value())
}

func TestParseOneOfSubMessageArm(t *testing.T) {
	input := `name: "Ada" contact: { secondary_address { city: "Turin" } }`
	msg, err := text.Unmarshal([]byte(input), personDescriptor())
	require.NoError(t, err)
	h, err := msg.OneOf("contact")
	require.NoError(t, err)
	assert.Equal(t, 3, h.Index())
	sub := h.Value().(*reflect.Message)
	city, _, err := sub.Get("city")
	require.NoError(t, err)
	assert.Equal(t, "Turin", city)
}

func TestParseMissingRequiredField(t *testing.T) {
	_, err := text.Unmarshal([]byte(`favorite_color: RED`), personDescriptor())
	require.Error(t, err)
	code, ok := tsdb2err.GetCode(err)
	require.True(t, ok)
	assert.Equal(t, tsdb2err.InvalidArgument, code)
}

func TestParseDuplicateSingularField(t *testing.T) {
	_, err := text.Unmarshal([]byte(`name: "Ada" name: "Grace"`), personDescriptor())
	require.Error(t, err)
}

func TestParseComment(t *testing.T) {
	input := `
		# a leading comment
		name: "Ada" # trailing comment
	`
	msg, err := text.Unmarshal([]byte(input), personDescriptor())
	require.NoError(t, err)
	name, _, err := msg.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "Ada", name)
}

func TestParseUnsupportedUnicodeEscape(t *testing.T) {
	_, err := text.Unmarshal([]byte(`name: "A"`), personDescriptor())
	require.NoError(t, err)

	_, err = text.Unmarshal([]byte("name: \"\\u0123\""), personDescriptor())
	require.Error(t, err)
	code, ok := tsdb2err.GetCode(err)
	require.True(t, ok)
	assert.Equal(t, tsdb2err.Unimplemented, code)
}

func TestParseCamelCaseFieldName(t *testing.T) {
	msg, err := text.Unmarshal([]byte(`name: "Ada" favoriteColor: BLUE`), personDescriptor())
	require.NoError(t, err)
	color, _, err := msg.EnumName("favorite_color")
	require.NoError(t, err)
	assert.Equal(t, "BLUE", color)
}

func TestWriterRoundTrip(t *testing.T) {
	desc := personDescriptor()
	msg := desc.CreateInstance()
	require.NoError(t, msg.Set("name", "Ada"))
	require.NoError(t, msg.SetEnumByName("favorite_color", "GREEN"))
	require.NoError(t, msg.AppendRepeated("tags", "math"))
	h, err := msg.Map("scores")
	require.NoError(t, err)
	require.NoError(t, h.Set("algebra", int64(90)))

	out, err := text.Marshal(msg)
	require.NoError(t, err)

	reparsed, err := text.Unmarshal([]byte(out), desc)
	require.NoError(t, err)
	name, _, err := reparsed.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "Ada", name)
	color, _, err := reparsed.EnumName("favorite_color")
	require.NoError(t, err)
	assert.Equal(t, "GREEN", color)
	tags, err := reparsed.Repeated("tags")
	require.NoError(t, err)
	assert.Equal(t, []any{"math"}, tags)
}

func TestParseMessageArray(t *testing.T) {
	p := text.NewParser([]byte(`[ { city: "London" }, { city: "Paris" } ]`))
	addrs, err := p.ParseMessageArray(addressDescriptor())
	require.NoError(t, err)
	require.Len(t, addrs, 2)
	city, _, err := addrs[1].Get("city")
	require.NoError(t, err)
	assert.Equal(t, "Paris", city)
}
