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

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsdb2/tsdb2/schema"
)

const testSchema = `
enums:
  - name: Color
    values:
      - name: RED
        value: 0
      - name: GREEN
        value: 1
      - name: BLUE
        value: 2

messages:
  - name: Address
    required: [city]
    fields:
      - name: city
        type: string
      - name: zip
        type: string
        kind: optional

  - name: Person
    required: [name]
    fields:
      - name: name
        type: string
      - name: favorite_color
        type: enum
        enum: Color
      - name: home
        type: message
        message: Address
        kind: optional
      - name: tags
        type: string
        kind: repeated
      - name: scores
        type: map
        map_shape: flat_map
        key_type: string
        value_type: int64
      - name: contact
        type: oneof
        oneof:
          - name: email
            type: string
          - name: fallback_color
            type: enum
            enum: Color
          - name: secondary_address
            type: message
            message: Address
`

func TestLoadSchema(t *testing.T) {
	lib, err := schema.Load([]byte(testSchema))
	require.NoError(t, err)

	colorDesc, ok := lib.Enum("Color")
	require.True(t, ok)
	assert.True(t, colorDesc.HasName("GREEN"))

	addrDesc, ok := lib.Message("Address")
	require.True(t, ok)
	assert.True(t, addrDesc.HasField("city"))
	assert.Equal(t, []string{"city"}, addrDesc.GetRequiredFieldNames())

	personDesc, ok := lib.Message("Person")
	require.True(t, ok)
	require.True(t, personDesc.HasField("favorite_color"))
	require.True(t, personDesc.HasField("home"))
	require.True(t, personDesc.HasField("scores"))
	require.True(t, personDesc.HasField("contact"))

	msg := personDesc.CreateInstance()
	require.NoError(t, msg.Set("name", "Ada"))
	require.NoError(t, msg.SetEnumByName("favorite_color", "BLUE"))

	sub := addrDesc.CreateInstance()
	require.NoError(t, sub.Set("city", "London"))
	require.NoError(t, msg.SetSubMessage("home", sub))

	mapHandle, err := msg.Map("scores")
	require.NoError(t, err)
	require.NoError(t, mapHandle.Set("algebra", int64(90)))

	oneOfHandle, err := msg.OneOf("contact")
	require.NoError(t, err)
	idx, err := oneOfHandle.Descriptor().IndexByName("email")
	require.NoError(t, err)
	require.NoError(t, oneOfHandle.SetValue(idx, "ada@example.com"))

	color, _, err := msg.EnumName("favorite_color")
	require.NoError(t, err)
	assert.Equal(t, "BLUE", color)
}

func TestLoadSchemaUnknownMessageReference(t *testing.T) {
	_, err := schema.Load([]byte(`
messages:
  - name: Person
    fields:
      - name: home
        type: message
        message: Address
`))
	require.Error(t, err)
}

func TestLoadSchemaForwardReferenceRejected(t *testing.T) {
	_, err := schema.Load([]byte(`
messages:
  - name: Person
    fields:
      - name: home
        type: message
        message: Address
  - name: Address
    fields:
      - name: city
        type: string
`))
	require.Error(t, err)
}

func TestLoadSchemaMalformedYAML(t *testing.T) {
	_, err := schema.Load([]byte("not: [valid"))
	require.Error(t, err)
}
