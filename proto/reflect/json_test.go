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

	"github.com/tsdb2/tsdb2/json"
	"github.com/tsdb2/tsdb2/proto/reflect"
)

func TestMessageStringifyJSON(t *testing.T) {
	d := personDescriptor()
	m := d.CreateInstance()
	require.NoError(t, m.Set("name", "Ada"))
	require.NoError(t, m.SetEnumByName("favorite_color", "BLUE"))
	require.NoError(t, m.AppendRepeated("tags", "x"))
	require.NoError(t, m.AppendRepeated("tags", "y"))

	h, err := m.Map("scores")
	require.NoError(t, err)
	require.NoError(t, h.Set("alice", int64(10)))

	oneof, err := m.OneOf("contact")
	require.NoError(t, err)
	require.NoError(t, oneof.SetValue(1, "ada@example.com"))

	out := json.Stringify(m, json.DefaultStringifyOptions())

	var decoded map[string]any
	p := json.NewParser([]byte(out), json.DefaultParseOptions())
	require.NoError(t, p.Decode(&decoded))
	assert.Equal(t, "Ada", decoded["name"])
	assert.Equal(t, "BLUE", decoded["favorite_color"])
	assert.Equal(t, []any{"x", "y"}, decoded["tags"])
	assert.Equal(t, map[string]any{"email": "ada@example.com"}, decoded["contact"])
	assert.Equal(t, map[string]any{"alice": json.Number("10")}, decoded["scores"])
	_, hasAddress := decoded["address"]
	assert.False(t, hasAddress)
}

func TestMessageParseJSON(t *testing.T) {
	d := personDescriptor()
	input := `{
		"name": "Grace",
		"favorite_color": "GREEN",
		"address": {"city": "NYC"},
		"tags": ["a", "b"],
		"scores": {"bob": 42},
		"contact": {"phone": "555-1234"}
	}`

	m := d.CreateInstance()
	p := json.NewParser([]byte(input), json.DefaultParseOptions())
	require.NoError(t, p.Decode(m))

	name, _, err := m.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "Grace", name)

	color, _, err := m.EnumName("favorite_color")
	require.NoError(t, err)
	assert.Equal(t, "GREEN", color)

	addr, ok, err := m.SubMessage("address")
	require.NoError(t, err)
	require.True(t, ok)
	city, _, err := addr.Get("city")
	require.NoError(t, err)
	assert.Equal(t, "NYC", city)

	tags, err := m.Repeated("tags")
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, tags)

	scores, err := m.Map("scores")
	require.NoError(t, err)
	v, ok, err := scores.Find("bob")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(42), v)

	contact, err := m.OneOf("contact")
	require.NoError(t, err)
	idx, err := contact.Descriptor().IndexByName("phone")
	require.NoError(t, err)
	assert.Equal(t, idx, contact.Index())
	assert.Equal(t, "555-1234", contact.Value())
}

func TestMessageParseJSONMissingRequiredField(t *testing.T) {
	d := personDescriptor()
	m := d.CreateInstance()
	p := json.NewParser([]byte(`{"favorite_color":"RED"}`), json.DefaultParseOptions())
	err := p.Decode(m)
	require.Error(t, err)
}

func TestMessageJSONRoundTrip(t *testing.T) {
	d := personDescriptor()
	original := d.CreateInstance()
	require.NoError(t, original.Set("name", "Lin"))
	require.NoError(t, original.SetEnumByName("favorite_color", "RED"))
	require.NoError(t, original.AppendRepeated("tags", "z"))

	out := json.Stringify(original, json.DefaultStringifyOptions())

	roundTripped := d.CreateInstance()
	p := json.NewParser([]byte(out), json.DefaultParseOptions())
	require.NoError(t, p.Decode(roundTripped))

	name, _, err := roundTripped.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "Lin", name)

	color, _, err := roundTripped.EnumName("favorite_color")
	require.NoError(t, err)
	assert.Equal(t, "RED", color)

	tags, err := roundTripped.Repeated("tags")
	require.NoError(t, err)
	assert.Equal(t, []any{"z"}, tags)
}
