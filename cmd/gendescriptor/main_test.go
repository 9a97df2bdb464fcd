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

package main

import (
	"strings"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsdb2/tsdb2/schema"
)

func TestEmitEnum(t *testing.T) {
	f := jen.NewFile("descriptors")
	emitEnum(f, schema.EnumDoc{
		Name: "Color",
		Values: []schema.EnumValueDoc{
			{Name: "RED", Value: 0},
			{Name: "GREEN", Value: 1},
		},
	})
	src := f.GoString()
	assert.Contains(t, src, "ColorEnum")
	assert.Contains(t, src, "NewEnumDescriptor")
	assert.Contains(t, src, `"RED"`)
	assert.Contains(t, src, `"GREEN"`)
}

func TestEmitMessage(t *testing.T) {
	f := jen.NewFile("descriptors")
	emitMessage(f, schema.MessageDoc{
		Name:     "Address",
		Required: []string{"city"},
		Fields: []schema.FieldDoc{
			{Name: "city", Type: "string"},
			{Name: "zip", Type: "string", Kind: "optional"},
		},
	})
	src := f.GoString()
	assert.Contains(t, src, "func AddressDescriptor()")
	assert.Contains(t, src, "NewMessageDescriptor")
	assert.Contains(t, src, `"city"`)
	assert.True(t, strings.Contains(src, "ScalarFieldDescriptor"))
}

func TestEmitMessageWithMapAndOneOf(t *testing.T) {
	f := jen.NewFile("descriptors")
	emitEnum(f, schema.EnumDoc{Name: "Color", Values: []schema.EnumValueDoc{{Name: "RED", Value: 0}}})
	emitMessage(f, schema.MessageDoc{
		Name: "Person",
		Fields: []schema.FieldDoc{
			{Name: "name", Type: "string"},
			{
				Name:      "scores",
				Type:      "map",
				MapShape:  "flat_map",
				KeyType:   "string",
				ValueType: "int64",
			},
			{
				Name: "contact",
				Type: "oneof",
				OneOf: []schema.OneOfArmDoc{
					{Name: "email", Type: "string"},
					{Name: "fallback_color", Type: "enum", Enum: "Color"},
				},
			},
		},
	})
	src := f.GoString()
	require.Contains(t, src, "MapFieldDescriptor")
	assert.Contains(t, src, "ShapeFlatMap")
	assert.Contains(t, src, "OneOfFieldDescriptor")
	assert.Contains(t, src, "NewOneOfDescriptor")
}

func TestFieldTypeExprPanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { fieldTypeExpr("not-a-type") })
}

func TestKindExprDefaultsToRaw(t *testing.T) {
	f := jen.NewFile("descriptors")
	f.Var().Id("x").Op("=").Add(kindExpr(""))
	assert.Contains(t, f.GoString(), "Raw")
}
