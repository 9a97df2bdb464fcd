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

package json_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsdb2/tsdb2/json"
	"github.com/tsdb2/tsdb2/tsdb2err"
)

type record struct {
	Lorem       int64      `json:"lorem"`
	Ipsum       bool       `json:"ipsum"`
	Dolor       string     `json:"dolor"`
	Sit         float64    `json:"sit"`
	Amet        []int64    `json:"amet"`
	Consectetur []int64    `json:"consectetur"`
	Adipisci    json.Tuple `json:"adipisci"`
	Elit        *float64   `json:"elit,omitempty"`
}

const recordInput = `{"lorem":42,"ipsum":true,"dolor":"foobar","sit":3.14,"amet":[1,2,3],"consectetur":[4,5,6,7],"adipisci":[43,false,"barbaz"],"elit":2.71}`

func TestRecordRoundTrip(t *testing.T) {
	p := json.NewParser([]byte(recordInput), json.DefaultParseOptions())
	var r record
	require.NoError(t, p.Decode(&r))

	assert.Equal(t, int64(42), r.Lorem)
	assert.True(t, r.Ipsum)
	assert.Equal(t, "foobar", r.Dolor)
	assert.Equal(t, 3.14, r.Sit)
	assert.Equal(t, []int64{1, 2, 3}, r.Amet)
	assert.Equal(t, []int64{4, 5, 6, 7}, r.Consectetur)
	require.NotNil(t, r.Elit)
	assert.Equal(t, 2.71, *r.Elit)

	out := json.Stringify(r, json.DefaultStringifyOptions())
	assert.Equal(t, recordInput, out)
}

func TestPrettyPrinting(t *testing.T) {
	type small struct {
		Lorem int64      `json:"lorem"`
		Tags  []int64    `json:"tags"`
		Tuple json.Tuple `json:"tuple"`
	}
	v := small{Lorem: 42, Tags: []int64{1, 2}, Tuple: json.NewTuple(int64(43), false, "barbaz")}
	out := json.Stringify(v, json.StringifyOptions{Pretty: true, IndentWidth: 2})
	assert.Contains(t, out, "{\n  \"lorem\": 42,\n")
	assert.Contains(t, out, "[43, false, \"barbaz\"]")
}

func TestExtraFields(t *testing.T) {
	type twoField struct {
		Lorem int64 `json:"lorem"`
		Ipsum bool  `json:"ipsum"`
	}
	input := `{"lorem":42,"extra":null,"ipsum":true}`

	p := json.NewParser([]byte(input), json.ParseOptions{AllowExtraFields: false})
	var v twoField
	err := p.Decode(&v)
	require.Error(t, err)
	code, ok := tsdb2err.GetCode(err)
	require.True(t, ok)
	assert.Equal(t, tsdb2err.InvalidArgument, code)

	p = json.NewParser([]byte(input), json.ParseOptions{AllowExtraFields: true})
	v = twoField{}
	require.NoError(t, p.Decode(&v))
	assert.Equal(t, int64(42), v.Lorem)
	assert.True(t, v.Ipsum)
}

func TestMissingRequiredField(t *testing.T) {
	type twoField struct {
		Lorem int64 `json:"lorem"`
		Ipsum bool  `json:"ipsum"`
	}
	p := json.NewParser([]byte(`{"lorem":42}`), json.DefaultParseOptions())
	var v twoField
	err := p.Decode(&v)
	require.Error(t, err)
}

func TestUnicodeEscape(t *testing.T) {
	p := json.NewParser([]byte(`"A"`), json.DefaultParseOptions())
	var s string
	require.NoError(t, p.Decode(&s))
	assert.Equal(t, "A", s)

	p = json.NewParser([]byte("\"\\u0123\""), json.DefaultParseOptions())
	s = ""
	err := p.Decode(&s)
	require.Error(t, err)
	code, ok := tsdb2err.GetCode(err)
	require.True(t, ok)
	assert.Equal(t, tsdb2err.Unimplemented, code)
}

func TestMapDecode(t *testing.T) {
	p := json.NewParser([]byte(`{"a":1,"b":2}`), json.DefaultParseOptions())
	m := make(map[string]int64)
	require.NoError(t, p.Decode(&m))
	assert.Equal(t, map[string]int64{"a": 1, "b": 2}, m)
}

func TestArrayLengthCheck(t *testing.T) {
	p := json.NewParser([]byte(`[1,2,3]`), json.DefaultParseOptions())
	var a [2]int64
	err := p.Decode(&a)
	require.Error(t, err)
}
