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

package fingerprint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsdb2/tsdb2/common/fingerprint"
)

func TestDeterministic(t *testing.T) {
	a := fingerprint.Of("hello world")
	b := fingerprint.Of("hello world")
	assert.Equal(t, a, b)
}

func TestDistinctValuesDiffer(t *testing.T) {
	assert.NotEqual(t, fingerprint.Of("hello"), fingerprint.Of("world"))
	assert.NotEqual(t, fingerprint.Of(int64(1)), fingerprint.Of(int64(2)))
}

func TestEmptyInputIsStable(t *testing.T) {
	state := fingerprint.NewState()
	require.Equal(t, state.Finish(), fingerprint.NewState().Finish())
}

func TestOrderMatters(t *testing.T) {
	first := fingerprint.OrderedRange(fingerprint.NewState(), []string{"a", "b"}).Finish()
	second := fingerprint.OrderedRange(fingerprint.NewState(), []string{"b", "a"}).Finish()
	assert.NotEqual(t, first, second)
}

func TestUnorderedRangeIgnoresOrder(t *testing.T) {
	first := fingerprint.UnorderedRange(fingerprint.NewState(), []string{"a", "b", "c"}).Finish()
	second := fingerprint.UnorderedRange(fingerprint.NewState(), []string{"c", "a", "b"}).Finish()
	assert.Equal(t, first, second)
}

type point struct {
	X, Y float64
}

func (p point) Fingerprint(state fingerprint.State) fingerprint.State {
	return fingerprint.Combine(state, p.X, p.Y)
}

func TestCustomFingerprinter(t *testing.T) {
	p1 := point{X: 1, Y: 2}
	p2 := point{X: 1, Y: 2}
	p3 := point{X: 2, Y: 1}
	assert.Equal(t, fingerprint.Of(p1), fingerprint.Of(p2))
	assert.NotEqual(t, fingerprint.Of(p1), fingerprint.Of(p3))
}

func TestPointerAndNil(t *testing.T) {
	v := 42
	var nilPtr *int
	assert.NotEqual(t, fingerprint.Of(&v), fingerprint.Of(nilPtr))
	assert.Equal(t, fingerprint.Of(nilPtr), fingerprint.Of(nil))
}

func TestStructReflection(t *testing.T) {
	type pair struct {
		A string
		B int
	}
	a := fingerprint.Of(pair{A: "x", B: 1})
	b := fingerprint.Of(pair{A: "x", B: 1})
	c := fingerprint.Of(pair{A: "x", B: 2})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestKnownDigest(t *testing.T) {
	// Regression guard: the exact digest for a fixed-seed fingerprint of a
	// known string must never change across releases.
	got := fingerprint.Of("")
	assert.Equal(t, uint64(0xddb913e4c144e8ec), got)
}
