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

package assert_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tsdb2/tsdb2/internal/assert"
)

func TestThatPassesWhenTrue(t *testing.T) {
	require.NotPanics(t, func() {
		assert.That(1+1 == 2, "math is broken")
	})
}

func TestThatPanicsWhenFalse(t *testing.T) {
	require.PanicsWithValue(t, "value out of range: 5", func() {
		assert.That(false, "value out of range: %d", 5)
	})
}

func TestUnreachablePanics(t *testing.T) {
	require.PanicsWithValue(t, "should never get here", func() {
		assert.Unreachable("should never get here")
	})
}
