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

package fieldname_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsdb2/tsdb2/internal/fieldname"
)

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "favorite_color", fieldname.ToSnakeCase("favoriteColor"))
	assert.Equal(t, "favorite_color", fieldname.ToSnakeCase("FavoriteColor"))
	assert.Equal(t, "id", fieldname.ToSnakeCase("id"))
}

func TestToGoFieldName(t *testing.T) {
	assert.Equal(t, "FavoriteColor", fieldname.ToGoFieldName("favorite_color"))
	assert.Equal(t, "Id", fieldname.ToGoFieldName("id"))
}

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"favorite_color", "secondary_address", "score_value"} {
		assert.Equal(t, name, fieldname.ToSnakeCase(fieldname.ToGoFieldName(name)))
	}
}
