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

// Package fieldname normalizes field identifiers between the snake_case
// form used by descriptors/text-format/JSON and the UpperCamelCase form
// used by generated Go struct fields.
package fieldname

import "github.com/stoewer/go-strcase"

// ToSnakeCase converts a Go-style identifier (UpperCamelCase or
// lowerCamelCase) to the snake_case form used in descriptor field names,
// text-format, and JSON keys.
func ToSnakeCase(name string) string {
	return strcase.SnakeCase(name)
}

// ToGoFieldName converts a snake_case descriptor field name to the
// UpperCamelCase form used for the corresponding exported Go struct field.
func ToGoFieldName(name string) string {
	return strcase.UpperCamelCase(name)
}
