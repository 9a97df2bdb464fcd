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

// Package text implements a protobuf-like text format that drives the
// reflective message model in [github.com/tsdb2/tsdb2/proto/reflect]:
// field entries of the form `name: value`, braced or angle-bracketed
// sub-messages, bracketed repeated arrays, and map entries. There is no
// independent grammar library here; [Parser] and [Writer] walk a
// [reflect.MessageDescriptor] field by field, the same way the JSON codec
// walks a struct's tags.
//
// Map entries use a synthetic `{ key: <k> value: <v> }, ...` grammar of
// this module's own design: the format this package is modeled on never
// actually implemented map parsing (its ParseMap was a stub), so there is
// no precedent to follow here.
package text
