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

// Package reflect implements a reflective message model: descriptors
// (enum and message) that describe a schema, and dynamic [Message] values
// that hold data conforming to a [MessageDescriptor], all inspectable and
// mutable purely through field names rather than compiled-in Go struct
// field accesses.
//
// This is deliberately its own model rather than a wrapper around
// google.golang.org/protobuf/reflect/protoreflect: there is no binary wire
// format here, no schema evolution, and no compatibility requirement with
// the Protobuf ecosystem. A [MessageDescriptor] is built once (by hand, by
// [github.com/tsdb2/tsdb2/schema], or by generated code) and then used to
// construct, read and mutate any number of [Message] instances.
//
// # Field categories
//
// Every field on a message falls into one of five categories, matching
// [FieldKind]: a raw scalar/enum/submessage (always present, defaulting to
// the zero value), an optional one (nil until set), a repeated one (a
// slice), a map (one of several backing shapes, see [MapShape]), or a
// member of a oneof (a tagged union with a canonical empty arm).
package reflect
