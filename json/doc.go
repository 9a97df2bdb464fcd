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

// Package json implements a small RFC-8259-ish JSON parser and
// stringifier, independent of encoding/json so that it can plug directly
// into the reflective message model: anything implementing [Unmarshaler] /
// [Marshaler] participates in parsing/stringifying the same way a struct
// field does.
//
// The accepted surface is deliberately narrower than full JSON: string
// escapes recognize only `\u00XX` (the high-byte range); any other
// `\uXXXX` escape is a recognized-but-unsupported feature and fails with
// [tsdb2err.Unimplemented] rather than being misinterpreted.
package json
