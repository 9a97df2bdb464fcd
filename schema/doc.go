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

// Package schema loads a YAML declaration of enum and message types into a
// proto/reflect.Library, as an alternative to hand-writing
// reflect.NewMessageDescriptor calls directly.
//
// Enums and messages are built in a single pass, in declaration order:
// a message field that references another message or enum must name one
// that appears earlier in the document. reflect.MessageDescriptor has no
// way to patch a field in after construction, so there's no second pass
// available to resolve a forward reference; schemas with mutually
// referential messages aren't expressible here.
package schema
