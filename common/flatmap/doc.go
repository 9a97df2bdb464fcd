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

// Package flatmap provides FlatMap and FlatSet, drop-in-ish replacements for
// a sorted map/set backed by a single contiguous slice rather than a tree of
// individually-allocated nodes.
//
// When read-mostly, a flat map is more cache-friendly than a node-based
// ordered map: all entries live in one heap block, and lookups are a binary
// search rather than a pointer-chasing tree walk. Insertions and deletions
// are O(n) due to the required shift, so FlatMap is best suited to small to
// medium, read-heavy collections (e.g. descriptor tables compiled once and
// then queried many times).
package flatmap
