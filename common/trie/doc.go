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

// Package trie implements Set and Map, string-keyed containers stored as a
// compressed trie (a.k.a. radix tree): a tree of edges labeled with
// substrings rather than single characters, collapsed so that no
// non-terminal internal node has exactly one child and no edge label is
// empty.
//
// Compared to a plain sorted slice, a trie shares common prefixes across
// keys, which pays off for large key sets with a lot of prefix overlap
// (e.g. path-like or hierarchical keys). Iteration order is always
// lexicographic.
//
// Notable differences from an ordinary ordered map of strings:
//
//   - Iterators are cheap to create and move but relatively expensive to
//     copy: each holds a stack of frames proportional to the depth of the
//     tree at the iterator's current position.
//   - Iterators are not fully bidirectional; forward and reverse iteration
//     are both supported but as two distinct, monodirectional iterator
//     kinds.
//   - Set and Map both expose Filter/FilterPrefix views driven by a regular
//     expression, letting a caller enumerate only the keys (or key
//     prefixes) matching a pattern.
package trie
