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

package trie

// frame is one level of the explicit stack an Iterator walks instead of
// recursing: it remembers the accumulated key prefix down to this node, the
// node itself, which child to visit next, and whether this node's own
// entry (if present) has already been produced.
type frame[V any] struct {
	prefix      string
	node        *node[V]
	childIndex  int
	yieldedSelf bool
}

// Iterator walks Set/Map entries in ascending lexicographic key order.
type Iterator[V any] struct {
	stack []frame[V]
}

func newIterator[V any](root *node[V]) *Iterator[V] {
	return &Iterator[V]{stack: []frame[V]{{node: root}}}
}

// Done reports whether iteration is finished.
func (it *Iterator[V]) Done() bool { return len(it.stack) == 0 }

// Next advances the iterator and returns the next key/value pair, and
// false once iteration is exhausted.
func (it *Iterator[V]) Next() (string, V, bool) {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if !top.yieldedSelf {
			top.yieldedSelf = true
			if top.node.present {
				return top.prefix, top.node.value, true
			}
		}
		if top.childIndex < top.node.children.Len() {
			entry := top.node.children.EntryAt(top.childIndex)
			top.childIndex++
			it.stack = append(it.stack, frame[V]{prefix: top.prefix + entry.Key, node: entry.Value})
			continue
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	var zero V
	return "", zero, false
}

// ReverseIterator walks Set/Map entries in descending lexicographic key
// order. It is a distinct, monodirectional type rather than a reversible
// Iterator, matching the trie's iterator model: reverse traversal needs to
// finish a node's children before yielding the node itself, the opposite
// order from forward traversal, so the two aren't interchangeable via a
// simple direction flag.
type ReverseIterator[V any] struct {
	stack []reverseFrame[V]
}

type reverseFrame[V any] struct {
	prefix     string
	node       *node[V]
	childIndex int // next child index to descend into, counting down
	descended  bool
}

func newReverseIterator[V any](root *node[V]) *ReverseIterator[V] {
	return &ReverseIterator[V]{stack: []reverseFrame[V]{{node: root, childIndex: root.children.Len() - 1}}}
}

func (it *ReverseIterator[V]) Done() bool { return len(it.stack) == 0 }

func (it *ReverseIterator[V]) Next() (string, V, bool) {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.childIndex >= 0 {
			entry := top.node.children.EntryAt(top.childIndex)
			top.childIndex--
			it.stack = append(it.stack, reverseFrame[V]{
				prefix:     top.prefix + entry.Key,
				node:       entry.Value,
				childIndex: entry.Value.children.Len() - 1,
			})
			continue
		}
		if !top.descended {
			top.descended = true
			if top.node.present {
				return top.prefix, top.node.value, true
			}
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	var zero V
	return "", zero, false
}

// seek builds the frame stack an Iterator would be in had it advanced
// forward until reaching the first entry whose key is >= key (or > key, if
// strictly-greater is requested), without visiting any of the skipped
// entries.
func seek[V any](root *node[V], key string, strictlyGreater bool) []frame[V] {
	var stack []frame[V]
	n := root
	prefix := ""
	remaining := key
	for {
		if remaining == "" {
			yieldedSelf := strictlyGreater || !n.present
			stack = append(stack, frame[V]{prefix: prefix, node: n, childIndex: 0, yieldedSelf: yieldedSelf})
			return stack
		}
		idx, common, ok := childMatch(n, remaining)
		if !ok {
			lb := n.children.LowerBound(remaining)
			stack = append(stack, frame[V]{prefix: prefix, node: n, childIndex: lb, yieldedSelf: true})
			return stack
		}
		entry := n.children.EntryAt(idx)
		edge, child := entry.Key, entry.Value
		if common == len(edge) {
			// Edge fully consumed: every sibling before idx sorts strictly
			// before key, so skip them; continue the search inside child.
			stack = append(stack, frame[V]{prefix: prefix, node: n, childIndex: idx + 1, yieldedSelf: true})
			n, prefix, remaining = child, prefix+edge, remaining[common:]
			continue
		}
		// Edge and remaining diverge partway through.
		if remaining[common] > edge[common] {
			// This whole child subtree sorts before key: skip it entirely.
			stack = append(stack, frame[V]{prefix: prefix, node: n, childIndex: idx + 1, yieldedSelf: true})
		} else {
			// This whole child subtree sorts after key: stop right before it.
			stack = append(stack, frame[V]{prefix: prefix, node: n, childIndex: idx, yieldedSelf: true})
		}
		return stack
	}
}

func newSeekedIterator[V any](root *node[V], key string, strictlyGreater bool) *Iterator[V] {
	return &Iterator[V]{stack: seek(root, key, strictlyGreater)}
}
