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

package reflect

import "github.com/google/uuid"

// Context is shared state for a single tree of messages created together
// (e.g. everything parsed out of one JSON document or one text-format
// blob). It carries a trace ID for diagnostics and pins the Library the
// tree's descriptors must come from.
//
// Unlike the arena-backed context this is patterned on, a Context here
// owns no off-heap memory: this module allocates Messages as ordinary Go
// values, so there is nothing to free and no per-context pool to manage.
// What's kept is the grouping concept and the identity check.
type Context struct {
	id  uuid.UUID
	lib *Library
}

// NewContext creates a Context scoped to lib.
func NewContext(lib *Library) *Context {
	return &Context{id: uuid.New(), lib: lib}
}

// ID returns the context's trace identity.
func (c *Context) ID() uuid.UUID { return c.id }

// Library returns the Library this context is scoped to.
func (c *Context) Library() *Library { return c.lib }

// New creates a fresh instance of the named message type, failing with
// FailedPrecondition if no such message is registered in this context's
// Library.
func (c *Context) New(messageName string) (*Message, error) {
	d, ok := c.lib.Message(messageName)
	if !ok {
		return nil, newFailedPrecondition("reflect: no message named %q in library", messageName)
	}
	return d.CreateInstance(), nil
}
