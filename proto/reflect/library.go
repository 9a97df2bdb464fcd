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

import (
	"github.com/google/uuid"
)

// Library groups the message and enum descriptors that were registered
// together, mirroring the grouping concept of a compiled descriptor set.
// Unlike a wire-format type compiler, "compilation" here is just
// registration of hand-built or YAML-declared descriptors: a Library never
// parses anything itself.
//
// Each Library carries a random UUID identity, returned by ID. This
// package never compares two identities: Message.Clone always copies a
// message onto its own descriptor and does not consult the Library.
type Library struct {
	id        uuid.UUID
	messages  map[string]*MessageDescriptor
	enums     map[string]*EnumDescriptor
}

// NewLibrary creates an empty Library with a fresh random identity.
func NewLibrary() *Library {
	return &Library{
		id:       uuid.New(),
		messages: make(map[string]*MessageDescriptor),
		enums:    make(map[string]*EnumDescriptor),
	}
}

// ID returns the library's identity.
func (l *Library) ID() uuid.UUID { return l.id }

// RegisterMessage adds d to the library under its own name. Panics if a
// message of that name is already registered: descriptor registration
// happens once, at package-init time, so a collision is a build-time bug.
func (l *Library) RegisterMessage(d *MessageDescriptor) *MessageDescriptor {
	if _, ok := l.messages[d.name]; ok {
		panic("reflect: library already has a message named " + d.name)
	}
	d.library = l
	l.messages[d.name] = d
	return d
}

// RegisterEnum adds d to the library under its own name.
func (l *Library) RegisterEnum(d *EnumDescriptor) *EnumDescriptor {
	if _, ok := l.enums[d.name]; ok {
		panic("reflect: library already has an enum named " + d.name)
	}
	l.enums[d.name] = d
	return d
}

// Message looks up a registered message descriptor by name.
func (l *Library) Message(name string) (*MessageDescriptor, bool) {
	d, ok := l.messages[name]
	return d, ok
}

// Enum looks up a registered enum descriptor by name.
func (l *Library) Enum(name string) (*EnumDescriptor, bool) {
	d, ok := l.enums[name]
	return d, ok
}

// MessageNames returns the names of all messages registered in this
// library order is unspecified.
func (l *Library) MessageNames() []string {
	names := make([]string, 0, len(l.messages))
	for name := range l.messages {
		names = append(names, name)
	}
	return names
}
