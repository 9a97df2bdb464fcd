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

package text

import (
	"strings"
	"time"

	"github.com/tsdb2/tsdb2/internal/fieldname"
	"github.com/tsdb2/tsdb2/proto/reflect"
)

// Parser decodes the text format out of an in-memory byte slice, driving a
// reflect.MessageDescriptor field by field. The zero value is not usable;
// construct with NewParser.
type Parser struct {
	input []byte
	pos   int
}

// NewParser creates a Parser over input.
func NewParser(input []byte) *Parser {
	return &Parser{input: input}
}

// Offset returns the current byte offset into the input.
func (p *Parser) Offset() int { return p.pos }

// Unmarshal parses input against desc in one call.
func Unmarshal(input []byte, desc *reflect.MessageDescriptor) (*reflect.Message, error) {
	return NewParser(input).ParseMessage(desc)
}

// ParseMessage parses a complete top-level message: a sequence of `name:
// value` entries with no enclosing braces, terminated by end of input.
// Fails with InvalidArgument if a field declared required on desc is never
// set.
func (p *Parser) ParseMessage(desc *reflect.MessageDescriptor) (*reflect.Message, error) {
	msg := desc.CreateInstance()
	if err := p.parseFieldBody(msg, ""); err != nil {
		return nil, err
	}
	for _, name := range desc.GetRequiredFieldNames() {
		ok, err := msg.Has(name)
		if err != nil {
			return nil, err
		}
		if kind, _ := desc.GetFieldKind(name); ok && kind == reflect.Raw {
			// Has reports Raw fields as always present; check for a stored value.
			if _, ok, err = msg.Get(name); err != nil {
				return nil, err
			}
		}
		if !ok {
			return nil, invalidFormat("missing required field %q", name)
		}
	}
	return msg, nil
}

// ParseFields parses field entries into an already-constructed message
// until end of input, without checking required fields. Useful when msg is
// being assembled incrementally from more than one source.
func (p *Parser) ParseFields(msg *reflect.Message) error {
	return p.parseFieldBody(msg, "")
}

// ParseMessageArray parses a bracketed, comma-separated list of messages of
// type desc: `[ {...}, {...} ]`.
func (p *Parser) ParseMessageArray(desc *reflect.MessageDescriptor) ([]*reflect.Message, error) {
	p.consumeWhitespace()
	if err := p.requirePrefix("["); err != nil {
		return nil, err
	}
	var out []*reflect.Message
	p.consumeWhitespace()
	if p.consumePrefix("]") {
		return out, nil
	}
	for {
		sub, err := p.parseSubMessageValue(desc)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
		p.consumeWhitespace()
		if p.consumePrefix(",") {
			p.consumeWhitespace()
			continue
		}
		if err := p.requirePrefix("]"); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// parseFieldBody parses `name: value` entries (optionally separated by `,`
// or `;`) until end of input or, if terminators is non-empty, until the
// next byte is one of terminators (the closing delimiter of an enclosing
// sub-message, left unconsumed for the caller to match). A Raw, Optional
// or oneof field named more than once is an InvalidArgument error; a
// repeated field accumulates elements and a map field accumulates entries,
// one per occurrence.
func (p *Parser) parseFieldBody(msg *reflect.Message, terminators string) error {
	seen := make(map[string]bool)
	for {
		p.consumeSeparators()
		if p.eof() {
			if terminators != "" {
				return invalidSyntax("unexpected end of input, expected one of %q", terminators)
			}
			return nil
		}
		if ch, _ := p.peekByte(); terminators != "" && strings.IndexByte(terminators, ch) >= 0 {
			return nil
		}
		name, err := p.consumeIdentifier()
		if err != nil {
			return err
		}
		f, err := msg.Descriptor().FieldDescriptor(name)
		if err != nil {
			// Tolerate camelCase identifiers (e.g. copy-pasted from a Go
			// struct literal) by normalizing to the descriptor's
			// snake_case field name before giving up.
			if normalized := fieldname.ToSnakeCase(name); normalized != name {
				if f2, err2 := msg.Descriptor().FieldDescriptor(normalized); err2 == nil {
					name, f = normalized, f2
					err = nil
				}
			}
		}
		if err != nil {
			return err
		}
		switch f.Kind() {
		case reflect.Map:
			if err := p.parseMapEntry(msg, name, f); err != nil {
				return err
			}
		case reflect.OneOf:
			if seen[name] {
				return invalidFormat("field %q specified multiple times", name)
			}
			seen[name] = true
			if err := p.parseOneOfEntry(msg, name, f); err != nil {
				return err
			}
		case reflect.Repeated:
			if err := p.parseRepeatedEntry(msg, name, f); err != nil {
				return err
			}
		default: // Raw, Optional
			if seen[name] {
				return invalidFormat("field %q specified multiple times", name)
			}
			seen[name] = true
			if err := p.parseSingularEntry(msg, name, f); err != nil {
				return err
			}
		}
	}
}

// parseSingularEntry parses the value of a Raw or Optional field. The `:`
// separator is optional only for a singular braced sub-message field;
// every other type requires it.
func (p *Parser) parseSingularEntry(msg *reflect.Message, name string, f *reflect.FieldDescriptor) error {
	typ := f.Type()
	p.consumeWhitespace()
	if typ == reflect.SubMessage {
		p.consumePrefix(":")
	} else if err := p.requirePrefix(":"); err != nil {
		return err
	}
	p.consumeWhitespace()
	switch typ {
	case reflect.Enum:
		idName, err := p.consumeIdentifier()
		if err != nil {
			return err
		}
		return msg.SetEnumByName(name, idName)
	case reflect.SubMessage:
		subDesc, err := f.SubMessageDescriptor()
		if err != nil {
			return err
		}
		sub, err := p.parseSubMessageValue(subDesc)
		if err != nil {
			return err
		}
		return msg.SetSubMessage(name, sub)
	default:
		v, err := p.parseScalarValue(typ)
		if err != nil {
			return err
		}
		return msg.Set(name, v)
	}
}

// parseRepeatedEntry parses one occurrence of a Repeated field: either a
// bracketed `[v1, v2, ...]` array, whose elements are appended, or a single
// element that appends (allowing the field name to repeat across multiple
// entries, the usual protobuf text-format convention for repeated
// sub-messages). The `:` separator is optional before sub-message
// elements, as for singular sub-message fields, and mandatory otherwise.
func (p *Parser) parseRepeatedEntry(msg *reflect.Message, name string, f *reflect.FieldDescriptor) error {
	typ := f.Type()
	enumDesc, subDesc, err := enumAndSubDescriptors(f, typ)
	if err != nil {
		return err
	}
	p.consumeWhitespace()
	if typ == reflect.SubMessage {
		p.consumePrefix(":")
	} else if err := p.requirePrefix(":"); err != nil {
		return err
	}
	p.consumeWhitespace()
	if ch, ok := p.peekByte(); ok && ch == '[' {
		p.pos++
		p.consumeWhitespace()
		if p.consumePrefix("]") {
			return nil
		}
		for {
			v, err := p.parseTypedValue(typ, enumDesc, subDesc)
			if err != nil {
				return err
			}
			if err := msg.AppendRepeated(name, v); err != nil {
				return err
			}
			p.consumeWhitespace()
			if p.consumePrefix(",") {
				p.consumeWhitespace()
				continue
			}
			return p.requirePrefix("]")
		}
	}
	v, err := p.parseTypedValue(typ, enumDesc, subDesc)
	if err != nil {
		return err
	}
	return msg.AppendRepeated(name, v)
}

// parseMapEntry parses one `field_name { key: <k> value: <v> }` entry of a
// map field (a `:` after field_name is accepted and optional), a grammar of
// this package's own design: the format this parser is modeled on never
// implemented map parsing to begin with.
func (p *Parser) parseMapEntry(msg *reflect.Message, name string, f *reflect.FieldDescriptor) error {
	keyType, err := f.MapKeyType()
	if err != nil {
		return err
	}
	valDesc, err := f.MapValueDescriptor()
	if err != nil {
		return err
	}
	p.consumeWhitespace()
	p.consumePrefix(":")
	closeCh, err := p.consumeMessageDelimiter()
	if err != nil {
		return err
	}
	p.consumeSeparators()
	keyName, err := p.consumeIdentifier()
	if err != nil {
		return err
	}
	if keyName != "key" {
		return invalidSyntax("expected map entry field \"key\", got %q", keyName)
	}
	p.consumeWhitespace()
	if err := p.requirePrefix(":"); err != nil {
		return err
	}
	p.consumeWhitespace()
	keyVal, err := p.parseScalarValue(keyType)
	if err != nil {
		return err
	}
	p.consumeSeparators()
	valName, err := p.consumeIdentifier()
	if err != nil {
		return err
	}
	if valName != "value" {
		return invalidSyntax("expected map entry field \"value\", got %q", valName)
	}
	p.consumeWhitespace()
	if err := p.requirePrefix(":"); err != nil {
		return err
	}
	p.consumeWhitespace()
	valEnumDesc, valSubDesc, err := enumAndSubDescriptors(valDesc, valDesc.Type())
	if err != nil {
		return err
	}
	val, err := p.parseTypedValue(valDesc.Type(), valEnumDesc, valSubDesc)
	if err != nil {
		return err
	}
	p.consumeSeparators()
	if err := p.requirePrefix(string(closeCh)); err != nil {
		return err
	}
	h, err := msg.Map(name)
	if err != nil {
		return err
	}
	return h.Set(keyVal, val)
}

// parseOneOfEntry parses a oneof field, written as `field_name { arm_name:
// value }` (a `:` after field_name is accepted and optional), where
// arm_name names one of the oneof's declared alternatives.
func (p *Parser) parseOneOfEntry(msg *reflect.Message, name string, f *reflect.FieldDescriptor) error {
	oneofDesc, err := f.OneOfDescriptor()
	if err != nil {
		return err
	}
	p.consumeWhitespace()
	p.consumePrefix(":")
	closeCh, err := p.consumeMessageDelimiter()
	if err != nil {
		return err
	}
	p.consumeSeparators()
	armName, err := p.consumeIdentifier()
	if err != nil {
		return err
	}
	idx, err := oneofDesc.IndexByName(armName)
	if err != nil {
		return err
	}
	arm, err := oneofDesc.ArmAt(idx)
	if err != nil {
		return err
	}
	p.consumeWhitespace()
	if arm.Type == reflect.SubMessage {
		p.consumePrefix(":")
	} else if err := p.requirePrefix(":"); err != nil {
		return err
	}
	p.consumeWhitespace()
	h, err := msg.OneOf(name)
	if err != nil {
		return err
	}
	switch arm.Type {
	case reflect.Enum:
		valName, err := p.consumeIdentifier()
		if err != nil {
			return err
		}
		if err := h.SetEnumValue(idx, valName); err != nil {
			return err
		}
	case reflect.SubMessage:
		sub, err := p.parseSubMessageValue(arm.SubDesc)
		if err != nil {
			return err
		}
		if err := h.SetSubMessageValue(idx, sub); err != nil {
			return err
		}
	default:
		v, err := p.parseScalarValue(arm.Type)
		if err != nil {
			return err
		}
		if err := h.SetValue(idx, v); err != nil {
			return err
		}
	}
	p.consumeSeparators()
	return p.requirePrefix(string(closeCh))
}

// parseTypedValue parses one value of the given type, dispatching to an
// enum-name lookup or a recursive sub-message parse as needed.
func (p *Parser) parseTypedValue(typ reflect.FieldType, enumDesc *reflect.EnumDescriptor, subDesc *reflect.MessageDescriptor) (any, error) {
	switch typ {
	case reflect.Enum:
		idName, err := p.consumeIdentifier()
		if err != nil {
			return nil, err
		}
		return enumDesc.ValueByName(idName)
	case reflect.SubMessage:
		return p.parseSubMessageValue(subDesc)
	default:
		return p.parseScalarValue(typ)
	}
}

func (p *Parser) parseSubMessageValue(desc *reflect.MessageDescriptor) (*reflect.Message, error) {
	closeCh, err := p.consumeMessageDelimiter()
	if err != nil {
		return nil, err
	}
	sub := desc.CreateInstance()
	if err := p.parseFieldBody(sub, string(closeCh)); err != nil {
		return nil, err
	}
	if err := p.requirePrefix(string(closeCh)); err != nil {
		return nil, err
	}
	return sub, nil
}

func (p *Parser) consumeMessageDelimiter() (byte, error) {
	p.consumeWhitespace()
	if p.consumePrefix("{") {
		return '}', nil
	}
	if p.consumePrefix("<") {
		return '>', nil
	}
	return 0, invalidSyntax("expected '{' or '<' at offset %d", p.pos)
}

func (p *Parser) parseScalarValue(typ reflect.FieldType) (any, error) {
	switch typ {
	case reflect.Int32:
		v, err := p.parseIntegerLiteral()
		return int32(v), err
	case reflect.Uint32:
		v, err := p.parseUnsignedLiteral()
		return uint32(v), err
	case reflect.Int64:
		return p.parseIntegerLiteral()
	case reflect.Uint64:
		return p.parseUnsignedLiteral()
	case reflect.Bool:
		return p.parseBoolean()
	case reflect.String:
		return p.parseQuoted()
	case reflect.Bytes:
		s, err := p.parseQuoted()
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case reflect.Double:
		return p.parseFloatLiteral()
	case reflect.Float:
		v, err := p.parseFloatLiteral()
		return float32(v), err
	case reflect.Time:
		s, err := p.parseQuoted()
		if err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, invalidFormat("malformed timestamp %q: %v", s, err)
		}
		return t, nil
	case reflect.Duration:
		s, err := p.parseQuoted()
		if err != nil {
			return nil, err
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, invalidFormat("malformed duration %q: %v", s, err)
		}
		return d, nil
	default:
		return nil, invalidFormat("unsupported scalar field type %s", typ)
	}
}

// enumAndSubDescriptors fetches the nested descriptors f carries for typ,
// leaving both nil when typ needs neither (the plain scalar case).
func enumAndSubDescriptors(f *reflect.FieldDescriptor, typ reflect.FieldType) (*reflect.EnumDescriptor, *reflect.MessageDescriptor, error) {
	switch typ {
	case reflect.Enum:
		d, err := f.EnumDescriptor()
		return d, nil, err
	case reflect.SubMessage:
		d, err := f.SubMessageDescriptor()
		return nil, d, err
	default:
		return nil, nil, nil
	}
}
