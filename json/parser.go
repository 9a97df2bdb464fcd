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

package json

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tsdb2/tsdb2/tsdb2err"
)

// Number is a parsed JSON number, kept in its original textual form so the
// caller can decide whether to read it as an integer or a float.
type Number string

// Int64 parses the number as a signed 64-bit integer.
func (n Number) Int64() (int64, error) {
	v, err := strconv.ParseInt(string(n), 10, 64)
	if err != nil {
		return 0, tsdb2err.InvalidArgumentf("json: %q is not an integer: %v", string(n), err)
	}
	return v, nil
}

// Uint64 parses the number as an unsigned 64-bit integer.
func (n Number) Uint64() (uint64, error) {
	v, err := strconv.ParseUint(string(n), 10, 64)
	if err != nil {
		return 0, tsdb2err.InvalidArgumentf("json: %q is not an unsigned integer: %v", string(n), err)
	}
	return v, nil
}

// Float64 parses the number as a double.
func (n Number) Float64() (float64, error) {
	v, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0, tsdb2err.InvalidArgumentf("json: %q is not a number: %v", string(n), err)
	}
	return v, nil
}

func (n Number) String() string { return string(n) }

// Unmarshaler is implemented by types that parse themselves out of a
// Parser, the Go stand-in for the original's free-function
// `Tsdb2JsonParse(Parser*, T*)` hook.
type Unmarshaler interface {
	ParseJSON(p *Parser) error
}

// Parser decodes JSON out of an in-memory byte slice. The zero value is not
// usable; construct with NewParser.
type Parser struct {
	options ParseOptions
	input   []byte
	pos     int
}

// NewParser creates a Parser over input with the given options.
func NewParser(input []byte, options ParseOptions) *Parser {
	return &Parser{options: options, input: input}
}

// Options returns the parser's configured options.
func (p *Parser) Options() ParseOptions { return p.options }

// Offset returns the current byte offset into the input, useful for error
// messages built by callers wrapping Parser (e.g. the text-format parser
// shares this convention).
func (p *Parser) Offset() int { return p.pos }

func invalidSyntax(format string, args ...any) error {
	return tsdb2err.InvalidArgumentf("invalid JSON syntax: "+format, args...)
}

func invalidFormat(format string, args ...any) error {
	return tsdb2err.InvalidArgumentf("invalid JSON format: "+format, args...)
}

func (p *Parser) eof() bool { return p.pos >= len(p.input) }

func (p *Parser) peek() (byte, bool) {
	if p.eof() {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *Parser) consumeWhitespace() {
	for !p.eof() {
		switch p.input[p.pos] {
		case ' ', '\r', '\n', '\t':
			p.pos++
		default:
			return
		}
	}
}

func (p *Parser) consumePrefix(prefix string) bool {
	if strings.HasPrefix(string(p.input[p.pos:]), prefix) {
		p.pos += len(prefix)
		return true
	}
	return false
}

func (p *Parser) requirePrefix(prefix string) error {
	if !p.consumePrefix(prefix) {
		return invalidSyntax("expected %q at offset %d", prefix, p.pos)
	}
	return nil
}

// Decode parses one JSON value and stores it into v, which must be a
// non-nil pointer. Supported targets: *bool, signed/unsigned integers,
// float32/float64, *string, slices, fixed-size arrays (exact length
// enforced), maps, pointers (parsed as the pointee or nil for a JSON
// null), structs (via `json:"name"` tags, extra keys governed by
// ParseOptions.AllowExtraFields), and any type implementing Unmarshaler.
func (p *Parser) Decode(v any) error {
	if u, ok := v.(Unmarshaler); ok {
		return u.ParseJSON(p)
	}
	return p.decodeReflect(v)
}

// ParseValue parses one JSON value into a generic representation: nil,
// bool, Number, string, []any, or map[string]any.
func (p *Parser) ParseValue() (any, error) {
	p.consumeWhitespace()
	ch, ok := p.peek()
	if !ok {
		return nil, invalidSyntax("unexpected end of input")
	}
	switch {
	case ch == 'n':
		if err := p.requirePrefix("null"); err != nil {
			return nil, err
		}
		return nil, nil
	case ch == 't':
		if err := p.requirePrefix("true"); err != nil {
			return nil, err
		}
		return true, nil
	case ch == 'f':
		if err := p.requirePrefix("false"); err != nil {
			return nil, err
		}
		return false, nil
	case ch == '"':
		return p.readString()
	case ch == '[':
		return p.readRawArray()
	case ch == '{':
		return p.readRawObject()
	case ch == '-' || (ch >= '0' && ch <= '9'):
		return p.readRawNumber()
	default:
		return nil, invalidSyntax("unexpected character %q at offset %d", ch, p.pos)
	}
}

func (p *Parser) readRawArray() (any, error) {
	if err := p.requirePrefix("["); err != nil {
		return nil, err
	}
	var out []any
	p.consumeWhitespace()
	if p.consumePrefix("]") {
		return out, nil
	}
	for {
		v, err := p.ParseValue()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
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

func (p *Parser) readRawObject() (any, error) {
	if err := p.requirePrefix("{"); err != nil {
		return nil, err
	}
	out := make(map[string]any)
	p.consumeWhitespace()
	if p.consumePrefix("}") {
		return out, nil
	}
	for {
		p.consumeWhitespace()
		key, err := p.readString()
		if err != nil {
			return nil, err
		}
		p.consumeWhitespace()
		if err := p.requirePrefix(":"); err != nil {
			return nil, err
		}
		p.consumeWhitespace()
		value, err := p.ParseValue()
		if err != nil {
			return nil, err
		}
		if _, dup := out[key]; dup {
			return nil, invalidFormat("duplicate object key %q", key)
		}
		out[key] = value
		p.consumeWhitespace()
		if p.consumePrefix(",") {
			continue
		}
		if err := p.requirePrefix("}"); err != nil {
			return nil, err
		}
		return out, nil
	}
}

func (p *Parser) readRawNumber() (Number, error) {
	start := p.pos
	p.consumePrefix("-")
	if p.eof() || !isDigit(p.input[p.pos]) {
		return "", invalidSyntax("malformed number at offset %d", start)
	}
	if p.input[p.pos] == '0' {
		p.pos++
	} else {
		for !p.eof() && isDigit(p.input[p.pos]) {
			p.pos++
		}
	}
	if !p.eof() && p.input[p.pos] == '.' {
		p.pos++
		if p.eof() || !isDigit(p.input[p.pos]) {
			return "", invalidSyntax("malformed fractional part at offset %d", p.pos)
		}
		for !p.eof() && isDigit(p.input[p.pos]) {
			p.pos++
		}
	}
	if !p.eof() && (p.input[p.pos] == 'e' || p.input[p.pos] == 'E') {
		p.pos++
		if !p.eof() && (p.input[p.pos] == '+' || p.input[p.pos] == '-') {
			p.pos++
		}
		if p.eof() || !isDigit(p.input[p.pos]) {
			return "", invalidSyntax("malformed exponent at offset %d", p.pos)
		}
		for !p.eof() && isDigit(p.input[p.pos]) {
			p.pos++
		}
	}
	return Number(p.input[start:p.pos]), nil
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

// readString reads one quoted JSON string, including the surrounding
// quotes, and returns the unescaped contents.
func (p *Parser) readString() (string, error) {
	if err := p.requirePrefix(`"`); err != nil {
		return "", err
	}
	var sb strings.Builder
	for {
		if p.eof() {
			return "", invalidSyntax("unterminated string")
		}
		ch := p.input[p.pos]
		if ch == '"' {
			p.pos++
			return sb.String(), nil
		}
		if ch != '\\' {
			sb.WriteByte(ch)
			p.pos++
			continue
		}
		p.pos++
		if p.eof() {
			return "", invalidSyntax("unterminated escape sequence")
		}
		esc := p.input[p.pos]
		p.pos++
		switch esc {
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		case '/':
			sb.WriteByte('/')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'u':
			if p.pos+4 > len(p.input) {
				return "", invalidSyntax("truncated \\u escape")
			}
			hex := string(p.input[p.pos : p.pos+4])
			if hex[0] != '0' || hex[1] != '0' {
				return "", tsdb2err.Unimplementedf("json: multi-byte \\u escape %q is not supported", hex)
			}
			b, err := strconv.ParseUint(hex[2:], 16, 8)
			if err != nil {
				return "", invalidSyntax("invalid \\u escape %q", hex)
			}
			sb.WriteByte(byte(b))
			p.pos += 4
		default:
			return "", invalidSyntax("invalid escape \\%c", esc)
		}
	}
}

// SkipValue skips one JSON value without fully decoding it, honoring
// ParseOptions.FastSkipping. It is used when AllowExtraFields discards an
// unrecognized object key.
func (p *Parser) SkipValue() error {
	p.consumeWhitespace()
	ch, ok := p.peek()
	if !ok {
		return invalidSyntax("unexpected end of input")
	}
	switch ch {
	case '"':
		if p.options.FastSkipping {
			for p.pos++; !p.eof(); p.pos++ {
				switch p.input[p.pos] {
				case '\\':
					p.pos++
				case '"':
					p.pos++
					return nil
				}
			}
			return invalidSyntax("unterminated string")
		}
		_, err := p.readString()
		return err
	case '[':
		return p.skipArray()
	case '{':
		return p.skipObject()
	default:
		if p.options.FastSkipping {
			return p.skipScalarFast()
		}
		_, err := p.ParseValue()
		return err
	}
}

func (p *Parser) skipScalarFast() error {
	for !p.eof() {
		switch p.input[p.pos] {
		case ',', ']', '}', ' ', '\r', '\n', '\t':
			return nil
		default:
			p.pos++
		}
	}
	return nil
}

func (p *Parser) skipArray() error {
	if err := p.requirePrefix("["); err != nil {
		return err
	}
	p.consumeWhitespace()
	if p.consumePrefix("]") {
		return nil
	}
	for {
		if err := p.SkipValue(); err != nil {
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

func (p *Parser) skipObject() error {
	if err := p.requirePrefix("{"); err != nil {
		return err
	}
	p.consumeWhitespace()
	if p.consumePrefix("}") {
		return nil
	}
	for {
		p.consumeWhitespace()
		if _, err := p.readString(); err != nil {
			return err
		}
		p.consumeWhitespace()
		if err := p.requirePrefix(":"); err != nil {
			return err
		}
		if err := p.SkipValue(); err != nil {
			return err
		}
		p.consumeWhitespace()
		if p.consumePrefix(",") {
			continue
		}
		return p.requirePrefix("}")
	}
}

func unsupportedDecodeTarget(v any) error {
	return fmt.Errorf("json: unsupported decode target %T", v)
}
