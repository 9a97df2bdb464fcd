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
	"regexp"
	"strconv"
	"strings"

	"github.com/tsdb2/tsdb2/common/flatmap"
	"github.com/tsdb2/tsdb2/tsdb2err"
)

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)
	integerPattern    = regexp.MustCompile(`^[-+]?[0-9]+`)
	hexPattern        = regexp.MustCompile(`^[-+]?0[xX][0-9A-Fa-f]+`)
	octalPattern      = regexp.MustCompile(`^[-+]?0[0-7]+`)
	floatPattern      = regexp.MustCompile(`^[-+]?(?:[0-9]+\.[0-9]*|\.[0-9]+|[0-9]+)(?:[eE][-+]?[0-9]+)?f?`)
)

// escapedCharacterByCode mirrors the fixed table of single-character C-style
// escapes recognized inside quoted strings, keyed by the character following
// the backslash. It is frozen at init time since the escape set never
// changes after startup, matching the original's fixed_flat_map_of table.
var escapedCharacterByCode = flatmap.NewFrozen([]flatmap.Entry[byte, byte]{
	{Key: 'a', Value: 7}, {Key: 'b', Value: 8}, {Key: 'f', Value: 12},
	{Key: 'n', Value: 10}, {Key: 'r', Value: 13}, {Key: 't', Value: 9}, {Key: 'v', Value: 11},
	{Key: '?', Value: 63}, {Key: '\\', Value: 92}, {Key: '\'', Value: 39}, {Key: '"', Value: 34},
})

func invalidSyntax(format string, args ...any) error {
	return tsdb2err.InvalidArgumentf("invalid text-format syntax: "+format, args...)
}

func invalidFormat(format string, args ...any) error {
	return tsdb2err.InvalidArgumentf("invalid text-format value: "+format, args...)
}

func (p *Parser) eof() bool { return p.pos >= len(p.input) }

func (p *Parser) rest() string { return string(p.input[p.pos:]) }

// consumeWhitespace skips whitespace and `#`-to-end-of-line comments, the
// only two kinds of inter-token filler this grammar recognizes.
func (p *Parser) consumeWhitespace() {
	for !p.eof() {
		switch p.input[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		case '#':
			for !p.eof() && p.input[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

// consumeSeparators skips zero or more of the optional `,`/`;` field
// separators, along with any surrounding whitespace.
func (p *Parser) consumeSeparators() {
	for {
		p.consumeWhitespace()
		if !p.eof() && (p.input[p.pos] == ',' || p.input[p.pos] == ';') {
			p.pos++
			continue
		}
		return
	}
}

func (p *Parser) peekByte() (byte, bool) {
	if p.eof() {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *Parser) consumePrefix(prefix string) bool {
	if strings.HasPrefix(p.rest(), prefix) {
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

// consumePattern matches re anchored at the current position and advances
// past it, returning the matched text.
func (p *Parser) consumePattern(re *regexp.Regexp) (string, bool) {
	loc := re.FindStringIndex(p.rest())
	if loc == nil || loc[0] != 0 {
		return "", false
	}
	match := p.rest()[loc[0]:loc[1]]
	p.pos += len(match)
	return match, true
}

// consumeIdentifier reads one bare identifier token.
func (p *Parser) consumeIdentifier() (string, error) {
	p.consumeWhitespace()
	id, ok := p.consumePattern(identifierPattern)
	if !ok {
		return "", invalidSyntax("expected identifier at offset %d", p.pos)
	}
	return id, nil
}

func (p *Parser) parseBoolean() (bool, error) {
	p.consumeWhitespace()
	switch {
	case p.consumePrefix("true"):
		return true, nil
	case p.consumePrefix("false"):
		return false, nil
	case p.consumePrefix("1"):
		return true, nil
	case p.consumePrefix("0"):
		return false, nil
	default:
		return false, invalidSyntax("expected boolean at offset %d", p.pos)
	}
}

func (p *Parser) parseIntegerLiteral() (int64, error) {
	p.consumeWhitespace()
	if text, ok := p.consumePattern(hexPattern); ok {
		sign := int64(1)
		body := text
		if strings.HasPrefix(body, "-") {
			sign, body = -1, body[1:]
		} else if strings.HasPrefix(body, "+") {
			body = body[1:]
		}
		v, err := strconv.ParseUint(body[2:], 16, 64)
		if err != nil {
			return 0, invalidFormat("malformed hex literal %q: %v", text, err)
		}
		return sign * int64(v), nil
	}
	if text, ok := p.consumePattern(octalPattern); ok {
		sign := int64(1)
		body := text
		if strings.HasPrefix(body, "-") {
			sign, body = -1, body[1:]
		} else if strings.HasPrefix(body, "+") {
			body = body[1:]
		}
		v, err := strconv.ParseUint(body, 8, 64)
		if err != nil {
			return 0, invalidFormat("malformed octal literal %q: %v", text, err)
		}
		return sign * int64(v), nil
	}
	text, ok := p.consumePattern(integerPattern)
	if !ok {
		return 0, invalidSyntax("expected integer at offset %d", p.pos)
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, invalidFormat("malformed integer literal %q: %v", text, err)
	}
	return v, nil
}

func (p *Parser) parseUnsignedLiteral() (uint64, error) {
	v, err := p.parseIntegerLiteral()
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, invalidFormat("unsigned field cannot hold negative literal %d", v)
	}
	return uint64(v), nil
}

func (p *Parser) parseFloatLiteral() (float64, error) {
	p.consumeWhitespace()
	text, ok := p.consumePattern(floatPattern)
	if !ok {
		return 0, invalidSyntax("expected float at offset %d", p.pos)
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(text, "f"), 64)
	if err != nil {
		return 0, invalidFormat("malformed float literal %q: %v", text, err)
	}
	return v, nil
}

// parseQuoted reads one single- or double-quoted string/bytes literal,
// applying the same escape rules text_format.cc uses: the fixed
// single-character table, octal/hex byte escapes are not supported, and
// `\uXXXX` is only supported in the `\u00XX` range (anything else is
// Unimplemented, matching the JSON codec's identical restriction).
func (p *Parser) parseQuoted() (string, error) {
	p.consumeWhitespace()
	quote, ok := p.peekByte()
	if !ok || (quote != '"' && quote != '\'') {
		return "", invalidSyntax("expected quoted string at offset %d", p.pos)
	}
	p.pos++
	var sb strings.Builder
	for {
		if p.eof() {
			return "", invalidSyntax("unterminated string literal")
		}
		ch := p.input[p.pos]
		if ch == quote {
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
		if esc == 'u' {
			p.pos++
			if p.pos+4 > len(p.input) {
				return "", invalidSyntax("truncated \\u escape")
			}
			hex := string(p.input[p.pos : p.pos+4])
			if hex[0] != '0' || hex[1] != '0' {
				return "", tsdb2err.Unimplementedf("text: multi-byte \\u escape %q is not supported", hex)
			}
			b, err := strconv.ParseUint(hex[2:], 16, 8)
			if err != nil {
				return "", invalidSyntax("invalid \\u escape %q", hex)
			}
			sb.WriteByte(byte(b))
			p.pos += 4
			continue
		}
		if code, ok := escapedCharacterByCode.Find(esc); ok {
			sb.WriteByte(code)
			p.pos++
			continue
		}
		return "", invalidSyntax("invalid escape \\%c at offset %d", esc, p.pos)
	}
}
