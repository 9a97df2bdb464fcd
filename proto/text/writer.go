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
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tsdb2/tsdb2/proto/reflect"
)

// Writer serializes a reflect.Message back into the text format. The zero
// value is ready to use.
type Writer struct {
	buf    strings.Builder
	indent int
}

// Marshal renders msg in one call.
func Marshal(msg *reflect.Message) (string, error) {
	var w Writer
	if err := w.WriteMessage(msg); err != nil {
		return "", err
	}
	return w.String(), nil
}

// String returns the bytes written so far.
func (w *Writer) String() string { return w.buf.String() }

func (w *Writer) writeIndent() {
	w.buf.WriteString(strings.Repeat("  ", w.indent))
}

// WriteMessage writes every present field of msg, one `name: value` (or
// `name { ... }`) entry per line, with no enclosing braces — the top-level
// form ParseMessage expects back.
func (w *Writer) WriteMessage(msg *reflect.Message) error {
	desc := msg.Descriptor()
	for _, name := range desc.GetAllFieldNames() {
		f, err := desc.FieldDescriptor(name)
		if err != nil {
			return err
		}
		if err := w.writeField(msg, name, f); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeField(msg *reflect.Message, name string, f *reflect.FieldDescriptor) error {
	switch f.Kind() {
	case reflect.Map:
		return w.writeMapField(msg, name, f)
	case reflect.OneOf:
		return w.writeOneOfField(msg, name, f)
	case reflect.Repeated:
		return w.writeRepeatedField(msg, name, f)
	default:
		ok, err := msg.Has(name)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		return w.writeSingularField(msg, name, f)
	}
}

func (w *Writer) writeSingularField(msg *reflect.Message, name string, f *reflect.FieldDescriptor) error {
	typ := f.Type()
	switch typ {
	case reflect.Enum:
		enumName, _, err := msg.EnumName(name)
		if err != nil {
			return err
		}
		w.writeIndent()
		fmt.Fprintf(&w.buf, "%s: %s\n", name, enumName)
		return nil
	case reflect.SubMessage:
		sub, _, err := msg.SubMessage(name)
		if err != nil {
			return err
		}
		w.writeIndent()
		fmt.Fprintf(&w.buf, "%s {\n", name)
		w.indent++
		if err := w.WriteMessage(sub); err != nil {
			return err
		}
		w.indent--
		w.writeIndent()
		w.buf.WriteString("}\n")
		return nil
	default:
		v, _, err := msg.Get(name)
		if err != nil {
			return err
		}
		w.writeIndent()
		fmt.Fprintf(&w.buf, "%s: %s\n", name, formatScalar(typ, v))
		return nil
	}
}

func (w *Writer) writeRepeatedField(msg *reflect.Message, name string, f *reflect.FieldDescriptor) error {
	values, err := msg.Repeated(name)
	if err != nil {
		return err
	}
	for _, v := range values {
		w.writeIndent()
		switch f.Type() {
		case reflect.Enum:
			enumDesc, err := f.EnumDescriptor()
			if err != nil {
				return err
			}
			n, err := enumDesc.NameByValue(v.(int32))
			if err != nil {
				return err
			}
			fmt.Fprintf(&w.buf, "%s: %s\n", name, n)
		case reflect.SubMessage:
			fmt.Fprintf(&w.buf, "%s {\n", name)
			w.indent++
			if err := w.WriteMessage(v.(*reflect.Message)); err != nil {
				return err
			}
			w.indent--
			w.writeIndent()
			w.buf.WriteString("}\n")
		default:
			fmt.Fprintf(&w.buf, "%s: %s\n", name, formatScalar(f.Type(), v))
		}
	}
	return nil
}

func (w *Writer) writeMapField(msg *reflect.Message, name string, f *reflect.FieldDescriptor) error {
	h, err := msg.Map(name)
	if err != nil {
		return err
	}
	valDesc, err := f.MapValueDescriptor()
	if err != nil {
		return err
	}
	for k, v := range h.All() {
		w.writeIndent()
		fmt.Fprintf(&w.buf, "%s {\n", name)
		w.indent++
		w.writeIndent()
		fmt.Fprintf(&w.buf, "key: %s\n", formatScalar(keyTypeOf(k), k))
		w.writeIndent()
		switch valDesc.Type() {
		case reflect.Enum:
			enumDesc, err := valDesc.EnumDescriptor()
			if err != nil {
				return err
			}
			n, err := enumDesc.NameByValue(v.(int32))
			if err != nil {
				return err
			}
			fmt.Fprintf(&w.buf, "value: %s\n", n)
		case reflect.SubMessage:
			w.buf.WriteString("value {\n")
			w.indent++
			if err := w.WriteMessage(v.(*reflect.Message)); err != nil {
				return err
			}
			w.indent--
			w.writeIndent()
			w.buf.WriteString("}\n")
		default:
			fmt.Fprintf(&w.buf, "value: %s\n", formatScalar(valDesc.Type(), v))
		}
		w.indent--
		w.writeIndent()
		w.buf.WriteString("}\n")
	}
	return nil
}

func (w *Writer) writeOneOfField(msg *reflect.Message, name string, f *reflect.FieldDescriptor) error {
	h, err := msg.OneOf(name)
	if err != nil {
		return err
	}
	if h.Index() == 0 {
		return nil
	}
	desc := h.Descriptor()
	arm, err := desc.ArmAt(h.Index())
	if err != nil {
		return err
	}
	w.writeIndent()
	fmt.Fprintf(&w.buf, "%s {\n", name)
	w.indent++
	w.writeIndent()
	switch arm.Type {
	case reflect.Enum:
		n, err := arm.EnumDesc.NameByValue(h.Value().(int32))
		if err != nil {
			return err
		}
		fmt.Fprintf(&w.buf, "%s: %s\n", arm.Name, n)
	case reflect.SubMessage:
		fmt.Fprintf(&w.buf, "%s {\n", arm.Name)
		w.indent++
		if err := w.WriteMessage(h.Value().(*reflect.Message)); err != nil {
			return err
		}
		w.indent--
		w.writeIndent()
		w.buf.WriteString("}\n")
	default:
		fmt.Fprintf(&w.buf, "%s: %s\n", arm.Name, formatScalar(arm.Type, h.Value()))
	}
	w.indent--
	w.writeIndent()
	w.buf.WriteString("}\n")
	return nil
}

func keyTypeOf(key any) reflect.FieldType {
	switch key.(type) {
	case int32:
		return reflect.Int32
	case uint32:
		return reflect.Uint32
	case int64:
		return reflect.Int64
	case uint64:
		return reflect.Uint64
	case bool:
		return reflect.Bool
	default:
		return reflect.String
	}
}

func formatScalar(typ reflect.FieldType, v any) string {
	switch typ {
	case reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", v)
	case reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("%d", v)
	case reflect.Bool:
		return strconv.FormatBool(v.(bool))
	case reflect.String:
		return quoteString(v.(string))
	case reflect.Bytes:
		return quoteString(string(v.([]byte)))
	case reflect.Double:
		return strconv.FormatFloat(v.(float64), 'g', -1, 64)
	case reflect.Float:
		return strconv.FormatFloat(float64(v.(float32)), 'g', -1, 32)
	case reflect.Time:
		return quoteString(v.(time.Time).Format(time.RFC3339Nano))
	case reflect.Duration:
		return quoteString(v.(time.Duration).String())
	default:
		return fmt.Sprintf("%v", v)
	}
}

func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteByte(ch)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
