package jsonval

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Encode serializes a Value to compact JSON, keeping object member order.
func Encode(v Value) string {
	var b strings.Builder
	encode(&b, v, -1, 0)
	return b.String()
}

// EncodeIndent serializes a Value to pretty JSON with two-space indentation.
func EncodeIndent(v Value) string {
	var b strings.Builder
	encode(&b, v, 0, 0)
	return b.String()
}

// FormatNumber renders a double the way the explorer displays it: whole
// values print without a fractional part, everything else prints with the
// minimum digits that round-trip.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// encode writes v. indent < 0 means compact; otherwise indent is the current
// nesting depth for two-space pretty printing.
func encode(b *strings.Builder, v Value, indent, depth int) {
	switch val := v.(type) {
	case Null:
		b.WriteString("null")
	case Bool:
		if val {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case Number:
		b.WriteString(FormatNumber(float64(val)))
	case String:
		b.WriteString(quoteString(string(val)))
	case Array:
		encodeArray(b, val, indent, depth)
	case *Object:
		encodeObject(b, val, indent, depth)
	default:
		// Unreachable for values produced by this package.
		b.WriteString("null")
	}
}

func encodeArray(b *strings.Builder, arr Array, indent, depth int) {
	if len(arr) == 0 {
		b.WriteString("[]")
		return
	}
	b.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			b.WriteByte(',')
		}
		writeNewlineIndent(b, indent, depth+1)
		encode(b, elem, indent, depth+1)
	}
	writeNewlineIndent(b, indent, depth)
	b.WriteByte(']')
}

func encodeObject(b *strings.Builder, obj *Object, indent, depth int) {
	if obj.Len() == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteByte('{')
	for i, key := range obj.Keys() {
		if i > 0 {
			b.WriteByte(',')
		}
		writeNewlineIndent(b, indent, depth+1)
		b.WriteString(quoteString(key))
		b.WriteByte(':')
		if indent >= 0 {
			b.WriteByte(' ')
		}
		val, _ := obj.Get(key)
		encode(b, val, indent, depth+1)
	}
	writeNewlineIndent(b, indent, depth)
	b.WriteByte('}')
}

func writeNewlineIndent(b *strings.Builder, indent, depth int) {
	if indent < 0 {
		return
	}
	b.WriteByte('\n')
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

// quoteString produces a JSON string literal without HTML escaping.
func quoteString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		// json.Encoder cannot fail on a plain string.
		return fmt.Sprintf("%q", s)
	}
	out := buf.Bytes()
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
	}
	return string(out)
}
