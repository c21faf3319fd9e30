package jsonval

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Canonical produces a deterministic serialization of a Value, used as the
// structural-equality key for deduplication.
//
// Differences from Encode:
//   - Object keys are sorted, so member order does not affect equality
//   - Strings are NFC normalized, so byte-different spellings of the same
//     text compare equal
func Canonical(v Value) string {
	var b strings.Builder
	canonical(&b, v)
	return b.String()
}

func canonical(b *strings.Builder, v Value) {
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
		b.WriteString(quoteString(norm.NFC.String(string(val))))
	case Array:
		b.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				b.WriteByte(',')
			}
			canonical(b, elem)
		}
		b.WriteByte(']')
	case *Object:
		keys := val.Keys()
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quoteString(norm.NFC.String(k)))
			b.WriteByte(':')
			mv, _ := val.Get(k)
			canonical(b, mv)
		}
		b.WriteByte('}')
	}
}
