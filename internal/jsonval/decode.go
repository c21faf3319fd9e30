package jsonval

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Decode parses JSON bytes into a Value, preserving object member order.
// Numbers are decoded as doubles. Trailing non-whitespace content after the
// first value is an error.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	// Reject trailing content (e.g. concatenated documents).
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected content after JSON value")
	}
	return v, nil
}

// decodeValue reads a single JSON value from the token stream.
// json.Decoder tokens are used instead of Unmarshal so that object member
// order survives; map[string]any would scramble it.
func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, fmt.Errorf("object key %q: %w", key, err)
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil

		case '[':
			arr := Array{}
			for dec.More() {
				elem, err := decodeValue(dec)
				if err != nil {
					return nil, fmt.Errorf("array index %d: %w", len(arr), err)
				}
				arr = append(arr, elem)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil

		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}

	case string:
		return String(t), nil

	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", t, err)
		}
		return Number(f), nil

	case bool:
		return Bool(t), nil

	case nil:
		return Null{}, nil

	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}
