package jsonval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeScalars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Value
	}{
		{name: "null", input: `null`, expected: Null{}},
		{name: "true", input: `true`, expected: Bool(true)},
		{name: "false", input: `false`, expected: Bool(false)},
		{name: "integer", input: `42`, expected: Number(42)},
		{name: "float", input: `3.25`, expected: Number(3.25)},
		{name: "negative", input: `-7`, expected: Number(-7)},
		{name: "string", input: `"hello"`, expected: String("hello")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Decode([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestDecodePreservesMemberOrder(t *testing.T) {
	v, err := Decode([]byte(`{"zebra": 1, "apple": 2, "mango": 3}`))
	require.NoError(t, err)

	obj, ok := v.(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"zebra", "apple", "mango"}, obj.Keys())
}

func TestDecodeNested(t *testing.T) {
	v, err := Decode([]byte(`{"items": [1, {"a": null}], "ok": true}`))
	require.NoError(t, err)

	obj, ok := v.(*Object)
	require.True(t, ok)

	items, ok := obj.Get("items")
	require.True(t, ok)
	arr, ok := items.(Array)
	require.True(t, ok)
	require.Len(t, arr, 2)
	assert.Equal(t, Number(1), arr[0])

	inner, ok := arr[1].(*Object)
	require.True(t, ok)
	a, ok := inner.Get("a")
	require.True(t, ok)
	assert.Equal(t, Null{}, a)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ``},
		{name: "garbage", input: `{{`},
		{name: "trailing content", input: `1 2`},
		{name: "unterminated string", input: `"abc`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestEncodeCompact(t *testing.T) {
	v, err := Decode([]byte(`{"b": [1, 2.5, "x"], "a": null}`))
	require.NoError(t, err)
	assert.Equal(t, `{"b":[1,2.5,"x"],"a":null}`, Encode(v))
}

func TestEncodeIndent(t *testing.T) {
	v, err := Decode([]byte(`{"a":{"b":1}}`))
	require.NoError(t, err)
	expected := "{\n  \"a\": {\n    \"b\": 1\n  }\n}"
	assert.Equal(t, expected, EncodeIndent(v))
}

func TestEncodeEmptyContainers(t *testing.T) {
	assert.Equal(t, `[]`, Encode(Array{}))
	assert.Equal(t, `{}`, Encode(NewObject()))
	assert.Equal(t, `[]`, EncodeIndent(Array{}))
}

func TestEncodeNoHTMLEscaping(t *testing.T) {
	assert.Equal(t, `"a<b>&c"`, Encode(String("a<b>&c")))
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{name: "whole", input: 30, expected: "30"},
		{name: "whole float", input: 52.0, expected: "52"},
		{name: "fractional", input: 52.97, expected: "52.97"},
		{name: "negative", input: -8.5, expected: "-8.5"},
		{name: "zero", input: 0, expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatNumber(tt.input))
		})
	}
}

func TestObjectSetReplaces(t *testing.T) {
	obj := NewObject()
	obj.Set("a", Number(1))
	obj.Set("b", Number(2))
	obj.Set("a", Number(3))

	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	a, ok := obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, Number(3), a)
	assert.Equal(t, 2, obj.Len())
}

func TestCanonicalIgnoresMemberOrder(t *testing.T) {
	a, err := Decode([]byte(`{"x": 1, "y": 2}`))
	require.NoError(t, err)
	b, err := Decode([]byte(`{"y": 2, "x": 1}`))
	require.NoError(t, err)

	assert.Equal(t, Canonical(a), Canonical(b))
}

func TestCanonicalDistinguishesValues(t *testing.T) {
	assert.NotEqual(t, Canonical(Number(1)), Canonical(String("1")))
	assert.NotEqual(t, Canonical(Null{}), Canonical(Bool(false)))
}

func TestCanonicalNormalizesStrings(t *testing.T) {
	// "\u00e9" composed vs "e\u0301" decomposed spell the same text.
	assert.Equal(t, Canonical(String("\u00e9")), Canonical(String("e\u0301")))
}
