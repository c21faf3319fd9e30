package schema

import (
	"os"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eladbash/jdx/internal/jsonval"
)

func mustDecode(t *testing.T, s string) jsonval.Value {
	t.Helper()
	v, err := jsonval.Decode([]byte(s))
	require.NoError(t, err)
	return v
}

func TestInferSimpleObject(t *testing.T) {
	s := Infer(mustDecode(t, `{"name": "Alice", "age": 30, "active": true}`), 10)

	obj, ok := s.(Object)
	require.True(t, ok)
	require.Len(t, obj.Fields, 3)

	assert.IsType(t, String{}, obj.Fields["name"].Schema)
	assert.IsType(t, Number{}, obj.Fields["age"].Schema)
	assert.IsType(t, Bool{}, obj.Fields["active"].Schema)
}

func TestInferScalars(t *testing.T) {
	assert.Equal(t, Null{}, Infer(mustDecode(t, `null`), 10))
	assert.Equal(t, Bool{}, Infer(mustDecode(t, `true`), 10))
	assert.Equal(t, Number{Min: 7, Max: 7}, Infer(mustDecode(t, `7`), 10))
	assert.Equal(t, String{Sample: "hi"}, Infer(mustDecode(t, `"hi"`), 10))
}

func TestInferStringSampleTruncated(t *testing.T) {
	long := `"` + "abcdefghijklmnopqrstuvwxyz0123456789" + `"`
	s := Infer(mustDecode(t, long), 10)
	str, ok := s.(String)
	require.True(t, ok)
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz0123", str.Sample)
	assert.Len(t, str.Sample, 30)
}

func TestInferEmptyArray(t *testing.T) {
	s := Infer(mustDecode(t, `[]`), 10)
	arr, ok := s.(Array)
	require.True(t, ok)
	assert.Equal(t, 0, arr.LenMin)
	assert.Equal(t, 0, arr.LenMax)
	assert.Equal(t, Unknown{}, arr.Items)
}

func TestInferHomogeneousArray(t *testing.T) {
	input := `[
		{"name": "Alice", "age": 25},
		{"name": "Bob", "age": 35}
	]`
	s := Infer(mustDecode(t, input), 10)

	arr, ok := s.(Array)
	require.True(t, ok)
	assert.Equal(t, 2, arr.LenMin)
	assert.Equal(t, 2, arr.LenMax)

	items, ok := arr.Items.(Object)
	require.True(t, ok)
	assert.False(t, items.Fields["name"].Optional)
	assert.False(t, items.Fields["age"].Optional)
}

func TestInferOptionalFields(t *testing.T) {
	input := `[
		{"name": "Alice", "age": 25},
		{"name": "Bob", "age": 35, "email": "bob@test.com"},
		{"name": "Charlie"}
	]`
	s := Infer(mustDecode(t, input), 10)

	items := s.(Array).Items.(Object)
	assert.False(t, items.Fields["name"].Optional, "name appears in every sample")
	assert.True(t, items.Fields["age"].Optional, "age missing from Charlie")
	assert.True(t, items.Fields["email"].Optional, "email only on Bob")
}

func TestInferNumberRange(t *testing.T) {
	input := `[{"score": 10}, {"score": 50}, {"score": 90}]`
	s := Infer(mustDecode(t, input), 10)

	items := s.(Array).Items.(Object)
	num, ok := items.Fields["score"].Schema.(Number)
	require.True(t, ok)
	assert.Equal(t, 10.0, num.Min)
	assert.Equal(t, 90.0, num.Max)
}

func TestInferMixedArrayBecomesUnion(t *testing.T) {
	s := Infer(mustDecode(t, `[1, "two", null, true]`), 10)

	items, ok := s.(Array).Items.(Union)
	require.True(t, ok)
	assert.Equal(t, []string{"bool", "null", "number", "string"}, items.Names)
}

func TestInferNestedObjects(t *testing.T) {
	input := `{"user": {"profile": {"avatar": "url", "bio": "text"}}}`
	s := Infer(mustDecode(t, input), 10)

	user := s.(Object).Fields["user"].Schema.(Object)
	profile := user.Fields["profile"].Schema.(Object)
	assert.IsType(t, String{}, profile.Fields["avatar"].Schema)
}

func TestInferSamplingCapsInspectionNotLength(t *testing.T) {
	input := `[0, 1, 2, 3, 4, 5, 6, 7, 8, 9]`
	s := Infer(mustDecode(t, input), 5)

	arr := s.(Array)
	assert.Equal(t, 10, arr.LenMin)
	assert.Equal(t, 10, arr.LenMax)

	// Only the first five elements contribute to the range.
	num := arr.Items.(Number)
	assert.Equal(t, 0.0, num.Min)
	assert.Equal(t, 4.0, num.Max)
}

func TestMergeStringKeepsLaterSample(t *testing.T) {
	s := Infer(mustDecode(t, `["first", "second"]`), 10)
	str := s.(Array).Items.(String)
	assert.Equal(t, "second", str.Sample)
}

func TestMergeArraysTracksLengthRange(t *testing.T) {
	s := Infer(mustDecode(t, `[[1], [1, 2, 3]]`), 10)
	inner := s.(Array).Items.(Array)
	assert.Equal(t, 1, inner.LenMin)
	assert.Equal(t, 3, inner.LenMax)
}

func TestFormatScalars(t *testing.T) {
	assert.Equal(t, "null", Format(Null{}, 0))
	assert.Equal(t, "bool", Format(Bool{}, 0))
	assert.Equal(t, "unknown", Format(Unknown{}, 0))
	assert.Equal(t, "number  # 5", Format(Number{Min: 5, Max: 5}, 0))
	assert.Equal(t, "number  # 1..9", Format(Number{Min: 1, Max: 9}, 0))
	assert.Equal(t, `string  # "hi"`, Format(String{Sample: "hi"}, 0))
	assert.Equal(t, "null | string", Format(Union{Names: []string{"null", "string"}}, 0))
}

func TestFormatEmptyObject(t *testing.T) {
	assert.Equal(t, "{}", Format(Object{}, 0))
}

func TestFormatObjectSortsFields(t *testing.T) {
	input := `{"zebra": 1, "apple": 2}`
	out := Format(Infer(mustDecode(t, input), 10), 0)
	assert.Less(t, strings.Index(out, "apple"), strings.Index(out, "zebra"))
}

func TestFormatGolden(t *testing.T) {
	data, err := os.ReadFile("testdata/users.json")
	require.NoError(t, err)

	v, err := jsonval.Decode(data)
	require.NoError(t, err)

	out := Format(Infer(v, 10), 0)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "schema_users", []byte(out))
}
