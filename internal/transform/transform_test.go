package transform

import (
	"testing"

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

// applyOK runs a chain and asserts it succeeds, returning the compact form.
func applyOK(t *testing.T, input, chain string) string {
	t.Helper()
	result, err := Apply(mustDecode(t, input), chain)
	require.NoError(t, err)
	return jsonval.Encode(result)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, `["b","a"]`, applyOK(t, `{"b": 2, "a": 1}`, ":keys"))
}

func TestValues(t *testing.T) {
	assert.Equal(t, `[1,2]`, applyOK(t, `{"a": 1, "b": 2}`, ":values"))
}

func TestCount(t *testing.T) {
	assert.Equal(t, `3`, applyOK(t, `[1, 2, 3]`, ":count"))
	assert.Equal(t, `2`, applyOK(t, `{"a": 1, "b": 2}`, ":count"))
}

func TestFlatten(t *testing.T) {
	// One level only; non-array elements pass through.
	assert.Equal(t, `[1,2,3,4,5]`, applyOK(t, `[[1, 2], [3, 4], 5]`, ":flatten"))
	assert.Equal(t, `[1,[2],3]`, applyOK(t, `[[1, [2]], 3]`, ":flatten"))
}

func TestPick(t *testing.T) {
	input := `[
		{"name": "Alice", "age": 30, "email": "a@test.com"},
		{"name": "Bob", "age": 25, "email": "b@test.com"}
	]`
	expected := `[{"name":"Alice","email":"a@test.com"},{"name":"Bob","email":"b@test.com"}]`
	assert.Equal(t, expected, applyOK(t, input, ":pick name,email"))
}

func TestPickOnObject(t *testing.T) {
	assert.Equal(t, `{"a":1}`, applyOK(t, `{"a": 1, "b": 2}`, ":pick a"))
}

func TestPickPassesNonObjectsThrough(t *testing.T) {
	assert.Equal(t, `[{"a":1},7]`, applyOK(t, `[{"a": 1, "b": 2}, 7]`, ":pick a"))
}

func TestOmit(t *testing.T) {
	assert.Equal(t, `{"name":"Alice","age":30}`,
		applyOK(t, `{"name": "Alice", "age": 30, "secret": "x"}`, ":omit secret"))
}

func TestSortByField(t *testing.T) {
	input := `[
		{"name": "Charlie", "age": 35},
		{"name": "Alice", "age": 25},
		{"name": "Bob", "age": 30}
	]`
	expected := `[{"name":"Alice","age":25},{"name":"Bob","age":30},{"name":"Charlie","age":35}]`
	assert.Equal(t, expected, applyOK(t, input, ":sort name"))
}

func TestSortByNumericField(t *testing.T) {
	// Numeric compare, not textual: 9 < 10 < 100.
	input := `[{"n": 100}, {"n": 9}, {"n": 10}]`
	assert.Equal(t, `[{"n":9},{"n":10},{"n":100}]`, applyOK(t, input, ":sort n"))
}

func TestSortMissingFieldTreatedAsNull(t *testing.T) {
	input := `[{"n": 1}, {}, {"n": 2}]`
	// Missing fields compare as null ("null" textually) against numbers.
	result := applyOK(t, input, ":sort n")
	assert.Contains(t, result, `{}`)
}

func TestSortPrimitives(t *testing.T) {
	assert.Equal(t, `[1,2,3]`, applyOK(t, `[3, 1, 2]`, ":sort"))
}

func TestSortIsStable(t *testing.T) {
	input := `[{"k": 1, "tag": "first"}, {"k": 1, "tag": "second"}]`
	expected := `[{"k":1,"tag":"first"},{"k":1,"tag":"second"}]`
	assert.Equal(t, expected, applyOK(t, input, ":sort k"))
}

func TestUniqIsGlobal(t *testing.T) {
	// Non-adjacent duplicates are removed; first occurrence and its
	// position win.
	assert.Equal(t, `[1,2,3]`, applyOK(t, `[1, 2, 2, 3, 1, 3]`, ":uniq"))
}

func TestUniqStructuralEquality(t *testing.T) {
	// Member order does not affect object equality.
	assert.Equal(t, `[{"a":1,"b":2}]`, applyOK(t, `[{"a": 1, "b": 2}, {"b": 2, "a": 1}]`, ":uniq"))
}

func TestGroupBy(t *testing.T) {
	input := `[
		{"type": "fruit", "name": "apple"},
		{"type": "veg", "name": "carrot"},
		{"type": "fruit", "name": "banana"}
	]`
	result, err := Apply(mustDecode(t, input), ":group_by type")
	require.NoError(t, err)

	obj, ok := result.(*jsonval.Object)
	require.True(t, ok)
	assert.Equal(t, []string{"fruit", "veg"}, obj.Keys())

	fruit, _ := obj.Get("fruit")
	assert.Len(t, fruit.(jsonval.Array), 2)
}

func TestGroupByMissingFieldGoesToNullKey(t *testing.T) {
	input := `[{"type": "a", "name": "x"}, {"name": "y"}]`
	result, err := Apply(mustDecode(t, input), ":group_by type")
	require.NoError(t, err)

	obj := result.(*jsonval.Object)
	_, hasA := obj.Get("a")
	_, hasNull := obj.Get("null")
	assert.True(t, hasA)
	assert.True(t, hasNull)
}

func TestGroupByNonStringKeyUsesTextualForm(t *testing.T) {
	input := `[{"n": 1}, {"n": 1}, {"n": 2}]`
	result, err := Apply(mustDecode(t, input), ":group_by n")
	require.NoError(t, err)

	obj := result.(*jsonval.Object)
	assert.Equal(t, []string{"1", "2"}, obj.Keys())
}

func TestFilter(t *testing.T) {
	input := `[
		{"name": "A", "price": 5},
		{"name": "B", "price": 15},
		{"name": "C", "price": 8}
	]`
	expected := `[{"name":"A","price":5},{"name":"C","price":8}]`
	assert.Equal(t, expected, applyOK(t, input, ":filter price < 10"))
}

func TestFilterThenSortChain(t *testing.T) {
	input := `[
		{"name": "A", "price": 5},
		{"name": "B", "price": 15},
		{"name": "C", "price": 8}
	]`
	expected := `[{"name":"A","price":5},{"name":"C","price":8}]`
	assert.Equal(t, expected, applyOK(t, input, ":filter price < 10 :sort price"))
}

func TestChainEqualsSequentialApplication(t *testing.T) {
	input := `[
		{"name": "B", "age": 30, "x": 1},
		{"name": "A", "age": 20, "x": 2}
	]`

	chained, err := Apply(mustDecode(t, input), ":pick name,age :sort age")
	require.NoError(t, err)

	step1, err := Apply(mustDecode(t, input), ":pick name,age")
	require.NoError(t, err)
	step2, err := Apply(step1, ":sort age")
	require.NoError(t, err)

	assert.Equal(t, jsonval.Encode(step2), jsonval.Encode(chained))
}

func TestChainAbortsOnFirstFailure(t *testing.T) {
	_, err := Apply(mustDecode(t, `{"a": 1}`), ":keys :keys")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ":keys requires an object")
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		chain string
	}{
		{name: "unknown command", input: `[1]`, chain: ":unknown"},
		{name: "keys on array", input: `[1, 2]`, chain: ":keys"},
		{name: "values on array", input: `[1]`, chain: ":values"},
		{name: "count on scalar", input: `42`, chain: ":count"},
		{name: "flatten on object", input: `{"a": 1}`, chain: ":flatten"},
		{name: "pick without args", input: `[{"a": 1}]`, chain: ":pick"},
		{name: "omit without args", input: `{"a": 1}`, chain: ":omit"},
		{name: "pick on scalar", input: `42`, chain: ":pick a"},
		{name: "sort on object", input: `{"a": 1}`, chain: ":sort"},
		{name: "uniq on object", input: `{"a": 1}`, chain: ":uniq"},
		{name: "group_by without args", input: `[{"a": 1}]`, chain: ":group_by"},
		{name: "group_by on object", input: `{"a": 1}`, chain: ":group_by a"},
		{name: "filter without args", input: `[{"a": 1}]`, chain: ":filter"},
		{name: "filter bad expression", input: `[{"a": 1}]`, chain: ":filter a ??"},
		{name: "filter on object", input: `{"a": 1}`, chain: ":filter a == 1"},
		{name: "sum on object", input: `{"a": 1}`, chain: ":sum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(mustDecode(t, tt.input), tt.chain)
			assert.Error(t, err)
		})
	}
}
