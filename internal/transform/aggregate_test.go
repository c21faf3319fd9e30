package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumField(t *testing.T) {
	input := `[{"price": 10.99}, {"price": 8.99}, {"price": 32.99}]`
	assert.Equal(t, `52.97`, applyOK(t, input, ":sum price"))
}

func TestSumWholeElements(t *testing.T) {
	assert.Equal(t, `6`, applyOK(t, `[1, 2, 3]`, ":sum"))
}

func TestSumSkipsNonNumeric(t *testing.T) {
	assert.Equal(t, `3`, applyOK(t, `[1, "x", 2, null]`, ":sum"))
	assert.Equal(t, `5`, applyOK(t, `[{"n": 2}, {"n": "x"}, {"n": 3}, {}]`, ":sum n"))
}

func TestSumEmptyIsZero(t *testing.T) {
	assert.Equal(t, `0`, applyOK(t, `[]`, ":sum"))
	assert.Equal(t, `0`, applyOK(t, `["a", "b"]`, ":sum"))
}

func TestAvg(t *testing.T) {
	assert.Equal(t, `2`, applyOK(t, `[1, 2, 3]`, ":avg"))
	assert.Equal(t, `1.5`, applyOK(t, `[1, 2]`, ":avg"))
}

func TestAvgEmptyIsNull(t *testing.T) {
	assert.Equal(t, `null`, applyOK(t, `[]`, ":avg"))
	assert.Equal(t, `null`, applyOK(t, `["a"]`, ":avg"))
}

func TestMinMax(t *testing.T) {
	input := `[{"n": 5}, {"n": -2}, {"n": 9}]`
	assert.Equal(t, `-2`, applyOK(t, input, ":min n"))
	assert.Equal(t, `9`, applyOK(t, input, ":max n"))

	assert.Equal(t, `1`, applyOK(t, `[3, 1, 2]`, ":min"))
	assert.Equal(t, `3`, applyOK(t, `[3, 1, 2]`, ":max"))
}

func TestMinMaxEmptyIsNull(t *testing.T) {
	assert.Equal(t, `null`, applyOK(t, `[]`, ":min"))
	assert.Equal(t, `null`, applyOK(t, `[]`, ":max"))
}

func TestWholeResultsPrintAsIntegers(t *testing.T) {
	// 1.5 + 2.5 is whole, so it renders without a fractional part.
	assert.Equal(t, `4`, applyOK(t, `[1.5, 2.5]`, ":sum"))
}

func TestAggregateInChain(t *testing.T) {
	input := `[
		{"name": "A", "price": 5},
		{"name": "B", "price": 15},
		{"name": "C", "price": 8}
	]`
	assert.Equal(t, `13`, applyOK(t, input, ":filter price < 10 :sum price"))
}

func TestAggregateRequiresArray(t *testing.T) {
	for _, chain := range []string{":sum", ":avg", ":min", ":max"} {
		_, err := Apply(mustDecode(t, `{"a": 1}`), chain)
		require.Error(t, err, chain)
	}
}
