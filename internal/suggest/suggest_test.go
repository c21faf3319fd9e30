package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Text
	}
	return out
}

func TestEmptyInputListsAllKeys(t *testing.T) {
	cands := Candidates([]string{"name", "age", "email"}, "")
	assert.Equal(t, []string{"name", "age", "email"}, texts(cands))
	for _, c := range cands {
		assert.Zero(t, c.Score)
	}
}

func TestPrefixCandidates(t *testing.T) {
	cands := Candidates([]string{"name", "namespace", "age"}, "nam")
	assert.Contains(t, texts(cands), "name")
	assert.Contains(t, texts(cands), "namespace")
	assert.NotContains(t, texts(cands), "age")
}

func TestFuzzyCandidates(t *testing.T) {
	cands := Candidates([]string{"firstName", "lastName", "email"}, "fn")
	assert.Contains(t, texts(cands), "firstName")
}

func TestNoMatchIsEmpty(t *testing.T) {
	assert.Empty(t, Candidates([]string{"name", "age"}, "zzz"))
}

func TestExactMatchRanksFirst(t *testing.T) {
	cands := Candidates([]string{"average", "aggregate", "age"}, "age")
	require.NotEmpty(t, cands)
	assert.Equal(t, "age", cands[0].Text)
}

func TestMatchIndicesPresent(t *testing.T) {
	cands := Candidates([]string{"username"}, "user")
	require.NotEmpty(t, cands)
	assert.NotEmpty(t, cands[0].MatchIndices)
}

func TestCompletionUniquePrefix(t *testing.T) {
	suffix, full, ok := Completion([]string{"username", "password"}, "user")
	require.True(t, ok)
	assert.Equal(t, "name", suffix)
	assert.Equal(t, "username", full)
}

func TestCompletionCommonPrefix(t *testing.T) {
	suffix, full, ok := Completion([]string{"name", "namespace"}, "na")
	require.True(t, ok)
	assert.Equal(t, "me", suffix)
	assert.Equal(t, "name", full)
}

func TestCompletionAtCommonPrefixBoundary(t *testing.T) {
	// Input already equals the longest common prefix; the fuzzy fallback
	// picks the best candidate instead.
	suffix, full, ok := Completion([]string{"name", "namespace"}, "name")
	require.True(t, ok)
	assert.Equal(t, full, "name"+suffix)
}

func TestCompletionNoMatch(t *testing.T) {
	_, _, ok := Completion([]string{"name", "age"}, "zzz")
	assert.False(t, ok)
}

func TestCompletionEmptyInput(t *testing.T) {
	_, _, ok := Completion([]string{"name"}, "")
	assert.False(t, ok)
}

func TestLongestCommonPrefix(t *testing.T) {
	assert.Equal(t, "name", longestCommonPrefix([]string{"namespace", "name", "named"}))
	assert.Equal(t, "test", longestCommonPrefix([]string{"test", "test"}))
	assert.Equal(t, "", longestCommonPrefix(nil))
	assert.Equal(t, "", longestCommonPrefix([]string{"abc", "xyz"}))
}
