// Package suggest ranks key-name candidates for interactive autocompletion.
package suggest

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Candidate is one ranked completion option.
type Candidate struct {
	// Text is the full candidate key.
	Text string

	// Score ranks candidates, higher first. 0 for the list-all case.
	Score int

	// MatchIndices are byte offsets into Text that matched the input, for
	// highlight rendering.
	MatchIndices []int
}

// Candidates ranks the available keys against the typed fragment.
//
// An empty fragment lists every key unranked, in the given order. Otherwise
// keys are fuzzy-matched and returned best first; keys that do not match at
// all are dropped.
func Candidates(keys []string, input string) []Candidate {
	if input == "" {
		out := make([]Candidate, len(keys))
		for i, k := range keys {
			out[i] = Candidate{Text: k}
		}
		return out
	}

	matches := fuzzy.Find(input, keys)
	out := make([]Candidate, len(matches))
	for i, m := range matches {
		out[i] = Candidate{
			Text:         m.Str,
			Score:        m.Score,
			MatchIndices: m.MatchedIndexes,
		}
	}
	return out
}

// Completion computes the text to append for a Tab press.
//
// Resolution order: a unique prefix match completes fully; multiple prefix
// matches complete to their longest common prefix; otherwise the best fuzzy
// candidate completes if it happens to start with the input. Returns the
// suffix to append and the full suggested key, or ok=false when nothing
// applies.
func Completion(keys []string, input string) (suffix, full string, ok bool) {
	if input == "" {
		return "", "", false
	}

	var prefixed []string
	for _, k := range keys {
		if strings.HasPrefix(k, input) {
			prefixed = append(prefixed, k)
		}
	}

	if len(prefixed) == 1 {
		return prefixed[0][len(input):], prefixed[0], true
	}

	if len(prefixed) > 1 {
		lcp := longestCommonPrefix(prefixed)
		if len(lcp) > len(input) {
			return lcp[len(input):], lcp, true
		}
	}

	candidates := Candidates(keys, input)
	if len(candidates) > 0 && strings.HasPrefix(candidates[0].Text, input) {
		best := candidates[0].Text
		return best[len(input):], best, true
	}

	return "", "", false
}

func longestCommonPrefix(strs []string) string {
	if len(strs) == 0 {
		return ""
	}
	prefix := strs[0]
	for _, s := range strs[1:] {
		for !strings.HasPrefix(s, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}
