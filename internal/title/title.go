// Package title folds book titles for comparison and ranks near-misses.
// The catalog and the watch sheet are both fed by hand, so the same book
// shows up with mixed widths, stray spaces, and inconsistent casing.
package title

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns the comparison form of a title: NFKC folded (full-width
// forms collapse to their half-width equivalents), trimmed, lower-cased.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	s = strings.TrimSpace(s)
	return strings.ToLower(s)
}

// Suggest returns the candidate closest to input by edit distance, if one is
// near enough to plausibly be a typo of it.
func Suggest(input string, candidates []string) (string, bool) {
	pat := Normalize(input)
	if pat == "" || len(candidates) == 0 {
		return "", false
	}

	normalized := make([]string, len(candidates))
	for i, c := range candidates {
		normalized[i] = Normalize(c)
	}

	ranks := fuzzy.RankFind(pat, normalized)
	if len(ranks) == 0 {
		return "", false
	}
	sort.Sort(ranks)

	best := ranks[0]
	if best.Distance > distanceThreshold(utf8.RuneCountInString(pat)) {
		return "", false
	}
	return candidates[best.OriginalIndex], true
}

// distanceThreshold allows roughly 20% of the pattern length in runes,
// clamped to [1, 3] so short titles stay strict and long ones don't match
// wildly. Counting runes keeps Hangul titles as strict as ASCII ones.
func distanceThreshold(n int) int {
	th := n / 5
	if th < 1 {
		return 1
	}
	if th > 3 {
		return 3
	}
	return th
}
