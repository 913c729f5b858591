// Package similarity scores how alike two names are. It backs the "did you
// mean" hints for mistyped profile and font names.
package similarity

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"
	"unicode"

	"github.com/klauern/gfxwrap/internal/logging"
)

// DefaultThreshold is the lowest score Suggest accepts.
const DefaultThreshold = 0.7

// Match is a candidate name and its score against the query.
type Match struct {
	Name  string
	Score float64
}

// Score returns the similarity of two names in [0, 1]. Names are compared
// case-insensitively with separators collapsed, and the better of the
// Levenshtein and Jaro-Winkler scores wins.
func Score(a, b string) float64 {
	a, b = normalizeName(a), normalizeName(b)
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	return max(LevenshteinSimilarity(a, b), JaroWinkler(a, b))
}

// Rank returns the candidates scoring at least threshold against name, best
// first. Ties are ordered by name.
func Rank(name string, candidates []string, threshold float64) []Match {
	var matches []Match
	for _, c := range candidates {
		if s := Score(name, c); s >= threshold {
			matches = append(matches, Match{Name: c, Score: s})
		}
	}
	slices.SortFunc(matches, func(x, y Match) int {
		if c := cmp.Compare(y.Score, x.Score); c != 0 {
			return c
		}
		return strings.Compare(x.Name, y.Name)
	})
	return matches
}

// Suggest returns the closest candidate to name, if any scores at least
// DefaultThreshold.
func Suggest(name string, candidates []string) (string, bool) {
	matches := Rank(name, candidates, DefaultThreshold)
	if len(matches) == 0 {
		return "", false
	}
	logging.Debug("suggesting name",
		slog.String("query", name),
		slog.String("suggestion", matches[0].Name),
		slog.Float64("score", matches[0].Score),
	)
	return matches[0].Name, true
}

// Hint formats a " (did you mean %q?)" suffix for error messages, or returns
// "" when nothing is close.
func Hint(name string, candidates []string) string {
	if s, ok := Suggest(name, candidates); ok {
		return ` (did you mean "` + s + `"?)`
	}
	return ""
}

// normalizeName lowercases s, drops punctuation and folds runs of '-', '_',
// '.' and spaces into one space.
func normalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	sep := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			sep = false
		case r == '-' || r == '_' || r == ' ' || r == '.':
			if !sep {
				b.WriteRune(' ')
				sep = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}
