// Package fuzz provides the similarity scoring used for team, player and
// event matching. Scores are 0-100 so thresholds read the same way across
// the parser, the catalogs and the tracker.
package fuzz

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Match is one scored candidate from Extract.
type Match struct {
	Text  string
	Score int
	Index int
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

// Ratio returns a 0-100 similarity between a and b based on edit distance.
func Ratio(a, b string) int {
	a, b = normalize(a), normalize(b)
	if a == "" || b == "" {
		if a == b {
			return 100
		}
		return 0
	}
	if a == b {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	longer := len([]rune(a))
	if l := len([]rune(b)); l > longer {
		longer = l
	}
	score := 100 - (100*dist)/longer
	if score < 0 {
		score = 0
	}
	return score
}

// PartialRatio returns the best Ratio of the shorter string against every
// same-length window of the longer one. This is what makes "Cowboys"
// score high inside "Dallas Cowboys -3.5 Spread".
func PartialRatio(a, b string) int {
	a, b = normalize(a), normalize(b)
	if a == "" || b == "" {
		if a == b {
			return 100
		}
		return 0
	}
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == len(long) {
		return Ratio(string(short), string(long))
	}
	best := 0
	for i := 0; i+len(short) <= len(long); i++ {
		window := string(long[i : i+len(short)])
		if s := Ratio(string(short), window); s > best {
			best = s
			if best == 100 {
				break
			}
		}
	}
	return best
}

// ExtractOne returns the single best-scoring choice by PartialRatio.
// ok is false when choices is empty.
func ExtractOne(query string, choices []string) (Match, bool) {
	best := Match{Index: -1}
	for i, c := range choices {
		s := PartialRatio(query, c)
		if best.Index == -1 || s > best.Score {
			best = Match{Text: c, Score: s, Index: i}
		}
	}
	return best, best.Index != -1
}

// Extract returns up to limit choices scoring at least threshold, ordered
// by descending score with input order as the tie-break so results are
// deterministic.
func Extract(query string, choices []string, limit, threshold int) []Match {
	var out []Match
	for i, c := range choices {
		if s := PartialRatio(query, c); s >= threshold {
			out = append(out, Match{Text: c, Score: s, Index: i})
		}
	}
	// insertion sort by score desc, stable on input order
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Score > out[j-1].Score; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
