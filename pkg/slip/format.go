package slip

import (
	"regexp"
	"sort"
	"strings"
)

// Sportsbook identifies the slip layout family a transcript came from.
type Sportsbook string

const (
	BookHardRock   Sportsbook = "hardrock"
	BookDraftKings Sportsbook = "draftkings"
	BookFanDuel    Sportsbook = "fanduel"
	BookBetMGM     Sportsbook = "betmgm"
	BookCaesars    Sportsbook = "caesars"
	BookGeneric    Sportsbook = "generic"
)

// Book token hints checked in order; first hit wins.
var bookHints = []struct {
	Book Sportsbook
	re   *regexp.Regexp
}{
	{BookHardRock, regexp.MustCompile(`(?i)\bhard\s*rock\b`)},
	{BookDraftKings, regexp.MustCompile(`(?i)\bdraft\s*kings?\b|\bsgpmax\b`)},
	{BookFanDuel, regexp.MustCompile(`(?i)\bfan\s*duel\b|\bsame\s+game\s+parlay\b`)},
	{BookBetMGM, regexp.MustCompile(`(?i)\bbet\s*mgm\b|\bmgm\b`)},
	{BookCaesars, regexp.MustCompile(`(?i)\bcaesars\b|\bczr\b`)},
}

// reLegMarker matches the numbered leg headers some layouts print.
var reLegMarker = regexp.MustCompile(`(?im)^\s*leg\s+\d+\b`)

// Structural cues assign a layout family when the transcript names no
// book: numbered legs read like a DraftKings slip, a parlay header like
// a FanDuel one, wager/to-win phrasing like a Hard Rock one. The label
// only tunes segmentation downstream; parsed values never depend on it.
var structuralHints = []struct {
	Book Sportsbook
	re   *regexp.Regexp
}{
	{BookDraftKings, reLegMarker},
	{BookFanDuel, regexp.MustCompile(`(?i)\bparlay\b`)},
	{BookHardRock, regexp.MustCompile(`(?is)\bwager\b.*\bto\s+win\b`)},
}

// Noise lines carry no market information and only confuse the leg
// segmenter. The patterns are deliberately anchored and conservative:
// a line is only dropped when the whole line is chrome, never when it
// merely contains a number.
var noiseLines = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*(bet\s*)?id[:#]\s*\S+\s*$`),
	regexp.MustCompile(`(?i)^\s*ticket\s*#?\s*\d+\s*$`),
	regexp.MustCompile(`(?i)^\s*placed[:.]?\s`),
	regexp.MustCompile(`(?i)^\s*page\s+\d+\s+of\s+\d+\s*$`),
	regexp.MustCompile(`(?i)^\s*(today|tomorrow|yesterday)?\s*\d{1,2}:\d{2}\s*(am|pm)?\s*(edt|est|cdt|cst|mdt|mst|pdt|pst)?\s*$`),
	regexp.MustCompile(`(?i)^\s*share\s*$`),
	regexp.MustCompile(`(?i)^\s*cash\s*out\s*(unavailable)?\s*$`),
}

// Markers that start a new leg or a new money field but frequently get
// glued to the previous line by sparse-text OCR. The router inserts a
// line break in front of them so the segmenter sees clean boundaries.
// Insertion only, never deletion.
var boundaryMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bleg\s+\d+\b`),
	regexp.MustCompile(`(?i)\b(wager|stake|risk)\s*\$`),
	regexp.MustCompile(`(?i)\b(payout|to\s+win)\s*\$`),
	regexp.MustCompile(`(?i)\b(over|under)\s+\d`),
}

// RouteTranscript detects the sportsbook a transcript came from and
// normalizes its line structure for the parser. The transcript text is
// reshaped but never reduced: every numeric or market token survives.
func RouteTranscript(text string) (Sportsbook, string) {
	book := BookGeneric
	for _, h := range bookHints {
		if h.re.MatchString(text) {
			book = h.Book
			break
		}
	}
	if book == BookGeneric {
		for _, h := range structuralHints {
			if h.re.MatchString(text) {
				book = h.Book
				break
			}
		}
	}
	return book, normalizeLayout(text)
}

func normalizeLayout(text string) string {
	var kept []string
lines:
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			kept = append(kept, "")
			continue
		}
		for _, re := range noiseLines {
			if re.MatchString(trimmed) {
				continue lines
			}
		}
		kept = append(kept, breakBoundaries(trimmed)...)
	}
	return strings.Join(kept, "\n")
}

// breakBoundaries splits one physical line at every embedded boundary
// marker. A marker already at the start of the line is left alone.
func breakBoundaries(line string) []string {
	cuts := []int{0}
	for _, re := range boundaryMarkers {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			if loc[0] > 0 {
				cuts = append(cuts, loc[0])
			}
		}
	}
	if len(cuts) == 1 {
		return []string{line}
	}
	sort.Ints(cuts)
	var out []string
	for i, start := range cuts {
		end := len(line)
		if i+1 < len(cuts) {
			end = cuts[i+1]
		}
		if part := strings.TrimSpace(line[start:end]); part != "" {
			out = append(out, part)
		}
	}
	return out
}
