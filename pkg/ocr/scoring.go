package ocr

import "strings"

// Tokens we expect somewhere on a sportsbook slip. Their presence is the
// strongest signal that a pass read the right text.
var expectedTokens = []string{
	"PARLAY", "WAGER", "TO WIN", "PAYOUT", "ODDS", "BOOST", "SGP", "SGPMAX",
	"TO RECORD", "ANYTIME TD", "OVER", "UNDER", "TODAY", "EDT",
	"BET", "HARD ROCK", "ID:", "PAID", "FINAL", "WON", "LOSS",
	"MONEYLINE", "SPREAD", "TOTAL", "LEG", "CASH OUT", "STAKE",
}

const shortTranscriptLen = 60

// scoreTranscript rates how slip-like a transcript looks. Letter and digit
// density, recognized slip tokens, odds symbols (+/-) and line count all
// push the score up; very short transcripts are discounted. Deterministic
// for a given input.
func scoreTranscript(text string) float64 {
	if text == "" {
		return 0
	}
	total := len(text)
	letters, digits := 0, 0
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letters++
		case r >= '0' && r <= '9':
			digits++
		}
	}
	alpha := float64(letters) / float64(total)
	digit := float64(digits) / float64(total)

	upper := strings.ToUpper(text)
	tokens := 0
	for _, t := range expectedTokens {
		if strings.Contains(upper, t) {
			tokens++
		}
	}
	oddsSymbols := strings.Count(text, "+") + strings.Count(text, "-")
	lines := strings.Count(text, "\n") + 1

	score := (alpha*0.35 + digit*0.25) * 100
	score += float64(min(oddsSymbols, 10)) * 1.5
	score += float64(min(tokens, 10)) * 3.0
	score += float64(min(lines, 40)) * 0.5
	if total < shortTranscriptLen {
		score *= 0.6
	}
	return score
}
