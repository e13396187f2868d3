// Package ocr turns a slip screenshot into the single best text transcript.
//
// A fixed set of preprocessing variants (optionally rotated) is read under
// two engine configurations each; every resulting transcript is sanitized
// and scored by a slip-shaped heuristic, and the highest scorer wins with
// transcript length as the tie-break. The whole procedure is deterministic
// for identical input bytes, which keeps regression tests reproducible.
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"log"

	"github.com/disintegration/imaging"
)

// Candidate is the diagnostic record of one pass/config combination.
type Candidate struct {
	Variant  string
	Rotation int
	Config   string
	Score    float64
	Length   int
}

// Result carries the winning transcript plus the full candidate list for
// diagnostics. Text is empty when no pass produced any text.
type Result struct {
	Text       string
	Variant    string
	Config     string
	Score      float64
	Candidates []Candidate
}

// ExtractSlipText runs the multi-pass strategy over raw image bytes and
// returns the best-guess transcript. An undecodable image is an error;
// an image with no readable text returns an empty Text and no error —
// the caller owns the "could not read image" policy.
func ExtractSlipText(imgBytes []byte) (*Result, error) {
	src, err := imaging.Decode(bytes.NewReader(imgBytes), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return extractFromImage(src), nil
}

func extractFromImage(src image.Image) *Result {
	res := &Result{}
	bestText := ""
	bestScore := -1.0
	bestLen := -1

	for _, p := range passes {
		for _, cfg := range engineConfigs {
			text := runPass(src, p, cfg)
			score := scoreTranscript(text)
			res.Candidates = append(res.Candidates, Candidate{
				Variant:  p.Variant,
				Rotation: p.Rotation,
				Config:   cfg.Name,
				Score:    score,
				Length:   len(text),
			})
			// Highest score wins; ties go to the longer transcript. Strict
			// comparisons keep selection stable in pass order.
			if score > bestScore || (score == bestScore && len(text) > bestLen) {
				bestScore = score
				bestLen = len(text)
				bestText = text
				res.Variant = p.Variant
				res.Config = passKey(p, cfg)
			}
			log.Printf("[ocr] %s score=%.1f len=%d", passKey(p, cfg), score, len(text))
		}
	}

	res.Text = bestText
	res.Score = bestScore
	if bestText == "" {
		res.Variant = ""
		res.Config = ""
		res.Score = 0
	} else {
		log.Printf("[ocr] best=%s score=%.1f len=%d preview=%q", res.Config, res.Score, len(bestText), snippet(bestText, 160))
	}
	return res
}
