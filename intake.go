package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	"github.com/itsm-a-dev/BetTrackingBot/models"
	"github.com/itsm-a-dev/BetTrackingBot/pkg/metrics"
	"github.com/itsm-a-dev/BetTrackingBot/pkg/ocr"
	"github.com/itsm-a-dev/BetTrackingBot/pkg/render"
	"github.com/itsm-a-dev/BetTrackingBot/pkg/slip"
)

var (
	parser  *slip.Parser
	surface render.Surface
)

var errAlreadyTracked = errors.New("slip already tracked")

// slipID derives a stable bet ID from the image bytes so the same
// screenshot submitted twice maps to the same bet.
func slipID(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

// processSlip runs the full intake pipeline: OCR, parse, confidence
// gate, announce, track. Every attempt leaves a SlipCapture row whether
// or not it produced a bet.
func processSlip(ctx context.Context, data []byte, fileName, storePath, source string) (*models.TrackedBet, *slip.ParsedSlip, error) {
	id := slipID(data)
	if _, ok := engine.Get(id); ok {
		metrics.Default().RecordSlip(source, "duplicate", -1)
		return nil, nil, errAlreadyTracked
	}

	res, err := ocr.ExtractSlipText(data)
	if err != nil {
		recordCapture(&models.SlipCapture{
			FileName: fileName, StorePath: storePath,
			Failed: true, FailedReason: "ocr: " + err.Error(),
		})
		metrics.Default().RecordSlip(source, "ocr_failed", -1)
		return nil, nil, fmt.Errorf("reading slip: %w", err)
	}
	metrics.Default().OCRScore.Observe(res.Score)
	if res.Text == "" {
		recordCapture(&models.SlipCapture{
			FileName: fileName, StorePath: storePath,
			Failed: true, FailedReason: "no readable text",
		})
		metrics.Default().RecordSlip(source, "unreadable", -1)
		return nil, nil, ocr.ErrNoText
	}

	parsed := parser.Parse(res.Text)
	conf := slip.Confidence(parsed)
	if conf < appCfg.ConfidenceThreshold || len(parsed.Legs) == 0 {
		recordCapture(&models.SlipCapture{
			FileName: fileName, StorePath: storePath,
			Book:       string(parsed.Book),
			Confidence: conf,
			Failed:     true, FailedReason: "below confidence threshold",
		})
		metrics.Default().RecordSlip(source, "low_confidence", conf)
		return nil, parsed, fmt.Errorf("slip not recognized (confidence %.2f)", conf)
	}

	bet := &models.TrackedBet{
		ID:      id,
		BetType: parsed.BetType,
		League:  parsed.League,
		Odds:    parsed.Odds,
		Stake:   parsed.Stake,
		Payout:  parsed.Payout,
		Book:    string(parsed.Book),
		Legs:    parsed.Legs,
	}
	if err := announceBet(ctx, bet); err != nil {
		log.Printf("announce warning for bet %s: %v", bet.ID, err)
	}
	engine.Add(bet)

	recordCapture(&models.SlipCapture{
		FileName: fileName, StorePath: storePath,
		Book:       string(parsed.Book),
		Confidence: conf,
		BetID:      &bet.ID,
	})
	metrics.Default().RecordSlip(source, "ok", conf)
	log.Printf("[intake] tracked %s bet %s (%d legs, book=%s, conf=%.2f)",
		bet.BetType, bet.ID, len(bet.Legs), bet.Book, conf)
	return bet, parsed, nil
}

// announceBet posts the bet card and stores the handle used for later edits.
func announceBet(ctx context.Context, bet *models.TrackedBet) error {
	if surface == nil {
		return nil
	}
	handle, err := surface.Post(ctx, render.FormatBet(bet))
	if err != nil {
		return err
	}
	bet.RenderHandle = handle
	return nil
}
