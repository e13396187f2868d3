package models

import (
	"time"
)

// SlipCapture records one intake attempt for an uploaded slip image, kept
// even when the parse is rejected so low-confidence slips can be reviewed.
type SlipCapture struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	FileName   string `gorm:"size:255;not null"`
	StorePath  string `gorm:"column:store_path;size:512"`
	Book       string `gorm:"size:32"`
	Confidence float64
	BetID      *string `gorm:"size:64;index"` // set only when intake created a tracked bet
	// Mark capture as failed (unreadable image / empty OCR) so it can be reviewed.
	Failed       bool   `gorm:"default:false;index"`
	FailedReason string `gorm:"size:255"`
}
