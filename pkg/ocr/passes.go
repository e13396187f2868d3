package ocr

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// engineConfig is one Tesseract tuning applied to a preprocessed image.
type engineConfig struct {
	Name string
	Mode gosseract.PageSegMode
}

// Two configs per variant: justified body text and scattered UI tiles.
var engineConfigs = []engineConfig{
	{Name: "block", Mode: gosseract.PSM_SINGLE_BLOCK},
	{Name: "sparse", Mode: gosseract.PSM_SPARSE_TEXT},
}

// pass is one (variant, rotation) combination to preprocess and read.
type pass struct {
	Variant  string
	Rotation int
}

// The fixed candidate set. Rotated passes recover sideways captures and
// only run the heavier primary pipeline.
var passes = []pass{
	{VariantPrimary, 0},
	{VariantLight, 0},
	{VariantContrast, 0},
	{VariantPrimary, 90},
	{VariantPrimary, 180},
	{VariantPrimary, 270},
}

// runPass preprocesses the image for one pass and reads it under one
// engine config. Any engine failure yields an empty transcript so a
// single broken combination never aborts candidate selection.
func runPass(src image.Image, p pass, cfg engineConfig) string {
	processed := preprocessVariant(src, p.Variant, p.Rotation)

	tmpFile, err := os.CreateTemp("", "slip-ocr-*.png")
	if err != nil {
		return ""
	}
	tmp := tmpFile.Name()
	_ = tmpFile.Close()
	defer os.Remove(tmp)
	if err := imaging.Save(processed, tmp); err != nil {
		return ""
	}

	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage("eng")
	_ = client.SetPageSegMode(cfg.Mode)
	_ = client.SetBlacklist(`|{}[]<>\`)
	_ = client.SetVariable("preserve_interword_spaces", "1")
	if err := client.SetImage(tmp); err != nil {
		return ""
	}
	text, err := client.Text()
	if err != nil {
		return ""
	}
	return sanitizeTranscript(text)
}

func passKey(p pass, cfg engineConfig) string {
	return fmt.Sprintf("%s|rot=%d|%s", p.Variant, p.Rotation, cfg.Name)
}
