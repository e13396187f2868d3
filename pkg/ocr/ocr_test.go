package ocr

import (
	"image"
	"image/color"
	"testing"
)

func TestScoreTranscriptPrefersSlipText(t *testing.T) {
	slip := "Hard Rock Bet\nDrake Maye - Passing Yards\nOver 225.5 -115\nWager $10.00\nPayout $18.70\nID: 1234567890"
	noise := "~~~ ### ||| @@@\n..... ,,,,, ;;;;;\n~~~ ### |||"

	slipScore := scoreTranscript(slip)
	noiseScore := scoreTranscript(noise)
	if slipScore <= noiseScore {
		t.Fatalf("slip text scored %.2f, noise scored %.2f", slipScore, noiseScore)
	}
}

func TestScoreTranscriptDeterministic(t *testing.T) {
	text := "Parlay 2 legs +264\nDallas Cowboys -3.5\nOver 44.5\nTotal Wager $20.00"
	first := scoreTranscript(text)
	for i := 0; i < 5; i++ {
		if got := scoreTranscript(text); got != first {
			t.Fatalf("score changed between runs: %.6f vs %.6f", first, got)
		}
	}
}

func TestScoreTranscriptShortDiscount(t *testing.T) {
	short := "Over 44.5"
	long := short + "\nWager $20.00\nPayout $72.80\nDallas Cowboys vs Philadelphia Eagles"
	if scoreTranscript(short) >= scoreTranscript(long) {
		t.Fatal("short transcript should score below its extended version")
	}
}

func TestScoreTranscriptEmpty(t *testing.T) {
	if got := scoreTranscript(""); got != 0 {
		t.Fatalf("empty transcript scored %.2f, want 0", got)
	}
}

func TestSanitizeTranscript(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"crlf", "a\r\nb", "a\nb"},
		{"control chars stripped", "a\x00b\x07c", "abc"},
		{"line trim", "  Over 44.5  \n  -115 ", "Over 44.5\n-115"},
		{"trailing blanks dropped", "a\n\n\n", "a"},
		{"internal blank kept", "a\n\nb", "a\n\nb"},
		{"fullwidth digits folded", "２２５", "225"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sanitizeTranscript(tc.in); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

// twoToneImage is half dark, half light, which gives thresholding
// functions an unambiguous split to find.
func twoToneImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{20, 20, 20, 255}
			if x >= w/2 {
				c = color.NRGBA{230, 230, 230, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestOtsuThresholdSplitsTwoTone(t *testing.T) {
	src := twoToneImage(40, 40)
	out := binarize(src, otsuThreshold(src))
	if got := out.NRGBAAt(5, 20).R; got != 0 {
		t.Fatalf("dark half binarized to %d, want 0", got)
	}
	if got := out.NRGBAAt(35, 20).R; got != 255 {
		t.Fatalf("light half binarized to %d, want 255", got)
	}
}

func TestBinarizeProducesTwoValues(t *testing.T) {
	src := twoToneImage(16, 16)
	out := binarize(src, otsuThreshold(src))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			v := out.NRGBAAt(x, y).R
			if v != 0 && v != 255 {
				t.Fatalf("pixel (%d,%d) = %d, want 0 or 255", x, y, v)
			}
		}
	}
}

func TestAdaptiveThresholdBorderInk(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	// One gray glyph pixel in the corner and one in the interior. The
	// local mean stays near white for both, so both must come out black;
	// a window mean biased low at the borders misses the corner one.
	img.SetNRGBA(0, 0, color.NRGBA{150, 150, 150, 255})
	img.SetNRGBA(10, 10, color.NRGBA{150, 150, 150, 255})

	out := adaptiveThreshold(img, 5, 2)

	if got := out.NRGBAAt(0, 0).R; got != 0 {
		t.Errorf("corner ink pixel = %d, want 0", got)
	}
	if got := out.NRGBAAt(10, 10).R; got != 0 {
		t.Errorf("interior ink pixel = %d, want 0", got)
	}
	if got := out.NRGBAAt(5, 5).R; got != 255 {
		t.Errorf("background pixel = %d, want 255", got)
	}
}

func TestPreprocessVariantDeterministic(t *testing.T) {
	src := twoToneImage(32, 32)
	a := preprocessVariant(src, "primary", 0)
	b := preprocessVariant(src, "primary", 0)
	if len(a.Pix) != len(b.Pix) {
		t.Fatalf("pixel buffers differ in size: %d vs %d", len(a.Pix), len(b.Pix))
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("pixel byte %d differs between runs", i)
		}
	}
}

func TestRotateQuarterSwapsDimensions(t *testing.T) {
	src := twoToneImage(30, 10)
	rot := rotateQuarter(src, 90)
	b := rot.Bounds()
	if b.Dx() != 10 || b.Dy() != 30 {
		t.Fatalf("rotated bounds %dx%d, want 10x30", b.Dx(), b.Dy())
	}
}
