package ocr

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Preprocessing variants. Each takes the decoded source image and returns
// the image handed to the text engine.
const (
	VariantPrimary  = "primary"
	VariantLight    = "light"
	VariantContrast = "contrast"
)

// preprocessVariant applies one named variant, optionally after rotating
// the source by a multiple of 90 degrees.
func preprocessVariant(src image.Image, variant string, rotation int) *image.NRGBA {
	img := rotateQuarter(src, rotation)
	gray := imaging.Grayscale(img)

	switch variant {
	case VariantPrimary:
		// Denoise, boost contrast, straighten, then adaptive binarization
		// with a light dilation to re-join broken glyphs.
		gray = imaging.Blur(gray, 0.6)
		gray = imaging.AdjustContrast(gray, 20)
		if angle := estimateSkew(gray); math.Abs(angle) > 0.3 {
			gray = imaging.Rotate(gray, angle, color.NRGBA{255, 255, 255, 255})
		}
		thr := adaptiveThreshold(gray, 31, 2)
		return dilate(thr, 1)

	case VariantLight:
		// Gentle contrast only, for screenshots that are already clean.
		return imaging.AdjustContrast(gray, 10)

	case VariantContrast:
		// Unsharp mask plus a global threshold for bold sportsbook fonts.
		sharp := imaging.Sharpen(gray, 1.5)
		return binarize(sharp, otsuThreshold(sharp))

	default:
		return gray
	}
}

func rotateQuarter(img image.Image, degrees int) image.Image {
	switch degrees {
	case 90:
		return imaging.Rotate90(img)
	case 180:
		return imaging.Rotate180(img)
	case 270:
		return imaging.Rotate270(img)
	default:
		return img
	}
}

// estimateSkew approximates the dominant text angle from the second
// central moments of the ink pixels, the same quantity a minimum-area
// bounding rectangle reports for a block of text. Returns degrees;
// anything beyond ±45 is treated as upright.
func estimateSkew(img image.Image) float64 {
	b := img.Bounds()
	var n, sx, sy float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if luma(img.At(x, y)) < 128 {
				n++
				sx += float64(x)
				sy += float64(y)
			}
		}
	}
	if n < 64 {
		return 0
	}
	cx, cy := sx/n, sy/n
	var mxx, myy, mxy float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if luma(img.At(x, y)) < 128 {
				dx, dy := float64(x)-cx, float64(y)-cy
				mxx += dx * dx
				myy += dy * dy
				mxy += dx * dy
			}
		}
	}
	if mxx == myy && mxy == 0 {
		return 0
	}
	angle := 0.5 * math.Atan2(2*mxy, mxx-myy) * 180 / math.Pi
	if math.Abs(angle) > 45 {
		return 0
	}
	return -angle
}

func luma(c color.Color) uint8 {
	r, g, b, _ := c.RGBA()
	return uint8((r + g + b) / 3 >> 8)
}

// binarize performs a global threshold on a grayscale image.
func binarize(img image.Image, threshold uint8) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var v uint8 = 255
			if luma(img.At(x, y)) <= threshold {
				v = 0
			}
			out.Set(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return out
}

// otsuThreshold picks the global threshold that maximizes between-class
// variance of the luma histogram.
func otsuThreshold(img image.Image) uint8 {
	var hist [256]int
	b := img.Bounds()
	total := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			hist[luma(img.At(x, y))]++
			total++
		}
	}
	if total == 0 {
		return 128
	}
	var sum float64
	for i, c := range hist {
		sum += float64(i) * float64(c)
	}
	var sumB, wB float64
	bestVar := 0.0
	best := 128
	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > bestVar {
			bestVar = between
			best = t
		}
	}
	return uint8(best)
}

// adaptiveThreshold performs a mean adaptive threshold using an integral
// image so the window mean is O(1) per pixel.
func adaptiveThreshold(img image.Image, window int, bias int) *image.NRGBA {
	if window < 3 {
		window = 3
	}
	if window%2 == 0 {
		window++
	}
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	out := imaging.New(w, h, color.NRGBA{255, 255, 255, 255})
	if w == 0 || h == 0 {
		return out
	}
	minX, minY := img.Bounds().Min.X, img.Bounds().Min.Y
	half := window / 2
	ints := make([]int, w*h)
	for y := 0; y < h; y++ {
		rowSum := 0
		for x := 0; x < w; x++ {
			rowSum += int(luma(img.At(minX+x, minY+y)))
			idx := y*w + x
			if y == 0 {
				ints[idx] = rowSum
			} else {
				ints[idx] = ints[(y-1)*w+x] + rowSum
			}
		}
	}
	// ints[y*w+x] holds the inclusive sum over (0,0)..(x,y), so a region
	// sum subtracts at x0-1 and y0-1; those terms vanish at the borders.
	at := func(yy, xx int) int {
		if yy < 0 || xx < 0 {
			return 0
		}
		return ints[yy*w+xx]
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0, y0 := x-half, y-half
			x1, y1 := x+half, y+half
			if x0 < 0 {
				x0 = 0
			}
			if y0 < 0 {
				y0 = 0
			}
			if x1 >= w {
				x1 = w - 1
			}
			if y1 >= h {
				y1 = h - 1
			}
			sum := at(y1, x1) - at(y0-1, x1) - at(y1, x0-1) + at(y0-1, x0-1)
			mean := sum / ((x1 - x0 + 1) * (y1 - y0 + 1))
			pix := int(luma(img.At(minX+x, minY+y)))
			th := mean - bias
			if th < 0 {
				th = 0
			}
			if pix < th {
				out.Set(x, y, color.NRGBA{0, 0, 0, 255})
			}
		}
	}
	return out
}

// dilate performs a 4-neighborhood dilation radius times.
func dilate(img *image.NRGBA, radius int) *image.NRGBA {
	if radius <= 0 {
		return img
	}
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	cur := img
	for r := 0; r < radius; r++ {
		next := imaging.New(w, h, color.NRGBA{255, 255, 255, 255})
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				black := false
				for _, d := range [][2]int{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
					x2, y2 := x+d[0], y+d[1]
					if x2 < 0 || y2 < 0 || x2 >= w || y2 >= h {
						continue
					}
					rv, gv, bv, _ := cur.At(x2, y2).RGBA()
					if rv+gv+bv == 0 {
						black = true
						break
					}
				}
				if black {
					next.Set(x, y, color.NRGBA{0, 0, 0, 255})
				}
			}
		}
		cur = next
	}
	return cur
}
