// Package bgremove implements the background-removal mode: a local
// gray-pixel recoloring heuristic, and an alpha-masking path driven by an
// external segmentation service.
package bgremove

import "image"

// Gray background classification: channels mutually within this fraction of
// their average, with the average inside (grayFloor, grayCeil).
const (
	grayTolerance = 0.1
	grayFloor     = 100
	grayCeil      = 235
)

// Whiten recolors gray background pixels to white in place. A pixel is
// background when R, G and B all sit within 10% of their own average and that
// average is mid-range: uniform gray, neither shadow-dark nor near-white.
// Alpha is left untouched.
func Whiten(img *image.NRGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		r := float64(img.Pix[i])
		g := float64(img.Pix[i+1])
		b := float64(img.Pix[i+2])
		avg := (r + g + b) / 3

		if avg <= grayFloor || avg >= grayCeil {
			continue
		}
		tol := avg * grayTolerance
		if abs(r-avg) < tol && abs(g-avg) < tol && abs(b-avg) < tol {
			img.Pix[i] = 0xff
			img.Pix[i+1] = 0xff
			img.Pix[i+2] = 0xff
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
