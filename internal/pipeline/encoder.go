package pipeline

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	"pixprep/internal/policy"
)

// EncodeStats reports what the size-constrained encoder actually did.
type EncodeStats struct {
	Quality  float64
	Attempts int
	Size     int64
}

// InitialQuality picks the starting quality factor: large sources that were
// not already downscaled get a more aggressive start.
func InitialQuality(srcSize int64, preResized bool, layout policy.Layout) float64 {
	if srcSize > layout.LargeFileBytes && !preResized {
		return 0.9
	}
	return 0.95
}

// EncodeToBudget encodes img as JPEG under layout.TargetBytes, reducing
// quality multiplicatively between attempts. Only sources larger than
// layout.LargeFileBytes are retried; small sources take the first encode as
// final whatever its size. After layout.MaxAttempts reductions the last
// (possibly over-budget) output is accepted as best effort.
func EncodeToBudget(img *image.NRGBA, srcSize int64, quality float64, layout policy.Layout) ([]byte, EncodeStats, error) {
	stats := EncodeStats{Quality: quality}

	for {
		data, err := encodeJPEG(img, stats.Quality)
		if err != nil {
			return nil, stats, fmt.Errorf("encode %dx%d: %w", img.Bounds().Dx(), img.Bounds().Dy(), err)
		}
		stats.Size = int64(len(data))

		if srcSize <= layout.LargeFileBytes ||
			stats.Size <= layout.TargetBytes ||
			stats.Attempts >= layout.MaxAttempts {
			return data, stats, nil
		}

		factor := 0.85
		if stats.Size > 2*layout.TargetBytes {
			factor = 0.7
		}
		stats.Quality *= factor
		stats.Attempts++
	}
}

// encodeJPEG maps the fractional quality factor onto the codec's 1-100 scale.
// Opaque rasters are encoded through an RGBA view of the same pixels, which
// skips a conversion pass inside the codec.
func encodeJPEG(img *image.NRGBA, quality float64) ([]byte, error) {
	q := int(math.Round(quality * 100))
	if q < 1 {
		q = 1
	}
	if q > 100 {
		q = 100
	}

	var buf bytes.Buffer
	if isOpaque(img) {
		rgba := &image.RGBA{Pix: img.Pix, Stride: img.Stride, Rect: img.Rect}
		if err := jpeg.Encode(&buf, rgba, &jpeg.Options{Quality: q}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isOpaque(img *image.NRGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			return false
		}
	}
	return true
}
