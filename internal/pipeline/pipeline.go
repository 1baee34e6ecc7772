// Package pipeline implements the per-image normalization flow: decode,
// optional large-file downscale, content boundary detection, centered
// composition onto a white canvas, and size-constrained JPEG re-encoding.
package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"

	"pixprep/internal/policy"
)

// Decode turns source bytes into a fresh NRGBA raster, applying EXIF
// orientation for formats that carry it.
func Decode(src SourceImage) (*image.NRGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(src.Data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src.Name, err)
	}

	nrgba := imaging.Clone(img)
	if src.Kind().MayCarryExif() {
		if o := readOrientation(src.Data); o > 1 {
			nrgba = applyOrientation(nrgba, o)
		}
	}
	return nrgba, nil
}

// Process runs one image through the full normalization flow. Steps are
// strictly sequential; any failure yields a Result with Processed nil and the
// original preserved verbatim, never an aborted batch.
func Process(src SourceImage, layout policy.Layout) Result {
	res := Result{Original: src}

	img, err := Decode(src)
	if err != nil {
		res.Err = err
		return res
	}

	preResized := false
	if NeedsPreResize(src.ByteSize(), img.Bounds().Dx(), img.Bounds().Dy(), layout) {
		img = PreResize(img, layout)
		preResized = true
	}

	box := DetectBounds(img, layout.CropPadding)
	canvas := Compose(img, box, layout)

	quality := InitialQuality(src.ByteSize(), preResized, layout)
	data, stats, err := EncodeToBudget(canvas, src.ByteSize(), quality, layout)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", src.Name, err)
		return res
	}

	res.Processed = data
	res.Width = canvas.Bounds().Dx()
	res.Height = canvas.Bounds().Dy()
	res.ByteSize = stats.Size
	res.Quality = stats.Quality
	res.Attempts = stats.Attempts
	return res
}
