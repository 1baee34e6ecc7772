package pipeline

import "image"

// Background classification thresholds: pixels at least this bright on every
// channel, and at least this opaque, count as background.
const (
	bgBrightness = 245
	bgAlpha      = 250
)

// Sampling every other row and column is enough: the box is padded afterwards,
// so boundaries never need to be exact to the pixel.
const scanStride = 2

// DetectBounds scans img for the bounding box of non-background content and
// expands it by padding on every side, clamped to the image extent. If no
// content pixel exists (an all-white or fully transparent frame) the full
// image box is returned: the caller must never see a zero-area crop.
func DetectBounds(img *image.NRGBA, padding int) BoundingBox {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	box := BoundingBox{MinX: w, MinY: h, MaxX: 0, MaxY: 0}

	for y := 0; y < h; y += scanStride {
		row := y * img.Stride
		for x := 0; x < w; x += scanStride {
			off := row + x*4
			if img.Pix[off] < bgBrightness ||
				img.Pix[off+1] < bgBrightness ||
				img.Pix[off+2] < bgBrightness ||
				img.Pix[off+3] < bgAlpha {
				if x < box.MinX {
					box.MinX = x
				}
				if y < box.MinY {
					box.MinY = y
				}
				if x > box.MaxX {
					box.MaxX = x
				}
				if y > box.MaxY {
					box.MaxY = y
				}
			}
		}
	}

	box.MinX = max(0, box.MinX-padding)
	box.MinY = max(0, box.MinY-padding)
	box.MaxX = min(w, box.MaxX+padding)
	box.MaxY = min(h, box.MaxY+padding)

	if box.Empty() {
		return BoundingBox{MinX: 0, MinY: 0, MaxX: w, MaxY: h}
	}
	return box
}
