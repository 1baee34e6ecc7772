package pipeline

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"pixprep/internal/policy"
)

// NeedsPreResize reports whether a source qualifies for the large-file path:
// downscaling the raster before boundary detection bounds the cost of the
// pixel scan for oversized inputs.
func NeedsPreResize(srcSize int64, w, h int, layout policy.Layout) bool {
	return srcSize > layout.LargeFileBytes && (w > layout.PreResizeDim || h > layout.PreResizeDim)
}

// PreResize scales the source so its longest side equals layout.PreResizeDim,
// preserving aspect ratio.
func PreResize(img *image.NRGBA, layout policy.Layout) *image.NRGBA {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w >= h {
		return imaging.Resize(img, layout.PreResizeDim, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, layout.PreResizeDim, imaging.Lanczos)
}

// Compose crops src to box and draws the region centered onto a fresh white
// canvas. The content is clamped to layout.MaxWidth first and then, if still
// needed, to layout.MaxHeight; both clamps preserve the crop aspect ratio.
// The canvas is never smaller than layout.MinDim on either axis.
func Compose(src *image.NRGBA, box BoundingBox, layout policy.Layout) *image.NRGBA {
	cropW := box.Width()
	cropH := box.Height()
	ratio := float64(cropW) / float64(cropH)

	fw := float64(cropW)
	fh := float64(cropH)

	if fw > float64(layout.MaxWidth) {
		fw = float64(layout.MaxWidth)
		fh = fw / ratio
	}
	if fh > float64(layout.MaxHeight) {
		fh = float64(layout.MaxHeight)
		fw = fh * ratio
	}

	finalW := int(math.Round(fw))
	finalH := int(math.Round(fh))

	targetW := max(finalW, layout.MinDim)
	targetH := max(finalH, layout.MinDim)

	dst := image.NewNRGBA(image.Rect(0, 0, targetW, targetH))
	xdraw.Draw(dst, dst.Bounds(), image.White, image.Point{}, xdraw.Src)

	// Centering offsets may be fractional; Go draws on integer rects, so a
	// half-pixel shift is absorbed by rounding.
	offX := int(math.Round(float64(targetW-finalW) / 2))
	offY := int(math.Round(float64(targetH-finalH) / 2))

	srcRect := image.Rect(box.MinX, box.MinY, box.MaxX, box.MaxY)
	dstRect := image.Rect(offX, offY, offX+finalW, offY+finalH)
	xdraw.CatmullRom.Scale(dst, dstRect, src, srcRect, xdraw.Over, nil)

	return dst
}
