package bgremove

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"

	"pixprep/internal/pipeline"
)

const heuristicJPEGQuality = 95

// ApplyMask writes the inverted mask into the alpha channel:
// alpha = round((1-confidence)*255), so mask values near 1 (background per
// the service's convention, consumed inverted) become transparent.
func ApplyMask(img *image.NRGBA, mask Mask) error {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if len(mask) != w*h {
		return fmt.Errorf("mask has %d values, want %d", len(mask), w*h)
	}

	for i, v := range mask {
		img.Pix[i*4+3] = uint8(math.Round((1 - v) * 255))
	}
	return nil
}

// Process removes the background from one image. With a segmenter the image
// is downscaled for the service, alpha-masked and written as PNG so the
// transparency survives. Without one the local gray heuristic recolors the
// background to white and the opaque raster is written as JPEG. Failures
// preserve the original, same as the normalization pipeline.
func Process(ctx context.Context, src pipeline.SourceImage, seg Segmenter) pipeline.Result {
	res := pipeline.Result{Original: src}

	img, err := pipeline.Decode(src)
	if err != nil {
		res.Err = err
		return res
	}

	var buf bytes.Buffer
	if seg != nil {
		img = fitForSegmentation(img)
		mask, err := seg.Segment(ctx, img)
		if err != nil {
			res.Err = fmt.Errorf("%s: %w", src.Name, err)
			return res
		}
		if err := ApplyMask(img, mask); err != nil {
			res.Err = fmt.Errorf("%s: %w", src.Name, err)
			return res
		}
		if err := png.Encode(&buf, img); err != nil {
			res.Err = fmt.Errorf("%s: encode: %w", src.Name, err)
			return res
		}
	} else {
		Whiten(img)
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: heuristicJPEGQuality}); err != nil {
			res.Err = fmt.Errorf("%s: encode: %w", src.Name, err)
			return res
		}
	}

	res.Processed = buf.Bytes()
	res.Width = img.Bounds().Dx()
	res.Height = img.Bounds().Dy()
	res.ByteSize = int64(buf.Len())
	return res
}
