package bgremove

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
)

// Mask is a row-major per-pixel foreground confidence map in [0,1], same
// resolution as the image it was computed for.
type Mask []float64

// Segmenter produces a foreground confidence mask for an image.
type Segmenter interface {
	Segment(ctx context.Context, img *image.NRGBA) (Mask, error)
}

// maxSegmentDim bounds the raster sent to the segmentation service.
const maxSegmentDim = 1024

// HTTPSegmenter calls a segmentation endpoint: the image goes out as JPEG,
// the mask comes back as a grayscale PNG of identical resolution where pixel
// value 255 means full foreground confidence.
type HTTPSegmenter struct {
	Endpoint string
	Client   *http.Client
}

// NewHTTPSegmenter returns a segmenter for the given endpoint URL.
func NewHTTPSegmenter(endpoint string) *HTTPSegmenter {
	return &HTTPSegmenter{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 120 * time.Second},
	}
}

func (s *HTTPSegmenter) Segment(ctx context.Context, img *image.NRGBA) (Mask, error) {
	var body bytes.Buffer
	if err := jpeg.Encode(&body, img, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("segment: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}
	req.Header.Set("Content-Type", "image/jpeg")
	req.Header.Set("Accept", "image/png")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("segment: endpoint returned %s", resp.Status)
	}

	maskImg, err := png.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("segment: decode mask: %w", err)
	}

	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if maskImg.Bounds().Dx() != w || maskImg.Bounds().Dy() != h {
		return nil, fmt.Errorf("segment: mask is %dx%d, want %dx%d",
			maskImg.Bounds().Dx(), maskImg.Bounds().Dy(), w, h)
	}

	gray := imaging.Grayscale(maskImg)
	mask := make(Mask, w*h)
	for i := range mask {
		mask[i] = float64(gray.Pix[i*4]) / 255
	}
	return mask, nil
}

// fitForSegmentation downscales img so neither side exceeds maxSegmentDim,
// preserving aspect ratio. Small images pass through unchanged.
func fitForSegmentation(img *image.NRGBA) *image.NRGBA {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w <= maxSegmentDim && h <= maxSegmentDim {
		return img
	}
	return imaging.Fit(img, maxSegmentDim, maxSegmentDim, imaging.Lanczos)
}
