package pipeline

import (
	"image"
	"image/color"
	"math"
	"testing"

	"pixprep/internal/policy"
)

func TestComposeSmallContentPadsToMinimum(t *testing.T) {
	// A 200x200 all-white input: the detector falls back to the full
	// box and the canvas is padded up to the 500x500 minimum.
	img := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	fillNRGBA(img, color.NRGBA{255, 255, 255, 255})

	layout := policy.Default()
	box := DetectBounds(img, layout.CropPadding)
	canvas := Compose(img, box, layout)

	if got, want := canvas.Bounds().Dx(), 500; got != want {
		t.Fatalf("width = %d, want %d", got, want)
	}
	if got, want := canvas.Bounds().Dy(), 500; got != want {
		t.Fatalf("height = %d, want %d", got, want)
	}

	// White fill with full alpha everywhere, corners included.
	for _, p := range []image.Point{{0, 0}, {499, 0}, {0, 499}, {499, 499}, {250, 250}} {
		off := p.Y*canvas.Stride + p.X*4
		if canvas.Pix[off] != 255 || canvas.Pix[off+1] != 255 || canvas.Pix[off+2] != 255 || canvas.Pix[off+3] != 255 {
			t.Fatalf("pixel at %v not opaque white", p)
		}
	}
}

func TestComposeDimensionBounds(t *testing.T) {
	// A scaled-down layout keeps the clamp arithmetic identical without
	// multi-hundred-megapixel fixtures.
	layout := policy.Layout{
		MaxWidth:       300,
		MaxHeight:      360,
		MinDim:         50,
		CropPadding:    5,
		TargetBytes:    1 << 20,
		LargeFileBytes: 1 << 20,
		PreResizeDim:   300,
		MaxAttempts:    10,
	}

	cases := []struct {
		name         string
		cropW, cropH int
		wantW, wantH int
	}{
		{"tiny", 10, 10, 50, 50},
		{"wide clamp", 600, 100, 300, 50},
		{"tall clamp", 100, 720, 50, 360},
		{"wide then tall", 600, 720, 300, 360},
		{"inside limits", 120, 90, 120, 90},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := image.NewNRGBA(image.Rect(0, 0, tc.cropW, tc.cropH))
			fillNRGBA(src, color.NRGBA{10, 10, 10, 255})

			box := BoundingBox{MinX: 0, MinY: 0, MaxX: tc.cropW, MaxY: tc.cropH}
			canvas := Compose(src, box, layout)

			w := canvas.Bounds().Dx()
			h := canvas.Bounds().Dy()
			if w != tc.wantW || h != tc.wantH {
				t.Fatalf("canvas = %dx%d, want %dx%d", w, h, tc.wantW, tc.wantH)
			}
			if w < layout.MinDim || h < layout.MinDim || w > layout.MaxWidth || h > layout.MaxHeight {
				t.Fatalf("canvas %dx%d outside policy bounds", w, h)
			}
		})
	}
}

func TestComposePreservesAspectRatio(t *testing.T) {
	// The pre-rounding content dimensions must keep the crop ratio through
	// both clamps. Reconstruct them the way Compose does.
	layout := policy.Default()

	cases := []struct{ cropW, cropH int }{
		{4000, 2000},
		{2000, 4000},
		{5000, 5000},
		{6100, 7300},
	}

	for _, tc := range cases {
		ratio := float64(tc.cropW) / float64(tc.cropH)
		fw, fh := float64(tc.cropW), float64(tc.cropH)
		if fw > float64(layout.MaxWidth) {
			fw = float64(layout.MaxWidth)
			fh = fw / ratio
		}
		if fh > float64(layout.MaxHeight) {
			fh = float64(layout.MaxHeight)
			fw = fh * ratio
		}
		if got := fw / fh; math.Abs(got-ratio) > 1e-9 {
			t.Fatalf("crop %dx%d: ratio %f became %f", tc.cropW, tc.cropH, ratio, got)
		}
	}
}

func TestPreResizeLargeSource(t *testing.T) {
	// A 4000x2000 frame from a 4 MB file is downscaled to 3000x1500
	// before detection.
	layout := policy.Default()
	srcSize := int64(4 * 1024 * 1024)

	if !NeedsPreResize(srcSize, 4000, 2000, layout) {
		t.Fatal("expected pre-resize for 4 MB 4000x2000 source")
	}
	if NeedsPreResize(srcSize, 2800, 2000, layout) {
		t.Fatal("pre-resize must need an oversized dimension, not just bytes")
	}
	if NeedsPreResize(1024, 4000, 2000, layout) {
		t.Fatal("pre-resize must need an oversized file, not just pixels")
	}

	img := image.NewNRGBA(image.Rect(0, 0, 4000, 2000))
	fillNRGBA(img, color.NRGBA{30, 60, 90, 255})

	scaled := PreResize(img, layout)
	if scaled.Bounds().Dx() != 3000 || scaled.Bounds().Dy() != 1500 {
		t.Fatalf("pre-resized to %dx%d, want 3000x1500", scaled.Bounds().Dx(), scaled.Bounds().Dy())
	}

	// Non-white content filling the frame: the crop covers the scaled frame
	// and the composed canvas keeps those dimensions.
	box := DetectBounds(scaled, layout.CropPadding)
	canvas := Compose(scaled, box, layout)
	if canvas.Bounds().Dx() != 3000 || canvas.Bounds().Dy() != 1500 {
		t.Fatalf("canvas = %dx%d, want 3000x1500", canvas.Bounds().Dx(), canvas.Bounds().Dy())
	}
}

func TestComposeCentersContent(t *testing.T) {
	// A 100x100 dark crop on a 500x500 canvas sits at offset 200.
	src := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	fillNRGBA(src, color.NRGBA{0, 0, 0, 255})

	box := BoundingBox{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}
	canvas := Compose(src, box, policy.Default())

	center := 250*canvas.Stride + 250*4
	if canvas.Pix[center] > 20 {
		t.Fatalf("canvas center not dark: %d", canvas.Pix[center])
	}
	edge := 100*canvas.Stride + 100*4
	if canvas.Pix[edge] != 255 {
		t.Fatalf("canvas at (100,100) should be white padding, got %d", canvas.Pix[edge])
	}
}
