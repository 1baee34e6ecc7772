package pipeline

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"pixprep/internal/policy"
)

func pngSource(t *testing.T, name string, img image.Image) SourceImage {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return SourceImage{Name: name, MediaType: "image/png", Data: buf.Bytes()}
}

func TestProcessDecodeFailureKeepsOriginal(t *testing.T) {
	src := SourceImage{Name: "broken.jpg", Data: []byte("not an image at all")}

	res := Process(src, policy.Default())
	if res.Err == nil {
		t.Fatal("expected a decode error")
	}
	if res.Changed() {
		t.Fatal("failed image must not carry processed bytes")
	}
	if res.Original.Name != "broken.jpg" {
		t.Fatalf("original not preserved: %+v", res.Original)
	}
}

func TestProcessNormalizesImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	fillNRGBA(img, color.NRGBA{255, 255, 255, 255})
	for y := 80; y < 120; y++ {
		for x := 80; x < 120; x++ {
			off := y*img.Stride + x*4
			img.Pix[off] = 20
			img.Pix[off+1] = 20
			img.Pix[off+2] = 20
		}
	}

	res := Process(pngSource(t, "square.png", img), policy.Default())
	if res.Err != nil {
		t.Fatalf("process: %v", res.Err)
	}
	if !res.Changed() {
		t.Fatal("expected processed output")
	}
	if res.Width != 500 || res.Height != 500 {
		t.Fatalf("dimensions = %dx%d, want 500x500", res.Width, res.Height)
	}
	if !bytes.HasPrefix(res.Processed, []byte{0xff, 0xd8, 0xff}) {
		t.Fatal("output is not JPEG")
	}
	if res.ByteSize != int64(len(res.Processed)) {
		t.Fatalf("byte size %d does not match output length %d", res.ByteSize, len(res.Processed))
	}
	if res.Attempts != 0 {
		t.Fatalf("small source retried %d times", res.Attempts)
	}
}

func TestApplyOrientation(t *testing.T) {
	// 2x1 image: red then blue. EXIF value 6 asks for a 90 degree clockwise
	// rotation, which stands the row up with red on top.
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Pix[0], img.Pix[3] = 255, 255 // red, opaque
	img.Pix[6], img.Pix[7] = 255, 255 // blue, opaque

	out := applyOrientation(img, 6)
	if out.Bounds().Dx() != 1 || out.Bounds().Dy() != 2 {
		t.Fatalf("rotated bounds = %v", out.Bounds())
	}
	if out.Pix[0] != 255 {
		t.Fatalf("expected red on top after rotation, got %v", out.Pix[:4])
	}
	if out.Pix[4+2] != 255 {
		t.Fatalf("expected blue at bottom after rotation, got %v", out.Pix[4:8])
	}

	same := applyOrientation(img, 1)
	if same != img {
		t.Fatal("orientation 1 must be a no-op")
	}
}

func TestSourceImageKind(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src := pngSource(t, "a.png", img)
	if got := src.Kind().String(); got != "png" {
		t.Fatalf("kind = %s, want png", got)
	}
	if got := (SourceImage{Data: []byte("xx")}).Kind().String(); got != "unknown" {
		t.Fatalf("kind = %s, want unknown", got)
	}
}
