package pipeline

import "pixprep/pkg/imgutil"

// SourceImage is one user-selected input: the raw bytes plus what is known
// about them at selection time. Immutable once built.
type SourceImage struct {
	Name      string
	MediaType string
	Data      []byte
}

// ByteSize returns the raw size of the source in bytes.
func (s SourceImage) ByteSize() int64 {
	return int64(len(s.Data))
}

// Kind sniffs the actual format from the data, ignoring the declared
// media type.
func (s SourceImage) Kind() imgutil.Kind {
	kind, err := imgutil.DetectBytes(s.Data)
	if err != nil {
		return imgutil.KindUnknown
	}
	return kind
}

// BoundingBox is a half-open content region over a pixel grid:
// 0 <= MinX <= MaxX <= width, likewise for Y.
type BoundingBox struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Width returns MaxX-MinX. Non-positive means no content was found.
func (b BoundingBox) Width() int { return b.MaxX - b.MinX }

// Height returns MaxY-MinY. Non-positive means no content was found.
func (b BoundingBox) Height() int { return b.MaxY - b.MinY }

// Empty reports whether the box describes a zero-area (or inverted) region.
func (b BoundingBox) Empty() bool { return b.Width() <= 0 || b.Height() <= 0 }

// Result records the outcome for a single image. Processed is nil when the
// image was left untouched: either a processing step failed (Err is set) or
// the policy kept the original. The original bytes are always preserved.
type Result struct {
	Original  SourceImage
	Processed []byte
	Width     int
	Height    int
	ByteSize  int64
	Quality   float64
	Attempts  int
	Err       error
}

// Changed reports whether the pipeline produced new bytes for this image.
func (r Result) Changed() bool { return len(r.Processed) > 0 }
