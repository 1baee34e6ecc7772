package imgutil

import (
	"errors"
	"io"
	"os"
)

// Kind identifies a decodable image type.
type Kind int

const (
	KindUnknown Kind = iota
	KindJPEG
	KindPNG
	KindGIF
)

func (k Kind) String() string {
	switch k {
	case KindJPEG:
		return "jpeg"
	case KindPNG:
		return "png"
	case KindGIF:
		return "gif"
	default:
		return "unknown"
	}
}

// MediaType returns the MIME type for the kind, or an empty string for
// unknown data.
func (k Kind) MediaType() string {
	switch k {
	case KindJPEG:
		return "image/jpeg"
	case KindPNG:
		return "image/png"
	case KindGIF:
		return "image/gif"
	default:
		return ""
	}
}

// MayCarryExif reports whether the format can embed EXIF orientation data.
func (k Kind) MayCarryExif() bool {
	return k == KindJPEG
}

var (
	pngSig  = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	jpegSig = []byte{0xff, 0xd8, 0xff}
	gifSig7 = []byte("GIF87a")
	gifSig9 = []byte("GIF89a")
)

// DetectHeader inspects the first 8 bytes of an image for known signatures.
func DetectHeader(header []byte) (Kind, error) {
	if len(header) < 8 {
		return KindUnknown, errors.New("header too short")
	}

	if hasPrefix(header, jpegSig) {
		return KindJPEG, nil
	}
	if hasPrefix(header, pngSig) {
		return KindPNG, nil
	}
	if hasPrefix(header, gifSig7) || hasPrefix(header, gifSig9) {
		return KindGIF, nil
	}

	return KindUnknown, nil
}

// DetectBytes determines the type of in-memory image data.
func DetectBytes(data []byte) (Kind, error) {
	if len(data) < 8 {
		return KindUnknown, errors.New("header too short")
	}
	return DetectHeader(data[:8])
}

// SniffFile reads the first 8 bytes of a file to determine its type.
func SniffFile(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return KindUnknown, err
	}
	defer f.Close()

	return SniffReader(f)
}

// SniffReader reads the first 8 bytes from r and determines its type.
func SniffReader(r io.Reader) (Kind, error) {
	header := make([]byte, 8)
	if _, err := io.ReadFull(r, header); err != nil {
		return KindUnknown, err
	}

	return DetectHeader(header)
}

func hasPrefix(buf, prefix []byte) bool {
	if len(buf) < len(prefix) {
		return false
	}
	for i := range prefix {
		if buf[i] != prefix[i] {
			return false
		}
	}
	return true
}
