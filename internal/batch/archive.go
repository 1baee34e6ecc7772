package batch

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"pixprep/internal/pipeline"
)

// ArchiveName is the fixed name of the delivered zip.
const ArchiveName = "processed-images.zip"

// ArchiveCompressionLevel is the DEFLATE level used for archive entries.
const ArchiveCompressionLevel = 6

// Entry is one named blob headed for delivery.
type Entry struct {
	Name string
	Data []byte
}

// Entries maps results onto delivery entries using the naming policy.
// Changed images carry their processed bytes; unchanged ones still ship,
// carrying the original bytes under their policy-generated name.
func Entries(results []pipeline.Result, rename bool, base string) []Entry {
	entries := make([]Entry, 0, len(results))
	for i, res := range results {
		name := OutputName(res.Original.Name, i, rename, base)
		data := res.Processed
		if !res.Changed() {
			data = res.Original.Data
		}
		entries = append(entries, Entry{Name: name, Data: data})
	}
	return entries
}

// BuildArchive compresses the entries into a single zip blob. onProgress, if
// set, receives the overall percentage: entry writing spans 0-50 and the
// finalize step completes to 100. The zip is all-or-nothing: any failure
// returns no bytes.
func BuildArchive(entries []Entry, level int, onProgress func(percent int)) ([]byte, error) {
	report := func(p int) {
		if onProgress != nil {
			onProgress(p)
		}
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	for i, entry := range entries {
		w, err := zw.Create(entry.Name)
		if err != nil {
			return nil, fmt.Errorf("archive %s: %w", entry.Name, err)
		}
		if _, err := w.Write(entry.Data); err != nil {
			return nil, fmt.Errorf("archive %s: %w", entry.Name, err)
		}
		report(int(math.Round(float64(i+1) / float64(len(entries)) * 50)))
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("archive finalize: %w", err)
	}
	report(100)

	return buf.Bytes(), nil
}

// WriteFiles writes each entry as a loose file under dir.
func WriteFiles(dir string, entries []Entry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.WriteFile(filepath.Join(dir, entry.Name), entry.Data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
