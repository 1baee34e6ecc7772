package batch

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"pixprep/internal/pipeline"
	"pixprep/pkg/imgutil"
)

// Collect builds the selection from file and directory arguments, in argument
// order. Directories are walked recursively with their entries sorted for a
// stable batch order. Files that do not sniff as a known image format are
// skipped; an explicitly named file is always included and left to the decode
// step, so an unreadable argument surfaces as a per-image failure instead of
// disappearing.
func Collect(paths []string) ([]pipeline.SourceImage, error) {
	var selected []pipeline.SourceImage

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			src, err := readSource(path)
			if err != nil {
				return nil, err
			}
			selected = append(selected, src)
			continue
		}

		var found []string
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			kind, err := imgutil.SniffFile(p)
			if err != nil || kind == imgutil.KindUnknown {
				return nil
			}
			found = append(found, p)
			return nil
		})
		if err != nil {
			return nil, err
		}

		sort.Strings(found)
		for _, p := range found {
			src, err := readSource(p)
			if err != nil {
				return nil, err
			}
			selected = append(selected, src)
		}
	}

	return selected, nil
}

func readSource(path string) (pipeline.SourceImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.SourceImage{}, err
	}

	mediaType := ""
	if kind, err := imgutil.DetectBytes(data); err == nil {
		mediaType = kind.MediaType()
	}

	return pipeline.SourceImage{
		Name:      filepath.Base(path),
		MediaType: mediaType,
		Data:      data,
	}, nil
}
