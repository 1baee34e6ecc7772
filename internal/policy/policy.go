package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout holds the normalization policy: canvas limits, crop padding and the
// re-encode byte budget. Fields may be loaded from a YAML file and fall back
// to the standard policy when absent.
type Layout struct {
	// MaxWidth and MaxHeight bound the composed content area.
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`
	// MinDim is the minimum output canvas size per axis.
	MinDim int `yaml:"min_dim"`
	// CropPadding is added around the detected content box.
	CropPadding int `yaml:"crop_padding"`

	// TargetBytes is the encoder byte budget.
	TargetBytes int64 `yaml:"target_bytes"`
	// LargeFileBytes is the threshold above which a source is treated as
	// large: it becomes eligible for the pre-resize path and for
	// size-driven re-encode retries.
	LargeFileBytes int64 `yaml:"large_file_bytes"`
	// PreResizeDim triggers the pre-resize when either source dimension
	// exceeds it (large files only), and is the longest-side target.
	PreResizeDim int `yaml:"pre_resize_dim"`
	// MaxAttempts caps quality-reduction retries in the encoder.
	MaxAttempts int `yaml:"max_attempts"`
}

// Default returns the standard layout policy.
func Default() Layout {
	return Layout{
		MaxWidth:       3000,
		MaxHeight:      3600,
		MinDim:         500,
		CropPadding:    5,
		TargetBytes:    3040870, // 2.9 MB
		LargeFileBytes: 3 * 1024 * 1024,
		PreResizeDim:   3000,
		MaxAttempts:    10,
	}
}

// Validate clamps non-positive values back to the defaults and rejects
// combinations no canvas can satisfy.
func (l *Layout) Validate() error {
	def := Default()
	if l.MaxWidth <= 0 {
		l.MaxWidth = def.MaxWidth
	}
	if l.MaxHeight <= 0 {
		l.MaxHeight = def.MaxHeight
	}
	if l.MinDim <= 0 {
		l.MinDim = def.MinDim
	}
	if l.CropPadding < 0 {
		l.CropPadding = def.CropPadding
	}
	if l.TargetBytes <= 0 {
		l.TargetBytes = def.TargetBytes
	}
	if l.LargeFileBytes <= 0 {
		l.LargeFileBytes = def.LargeFileBytes
	}
	if l.PreResizeDim <= 0 {
		l.PreResizeDim = def.PreResizeDim
	}
	if l.MaxAttempts <= 0 {
		l.MaxAttempts = def.MaxAttempts
	}
	if l.MinDim > l.MaxWidth || l.MinDim > l.MaxHeight {
		return fmt.Errorf("min_dim %d exceeds canvas bounds %dx%d", l.MinDim, l.MaxWidth, l.MaxHeight)
	}
	return nil
}

// Load reads a layout policy from a YAML file. A missing file returns the
// default policy without error.
func Load(path string) (Layout, error) {
	l := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return l, err
	}
	if err := yaml.Unmarshal(data, &l); err != nil {
		return l, err
	}
	if err := l.Validate(); err != nil {
		return l, err
	}
	return l, nil
}
