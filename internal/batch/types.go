package batch

import (
	"pixprep/internal/bgremove"
	"pixprep/internal/pipeline"
	"pixprep/internal/policy"
)

// Mode selects what the batch does to each image.
type Mode int

const (
	// ModeNormalize crops white borders, pads onto a white canvas and
	// re-encodes under the byte budget.
	ModeNormalize Mode = iota
	// ModeRemoveBackground recolors or alpha-masks the background.
	ModeRemoveBackground
)

func (m Mode) String() string {
	if m == ModeRemoveBackground {
		return "remove background"
	}
	return "normalize"
}

// Options configures a batch run.
type Options struct {
	Mode   Mode
	Layout policy.Layout
	// Segmenter, when set in ModeRemoveBackground, switches from the gray
	// heuristic to the alpha-masking path.
	Segmenter bgremove.Segmenter
	// Rename and BaseName feed the naming policy at delivery time.
	Rename   bool
	BaseName string
}

// Stage labels what a progress update refers to.
type Stage int

const (
	StageProcessing Stage = iota
	StageArchiving
)

// ProgressUpdate is one delta message sent to the progress UI. Percent is the
// absolute batch percentage after the update applies.
type ProgressUpdate struct {
	Stage          Stage
	Percent        int
	TotalSet       int
	CompletedDelta int
	ChangedDelta   int
	ErrorDelta     int
	File           string
}

// Summary aggregates a finished batch.
type Summary struct {
	Total     int
	Changed   int
	Unchanged int
	Errors    int
}

// State is a snapshot of the batch: the selection, the results produced so
// far (aligned by index) and the in-progress flags. Only the Runner mutates
// it; consumers read copies.
type State struct {
	Selected   []pipeline.SourceImage
	Results    []pipeline.Result
	Processing bool
	Zipping    bool
	Progress   int
	Mode       Mode
}
