// Package batch drives the per-image pipeline over an ordered selection,
// sequentially, and delivers the results as loose files or a zip archive.
package batch

import (
	"context"
	"errors"
	"math"
	"sync"

	"pixprep/internal/bgremove"
	"pixprep/internal/pipeline"
)

// ErrEmptyBatch is reported when a run is requested with nothing selected.
var ErrEmptyBatch = errors.New("no images selected")

// Runner owns the batch state and processes the selection one image at a
// time. Images are deliberately not fanned out across goroutines: progress
// must advance one unit per completed image, in input order.
type Runner struct {
	opts Options

	mu    sync.Mutex
	state State
}

// NewRunner builds a runner over the given selection.
func NewRunner(selected []pipeline.SourceImage, opts Options) *Runner {
	return &Runner{
		opts: opts,
		state: State{
			Selected: selected,
			Mode:     opts.Mode,
		},
	}
}

// Snapshot returns a copy of the current batch state. The slices share
// backing arrays with the runner but are append-only during a run.
func (r *Runner) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state
	s.Results = r.state.Results[:len(r.state.Results):len(r.state.Results)]
	return s
}

// Run processes every selected image in order and returns the results,
// aligned by index with the selection. Per-image failures are isolated: the
// failed image keeps its original bytes and the batch continues. An empty
// selection returns ErrEmptyBatch with no state mutated. updates may be nil.
func (r *Runner) Run(ctx context.Context, updates chan<- ProgressUpdate) (Summary, []pipeline.Result, error) {
	r.mu.Lock()
	selected := r.state.Selected
	total := len(selected)
	if total == 0 {
		r.mu.Unlock()
		return Summary{}, nil, ErrEmptyBatch
	}
	r.state.Processing = true
	r.state.Progress = 0
	r.state.Results = nil
	r.mu.Unlock()

	if updates != nil {
		updates <- ProgressUpdate{Stage: StageProcessing, TotalSet: total}
	}

	summary := Summary{Total: total}
	for i, src := range selected {

		var res pipeline.Result
		if r.opts.Mode == ModeRemoveBackground {
			res = bgremove.Process(ctx, src, r.opts.Segmenter)
		} else {
			res = pipeline.Process(src, r.opts.Layout)
		}

		percent := int(math.Round(float64(i+1) / float64(total) * 100))

		r.mu.Lock()
		r.state.Results = append(r.state.Results, res)
		r.state.Progress = percent
		r.mu.Unlock()

		update := ProgressUpdate{
			Stage:          StageProcessing,
			Percent:        percent,
			CompletedDelta: 1,
			File:           src.Name,
		}
		if res.Changed() {
			summary.Changed++
			update.ChangedDelta = 1
		} else {
			summary.Unchanged++
		}
		if res.Err != nil {
			summary.Errors++
			update.ErrorDelta = 1
		}
		if updates != nil {
			updates <- update
		}
	}

	r.mu.Lock()
	r.state.Processing = false
	results := r.state.Results
	r.mu.Unlock()

	return summary, results, nil
}

// SetZipping flips the archive-in-progress flag around a BuildArchive call.
func (r *Runner) SetZipping(zipping bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Zipping = zipping
}

// Clear resets the batch to empty. Clearing while a run is in flight is best
// effort: in-flight work finishes against its own copies.
func (r *Runner) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = State{Mode: r.state.Mode}
}
