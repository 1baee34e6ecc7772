package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pixprep/internal/batch"
	"pixprep/internal/tui"
)

var (
	detailFileStyle   = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	detailValueStyle  = lipgloss.NewStyle().Foreground(tui.ColorInk)
	detailDimStyle    = lipgloss.NewStyle().Foreground(tui.ColorDim)
	detailBulletStyle = lipgloss.NewStyle().Foreground(tui.ColorDim)
)

// executeBatch is the shared command body: collect the selection, run the
// batch with a live progress UI, deliver the results and print the summary.
func executeBatch(ctx context.Context, paths []string, opts batch.Options, outputDir string, asZip, quiet, verbose bool) error {
	selected, err := batch.Collect(paths)
	if err != nil {
		return err
	}

	if opts.Rename && opts.BaseName == "" && len(selected) > 0 {
		opts.BaseName = batch.BaseFromFirst(selected[0].Name)
	}

	runner := batch.NewRunner(selected, opts)
	updates := make(chan batch.ProgressUpdate, 64)

	uiDone := make(chan struct{})
	if quiet {
		go func() {
			for range updates {
			}
			close(uiDone)
		}()
	} else {
		program := tea.NewProgram(tui.NewModel(updates))
		go func() {
			_, _ = program.Run()
			close(uiDone)
		}()
	}

	summary, results, runErr := runner.Run(ctx, updates)
	if runErr != nil {
		close(updates)
		<-uiDone
		return runErr
	}

	entries := batch.Entries(results, opts.Rename, opts.BaseName)

	var deliverErr error
	if asZip {
		runner.SetZipping(true)
		data, err := batch.BuildArchive(entries, batch.ArchiveCompressionLevel, func(percent int) {
			updates <- batch.ProgressUpdate{Stage: batch.StageArchiving, Percent: percent}
		})
		runner.SetZipping(false)
		if err != nil {
			deliverErr = err
		} else if err := os.MkdirAll(outputDir, 0o755); err != nil {
			deliverErr = err
		} else {
			deliverErr = os.WriteFile(filepath.Join(outputDir, batch.ArchiveName), data, 0o644)
		}
	} else {
		deliverErr = batch.WriteFiles(outputDir, entries)
	}

	close(updates)
	<-uiDone
	if deliverErr != nil {
		return deliverErr
	}

	rows := []tui.SummaryRow{
		{Label: "Images processed", Value: fmt.Sprintf("%d", summary.Total)},
		{Label: "Changed", Value: fmt.Sprintf("%d", summary.Changed)},
		{Label: "Left unchanged", Value: fmt.Sprintf("%d", summary.Unchanged)},
		{Label: "Errors", Value: fmt.Sprintf("%d", summary.Errors)},
	}
	fmt.Fprintln(os.Stdout, tui.RenderSummary(opts.Mode.String(), rows))

	if verbose {
		for _, res := range results {
			fmt.Fprintf(os.Stdout, "%s\n", detailFileStyle.Render(res.Original.Name))
			switch {
			case res.Err != nil:
				fmt.Fprintf(os.Stdout, "  %s %s\n",
					detailBulletStyle.Render("-"),
					detailDimStyle.Render(fmt.Sprintf("failed, original kept (%v)", res.Err)))
			case !res.Changed():
				fmt.Fprintf(os.Stdout, "  %s %s\n",
					detailBulletStyle.Render("-"),
					detailDimStyle.Render("unchanged"))
			default:
				line := fmt.Sprintf("%d B -> %d B", res.Original.ByteSize(), res.ByteSize)
				if res.Width > 0 {
					line += fmt.Sprintf(", %dx%d", res.Width, res.Height)
				}
				if res.Attempts > 0 {
					line += fmt.Sprintf(", quality %.2f in %d passes", res.Quality, res.Attempts)
				}
				fmt.Fprintf(os.Stdout, "  %s %s\n",
					detailBulletStyle.Render("-"),
					detailValueStyle.Render(line))
			}
		}
	}

	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "kept original for %s: %v\n", res.Original.Name, res.Err)
		}
	}

	outPath := outputDir
	if abs, absErr := filepath.Abs(outputDir); absErr == nil {
		outPath = abs
	}
	if asZip {
		fmt.Fprintf(os.Stdout, "Archive written to: %s\n", filepath.Join(outPath, batch.ArchiveName))
	} else {
		fmt.Fprintf(os.Stdout, "Results written to: %s\n", outPath)
	}

	return nil
}
