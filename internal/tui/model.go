package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pixprep/internal/batch"
)

// Model renders batch progress from the runner's update channel. The channel
// closing quits the program.
type Model struct {
	updates    <-chan batch.ProgressUpdate
	started    time.Time
	width      int
	total      int
	completed  int
	changed    int
	errors     int
	percent    int
	zipping    bool
	zipPercent int
	file       string
	quitting   bool
}

type doneMsg struct{}

type updateMsg batch.ProgressUpdate

func NewModel(updates <-chan batch.ProgressUpdate) Model {
	return Model{updates: updates, started: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return listenForUpdates(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		if msg.TotalSet > 0 {
			m.total = msg.TotalSet
		}
		m.completed += msg.CompletedDelta
		m.changed += msg.ChangedDelta
		m.errors += msg.ErrorDelta
		// Archive progress gets its own bar; the processing bar stays put.
		if msg.Stage == batch.StageArchiving {
			m.zipping = true
			m.zipPercent = msg.Percent
		} else {
			m.percent = msg.Percent
		}
		if msg.File != "" {
			m.file = msg.File
		}
		return m, listenForUpdates(m.updates)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	barWidth := 40
	if m.width > 0 {
		barWidth = int(math.Min(60, float64(m.width-10)))
		if barWidth < 20 {
			barWidth = 20
		}
	}

	lines := []string{
		titleStyle.Render("pixprep"),
		labelStyle.Render(fmt.Sprintf("Images: %d/%d", m.completed, m.total)) +
			changedStyle.Render(fmt.Sprintf("  changed:%d", m.changed)) +
			errorStyle.Render(fmt.Sprintf(" errors:%d", m.errors)),
		dimStyle.Render(fmt.Sprintf("processing  %s", m.file)),
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", time.Since(m.started).Round(time.Millisecond))),
		barStyle.Render(renderBar(barWidth, float64(m.percent)/100)) +
			labelStyle.Render(fmt.Sprintf(" %d%%", m.percent)),
	}

	if m.zipping {
		lines = append(lines,
			dimStyle.Render("zipping"),
			barStyle.Render(renderBar(barWidth, float64(m.zipPercent)/100))+
				labelStyle.Render(fmt.Sprintf(" %d%%", m.zipPercent)),
		)
	}

	return strings.Join(lines, "\n")
}

func listenForUpdates(updates <-chan batch.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(update)
	}
}

func renderBar(width int, ratio float64) string {
	filled := int(math.Round(ratio * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle   = lipgloss.NewStyle().Foreground(ColorInk)
	barStyle     = lipgloss.NewStyle().Foreground(ColorAccent)
	dimStyle     = lipgloss.NewStyle().Foreground(ColorDim)
	changedStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	errorStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
)
