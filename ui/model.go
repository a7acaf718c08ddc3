package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// EventEntry is one line in the build event log
type EventEntry struct {
	Message string
	Status  string // "✓", "❌", "⚠️", "🔄"
}

func (e EventEntry) FilterValue() string { return e.Message }
func (e EventEntry) Title() string       { return fmt.Sprintf("%s %s", e.Status, e.Message) }
func (e EventEntry) Description() string { return "" }

// BuildModel is the TUI shown while a timelapse build runs. The build
// itself runs in a goroutine and feeds progress messages via p.Send.
type BuildModel struct {
	// Build state
	totalImages  int
	stagedImages int
	encodePct    float64
	phase        string // "staging", "encoding", "fallback", "done", "failed"
	usedFallback bool
	outputPath   string
	err          error
	events       []EventEntry

	// UI components
	stageProgress  progress.Model
	encodeProgress progress.Model
	eventList      list.Model

	// Layout
	width  int
	height int

	// Control state
	quitting bool

	// Version for display
	Version string
}

// NewBuildModel creates the build TUI model
func NewBuildModel(totalImages int, version string) BuildModel {
	eventList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	eventList.Title = "Build Log"
	eventList.SetShowStatusBar(false)
	eventList.SetFilteringEnabled(false)

	return BuildModel{
		totalImages:    totalImages,
		phase:          "staging",
		stageProgress:  progress.New(progress.WithDefaultGradient()),
		encodeProgress: progress.New(progress.WithDefaultGradient()),
		eventList:      eventList,
		Version:        version,
	}
}

func (m *BuildModel) logEvent(status, message string) {
	m.events = append(m.events, EventEntry{Status: status, Message: message})
	items := make([]list.Item, len(m.events))
	for i, entry := range m.events {
		items[i] = entry
	}
	m.eventList.SetItems(items)
}

// Init implements tea.Model
func (m BuildModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m BuildModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.eventList.SetSize(msg.Width-4, msg.Height/3)

	case StageProgressMsg:
		m.stagedImages = msg.Done
		m.totalImages = msg.Total
		if msg.Done == msg.Total {
			m.phase = "encoding"
			m.logEvent("✓", fmt.Sprintf("Staged %d frames", msg.Total))
		}

	case EncodeProgressMsg:
		m.phase = "encoding"
		m.encodePct = msg.Percent

	case FallbackStartedMsg:
		m.phase = "fallback"
		m.usedFallback = true
		m.encodePct = 0
		m.logEvent("⚠️", fmt.Sprintf("ffmpeg failed, falling back to motion-JPEG: %s", msg.Reason))

	case FrameWrittenMsg:
		m.phase = "fallback"
		if msg.Total > 0 {
			m.encodePct = float64(msg.Written) / float64(msg.Total) * 100
		}

	case BuildCompleteMsg:
		m.err = msg.Err
		m.outputPath = msg.OutputPath
		if msg.Err != nil {
			m.phase = "failed"
			m.logEvent("❌", msg.Err.Error())
		} else {
			m.phase = "done"
			m.logEvent("✓", fmt.Sprintf("Video created: %s", msg.OutputPath))
		}
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model
func (m BuildModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	header := HeaderStyle.Render(fmt.Sprintf("SnapMotion %s", m.Version))

	stagePercent := 0.0
	if m.totalImages > 0 {
		stagePercent = float64(m.stagedImages) / float64(m.totalImages)
	}
	stageView := fmt.Sprintf("Preparing frames: %s (%d/%d)",
		m.stageProgress.ViewAs(stagePercent),
		m.stagedImages,
		m.totalImages)

	encodeLabel := "Encoding video"
	if m.usedFallback {
		encodeLabel = "Writing frames (fallback)"
	}
	encodeView := fmt.Sprintf("%s: %s", encodeLabel, m.encodeProgress.ViewAs(m.encodePct/100))

	sections := []string{
		header,
		stageView,
		encodeView,
		m.eventList.View(),
		"Controls: [q] Quit",
	}

	return strings.Join(sections, "\n\n")
}
