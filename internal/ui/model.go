package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Stage represents the current stage of a triage run
type Stage int

const (
	StageLoadProfile Stage = iota
	StageScan
	StageReport
)

// Message types for updating the model
type (
	StageMsg     Stage
	LineCountMsg int
	SourceMsg    string
	DoneMsg      struct{ Err error }
)

// Model is the Bubbletea model for the scan progress display
type Model struct {
	stage    Stage
	spinner  spinner.Model
	source   string
	lines    int
	quitting bool
	err      error
}

// NewModel creates a new progress model
func NewModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		stage:   StageLoadProfile,
		spinner: s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StageMsg:
		m.stage = Stage(msg)
		return m, nil

	case SourceMsg:
		m.source = string(msg)
		return m, nil

	case LineCountMsg:
		m.lines = int(msg)
		return m, nil

	case DoneMsg:
		m.err = msg.Err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	switch m.stage {
	case StageLoadProfile:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Loading rule profile...")

	case StageScan:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Scanning")
		if m.source != "" {
			sb.WriteString(fmt.Sprintf(" %s", m.source))
		}
		if m.lines > 0 {
			sb.WriteString(fmt.Sprintf(" (%d lines)", m.lines))
		}

	case StageReport:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Rendering report...")
	}

	return sb.String()
}
