package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all lipgloss styles for terminal output
type Styles struct {
	enabled bool

	// Section styles
	Header  lipgloss.Style
	Count   lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
}

// NewStyles creates a new Styles instance.
// When enabled is false, styles return text unchanged (for non-TTY
// output), which keeps report bytes deterministic in piped runs.
func NewStyles(enabled bool) *Styles {
	s := &Styles{enabled: enabled}

	if enabled {
		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))  // White bold
		s.Count = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))              // Green
		s.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))               // Red
		s.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))               // Gray
		s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))            // Green
		s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))            // Yellow
	} else {
		s.Header = lipgloss.NewStyle()
		s.Count = lipgloss.NewStyle()
		s.Error = lipgloss.NewStyle()
		s.Muted = lipgloss.NewStyle()
		s.Success = lipgloss.NewStyle()
		s.Warning = lipgloss.NewStyle()
	}

	return s
}

// Enabled returns whether styling is enabled
func (s *Styles) Enabled() bool {
	return s.enabled
}
