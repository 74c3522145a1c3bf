package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles renders terminal output. Colors are dropped automatically when the
// writer is not a terminal.
type Styles struct {
	Success lipgloss.Style
	Failure lipgloss.Style
	Heading lipgloss.Style
	Section lipgloss.Style
	Accent  lipgloss.Style
	Bad     lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
}

// NewStyles creates styles bound to the color profile of w.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	return &Styles{
		Success: r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		Failure: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Heading: r.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		Section: r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		Accent:  r.NewStyle().Foreground(lipgloss.Color("6")),
		Bad:     r.NewStyle().Foreground(lipgloss.Color("1")),
		Muted:   r.NewStyle().Faint(true),
		Bold:    r.NewStyle().Bold(true),
	}
}
