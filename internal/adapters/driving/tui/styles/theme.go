// Package styles holds the TUI palette and the lipgloss styles built from it.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colours the task views draw with.
type Palette struct {
	// Accent marks headings, the selected row and the filter badge.
	Accent lipgloss.Color

	// OnAccent is text drawn over Accent.
	OnAccent lipgloss.Color

	// Pending is an open task.
	Pending lipgloss.Color

	// Done is a completed task.
	Done lipgloss.Color

	// Confirm is the delete prompt.
	Confirm lipgloss.Color

	// Saved acknowledges a create, update or delete.
	Saved lipgloss.Color

	// Danger is an error.
	Danger lipgloss.Color

	// Hint is key help and placeholder text.
	Hint lipgloss.Color

	// Surface is the status bar background.
	Surface lipgloss.Color

	// Edge is the input box border.
	Edge lipgloss.Color
}

// DefaultPalette returns the dark palette.
func DefaultPalette() *Palette {
	return &Palette{
		Accent:   lipgloss.Color("#0EA5E9"),
		OnAccent: lipgloss.Color("#0B1120"),
		Pending:  lipgloss.Color("#E2E8F0"),
		Done:     lipgloss.Color("#64748B"),
		Confirm:  lipgloss.Color("#F59E0B"),
		Saved:    lipgloss.Color("#22C55E"),
		Danger:   lipgloss.Color("#EF4444"),
		Hint:     lipgloss.Color("#94A3B8"),
		Surface:  lipgloss.Color("#1E293B"),
		Edge:     lipgloss.Color("#334155"),
	}
}

// Styles are the rendered forms of a Palette.
type Styles struct {
	palette *Palette

	Heading  lipgloss.Style
	Pending  lipgloss.Style
	Done     lipgloss.Style
	Selected lipgloss.Style
	Filter   lipgloss.Style

	Hint    lipgloss.Style
	Confirm lipgloss.Style
	Saved   lipgloss.Style
	Error   lipgloss.Style

	Input     lipgloss.Style
	StatusBar lipgloss.Style
}

// NewStyles builds styles from p. A nil palette means DefaultPalette.
func NewStyles(p *Palette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}

	return &Styles{
		palette: p,

		Heading:  lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Pending:  lipgloss.NewStyle().Foreground(p.Pending),
		Done:     lipgloss.NewStyle().Foreground(p.Done).Strikethrough(true),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(p.OnAccent).Background(p.Accent),
		Filter:   lipgloss.NewStyle().Foreground(p.OnAccent).Background(p.Accent).Padding(0, 1),

		Hint:    lipgloss.NewStyle().Foreground(p.Hint),
		Confirm: lipgloss.NewStyle().Bold(true).Foreground(p.Confirm),
		Saved:   lipgloss.NewStyle().Foreground(p.Saved),
		Error:   lipgloss.NewStyle().Foreground(p.Danger),

		Input: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Edge).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.Hint).
			Background(p.Surface).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles for the default palette.
func DefaultStyles() *Styles {
	return NewStyles(DefaultPalette())
}

// Palette returns the palette the styles were built from.
func (s *Styles) Palette() *Palette {
	return s.palette
}

// Task returns the title style for a task in the given state.
func (s *Styles) Task(completed bool) lipgloss.Style {
	if completed {
		return s.Done
	}
	return s.Pending
}
