// Package tui provides terminal front ends for the voice and brief wizards.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Border    lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#2563EB"), // Blue
		Secondary: lipgloss.Color("#0EA5E9"), // Sky
		Muted:     lipgloss.Color("#6B7280"), // Gray
		Success:   lipgloss.Color("#16A34A"), // Green
		Error:     lipgloss.Color("#DC2626"), // Red
		Border:    lipgloss.Color("#4B5563"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Help     lipgloss.Style
	Box      lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles using the default theme.
func DefaultStyles() *Styles {
	return NewStyles(nil)
}

// progress renders step names with the current one highlighted.
func (s *Styles) progress(names []string, current int) string {
	parts := make([]string, len(names))
	for i, name := range names {
		switch {
		case i == current:
			parts[i] = s.Selected.Render(name)
		case i < current:
			parts[i] = s.Success.Render(name)
		default:
			parts[i] = s.Muted.Render(name)
		}
	}
	return strings.Join(parts, " > ")
}
