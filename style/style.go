// Package style centralizes colors and lipgloss styles for the vscroll demo.
// Styles are package-level variables rebuilt when the theme changes via
// SetTheme, so components can reference them directly.
package style

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines a complete color palette.
type Theme struct {
	Name      string
	Primary   color.Color
	Secondary color.Color
	Success   color.Color
	Warning   color.Color
	Error     color.Color
	Muted     color.Color
	Dim       color.Color
	Border    color.Color
}

// Built-in themes.
var (
	darkTheme = Theme{
		Name:      "dark",
		Primary:   lipgloss.Color("#7C3AED"),
		Secondary: lipgloss.Color("#06B6D4"),
		Success:   lipgloss.Color("#22C55E"),
		Warning:   lipgloss.Color("#F59E0B"),
		Error:     lipgloss.Color("#EF4444"),
		Muted:     lipgloss.Color("#6B7280"),
		Dim:       lipgloss.Color("#374151"),
		Border:    lipgloss.Color("#4B5563"),
	}

	lightTheme = Theme{
		Name:      "light",
		Primary:   lipgloss.Color("#6D28D9"),
		Secondary: lipgloss.Color("#0E7490"),
		Success:   lipgloss.Color("#15803D"),
		Warning:   lipgloss.Color("#B45309"),
		Error:     lipgloss.Color("#B91C1C"),
		Muted:     lipgloss.Color("#6B7280"),
		Dim:       lipgloss.Color("#9CA3AF"),
		Border:    lipgloss.Color("#D1D5DB"),
	}
)

// Colors — initialized to dark theme defaults. Updated via SetTheme().
var (
	Primary   color.Color = darkTheme.Primary
	Secondary color.Color = darkTheme.Secondary
	Success   color.Color = darkTheme.Success
	Warning   color.Color = darkTheme.Warning
	Error     color.Color = darkTheme.Error
	Muted     color.Color = darkTheme.Muted
	Dim       color.Color = darkTheme.Dim
	Border    color.Color = darkTheme.Border
)

// Base styles — rebuilt when the theme changes via rebuildStyles().
var (
	Bold      lipgloss.Style
	Faint     lipgloss.Style
	ErrorText lipgloss.Style

	// Rows
	RowTitle  lipgloss.Style
	RowIndex  lipgloss.Style
	RowMeta   lipgloss.Style
	RowBorder lipgloss.Style

	// Header
	HeaderTitle     lipgloss.Style
	HeaderSeparator lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style

	// Scrollbar
	ScrollbarThumb lipgloss.Style
	ScrollbarTrack lipgloss.Style
)

// currentTheme tracks the active theme name.
var currentTheme = "dark"

func init() {
	rebuildStyles()
}

// SetTheme switches the active palette by name ("dark" or "light") and
// rebuilds all styles. Returns false for unknown names.
func SetTheme(name string) bool {
	var t Theme
	switch name {
	case "dark":
		t = darkTheme
	case "light":
		t = lightTheme
	default:
		return false
	}

	Primary = t.Primary
	Secondary = t.Secondary
	Success = t.Success
	Warning = t.Warning
	Error = t.Error
	Muted = t.Muted
	Dim = t.Dim
	Border = t.Border

	currentTheme = t.Name
	rebuildStyles()
	return true
}

// ThemeName returns the name of the active theme.
func ThemeName() string {
	return currentTheme
}

func rebuildStyles() {
	Bold = lipgloss.NewStyle().Bold(true)
	Faint = lipgloss.NewStyle().Foreground(Muted)
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)

	RowTitle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	RowIndex = lipgloss.NewStyle().Foreground(Secondary)
	RowMeta = lipgloss.NewStyle().Foreground(Muted).Italic(true)
	RowBorder = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(Border).
		PaddingLeft(1)

	HeaderTitle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	HeaderSeparator = lipgloss.NewStyle().Foreground(Dim)

	StatusBar = lipgloss.NewStyle().Foreground(Muted).PaddingLeft(1)
	StatusKey = lipgloss.NewStyle().Foreground(Secondary)
	StatusValue = lipgloss.NewStyle().Foreground(Primary)

	ScrollbarThumb = lipgloss.NewStyle().Foreground(Primary)
	ScrollbarTrack = lipgloss.NewStyle().Foreground(Dim)
}
