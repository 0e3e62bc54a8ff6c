package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sweet-catch/internal/games/catch"
)

// Theme defines the visual styling for every screen.
type Theme struct {
	// Headers
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Text     lipgloss.Style
	Dim      lipgloss.Style

	// Menus
	MenuItemNormal lipgloss.Style
	MenuItemActive lipgloss.Style

	// HUD
	HUDLabel lipgloss.Style
	HUDValue lipgloss.Style
	Lane     lipgloss.Style

	// Popups and cards
	Card       lipgloss.Style
	PopupTitle lipgloss.Style
	Badge      lipgloss.Style

	// Level chips
	ChipDone     lipgloss.Style
	ChipSelected lipgloss.Style

	// Hints
	Success lipgloss.Style
	Warning lipgloss.Style

	// Per-kind sweet colors
	Kinds map[catch.Kind]lipgloss.Style
}

// DefaultTheme returns the candy-colored default theme.
func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true), // Candy pink
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true), // Cream
		Text:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		MenuItemNormal: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),

		HUDLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		HUDValue: lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		Lane:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("135")).
			Padding(0, 2),
		PopupTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("213")).
			Padding(0, 1),

		ChipDone: lipgloss.NewStyle().
			Foreground(lipgloss.Color("22")).
			Background(lipgloss.Color("120")).
			Padding(0, 1),
		ChipSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("255")).
			Bold(true).
			Padding(0, 1),

		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("209")),

		Kinds: map[catch.Kind]lipgloss.Style{
			"heart": lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true), // Yellow heart
			"star":  lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),  // Green star
			"drop":  lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true), // Purple drop
			"bear":  lipgloss.NewStyle().Foreground(lipgloss.Color("180")).Bold(true), // Tan bear
		},
	}
}

// MonochromeTheme returns a theme without colors, for dumb terminals.
func MonochromeTheme() Theme {
	plain := lipgloss.NewStyle()
	bold := lipgloss.NewStyle().Bold(true)
	theme := DefaultTheme()
	theme.Title = bold
	theme.Subtitle = bold
	theme.Text = plain
	theme.Dim = plain
	theme.MenuItemNormal = plain
	theme.MenuItemActive = bold.Reverse(true)
	theme.HUDLabel = plain
	theme.HUDValue = bold
	theme.Lane = plain
	theme.Card = plain.Border(lipgloss.NormalBorder()).Padding(0, 2)
	theme.PopupTitle = bold
	theme.Badge = bold.Reverse(true)
	theme.ChipDone = plain.Padding(0, 1)
	theme.ChipSelected = bold.Reverse(true).Padding(0, 1)
	theme.Success = plain
	theme.Warning = bold
	theme.Kinds = map[catch.Kind]lipgloss.Style{}
	return theme
}

// Sweet renders a kind's glyph in its color.
func (t Theme) Sweet(spec catch.KindSpec) string {
	glyph := spec.Glyph
	if glyph == "" {
		glyph = string(spec.Kind)
	}
	if s, ok := t.Kinds[spec.Kind]; ok {
		return s.Render(glyph)
	}
	return glyph
}
