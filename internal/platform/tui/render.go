package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sweet-catch/internal/core"
)

// maxTextWidth caps wrapped prose so it stays readable on wide terminals.
const maxTextWidth = 64

// layout stacks the blocks vertically and centers them in the window.
// A zero-sized window (before the first resize) renders unpadded.
func layout(width, height int, blocks ...string) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b != "" {
			parts = append(parts, b)
		}
	}
	body := lipgloss.JoinVertical(lipgloss.Center, parts...)
	if width <= 0 || height <= 0 {
		return body
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

// paragraphs renders text blocks separated by blank lines, wrapped to width.
func paragraphs(style lipgloss.Style, width int, ps []string) string {
	if width <= 0 {
		width = maxTextWidth
	}
	width = core.Min(width, maxTextWidth)
	wrapped := make([]string, len(ps))
	for i, p := range ps {
		wrapped[i] = style.Width(width).Render(p)
	}
	return strings.Join(wrapped, "\n\n")
}
