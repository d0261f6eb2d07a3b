package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tmoreno/studyplanner/internal/theme"
)

// Layout manages the terminal layout dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// RenderHeader renders the top header bar with the application title
// on the left and contextual status (sort key, active filter) on the
// right.
func (l Layout) RenderHeader(title, status string) string {
	return l.renderBar(theme.HeaderStyle, title, status)
}

// RenderStatusBar renders the bottom bar with keyboard hints on the
// left and the transient notice, if any, on the right.
func (l Layout) RenderStatusBar(hints, notice string) string {
	return l.renderBar(theme.StatusBarStyle, hints, notice)
}

// renderBar lays out left and right segments with a filler between
// them so the bar spans the full terminal width.
func (l Layout) renderBar(style lipgloss.Style, left, right string) string {
	leftRendered := style.Render(left)
	rightRendered := style.Render(right)

	gap := l.Width - lipgloss.Width(leftRendered) - lipgloss.Width(rightRendered)
	if gap < 0 {
		gap = 0
	}
	filler := style.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(style.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftRendered, filler, rightRendered)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(header, content, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}
