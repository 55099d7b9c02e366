package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wahlandcase/attuned.issuekey/internal/models"
)

var (
	ColorGreen    = lipgloss.Color("#00FF00")
	ColorYellow   = lipgloss.Color("#FFFF00")
	ColorRed      = lipgloss.Color("#FF0000")
	ColorWhite    = lipgloss.Color("#FFFFFF")
	ColorDarkGray = lipgloss.Color("8")
)

// OutcomeColor is the palette colour for an outcome
func OutcomeColor(o models.Outcome) lipgloss.Color {
	switch {
	case models.IsPass(o):
		return ColorGreen
	case models.IsWarn(o):
		return ColorYellow
	case models.IsFail(o):
		return ColorRed
	default:
		return ColorWhite
	}
}

// OutcomeIcon returns the marker printed before a hook name
func OutcomeIcon(o models.Outcome) string {
	switch {
	case models.IsPass(o):
		return "✓"
	case models.IsWarn(o):
		return "⚠"
	case models.IsFail(o):
		return "✗"
	default:
		return "?"
	}
}
