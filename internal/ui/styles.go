// Package ui provides terminal styling for rt CLI output.
package ui

import "github.com/charmbracelet/lipgloss"

// Adaptive palette shared by the recovery stages.
var (
	ColorGood = lipgloss.AdaptiveColor{
		Light: "#2da44e",
		Dark:  "#3fb950",
	}
	ColorWarn = lipgloss.AdaptiveColor{
		Light: "#bf8700",
		Dark:  "#d29922",
	}
	ColorBad = lipgloss.AdaptiveColor{
		Light: "#cf222e",
		Dark:  "#f85149",
	}
	ColorMuted = lipgloss.AdaptiveColor{
		Light: "#6e7781",
		Dark:  "#8b949e",
	}
	ColorAccent = lipgloss.AdaptiveColor{
		Light: "#0969da",
		Dark:  "#58a6ff",
	}
)

var (
	GoodStyle   = lipgloss.NewStyle().Foreground(ColorGood)
	WarnStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
	BadStyle    = lipgloss.NewStyle().Foreground(ColorBad)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	AccentStyle = lipgloss.NewStyle().Foreground(ColorAccent)

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
)

// Status icons.
const (
	IconOK   = "✓"
	IconWarn = "⚠"
	IconFail = "✗"
)

// StrengthStyle picks a style for a password strength score (1-4).
func StrengthStyle(score int) lipgloss.Style {
	switch {
	case score >= 4:
		return GoodStyle
	case score == 3:
		return AccentStyle
	case score == 2:
		return WarnStyle
	default:
		return BadStyle
	}
}
