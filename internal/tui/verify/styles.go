package verify

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rtrack/rt/internal/ui"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ui.ColorAccent)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorMuted).
			Padding(0, 1).
			MarginRight(1)

	focusedCellStyle = cellStyle.
				BorderForeground(ui.ColorAccent).
				Bold(true)

	errorStyle = lipgloss.NewStyle().Foreground(ui.ColorBad)
	infoStyle  = lipgloss.NewStyle().Foreground(ui.ColorGood)
	mutedStyle = lipgloss.NewStyle().Foreground(ui.ColorMuted)
)
