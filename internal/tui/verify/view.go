package verify

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rtrack/rt/internal/recovery"
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Check your inbox"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("We sent a 6-digit code to " + m.stage.Identifier()))
	b.WriteString("\n\n")

	b.WriteString(m.viewCells())
	b.WriteString("\n\n")

	switch {
	case m.busy:
		b.WriteString(mutedStyle.Render("Checking..."))
	case m.stage.CanResend():
		b.WriteString(mutedStyle.Render("Didn't get it? Press ctrl+r to resend the code."))
	default:
		b.WriteString(mutedStyle.Render("Resend available in " + recovery.FormatCountdown(m.remaining)))
	}
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	if m.infoMsg != "" {
		b.WriteString(infoStyle.Render(m.infoMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

func (m *Model) viewCells() string {
	cells := make([]string, 0, recovery.CodeLength)
	for i := 0; i < recovery.CodeLength; i++ {
		content := " "
		if d, ok := m.stage.Cells.At(i); ok {
			content = string(d)
		}
		style := cellStyle
		if i == m.stage.Cells.Focus() {
			style = focusedCellStyle
		}
		cells = append(cells, style.Render(content))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, cells...)
}
