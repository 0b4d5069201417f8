package components

import (
	"github.com/nagaosooooooora-dev/roman-points/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// the current balance on the right.
func RenderStatusBar(width int, balance string) string {
	t := theme.Active

	style := lipgloss.NewStyle().Foreground(t.TextMuted).Width(width)
	balStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)

	left := " [?]help  [q]uit"
	right := ""
	if balance != "" {
		right = balStyle.Render(balance) + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	var bar = left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
