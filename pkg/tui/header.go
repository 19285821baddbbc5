package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const logo = ` ( (
  ) )
........
|      |]
\      /
 '----'`

func renderHeader(width int, title string) string {
	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorCoffee)).
		Bold(true)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorActive)).
		Bold(true)

	headerPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1).
		Width(width)

	logoRendered := logoStyle.Render(logo)
	if title == "" {
		rightAlign := lipgloss.NewStyle().
			Width(width - 2).
			Align(lipgloss.Right)
		return headerPadding.Render(rightAlign.Render(logoRendered))
	}

	// title sits on the last logo row
	logoLines := strings.Split(logo, "\n")
	titleRendered := titleStyle.Render(strings.Repeat("\n", len(logoLines)-1) + title)

	gap := width - 2 - lipgloss.Width(title) - lipgloss.Width(logoRendered)
	if gap < 1 {
		gap = 1
	}
	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		strings.Repeat(" ", gap),
		logoRendered,
	)
	return headerPadding.Render(content)
}

func repeatStr(s string, count int) string {
	if count <= 0 {
		return ""
	}
	return strings.Repeat(s, count)
}
