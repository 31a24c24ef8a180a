package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type statusInfo struct {
	zone        string
	total       int
	shown       int
	canLoadMore bool
	searching   bool
	loading     bool
}

func renderStatusBar(s statusInfo, width int) string {
	zoneStyle := lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	left := " " + zoneStyle.Render(s.zone)
	if !s.loading {
		left += fmt.Sprintf(" · showing %d of %d", s.shown, s.total)
	} else {
		left += " (loading...)"
	}

	right := " / search  ←→ zone  t theme  ? help  q quit "
	if s.canLoadMore {
		right = " m load more " + right
	}
	if s.searching {
		right = " esc cancel  enter search "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
