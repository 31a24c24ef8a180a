package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// categoryBar is the row of zone buttons. The active zone is whatever the
// view state is browsing; the cursor only marks the keyboard position.
type categoryBar struct {
	names  []string
	cursor int
}

func newCategoryBar(names []string, active string) categoryBar {
	c := categoryBar{names: names}
	for i, n := range names {
		if strings.EqualFold(n, active) {
			c.cursor = i
			break
		}
	}
	return c
}

func (c *categoryBar) left() {
	if c.cursor > 0 {
		c.cursor--
	}
}

func (c *categoryBar) right() {
	if c.cursor < len(c.names)-1 {
		c.cursor++
	}
}

func (c *categoryBar) current() (string, bool) {
	if c.cursor < 0 || c.cursor >= len(c.names) {
		return "", false
	}
	return c.names[c.cursor], true
}

// at moves the cursor to index i and returns that category.
func (c *categoryBar) at(i int) (string, bool) {
	if i < 0 || i >= len(c.names) {
		return "", false
	}
	c.cursor = i
	return c.names[i], true
}

func (c *categoryBar) render(active string, width int) string {
	var parts []string
	for i, n := range c.names {
		style := tabInactiveStyle
		if n == active {
			style = tabActiveStyle
		}
		label := n
		if i == c.cursor {
			label = "[" + n + "]"
		}
		parts = append(parts, style.Render(label))
	}

	// Keep the cursor visible: drop leading tabs until it fits.
	start := 0
	for start < c.cursor && lipgloss.Width(strings.Join(parts[start:c.cursor+1], " ")) > width {
		start++
	}

	var row string
	for i, part := range parts[start:] {
		candidate := row
		if i > 0 {
			candidate += " "
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	return lipgloss.NewStyle().Width(width).PaddingLeft(1).Render(row)
}
