package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Darshan1839/NewsApp/internal/newsapi"
)

func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

func renderListItem(a newsapi.Article, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(a.Title, width-4))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(a.Title, width-4))
	}

	meta := "  " + itemSourceStyle.Render(truncateStr(a.SourceName(), width/2))
	if a.PublishedAt != nil {
		meta += " " + itemTimeStyle.Render("· "+relativeTime(*a.PublishedAt))
	}

	return title + "\n" + meta
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// renderList draws the visible slice with the cursor kept on screen.
func renderList(articles []newsapi.Article, cursor int, height int, width int, footer string) string {
	if len(articles) == 0 {
		// The window can hold only image-less articles while more remain.
		empty := lipglossCenter("No articles to show", width, height)
		if footer != "" {
			empty += "\n\n  " + footer
		}
		return empty
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	avail := height
	if footer != "" {
		avail -= 2
	}
	visible := avail / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(articles) {
		end = len(articles)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(articles[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}
	if footer != "" && end == len(articles) {
		b.WriteString("\n\n  " + footer)
	}

	return b.String()
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - len([]rune(s))) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
