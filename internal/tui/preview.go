package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Darshan1839/NewsApp/internal/newsapi"
)

func renderPreview(article *newsapi.Article, width, height, scroll int) string {
	if article == nil {
		return lipglossCenter("Select an article", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := previewTitleStyle.Width(contentWidth).Render(article.Title)

	byline := "Published by " + article.SourceName()
	if article.Author != nil && *article.Author != "" {
		byline += " · " + *article.Author
	}
	if article.PublishedAt != nil {
		byline += " · " + article.PublishedAt.Format("Jan 2, 2006")
	}
	source := previewSourceStyle.Render(byline)

	desc := article.DescriptionText()
	if desc == "" {
		desc = "(No description available)"
	}
	body := previewBodyStyle.Width(contentWidth).Render(wrapText(desc, contentWidth))

	parts := []string{title, source, "", body}
	if img, ok := article.ImageURL(); ok {
		parts = append(parts, "", previewLinkStyle.Width(contentWidth).Render("Image: "+img))
	}
	if link := article.Link(); link != "" {
		parts = append(parts, previewLinkStyle.Width(contentWidth).Render("Read more: "+link))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	// Apply scroll offset
	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}

	// Pad to fill height
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
