package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Adaptive colors follow lipgloss's dark-background flag, which the
	// theme toggle flips.
	colorPrimary   = lipgloss.AdaptiveColor{Light: "#4338CA", Dark: "#818CF8"}
	colorSecondary = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#D1D5DB"}
	colorDim       = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	colorAccent    = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#6366F1"}
	colorError     = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
	colorBorder    = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}
	colorActiveBdr = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"}
	colorTabBg     = lipgloss.AdaptiveColor{Light: "#A5B4FC", Dark: "#312E81"}
	colorStatusBg  = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"}
	colorStatusFg  = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#D1D5DB"}
	colorGreen     = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingLeft(1)

	headerDateStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Align(lipgloss.Right)

	listPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	listPaneActiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorActiveBdr)

	previewPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder)

	previewPaneActiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorActiveBdr)

	itemTitleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	itemSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	itemSourceStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	itemTimeStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	previewTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary).
				MarginBottom(1)

	previewSourceStyle = lipgloss.NewStyle().
				Foreground(colorGreen).
				MarginBottom(1)

	previewBodyStyle = lipgloss.NewStyle().
				Foreground(colorSecondary)

	previewLinkStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Italic(true).
				MarginTop(1)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorAccent).
			Padding(0, 1).
			Bold(true)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(colorTabBg).
				Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(colorStatusBg).
			Foreground(colorStatusFg).
			PaddingLeft(1).
			PaddingRight(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	loadMoreStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	searchPromptStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	helpCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 3)

	helpDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)
