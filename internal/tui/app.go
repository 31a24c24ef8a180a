package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/Darshan1839/NewsApp/internal/browse"
	"github.com/Darshan1839/NewsApp/internal/browser"
	"github.com/Darshan1839/NewsApp/internal/client"
	"github.com/Darshan1839/NewsApp/internal/newsapi"
)

type focusPane int

const (
	focusList focusPane = iota
	focusPreview
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeHelp
)

// Searcher fetches the result set for a zone.
type Searcher interface {
	Search(ctx context.Context, term string) ([]newsapi.Article, error)
}

type App struct {
	searcher Searcher
	log      zerolog.Logger
	view     browse.State
	cursor   int
	focus    focusPane
	mode     mode

	width  int
	height int

	// Sub-components
	searchInput textinput.Model
	spinner     spinner.Model
	categories  categoryBar

	// State
	dark          bool
	previewScroll int
	currentDate   string
	openURL       func(string) error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Searcher   Searcher
	Log        zerolog.Logger
	Categories []string
	Zone       string
	// Dark forces the theme when ThemeSet is true; otherwise the terminal's
	// background decides.
	Dark     bool
	ThemeSet bool
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Search news (e.g., Football, Economy)"
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	dark := lipgloss.HasDarkBackground()
	if opts.ThemeSet {
		dark = opts.Dark
		lipgloss.SetHasDarkBackground(dark)
	}

	return &App{
		searcher:    opts.Searcher,
		log:         opts.Log,
		view:        browse.New(opts.Zone),
		categories:  newCategoryBar(opts.Categories, opts.Zone),
		searchInput: ti,
		spinner:     sp,
		dark:        dark,
		currentDate: time.Now().Format("Jan 2"),
		openURL:     browser.Open,
	}
}

func (a *App) Init() tea.Cmd {
	return a.dispatch(browse.SelectCategory{Name: a.view.Term})
}

// dispatch runs one transition and turns a fetch request into a command.
func (a *App) dispatch(e browse.Event) tea.Cmd {
	next, req := browse.Reduce(a.view, e)
	a.view = next
	if req == nil {
		return nil
	}
	a.cursor = 0
	a.previewScroll = 0
	return tea.Batch(a.fetchCmd(req.Term), a.spinner.Tick)
}

// fetchCmd captures the term at issue time.
func (a *App) fetchCmd(term string) tea.Cmd {
	s := a.searcher
	return func() tea.Msg {
		articles, err := s.Search(context.Background(), term)
		if err != nil {
			return fetchFailedMsg{term: term, err: err}
		}
		return fetchDoneMsg{term: term, articles: articles}
	}
}

func (a *App) openCmd(url string) tea.Cmd {
	open := a.openURL
	return func() tea.Msg {
		if err := open(url); err != nil {
			return openFailedMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case fetchDoneMsg:
		a.log.Debug().Str("term", msg.term).Int("articles", len(msg.articles)).Msg("fetch completed")
		a.dispatch(browse.FetchCompleted{Term: msg.term, Articles: msg.articles})
		return a, nil

	case fetchFailedMsg:
		a.log.Error().Err(msg.err).Str("term", msg.term).Msg("error fetching news")
		a.dispatch(browse.FetchFailed{Term: msg.term, Message: client.Message(msg.err)})
		return a, nil

	case openFailedMsg:
		a.log.Warn().Err(msg.err).Msg("opening article failed")
		return a, nil

	case spinner.TickMsg:
		if a.view.Phase == browse.Loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeNormal
		}
		return a, nil
	}

	visible := browse.VisibleSlice(a.view)

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.focus == focusList && a.cursor < len(visible)-1 {
			a.cursor++
			a.previewScroll = 0
		} else if a.focus == focusPreview {
			a.previewScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.previewScroll = 0
		} else if a.focus == focusPreview && a.previewScroll > 0 {
			a.previewScroll--
		}
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
		return a, nil
	case "left", "h":
		a.categories.left()
		return a, nil
	case "right", "l":
		a.categories.right()
		return a, nil
	case "enter", " ":
		if name, ok := a.categories.current(); ok {
			return a, a.dispatch(browse.SelectCategory{Name: name})
		}
		return a, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if name, ok := a.categories.at(int(msg.String()[0] - '1')); ok {
			return a, a.dispatch(browse.SelectCategory{Name: name})
		}
		return a, nil
	case "m":
		return a, a.dispatch(browse.LoadMore{})
	case "r":
		return a, a.dispatch(browse.Reload{})
	case "o":
		if a.cursor < len(visible) {
			if link := visible[a.cursor].Link(); link != "" {
				return a, a.openCmd(link)
			}
		}
		return a, nil
	case "t":
		a.dark = !a.dark
		lipgloss.SetHasDarkBackground(a.dark)
		return a, nil
	case "/":
		a.mode = modeSearch
		a.searchInput.Focus()
		return a, textinput.Blink
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.Blur()
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		return a, a.dispatch(browse.SubmitSearch{Text: a.searchInput.Value()})
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

func (a *App) themeLabel() string {
	if a.dark {
		return "☾ dark"
	}
	return "☀ light"
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  📰 TheNews")
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	headerHeight := 1
	barHeight := 1
	errHeight := 0
	if a.view.Err != "" {
		errHeight = 1
	}
	statusHeight := 1
	contentHeight := a.height - headerHeight - barHeight - errHeight - statusHeight - 2 // borders

	listWidth := int(float64(a.width) * 0.4)
	previewWidth := a.width - listWidth - 1 // gap

	if contentHeight < 3 {
		contentHeight = 3
	}

	// Header
	headerLeft := headerStyle.Render("📰 TheNews")
	headerRight := headerDateStyle.Render(a.themeLabel() + "  " + a.currentDate + " ")
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	bar := a.categories.render(a.view.Term, a.width)
	if a.mode == modeSearch {
		bar = a.searchInput.View()
	}

	visible := browse.VisibleSlice(a.view)
	if a.cursor >= len(visible) {
		a.cursor = max(0, len(visible)-1)
	}

	innerListW := listWidth - 4
	var listContent string
	switch {
	case a.view.Phase == browse.Loading:
		listContent = lipglossCenter(a.spinner.View()+" Loading news...", innerListW, contentHeight)
	case browse.Empty(a.view):
		listContent = lipglossCenter("No articles found.", innerListW, contentHeight)
	case a.view.Phase == browse.Idle:
		listContent = lipglossCenter("Pick a category", innerListW, contentHeight)
	default:
		footer := ""
		if browse.CanLoadMore(a.view) {
			footer = loadMoreStyle.Render("⊕ Load More (m)")
		}
		listContent = renderList(visible, a.cursor, contentHeight, innerListW, footer)
	}

	listStyle, previewStyle := listPaneStyle, previewPaneStyle
	if a.focus == focusList {
		listStyle = listPaneActiveStyle
	} else {
		previewStyle = previewPaneActiveStyle
	}
	listPane := listStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)

	var selected *newsapi.Article
	if a.view.Phase != browse.Loading && a.cursor < len(visible) {
		selected = &visible[a.cursor]
	}
	previewContent := renderPreview(selected, previewWidth-4, contentHeight, a.previewScroll)
	previewPane := previewStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)

	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)

	status := renderStatusBar(statusInfo{
		zone:        a.view.Term,
		total:       len(a.view.Articles),
		shown:       len(visible),
		canLoadMore: browse.CanLoadMore(a.view),
		searching:   a.mode == modeSearch,
		loading:     a.view.Phase == browse.Loading,
	}, a.width)

	rows := []string{header, bar}
	if a.view.Err != "" {
		rows = append(rows, errorStyle.Render(" "+a.view.Err))
	}
	rows = append(rows, content, status)
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("TheNews")
	dim := helpDimStyle

	help := title + dim.Render(" · Keyboard Shortcuts") + "\n\n" +
		dim.Render("Zones") + "\n" +
		"  ←/→, h/l     Move between categories\n" +
		"  enter         Browse the highlighted category\n" +
		"  1-9           Browse category by number\n" +
		"  /             Search any topic\n\n" +
		dim.Render("Articles") + "\n" +
		"  j/k, ↑/↓     Navigate article list\n" +
		"  tab           Switch focus between list and preview\n" +
		"  o             Open article in browser\n" +
		"  m             Load more articles\n" +
		"  r             Reload current zone\n\n" +
		dim.Render("General") + "\n" +
		"  t             Toggle dark/light theme\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
