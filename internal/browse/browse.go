// Package browse holds the view state of the news browser and the pure
// transition function that drives it. Rendering and fetching live
// elsewhere; Reduce only says when a fetch is needed.
package browse

import (
	"strings"

	"github.com/Darshan1839/NewsApp/internal/newsapi"
)

// PageSize is both the initial window and the load-more step.
const PageSize = 20

// ValidationMessage is shown when a search is submitted without text.
const ValidationMessage = "Please enter a valid query."

type Phase int

const (
	Idle Phase = iota
	Loading
	Loaded
	Errored
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// State is one session's view state.
type State struct {
	Term     string
	Visible  int
	Phase    Phase
	Err      string
	Articles []newsapi.Article
}

// New returns the session's starting state. No fetch has been issued yet;
// callers dispatch SelectCategory{Name: term} to load the first page.
func New(term string) State {
	return State{Term: term, Visible: PageSize, Phase: Idle}
}

type Event interface{ isEvent() }

type SelectCategory struct{ Name string }

type SubmitSearch struct{ Text string }

// FetchCompleted and FetchFailed carry the term the fetch was issued for.
type FetchCompleted struct {
	Term     string
	Articles []newsapi.Article
}

type FetchFailed struct {
	Term    string
	Message string
}

type LoadMore struct{}

// Reload re-fetches the current term, keeping the window.
type Reload struct{}

func (SelectCategory) isEvent() {}
func (SubmitSearch) isEvent()   {}
func (FetchCompleted) isEvent() {}
func (FetchFailed) isEvent()    {}
func (LoadMore) isEvent()       {}
func (Reload) isEvent()         {}

// Request asks the caller to fetch results for Term.
type Request struct {
	Term string
}

// Reduce applies e to s. It never mutates s.Articles; a non-nil Request
// means a fetch must be issued for the returned state.
func Reduce(s State, e Event) (State, *Request) {
	switch e := e.(type) {
	case SelectCategory:
		return startFetch(s, e.Name)

	case SubmitSearch:
		text := strings.TrimSpace(e.Text)
		if text == "" {
			s.Phase = Errored
			s.Err = ValidationMessage
			return s, nil
		}
		return startFetch(s, text)

	case Reload:
		if s.Term == "" {
			return s, nil
		}
		s.Phase = Loading
		s.Err = ""
		return s, &Request{Term: s.Term}

	case FetchCompleted:
		if !s.awaiting(e.Term) {
			return s, nil
		}
		s.Phase = Loaded
		s.Err = ""
		s.Articles = e.Articles
		if s.Articles == nil {
			s.Articles = []newsapi.Article{}
		}
		return s, nil

	case FetchFailed:
		if !s.awaiting(e.Term) {
			return s, nil
		}
		s.Phase = Errored
		s.Err = e.Message
		return s, nil

	case LoadMore:
		if CanLoadMore(s) {
			s.Visible += PageSize
		}
		return s, nil
	}
	return s, nil
}

func startFetch(s State, term string) (State, *Request) {
	s.Term = term
	s.Visible = PageSize
	s.Phase = Loading
	s.Err = ""
	return s, &Request{Term: term}
}

// awaiting reports whether a completion for term belongs to the fetch the
// state is waiting on. Results for a superseded term are dropped.
func (s State) awaiting(term string) bool {
	return s.Phase == Loading && term == s.Term
}

// VisibleSlice returns the first Visible articles, keeping only those with
// an image. Image-less articles still occupy the window.
func VisibleSlice(s State) []newsapi.Article {
	n := max(0, min(s.Visible, len(s.Articles)))
	out := make([]newsapi.Article, 0, n)
	for _, a := range s.Articles[:n] {
		if a.HasImage() {
			out = append(out, a)
		}
	}
	return out
}

func CanLoadMore(s State) bool {
	return s.Phase == Loaded && s.Visible < len(s.Articles)
}

// Empty reports a successful fetch that returned nothing.
func Empty(s State) bool {
	return s.Phase == Loaded && len(s.Articles) == 0
}
