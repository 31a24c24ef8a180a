package tui

import (
	"github.com/Darshan1839/NewsApp/internal/newsapi"
)

// fetchDoneMsg and fetchFailedMsg carry the term the fetch was issued for,
// so late answers for an abandoned zone can be recognised.
type fetchDoneMsg struct {
	term     string
	articles []newsapi.Article
}

type fetchFailedMsg struct {
	term string
	err  error
}

type openFailedMsg struct {
	err error
}
