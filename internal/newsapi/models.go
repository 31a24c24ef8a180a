package newsapi

import (
	"strconv"
	"strings"
	"time"
)

// StatusOK is the status value the provider reports on success.
const StatusOK = "ok"

const unknownSource = "Unknown Source"

type Source struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

// Article mirrors one entry of the provider's articles array. Optional
// fields stay nil when the provider omits them or sends null.
type Article struct {
	Source      *Source    `json:"source,omitempty"`
	Author      *string    `json:"author,omitempty"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	URL         *string    `json:"url,omitempty"`
	URLToImage  *string    `json:"urlToImage,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Content     *string    `json:"content,omitempty"`
}

// Response is the body of an "everything" search.
type Response struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
	Code         string    `json:"code,omitempty"`
	Message      string    `json:"message,omitempty"`
}

// ImageURL reports the article image, if any.
func (a Article) ImageURL() (string, bool) {
	if a.URLToImage == nil {
		return "", false
	}
	u := strings.TrimSpace(*a.URLToImage)
	return u, u != ""
}

func (a Article) HasImage() bool {
	_, ok := a.ImageURL()
	return ok
}

func (a Article) SourceName() string {
	if a.Source == nil || a.Source.Name == "" {
		return unknownSource
	}
	return a.Source.Name
}

func (a Article) DescriptionText() string {
	if a.Description == nil {
		return ""
	}
	return *a.Description
}

func (a Article) Link() string {
	if a.URL == nil {
		return ""
	}
	return *a.URL
}

// Key identifies the article within a result set: its canonical URL, or
// its position when the URL is missing.
func (a Article) Key(index int) string {
	if link := a.Link(); link != "" {
		return link
	}
	return strconv.Itoa(index)
}
