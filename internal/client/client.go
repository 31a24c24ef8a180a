// Package client talks to the news proxy on behalf of the browser view.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Darshan1839/NewsApp/internal/newsapi"
)

// ErrFetchFailed is returned when the proxy answers with a non-2xx status.
var ErrFetchFailed = errors.New("proxy returned a non-2xx status")

// FetchFailedMessage is what the view shows for ErrFetchFailed.
const FetchFailedMessage = "Failed to fetch data from the API."

const upstreamFallback = "API returned an error."

// UpstreamError is a provider response whose status was not "ok".
type UpstreamError struct {
	Code    string
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return upstreamFallback
	}
	return e.Message
}

// Client fetches search results through the proxy at BaseURL.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

func (c *Client) searchURL(term string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid backend url: %w", err)
	}
	q := u.Query()
	q.Set("q", term)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Search returns the articles for term. A missing articles array yields
// an empty slice.
func (c *Client) Search(ctx context.Context, term string) ([]newsapi.Article, error) {
	rawURL, err := c.searchURL(term)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrFetchFailed, resp.StatusCode)
	}

	var body newsapi.Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if body.Status != newsapi.StatusOK {
		return nil, &UpstreamError{Code: body.Code, Message: body.Message}
	}
	if body.Articles == nil {
		return []newsapi.Article{}, nil
	}
	return body.Articles, nil
}

// Message is the text the view shows for an error returned by Search.
func Message(err error) string {
	if errors.Is(err, ErrFetchFailed) {
		return FetchFailedMessage
	}
	return err.Error()
}
