package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the provider's search-everything endpoint.
const DefaultBaseURL = "https://newsapi.org/v2/everything"

var ErrInvalidJSON = errors.New("upstream response is not valid JSON")

// Query holds the parameters forwarded to the provider. From and SortBy
// are sent only when set.
type Query struct {
	Q      string
	From   string
	SortBy string
}

// Client calls the provider with a server-held API key.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// RequestURL builds the outbound URL. Every parameter is percent-encoded.
func (c *Client) RequestURL(q Query) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing upstream url: %w", err)
	}
	params := u.Query()
	params.Set("q", q.Q)
	if q.From != "" {
		params.Set("from", q.From)
	}
	if q.SortBy != "" {
		params.Set("sortBy", q.SortBy)
	}
	params.Set("apiKey", c.apiKey)
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// Everything performs one search and returns the provider's body as-is
// along with its HTTP status. The body is guaranteed to be valid JSON.
func (c *Client) Everything(ctx context.Context, q Query) ([]byte, int, error) {
	rawURL, err := c.RequestURL(q)
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// url.Error carries the full URL, key included.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return nil, 0, fmt.Errorf("upstream request: %w", uerr.Err)
		}
		return nil, 0, fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading upstream body: %w", err)
	}
	if !json.Valid(body) {
		return nil, resp.StatusCode, ErrInvalidJSON
	}
	return body, resp.StatusCode, nil
}
