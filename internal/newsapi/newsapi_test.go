package newsapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestArticleDefaults(t *testing.T) {
	var a Article
	assert.Equal(t, "Unknown Source", a.SourceName())
	assert.False(t, a.HasImage())
	assert.Equal(t, "", a.DescriptionText())
	assert.Equal(t, "7", a.Key(7))

	a.Source = &Source{Name: "BBC News"}
	a.URLToImage = strPtr("   ")
	a.URL = strPtr("https://example.com/a")
	assert.Equal(t, "BBC News", a.SourceName())
	assert.False(t, a.HasImage(), "blank image url counts as absent")
	assert.Equal(t, "https://example.com/a", a.Key(7))

	a.URLToImage = strPtr("https://example.com/a.jpg")
	img, ok := a.ImageURL()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/a.jpg", img)
}

func TestDecodeNullFields(t *testing.T) {
	body := `{"status":"ok","totalResults":1,"articles":[{"source":{"id":null,"name":""},"author":null,
		"title":"T","description":null,"url":"https://x.test/1","urlToImage":null,
		"publishedAt":"2024-05-01T10:00:00Z","content":null}]}`

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Len(t, resp.Articles, 1)

	a := resp.Articles[0]
	assert.Nil(t, a.Description)
	assert.Nil(t, a.URLToImage)
	assert.Equal(t, "Unknown Source", a.SourceName())
	require.NotNil(t, a.PublishedAt)
	assert.Equal(t, 2024, a.PublishedAt.Year())
}

func TestRequestURLEscapesQuery(t *testing.T) {
	c := NewClient("https://news.test/v2/everything", "secret", time.Second)

	raw, err := c.RequestURL(Query{Q: "tom & jerry", SortBy: "publishedAt"})
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Contains(t, u.RawQuery, "q=tom+%26+jerry")
	assert.Equal(t, "tom & jerry", u.Query().Get("q"))
	assert.Equal(t, "publishedAt", u.Query().Get("sortBy"))
	assert.Equal(t, "secret", u.Query().Get("apiKey"))
	assert.False(t, u.Query().Has("from"))
}

func TestEverythingRelaysBody(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"bad key"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k1", 5*time.Second)
	body, status, err := c.Everything(context.Background(), Query{Q: "India", From: "2024-05-01"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"status":"error","code":"apiKeyInvalid","message":"bad key"}`, string(body))
	assert.Equal(t, "India", gotQuery.Get("q"))
	assert.Equal(t, "2024-05-01", gotQuery.Get("from"))
	assert.Equal(t, "k1", gotQuery.Get("apiKey"))
}

func TestEverythingRejectsNonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway timeout</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", 5*time.Second)
	_, _, err := c.Everything(context.Background(), Query{Q: "x"})
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestEverythingTransportErrorHidesKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, "topsecret", time.Second)
	_, _, err := c.Everything(context.Background(), Query{Q: "x"})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "topsecret")
}
