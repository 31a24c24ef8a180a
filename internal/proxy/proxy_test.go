package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Darshan1839/NewsApp/internal/newsapi"
	"github.com/Darshan1839/NewsApp/internal/querylog"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSearcher struct {
	body   []byte
	status int
	err    error
	got    newsapi.Query
}

func (s *stubSearcher) Everything(ctx context.Context, q newsapi.Query) ([]byte, int, error) {
	s.got = q
	return s.body, s.status, s.err
}

type memRecorder struct {
	mu      sync.Mutex
	entries []querylog.Entry
}

func (m *memRecorder) Record(ctx context.Context, e querylog.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func newTestServer(up Searcher, rec Recorder) http.Handler {
	log := zerolog.Nop()
	return New(":0", NewNewsHandler(up, rec, log), log).Handler()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	h.ServeHTTP(w, req)
	return w
}

func TestSearchRelaysBodyVerbatim(t *testing.T) {
	body := `{"status":"ok","totalResults":1,"articles":[{"title":"A","urlToImage":null}]}`
	up := &stubSearcher{body: []byte(body), status: http.StatusOK}
	rec := &memRecorder{}

	w := get(t, newTestServer(up, rec), "/api/news?q=Business&sortBy=publishedAt&from=2024-05-01")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, body, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, newsapi.Query{Q: "Business", From: "2024-05-01", SortBy: "publishedAt"}, up.got)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, "Business", rec.entries[0].Term)
	assert.Equal(t, http.StatusOK, rec.entries[0].Status)
}

func TestSearchDefaultsQuery(t *testing.T) {
	for _, target := range []string{"/api/news", "/api/news?q="} {
		up := &stubSearcher{body: []byte(`{"status":"ok","articles":[]}`), status: http.StatusOK}
		w := get(t, newTestServer(up, nil), target)

		assert.Equal(t, http.StatusOK, w.Code, target)
		assert.Equal(t, DefaultQuery, up.got.Q, target)
	}
}

func TestSearchForwardsWhitespaceQuery(t *testing.T) {
	up := &stubSearcher{body: []byte(`{"status":"ok","articles":[]}`), status: http.StatusOK}
	w := get(t, newTestServer(up, nil), "/api/news?q=%20%20")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "  ", up.got.Q)
}

func TestSearchUpstreamErrorStatusStillRelayed(t *testing.T) {
	body := `{"status":"error","code":"apiKeyMissing","message":"Your API key is missing."}`
	up := &stubSearcher{body: []byte(body), status: http.StatusUnauthorized}
	rec := &memRecorder{}

	w := get(t, newTestServer(up, rec), "/api/news?q=India")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, body, w.Body.String())

	require.Len(t, rec.entries, 1)
	assert.Equal(t, http.StatusUnauthorized, rec.entries[0].Status)
}

func TestSearchFailureReturns500(t *testing.T) {
	up := &stubSearcher{err: errors.New("dial tcp: connection refused")}
	rec := &memRecorder{}

	w := get(t, newTestServer(up, rec), "/api/news?q=India")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Server Error", resp["message"])
	assert.Equal(t, "dial tcp: connection refused", resp["error"])

	require.Len(t, rec.entries, 1)
	assert.Equal(t, http.StatusInternalServerError, rec.entries[0].Status)
	assert.Equal(t, "dial tcp: connection refused", rec.entries[0].ErrMessage)
}

func TestSearchEncodesQueryUpstream(t *testing.T) {
	var rawQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		w.Write([]byte(`{"status":"ok","totalResults":0,"articles":[]}`))
	}))
	defer upstream.Close()

	client := newsapi.NewClient(upstream.URL, "server-key", 5*time.Second)
	w := get(t, newTestServer(client, nil), "/api/news?q=tom%20%26%20jerry")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, rawQuery, "q=tom+%26+jerry")
	assert.NotContains(t, rawQuery, "q=tom & jerry")
	assert.NotContains(t, w.Body.String(), "server-key")
}

func TestSearchInvalidUpstreamJSON(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>oops</html>"))
	}))
	defer upstream.Close()

	client := newsapi.NewClient(upstream.URL, "k", 5*time.Second)
	w := get(t, newTestServer(client, nil), "/api/news?q=x")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), newsapi.ErrInvalidJSON.Error()))
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestServer(&stubSearcher{body: []byte(`{}`), status: 200}, nil)

	w := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())

	get(t, h, "/api/news?q=India")
	w = get(t, h, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "newsapp_proxy_requests_total")
}

func TestRunShutsDownOnCancel(t *testing.T) {
	log := zerolog.Nop()
	srv := New("127.0.0.1:0", NewNewsHandler(&stubSearcher{}, nil, log), log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
