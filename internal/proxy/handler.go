package proxy

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Darshan1839/NewsApp/internal/metrics"
	"github.com/Darshan1839/NewsApp/internal/newsapi"
	"github.com/Darshan1839/NewsApp/internal/querylog"
)

// DefaultQuery is searched when the caller sends no q.
const DefaultQuery = "technology"

// Searcher is the upstream provider.
type Searcher interface {
	Everything(ctx context.Context, q newsapi.Query) ([]byte, int, error)
}

// Recorder persists one line per proxied request.
type Recorder interface {
	Record(ctx context.Context, e querylog.Entry) error
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// NewsHandler serves GET /api/news.
type NewsHandler struct {
	upstream Searcher
	recorder Recorder
	log      zerolog.Logger
}

// NewNewsHandler builds the handler. recorder may be nil.
func NewNewsHandler(upstream Searcher, recorder Recorder, log zerolog.Logger) *NewsHandler {
	return &NewsHandler{
		upstream: upstream,
		recorder: recorder,
		log:      log.With().Str("component", "news-handler").Logger(),
	}
}

func (h *NewsHandler) Search(c *gin.Context) {
	q := newsapi.Query{
		Q:      c.Query("q"),
		From:   c.Query("from"),
		SortBy: c.Query("sortBy"),
	}
	if q.Q == "" {
		q.Q = DefaultQuery
	}

	start := time.Now()
	body, upstreamStatus, err := h.upstream.Everything(c.Request.Context(), q)
	elapsed := time.Since(start)

	if err != nil {
		metrics.RecordUpstream("error", elapsed.Seconds())
		h.log.Error().Err(err).Str("q", q.Q).Msg("upstream search failed")
		h.record(c.Request.Context(), q.Q, http.StatusInternalServerError, elapsed, err.Error())
		metrics.RecordRequest(strconv.Itoa(http.StatusInternalServerError))
		c.JSON(http.StatusInternalServerError, errorResponse{Message: "Server Error", Error: err.Error()})
		return
	}

	metrics.RecordUpstream("ok", elapsed.Seconds())
	metrics.RecordUpstreamStatus(strconv.Itoa(upstreamStatus))
	if upstreamStatus != http.StatusOK {
		h.log.Warn().Int("upstream_status", upstreamStatus).Str("q", q.Q).Msg("upstream returned non-200, relaying body")
	}
	// The log keeps the provider's status so rejected keys count as failures.
	h.record(c.Request.Context(), q.Q, upstreamStatus, elapsed, "")
	metrics.RecordRequest(strconv.Itoa(http.StatusOK))
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (h *NewsHandler) record(ctx context.Context, term string, status int, d time.Duration, errMsg string) {
	if h.recorder == nil {
		return
	}
	err := h.recorder.Record(ctx, querylog.Entry{
		Term:       term,
		Status:     status,
		Duration:   d,
		ServedAt:   time.Now(),
		ErrMessage: errMsg,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("query log write failed")
	}
}
