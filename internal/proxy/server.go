package proxy

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the gin engine with graceful shutdown helpers.
type Server struct {
	addr   string
	engine *gin.Engine
	log    zerolog.Logger
}

// New constructs the proxy server with its routes.
func New(addr string, news *NewsHandler, log zerolog.Logger) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(log))
	registerRoutes(engine, news)

	return &Server{addr: addr, engine: engine, log: log}
}

// Handler exposes the engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func registerRoutes(engine *gin.Engine, news *NewsHandler) {
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api", allowAnyOrigin())
	api.GET("/news", news.Search)
}

// allowAnyOrigin lets a browser page on another origin call the API.
func allowAnyOrigin() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Next()
	}
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

// Run starts the HTTP listener and shuts down when ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.addr).Msg("news proxy listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("context cancelled, shutting down news proxy")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
