// Package api exposes rightsdesk over HTTP using gin.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/poiesic/rightsdesk/library"
	"github.com/poiesic/rightsdesk/scenario"
	"github.com/poiesic/rightsdesk/search"
	"github.com/poiesic/rightsdesk/storage"
)

const shutdownTimeout = 5 * time.Second

// Server is the HTTP front end over a desk's components.
type Server struct {
	content  storage.ContentRepository
	searcher *search.Searcher
	library  *library.Library
	tracker  *scenario.Tracker
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets the server's logger. Nil falls back to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "api")
		return nil
	}
}

// NewServer creates a server over the given components. Every component is
// required; a missing one is ErrComponentRequired.
func NewServer(
	content storage.ContentRepository,
	searcher *search.Searcher,
	lib *library.Library,
	tracker *scenario.Tracker,
	opts ...Option,
) (*Server, error) {
	if content == nil || searcher == nil || lib == nil || tracker == nil {
		return nil, ErrComponentRequired
	}

	s := &Server{
		content:  content,
		searcher: searcher,
		library:  lib,
		tracker:  tracker,
		logger:   slog.Default().With("component", "api"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// SetupRouter builds the gin engine with every route registered.
func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/rights", s.ListRights)
	r.GET("/rights/:id", s.GetRights)
	r.GET("/templates", s.ListTemplates)
	r.POST("/templates/:id/unlock", s.UnlockTemplate)
	r.GET("/templates/:id/download", s.DownloadTemplate)

	r.POST("/search", s.Search)
	r.GET("/suggestions", s.Suggestions)

	r.GET("/saved", s.ListSaved)
	r.POST("/saved/rights/:id", s.SaveRights)
	r.POST("/saved/templates/:id", s.SaveTemplate)
	r.DELETE("/saved/:kind/:id", s.RemoveSaved)

	r.GET("/scenarios", s.ListScenarios)
	r.GET("/scenarios/:name", s.GetScenario)
	r.POST("/scenarios/:name/steps/:step/toggle", s.ToggleStep)
	r.PUT("/scenarios/:name/phase", s.SetPhase)

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
