package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/speednorm/pkg/controller"
	"github.com/umputun/speednorm/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/status.go -pkg mocks -skip-ensure -fmt goimports . StatusProvider
//go:generate moq -out mocks/criteria.go -pkg mocks -skip-ensure -fmt goimports . CriteriaManager
//go:generate moq -out mocks/decisions.go -pkg mocks -skip-ensure -fmt goimports . DecisionStore

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	status    StatusProvider
	criteria  CriteriaManager
	decisions DecisionStore
	metrics   http.Handler
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// StatusProvider reports the live state of the rate controller
type StatusProvider interface {
	Status() controller.Status
}

// CriteriaManager reads and edits the classification criteria
type CriteriaManager interface {
	Criteria() domain.Criteria
	Save(ctx context.Context, c domain.Criteria) (domain.Criteria, error)
	AddKeyword(ctx context.Context, list domain.KeywordList, keyword string) (domain.Criteria, error)
	RemoveKeyword(ctx context.Context, list domain.KeywordList, keyword string) (domain.Criteria, error)
	ResetKeywords(ctx context.Context, list domain.KeywordList) (domain.Criteria, error)
}

// DecisionStore gives access to the decision journal
type DecisionStore interface {
	RecentDecisions(ctx context.Context, limit int) ([]domain.Decision, error)
}

// Option customizes the server
type Option func(*Server)

// WithMetrics serves the given handler on /metrics
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// New initializes a new server instance
func New(cfg ConfigProvider, status StatusProvider, criteria CriteriaManager, decisions DecisionStore,
	version string, debug bool, opts ...Option) *Server {
	s := &Server{
		config:    cfg,
		status:    status,
		criteria:  criteria,
		decisions: decisions,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	httpServer := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("speednorm", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024))
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("GET /criteria", s.getCriteriaHandler)
		r.HandleFunc("PUT /criteria", s.putCriteriaHandler)

		r.HandleFunc("POST /keywords/{list}", s.addKeywordHandler)
		r.HandleFunc("POST /keywords/{list}/reset", s.resetKeywordsHandler)
		r.HandleFunc("DELETE /keywords/{list}/{keyword}", s.removeKeywordHandler)

		r.HandleFunc("GET /decisions", s.decisionsHandler)
	})

	if s.metrics != nil {
		s.router.Handle("GET /metrics", s.metrics)
	}
}
