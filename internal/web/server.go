// Package web serves the Moodify pages and the JSON song API.
package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/justestif/moodify/internal/atlas"
	"github.com/justestif/moodify/internal/catalog"
	"github.com/justestif/moodify/internal/classifier"
	"github.com/justestif/moodify/internal/logging"
	"github.com/justestif/moodify/internal/recommend"
	"github.com/justestif/moodify/internal/songs"
)

// DefaultAddr is the default server address.
const DefaultAddr = ":8080"

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr        string
	TemplatesFS fs.FS
	StaticFS    fs.FS

	Service    *recommend.Service
	Classifier classifier.Classifier // serves POST /analyze_mood
	Catalog    *catalog.Catalog      // serves /get_songs, /browse and /atlas
	History    recommend.History
	Atlas      atlas.Config
	Logger     *zap.Logger
}

// Server is the HTTP server for the web application.
type Server struct {
	router   chi.Router
	server   *http.Server
	handlers *Handlers
	logger   *zap.Logger
}

// NewServer creates a new web server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Service == nil || cfg.Classifier == nil || cfg.Catalog == nil {
		return nil, errors.New("service, classifier and catalog are required")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.History == nil {
		cfg.History = recommend.NewMemoryHistory(recommend.DefaultHistorySize)
	}

	templates, err := NewTemplates(cfg.TemplatesFS)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	handlers := &Handlers{
		service:    cfg.Service,
		classifier: cfg.Classifier,
		finder:     songs.NewLocalFinder(cfg.Catalog),
		catalog:    cfg.Catalog,
		history:    cfg.History,
		atlasCfg:   cfg.Atlas,
		templates:  templates,
		logger:     cfg.Logger,
	}

	s := &Server{
		router:   chi.NewRouter(),
		handlers: handlers,
		logger:   cfg.Logger,
	}

	s.setupMiddleware()
	s.setupRoutes(cfg.StaticFS)

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(logging.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes(staticFS fs.FS) {
	if staticFS != nil {
		fileServer := http.FileServer(http.FS(staticFS))
		s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	}

	// Pages
	s.router.Get("/", s.handlers.Home)
	s.router.Post("/recommend", s.handlers.Recommend)
	s.router.Get("/browse", s.handlers.Browse)
	s.router.Get("/atlas", s.handlers.Atlas)

	// Song service API
	s.router.Post("/analyze_mood", s.handlers.AnalyzeMood)
	s.router.Get("/get_songs/{emotion}", s.handlers.GetSongs)
	s.router.Get("/api/recommendations", s.handlers.RecentRecommendations)

	s.router.Get("/healthz", s.handlers.Healthz)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and handles graceful shutdown on interrupt signals.
func (s *Server) Run() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		s.logger.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}
