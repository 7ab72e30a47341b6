package server

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ziadkadry99/fstvl/internal/history"
	"github.com/ziadkadry99/fstvl/internal/render"
	"github.com/ziadkadry99/fstvl/internal/site"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins so other sites can embed fragments
}

// Server renders the festival page fresh on every request.
type Server struct {
	cfg        Config
	generator  *site.SiteGenerator
	renderer   *render.Renderer
	runs       *history.Store
	logger     *zap.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server. runs may be nil, in which case the history API is
// not mounted.
func New(cfg Config, generator *site.SiteGenerator, renderer *render.Renderer, runs *history.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:       cfg,
		generator: generator,
		renderer:  renderer,
		runs:      runs,
		logger:    logger,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", s.handlePage)
	r.Get("/fragments/{section}", s.handleFragment)
	r.Get("/style.css", asset("text/css; charset=utf-8", render.Stylesheet()))
	r.Get("/script.js", asset("text/javascript; charset=utf-8", render.Script()))

	if s.runs != nil {
		history.RegisterRoutes(r, s.runs)
	}

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// ServerConfig returns the server configuration.
func (s *Server) ServerConfig() Config { return s.cfg }

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	res, err := s.generator.Render(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	menu := render.MenuFromQuery(r.URL.Query().Get(render.MenuParam))

	var buf bytes.Buffer
	if err := s.renderer.WritePage(&buf, s.generator.Page(res, menu)); err != nil {
		s.serverError(w, r, err)
		return
	}
	writeHTML(w, buf.Bytes())
}

func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	section, err := site.ParseSection(chi.URLParam(r, "section"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	frag, err := s.generator.RenderSection(r.Context(), section)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	w.Header().Set("X-Fstvl-Container", section.Container())
	writeHTML(w, []byte(frag.HTML))
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("Render failed",
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func asset(contentType string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Write(body)
	}
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("fstvl server listening", zap.String("addr", addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
