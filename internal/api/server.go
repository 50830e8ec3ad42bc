package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/candidex/screening-engine/internal/assessment"
	"github.com/candidex/screening-engine/internal/config"
	"github.com/candidex/screening-engine/internal/storage"
)

// Server represents the HTTP API server
type Server struct {
	config  config.ServerConfig
	router  *chi.Mux
	manager *assessment.Manager
	repo    storage.Repository
}

// NewServer creates a new API server
func NewServer(
	cfg config.ServerConfig,
	corsCfg config.CORSConfig,
	manager *assessment.Manager,
	repo storage.Repository,
) *Server {
	s := &Server{
		config:  cfg,
		manager: manager,
		repo:    repo,
	}
	s.setupRouter(corsCfg)
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter(corsCfg config.CORSConfig) {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsCfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (outside the API prefix - public)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Route("/companies", func(r chi.Router) {
			r.Post("/", s.handleCreateCompany)
			r.Get("/", s.handleListCompanies)
			r.Get("/{id}/assessments", s.handleListCompanyAssessments)
		})

		r.Route("/assessments", func(r chi.Router) {
			r.Post("/", s.handleCreateAssessment)
			r.Get("/{id}", s.handleGetAssessment)
			r.Post("/{id}/submit", s.handleSubmitAssessment)
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
