package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/docsight/internal/config"
	"github.com/dgallion1/docsight/internal/metrics"
	"github.com/dgallion1/docsight/internal/pipeline"
	"github.com/dgallion1/docsight/internal/stats"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP API server for docsight.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	tracker      *stats.Tracker
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, tracker *stats.Tracker, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		tracker:      tracker,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(metrics.Middleware())

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/documents", s.handleUpload)
		r.Post("/api/documents/batch", s.handleBatchUpload)
		r.Get("/api/documents", s.handleListDocuments)
		r.Get("/api/documents/{docID}", s.handleGetDocument)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)

		r.Get("/api/jobs/{jobID}", s.handleJobStatus)

		r.Get("/api/documents/{docID}/outline", s.handleOutline)
		r.Get("/api/documents/{docID}/readability", s.handleReadability)
		r.Post("/api/documents/{docID}/persona", s.handlePersona)
		r.Get("/api/documents/{docID}/clusters", s.handleClusters)
		r.Post("/api/documents/{docID}/redact", s.handleRedact)

		r.Get("/api/stats/analysis", s.handleAnalysisStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
