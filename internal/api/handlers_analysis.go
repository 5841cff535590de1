package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dgallion1/docsight/internal/persona"
	"github.com/dgallion1/docsight/internal/redact"
	"github.com/dgallion1/docsight/internal/segment"
	"github.com/dgallion1/docsight/internal/topics"
	"github.com/go-chi/chi/v5"
)

type personaRequest struct {
	Persona  string `json:"persona"`
	Task     string `json:"task"`
	TopK     int    `json:"top_k"`
	MinChars *int   `json:"min_chars"`
}

// handlePersona ranks the document's pages against a persona/task query.
func (s *Server) handlePersona(w http.ResponseWriter, r *http.Request) {
	d := s.orchestrator.Store().Get(chi.URLParam(r, "docID"))
	if d == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	var req personaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	topK := req.TopK
	if topK <= 0 {
		topK = s.cfg.DefaultTopK
	}
	minChars := s.cfg.DefaultMinChars
	if req.MinChars != nil && *req.MinChars >= 0 {
		minChars = *req.MinChars
	}

	blocks := segment.PageBlocks(d.Document, 0)
	result, err := persona.Rank(d.Filename, blocks, persona.Query{
		Persona: req.Persona,
		Task:    req.Task,
	}, topK, minChars)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleClusters groups the document's pages into topic clusters.
func (s *Server) handleClusters(w http.ResponseWriter, r *http.Request) {
	d := s.orchestrator.Store().Get(chi.URLParam(r, "docID"))
	if d == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	nClusters := queryInt(r, "n_clusters", s.cfg.DefaultClusters)
	if nClusters < 1 {
		jsonError(w, "n_clusters must be >= 1", http.StatusBadRequest)
		return
	}
	minChars := queryInt(r, "min_chars", s.cfg.DefaultMinChars)
	if minChars < 0 {
		jsonError(w, "min_chars must be >= 0", http.StatusBadRequest)
		return
	}

	blocks := segment.PageBlocks(d.Document, 0)
	result, err := topics.Cluster(blocks, len(d.Document.Pages), nClusters, minChars)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleRedact scans the document for sensitive content and returns
// masked page text with per-page match counts.
func (s *Server) handleRedact(w http.ResponseWriter, r *http.Request) {
	d := s.orchestrator.Store().Get(chi.URLParam(r, "docID"))
	if d == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	var req redact.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	report := redact.Redact(d.Document, req)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
