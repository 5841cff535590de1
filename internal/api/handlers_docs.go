package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type documentSummary struct {
	DocID       string    `json:"doc_id"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title"`
	ContentHash string    `json:"content_hash"`
	CreatedAt   time.Time `json:"created_at"`
	TotalPages  int       `json:"total_pages"`
}

// handleListDocuments lists all stored documents, newest first.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs := s.orchestrator.Store().List()
	summaries := make([]documentSummary, 0, len(docs))
	for _, d := range docs {
		summaries = append(summaries, documentSummary{
			DocID:       d.DocID,
			Filename:    d.Filename,
			Title:       d.Title,
			ContentHash: d.ContentHash,
			CreatedAt:   d.CreatedAt,
			TotalPages:  len(d.Document.Pages),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": summaries})
}

// handleGetDocument returns one document's summary plus its analysis.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	d := s.orchestrator.Store().Get(chi.URLParam(r, "docID"))
	if d == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":       d.DocID,
		"filename":     d.Filename,
		"title":        d.Title,
		"content_hash": d.ContentHash,
		"created_at":   d.CreatedAt,
		"total_pages":  len(d.Document.Pages),
		"outline":      d.Outline,
		"readability":  d.Readability,
	})
}

// handleDeleteDocument removes a stored document.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if !s.orchestrator.Store().Delete(docID) {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": docID})
}

// handleOutline returns the document's title and heading outline.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	d := s.orchestrator.Store().Get(chi.URLParam(r, "docID"))
	if d == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"title":   d.Title,
		"outline": d.Outline,
	})
}

// handleReadability returns the document's readability report.
func (s *Server) handleReadability(w http.ResponseWriter, r *http.Request) {
	d := s.orchestrator.Store().Get(chi.URLParam(r, "docID"))
	if d == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d.Readability)
}
