// Package docstore holds analyzed documents between requests so persona
// ranking, clustering, and redaction can run against an already parsed
// document without re-uploading. Purely in-memory with TTL eviction:
// nothing survives a restart, matching the stateless-per-document design.
package docstore

import (
	"sort"
	"sync"
	"time"

	"github.com/dgallion1/docsight/internal/document"
	"github.com/dgallion1/docsight/internal/outline"
	"github.com/dgallion1/docsight/internal/readability"
)

// Analyzed is a stored document plus its query-independent analysis.
type Analyzed struct {
	DocID       string
	Filename    string
	ContentHash string
	CreatedAt   time.Time

	Title       string
	Document    *document.Document
	Outline     []outline.Entry
	Readability readability.Report
}

// Store is a thread-safe in-memory registry of analyzed documents.
type Store struct {
	mu     sync.Mutex
	docs   map[string]*Analyzed
	byHash map[string]string // content hash -> doc ID
	ttl    time.Duration
}

func New(ttl time.Duration) *Store {
	return &Store{
		docs:   make(map[string]*Analyzed),
		byHash: make(map[string]string),
		ttl:    ttl,
	}
}

// Put stores an analyzed document, replacing any previous entry with the
// same ID.
func (s *Store) Put(doc *Analyzed) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.docs[doc.DocID]; ok {
		delete(s.byHash, old.ContentHash)
	}
	s.docs[doc.DocID] = doc
	if doc.ContentHash != "" {
		s.byHash[doc.ContentHash] = doc.DocID
	}
}

// Get returns the document with the given ID, or nil.
func (s *Store) Get(docID string) *Analyzed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[docID]
}

// FindByHash returns the ID of an already-stored document with the same
// content hash, for upload dedup.
func (s *Store) FindByHash(hash string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byHash[hash]
	return id, ok
}

// Delete removes a document. Returns whether it existed.
func (s *Store) Delete(docID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[docID]
	if !ok {
		return false
	}
	delete(s.docs, docID)
	delete(s.byHash, doc.ContentHash)
	return true
}

// List returns all stored documents, newest first.
func (s *Store) List() []*Analyzed {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Analyzed, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].DocID < out[j].DocID
	})
	return out
}

// Cleanup evicts documents older than the TTL.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.ttl)
	for id, d := range s.docs {
		if d.CreatedAt.Before(cutoff) {
			delete(s.docs, id)
			delete(s.byHash, d.ContentHash)
		}
	}
}
