package docstore

import (
	"fmt"
	"testing"
	"time"

	"github.com/dgallion1/docsight/internal/document"
)

func analyzed(id, hash string, created time.Time) *Analyzed {
	return &Analyzed{
		DocID:       id,
		Filename:    id + ".pdf",
		ContentHash: hash,
		CreatedAt:   created,
		Title:       "Title " + id,
		Document:    &document.Document{},
	}
}

func TestStorePutGet(t *testing.T) {
	s := New(time.Hour)
	s.Put(analyzed("d1", "h1", time.Now()))

	got := s.Get("d1")
	if got == nil {
		t.Fatal("expected to find document")
	}
	if got.Title != "Title d1" {
		t.Errorf("unexpected title: %q", got.Title)
	}
	if s.Get("missing") != nil {
		t.Error("expected nil for unknown document")
	}
}

func TestStoreFindByHash(t *testing.T) {
	s := New(time.Hour)
	s.Put(analyzed("d1", "h1", time.Now()))

	id, ok := s.FindByHash("h1")
	if !ok || id != "d1" {
		t.Errorf("expected (d1, true), got (%q, %v)", id, ok)
	}
	if _, ok := s.FindByHash("unknown"); ok {
		t.Error("expected miss for unknown hash")
	}
}

func TestStoreDelete(t *testing.T) {
	s := New(time.Hour)
	s.Put(analyzed("d1", "h1", time.Now()))

	if !s.Delete("d1") {
		t.Fatal("expected delete to succeed")
	}
	if s.Get("d1") != nil {
		t.Error("document still present after delete")
	}
	if _, ok := s.FindByHash("h1"); ok {
		t.Error("hash index entry still present after delete")
	}
	if s.Delete("d1") {
		t.Error("expected second delete to report missing")
	}
}

func TestStoreReplaceSameID(t *testing.T) {
	s := New(time.Hour)
	s.Put(analyzed("d1", "h1", time.Now()))
	s.Put(analyzed("d1", "h2", time.Now()))

	if _, ok := s.FindByHash("h1"); ok {
		t.Error("expected old hash entry removed on replace")
	}
	if id, ok := s.FindByHash("h2"); !ok || id != "d1" {
		t.Errorf("expected new hash entry, got (%q, %v)", id, ok)
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	s := New(time.Hour)
	base := time.Now()
	for i := 0; i < 3; i++ {
		s.Put(analyzed(fmt.Sprintf("d%d", i), fmt.Sprintf("h%d", i), base.Add(time.Duration(i)*time.Minute)))
	}

	list := s.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(list))
	}
	want := []string{"d2", "d1", "d0"}
	for i, w := range want {
		if list[i].DocID != w {
			t.Errorf("position %d: expected %s, got %s", i, w, list[i].DocID)
		}
	}
}

func TestStoreCleanup(t *testing.T) {
	s := New(time.Minute)
	s.Put(analyzed("old", "h1", time.Now().Add(-time.Hour)))
	s.Put(analyzed("new", "h2", time.Now()))

	s.Cleanup()

	if s.Get("old") != nil {
		t.Error("expected expired document evicted")
	}
	if _, ok := s.FindByHash("h1"); ok {
		t.Error("expected expired hash entry evicted")
	}
	if s.Get("new") == nil {
		t.Error("expected fresh document to survive")
	}
}
