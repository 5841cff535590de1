package pipeline

import (
	"testing"
	"time"
)

func TestJobStatusTransitions(t *testing.T) {
	job := &Job{
		ID:        NewJobID(),
		DocID:     "doc-1",
		Status:    StatusQueued,
		Filename:  "report.pdf",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	phases := []struct {
		status JobStatus
		phase  string
	}{
		{StatusParsing, "parsing"},
		{StatusAnalyzing, "analyzing"},
		{StatusStoring, "storing"},
		{StatusCompleted, "done"},
	}
	for _, p := range phases {
		job.SetStatus(p.status, p.phase)
		snap := job.Snapshot()
		if snap.Status != p.status {
			t.Errorf("expected status %q, got %q", p.status, snap.Status)
		}
		if snap.Phase != p.phase {
			t.Errorf("expected phase %q, got %q", p.phase, snap.Phase)
		}
	}
}

func TestJobProgressAndTitle(t *testing.T) {
	job := &Job{ID: "j1", Status: StatusQueued}

	job.SetProgress(12, 340, 17)
	job.SetTitle("Annual Report 2025")
	job.SetContentHash("abc123")

	snap := job.Snapshot()
	if snap.Progress.TotalPages != 12 {
		t.Errorf("expected 12 pages, got %d", snap.Progress.TotalPages)
	}
	if snap.Progress.TextFragments != 340 {
		t.Errorf("expected 340 fragments, got %d", snap.Progress.TextFragments)
	}
	if snap.Progress.OutlineEntries != 17 {
		t.Errorf("expected 17 outline entries, got %d", snap.Progress.OutlineEntries)
	}
	if snap.Title != "Annual Report 2025" {
		t.Errorf("expected title set, got %q", snap.Title)
	}
	if job.ContentHash != "abc123" {
		t.Errorf("expected content hash set, got %q", job.ContentHash)
	}
}

func TestJobErrors(t *testing.T) {
	job := &Job{ID: "j2", Status: StatusQueued}

	job.AddError("parse: bad header")
	job.AddError("analyze: no text")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "parse: bad header" {
		t.Errorf("unexpected first error: %q", snap.Progress.Errors[0])
	}
}

func TestJobSnapshotErrorsNeverNil(t *testing.T) {
	job := &Job{ID: "j3", Status: StatusQueued}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
}

func TestJobFileData(t *testing.T) {
	job := &Job{ID: "j4"}
	data := []byte("raw file bytes")
	job.SetFileData(data)
	got := job.FileData()
	if string(got) != "raw file bytes" {
		t.Errorf("expected file data round-trip, got %q", got)
	}
}

func TestJobStorePutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "j5", Status: StatusQueued, UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("j5")
	if got == nil {
		t.Fatal("expected to find job")
	}
	if got.ID != "j5" {
		t.Errorf("expected job j5, got %q", got.ID)
	}
	if store.Get("missing") != nil {
		t.Error("expected nil for unknown job")
	}
}

func TestJobStoreCleanup(t *testing.T) {
	store := NewJobStore(10 * time.Millisecond)

	stale := &Job{ID: "stale", UpdatedAt: time.Now().Add(-time.Minute)}
	fresh := &Job{ID: "fresh", UpdatedAt: time.Now()}
	store.Put(stale)
	store.Put(fresh)

	store.Cleanup()

	if store.Get("stale") != nil {
		t.Error("expected stale job to be evicted")
	}
	if store.Get("fresh") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestContentHashHex(t *testing.T) {
	h1 := ContentHashHex([]byte("hello"))
	h2 := ContentHashHex([]byte("hello"))
	h3 := ContentHashHex([]byte("world"))

	if h1 != h2 {
		t.Error("expected identical content to hash identically")
	}
	if h1 == h3 {
		t.Error("expected different content to hash differently")
	}
	if len(h1) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(h1))
	}
}

func TestGenerateULID(t *testing.T) {
	seen := make(map[string]bool)
	var prev string
	for i := 0; i < 1000; i++ {
		id := generateULID()
		if len(id) != 26 {
			t.Fatalf("expected 26-char ULID, got %d (%q)", len(id), id)
		}
		if seen[id] {
			t.Fatalf("duplicate ULID generated: %q", id)
		}
		seen[id] = true
		if prev != "" && id < prev {
			t.Fatalf("ULIDs not sortable by creation: %q < %q", id, prev)
		}
		prev = id
	}
}
