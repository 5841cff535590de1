package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docsight/internal/docstore"
	"github.com/dgallion1/docsight/internal/metrics"
	"github.com/dgallion1/docsight/internal/outline"
	"github.com/dgallion1/docsight/internal/parser"
	"github.com/dgallion1/docsight/internal/readability"
	"github.com/dgallion1/docsight/internal/stats"
)

// Worker processes a single document job: parse, infer structure,
// compute readability, and store the analyzed document. Query-dependent
// analysis (persona ranking, topic clustering, redaction) runs later,
// per request, against the stored document.
type Worker struct {
	store             *docstore.Store
	tracker           *stats.Tracker
	log               *slog.Logger
	fallbackPdftotext bool
}

func NewWorker(store *docstore.Store, tracker *stats.Tracker, log *slog.Logger, fallbackPdftotext bool) *Worker {
	return &Worker{
		store:             store,
		tracker:           tracker,
		log:               log,
		fallbackPdftotext: fallbackPdftotext,
	}
}

// Process runs the analysis pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)
	start := time.Now()
	defer func() {
		metrics.DocumentsAnalyzed.WithLabelValues(string(job.Snapshot().Status)).Inc()
	}()

	if ctx.Err() != nil {
		job.AddError(ctx.Err().Error())
		job.SetStatus(StatusFailed, "canceled")
		return
	}

	// Phase 1: Parse.
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if pdfParser, ok := p.(*parser.PDFParser); ok {
		pdfParser.FallbackPdftotext = w.fallbackPdftotext
	}

	doc, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	w.tracker.Observe("parse", start)

	// An explicit upload title wins over anything in the file.
	if job.Title != "" {
		doc.DeclaredTitle = job.Title
	}

	// Dedup on parsed text: identical content means identical analysis.
	contentHash := ContentHashHex([]byte(doc.FullText()))
	job.SetContentHash(contentHash)
	if existingID, ok := w.store.FindByHash(contentHash); ok {
		log.Info("duplicate document, skipping", "existing_doc_id", existingID)
		job.SetStatus(StatusDupSkipped, "dedup")
		return
	}

	// Phase 2: Structure and readability.
	job.SetStatus(StatusAnalyzing, "analyzing")
	analysisStart := time.Now()

	var title string
	var entries []outline.Entry
	if len(doc.Fragments) > 0 {
		title, entries = outline.Classify(doc.Fragments, doc.DeclaredTitle)
	} else {
		entries = outline.FromHeadings(doc.Headings)
		title = outline.Title(doc.DeclaredTitle, entries)
	}

	report := readability.Compute(doc.FullText())
	w.tracker.Observe("analyze", analysisStart)

	job.SetTitle(title)
	job.SetProgress(len(doc.Pages), len(doc.Fragments), len(entries))
	log.Info("analyzed document",
		"pages", len(doc.Pages),
		"fragments", len(doc.Fragments),
		"outline_entries", len(entries),
	)

	// Phase 3: Store.
	job.SetStatus(StatusStoring, "storing")
	w.store.Put(&docstore.Analyzed{
		DocID:       job.DocID,
		Filename:    job.Filename,
		ContentHash: contentHash,
		CreatedAt:   job.CreatedAt,
		Title:       title,
		Document:    doc,
		Outline:     entries,
		Readability: report,
	})

	job.SetStatus(StatusCompleted, "done")
	log.Info("analysis complete", "duration_ms", time.Since(start).Milliseconds())
}
