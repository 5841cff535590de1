package parser

import (
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"strings"

	"github.com/dgallion1/docsight/internal/document"
	pdflib "github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// Text runs on the same baseline (within this Y tolerance) are joined
// into one fragment, mirroring line grouping in PDF viewers.
const lineYTolerance = 0.5

// PDFParser handles PDF files. It extracts per-page plain text plus
// styled fragments (font size, boldness) for heading inference, and
// falls back to pdftotext for plain text if the Go library fails.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	// The pdf library requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docsight-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	doc, err := extractPDF(tmpPath)
	if err != nil && p.FallbackPdftotext {
		doc, err = extractPdftotext(tmpPath)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf: %w", err)
	}

	return doc, nil
}

// extractPDF reads pages, styled fragments, and metadata title. The pdf
// library panics on some malformed files; that is converted to an error
// so the pdftotext fallback can take over.
func extractPDF(path string) (doc *document.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("pdf library panic: %v", r)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc = &document.Document{
		DeclaredTitle: pdfTitle(reader),
	}

	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			text = ""
		}
		doc.Pages = append(doc.Pages, document.Page{
			Number: i,
			Text:   strings.TrimSpace(text),
		})

		doc.Fragments = append(doc.Fragments, pageFragments(page, i)...)
	}

	return doc, nil
}

// pageFragments groups a page's positioned text runs into line-level
// fragments carrying the typography needed for heading inference.
func pageFragments(page pdflib.Page, pageNum int) []document.TextFragment {
	content := page.Content()

	var frags []document.TextFragment
	var line strings.Builder
	var lineY, lineSize float64
	var lineBold, open bool

	flush := func() {
		if !open {
			return
		}
		open = false
		text := norm.NFC.String(strings.Join(strings.Fields(line.String()), " "))
		line.Reset()
		if text == "" {
			return
		}
		frags = append(frags, document.TextFragment{
			Text:     text,
			FontSize: lineSize,
			Bold:     lineBold,
			Page:     pageNum,
		})
	}

	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		if open && math.Abs(t.Y-lineY) > lineYTolerance {
			flush()
		}
		if !open {
			open = true
			lineY = t.Y
			// First run of the line decides the line's typography.
			lineSize = t.FontSize
			lineBold = strings.Contains(strings.ToLower(t.Font), "bold")
		}
		line.WriteString(t.S)
	}
	flush()

	return frags
}

// pdfTitle reads the declared title from the document info dictionary.
func pdfTitle(reader *pdflib.Reader) (title string) {
	defer func() {
		if recover() != nil {
			title = ""
		}
	}()
	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return ""
	}
	return strings.TrimSpace(info.Key("Title").Text())
}

// extractPdftotext shells out for plain text only; no styled fragments
// are available on this path, so heading inference degrades gracefully.
func extractPdftotext(path string) (*document.Document, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}

	doc := &document.Document{}
	for i, pageText := range strings.Split(string(out), "\f") {
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		doc.Pages = append(doc.Pages, document.Page{Number: i + 1, Text: pageText})
	}
	return doc, nil
}
