package parser

import (
	"strings"

	"github.com/dgallion1/docsight/internal/document"
)

// sectionBuilder assembles page-equivalent sections for formats that
// declare their headings (markdown, HTML, DOCX). Each heading starts a
// new section; the heading line itself belongs to the section so the
// section text stays self-describing for ranking and clustering.
type sectionBuilder struct {
	doc     document.Document
	current strings.Builder
}

// heading flushes the open section and starts a new one led by the
// heading text, recording the heading at the page the section becomes.
func (b *sectionBuilder) heading(level int, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	b.flushPage()
	b.doc.Headings = append(b.doc.Headings, document.Heading{
		Level: level,
		Text:  text,
		Page:  len(b.doc.Pages) + 1,
	})
	b.current.WriteString(text)
}

// text appends body text to the open section.
func (b *sectionBuilder) text(t string) {
	t = strings.TrimSpace(t)
	if t == "" {
		return
	}
	if b.current.Len() > 0 {
		b.current.WriteString("\n\n")
	}
	b.current.WriteString(t)
}

// flushPage closes the open section as the next page, if it has content.
func (b *sectionBuilder) flushPage() {
	t := strings.TrimSpace(b.current.String())
	b.current.Reset()
	if t == "" {
		return
	}
	b.doc.Pages = append(b.doc.Pages, document.Page{
		Number: len(b.doc.Pages) + 1,
		Text:   t,
	})
}

// build finalizes and returns the document.
func (b *sectionBuilder) build() *document.Document {
	b.flushPage()
	doc := b.doc
	return &doc
}
