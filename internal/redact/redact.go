// Package redact scans page text for sensitive content: exact keywords,
// built-in PII patterns, and optional user-supplied regexes. It produces
// a per-page match report and masked page text; drawing redaction
// rectangles on the rendered document is the presentation layer's job.
package redact

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dgallion1/docsight/internal/document"
)

// Patterns are the built-in PII patterns, keyed by display label.
var Patterns = map[string]string{
	"Email Addresses":    `[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`,
	"Phone Numbers":      `(\+?\d{1,3}[\s\-]?)?(\(?\d{2,4}\)?[\s\-]?)?\d{3,5}[\s\-]?\d{4}`,
	"Dates (DD/MM/YYYY)": `\b\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}\b`,
	"URLs":               `https?://[^\s,)]+`,
	"Currency Amounts":   `[$£€₹]\s?\d[\d,]*\.?\d*`,
}

// Request selects what to redact.
type Request struct {
	Keywords    []string `json:"keywords"`     // Exact phrases, case-insensitive
	PatternKeys []string `json:"patterns"`     // Keys into Patterns
	CustomRegex string   `json:"custom_regex"` // Optional; invalid regex is silently ignored
}

// PageCount is the match count for one page.
type PageCount struct {
	Page  int `json:"page"`
	Count int `json:"count"`
}

// RedactedPage is one page's text with matches masked.
type RedactedPage struct {
	Page int    `json:"page"`
	Text string `json:"text"`
}

// Report summarizes a redaction pass.
type Report struct {
	TotalRedactions int            `json:"total_redactions"`
	PerPage         []PageCount    `json:"per_page"`
	PatternsUsed    []string       `json:"patterns_used"`
	Pages           []RedactedPage `json:"pages"`
}

type searchItem struct {
	label string
	re    *regexp.Regexp
}

// Redact masks every match across the document's pages and reports counts.
func Redact(doc *document.Document, req Request) *Report {
	items := buildSearchItems(req)

	used := make(map[string]bool, len(items))
	for _, it := range items {
		used[it.label] = true
	}
	patternsUsed := make([]string, 0, len(used))
	for label := range used {
		patternsUsed = append(patternsUsed, label)
	}
	sort.Strings(patternsUsed)

	report := &Report{
		PerPage:      make([]PageCount, 0, len(doc.Pages)),
		PatternsUsed: patternsUsed,
		Pages:        make([]RedactedPage, 0, len(doc.Pages)),
	}

	for _, page := range doc.Pages {
		text := page.Text
		count := 0
		for _, it := range items {
			text = it.re.ReplaceAllStringFunc(text, func(m string) string {
				count++
				return strings.Repeat("█", len([]rune(m)))
			})
		}
		report.TotalRedactions += count
		report.PerPage = append(report.PerPage, PageCount{Page: page.Number, Count: count})
		report.Pages = append(report.Pages, RedactedPage{Page: page.Number, Text: text})
	}

	return report
}

func buildSearchItems(req Request) []searchItem {
	var items []searchItem

	for _, kw := range req.Keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(kw))
		if err != nil {
			continue
		}
		items = append(items, searchItem{label: "Keyword: " + kw, re: re})
	}

	for _, key := range req.PatternKeys {
		pattern, ok := Patterns[key]
		if !ok {
			continue
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			continue
		}
		items = append(items, searchItem{label: key, re: re})
	}

	if custom := strings.TrimSpace(req.CustomRegex); custom != "" {
		if re, err := regexp.Compile(custom); err == nil {
			items = append(items, searchItem{label: "Custom Pattern", re: re})
		}
		// Invalid custom regex is silently ignored.
	}

	return items
}
