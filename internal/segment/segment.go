package segment

import (
	"strings"
	"unicode"

	"github.com/dgallion1/docsight/internal/document"
)

// PageBlock is one page's cleaned text, the unit of ranking and clustering.
type PageBlock struct {
	Page int    // 1-based page number
	Text string // Whitespace-collapsed page text
}

// PageBlocks extracts one cleaned block per page, dropping pages whose
// trimmed text is shorter than minChars runes.
func PageBlocks(doc *document.Document, minChars int) []PageBlock {
	var blocks []PageBlock
	for _, p := range doc.Pages {
		text := CollapseSpace(p.Text)
		if len([]rune(text)) < minChars {
			continue
		}
		blocks = append(blocks, PageBlock{Page: p.Number, Text: text})
	}
	return blocks
}

// CollapseSpace replaces runs of whitespace with single spaces and trims.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitSentences does basic sentence splitting on end punctuation
// followed by whitespace.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// FirstSentences returns the first n sentences joined by spaces, or the
// whole text truncated to maxRunes when fewer than n sentences exist.
func FirstSentences(text string, n, maxRunes int) string {
	text = CollapseSpace(text)
	if text == "" {
		return ""
	}
	sentences := SplitSentences(text)
	if len(sentences) >= n {
		return strings.TrimSpace(strings.Join(sentences[:n], " "))
	}
	return Truncate(text, maxRunes, "")
}

// FirstLine returns the first line of text, whitespace-collapsed.
func FirstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return CollapseSpace(line)
}

// Truncate cuts s to at most maxRunes runes, appending marker if cut.
func Truncate(s string, maxRunes int, marker string) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + marker
}
