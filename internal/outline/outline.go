// Package outline infers a document's heading hierarchy (title, H1-H3)
// from the typography of its text fragments. PDFs carry no semantic
// structure, so distinct font sizes are clustered into at most three
// buckets and the largest sizes become the highest heading levels. This
// is a heuristic: the contract is determinism and the filtering rules,
// not accuracy against ground truth.
package outline

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/docsight/internal/document"
)

// Seed fixes the clustering RNG so identical input yields identical output.
const Seed = 0

// DefaultTitle is used when neither metadata nor the outline provides one.
const DefaultTitle = "Untitled Document"

const (
	minCandidateRunes = 5
	// Non-bold fragments below this size never become headings even if
	// their size clustered into a heading bucket.
	minPlainHeadingSize = 10
)

var levels = []string{"H1", "H2", "H3"}

// Entry is one deduplicated, leveled heading.
type Entry struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Classify infers a title and outline from styled text fragments.
// It never fails: degenerate input yields (DefaultTitle, nil).
func Classify(frags []document.TextFragment, declaredTitle string) (string, []Entry) {
	candidates := filterCandidates(frags)
	if len(candidates) == 0 {
		return DefaultTitle, nil
	}

	sizes := distinctSizes(candidates)
	sizeToLevel, err := levelBySize(sizes, Seed)
	if err != nil {
		return DefaultTitle, nil
	}

	seen := make(map[string]bool)
	var entries []Entry
	for _, c := range candidates {
		level, ok := sizeToLevel[c.FontSize]
		if !ok {
			continue
		}
		clean := strings.TrimSpace(c.Text)
		key := strings.ToLower(clean)
		if seen[key] {
			continue
		}
		seen[key] = true
		if !c.Bold && c.FontSize < minPlainHeadingSize {
			continue
		}
		entries = append(entries, Entry{Level: level, Text: clean, Page: c.Page})
	}

	return Title(declaredTitle, entries), entries
}

// Title resolves the document title: declared metadata first, then the
// first outline entry, then the fixed fallback.
func Title(declared string, entries []Entry) string {
	if declared != "" {
		return declared
	}
	if len(entries) > 0 {
		return entries[0].Text
	}
	return DefaultTitle
}

// FromHeadings maps explicitly declared headings (markdown, HTML, DOCX)
// onto outline entries with the same dedup rule as Classify. Levels
// deeper than 3 collapse to H3.
func FromHeadings(headings []document.Heading) []Entry {
	seen := make(map[string]bool)
	var entries []Entry
	for _, h := range headings {
		clean := strings.TrimSpace(h.Text)
		if clean == "" {
			continue
		}
		key := strings.ToLower(clean)
		if seen[key] {
			continue
		}
		seen[key] = true
		level := h.Level
		if level < 1 {
			level = 1
		}
		if level > 3 {
			level = 3
		}
		entries = append(entries, Entry{Level: levels[level-1], Text: clean, Page: h.Page})
	}
	return entries
}

// levelBySize clusters the distinct font sizes into at most three buckets
// and maps each size to a heading level, largest centroid first. Kept as
// a pure function so the clustering method can be swapped without
// touching callers.
func levelBySize(sizes []float64, seed int64) (map[float64]string, error) {
	k := len(sizes)
	if k > len(levels) {
		k = len(levels)
	}

	centroids, clusterOf, err := kmeans1D(sizes, k, seed)
	if err != nil {
		return nil, err
	}

	// Rank clusters by centroid descending. Stable sort keeps the
	// clustering routine's insertion order on centroid ties.
	order := make([]int, len(centroids))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return centroids[order[a]] > centroids[order[b]]
	})
	levelOfCluster := make(map[int]string, len(order))
	for rank, cluster := range order {
		levelOfCluster[cluster] = levels[rank]
	}

	sizeToLevel := make(map[float64]string, len(sizes))
	for i, size := range sizes {
		sizeToLevel[size] = levelOfCluster[clusterOf[i]]
	}
	return sizeToLevel, nil
}

// filterCandidates keeps fragments that plausibly are headings: at least
// five runes and at least one alphanumeric character.
func filterCandidates(frags []document.TextFragment) []document.TextFragment {
	var out []document.TextFragment
	for _, f := range frags {
		text := strings.TrimSpace(f.Text)
		if utf8.RuneCountInString(text) < minCandidateRunes {
			continue
		}
		if !containsAlnum(text) {
			continue
		}
		if f.FontSize <= 0 {
			continue
		}
		out = append(out, f)
	}
	return out
}

// distinctSizes returns unique font sizes in first-seen order, which the
// clustering routine relies on for stable tie-breaking.
func distinctSizes(frags []document.TextFragment) []float64 {
	seen := make(map[float64]bool)
	var sizes []float64
	for _, f := range frags {
		if !seen[f.FontSize] {
			seen[f.FontSize] = true
			sizes = append(sizes, f.FontSize)
		}
	}
	return sizes
}

func containsAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
