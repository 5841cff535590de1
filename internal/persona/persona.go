// Package persona ranks page-level text blocks against a free-text
// persona/task query using TF-IDF cosine similarity. Fully offline; no
// model state survives a call.
package persona

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dgallion1/docsight/internal/segment"
	"github.com/dgallion1/docsight/internal/vectorize"
)

const (
	// MaxFeatures bounds memory on pathological inputs.
	MaxFeatures = 30000

	maxTitleRunes    = 110
	maxRefinedRunes  = 4000
	refinedSentences = 2

	defaultPersona = "Generic User"

	warnNoBlocks = "No readable text blocks were extracted (document may be scanned/images or protected)."
)

// Query is the persona and task that together form the relevance query.
type Query struct {
	Persona string
	Task    string
}

// Section is one ranked block for the extracted_sections list.
type Section struct {
	Document       string  `json:"document"`
	SectionTitle   string  `json:"section_title"`
	ImportanceRank int     `json:"importance_rank"`
	PageNumber     int     `json:"page_number"`
	Score          float64 `json:"score"`
}

// Analysis is the refined-text counterpart of a Section, in rank order.
type Analysis struct {
	Document    string  `json:"document"`
	RefinedText string  `json:"refined_text"`
	PageNumber  int     `json:"page_number"`
	Score       float64 `json:"score"`
}

// Metadata echoes the query for downstream display and export.
type Metadata struct {
	Persona        string   `json:"persona"`
	JobToBeDone    string   `json:"job_to_be_done"`
	InputDocuments []string `json:"input_documents"`
}

// Result is the full ranking outcome. Degenerate input is not an error:
// the lists are empty and Warning says why.
type Result struct {
	Metadata           Metadata   `json:"metadata"`
	ExtractedSections  []Section  `json:"extracted_sections"`
	SubsectionAnalysis []Analysis `json:"subsection_analysis"`
	Warning            string     `json:"warning,omitempty"`
}

type rankedBlock struct {
	page  int
	text  string
	score float64
}

// Rank scores blocks against the query and returns the top ranked
// sections with extractive summaries. topK < 1 is a programmer error.
func Rank(docName string, blocks []segment.PageBlock, q Query, topK, minChars int) (*Result, error) {
	if topK < 1 {
		return nil, fmt.Errorf("persona: top_k must be >= 1, got %d", topK)
	}
	if minChars < 0 {
		return nil, fmt.Errorf("persona: min_chars must be >= 0, got %d", minChars)
	}

	personaName := strings.TrimSpace(q.Persona)
	if personaName == "" {
		personaName = defaultPersona
	}
	task := strings.TrimSpace(q.Task)

	res := &Result{
		Metadata: Metadata{
			Persona:        personaName,
			JobToBeDone:    task,
			InputDocuments: []string{docName},
		},
		ExtractedSections:  []Section{},
		SubsectionAnalysis: []Analysis{},
	}

	var surviving []segment.PageBlock
	for _, b := range blocks {
		if len([]rune(strings.TrimSpace(b.Text))) >= minChars {
			surviving = append(surviving, b)
		}
	}
	if len(surviving) == 0 {
		res.Warning = warnNoBlocks
		return res, nil
	}

	texts := make([]string, len(surviving))
	for i, b := range surviving {
		texts[i] = segment.CollapseSpace(b.Text)
	}

	model := vectorize.Fit(texts, vectorize.Options{MaxFeatures: MaxFeatures, NgramMax: 2})
	query := model.Transform(segment.CollapseSpace(personaName + " " + task))

	ranked := make([]rankedBlock, len(surviving))
	for i, v := range model.Vectors() {
		ranked[i] = rankedBlock{
			page:  surviving[i].Page,
			text:  texts[i],
			score: vectorize.Cosine(v, query),
		}
	}

	// Stable sort keeps original page order on exact score ties.
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})
	if topK < len(ranked) {
		ranked = ranked[:topK]
	}

	for i, b := range ranked {
		score := round6(b.score)
		res.ExtractedSections = append(res.ExtractedSections, Section{
			Document:       docName,
			SectionTitle:   sectionTitle(b.text, b.page),
			ImportanceRank: i + 1,
			PageNumber:     b.page,
			Score:          score,
		})
		res.SubsectionAnalysis = append(res.SubsectionAnalysis, Analysis{
			Document:    docName,
			RefinedText: segment.FirstSentences(b.text, refinedSentences, maxRefinedRunes),
			PageNumber:  b.page,
			Score:       score,
		})
	}

	return res, nil
}

// sectionTitle derives a display title from the block's first line.
func sectionTitle(text string, page int) string {
	title := segment.Truncate(segment.FirstLine(text), maxTitleRunes, "…")
	if title == "" {
		return fmt.Sprintf("Relevant Section (Page %d)", page)
	}
	return title
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
