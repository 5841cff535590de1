// Package readability computes reading-level metrics (Flesch-Kincaid,
// Gunning Fog, Coleman-Liau), estimated reading time, and basic text
// statistics. All formulas are the standard published ones; syllable
// counts are estimated from vowel groups.
package readability

import (
	"math"
	"strings"
	"unicode"

	"github.com/dgallion1/docsight/internal/segment"
)

// Words-per-minute assumed for non-fiction reading time.
const readingWPM = 200

// Report carries all computed metrics for one text.
type Report struct {
	WordCount           int     `json:"word_count"`
	SentenceCount       int     `json:"sentence_count"`
	SyllableCount       int     `json:"syllable_count"`
	ComplexWordCount    int     `json:"complex_word_count"`
	AvgSentenceLength   float64 `json:"avg_sentence_length"`
	AvgSyllablesPerWord float64 `json:"avg_syllables_per_word"`
	FleschReadingEase   float64 `json:"flesch_reading_ease"`
	FleschKincaidGrade  float64 `json:"flesch_kincaid_grade"`
	GunningFogIndex     float64 `json:"gunning_fog_index"`
	ColemanLiauIndex    float64 `json:"coleman_liau_index"`
	ReadingTimeMinutes  float64 `json:"reading_time_minutes"`
	ReadingLevel        string  `json:"reading_level"`
}

// Compute calculates readability metrics for text. Empty or word-free
// input yields a zeroed report with level "N/A".
func Compute(text string) Report {
	if strings.TrimSpace(text) == "" {
		return emptyReport()
	}

	sentences := splitSentences(text)
	words := splitWords(text)
	sentenceCount := len(sentences)
	wordCount := len(words)
	if wordCount == 0 || sentenceCount == 0 {
		return emptyReport()
	}

	var totalSyllables, complexWords, totalChars int
	for _, w := range words {
		s := countSyllables(w)
		totalSyllables += s
		if s >= 3 {
			complexWords++
		}
		totalChars += len(w)
	}

	asl := float64(wordCount) / float64(sentenceCount)
	asw := float64(totalSyllables) / float64(wordCount)

	fleschRE := 206.835 - 1.015*asl - 84.6*asw
	fleschRE = round1(clamp(fleschRE, 0, 100))

	fkGrade := round1(math.Max(0, 0.39*asl+11.8*asw-15.59))

	fog := round1(math.Max(0, 0.4*(asl+100*float64(complexWords)/float64(wordCount))))

	// L = avg letters per 100 words, S = avg sentences per 100 words.
	l := float64(totalChars) / float64(wordCount) * 100
	s := float64(sentenceCount) / float64(wordCount) * 100
	cli := round1(math.Max(0, 0.0588*l-0.296*s-15.8))

	return Report{
		WordCount:           wordCount,
		SentenceCount:       sentenceCount,
		SyllableCount:       totalSyllables,
		ComplexWordCount:    complexWords,
		AvgSentenceLength:   round1(asl),
		AvgSyllablesPerWord: round2(asw),
		FleschReadingEase:   fleschRE,
		FleschKincaidGrade:  fkGrade,
		GunningFogIndex:     fog,
		ColemanLiauIndex:    cli,
		ReadingTimeMinutes:  round1(float64(wordCount) / readingWPM),
		ReadingLevel:        readingLevel(fleschRE),
	}
}

// readingLevel maps a Flesch Reading Ease score to a display label.
func readingLevel(flesch float64) string {
	switch {
	case flesch >= 90:
		return "Very Easy (5th Grade)"
	case flesch >= 80:
		return "Easy (6th Grade)"
	case flesch >= 70:
		return "Fairly Easy (7th Grade)"
	case flesch >= 60:
		return "Standard (8th-9th Grade)"
	case flesch >= 50:
		return "Fairly Difficult (10th-12th Grade)"
	case flesch >= 30:
		return "Difficult (College Level)"
	default:
		return "Very Difficult (Graduate Level)"
	}
}

// countSyllables estimates the syllable count of an English word by
// stripping a trailing silent 'e' and counting vowel groups.
func countSyllables(word string) int {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return 0
	}
	if strings.HasSuffix(word, "e") && len(word) > 2 {
		word = word[:len(word)-1]
	}
	count := 0
	inGroup := false
	for _, r := range word {
		if isVowel(r) {
			if !inGroup {
				count++
				inGroup = true
			}
		} else {
			inGroup = false
		}
	}
	if count < 1 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// splitSentences splits on end punctuation boundaries, dropping trivially
// short fragments.
func splitSentences(text string) []string {
	var out []string
	for _, s := range segment.SplitSentences(strings.TrimSpace(text)) {
		if len(strings.TrimSpace(s)) > 2 {
			out = append(out, s)
		}
	}
	return out
}

// splitWords extracts purely alphabetic tokens.
func splitWords(text string) []string {
	var words []string
	var current strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) && r < 128 {
			current.WriteRune(r)
		} else if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	return words
}

func emptyReport() Report {
	return Report{ReadingLevel: "N/A"}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
