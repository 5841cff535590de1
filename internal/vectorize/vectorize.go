// Package vectorize builds TF-IDF weighted term vectors over a text
// collection. It is shared by persona ranking and topic clustering so the
// two stay in the same vector space semantics: lowercase word tokens,
// English stop-word removal, unigrams plus bigrams, capped vocabulary,
// smoothed IDF, and L2-normalized vectors.
package vectorize

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Vector is a sparse term-weight vector indexed by vocabulary position.
type Vector map[int]float64

// Indices returns the vector's nonzero indices in ascending order. Every
// reduction over a Vector iterates this order: float summation order must
// be fixed, or map iteration makes identical input give results that
// drift in the last bit and break reproducibility.
func (v Vector) Indices() []int {
	idxs := make([]int, 0, len(v))
	for idx := range v {
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)
	return idxs
}

// Options controls vocabulary construction.
type Options struct {
	MaxFeatures int // Cap on vocabulary size (0 = unlimited)
	NgramMax    int // 1 = unigrams only, 2 = unigrams + bigrams
}

// Model is a fitted vector space: vocabulary, IDF weights, and the
// vectors of the texts it was fitted on.
type Model struct {
	vocab    map[string]int
	terms    []string
	idf      []float64
	vectors  []Vector
	ngramMax int
}

// Fit builds a vector space over texts and vectorizes each of them.
func Fit(texts []string, opts Options) *Model {
	if opts.NgramMax < 1 {
		opts.NgramMax = 1
	}

	// Collection-wide term frequency and document frequency.
	freq := make(map[string]int)
	df := make(map[string]int)
	tokenized := make([][]string, len(texts))
	for i, text := range texts {
		terms := ngrams(tokenize(text), opts.NgramMax)
		tokenized[i] = terms
		seen := make(map[string]bool, len(terms))
		for _, t := range terms {
			freq[t]++
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}

	// Vocabulary: most frequent terms first, term order as tie-break so
	// the cap is deterministic.
	candidates := make([]string, 0, len(freq))
	for t := range freq {
		candidates = append(candidates, t)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if freq[candidates[i]] != freq[candidates[j]] {
			return freq[candidates[i]] > freq[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})
	if opts.MaxFeatures > 0 && len(candidates) > opts.MaxFeatures {
		candidates = candidates[:opts.MaxFeatures]
	}
	sort.Strings(candidates)

	m := &Model{
		vocab:    make(map[string]int, len(candidates)),
		terms:    candidates,
		idf:      make([]float64, len(candidates)),
		ngramMax: opts.NgramMax,
	}
	n := float64(len(texts))
	for i, t := range candidates {
		m.vocab[t] = i
		// Smoothed IDF, never zero, so rare terms still contribute.
		m.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	m.vectors = make([]Vector, len(texts))
	for i, terms := range tokenized {
		m.vectors[i] = m.vectorize(terms)
	}
	return m
}

// Vectors returns the fitted vectors, one per input text, in input order.
func (m *Model) Vectors() []Vector {
	return m.vectors
}

// Terms returns the vocabulary, indexed by vector position.
func (m *Model) Terms() []string {
	return m.terms
}

// Dims returns the vocabulary size.
func (m *Model) Dims() int {
	return len(m.terms)
}

// Transform projects text into the fitted space. Out-of-vocabulary terms
// contribute nothing; a fully out-of-vocabulary text yields an empty vector.
func (m *Model) Transform(text string) Vector {
	return m.vectorize(ngrams(tokenize(text), m.ngramMax))
}

func (m *Model) vectorize(terms []string) Vector {
	v := make(Vector)
	for _, t := range terms {
		if idx, ok := m.vocab[t]; ok {
			v[idx]++
		}
	}
	idxs := v.Indices()
	var norm float64
	for _, idx := range idxs {
		v[idx] *= m.idf[idx]
		norm += v[idx] * v[idx]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for _, idx := range idxs {
			v[idx] /= norm
		}
	}
	return v
}

// Cosine returns the cosine similarity of two L2-normalized vectors,
// which reduces to their dot product.
func Cosine(a, b Vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for _, idx := range a.Indices() {
		dot += a[idx] * b[idx]
	}
	return dot
}

// tokenize lowercases and splits text into word tokens of at least two
// characters, dropping stop words.
func tokenize(text string) []string {
	text = strings.ToLower(text)
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		tok := current.String()
		current.Reset()
		if len([]rune(tok)) < 2 || stopWords[tok] {
			return
		}
		tokens = append(tokens, tok)
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// ngrams expands tokens into unigrams plus adjacent n-grams up to max.
func ngrams(tokens []string, max int) []string {
	if max <= 1 {
		return tokens
	}
	out := make([]string, 0, len(tokens)*2)
	out = append(out, tokens...)
	for n := 2; n <= max; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}
