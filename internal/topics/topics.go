// Package topics groups a document's pages into topic clusters and
// projects them onto two dimensions for scatter-plot visualization.
// Query-independent: the same document always clusters the same way.
package topics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dgallion1/docsight/internal/segment"
	"github.com/dgallion1/docsight/internal/vectorize"
)

const (
	// Seed fixes clustering and projection randomness.
	Seed = 42

	// MaxFeatures keeps the vector space small; page-level topic
	// separation does not need the ranker's larger vocabulary.
	MaxFeatures = 5000

	previewRunes  = 100
	labelTopTerms = 3

	warnTooFewPages = "Not enough text-rich pages (need at least 3) for clustering."
)

// Point is one page positioned for plotting.
type Point struct {
	PageNumber int     `json:"page_number"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Cluster    int     `json:"cluster"`
	Label      string  `json:"label"`
	Preview    string  `json:"preview"`
}

// Result is the clustering outcome. Too few text-rich pages is not an
// error: Pages is empty and Warning says why.
type Result struct {
	Pages         []Point        `json:"pages"`
	NClusters     int            `json:"n_clusters"`
	ClusterLabels map[int]string `json:"cluster_labels"`
	TotalPages    int            `json:"total_pages"`
	IncludedPages int            `json:"included_pages"`
	Warning       string         `json:"warning,omitempty"`
}

// Cluster groups page blocks by topical similarity. nClusters < 1 is a
// programmer error; everything else degrades to a valid Result.
func Cluster(blocks []segment.PageBlock, totalPages, nClusters, minChars int) (*Result, error) {
	if nClusters < 1 {
		return nil, fmt.Errorf("topics: n_clusters must be >= 1, got %d", nClusters)
	}
	if minChars < 0 {
		return nil, fmt.Errorf("topics: min_chars must be >= 0, got %d", minChars)
	}

	var surviving []segment.PageBlock
	for _, b := range blocks {
		text := segment.CollapseSpace(b.Text)
		if len([]rune(text)) >= minChars {
			surviving = append(surviving, segment.PageBlock{Page: b.Page, Text: text})
		}
	}

	if len(surviving) < 3 {
		return &Result{
			Pages:         []Point{},
			ClusterLabels: map[int]string{},
			TotalPages:    totalPages,
			IncludedPages: len(surviving),
			Warning:       warnTooFewPages,
		}, nil
	}

	texts := make([]string, len(surviving))
	for i, b := range surviving {
		texts[i] = b.Text
	}
	model := vectorize.Fit(texts, vectorize.Options{MaxFeatures: MaxFeatures, NgramMax: 2})
	vectors := model.Vectors()

	k := nClusters
	if k > len(surviving) {
		k = len(surviving)
	}
	if k < 2 {
		k = 2
	}

	labels, err := kmeansSparse(vectors, model.Dims(), k, Seed)
	if err != nil {
		return nil, fmt.Errorf("cluster pages: %w", err)
	}

	coords := project2D(vectors, model.Dims(), Seed)
	clusterLabels := labelClusters(vectors, labels, k, model.Terms())

	points := make([]Point, len(surviving))
	for i, b := range surviving {
		points[i] = Point{
			PageNumber: b.Page,
			X:          coords[i][0],
			Y:          coords[i][1],
			Cluster:    labels[i],
			Label:      clusterLabels[labels[i]],
			Preview:    segment.Truncate(b.Text, previewRunes, "..."),
		}
	}

	return &Result{
		Pages:         points,
		NClusters:     k,
		ClusterLabels: clusterLabels,
		TotalPages:    totalPages,
		IncludedPages: len(surviving),
	}, nil
}

// labelClusters names each cluster by its highest-weighted mean terms.
func labelClusters(vectors []vectorize.Vector, labels []int, k int, terms []string) map[int]string {
	out := make(map[int]string, k)
	for c := 0; c < k; c++ {
		sums := make(map[int]float64)
		count := 0
		for i, l := range labels {
			if l != c {
				continue
			}
			count++
			for idx, w := range vectors[i] {
				sums[idx] += w
			}
		}
		if count == 0 {
			out[c] = "Empty"
			continue
		}

		type termWeight struct {
			idx    int
			weight float64
		}
		idxs := make([]int, 0, len(sums))
		for idx := range sums {
			idxs = append(idxs, idx)
		}
		sort.Ints(idxs)
		weights := make([]termWeight, 0, len(idxs))
		for _, idx := range idxs {
			weights = append(weights, termWeight{idx: idx, weight: sums[idx] / float64(count)})
		}
		sort.Slice(weights, func(a, b int) bool {
			if weights[a].weight != weights[b].weight {
				return weights[a].weight > weights[b].weight
			}
			return weights[a].idx < weights[b].idx
		})

		top := labelTopTerms
		if top > len(weights) {
			top = len(weights)
		}
		names := make([]string, 0, top)
		for _, tw := range weights[:top] {
			names = append(names, terms[tw.idx])
		}
		if len(names) == 0 {
			out[c] = "Empty"
			continue
		}
		out[c] = strings.Join(names, ", ")
	}
	return out
}
