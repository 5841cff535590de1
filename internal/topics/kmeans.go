package topics

import (
	"fmt"
	"math/rand"

	"github.com/dgallion1/docsight/internal/vectorize"
)

// kmeansSparse partitions L2-normalized sparse vectors into k clusters
// using k-means++ initialization from the given seed. Centroids are kept
// dense; distances use the expansion ||x-c||^2 = ||x||^2 - 2x.c + ||c||^2
// so sparse points never get densified. All reductions over sparse
// vectors iterate indices in ascending order so summation is reproducible.
func kmeansSparse(vectors []vectorize.Vector, dims, k int, seed int64) ([]int, error) {
	if k < 1 {
		return nil, fmt.Errorf("kmeans: k must be >= 1, got %d", k)
	}
	if len(vectors) < k {
		return nil, fmt.Errorf("kmeans: %d vectors for k=%d", len(vectors), k)
	}

	rng := rand.New(rand.NewSource(seed))

	order := make([][]int, len(vectors))
	for i, v := range vectors {
		order[i] = v.Indices()
	}

	centroids := make([][]float64, k)
	centroidNormSq := make([]float64, k)
	setCentroid := func(c, i int) {
		dense := make([]float64, dims)
		var normSq float64
		for _, idx := range order[i] {
			w := vectors[i][idx]
			dense[idx] = w
			normSq += w * w
		}
		centroids[c] = dense
		centroidNormSq[c] = normSq
	}

	// k-means++ seeding.
	setCentroid(0, rng.Intn(len(vectors)))
	distSq := make([]float64, len(vectors))
	for c := 1; c < k; c++ {
		var total float64
		for i, v := range vectors {
			best := pointCentroidDistSq(v, order[i], centroids[0], centroidNormSq[0])
			for cc := 1; cc < c; cc++ {
				if d := pointCentroidDistSq(v, order[i], centroids[cc], centroidNormSq[cc]); d < best {
					best = d
				}
			}
			distSq[i] = best
			total += best
		}
		if total == 0 {
			setCentroid(c, rng.Intn(len(vectors)))
			continue
		}
		target := rng.Float64() * total
		var acc float64
		chosen := len(vectors) - 1
		for i, d := range distSq {
			acc += d
			if acc >= target {
				chosen = i
				break
			}
		}
		setCentroid(c, chosen)
	}

	labels := make([]int, len(vectors))
	for iter := 0; iter < 100; iter++ {
		changed := false
		for i, v := range vectors {
			best := 0
			bestDist := pointCentroidDistSq(v, order[i], centroids[0], centroidNormSq[0])
			for c := 1; c < k; c++ {
				if d := pointCentroidDistSq(v, order[i], centroids[c], centroidNormSq[c]); d < bestDist {
					best = c
					bestDist = d
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		counts := make([]int, k)
		next := make([][]float64, k)
		for c := range next {
			next[c] = make([]float64, dims)
		}
		for i := range vectors {
			c := labels[i]
			counts[c]++
			for _, idx := range order[i] {
				next[c][idx] += vectors[i][idx]
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue // empty cluster keeps its previous centroid
			}
			var normSq float64
			for idx := range next[c] {
				next[c][idx] /= float64(counts[c])
				normSq += next[c][idx] * next[c][idx]
			}
			centroids[c] = next[c]
			centroidNormSq[c] = normSq
		}
	}

	return labels, nil
}

// pointCentroidDistSq computes ||x-c||^2 for an L2-normalized sparse x,
// so ||x||^2 = 1 (or 0 for an all-zero vector, where the constant term
// does not affect the argmin). idxs is x's sorted index set.
func pointCentroidDistSq(v vectorize.Vector, idxs []int, centroid []float64, centroidNormSq float64) float64 {
	var dot float64
	for _, idx := range idxs {
		dot += v[idx] * centroid[idx]
	}
	return 1 - 2*dot + centroidNormSq
}
