package outline

import (
	"fmt"
	"math"
	"math/rand"
)

// kmeans1D partitions values into k clusters with deterministic k-means++
// initialization from the given seed. Returns cluster centroids (in cluster
// index order) and the cluster index of each input value. The input order
// of values fixes the iteration order, so identical input and seed always
// produce identical output.
func kmeans1D(values []float64, k int, seed int64) ([]float64, []int, error) {
	if k < 1 {
		return nil, nil, fmt.Errorf("kmeans: k must be >= 1, got %d", k)
	}
	if len(values) < k {
		return nil, nil, fmt.Errorf("kmeans: %d values for k=%d", len(values), k)
	}

	rng := rand.New(rand.NewSource(seed))
	centroids := initPlusPlus(values, k, rng)
	labels := make([]int, len(values))

	for iter := 0; iter < 100; iter++ {
		changed := false
		for i, v := range values {
			best := 0
			bestDist := math.Abs(v - centroids[0])
			for c := 1; c < k; c++ {
				if d := math.Abs(v - centroids[c]); d < bestDist {
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

		sums := make([]float64, k)
		counts := make([]int, k)
		for i, v := range values {
			sums[labels[i]] += v
			counts[labels[i]]++
		}
		for c := 0; c < k; c++ {
			if counts[c] > 0 {
				centroids[c] = sums[c] / float64(counts[c])
			}
		}
	}

	return centroids, labels, nil
}

// initPlusPlus picks k starting centroids: the first uniformly, each
// subsequent one weighted by squared distance to the nearest chosen centroid.
func initPlusPlus(values []float64, k int, rng *rand.Rand) []float64 {
	centroids := make([]float64, 0, k)
	centroids = append(centroids, values[rng.Intn(len(values))])

	dists := make([]float64, len(values))
	for len(centroids) < k {
		var total float64
		for i, v := range values {
			d := math.Abs(v - centroids[0])
			for _, c := range centroids[1:] {
				if dd := math.Abs(v - c); dd < d {
					d = dd
				}
			}
			dists[i] = d * d
			total += dists[i]
		}

		if total == 0 {
			// All points coincide with a centroid; any choice works.
			centroids = append(centroids, values[rng.Intn(len(values))])
			continue
		}

		target := rng.Float64() * total
		var acc float64
		chosen := len(values) - 1
		for i, d := range dists {
			acc += d
			if acc >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, values[chosen])
	}

	return centroids
}
