package topics

import (
	"math"
	"math/rand"

	"github.com/dgallion1/docsight/internal/vectorize"
)

// project2D reduces sparse vectors to two coordinates along the top two
// principal components of the (mean-centered) collection, via power
// iteration with deflation. The covariance matrix is never materialized:
// C*v is computed as (1/n) * sum_i ((x_i - mean) . v) * (x_i - mean).
// Fewer than two effective dimensions collapse all points to the origin;
// a rank-1 collection gets its second coordinate zero-padded. Sparse
// reductions iterate indices in ascending order so summation is
// reproducible for a fixed seed.
func project2D(vectors []vectorize.Vector, dims int, seed int64) [][2]float64 {
	coords := make([][2]float64, len(vectors))
	if dims < 2 || len(vectors) < 2 {
		return coords
	}

	order := make([][]int, len(vectors))
	for i, v := range vectors {
		order[i] = v.Indices()
	}

	n := float64(len(vectors))
	mean := make([]float64, dims)
	for i := range vectors {
		for _, idx := range order[i] {
			mean[idx] += vectors[i][idx]
		}
	}
	for idx := range mean {
		mean[idx] /= n
	}

	rng := rand.New(rand.NewSource(seed))

	components := min(2, min(len(vectors), dims))
	var comps [][]float64
	for c := 0; c < components; c++ {
		comp, eig := powerIteration(vectors, order, mean, comps, rng)
		if eig <= 1e-12 {
			break
		}
		comps = append(comps, comp)
	}

	for i, v := range vectors {
		for c, comp := range comps {
			coords[i][c] = centeredDot(v, order[i], mean, comp)
		}
	}
	return coords
}

// powerIteration finds the dominant eigenvector of the centered
// covariance, deflating away previously found components.
func powerIteration(vectors []vectorize.Vector, order [][]int, mean []float64, prev [][]float64, rng *rand.Rand) ([]float64, float64) {
	dims := len(mean)
	n := float64(len(vectors))

	v := make([]float64, dims)
	for i := range v {
		v[i] = rng.NormFloat64()
	}
	normalize(v)

	cv := make([]float64, dims)
	var eig float64
	for iter := 0; iter < 100; iter++ {
		// cv = C*v via per-sample projections.
		for i := range cv {
			cv[i] = 0
		}
		var sumProj float64
		for i, x := range vectors {
			proj := centeredDot(x, order[i], mean, v)
			sumProj += proj
			for _, idx := range order[i] {
				cv[idx] += proj * x[idx]
			}
		}
		for i := range cv {
			cv[i] = (cv[i] - sumProj*mean[i]) / n
		}

		// Deflate: remove the span of earlier components.
		for _, comp := range prev {
			d := dot(comp, cv)
			for i := range cv {
				cv[i] -= d * comp[i]
			}
		}

		eig = norm(cv)
		if eig <= 1e-12 {
			return v, 0
		}
		converged := true
		for i := range v {
			next := cv[i] / eig
			if math.Abs(next-v[i]) > 1e-10 {
				converged = false
			}
			v[i] = next
		}
		if converged {
			break
		}
	}
	return v, eig
}

// centeredDot computes (x - mean) . v for a sparse x with sorted index
// set idxs.
func centeredDot(x vectorize.Vector, idxs []int, mean, v []float64) float64 {
	var d float64
	for _, idx := range idxs {
		d += x[idx] * v[idx]
	}
	return d - dot(mean, v)
}

func dot(a, b []float64) float64 {
	var d float64
	for i := range a {
		d += a[i] * b[i]
	}
	return d
}

func norm(v []float64) float64 {
	return math.Sqrt(dot(v, v))
}

func normalize(v []float64) {
	n := norm(v)
	if n == 0 {
		return
	}
	for i := range v {
		v[i] /= n
	}
}
