// Package kmeans partitions dense feature vectors with Lloyd's algorithm
// over Euclidean distance. Runs are deterministic for a fixed seed, which
// keeps cluster output reproducible across invocations on the same corpus.
package kmeans

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Defaults applied when Options fields are zero.
const (
	DefaultSeed          = 1
	DefaultMaxIterations = 100
)

// Options controls a clustering run. A zero Seed means DefaultSeed and a
// non-positive MaxIterations means DefaultMaxIterations.
type Options struct {
	Seed          int64
	MaxIterations int
}

// Result is the outcome of one clustering run. Labels[d] is the cluster
// of vector d in [0, k). Centroids holds the final cluster centers, one
// per label, in the input vector space.
type Result struct {
	Labels     []int
	Centroids  [][]float64
	Iterations int
	Converged  bool
}

// Run clusters vectors into k groups. Initial centroids are k distinct
// vectors chosen by the seeded source; iteration stops when assignments
// no longer change or MaxIterations is reached.
func Run(vectors [][]float64, k int, opts Options) (*Result, error) {
	n := len(vectors)
	if n == 0 {
		return nil, errors.New("kmeans: no vectors")
	}
	if k < 1 {
		return nil, fmt.Errorf("kmeans: k must be positive, got %d", k)
	}
	if k > n {
		return nil, fmt.Errorf("kmeans: k (%d) exceeds vector count (%d)", k, n)
	}
	dims := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dims {
			return nil, fmt.Errorf("kmeans: vector %d has %d dimensions, want %d", i, len(v), dims)
		}
	}

	seed := opts.Seed
	if seed == 0 {
		seed = DefaultSeed
	}
	maxIters := opts.MaxIterations
	if maxIters <= 0 {
		maxIters = DefaultMaxIterations
	}

	// Seeded initialization: k distinct vectors as starting centroids,
	// copied so centroid updates never alias the input.
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducibility, not cryptography
	centroids := make([][]float64, k)
	for c, i := range rng.Perm(n)[:k] {
		centroids[c] = append([]float64(nil), vectors[i]...)
	}

	res := &Result{Labels: make([]int, n)}
	for iter := 0; iter < maxIters; iter++ {
		res.Iterations = iter + 1

		changed := false
		for i, v := range vectors {
			best := nearest(v, centroids)
			if res.Labels[i] != best {
				res.Labels[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			res.Converged = true
			break
		}

		// Recompute centroids as member means. A cluster that lost all
		// members keeps its previous centroid.
		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dims)
		}
		for i, v := range vectors {
			c := res.Labels[i]
			counts[c]++
			for d, x := range v {
				sums[c][d] += x
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				continue
			}
			for d := range sums[c] {
				sums[c][d] /= float64(counts[c])
			}
			centroids[c] = sums[c]
		}
	}

	res.Centroids = centroids
	return res, nil
}

// nearest returns the index of the centroid closest to v, lower index
// winning ties. Squared distance preserves the argmin, so the square
// root is skipped.
func nearest(v []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.MaxFloat64
	for c, centroid := range centroids {
		var sum float64
		for d, x := range v {
			diff := x - centroid[d]
			sum += diff * diff
		}
		if sum < bestDist {
			bestDist = sum
			best = c
		}
	}
	return best
}
