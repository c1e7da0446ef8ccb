package kmeans

import (
	"context"
	"errors"
	"math"
	"math/rand"
)

// ErrInvalidArgument is returned for a non-positive dim or k, or a vector
// buffer whose length is not a multiple of dim.
var ErrInvalidArgument = errors.New("kmeans: invalid argument")

// DistanceFunc returns the distance between two vectors of equal length.
type DistanceFunc func(a, b []float32) float32

// cancelCheckInterval is how many vectors are assigned between context checks.
const cancelCheckInterval = 1024

// Result holds trained centroids and the final assignment of every input vector.
type Result struct {
	// Centroids is the flattened k*dim centroid matrix.
	Centroids []float32
	// Assignments maps each input vector to its centroid index.
	Assignments []int
	// Iterations is the number of Lloyd iterations run.
	Iterations int
}

// Train clusters the flattened vectors into k centroids using Lloyd's
// algorithm with k-means++ seeding.
// It returns a nil Result if there are fewer vectors than k.
func Train(ctx context.Context, vectors []float32, dim, k int, dist DistanceFunc, maxIter int, rng *rand.Rand) (*Result, error) {
	if dim <= 0 || k <= 0 || len(vectors)%dim != 0 {
		return nil, ErrInvalidArgument
	}
	n := len(vectors) / dim
	if n < k {
		return nil, nil
	}

	centroids := seedPlusPlus(vectors, dim, k, dist, rng)
	assignments := make([]int, n)
	for i := range assignments {
		assignments[i] = -1
	}
	counts := make([]int, k)
	sums := make([]float32, k*dim)

	iter := 0
	for ; iter < maxIter; iter++ {
		changed := false

		for i := 0; i < n; i++ {
			if i%cancelCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			best := Assign(vectors[i*dim:(i+1)*dim], centroids, dim, dist)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}

		if !changed {
			break
		}

		clear(sums)
		clear(counts)

		for i := 0; i < n; i++ {
			c := assignments[i]
			vec := vectors[i*dim : (i+1)*dim]
			for d := 0; d < dim; d++ {
				sums[c*dim+d] += vec[d]
			}
			counts[c]++
		}

		for j := 0; j < k; j++ {
			if counts[j] > 0 {
				scale := 1.0 / float32(counts[j])
				for d := 0; d < dim; d++ {
					centroids[j*dim+d] = sums[j*dim+d] * scale
				}
			} else {
				// Re-seed an empty cluster with a random point.
				idx := rng.Intn(n)
				copy(centroids[j*dim:(j+1)*dim], vectors[idx*dim:(idx+1)*dim])
			}
		}
	}

	return &Result{Centroids: centroids, Assignments: assignments, Iterations: iter}, nil
}

// seedPlusPlus picks k initial centroids, each chosen with probability
// proportional to its distance from the centroids already picked.
func seedPlusPlus(vectors []float32, dim, k int, dist DistanceFunc, rng *rand.Rand) []float32 {
	n := len(vectors) / dim
	centroids := make([]float32, k*dim)

	first := rng.Intn(n)
	copy(centroids[:dim], vectors[first*dim:(first+1)*dim])

	minDist := make([]float64, n)
	for i := range minDist {
		minDist[i] = math.MaxFloat64
	}

	for c := 1; c < k; c++ {
		prev := centroids[(c-1)*dim : c*dim]
		var total float64
		for i := 0; i < n; i++ {
			d := float64(dist(vectors[i*dim:(i+1)*dim], prev))
			if d < minDist[i] {
				minDist[i] = d
			}
			total += minDist[i]
		}

		pick := rng.Intn(n)
		if total > 0 {
			target := rng.Float64() * total
			for i := 0; i < n; i++ {
				target -= minDist[i]
				if target <= 0 {
					pick = i
					break
				}
			}
		}
		copy(centroids[c*dim:(c+1)*dim], vectors[pick*dim:(pick+1)*dim])
	}

	return centroids
}

// Assign returns the index of the centroid closest to vec.
func Assign(vec []float32, centroids []float32, dim int, dist DistanceFunc) int {
	k := len(centroids) / dim
	best := -1
	minDist := float32(math.MaxFloat32)

	for j := 0; j < k; j++ {
		d := dist(vec, centroids[j*dim:(j+1)*dim])
		if d < minDist {
			minDist = d
			best = j
		}
	}

	return best
}
