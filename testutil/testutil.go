package testutil

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformVectors generates random vectors with values in range [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformVectors(num int, dimensions int) [][]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float32, num*dimensions)
	vectors := make([][]float32, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.rand.Float32()
		}
		vectors[i] = vec
	}

	return vectors
}

// BinaryDescriptors generates num random byte strings of the given length.
func (r *RNG) BinaryDescriptors(num, length int) [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]byte, num*length)
	_, _ = r.rand.Read(data)

	out := make([][]byte, num)
	for i := range out {
		out[i] = data[i*length : (i+1)*length]
	}
	return out
}

// ClusteredImages generates training images whose descriptors are drawn
// around a fixed set of cluster centers. Every image holds perImage
// descriptors, each one a center plus uniform noise in [-spread, spread).
func (r *RNG) ClusteredImages(images, perImage, dim, clusters int, spread float32) [][][]float32 {
	centers := r.UniformVectors(clusters, dim)

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([][][]float32, images)
	for i := range out {
		img := make([][]float32, perImage)
		for j := range img {
			c := centers[r.rand.Intn(clusters)]
			d := make([]float32, dim)
			for x := range d {
				d[x] = c[x] + (r.rand.Float32()*2-1)*spread
			}
			img[j] = d
		}
		out[i] = img
	}
	return out
}

// VocabularyConfig describes a vocabulary generated by VocabularyText.
type VocabularyConfig struct {
	// K is the branching factor and L the depth written to the header.
	K, L int
	// Scoring and Weighting are written to the header verbatim.
	Scoring, Weighting int
	// Bytes is the length of the binary node descriptors.
	Bytes int
	// Sparse randomly stops expanding some internal nodes so that leaves
	// appear at different depths and with fewer than K siblings.
	Sparse bool
}

// VocabularyText generates a vocabulary file in text format whose nodes are
// written breadth first. It returns the text and the number of leaves.
func (r *RNG) VocabularyText(cfg VocabularyConfig) (string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	b.WriteString(strconv.Itoa(cfg.K))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(cfg.L))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(cfg.Scoring))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(cfg.Weighting))
	b.WriteByte('\n')

	type pending struct {
		id, depth int
	}

	next := 1
	words := 0
	queue := []pending{{id: 0, depth: 0}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		children := cfg.K
		if cfg.Sparse && p.depth > 0 {
			children = 1 + r.rand.Intn(cfg.K)
		}

		for range children {
			leaf := p.depth+1 == cfg.L || (cfg.Sparse && r.rand.Intn(4) == 0)

			b.WriteString(strconv.Itoa(p.id))
			if leaf {
				b.WriteString(" 1")
			} else {
				b.WriteString(" 0")
			}
			for range cfg.Bytes {
				b.WriteByte(' ')
				b.WriteString(strconv.Itoa(r.rand.Intn(256)))
			}
			b.WriteByte(' ')
			if leaf {
				b.WriteString(strconv.FormatFloat(r.rand.Float64()*10, 'g', -1, 64))
				words++
			} else {
				b.WriteByte('0')
				queue = append(queue, pending{id: next, depth: p.depth + 1})
			}
			b.WriteByte('\n')
			next++
		}
	}

	return b.String(), words
}
