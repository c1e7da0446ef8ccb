package scoring

import (
	"math"
	"sort"
)

// BowVector is a sparse bag-of-words vector keyed by word id.
type BowVector map[uint32]float64

// Add accumulates v onto word id.
func (b BowVector) Add(id uint32, v float64) {
	b[id] += v
}

// AddIfNotExist sets word id to v unless it already holds a value.
func (b BowVector) AddIfNotExist(id uint32, v float64) {
	if _, ok := b[id]; !ok {
		b[id] = v
	}
}

// Normalize scales b in place so that its norm is 1. Zero vectors are left
// untouched.
func (b BowVector) Normalize(norm NormType) {
	var n float64
	switch norm {
	case NormL2:
		for _, v := range b {
			n += v * v
		}
		n = math.Sqrt(n)
	default:
		for _, v := range b {
			n += math.Abs(v)
		}
	}
	if n == 0 {
		return
	}
	for id, v := range b {
		b[id] = v / n
	}
}

// IDs returns the word ids of b in ascending order.
func (b BowVector) IDs() []uint32 {
	ids := make([]uint32, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
