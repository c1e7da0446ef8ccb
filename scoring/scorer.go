package scoring

import (
	"fmt"
	"math"
)

// logEps bounds KL divergence terms for words missing from the second vector.
var logEps = math.Log(2.220446049250313e-16)

// Scorer compares two bag-of-words vectors.
// Inputs must be normalized with the norm returned by Norm when it reports true.
type Scorer interface {
	Score(a, b BowVector) float64
	// Norm returns the norm inputs must be normalized with, and whether
	// normalization is required at all.
	Norm() (NormType, bool)
	Type() Type
}

// New instantiates the scorer for t.
func New(t Type) (Scorer, error) {
	switch t {
	case L1Norm:
		return l1Scorer{}, nil
	case L2Norm:
		return l2Scorer{}, nil
	case ChiSquare:
		return chiSquareScorer{}, nil
	case KL:
		return klScorer{}, nil
	case Bhattacharyya:
		return bhattacharyyaScorer{}, nil
	case DotProduct:
		return dotScorer{}, nil
	default:
		return nil, fmt.Errorf("scoring: unknown type %d", int(t))
	}
}

// common calls fn for every word present in both a and b.
func common(a, b BowVector, fn func(va, vb float64)) {
	if len(b) < len(a) {
		for id, vb := range b {
			if va, ok := a[id]; ok {
				fn(va, vb)
			}
		}
		return
	}
	for id, va := range a {
		if vb, ok := b[id]; ok {
			fn(va, vb)
		}
	}
}

type l1Scorer struct{}

func (l1Scorer) Type() Type             { return L1Norm }
func (l1Scorer) Norm() (NormType, bool) { return NormL1, true }

func (l1Scorer) Score(a, b BowVector) float64 {
	var score float64
	common(a, b, func(va, vb float64) {
		score += math.Abs(va-vb) - math.Abs(va) - math.Abs(vb)
	})
	return -score / 2
}

type l2Scorer struct{}

func (l2Scorer) Type() Type             { return L2Norm }
func (l2Scorer) Norm() (NormType, bool) { return NormL2, true }

func (l2Scorer) Score(a, b BowVector) float64 {
	var score float64
	common(a, b, func(va, vb float64) {
		score += va * vb
	})
	if score >= 1 {
		return 1
	}
	return 1 - math.Sqrt(1-score)
}

type chiSquareScorer struct{}

func (chiSquareScorer) Type() Type             { return ChiSquare }
func (chiSquareScorer) Norm() (NormType, bool) { return NormL1, true }

func (chiSquareScorer) Score(a, b BowVector) float64 {
	var score float64
	common(a, b, func(va, vb float64) {
		if va+vb != 0 {
			score += va * vb / (va + vb)
		}
	})
	return 2 * score
}

type klScorer struct{}

func (klScorer) Type() Type             { return KL }
func (klScorer) Norm() (NormType, bool) { return NormL1, true }

// Score returns the KL divergence of a from b. Unlike the other scorers
// lower values mean more similar vectors.
func (klScorer) Score(a, b BowVector) float64 {
	var score float64
	for id, va := range a {
		if va <= 0 {
			continue
		}
		if vb, ok := b[id]; ok && vb > 0 {
			score += va * math.Log(va/vb)
		} else {
			score += va * (math.Log(va) - logEps)
		}
	}
	return score
}

type bhattacharyyaScorer struct{}

func (bhattacharyyaScorer) Type() Type             { return Bhattacharyya }
func (bhattacharyyaScorer) Norm() (NormType, bool) { return NormL1, true }

func (bhattacharyyaScorer) Score(a, b BowVector) float64 {
	var score float64
	common(a, b, func(va, vb float64) {
		score += math.Sqrt(va * vb)
	})
	return score
}

type dotScorer struct{}

func (dotScorer) Type() Type             { return DotProduct }
func (dotScorer) Norm() (NormType, bool) { return NormL1, false }

func (dotScorer) Score(a, b BowVector) float64 {
	var score float64
	common(a, b, func(va, vb float64) {
		score += va * vb
	})
	return score
}
