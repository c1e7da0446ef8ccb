package scoring

import "fmt"

// Type identifies a scoring strategy.
type Type int

const (
	L1Norm Type = iota
	L2Norm
	ChiSquare
	KL
	Bhattacharyya
	DotProduct
)

// Valid reports whether t names a known scoring strategy.
func (t Type) Valid() bool {
	return t >= L1Norm && t <= DotProduct
}

func (t Type) String() string {
	switch t {
	case L1Norm:
		return "L1Norm"
	case L2Norm:
		return "L2Norm"
	case ChiSquare:
		return "ChiSquare"
	case KL:
		return "KL"
	case Bhattacharyya:
		return "Bhattacharyya"
	case DotProduct:
		return "DotProduct"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// Weighting identifies how word occurrences are weighted.
type Weighting int

const (
	TfIdf Weighting = iota
	Tf
	Idf
	Binary
)

// Valid reports whether w names a known weighting strategy.
func (w Weighting) Valid() bool {
	return w >= TfIdf && w <= Binary
}

// UsesIDF reports whether node weights hold inverse document frequencies.
func (w Weighting) UsesIDF() bool {
	return w == TfIdf || w == Idf
}

func (w Weighting) String() string {
	switch w {
	case TfIdf:
		return "TfIdf"
	case Tf:
		return "Tf"
	case Idf:
		return "Idf"
	case Binary:
		return "Binary"
	default:
		return fmt.Sprintf("Unknown(%d)", int(w))
	}
}

// NormType is the vector norm a scorer expects its inputs normalized with.
type NormType int

const (
	NormL1 NormType = iota
	NormL2
)
