package descriptor

import (
	"slices"
	"strconv"
)

// SURFDim is the dimension of an upright SURF-64 descriptor.
const SURFDim = 64

// Float32 is a codec for real-valued descriptors of a fixed dimension.
// Components are written in the shortest form that parses back to the same
// float32.
type Float32 struct {
	Dim int
}

// SURF returns the codec for 64-dimensional SURF descriptors.
func SURF() Float32 {
	return Float32{Dim: SURFDim}
}

// Arity returns the descriptor dimension.
func (c Float32) Arity() int { return c.Dim }

// Parse decodes one float per token.
func (c Float32) Parse(tokens []string) ([]float32, error) {
	if err := checkArity(tokens, c.Dim); err != nil {
		return nil, err
	}
	d := make([]float32, c.Dim)
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return nil, &TokenError{Index: i, Token: tok, cause: err}
		}
		d[i] = float32(v)
	}
	return d, nil
}

// Append appends the float tokens of d.
func (c Float32) Append(dst []string, d []float32) []string {
	for _, x := range d {
		dst = append(dst, strconv.FormatFloat(float64(x), 'g', -1, 32))
	}
	return dst
}

// Equal reports component-wise equality.
func (Float32) Equal(a, b []float32) bool {
	return slices.Equal(a, b)
}

// Distance returns the squared L2 distance between a and b.
// Slices are assumed to have the same length.
func (Float32) Distance(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
