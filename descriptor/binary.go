package descriptor

import (
	"bytes"
	"encoding/binary"
	"math/bits"
	"strconv"
)

// ORBBytes is the size of an ORB descriptor.
const ORBBytes = 32

// Binary is a codec for bit-string descriptors of a fixed byte length.
// Each byte is written as an unsigned decimal token.
type Binary struct {
	Bytes int
}

// ORB returns the codec for 256-bit ORB descriptors.
func ORB() Binary {
	return Binary{Bytes: ORBBytes}
}

// Arity returns the number of tokens (bytes) per descriptor.
func (c Binary) Arity() int { return c.Bytes }

// Parse decodes one byte per token.
func (c Binary) Parse(tokens []string) ([]byte, error) {
	if err := checkArity(tokens, c.Bytes); err != nil {
		return nil, err
	}
	d := make([]byte, c.Bytes)
	for i, tok := range tokens {
		v, err := strconv.ParseUint(tok, 10, 8)
		if err != nil {
			return nil, &TokenError{Index: i, Token: tok, cause: err}
		}
		d[i] = byte(v)
	}
	return d, nil
}

// Append appends the decimal tokens of d.
func (c Binary) Append(dst []string, d []byte) []string {
	for _, b := range d {
		dst = append(dst, strconv.Itoa(int(b)))
	}
	return dst
}

// Equal reports byte equality.
func (Binary) Equal(a, b []byte) bool {
	return bytes.Equal(a, b)
}

// Distance returns the Hamming distance between a and b.
// Slices are assumed to have the same length.
func (Binary) Distance(a, b []byte) int {
	var d int
	i := 0
	for ; i+8 <= len(a); i += 8 {
		x := binary.LittleEndian.Uint64(a[i:])
		y := binary.LittleEndian.Uint64(b[i:])
		d += bits.OnesCount64(x ^ y)
	}
	for ; i < len(a); i++ {
		d += bits.OnesCount8(a[i] ^ b[i])
	}
	return d
}
