package descriptor

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinary_ParseAppend(t *testing.T) {
	c := Binary{Bytes: 4}
	require.Equal(t, 4, c.Arity())

	d, err := c.Parse([]string{"0", "255", "17", "128"})
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 255, 17, 128}, d)

	tokens := c.Append([]string{"prefix"}, d)
	assert.Equal(t, []string{"prefix", "0", "255", "17", "128"}, tokens)
	assert.True(t, c.Equal(d, []byte{0, 255, 17, 128}))
	assert.False(t, c.Equal(d, []byte{0, 255, 17, 129}))
}

func TestBinary_ParseErrors(t *testing.T) {
	c := Binary{Bytes: 2}

	_, err := c.Parse([]string{"1"})
	assert.ErrorIs(t, err, ErrArity)

	_, err = c.Parse([]string{"1", "256"})
	var tokErr *TokenError
	require.ErrorAs(t, err, &tokErr)
	assert.Equal(t, 1, tokErr.Index)
	assert.ErrorIs(t, err, strconv.ErrRange)

	_, err = c.Parse([]string{"x", "1"})
	assert.ErrorIs(t, err, strconv.ErrSyntax)
}

func TestBinary_Distance(t *testing.T) {
	c := ORB()
	a := make([]byte, ORBBytes)
	b := make([]byte, ORBBytes)
	assert.Equal(t, 0, c.Distance(a, b))

	b[0] = 0xFF
	b[31] = 0x01
	assert.Equal(t, 9, c.Distance(a, b))

	odd := Binary{Bytes: 3}
	assert.Equal(t, 2, odd.Distance([]byte{1, 0, 1}, []byte{0, 0, 0}))
}

func TestFloat32_ParseAppend(t *testing.T) {
	c := Float32{Dim: 3}

	d, err := c.Parse([]string{"0.1", "-2.5", "1e-3"})
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, -2.5, 0.001}, d)

	tokens := c.Append(nil, d)
	assert.Equal(t, []string{"0.1", "-2.5", "0.001"}, tokens)

	back, err := c.Parse(tokens)
	require.NoError(t, err)
	assert.True(t, c.Equal(d, back))

	_, err = c.Parse([]string{"0.1", "nope", "1"})
	assert.ErrorIs(t, err, strconv.ErrSyntax)

	_, err = c.Parse([]string{"0.1"})
	assert.ErrorIs(t, err, ErrArity)
}

func TestFloat32_Distance(t *testing.T) {
	c := SURF()
	require.Equal(t, SURFDim, c.Arity())
	assert.Equal(t, float32(25), Float32{Dim: 2}.Distance([]float32{0, 0}, []float32{3, 4}))
}
