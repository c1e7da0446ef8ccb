package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.UniformVectors(8, 32)

	assert.Equal(t, 8, len(v))
	assert.Equal(t, 32, len(v[0]))
	assert.LessOrEqual(t, v[0][0], float32(1.0))
	assert.GreaterOrEqual(t, v[1][0], float32(0.0))
}

func TestBinaryDescriptors(t *testing.T) {
	rng := NewRNG(4711)

	d := rng.BinaryDescriptors(5, 32)
	require.Len(t, d, 5)
	for _, x := range d {
		assert.Len(t, x, 32)
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(7)
	a := rng.Intn(1 << 30)
	rng.Reset()
	assert.Equal(t, a, rng.Intn(1<<30))
	assert.Equal(t, int64(7), rng.Seed())
}

func TestClusteredImages(t *testing.T) {
	rng := NewRNG(4711)

	images := rng.ClusteredImages(4, 10, 8, 3, 0.01)
	require.Len(t, images, 4)
	for _, img := range images {
		require.Len(t, img, 10)
		for _, d := range img {
			assert.Len(t, d, 8)
		}
	}
}

func TestVocabularyText(t *testing.T) {
	rng := NewRNG(4711)

	text, words := rng.VocabularyText(VocabularyConfig{K: 3, L: 2, Bytes: 4})
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")

	assert.Equal(t, "3 2 0 0", lines[0])
	// Full tree: 3 + 9 records.
	assert.Len(t, lines, 13)
	assert.Equal(t, 9, words)

	for _, l := range lines[1:] {
		assert.Len(t, strings.Fields(l), 2+4+1)
	}
}

func TestVocabularyText_Sparse(t *testing.T) {
	rng := NewRNG(1)

	text, words := rng.VocabularyText(VocabularyConfig{K: 4, L: 4, Bytes: 2, Sparse: true})
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")

	leaves := 0
	for _, l := range lines[1:] {
		if strings.Fields(l)[1] == "1" {
			leaves++
		}
	}
	assert.Equal(t, words, leaves)
	assert.Positive(t, words)
}
