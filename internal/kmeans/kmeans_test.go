package kmeans

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squaredL2(a, b []float32) float32 {
	var s float32
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

func TestTrain(t *testing.T) {
	// 2 clusters: (0,0) and (10,10)
	vecs := []float32{
		0, 0, 0, 1, 1, 0,
		10, 10, 10, 11, 11, 10,
	}

	res, err := Train(context.Background(), vecs, 2, 2, squaredL2, 100, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Len(t, res.Centroids, 4)
	require.Len(t, res.Assignments, 6)

	assert.Equal(t, res.Assignments[0], res.Assignments[1])
	assert.Equal(t, res.Assignments[0], res.Assignments[2])
	assert.Equal(t, res.Assignments[3], res.Assignments[4])
	assert.NotEqual(t, res.Assignments[0], res.Assignments[3])

	p1 := Assign([]float32{0.5, 0.5}, res.Centroids, 2, squaredL2)
	p2 := Assign([]float32{10.5, 10.5}, res.Centroids, 2, squaredL2)
	assert.Equal(t, res.Assignments[0], p1)
	assert.Equal(t, res.Assignments[3], p2)
}

func TestTrain_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	vecs := make([]float32, 200*4)
	for i := range vecs {
		vecs[i] = rng.Float32()
	}

	a, err := Train(context.Background(), vecs, 4, 5, squaredL2, 20, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := Train(context.Background(), vecs, 4, 5, squaredL2, 20, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, a.Centroids, b.Centroids)
	assert.Equal(t, a.Assignments, b.Assignments)
}

func TestTrain_NotEnoughVectors(t *testing.T) {
	res, err := Train(context.Background(), []float32{0, 0}, 2, 2, squaredL2, 10, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestTrain_InvalidArgument(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := Train(context.Background(), []float32{0, 0, 0}, 2, 1, squaredL2, 10, rng)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Train(context.Background(), []float32{0, 0}, 0, 1, squaredL2, 10, rng)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTrain_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	vecs := make([]float32, 1000*2)
	for i := range vecs {
		vecs[i] = float32(i)
	}

	_, err := Train(ctx, vecs, 2, 10, squaredL2, 1000, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssign(t *testing.T) {
	centroids := []float32{
		0, 0,
		10, 10,
		20, 20,
	}
	assert.Equal(t, 0, Assign([]float32{1, 1}, centroids, 2, squaredL2))
	assert.Equal(t, 2, Assign([]float32{19, 19}, centroids, 2, squaredL2))
}
