package spkmeans_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spkmeans"
)

func TestBinding_Matrices(t *testing.T) {
	W, err := spkmeans.Weights(twoPairs)
	require.NoError(t, err)
	require.Len(t, W, 4)
	assert.Zero(t, W[2][2])
	assert.InDelta(t, math.Exp(-5), W[0][2], 1e-12)

	D, err := spkmeans.Degrees(twoPairs)
	require.NoError(t, err)
	assert.InDelta(t, W[1][0]+W[1][2]+W[1][3], D[1][1], 1e-12)
	assert.Zero(t, D[1][0])

	N, err := spkmeans.Laplacian(twoPairs)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, N[3][3], 1e-12)
}

func TestBinding_Jacobi(t *testing.T) {
	values, vectors, err := spkmeans.Jacobi([][]float64{{2, 1}, {1, 2}})
	require.NoError(t, err)
	require.Len(t, values, 2)
	require.Len(t, vectors, 2)

	// Column j pairs with values[j]: A·v = λ·v.
	for j := 0; j < 2; j++ {
		v0, v1 := vectors[0][j], vectors[1][j]
		assert.InDelta(t, values[j]*v0, 2*v0+v1, 1e-9)
		assert.InDelta(t, values[j]*v1, v0+2*v1, 1e-9)
	}

	_, _, err = spkmeans.Jacobi([][]float64{{1, 2}})
	require.ErrorIs(t, err, spkmeans.ErrInvalidInput)
}

func TestBinding_Spectral(t *testing.T) {
	T, err := spkmeans.Spectral(twoPairs, 2)
	require.NoError(t, err)
	require.Len(t, T, 4)
	for _, row := range T {
		require.Len(t, row, 2)
		assert.InDelta(t, 1.0, math.Hypot(row[0], row[1]), 1e-9)
	}

	T, err = spkmeans.Spectral(twoPairs, 0)
	require.NoError(t, err)
	assert.Len(t, T[0], 2)

	_, err = spkmeans.Spectral([][]float64{{3, 3}}, 0)
	require.ErrorIs(t, err, spkmeans.ErrDegenerateGraph)
}

func TestBinding_KMeans(t *testing.T) {
	pts := [][]float64{{1}, {2}, {3}, {100}, {101}, {102}}
	got, err := spkmeans.KMeans([][]float64{{1}, {100}}, pts, 0, -1)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got[0][0], 1e-12)
	assert.InDelta(t, 101.0, got[1][0], 1e-12)

	_, err = spkmeans.KMeans([][]float64{{1, 2}}, pts, 10, 0)
	require.ErrorIs(t, err, spkmeans.ErrInvalidInput)
}

// TestBinding_NonFinite: NaN and Inf coordinates are invalid input on every entry point.
func TestBinding_NonFinite(t *testing.T) {
	got, err := spkmeans.KMeans([][]float64{{1}, {100}}, [][]float64{{1}, {math.NaN()}, {3}, {100}}, 0, -1)
	require.ErrorIs(t, err, spkmeans.ErrInvalidInput)
	assert.Nil(t, got)

	_, err = spkmeans.KMeans([][]float64{{math.NaN()}, {100}}, [][]float64{{1}, {3}, {100}}, 0, -1)
	require.ErrorIs(t, err, spkmeans.ErrInvalidInput)

	_, err = spkmeans.Laplacian([][]float64{{0}, {math.Inf(1)}, {1}})
	require.ErrorIs(t, err, spkmeans.ErrInvalidInput)
	assert.Equal(t, spkmeans.KindInvalidInput, spkmeans.Classify(err))

	_, err = spkmeans.Weights([][]float64{{0, math.NaN()}, {1, 1}})
	assert.Equal(t, spkmeans.KindInvalidInput, spkmeans.Classify(err))

	_, err = spkmeans.Spectral([][]float64{{0}, {math.Inf(-1)}, {1}}, 0)
	assert.Equal(t, spkmeans.KindInvalidInput, spkmeans.Classify(err))
}
