package laplacian_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/spkmeans/laplacian"
	"github.com/katalvlaran/spkmeans/matrix"
	"github.com/katalvlaran/spkmeans/point"
	"github.com/katalvlaran/spkmeans/similarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

func TestUnnormalized(t *testing.T) {
	W := mustRows(t, [][]float64{{0, 1, 2}, {1, 0, 3}, {2, 3, 0}})
	D, err := similarity.Degrees(W)
	require.NoError(t, err)

	L, err := laplacian.Unnormalized(W, D)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{3, -1, -2}, {-1, 4, -3}, {-2, -3, 5}}, L.ToRows())

	// Rows of D − W sum to zero.
	for _, row := range L.ToRows() {
		assert.InDelta(t, 0, row[0]+row[1]+row[2], 1e-12)
	}
}

func TestNormalized_Values(t *testing.T) {
	W := mustRows(t, [][]float64{{0, 1}, {1, 0}})
	N, err := laplacian.FromWeights(W)
	require.NoError(t, err)
	// d = (1,1): N = L = [[1,-1],[-1,1]].
	assert.Equal(t, [][]float64{{1, -1}, {-1, 1}}, N.ToRows())

	W = mustRows(t, [][]float64{{0, 2, 2}, {2, 0, 0}, {2, 0, 0}})
	N, err = laplacian.FromWeights(W)
	require.NoError(t, err)
	got := N.ToRows()
	assert.InDelta(t, 1.0, got[0][0], 1e-12)
	assert.InDelta(t, -2/math.Sqrt(8), got[0][1], 1e-12)
	assert.InDelta(t, got[0][1], got[1][0], 1e-15, "N must stay symmetric")
	assert.InDelta(t, 0.0, got[1][2], 1e-15)
}

// TestNormalized_Symmetric checks N on a real similarity graph.
func TestNormalized_Symmetric(t *testing.T) {
	W, err := similarity.Weights(point.Set{{0, 0}, {0, 1}, {10, 0}, {10, 1}, {3, 3}})
	require.NoError(t, err)
	N, err := laplacian.FromWeights(W)
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateSymmetric(N, 1e-12))

	diag, err := matrix.Diagonal(N)
	require.NoError(t, err)
	for _, v := range diag {
		assert.InDelta(t, 1.0, v, 1e-12) // W[i][i]=0 ⇒ N[i][i]=1
	}
}

func TestNormalized_DegenerateGraph(t *testing.T) {
	W, err := similarity.Weights(point.Set{{1, 2}})
	require.NoError(t, err)
	_, err = laplacian.FromWeights(W)
	require.ErrorIs(t, err, laplacian.ErrDegenerateGraph)

	// An isolated vertex in an otherwise connected graph.
	W = mustRows(t, [][]float64{{0, 1, 0}, {1, 0, 0}, {0, 0, 0}})
	_, err = laplacian.FromWeights(W)
	require.ErrorIs(t, err, laplacian.ErrDegenerateGraph)
}

func TestOperandErrors(t *testing.T) {
	W := mustRows(t, [][]float64{{0, 1}, {1, 0}})
	notDiag := mustRows(t, [][]float64{{1, 1}, {1, 1}})
	_, err := laplacian.Unnormalized(W, notDiag)
	require.ErrorIs(t, err, laplacian.ErrNotDiagonal)

	D3, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	_, err = laplacian.Normalized(W, D3)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = laplacian.Normalized(nil, D3)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
