// Package matrix_test contains unit tests for the linear-algebra kernels.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/spkmeans/matrix"
	"github.com/stretchr/testify/require"
)

func TestNewIdentityAndDiagonal(t *testing.T) {
	I, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	require.True(t, matrix.IsDiagonal(I))
	require.Equal(t, 1.0, MustAt(t, I, 2, 2))
	require.Equal(t, 0.0, MustAt(t, I, 0, 2))

	D, err := matrix.NewDiagonal([]float64{2, 3})
	require.NoError(t, err)
	diag, err := matrix.Diagonal(D)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 3}, diag)

	_, err = matrix.NewDiagonal([]float64{math.Inf(1)})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestIsDiagonal(t *testing.T) {
	require.False(t, matrix.IsDiagonal(NewFilledDense(t, 2, 2, []float64{1, 1e-300, 0, 1})))
	require.False(t, matrix.IsDiagonal(MustDense(t, 2, 3)), "non-square is never diagonal")
	require.True(t, matrix.IsDiagonal(hide{NewFilledDense(t, 2, 2, []float64{4, 0, 0, 5})}))
	require.False(t, matrix.IsDiagonal(nil))
}

// TestMul_Paths checks all four structural paths against a hand-computed product.
func TestMul_Paths(t *testing.T) {
	t.Parallel()

	A := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	D := NewFilledDense(t, 2, 2, []float64{2, 0, 0, 3})
	E := NewFilledDense(t, 2, 2, []float64{5, 0, 0, 7})

	cases := []struct {
		name string
		a, b matrix.Matrix
		want []float64
	}{
		{"dense x dense", A, A, []float64{7, 10, 15, 22}},
		{"diag x dense", D, A, []float64{2, 4, 9, 12}},
		{"dense x diag", A, D, []float64{2, 6, 6, 12}},
		{"diag x diag", D, E, []float64{10, 0, 0, 21}},
		{"fallback dense x diag", hide{A}, hide{D}, []float64{2, 6, 6, 12}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := matrix.Mul(tc.a, tc.b)
			require.NoError(t, err)
			RequireMatrixInDelta(t, NewFilledDense(t, 2, 2, tc.want), got, 0)
		})
	}
}

func TestMul_Rectangular(t *testing.T) {
	A := NewFilledDense(t, 2, 3, []float64{1, 0, 2, 0, 1, 1})
	B := NewFilledDense(t, 3, 1, []float64{1, 2, 3})
	got, err := matrix.Mul(A, B)
	require.NoError(t, err)
	RequireMatrixInDelta(t, NewFilledDense(t, 2, 1, []float64{7, 5}), got, 0)
}

func TestMul_Errors(t *testing.T) {
	_, err := matrix.Mul(MustDense(t, 2, 3), MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Mul(nil, MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	var typedNil *matrix.Dense
	_, err = matrix.Mul(MustDense(t, 2, 2), typedNil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestTranspose(t *testing.T) {
	A := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	got, err := matrix.Transpose(A)
	require.NoError(t, err)
	RequireMatrixInDelta(t, NewFilledDense(t, 3, 2, []float64{1, 4, 2, 5, 3, 6}), got, 0)

	_, err = matrix.Transpose(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestOffDiagonalSquares(t *testing.T) {
	A := NewFilledDense(t, 2, 2, []float64{9, 1, 2, 9})
	off, err := matrix.OffDiagonalSquares(A)
	require.NoError(t, err)
	require.Equal(t, 5.0, off)

	_, err = matrix.OffDiagonalSquares(MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestValidateSymmetric(t *testing.T) {
	sym := NewFilledDense(t, 2, 2, []float64{1, 2, 2, 1})
	require.NoError(t, matrix.ValidateSymmetric(sym, 0))

	asym := NewFilledDense(t, 2, 2, []float64{1, 2, 2.1, 1})
	require.ErrorIs(t, matrix.ValidateSymmetric(asym, 1e-3), matrix.ErrAsymmetry)
	require.NoError(t, matrix.ValidateSymmetric(asym, -0.2), "negative tol is normalized")
	require.ErrorIs(t, matrix.ValidateSymmetric(asym, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateSymmetric(MustDense(t, 1, 2), 0), matrix.ErrNonSquare)
}

func TestIsZeroOffDiagonal(t *testing.T) {
	A := NewFilledDense(t, 2, 2, []float64{1, 1e-12, 1e-12, 1})
	ok, err := matrix.IsZeroOffDiagonal(A, 1e-9)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = matrix.IsZeroOffDiagonal(A, 0)
	require.NoError(t, err)
	require.False(t, ok)
}
