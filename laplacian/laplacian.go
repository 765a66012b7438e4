// SPDX-License-Identifier: MIT
// Package laplacian forms the graph Laplacian L = D − W and its symmetric
// normalization N = D^{-1/2}·L·D^{-1/2}.
//
// Both products in Normalized have a diagonal operand, so matrix.Mul reduces
// them to row and column scaling: the whole stage is O(n²).
package laplacian

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/spkmeans/matrix"
	"github.com/katalvlaran/spkmeans/similarity"
)

// Operation tags for error wrapping.
const (
	opUnnormalized = "laplacian.Unnormalized"
	opNormalized   = "laplacian.Normalized"
	opFromWeights  = "laplacian.FromWeights"
)

var (
	// ErrDegenerateGraph is returned when some vertex has non-positive degree,
	// so D^{-1/2} does not exist (e.g. a single point, or a kernel that
	// underflowed every weight of a row to zero).
	ErrDegenerateGraph = errors.New("laplacian: degenerate graph (non-positive degree)")

	// ErrNotDiagonal is returned when the degree operand has off-diagonal entries.
	ErrNotDiagonal = errors.New("laplacian: degree matrix is not diagonal")
)

// Unnormalized returns L with L[i][i] = D[i][i] and L[i][j] = −W[i][j] for i ≠ j.
// Errors: matrix.ErrNilMatrix, matrix.ErrNonSquare, matrix.ErrDimensionMismatch,
// ErrNotDiagonal.
// Complexity: O(n²).
func Unnormalized(W, D matrix.Matrix) (*matrix.Dense, error) {
	deg, err := checkOperands(W, D)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opUnnormalized, err)
	}
	n := W.Rows()
	L, err := matrix.NewZeros(n, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opUnnormalized, err)
	}

	var (
		i, j int
		w    float64
		row  []float64
	)
	for i = 0; i < n; i++ {
		row, _ = L.Row(i)
		for j = 0; j < n; j++ {
			if i == j {
				row[j] = deg[i]
				continue
			}
			if w, err = W.At(i, j); err != nil {
				return nil, fmt.Errorf("%s: %w", opUnnormalized, err)
			}
			row[j] = -w
		}
	}

	return L, nil
}

// Normalized returns N = D^{-1/2}·L·D^{-1/2}.
// MAIN DESCRIPTION:
//   - Symmetric normalization of the Laplacian; N[i][j] = L[i][j]/√(d_i·d_j).
//
// Implementation:
//   - Stage 1: validate shapes and that D is diagonal.
//   - Stage 2: reject any d_i ≤ 0 with ErrDegenerateGraph before dividing.
//   - Stage 3: form D^{-1/2} and run two diagonal-aware products.
//
// Errors:
//   - ErrDegenerateGraph, ErrNotDiagonal, matrix.ErrNilMatrix,
//     matrix.ErrNonSquare, matrix.ErrDimensionMismatch, matrix.ErrAllocation.
//
// Complexity:
//   - Time O(n²), Space O(n²).
func Normalized(L, D matrix.Matrix) (*matrix.Dense, error) {
	deg, err := checkOperands(L, D)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNormalized, err)
	}

	inv := make([]float64, len(deg))
	for i, d := range deg {
		if !(d > 0) { // also catches NaN
			return nil, fmt.Errorf("%s: vertex %d degree %g: %w", opNormalized, i, d, ErrDegenerateGraph)
		}
		inv[i] = 1 / math.Sqrt(d)
	}
	S, err := matrix.NewDiagonal(inv)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNormalized, err)
	}

	left, err := matrix.Mul(S, L)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNormalized, err)
	}
	N, err := matrix.Mul(left, S)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNormalized, err)
	}

	return N.(*matrix.Dense), nil
}

// FromWeights chains Degrees → Unnormalized → Normalized for an adjacency matrix W.
func FromWeights(W matrix.Matrix) (*matrix.Dense, error) {
	D, err := similarity.Degrees(W)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFromWeights, err)
	}
	L, err := Unnormalized(W, D)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFromWeights, err)
	}
	N, err := Normalized(L, D)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFromWeights, err)
	}

	return N, nil
}

// checkOperands validates a square n×n operand and an n×n diagonal D,
// returning D's diagonal.
func checkOperands(A, D matrix.Matrix) ([]float64, error) {
	if err := matrix.ValidateSquare(A); err != nil {
		return nil, err
	}
	if err := matrix.ValidateSquare(D); err != nil {
		return nil, err
	}
	if A.Rows() != D.Rows() {
		return nil, matrix.ErrDimensionMismatch
	}
	if !matrix.IsDiagonal(D) {
		return nil, ErrNotDiagonal
	}

	return matrix.Diagonal(D)
}
