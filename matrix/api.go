// SPDX-License-Identifier: MIT
// Package matrix - constructors & small utilities.
//
// Purpose:
//   - Intention-revealing constructors (zeros, identity, diagonal) on top of NewDense.
//   - Keep the neutral elements of iterative schemes (identity accumulators,
//     zero staging buffers) one call away.

package matrix

import "math"

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
// Complexity: O(rows*cols).
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing + O(n) diagonal writes.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ { // fixed i order
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// NewDiagonal returns the n×n matrix diag(values).
// Errors: ErrInvalidDimensions (empty), ErrNaNInf (non-finite entry).
// Complexity: O(n^2).
func NewDiagonal(values []float64) (*Dense, error) {
	n := len(values)
	D, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, denseErrorf("NewDiagonal", i, i, ErrNaNInf)
		}
		D.data[i*n+i] = v
	}

	return D, nil
}

// ZerosLike returns a new zero matrix with the same shape as m.
// Complexity: O(rc).
func ZerosLike(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}

	return NewDense(m.Rows(), m.Cols())
}

// CloneMatrix returns a structural clone of m (same type if m is *Dense).
// Complexity: O(r*c).
func CloneMatrix(m Matrix) Matrix {
	return m.Clone()
}

// asDense returns m itself when it already is a *Dense, otherwise a Dense
// copy read through At. Kernels use it so the hot loops run on flat slices.
// Complexity: O(1) for *Dense, O(r*c) otherwise.
func asDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}

	var i, j int
	var v float64
	for i = 0; i < out.r; i++ {
		for j = 0; j < out.c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}
