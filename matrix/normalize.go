// SPDX-License-Identifier: MIT
// Package matrix - row-wise normalization.
//
// Purpose:
//   - Row L2 normalization turns the stacked eigenvectors U into the unit-row
//     embedding T consumed by k-means.
//   - Degenerate rows (norm == 0) are copied as zero rows instead of dividing by zero.

package matrix

import "math"

// RowNorms returns ‖X[i,*]‖₂ for every row.
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func RowNorms(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opNormalizeL2, err)
	}
	d, err := asDense(X)
	if err != nil {
		return nil, matrixErrorf(opNormalizeL2, err)
	}

	return d.rowNorms(), nil
}

func (m *Dense) rowNorms() []float64 {
	norms := make([]float64, m.r)
	var i, j, base int
	var sq, v float64
	for i = 0; i < m.r; i++ {
		sq = ZeroSum
		base = i * m.c
		for j = 0; j < m.c; j++ {
			v = m.data[base+j]
			sq += v * v
		}
		norms[i] = math.Sqrt(sq)
	}

	return norms
}

// NormalizeRowsL2 scales each row to have L2-norm == 1 when possible; returns Y and per-row norms.
// MAIN DESCRIPTION:
//   - Y[i,j] = X[i,j] / ‖X[i,*]‖₂; rows whose norm is exactly zero stay zero rows.
//
// Implementation:
//   - Stage 1 (Validate): ensure X is present.
//   - Stage 2 (Execute): compute L2 norms per row.
//   - Stage 3 (Prepare scales): 1/norm for normal rows; 1 for degenerate rows.
//   - Stage 4 (Apply): scale rows into a fresh Dense.
//
// Returns:
//   - Matrix: normalized copy (X is not mutated).
//   - []float64: the original row norms.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NormalizeRowsL2(X Matrix) (Matrix, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opNormalizeL2, err)
	}
	d, err := asDense(X)
	if err != nil {
		return nil, nil, matrixErrorf(opNormalizeL2, err)
	}

	norms := d.rowNorms()
	scale := make([]float64, d.r)
	for i := 0; i < d.r; i++ {
		if norms[i] > 0 {
			scale[i] = 1.0 / norms[i]
		} else {
			scale[i] = 1.0 // zero row stays zero
		}
	}

	Y, err := scaleRows(d, scale)
	if err != nil {
		return nil, nil, matrixErrorf(opNormalizeL2, err)
	}

	return Y, norms, nil
}

// scaleRows computes out[i,j] = X[i,j] * scale[i].
// Time: O(r*c). Space: O(r*c). Deterministic i→j loops.
func scaleRows(X *Dense, scale []float64) (*Dense, error) {
	if len(scale) != X.r {
		return nil, matrixErrorf(opScaleRows, ErrDimensionMismatch)
	}
	out, err := NewDense(X.r, X.c)
	if err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	out.validateNaNInf = X.validateNaNInf

	var i, j, base int
	var sf float64
	for i = 0; i < X.r; i++ {
		base = i * X.c
		sf = scale[i] // scale factor once per row
		for j = 0; j < X.c; j++ {
			out.data[base+j] = X.data[base+j] * sf
		}
	}

	return out, nil
}
