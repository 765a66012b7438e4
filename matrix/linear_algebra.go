// SPDX-License-Identifier: MIT
// Package matrix provides the linear-algebra kernels used by the spectral
// pipeline: diagonal-aware multiplication, transpose and off-diagonal energy.
// All functions perform strict fail-fast validation and return sentinel
// errors wrapped with an operation tag.
//
// Notes:
//   - Kernels never mutate their operands; results are freshly allocated.
//   - Non-*Dense operands are materialized once via asDense so the hot loops
//     always run on flat row-major slices.

package matrix

import "fmt"

// ZeroSum is the initial value of every accumulation.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opMul         = "Mul"
	opTranspose   = "Transpose"
	opDiagonal    = "Diagonal"
	opOffDiagonal = "OffDiagonalSquares"
	opNormalizeL2 = "NormalizeRowsL2"
	opScaleRows   = "scaleRows"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
// Complexity: O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// IsDiagonal reports whether m is square and every off-diagonal entry is exactly 0.
// Exact comparison is intentional: it selects the structural fast path in Mul,
// and a tolerance would silently drop small couplings.
// Complexity: O(n^2).
func IsDiagonal(m Matrix) bool {
	if ValidateSquare(m) != nil {
		return false
	}
	d, err := asDense(m)
	if err != nil {
		return false
	}

	return d.offDiagonalWithin(0)
}

// Diagonal returns a copy of the main diagonal of a square matrix.
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(n).
func Diagonal(m Matrix) ([]float64, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opDiagonal, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opDiagonal, err)
	}
	out := make([]float64, d.r)
	for i := 0; i < d.r; i++ {
		out[i] = d.data[i*d.c+i]
	}

	return out, nil
}

// Mul computes the matrix product a × b, exploiting diagonal structure.
// MAIN DESCRIPTION:
//   - A diagonal operand only scales rows (left) or columns (right) of the other,
//     so the product costs O(r*c) instead of O(r*n*c).
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b); materialize operands as *Dense.
//   - Stage 2: classify operands (diag×diag, diag×dense, dense×diag, dense×dense).
//   - Stage 3: run the matching kernel into a fresh Dense(a.Rows × b.Cols).
//
// Behavior highlights:
//   - diag×diag writes only the diagonal.
//   - dense×dense uses the cache-friendly i→k→j order and skips zero A[i,k].
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAllocation (wrapped with "Mul").
//
// Determinism:
//   - Fixed loop orders independent of data values.
//
// Complexity:
//   - Diagonal cases: Time O(r*c). General: Time O(r*n*c). Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(da.r, db.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	leftDiag := da.offDiagonalWithin(0)  // false for non-square
	rightDiag := db.offDiagonalWithin(0) // false for non-square

	var (
		i, j, k     int
		av          float64
		baseA, base int
		baseB       int
	)
	switch {
	case leftDiag && rightDiag:
		// Both diagonal: multiply diagonal by diagonal.
		for i = 0; i < da.r; i++ {
			res.data[i*res.c+i] = da.data[i*da.c+i] * db.data[i*db.c+i]
		}
	case leftDiag:
		// diag(a) × b: scale row i of b by a[i,i].
		for i = 0; i < da.r; i++ {
			av = da.data[i*da.c+i]
			base = i * db.c
			for j = 0; j < db.c; j++ {
				res.data[base+j] = av * db.data[base+j]
			}
		}
	case rightDiag:
		// a × diag(b): scale column j of a by b[j,j].
		for i = 0; i < da.r; i++ {
			base = i * da.c
			for j = 0; j < da.c; j++ {
				res.data[base+j] = da.data[base+j] * db.data[j*db.c+j]
			}
		}
	default:
		// General product, row-major i→k→j.
		for i = 0; i < da.r; i++ {
			baseA = i * da.c
			base = i * res.c
			for k = 0; k < da.c; k++ {
				av = da.data[baseA+k]
				if av == 0 {
					continue // skip zero for performance
				}
				baseB = k * db.c
				for j = 0; j < db.c; j++ {
					res.data[base+j] += av * db.data[baseB+j]
				}
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Errors: ErrNilMatrix, ErrAllocation (wrapped with "Transpose").
// Complexity: O(r*c) time and space.
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(d.c, d.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j, base int
	for i = 0; i < d.r; i++ {
		base = i * d.c
		for j = 0; j < d.c; j++ {
			res.data[j*res.c+i] = d.data[base+j]
		}
	}

	return res, nil
}

// OffDiagonalSquares returns off(A) = Σ_{p≠q} A[p,q]², the off-diagonal energy
// used as the Jacobi convergence measure.
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(n^2).
func OffDiagonalSquares(m Matrix) (float64, error) {
	if err := ValidateSquare(m); err != nil {
		return 0, matrixErrorf(opOffDiagonal, err)
	}
	d, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opOffDiagonal, err)
	}

	return d.offDiagonalSquares(), nil
}

// offDiagonalSquares is the flat-slice kernel behind OffDiagonalSquares.
func (m *Dense) offDiagonalSquares() float64 {
	var i, j, base int
	var v float64
	sum := ZeroSum
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			if i == j {
				continue
			}
			v = m.data[base+j]
			sum += v * v
		}
	}

	return sum
}
