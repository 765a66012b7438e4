// SPDX-License-Identifier: MIT

// Package jacobi diagonalizes real symmetric matrices with classical
// (largest-pivot) Jacobi rotations.
//
// Each rotation zeroes the largest off-diagonal entry A[p][q] and is
// accumulated into V, so on exit A ≈ Vᵀ·M·V is diagonal, the diagonal holds the
// eigenvalues and the columns of V the orthonormal eigenvectors.
package jacobi

import (
	"fmt"
	"math"

	"github.com/katalvlaran/spkmeans/matrix"
)

const opSolve = "jacobi.Solve"

// buffer is a working matrix together with its row views.
type buffer struct {
	m    *matrix.Dense
	rows [][]float64
}

func newBuffer(n int) (buffer, error) {
	m, err := matrix.NewZeros(n, n)
	if err != nil {
		return buffer{}, err
	}

	return wrap(m), nil
}

func wrap(m *matrix.Dense) buffer {
	rows := make([][]float64, m.Rows())
	for i := range rows {
		rows[i], _ = m.Row(i) // in range by construction
	}

	return buffer{m: m, rows: rows}
}

// off returns Σ_{i≠j} A[i][j]² of the buffer.
func (b buffer) off() float64 {
	v, _ := matrix.OffDiagonalSquares(b.m) // square by construction

	return v
}

// Solve computes all eigenpairs of the symmetric matrix m.
// MAIN DESCRIPTION:
//   - Repeats: pick the pivot (p,q) = argmax_{i<j} |A[i][j]| (first in row-major
//     order on ties), rotate A into A′ with A′[p][q] = 0 and accumulate the
//     rotation into V. Stops once a rotation decreases off(A) = Σ_{i≠j} A[i][j]²
//     by no more than cfg.Epsilon, or after cfg.MaxIterations rotations.
//
// Implementation:
//   - Stage 1 (Validate): config, nil/square, optional symmetry.
//   - Stage 2 (Prepare): working copy cur, scratch next, V = I.
//   - Stage 3 (Iterate): θ = (A[q][q] − A[p][p]) / (2A[p][q]),
//     t = sign(θ)/(|θ| + √(θ²+1)) with sign(0) = +1, c = 1/√(t²+1), s = t·c.
//     Rows/columns p,q of A′ are rebuilt from A, V's columns p,q are rotated
//     from their pre-update values, then cur and next are exchanged.
//   - Stage 4 (Finalize): eigenvalues are the diagonal of cur.
//
// Behavior highlights:
//   - Input whose off-diagonal energy is already ≤ ε (in particular a diagonal
//     input) performs zero rotations: Values = diag(m), Vectors = I.
//   - Reaching MaxIterations is not an error; Result.Converged reports it.
//   - m is never mutated.
//
// Errors:
//   - ErrBadConfig, matrix.ErrNilMatrix, matrix.ErrNonSquare,
//     matrix.ErrAsymmetry (CheckSymmetry only), matrix.ErrAllocation.
//
// Complexity:
//   - Time O(n²) per rotation (pivot search and off-energy), Space O(n²).
func Solve(m matrix.Matrix, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", opSolve, err)
	}
	if err := matrix.ValidateSquare(m); err != nil {
		return nil, fmt.Errorf("%s: %w", opSolve, err)
	}
	if cfg.CheckSymmetry {
		if err := matrix.ValidateSymmetric(m, cfg.SymmetryTol); err != nil {
			return nil, fmt.Errorf("%s: %w", opSolve, err)
		}
	}

	n := m.Rows()
	cur, err := newBuffer(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSolve, err)
	}
	if err = load(cur, m); err != nil {
		return nil, fmt.Errorf("%s: %w", opSolve, err)
	}
	next, err := newBuffer(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSolve, err)
	}
	V, err := matrix.NewIdentity(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSolve, err)
	}
	vrows := wrap(V).rows

	var (
		iter       int
		p, q       int
		theta, t   float64
		c, s       float64
		off, delta float64
		offNext    float64
	)
	off = cur.off()
	delta = off
	for delta > cfg.Epsilon && iter < cfg.MaxIterations {
		p, q = pivot(cur.rows)
		if cur.rows[p][q] == 0 {
			// Upper triangle is exactly zero: no rotation can lower off(A) further.
			delta = 0
			break
		}

		theta = (cur.rows[q][q] - cur.rows[p][p]) / (2 * cur.rows[p][q])
		t = tangent(theta)
		c = 1 / math.Sqrt(t*t+1)
		s = t * c

		rotate(cur.rows, next.rows, p, q, c, s)
		accumulate(vrows, p, q, c, s)

		offNext = next.off()
		delta = off - offNext
		off = offNext
		cur, next = next, cur
		iter++

		if cfg.Observer != nil {
			cfg.Observer(iter, p, q, delta)
		}
	}

	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = cur.rows[i][i]
	}

	return &Result{
		Values:      values,
		Vectors:     V,
		Iterations:  iter,
		Converged:   delta <= cfg.Epsilon,
		OffDiagonal: off,
	}, nil
}

// load copies m into b.
func load(b buffer, m matrix.Matrix) error {
	if d, ok := m.(*matrix.Dense); ok {
		return b.m.CopyFrom(d)
	}
	var (
		i, j int
		v    float64
		err  error
	)
	for i = range b.rows {
		for j = range b.rows[i] {
			if v, err = m.At(i, j); err != nil {
				return err
			}
			b.rows[i][j] = v
		}
	}

	return nil
}

// pivot returns (p,q), p<q, maximizing |A[p][q]|; strict > keeps the first hit.
func pivot(a [][]float64) (int, int) {
	p, q := 0, 1
	best := -1.0
	var i, j int
	var v float64
	for i = 0; i < len(a); i++ {
		for j = i + 1; j < len(a); j++ {
			v = math.Abs(a[i][j])
			if v > best {
				best = v
				p, q = i, j
			}
		}
	}

	return p, q
}

// tangent returns t = sign(θ)/(|θ| + √(θ²+1)), sign(0) = +1.
// For |θ| so large that θ² overflows, t ≈ 1/(2θ).
func tangent(theta float64) float64 {
	sign := 1.0
	if theta < 0 {
		sign = -1.0
	}
	abs := math.Abs(theta)
	sq := theta * theta
	if math.IsInf(sq, 0) {
		return 1 / (2 * theta)
	}

	return sign / (abs + math.Sqrt(sq+1))
}

// rotate writes A′ = Jᵀ·A·J into dst for the rotation (p,q,c,s).
// Only rows/columns p and q differ from A; the rest is copied.
func rotate(src, dst [][]float64, p, q int, c, s float64) {
	var r int
	for r = range src {
		copy(dst[r], src[r])
	}

	var arp, arq float64
	for r = range src {
		if r == p || r == q {
			continue
		}
		arp, arq = src[r][p], src[r][q]
		dst[r][p] = c*arp - s*arq
		dst[p][r] = dst[r][p]
		dst[r][q] = c*arq + s*arp
		dst[q][r] = dst[r][q]
	}

	app, aqq, apq := src[p][p], src[q][q], src[p][q]
	dst[p][p] = c*c*app + s*s*aqq - 2*s*c*apq
	dst[q][q] = s*s*app + c*c*aqq + 2*s*c*apq
	dst[p][q] = 0
	dst[q][p] = 0
}

// accumulate applies the rotation to columns p,q of V in place.
func accumulate(v [][]float64, p, q int, c, s float64) {
	var vp, vq float64
	for r := range v {
		vp, vq = v[r][p], v[r][q] // pre-update values
		v[r][p] = c*vp - s*vq
		v[r][q] = s*vp + c*vq
	}
}
