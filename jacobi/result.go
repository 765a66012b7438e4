// SPDX-License-Identifier: MIT

package jacobi

import "github.com/katalvlaran/spkmeans/matrix"

// Eigenpair is one eigenvalue with its unit eigenvector.
type Eigenpair struct {
	Value  float64
	Vector []float64
}

// Result is the outcome of Solve.
// Values[i] pairs with column i of Vectors; order is the solver's diagonal order.
type Result struct {
	Values      []float64
	Vectors     *matrix.Dense // n×n, eigenvectors as columns
	Iterations  int           // rotations performed
	Converged   bool          // false when MaxIterations stopped the loop
	OffDiagonal float64       // off(A) of the final working matrix
}

// Pairs returns index-aligned eigenpairs; vectors are fresh copies of the columns.
// Complexity: O(n²).
func (r *Result) Pairs() []Eigenpair {
	n := len(r.Values)
	out := make([]Eigenpair, n)
	var i, j int
	for j = 0; j < n; j++ {
		vec := make([]float64, n)
		for i = 0; i < n; i++ {
			vec[i], _ = r.Vectors.At(i, j)
		}
		out[j] = Eigenpair{Value: r.Values[j], Vector: vec}
	}

	return out
}
