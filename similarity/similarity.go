// SPDX-License-Identifier: MIT
// Package similarity builds the weighted adjacency (W) and diagonal degree (D)
// matrices of the fully connected similarity graph over a point set.
package similarity

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/spkmeans/matrix"
	"github.com/katalvlaran/spkmeans/point"
)

// Operation tags for error wrapping.
const (
	opWeights = "similarity.Weights"
	opDegrees = "similarity.Degrees"
)

// ErrNilKernel is returned when WeightsWith receives a nil Kernel.
var ErrNilKernel = errors.New("similarity: nil kernel")

// Kernel maps a Euclidean distance to an edge weight.
type Kernel func(dist float64) float64

// Gaussian is the default kernel: exp(-d/2). Note the distance is not squared.
func Gaussian(dist float64) float64 { return math.Exp(-dist / 2) }

// Weights returns W for points using the Gaussian kernel.
func Weights(points point.Set) (*matrix.Dense, error) {
	return WeightsWith(points, Gaussian)
}

// WeightsWith builds the n×n weighted adjacency matrix W.
// MAIN DESCRIPTION:
//   - W[i][i] = 0; W[i][j] = W[j][i] = kernel(‖p_i − p_j‖₂) for i ≠ j.
//
// Implementation:
//   - Stage 1: validate the point set (non-empty, equal dimensions).
//   - Stage 2: allocate a zero n×n Dense (diagonal stays 0).
//   - Stage 3: for every unordered pair i<j compute the weight once and write both halves.
//
// Errors:
//   - point.ErrEmpty, point.ErrDimensionMismatch, matrix.ErrAllocation,
//     matrix.ErrNaNInf (kernel produced a non-finite weight), ErrNilKernel.
//
// Complexity:
//   - Time O(n²·d), Space O(n²).
func WeightsWith(points point.Set, kernel Kernel) (*matrix.Dense, error) {
	if kernel == nil {
		return nil, fmt.Errorf("%s: %w", opWeights, ErrNilKernel)
	}
	if err := points.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", opWeights, err)
	}
	n := points.Len()
	W, err := matrix.NewZeros(n, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opWeights, err)
	}

	var (
		i, j   int
		d, w   float64
		ri, rj []float64
	)
	for i = 0; i < n; i++ {
		ri, _ = W.Row(i) // i is in range by construction

		// Upper triangle only; each weight is mirrored into row j.
		for j = i + 1; j < n; j++ {
			d, _ = point.Distance(points[i], points[j]) // dims validated above
			w = kernel(d)
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return nil, fmt.Errorf("%s: weight (%d,%d): %w", opWeights, i, j, matrix.ErrNaNInf)
			}
			rj, _ = W.Row(j)
			ri[j] = w
			rj[i] = w
		}
	}

	return W, nil
}

// Degrees returns the diagonal degree matrix D with D[i][i] = Σ_j W[i][j].
// Errors: matrix.ErrNilMatrix, matrix.ErrNonSquare, matrix.ErrAllocation.
// Complexity: O(n²).
func Degrees(W matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateSquare(W); err != nil {
		return nil, fmt.Errorf("%s: %w", opDegrees, err)
	}
	n := W.Rows()
	deg := make([]float64, n)

	var (
		i, j int
		v    float64
		sum  float64
		err  error
	)
	for i = 0; i < n; i++ {
		sum = matrix.ZeroSum
		for j = 0; j < n; j++ {
			if v, err = W.At(i, j); err != nil {
				return nil, fmt.Errorf("%s: %w", opDegrees, err)
			}
			sum += v
		}
		deg[i] = sum
	}

	D, err := matrix.NewDiagonal(deg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opDegrees, err)
	}

	return D, nil
}
