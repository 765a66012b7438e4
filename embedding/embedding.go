// SPDX-License-Identifier: MIT

// Package embedding turns an eigendecomposition into the spectral embedding:
// it orders the eigenpairs, picks the target dimension k with the eigengap
// heuristic, stacks the leading k eigenvectors as columns of U and
// row-normalizes U into T.
package embedding

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/spkmeans/jacobi"
	"github.com/katalvlaran/spkmeans/matrix"
)

// Operation tags for error wrapping.
const (
	opBuild     = "embedding.Build"
	opNormalize = "embedding.Normalize"
	opEmbed     = "embedding.Embed"
)

var (
	// ErrBadK is returned when k is negative or exceeds the number of eigenpairs.
	ErrBadK = errors.New("embedding: k out of range")

	// ErrNoPairs is returned for an empty eigendecomposition.
	ErrNoPairs = errors.New("embedding: no eigenpairs")

	// ErrBadOrder is returned by ParseOrder for unknown names.
	ErrBadOrder = errors.New("embedding: unknown spectrum order")
)

// Embedding is the result of Embed.
type Embedding struct {
	Pairs []jacobi.Eigenpair // sorted eigenpairs
	K     int                // resolved dimension
	U     *matrix.Dense      // n×K leading eigenvectors as columns
	T     *matrix.Dense      // U with unit-norm rows (zero rows kept)
}

// Eigengap returns k = argmax_i |λ_i − λ_{i+1}| + 1 over i ∈ [0, ⌊n/2⌋) on
// already sorted values. The first maximal gap wins; n ≤ 1 yields 1.
// The result never exceeds ⌈n/2⌉.
// Complexity: O(n).
func Eigengap(values []float64) int {
	n := len(values)
	limit := n / 2
	if limit > n-1 {
		limit = n - 1
	}

	best, arg := -1.0, 0
	var gap float64
	for i := 0; i < limit; i++ {
		gap = math.Abs(values[i] - values[i+1])
		if gap > best { // strict: first maximal gap wins
			best, arg = gap, i
		}
	}

	return arg + 1
}

// Build stacks the first k vectors of pairs as the columns of an n×k matrix.
// Errors: ErrNoPairs, ErrBadK, matrix.ErrDimensionMismatch, matrix.ErrAllocation.
// Complexity: O(n·k).
func Build(pairs []jacobi.Eigenpair, k int) (*matrix.Dense, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%s: %w", opBuild, ErrNoPairs)
	}
	if k < 1 || k > len(pairs) {
		return nil, fmt.Errorf("%s: k=%d n=%d: %w", opBuild, k, len(pairs), ErrBadK)
	}
	n := len(pairs[0].Vector)
	U, err := matrix.NewZeros(n, k)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opBuild, err)
	}

	var i, j int
	var row []float64
	for j = 0; j < k; j++ {
		if len(pairs[j].Vector) != n {
			return nil, fmt.Errorf("%s: vector %d: %w", opBuild, j, matrix.ErrDimensionMismatch)
		}
	}
	for i = 0; i < n; i++ {
		row, _ = U.Row(i)
		for j = 0; j < k; j++ {
			row[j] = pairs[j].Vector[i]
		}
	}

	return U, nil
}

// Normalize returns T with T[i,*] = U[i,*]/‖U[i,*]‖₂; zero rows are copied as zero.
func Normalize(U matrix.Matrix) (*matrix.Dense, error) {
	T, _, err := matrix.NormalizeRowsL2(U)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNormalize, err)
	}

	return T.(*matrix.Dense), nil
}

// Embed orders the eigenpairs of res, resolves k (0 selects the eigengap
// heuristic) and returns both U and its row-normalized form T.
// MAIN DESCRIPTION:
//   - The spectral embedding step between the eigensolver and k-means.
//
// Implementation:
//   - Stage 1: Sort(res.Pairs(), order).
//   - Stage 2: k == 0 ⇒ Eigengap over the sorted values.
//   - Stage 3: Build U from the top-k vectors, then Normalize.
//
// Errors:
//   - ErrNoPairs, ErrBadK (k < 0 or k > n), matrix.ErrAllocation.
//
// Complexity:
//   - Time O(n² + n log n), Space O(n·k).
func Embed(res *jacobi.Result, k int, order Order) (*Embedding, error) {
	if res == nil || len(res.Values) == 0 {
		return nil, fmt.Errorf("%s: %w", opEmbed, ErrNoPairs)
	}
	n := len(res.Values)
	if k < 0 || k > n {
		return nil, fmt.Errorf("%s: k=%d n=%d: %w", opEmbed, k, n, ErrBadK)
	}

	pairs := Sort(res.Pairs(), order)
	if k == 0 {
		values := make([]float64, n)
		for i := range pairs {
			values[i] = pairs[i].Value
		}
		k = Eigengap(values)
	}

	U, err := Build(pairs, k)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opEmbed, err)
	}
	T, err := Normalize(U)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opEmbed, err)
	}

	return &Embedding{Pairs: pairs, K: k, U: U, T: T}, nil
}
