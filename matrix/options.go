// SPDX-License-Identifier: MIT
// Package matrix: numeric policy defaults.
//
// Purpose:
//   - Keep every tunable of the dense layer in one place (single source of truth).
//   - Document the allocation ceiling that stands in for "allocation failure".

package matrix

import "math"

// Numeric policy.
const (
	// DefaultEpsilon is the tolerance used by structural checks (symmetry,
	// diagonality) when the caller has no better estimate.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on Set.
	DefaultValidateNaNInf = true
)

// MaxElements caps the number of float64 cells a single Dense may hold
// (2^28 cells ≈ 2 GiB). Larger requests fail with ErrAllocation instead of
// letting the runtime abort the process.
const MaxElements = 1 << 28

// checkAlloc validates that rows*cols neither overflows int nor exceeds MaxElements.
// Complexity: O(1).
func checkAlloc(rows, cols int) error {
	if rows > 0 && cols > math.MaxInt/rows {
		return ErrAllocation // product would overflow
	}
	if rows*cols > MaxElements {
		return ErrAllocation
	}

	return nil
}
