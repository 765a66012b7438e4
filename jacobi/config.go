// SPDX-License-Identifier: MIT
// Package jacobi: solver configuration.
//
// Purpose:
//   - Replace compile-time constants with an explicit, validated Config passed to Solve.
//   - Keep defaults in one place (ε = 1e-5, 100 rotations).

package jacobi

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/spkmeans/matrix"
)

// Defaults.
const (
	// DefaultEpsilon bounds the per-rotation decrease of off-diagonal energy
	// below which the solver stops.
	DefaultEpsilon = 1e-5

	// DefaultMaxIterations caps the number of rotations.
	DefaultMaxIterations = 100
)

// ErrBadConfig indicates a negative or non-finite tolerance or a negative iteration cap.
var ErrBadConfig = errors.New("jacobi: invalid config")

// Observer is called after every rotation with the 1-based rotation number,
// the pivot (p<q) and the decrease of off-diagonal energy it produced.
type Observer func(iter, p, q int, delta float64)

// Config parameterizes Solve.
type Config struct {
	// Epsilon: stop once a rotation decreases off(A) by no more than this.
	Epsilon float64

	// MaxIterations caps the number of rotations; 0 means "return the input diagonal".
	MaxIterations int

	// CheckSymmetry enables an O(n²) symmetry check before solving.
	// Without it the upper triangle is trusted.
	CheckSymmetry bool

	// SymmetryTol is the absolute tolerance of the symmetry check.
	SymmetryTol float64

	// Observer, when non-nil, receives every rotation.
	Observer Observer
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Epsilon:       DefaultEpsilon,
		MaxIterations: DefaultMaxIterations,
		SymmetryTol:   matrix.DefaultEpsilon,
	}
}

// Validate reports ErrBadConfig for unusable values.
func (c Config) Validate() error {
	if c.Epsilon < 0 || math.IsNaN(c.Epsilon) || math.IsInf(c.Epsilon, 0) {
		return fmt.Errorf("epsilon %g: %w", c.Epsilon, ErrBadConfig)
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("max iterations %d: %w", c.MaxIterations, ErrBadConfig)
	}
	if c.CheckSymmetry && (c.SymmetryTol < 0 || math.IsNaN(c.SymmetryTol)) {
		return fmt.Errorf("symmetry tol %g: %w", c.SymmetryTol, ErrBadConfig)
	}

	return nil
}
