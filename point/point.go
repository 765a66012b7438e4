// SPDX-License-Identifier: MIT
// Package point - points in d-dimensional Euclidean space.
//
// Purpose:
//   - Give the input data set of the spectral pipeline a named type.
//   - Centralize Euclidean distance so similarity and k-means agree bit for bit.

package point

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmpty indicates a set with no points or a point with no coordinates.
	ErrEmpty = errors.New("point: empty set")

	// ErrDimensionMismatch indicates points of different dimension in one set.
	ErrDimensionMismatch = errors.New("point: dimension mismatch")

	// ErrNonFinite indicates a NaN or ±Inf coordinate.
	ErrNonFinite = errors.New("point: non-finite coordinate")
)

// Point is a coordinate vector. Treat it as immutable once it is in a Set.
type Point []float64

// Dim returns the number of coordinates.
func (p Point) Dim() int { return len(p) }

// Clone returns an independent copy of p.
func (p Point) Clone() Point {
	out := make(Point, len(p))
	copy(out, p)

	return out
}

// Validate rejects NaN and ±Inf coordinates.
func (p Point) Validate() error {
	for j, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("coordinate %d is %g: %w", j, v, ErrNonFinite)
		}
	}

	return nil
}

// Set is an ordered collection of points of equal dimension.
type Set []Point

// FromRows wraps host nested slices as a Set and validates it. Rows are not copied.
func FromRows(rows [][]float64) (Set, error) {
	s := make(Set, len(rows))
	for i := range rows {
		s[i] = rows[i]
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Len returns the number of points.
func (s Set) Len() int { return len(s) }

// Dim returns the common dimension, or 0 for an empty set.
func (s Set) Dim() int {
	if len(s) == 0 {
		return 0
	}

	return len(s[0])
}

// Validate rejects empty sets, zero-dimensional points, ragged sets and
// non-finite coordinates.
// Complexity: O(n*d).
func (s Set) Validate() error {
	if len(s) == 0 || len(s[0]) == 0 {
		return ErrEmpty
	}
	d := len(s[0])
	for i := range s {
		if len(s[i]) != d {
			return fmt.Errorf("point %d has dim %d, want %d: %w", i, len(s[i]), d, ErrDimensionMismatch)
		}
		if err := s[i].Validate(); err != nil {
			return fmt.Errorf("point %d: %w", i, err)
		}
	}

	return nil
}

// Distance returns the Euclidean (L2) distance between p and q.
// Errors: ErrDimensionMismatch when the dimensions differ.
// Complexity: O(d).
func Distance(p, q Point) (float64, error) {
	if len(p) != len(q) {
		return 0, ErrDimensionMismatch
	}

	return floats.Distance(p, q, 2), nil
}

// Mean returns the coordinate-wise mean of s[idx...] (all points when idx is nil).
// Errors: ErrEmpty when nothing is selected.
// Complexity: O(|idx|*d).
func Mean(s Set, idx []int) (Point, error) {
	if len(s) == 0 {
		return nil, ErrEmpty
	}
	out := make(Point, s.Dim())
	if idx == nil {
		for _, p := range s {
			floats.Add(out, p)
		}
		floats.Scale(1/float64(len(s)), out)

		return out, nil
	}
	if len(idx) == 0 {
		return nil, ErrEmpty
	}
	for _, i := range idx {
		floats.Add(out, s[i])
	}
	floats.Scale(1/float64(len(idx)), out)

	return out, nil
}
