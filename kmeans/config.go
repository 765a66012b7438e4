// SPDX-License-Identifier: MIT

package kmeans

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Defaults.
const (
	// DefaultMaxIterations caps assignment/update cycles.
	DefaultMaxIterations = 200

	// DefaultEpsilon: stop once no centroid moves farther than this.
	DefaultEpsilon = 0.01
)

var (
	// ErrEmptyInput indicates no points (or zero-dimensional points).
	ErrEmptyInput = errors.New("kmeans: empty input")

	// ErrBadK indicates k < 1 or k > n.
	ErrBadK = errors.New("kmeans: k out of range")

	// ErrDimensionMismatch indicates points or centroids of differing dimension.
	ErrDimensionMismatch = errors.New("kmeans: dimension mismatch")

	// ErrEmptyCluster is returned under FailOnEmpty when a cluster receives no points.
	ErrEmptyCluster = errors.New("kmeans: empty cluster")

	// ErrBadConfig indicates a negative or non-finite epsilon, a negative
	// iteration cap or an unknown policy.
	ErrBadConfig = errors.New("kmeans: invalid config")
)

// EmptyClusterPolicy decides what the update step does with a cluster that
// received no points.
type EmptyClusterPolicy int

const (
	// KeepPrevious leaves the centroid where it was (the default).
	KeepPrevious EmptyClusterPolicy = iota
	// FailOnEmpty aborts the fit with ErrEmptyCluster.
	FailOnEmpty
	// ReseedFarthest moves the centroid onto the point farthest from its own
	// centroid; ties resolve to the lowest point index.
	ReseedFarthest
)

// String implements fmt.Stringer.
func (p EmptyClusterPolicy) String() string {
	switch p {
	case KeepPrevious:
		return "keep"
	case FailOnEmpty:
		return "fail"
	case ReseedFarthest:
		return "reseed"
	default:
		return fmt.Sprintf("EmptyClusterPolicy(%d)", int(p))
	}
}

// ParsePolicy maps "keep", "fail" and "reseed" to a policy; "" means KeepPrevious.
func ParsePolicy(s string) (EmptyClusterPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keep":
		return KeepPrevious, nil
	case "fail":
		return FailOnEmpty, nil
	case "reseed":
		return ReseedFarthest, nil
	default:
		return 0, fmt.Errorf("empty cluster policy %q: %w", s, ErrBadConfig)
	}
}

// Config parameterizes Fit.
type Config struct {
	MaxIterations int
	Epsilon       float64
	EmptyCluster  EmptyClusterPolicy

	// Observer, when non-nil, is called after every cycle with the 1-based
	// cycle number and the largest centroid move of that cycle.
	Observer func(iter int, maxDelta float64)
}

// DefaultConfig returns ε = 0.01, 200 iterations, KeepPrevious.
func DefaultConfig() Config {
	return Config{
		MaxIterations: DefaultMaxIterations,
		Epsilon:       DefaultEpsilon,
		EmptyCluster:  KeepPrevious,
	}
}

// Validate reports ErrBadConfig for unusable values.
func (c Config) Validate() error {
	if c.MaxIterations < 0 {
		return fmt.Errorf("max iterations %d: %w", c.MaxIterations, ErrBadConfig)
	}
	if c.Epsilon < 0 || math.IsNaN(c.Epsilon) || math.IsInf(c.Epsilon, 0) {
		return fmt.Errorf("epsilon %g: %w", c.Epsilon, ErrBadConfig)
	}
	if c.EmptyCluster < KeepPrevious || c.EmptyCluster > ReseedFarthest {
		return fmt.Errorf("policy %d: %w", int(c.EmptyCluster), ErrBadConfig)
	}

	return nil
}
