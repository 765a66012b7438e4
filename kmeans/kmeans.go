// SPDX-License-Identifier: MIT

// Package kmeans implements Lloyd's k-means with caller-supplied initial
// centroids, an explicit empty-cluster policy and optional k-means++ seeding.
package kmeans

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/spkmeans/point"
)

// Operation tags for error wrapping.
const (
	opFit  = "kmeans.Fit"
	opStep = "kmeans.Step"
	opSeed = "kmeans.SeedPlusPlus"
)

// Cluster is a centroid with the number of points assigned to it.
type Cluster struct {
	Centroid point.Point
	Size     int
}

// Result is the outcome of Fit. Labels and Sizes come from a final assignment
// against the returned centroids.
type Result struct {
	Centroids  []point.Point
	Labels     []int
	Sizes      []int
	Iterations int
	Converged  bool
}

// Clusters zips centroids and sizes.
func (r *Result) Clusters() []Cluster {
	out := make([]Cluster, len(r.Centroids))
	for i := range out {
		out[i] = Cluster{Centroid: r.Centroids[i], Size: r.Sizes[i]}
	}

	return out
}

// StepResult is one assignment/update cycle.
type StepResult struct {
	Centroids []point.Point // updated centroids (fresh slices)
	Labels    []int         // assignment against the input centroids
	Sizes     []int         // per-cluster counts of that assignment
	MaxDelta  float64       // largest distance any centroid moved
}

// Fit runs assignment/update cycles from initial until no centroid moves
// farther than cfg.Epsilon or cfg.MaxIterations cycles have run.
// MAIN DESCRIPTION:
//   - Assignment: each point goes to its nearest centroid; strict < means the
//     lowest centroid index wins ties.
//   - Update: each centroid becomes the mean of its points; empty clusters
//     follow cfg.EmptyCluster.
//
// Implementation:
//   - Stage 1: validate config, points and initial centroids (k ∈ [1,n], equal dims).
//   - Stage 2: repeat Step; stop on MaxDelta ≤ ε or the cap.
//   - Stage 3: final assignment for Labels/Sizes.
//
// Errors:
//   - ErrBadConfig, ErrEmptyInput, ErrBadK, ErrDimensionMismatch,
//     ErrEmptyCluster (FailOnEmpty only), point.ErrNonFinite (points or centroids).
//
// Complexity:
//   - Time O(iter·n·k·d), Space O(n + k·d).
func Fit(points point.Set, initial []point.Point, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", opFit, err)
	}
	if err := validate(points, initial); err != nil {
		return nil, fmt.Errorf("%s: %w", opFit, err)
	}

	centroids := make([]point.Point, len(initial))
	for i := range initial {
		centroids[i] = initial[i].Clone()
	}

	var (
		iter      int
		converged bool
	)
	for iter < cfg.MaxIterations {
		st, err := step(points, centroids, cfg.EmptyCluster)
		if err != nil {
			return nil, fmt.Errorf("%s: iteration %d: %w", opFit, iter+1, err)
		}
		centroids = st.Centroids
		iter++
		if cfg.Observer != nil {
			cfg.Observer(iter, st.MaxDelta)
		}
		if st.MaxDelta <= cfg.Epsilon {
			converged = true
			break
		}
	}

	labels, sizes := assign(points, centroids)

	return &Result{
		Centroids:  centroids,
		Labels:     labels,
		Sizes:      sizes,
		Iterations: iter,
		Converged:  converged,
	}, nil
}

// Step performs a single assignment/update cycle without mutating its inputs.
// Errors: ErrEmptyInput, ErrBadK, ErrDimensionMismatch, ErrBadConfig, ErrEmptyCluster,
// point.ErrNonFinite.
func Step(points point.Set, centroids []point.Point, policy EmptyClusterPolicy) (*StepResult, error) {
	if err := (Config{EmptyCluster: policy}).Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", opStep, err)
	}
	if err := validate(points, centroids); err != nil {
		return nil, fmt.Errorf("%s: %w", opStep, err)
	}
	st, err := step(points, centroids, policy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opStep, err)
	}

	return st, nil
}

func validate(points point.Set, centroids []point.Point) error {
	if err := checkPoints(points); err != nil {
		return err
	}
	k := len(centroids)
	if k < 1 || k > points.Len() {
		return fmt.Errorf("k=%d n=%d: %w", k, points.Len(), ErrBadK)
	}
	d := points.Dim()
	for i, c := range centroids {
		if len(c) != d {
			return fmt.Errorf("centroid %d has dim %d, want %d: %w", i, len(c), d, ErrDimensionMismatch)
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("centroid %d: %w", i, err)
		}
	}

	return nil
}

// checkPoints maps point.Set validation onto the package sentinels; a
// non-finite coordinate keeps point.ErrNonFinite.
func checkPoints(points point.Set) error {
	err := points.Validate()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, point.ErrEmpty):
		return fmt.Errorf("%w: %w", ErrEmptyInput, err)
	case errors.Is(err, point.ErrDimensionMismatch):
		return fmt.Errorf("%w: %w", ErrDimensionMismatch, err)
	default:
		return err
	}
}

// nearest returns the index of the closest centroid; strict < keeps the first on ties.
func nearest(p point.Point, centroids []point.Point) (int, float64) {
	best, sel := math.Inf(1), 0
	var d float64
	for c := range centroids {
		d = floats.Distance(p, centroids[c], 2)
		if d < best {
			best, sel = d, c
		}
	}

	return sel, best
}

func assign(points point.Set, centroids []point.Point) ([]int, []int) {
	labels := make([]int, len(points))
	sizes := make([]int, len(centroids))
	for i, p := range points {
		labels[i], _ = nearest(p, centroids)
		sizes[labels[i]]++
	}

	return labels, sizes
}

func step(points point.Set, centroids []point.Point, policy EmptyClusterPolicy) (*StepResult, error) {
	k, d := len(centroids), points.Dim()
	labels, sizes := assign(points, centroids)

	members := make([][]int, k)
	for i, c := range labels {
		members[c] = append(members[c], i)
	}

	next := make([]point.Point, k)
	var reseeded map[int]bool
	for c := 0; c < k; c++ {
		if sizes[c] > 0 {
			mean, err := point.Mean(points, members[c])
			if err != nil {
				return nil, err
			}
			next[c] = mean
			continue
		}
		next[c] = make(point.Point, d)
		switch policy {
		case FailOnEmpty:
			return nil, fmt.Errorf("cluster %d: %w", c, ErrEmptyCluster)
		case ReseedFarthest:
			if reseeded == nil {
				reseeded = make(map[int]bool)
			}
			idx := farthest(points, centroids, labels, reseeded)
			reseeded[idx] = true
			copy(next[c], points[idx])
		default:
			copy(next[c], centroids[c])
		}
	}

	maxDelta := 0.0
	var delta float64
	for c := 0; c < k; c++ {
		delta = floats.Distance(centroids[c], next[c], 2)
		if delta > maxDelta {
			maxDelta = delta
		}
	}

	return &StepResult{Centroids: next, Labels: labels, Sizes: sizes, MaxDelta: maxDelta}, nil
}

// farthest returns the point farthest from its assigned centroid, skipping
// points already used to reseed during this step.
func farthest(points point.Set, centroids []point.Point, labels []int, skip map[int]bool) int {
	best, idx := -1.0, 0
	var d float64
	for i, p := range points {
		if skip[i] {
			continue
		}
		d = floats.Distance(p, centroids[labels[i]], 2)
		if d > best {
			best, idx = d, i
		}
	}

	return idx
}
