// SPDX-License-Identifier: MIT

package spkmeans

import (
	"context"
	"fmt"
	"io"

	"github.com/katalvlaran/spkmeans/kmeans"
	"github.com/katalvlaran/spkmeans/point"
)

// Host-facing functions: plain nested slices in, plain nested slices out, no
// logging. Errors are tagged as in Run.

func bindingOptions() Options {
	opts := DefaultOptions()
	opts.Logger, _ = NewLogger(io.Discard, 0, "text")

	return opts
}

func matrixGoal(goal Goal, points [][]float64) ([][]float64, error) {
	out, err := Run(context.Background(), goal, points, bindingOptions())
	if err != nil {
		return nil, err
	}

	return out.Matrix.ToRows(), nil
}

// Weights returns the weighted adjacency matrix of points ("wam").
func Weights(points [][]float64) ([][]float64, error) { return matrixGoal(GoalWeights, points) }

// Degrees returns the diagonal degree matrix of points ("ddg").
func Degrees(points [][]float64) ([][]float64, error) { return matrixGoal(GoalDegrees, points) }

// Laplacian returns the normalized graph Laplacian of points ("lnorm").
func Laplacian(points [][]float64) ([][]float64, error) { return matrixGoal(GoalLaplacian, points) }

// Jacobi eigendecomposes a symmetric matrix. vectors holds the eigenvectors as
// columns: vectors[i][j] is component i of the eigenvector of values[j].
func Jacobi(mat [][]float64) (values []float64, vectors [][]float64, err error) {
	out, err := Run(context.Background(), GoalJacobi, mat, bindingOptions())
	if err != nil {
		return nil, nil, err
	}

	return out.Eigen.Values, out.Eigen.Vectors.ToRows(), nil
}

// Spectral returns the n×k row-normalized embedding T ("spk"); k = 0 selects
// k by the eigengap heuristic.
func Spectral(points [][]float64, k int) ([][]float64, error) {
	opts := bindingOptions()
	opts.K = k
	out, err := Run(context.Background(), GoalSpectral, points, opts)
	if err != nil {
		return nil, err
	}

	return out.Matrix.ToRows(), nil
}

// KMeans fits centroids to points starting from the given initial centroids
// and returns the final centroids. maxIter ≤ 0 and eps < 0 select the defaults.
func KMeans(centroids, points [][]float64, maxIter int, eps float64) ([][]float64, error) {
	cfg := kmeans.DefaultConfig()
	if maxIter > 0 {
		cfg.MaxIterations = maxIter
	}
	if eps >= 0 {
		cfg.Epsilon = eps
	}

	res, err := kmeans.Fit(point.Set(toPoints(points)), toPoints(centroids), cfg)
	if err != nil {
		return nil, wrapKind(fmt.Errorf("kmeans: %w", err))
	}

	out := make([][]float64, len(res.Centroids))
	for i, c := range res.Centroids {
		out[i] = c
	}

	return out, nil
}

func toPoints(rows [][]float64) []point.Point {
	out := make([]point.Point, len(rows))
	for i := range rows {
		out[i] = rows[i]
	}

	return out
}
