// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/spkmeans"
	"github.com/katalvlaran/spkmeans/dataio"
	"github.com/katalvlaran/spkmeans/kmeans"
	"github.com/katalvlaran/spkmeans/point"
)

func (a *app) goalCommand(goal spkmeans.Goal, short string) *cobra.Command {
	return &cobra.Command{
		Use:   goal.String() + " FILE",
		Short: short,
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGoal(cmd, goal, args[0], false)
		},
	}
}

func (a *app) spkCommand() *cobra.Command {
	var embeddingOnly bool
	cmd := &cobra.Command{
		Use:   "spk FILE",
		Short: "Cluster the points: print the k-means++ seed indices, then the centroids",
		Long: `Run the full pipeline. k-means++ picks the initial centroids among the
rows of the embedding (seeded by --seed); their indices are printed on the
first line, followed by one line per final centroid.

With --embedding only the row-normalized n×k embedding is printed.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGoal(cmd, spkmeans.GoalSpectral, args[0], embeddingOnly)
		},
	}
	cmd.Flags().BoolVar(&embeddingOnly, "embedding", false, "print the embedding instead of clustering it")

	return cmd
}

func (a *app) runCommand() *cobra.Command {
	names := make([]string, 0, len(spkmeans.Goals()))
	for _, g := range spkmeans.Goals() {
		names = append(names, g.String())
	}

	return &cobra.Command{
		Use:       "run GOAL FILE",
		Short:     "Run the goal named by the first argument (" + strings.Join(names, ", ") + ")",
		Args:      exactArgs(2),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			goal, err := spkmeans.ParseGoal(args[0])
			if err != nil {
				return err
			}
			return a.runGoal(cmd, goal, args[1], false)
		},
	}
}

func (a *app) kmeansCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kmeans CENTROIDS FILE",
		Short: "Fit k-means from explicit initial centroids and print the final centroids",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runKMeans(cmd, args[0], args[1])
		},
	}
}

// load reads path as a square matrix for GoalJacobi and as points otherwise.
func (a *app) load(goal spkmeans.Goal, path string) (*dataio.Dataset, error) {
	read := dataio.ReadPoints
	if goal == spkmeans.GoalJacobi {
		read = dataio.ReadMatrix
	}
	ds, err := read(path)
	if err != nil {
		return nil, err
	}
	a.log.Info("input loaded",
		"path", ds.Path,
		"rows", ds.N(),
		"dim", ds.Dim(),
		"digest", fmt.Sprintf("%016x", ds.Digest),
	)

	return ds, nil
}

func (a *app) runGoal(cmd *cobra.Command, goal spkmeans.Goal, path string, embeddingOnly bool) error {
	ds, err := a.load(goal, path)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if goal == spkmeans.GoalSpectral && !embeddingOnly {
		res, err := spkmeans.Cluster(cmd.Context(), ds.Rows, a.opts)
		if err != nil {
			return err
		}
		return writeClustering(w, res.Seeds, res.KMeans.Centroids)
	}

	out, err := spkmeans.Run(cmd.Context(), goal, ds.Rows, a.opts)
	if err != nil {
		return err
	}
	if goal == spkmeans.GoalJacobi {
		return dataio.WriteEigen(w, out.Eigen)
	}

	return dataio.WriteMatrix(w, out.Matrix)
}

func (a *app) runKMeans(cmd *cobra.Command, centroidsPath, pointsPath string) (err error) {
	defer func() {
		status := "ok"
		if err != nil {
			status = spkmeans.Classify(err).String()
		}
		a.rec.RunFinished("kmeans", status)
	}()

	start, err := a.load(spkmeans.GoalSpectral, centroidsPath)
	if err != nil {
		return err
	}
	ds, err := a.load(spkmeans.GoalSpectral, pointsPath)
	if err != nil {
		return err
	}
	pts, err := point.FromRows(ds.Rows)
	if err != nil {
		return err
	}
	centroids, err := point.FromRows(start.Rows)
	if err != nil {
		return err
	}

	res, err := kmeans.Fit(pts, centroids, a.opts.KMeans)
	if err != nil {
		return err
	}
	a.rec.ObserveKMeans(res.Iterations)
	a.log.Info("kmeans finished", "k", len(res.Centroids), "iterations", res.Iterations, "converged", res.Converged)

	return writeCentroids(cmd.OutOrStdout(), res.Centroids)
}

func writeClustering(w io.Writer, seeds []int, centroids []point.Point) error {
	if err := dataio.WriteIndices(w, seeds); err != nil {
		return err
	}

	return writeCentroids(w, centroids)
}

func writeCentroids(w io.Writer, centroids []point.Point) error {
	rows := make([][]float64, len(centroids))
	for i, c := range centroids {
		rows[i] = c
	}

	return dataio.WriteRows(w, rows)
}
