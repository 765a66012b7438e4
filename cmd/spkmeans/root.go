// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/spkmeans"
	"github.com/katalvlaran/spkmeans/config"
	"github.com/katalvlaran/spkmeans/metrics"
)

// app holds the state shared by all commands of one invocation.
type app struct {
	configPath   string
	k            int
	seed         int64
	order        string
	emptyCluster string
	logLevel     string
	logFormat    string
	metricsFile  string

	opts spkmeans.Options
	log  *slog.Logger
	rec  *metrics.Recorder
}

// run executes one command line and returns the process exit code. Failures
// print a single classified message on stdout.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if ferr := a.flushMetrics(); err == nil {
		err = ferr
	}
	if err != nil {
		if a.log != nil {
			a.log.Debug("command failed", "kind", spkmeans.Classify(err).String(), "err", err)
		}
		fmt.Fprintln(stdout, spkmeans.Classify(err).Message())
		return 1
	}

	return 0
}

func (a *app) rootCommand() *cobra.Command {
	def := config.Default()
	root := &cobra.Command{
		Use:   "spkmeans",
		Short: "Normalized spectral clustering",
		Long: `spkmeans builds a Gaussian similarity graph over the input points,
its normalized Laplacian, the Jacobi eigendecomposition and the eigengap
embedding, then clusters the embedding with k-means.

Input files are comma-separated .txt or .csv, optionally gzip-compressed (.gz).
Every value is printed with four decimals.`,
		Args:              cobra.ArbitraryArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown goal %q: %w", args[0], spkmeans.ErrInvalidInput)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", spkmeans.ErrInvalidInput, err)
	})

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	pf.IntVar(&a.k, "k", def.K, "embedding dimension and cluster count; 0 selects k by eigengap")
	pf.Int64Var(&a.seed, "seed", def.KMeans.Seed, "k-means++ seed")
	pf.StringVar(&a.order, "order", def.Embedding.Order, "spectrum order: descending or ascending")
	pf.StringVar(&a.emptyCluster, "empty-cluster", def.KMeans.EmptyCluster, "empty k-means cluster policy: keep, fail or reseed")
	pf.StringVar(&a.logLevel, "log-level", def.Log.Level, "log level: debug, info, warn or error")
	pf.StringVar(&a.logFormat, "log-format", def.Log.Format, "log format: text or json")
	pf.StringVar(&a.metricsFile, "metrics-file", def.Metrics.Textfile, "write Prometheus metrics to this textfile after the run")

	root.AddCommand(
		a.goalCommand(spkmeans.GoalWeights, "Print the weighted adjacency matrix"),
		a.goalCommand(spkmeans.GoalDegrees, "Print the diagonal degree matrix"),
		a.goalCommand(spkmeans.GoalLaplacian, "Print the normalized graph Laplacian"),
		a.goalCommand(spkmeans.GoalJacobi, "Print eigenvalues and eigenvectors of a symmetric matrix"),
		a.spkCommand(),
		a.kmeansCommand(),
		a.runCommand(),
	)

	return root
}

// setup merges the config file with explicitly set flags and builds the
// logger and metrics recorder.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("%w: %w", spkmeans.ErrInvalidInput, err)
	}

	flags := cmd.Flags()
	if flags.Changed("k") {
		cfg.K = a.k
	}
	if flags.Changed("seed") {
		cfg.KMeans.Seed = a.seed
	}
	if flags.Changed("order") {
		cfg.Embedding.Order = a.order
	}
	if flags.Changed("empty-cluster") {
		cfg.KMeans.EmptyCluster = a.emptyCluster
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if flags.Changed("metrics-file") {
		cfg.Metrics.Textfile = a.metricsFile
	}
	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", spkmeans.ErrInvalidInput, err)
	}

	if a.log, err = cfg.Logger(cmd.ErrOrStderr()); err != nil {
		return fmt.Errorf("%w: %w", spkmeans.ErrInvalidInput, err)
	}
	if a.opts, err = cfg.Options(); err != nil {
		return fmt.Errorf("%w: %w", spkmeans.ErrInvalidInput, err)
	}
	a.metricsFile = cfg.Metrics.Textfile
	if a.metricsFile != "" {
		a.rec = metrics.New()
	}
	a.opts.Logger = a.log
	a.opts.Metrics = a.rec

	return nil
}

func (a *app) flushMetrics() error {
	if a.rec == nil || a.metricsFile == "" {
		return nil
	}
	if err := a.rec.WriteTextfile(a.metricsFile); err != nil {
		return fmt.Errorf("metrics textfile %q: %w", a.metricsFile, err)
	}

	return nil
}

// exactArgs is cobra.ExactArgs with the error tagged as invalid input.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", spkmeans.ErrInvalidInput, err)
		}
		return nil
	}
}
