// SPDX-License-Identifier: MIT

package spkmeans

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/spkmeans/embedding"
	"github.com/katalvlaran/spkmeans/jacobi"
	"github.com/katalvlaran/spkmeans/kmeans"
	"github.com/katalvlaran/spkmeans/laplacian"
	"github.com/katalvlaran/spkmeans/matrix"
	"github.com/katalvlaran/spkmeans/metrics"
	"github.com/katalvlaran/spkmeans/point"
	"github.com/katalvlaran/spkmeans/similarity"
)

// Stage names used in logs and metrics.
const (
	StageWeights   = "weights"
	StageDegrees   = "degrees"
	StageLaplacian = "laplacian"
	StageJacobi    = "jacobi"
	StageEmbedding = "embedding"
	StageSeeding   = "seeding"
	StageKMeans    = "kmeans"
)

// Options configures a pipeline run. The zero value is not usable; start
// from DefaultOptions.
type Options struct {
	// K is the embedding dimension and cluster count; 0 selects it by eigengap.
	K int

	Jacobi jacobi.Config
	KMeans kmeans.Config

	// Order is the spectrum order used by the embedding. With the default
	// Descending order the leading vectors of the normalized Laplacian are the
	// high-frequency ones, so well separated groups need not share a cluster;
	// use Ascending to cluster by the smooth (low-eigenvalue) vectors.
	Order embedding.Order

	// Seed drives k-means++ seeding in Cluster.
	Seed int64

	// Logger receives stage records; nil means slog.Default().
	Logger *slog.Logger

	// Metrics, when non-nil, receives stage latencies and solver counters.
	Metrics *metrics.Recorder

	// RunID tags every log record; empty means a fresh UUID per run.
	RunID string
}

// DefaultOptions returns automatic k, default solver configs, descending order and seed 0.
func DefaultOptions() Options {
	return Options{
		Jacobi: jacobi.DefaultConfig(),
		KMeans: kmeans.DefaultConfig(),
		Order:  embedding.Descending,
	}
}

// Validate checks the option values that do not depend on the input.
func (o Options) Validate() error {
	if o.K < 0 {
		return fmt.Errorf("k=%d: %w", o.K, ErrInvalidInput)
	}
	if err := o.Jacobi.Validate(); err != nil {
		return err
	}

	return o.KMeans.Validate()
}

// Output is the result of Run. Exactly one of Matrix or Eigen is set.
type Output struct {
	Goal Goal

	// Matrix is W, D, N or T for the matrix-valued goals.
	Matrix *matrix.Dense

	// Eigen is the decomposition for GoalJacobi.
	Eigen *jacobi.Result

	// Embedding carries the sorted pairs, k and U for GoalSpectral.
	Embedding *embedding.Embedding
}

// Clustering is the result of Cluster.
type Clustering struct {
	Embedding *embedding.Embedding
	Seeds     []int // row indices of T chosen by k-means++
	KMeans    *kmeans.Result
}

// runner carries per-run context through the stages.
type runner struct {
	ctx  context.Context
	log  *slog.Logger
	rec  *metrics.Recorder
	opts Options
}

func newRunner(ctx context.Context, goal string, opts Options) *runner {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	id := opts.RunID
	if id == "" {
		id = uuid.NewString()
	}

	return &runner{
		ctx:  ctx,
		log:  log.With("run_id", id, "goal", goal),
		rec:  opts.Metrics,
		opts: opts,
	}
}

// stage runs fn after a cancellation check and records its latency.
func (r *runner) stage(name string, fn func() (rows, cols int, err error)) error {
	if err := r.ctx.Err(); err != nil {
		return fmt.Errorf("before %s: %w", name, err)
	}
	start := time.Now()
	rows, cols, err := fn()
	elapsed := time.Since(start)
	r.rec.ObserveStage(name, elapsed)
	if err != nil {
		r.log.Debug("stage failed", "stage", name, "duration", elapsed, "err", err)
		return err
	}
	r.log.Debug("stage done", "stage", name, "rows", rows, "cols", cols, "duration", elapsed)

	return nil
}

func (r *runner) finish(goal string, err error) {
	status := "ok"
	if err != nil {
		status = Classify(err).String()
		r.log.Info("run failed", "kind", status, "err", err)
	}
	r.rec.RunFinished(goal, status)
}

// Run executes the pipeline up to goal.
// MAIN DESCRIPTION:
//   - GoalJacobi: rows is a symmetric matrix, eigendecomposed as is.
//   - Other goals: rows are points; the pipeline runs
//     W → D → N → eigenpairs → T and stops at the requested goal.
//
// Implementation:
//   - Stage 0: reject unknown goals and bad options before touching the input.
//   - Each stage is preceded by a ctx check and timed into opts.Metrics.
//
// Errors:
//   - Every error is tagged with ErrInvalidInput, ErrAllocation or
//     ErrDegenerateGraph when it belongs to that class (see Classify);
//     context errors pass through. No partial results are returned.
func Run(ctx context.Context, goal Goal, rows [][]float64, opts Options) (out *Output, err error) {
	if !goal.Valid() {
		return nil, fmt.Errorf("goal %d: %w", int(goal), ErrInvalidInput)
	}
	r := newRunner(ctx, goal.String(), opts)
	defer func() {
		err = wrapKind(err)
		r.finish(goal.String(), err)
	}()
	if err = opts.Validate(); err != nil {
		return nil, err
	}

	if goal == GoalJacobi {
		var res *jacobi.Result
		if res, err = r.jacobi(rows); err != nil {
			return nil, err
		}
		return &Output{Goal: goal, Eigen: res}, nil
	}

	return r.spectral(goal, rows)
}

func (r *runner) jacobi(rows [][]float64) (*jacobi.Result, error) {
	A, err := matrix.NewFromRows(rows)
	if err != nil {
		return nil, err
	}
	if err = matrix.ValidateSquare(A); err != nil {
		return nil, err
	}

	return r.solve(A)
}

func (r *runner) solve(A *matrix.Dense) (*jacobi.Result, error) {
	var res *jacobi.Result
	err := r.stage(StageJacobi, func() (int, int, error) {
		var err error
		res, err = jacobi.Solve(A, r.opts.Jacobi)
		if err != nil {
			return 0, 0, err
		}
		return A.Rows(), A.Cols(), nil
	})
	if err != nil {
		return nil, err
	}
	r.rec.ObserveJacobi(res.Iterations, res.Converged)
	r.log.Info("jacobi finished",
		"n", A.Rows(),
		"iterations", res.Iterations,
		"converged", res.Converged,
		"off_diagonal", res.OffDiagonal,
	)

	return res, nil
}

func (r *runner) spectral(goal Goal, rows [][]float64) (*Output, error) {
	pts, err := point.FromRows(rows)
	if err != nil {
		return nil, err
	}
	if r.opts.K > pts.Len() {
		return nil, fmt.Errorf("k=%d n=%d: %w", r.opts.K, pts.Len(), ErrInvalidInput)
	}

	var W, D, N *matrix.Dense
	if err = r.stage(StageWeights, func() (int, int, error) {
		var err error
		W, err = similarity.Weights(pts)
		return pts.Len(), pts.Len(), err
	}); err != nil {
		return nil, err
	}
	if goal == GoalWeights {
		return &Output{Goal: goal, Matrix: W}, nil
	}

	if err = r.stage(StageDegrees, func() (int, int, error) {
		var err error
		D, err = similarity.Degrees(W)
		return pts.Len(), pts.Len(), err
	}); err != nil {
		return nil, err
	}
	if goal == GoalDegrees {
		return &Output{Goal: goal, Matrix: D}, nil
	}

	if err = r.stage(StageLaplacian, func() (int, int, error) {
		L, err := laplacian.Unnormalized(W, D)
		if err != nil {
			return 0, 0, err
		}
		N, err = laplacian.Normalized(L, D)
		return pts.Len(), pts.Len(), err
	}); err != nil {
		return nil, err
	}
	if goal == GoalLaplacian {
		return &Output{Goal: goal, Matrix: N}, nil
	}

	res, err := r.solve(N)
	if err != nil {
		return nil, err
	}

	var emb *embedding.Embedding
	if err = r.stage(StageEmbedding, func() (int, int, error) {
		var err error
		emb, err = embedding.Embed(res, r.opts.K, r.opts.Order)
		if err != nil {
			return 0, 0, err
		}
		return emb.T.Rows(), emb.T.Cols(), nil
	}); err != nil {
		return nil, err
	}
	r.rec.SetK(emb.K)
	r.log.Info("embedding built", "k", emb.K, "auto", r.opts.K == 0, "order", r.opts.Order.String())

	return &Output{Goal: goal, Matrix: emb.T, Embedding: emb}, nil
}

// Cluster runs the full spectral clustering: the GoalSpectral pipeline,
// k-means++ seeding on the rows of T with opts.Seed, then k-means with
// opts.KMeans. The cluster count is the resolved embedding dimension.
func Cluster(ctx context.Context, rows [][]float64, opts Options) (out *Clustering, err error) {
	r := newRunner(ctx, "cluster", opts)
	defer func() {
		err = wrapKind(err)
		r.finish("cluster", err)
	}()
	if err = opts.Validate(); err != nil {
		return nil, err
	}

	spk, err := r.spectral(GoalSpectral, rows)
	if err != nil {
		return nil, err
	}
	emb := spk.Embedding
	T := make(point.Set, 0, emb.T.Rows())
	for _, row := range emb.T.ToRows() {
		T = append(T, row)
	}

	var seeds []int
	if err = r.stage(StageSeeding, func() (int, int, error) {
		var err error
		seeds, err = kmeans.SeedPlusPlus(T, emb.K, rand.New(rand.NewSource(r.opts.Seed)))
		return len(seeds), emb.K, err
	}); err != nil {
		return nil, err
	}

	var fit *kmeans.Result
	if err = r.stage(StageKMeans, func() (int, int, error) {
		var err error
		fit, err = kmeans.Fit(T, kmeans.Pick(T, seeds), r.opts.KMeans)
		return emb.K, emb.K, err
	}); err != nil {
		return nil, err
	}
	r.rec.ObserveKMeans(fit.Iterations)
	r.log.Info("kmeans finished", "k", emb.K, "iterations", fit.Iterations, "converged", fit.Converged)

	return &Clustering{Embedding: emb, Seeds: seeds, KMeans: fit}, nil
}
