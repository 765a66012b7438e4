package spkmeans_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spkmeans"
	"github.com/katalvlaran/spkmeans/embedding"
	"github.com/katalvlaran/spkmeans/matrix"
	"github.com/katalvlaran/spkmeans/metrics"
)

var twoPairs = [][]float64{{0, 0}, {0, 1}, {10, 0}, {10, 1}}

func quietOptions() spkmeans.Options {
	opts := spkmeans.DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	return opts
}

func TestParseGoal(t *testing.T) {
	t.Parallel()

	for _, g := range spkmeans.Goals() {
		got, err := spkmeans.ParseGoal(g.String())
		require.NoError(t, err)
		assert.Equal(t, g, got)
	}

	got, err := spkmeans.ParseGoal(" LNORM ")
	require.NoError(t, err)
	assert.Equal(t, spkmeans.GoalLaplacian, got)

	_, err = spkmeans.ParseGoal("kmeans++")
	require.ErrorIs(t, err, spkmeans.ErrInvalidInput)
	assert.Equal(t, spkmeans.KindInvalidInput, spkmeans.Classify(err))
	assert.False(t, spkmeans.Goal(0).Valid())
}

func TestRun_Goals(t *testing.T) {
	ctx := context.Background()

	out, err := spkmeans.Run(ctx, spkmeans.GoalWeights, twoPairs, quietOptions())
	require.NoError(t, err)
	w, _ := out.Matrix.At(0, 1)
	assert.InDelta(t, math.Exp(-0.5), w, 1e-12)

	out, err = spkmeans.Run(ctx, spkmeans.GoalDegrees, twoPairs, quietOptions())
	require.NoError(t, err)
	assert.True(t, matrix.IsDiagonal(out.Matrix))

	out, err = spkmeans.Run(ctx, spkmeans.GoalLaplacian, twoPairs, quietOptions())
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateSymmetric(out.Matrix, 1e-12))

	out, err = spkmeans.Run(ctx, spkmeans.GoalJacobi, [][]float64{{2, 1}, {1, 2}}, quietOptions())
	require.NoError(t, err)
	require.NotNil(t, out.Eigen)
	assert.Nil(t, out.Matrix)
	assert.InDelta(t, 4.0, out.Eigen.Values[0]+out.Eigen.Values[1], 1e-12)
}

// TestRun_SpectralAscendingSeparatesPairs checks the embedding of two well
// separated pairs: rows within a pair coincide, rows across pairs are far apart.
func TestRun_SpectralAscendingSeparatesPairs(t *testing.T) {
	opts := quietOptions()
	opts.Order = embedding.Ascending

	out, err := spkmeans.Run(context.Background(), spkmeans.GoalSpectral, twoPairs, opts)
	require.NoError(t, err)
	require.Equal(t, 2, out.Embedding.K, "eigengap picks two clusters")

	T := out.Matrix.ToRows()
	dist := func(a, b []float64) float64 { return math.Hypot(a[0]-b[0], a[1]-b[1]) }
	assert.Less(t, dist(T[0], T[1]), 0.1)
	assert.Less(t, dist(T[2], T[3]), 0.1)
	assert.Greater(t, dist(T[0], T[2]), 1.0)
}

// TestCluster_TwoPairs: full clustering puts each pair in its own cluster.
func TestCluster_TwoPairs(t *testing.T) {
	opts := quietOptions()
	opts.Order = embedding.Ascending
	opts.K = 2

	rec := metrics.New()
	opts.Metrics = rec

	res, err := spkmeans.Cluster(context.Background(), twoPairs, opts)
	require.NoError(t, err)
	require.Len(t, res.Seeds, 2)
	require.Len(t, res.KMeans.Centroids, 2)

	labels := res.KMeans.Labels
	assert.Equal(t, labels[0], labels[1])
	assert.Equal(t, labels[2], labels[3])
	assert.NotEqual(t, labels[0], labels[2])

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.Runs.WithLabelValues("cluster", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.SelectedK))
	assert.Greater(t, testutil.ToFloat64(rec.Rotations), 0.0)
	assert.Greater(t, testutil.ToFloat64(rec.KMeansIterations), 0.0)
}

func TestCluster_Deterministic(t *testing.T) {
	pts := [][]float64{{0, 0}, {0, 1}, {1, 0}, {8, 8}, {8, 9}, {9, 8}, {-7, 9}, {-8, 9}}
	opts := quietOptions()
	opts.K = 3
	opts.Seed = 7

	a, err := spkmeans.Cluster(context.Background(), pts, opts)
	require.NoError(t, err)
	b, err := spkmeans.Cluster(context.Background(), pts, opts)
	require.NoError(t, err)
	assert.Equal(t, a.Seeds, b.Seeds)
	assert.Equal(t, a.KMeans.Centroids, b.KMeans.Centroids)
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name string
		goal spkmeans.Goal
		rows [][]float64
		opts func(*spkmeans.Options)
		want error
		kind spkmeans.Kind
	}{
		{"unknown goal", spkmeans.Goal(42), twoPairs, nil, spkmeans.ErrInvalidInput, spkmeans.KindInvalidInput},
		{"empty input", spkmeans.GoalWeights, nil, nil, spkmeans.ErrInvalidInput, spkmeans.KindInvalidInput},
		{"ragged points", spkmeans.GoalWeights, [][]float64{{1, 2}, {3}}, nil, spkmeans.ErrInvalidInput, spkmeans.KindInvalidInput},
		{"non-finite point", spkmeans.GoalLaplacian, [][]float64{{0}, {math.Inf(1)}, {1}}, nil, spkmeans.ErrInvalidInput, spkmeans.KindInvalidInput},
		{"non-square jacobi", spkmeans.GoalJacobi, [][]float64{{1, 2}, {3, 4}, {5, 6}}, nil, spkmeans.ErrInvalidInput, spkmeans.KindInvalidInput},
		{"k too large", spkmeans.GoalSpectral, twoPairs, func(o *spkmeans.Options) { o.K = 5 }, spkmeans.ErrInvalidInput, spkmeans.KindInvalidInput},
		{"negative k", spkmeans.GoalSpectral, twoPairs, func(o *spkmeans.Options) { o.K = -1 }, spkmeans.ErrInvalidInput, spkmeans.KindInvalidInput},
		{"single point", spkmeans.GoalLaplacian, [][]float64{{1, 1}}, nil, spkmeans.ErrDegenerateGraph, spkmeans.KindDegenerateGraph},
		{"bad jacobi config", spkmeans.GoalJacobi, [][]float64{{1}}, func(o *spkmeans.Options) { o.Jacobi.Epsilon = -1 }, spkmeans.ErrInvalidInput, spkmeans.KindInvalidInput},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			opts := quietOptions()
			if tc.opts != nil {
				tc.opts(&opts)
			}
			out, err := spkmeans.Run(ctx, tc.goal, tc.rows, opts)
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, out)
			assert.Equal(t, tc.kind, spkmeans.Classify(err))
		})
	}
}

// TestRun_FailureStatusMetric: failed runs are counted under their Kind.
func TestRun_FailureStatusMetric(t *testing.T) {
	opts := quietOptions()
	rec := metrics.New()
	opts.Metrics = rec

	_, err := spkmeans.Run(context.Background(), spkmeans.GoalLaplacian, [][]float64{{1, 1}}, opts)
	require.Error(t, err)
	_, err = spkmeans.Run(context.Background(), spkmeans.GoalWeights, [][]float64{{1, 2}, {3}}, opts)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.Runs.WithLabelValues("lnorm", "degenerate_graph")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.Runs.WithLabelValues("wam", "invalid_input")))
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := spkmeans.Run(ctx, spkmeans.GoalWeights, twoPairs, quietOptions())
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, spkmeans.KindInternal, spkmeans.Classify(err))
}

func TestRun_LogsRunID(t *testing.T) {
	var buf bytes.Buffer
	log, err := spkmeans.NewLogger(&buf, slog.LevelDebug, "json")
	require.NoError(t, err)

	opts := spkmeans.DefaultOptions()
	opts.Logger = log
	opts.RunID = "run-1"
	_, err = spkmeans.Run(context.Background(), spkmeans.GoalDegrees, twoPairs, opts)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"run_id":"run-1"`)
	assert.Contains(t, buf.String(), `"stage":"weights"`)
	assert.Contains(t, buf.String(), `"stage":"degrees"`)
}

func TestNewLoggerAndParseLevel(t *testing.T) {
	_, err := spkmeans.NewLogger(nil, slog.LevelInfo, "xml")
	require.ErrorIs(t, err, spkmeans.ErrInvalidInput)

	l, err := spkmeans.ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)

	_, err = spkmeans.ParseLevel("loud")
	require.ErrorIs(t, err, spkmeans.ErrInvalidInput)
}

func TestClassifyAndMessages(t *testing.T) {
	assert.Equal(t, spkmeans.KindNone, spkmeans.Classify(nil))
	assert.Equal(t, spkmeans.KindAllocation, spkmeans.Classify(matrix.ErrAllocation))
	assert.Equal(t, spkmeans.KindInternal, spkmeans.Classify(io.ErrUnexpectedEOF))

	assert.Equal(t, "Invalid Input!", spkmeans.KindInvalidInput.Message())
	assert.Equal(t, "An Error Has Occurred", spkmeans.KindAllocation.Message())
	assert.Equal(t, "An Error Has Occurred", spkmeans.KindDegenerateGraph.Message())
}
