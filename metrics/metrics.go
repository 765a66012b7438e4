// SPDX-License-Identifier: MIT

// Package metrics provides Prometheus metrics for spkmeans runs.
//
// Each Recorder owns a private registry, so one process can run several
// pipelines without collector collisions. A nil *Recorder is valid and
// records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "spkmeans"

// Recorder holds the collectors of one pipeline.
type Recorder struct {
	reg *prometheus.Registry

	// Runs counts finished runs per goal and status: "ok" or the failure kind
	// ("invalid_input", "allocation", "degenerate_graph", "internal").
	Runs *prometheus.CounterVec

	// StageLatency tracks wall time per pipeline stage.
	StageLatency *prometheus.HistogramVec

	// Rotations counts Jacobi rotations.
	Rotations prometheus.Counter

	// JacobiUnconverged counts solves stopped by the iteration cap.
	JacobiUnconverged prometheus.Counter

	// KMeansIterations counts k-means assignment/update cycles.
	KMeansIterations prometheus.Counter

	// SelectedK is the dimension of the last embedding.
	SelectedK prometheus.Gauge
}

// New returns a Recorder registered on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Recorder{
		reg: reg,
		Runs: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total pipeline runs",
			},
			[]string{"goal", "status"},
		),
		StageLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Pipeline stage latency in seconds",
				Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 12),
			},
			[]string{"stage"}, // stage: weights/degrees/laplacian/jacobi/embedding/kmeans
		),
		Rotations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jacobi_rotations_total",
			Help:      "Total Jacobi rotations applied",
		}),
		JacobiUnconverged: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jacobi_unconverged_total",
			Help:      "Jacobi solves that hit the iteration cap",
		}),
		KMeansIterations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kmeans_iterations_total",
			Help:      "Total k-means assignment/update cycles",
		}),
		SelectedK: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "embedding_k",
			Help:      "Dimension of the last spectral embedding",
		}),
	}
}

// Registry exposes the underlying registry (e.g. for promhttp or tests).
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}

	return r.reg
}

// ObserveStage records how long stage took.
func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	if r == nil {
		return
	}
	r.StageLatency.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveJacobi records one finished solve.
func (r *Recorder) ObserveJacobi(rotations int, converged bool) {
	if r == nil {
		return
	}
	r.Rotations.Add(float64(rotations))
	if !converged {
		r.JacobiUnconverged.Inc()
	}
}

// ObserveKMeans records the cycles of one fit.
func (r *Recorder) ObserveKMeans(iterations int) {
	if r == nil {
		return
	}
	r.KMeansIterations.Add(float64(iterations))
}

// SetK records the resolved embedding dimension.
func (r *Recorder) SetK(k int) {
	if r == nil {
		return
	}
	r.SelectedK.Set(float64(k))
}

// RunFinished counts a run by goal and status.
func (r *Recorder) RunFinished(goal, status string) {
	if r == nil {
		return
	}
	r.Runs.WithLabelValues(goal, status).Inc()
}

// WriteTextfile writes all metrics in the text exposition format to path
// (atomically, for node_exporter's textfile collector).
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}

	return prometheus.WriteToTextfile(path, r.reg)
}
