// SPDX-License-Identifier: MIT

// Package config loads pipeline settings from YAML.
//
// Every field has a default, so an empty document (or no file at all) is a
// valid configuration. Unknown keys are rejected.
//
//	k: 0
//	jacobi:
//	  epsilon: 1.0e-5
//	  max_iterations: 100
//	kmeans:
//	  epsilon: 0.01
//	  max_iterations: 200
//	  empty_cluster: keep   # keep | fail | reseed
//	  seed: 0
//	embedding:
//	  order: descending     # descending | ascending
//	log:
//	  level: info
//	  format: text          # text | json
//	metrics:
//	  textfile: ""
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/spkmeans"
	"github.com/katalvlaran/spkmeans/embedding"
	"github.com/katalvlaran/spkmeans/jacobi"
	"github.com/katalvlaran/spkmeans/kmeans"
	"github.com/katalvlaran/spkmeans/matrix"
)

// ErrInvalid marks a document that cannot be decoded or holds unusable values.
var ErrInvalid = errors.New("config: invalid")

// Config is the YAML document.
type Config struct {
	K         int             `yaml:"k"`
	Jacobi    JacobiConfig    `yaml:"jacobi"`
	KMeans    KMeansConfig    `yaml:"kmeans"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// JacobiConfig mirrors jacobi.Config.
type JacobiConfig struct {
	Epsilon       float64 `yaml:"epsilon"`
	MaxIterations int     `yaml:"max_iterations"`
	CheckSymmetry bool    `yaml:"check_symmetry"`
	SymmetryTol   float64 `yaml:"symmetry_tol"`
}

// KMeansConfig mirrors kmeans.Config plus the seeding seed.
type KMeansConfig struct {
	Epsilon       float64 `yaml:"epsilon"`
	MaxIterations int     `yaml:"max_iterations"`
	EmptyCluster  string  `yaml:"empty_cluster"`
	Seed          int64   `yaml:"seed"`
}

// EmbeddingConfig selects the spectrum order.
type EmbeddingConfig struct {
	Order string `yaml:"order"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig names the Prometheus textfile written after a run; empty disables it.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Jacobi: JacobiConfig{
			Epsilon:       jacobi.DefaultEpsilon,
			MaxIterations: jacobi.DefaultMaxIterations,
			SymmetryTol:   matrix.DefaultEpsilon,
		},
		KMeans: KMeansConfig{
			Epsilon:       kmeans.DefaultEpsilon,
			MaxIterations: kmeans.DefaultMaxIterations,
			EmptyCluster:  kmeans.KeepPrevious.String(),
		},
		Embedding: EmbeddingConfig{Order: embedding.Descending.String()},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

// Parse decodes data over Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Load reads and parses path. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return Parse(data)
}

// Validate checks every section by converting it.
func (c Config) Validate() error {
	if _, err := c.Options(); err != nil {
		return err
	}
	if _, err := spkmeans.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := spkmeans.NewLogger(io.Discard, slog.LevelInfo, c.Log.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// Options converts the document into pipeline options. Logger, Metrics and
// RunID are left for the caller.
func (c Config) Options() (spkmeans.Options, error) {
	opts := spkmeans.DefaultOptions()
	opts.K = c.K
	opts.Seed = c.KMeans.Seed
	opts.Jacobi = jacobi.Config{
		Epsilon:       c.Jacobi.Epsilon,
		MaxIterations: c.Jacobi.MaxIterations,
		CheckSymmetry: c.Jacobi.CheckSymmetry,
		SymmetryTol:   c.Jacobi.SymmetryTol,
	}

	policy, err := kmeans.ParsePolicy(c.KMeans.EmptyCluster)
	if err != nil {
		return spkmeans.Options{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	opts.KMeans = kmeans.Config{
		MaxIterations: c.KMeans.MaxIterations,
		Epsilon:       c.KMeans.Epsilon,
		EmptyCluster:  policy,
	}

	if opts.Order, err = embedding.ParseOrder(c.Embedding.Order); err != nil {
		return spkmeans.Options{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err = opts.Validate(); err != nil {
		return spkmeans.Options{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return opts, nil
}

// Logger builds the configured slog.Logger writing to w.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := spkmeans.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	log, err := spkmeans.NewLogger(w, level, c.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return log, nil
}
