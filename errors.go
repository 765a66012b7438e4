// SPDX-License-Identifier: MIT

package spkmeans

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/spkmeans/dataio"
	"github.com/katalvlaran/spkmeans/embedding"
	"github.com/katalvlaran/spkmeans/jacobi"
	"github.com/katalvlaran/spkmeans/kmeans"
	"github.com/katalvlaran/spkmeans/laplacian"
	"github.com/katalvlaran/spkmeans/matrix"
	"github.com/katalvlaran/spkmeans/point"
)

// User-facing messages of the command line tool.
const (
	MsgInvalidInput = "Invalid Input!"
	MsgGeneral      = "An Error Has Occurred"
)

var (
	// ErrInvalidInput marks malformed or inconsistent input: unknown goal,
	// unreadable source, ragged rows, dimension mismatch, bad k.
	ErrInvalidInput = errors.New("spkmeans: invalid input")

	// ErrAllocation marks a buffer that could not be obtained.
	ErrAllocation = errors.New("spkmeans: allocation failure")

	// ErrDegenerateGraph marks a zero-degree vertex where normalization needs a positive one.
	ErrDegenerateGraph = errors.New("spkmeans: degenerate graph")
)

// Kind is the coarse failure class of an error.
type Kind int

const (
	// KindNone is the kind of a nil error.
	KindNone Kind = iota
	// KindInvalidInput groups input and argument errors.
	KindInvalidInput
	// KindAllocation groups buffer allocation failures.
	KindAllocation
	// KindDegenerateGraph groups zero-degree vertices.
	KindDegenerateGraph
	// KindInternal is everything else.
	KindInternal
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidInput:
		return "invalid_input"
	case KindAllocation:
		return "allocation"
	case KindDegenerateGraph:
		return "degenerate_graph"
	default:
		return "internal"
	}
}

// Message is the line the command line tool prints for k.
func (k Kind) Message() string {
	if k == KindInvalidInput {
		return MsgInvalidInput
	}

	return MsgGeneral
}

// invalidInputCauses are package sentinels that classify as KindInvalidInput.
var invalidInputCauses = []error{
	ErrInvalidInput,
	dataio.ErrExtension,
	dataio.ErrUnreadable,
	dataio.ErrMalformed,
	dataio.ErrEmpty,
	dataio.ErrNotSquare,
	matrix.ErrInvalidDimensions,
	matrix.ErrDimensionMismatch,
	matrix.ErrNonSquare,
	matrix.ErrAsymmetry,
	matrix.ErrNaNInf,
	matrix.ErrNilMatrix,
	point.ErrEmpty,
	point.ErrDimensionMismatch,
	point.ErrNonFinite,
	jacobi.ErrBadConfig,
	embedding.ErrBadK,
	embedding.ErrNoPairs,
	embedding.ErrBadOrder,
	kmeans.ErrEmptyInput,
	kmeans.ErrBadK,
	kmeans.ErrDimensionMismatch,
	kmeans.ErrBadConfig,
}

// Classify maps any error from this module to one Kind.
// Allocation wins over degenerate graph, which wins over invalid input.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, ErrAllocation) || errors.Is(err, matrix.ErrAllocation) {
		return KindAllocation
	}
	if errors.Is(err, ErrDegenerateGraph) || errors.Is(err, laplacian.ErrDegenerateGraph) {
		return KindDegenerateGraph
	}
	for _, cause := range invalidInputCauses {
		if errors.Is(err, cause) {
			return KindInvalidInput
		}
	}

	return KindInternal
}

// wrapKind tags err with the matching taxonomy sentinel so callers can use
// errors.Is(err, ErrInvalidInput) and friends. Already-tagged errors pass through.
func wrapKind(err error) error {
	if err == nil {
		return nil
	}
	var sentinel error
	switch Classify(err) {
	case KindInvalidInput:
		sentinel = ErrInvalidInput
	case KindAllocation:
		sentinel = ErrAllocation
	case KindDegenerateGraph:
		sentinel = ErrDegenerateGraph
	default:
		return err
	}
	if errors.Is(err, sentinel) {
		return err
	}

	return fmt.Errorf("%w: %w", sentinel, err)
}
