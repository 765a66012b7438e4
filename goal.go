// SPDX-License-Identifier: MIT

package spkmeans

import (
	"fmt"
	"strings"
)

// Goal selects how far the pipeline runs and what it returns.
type Goal int

const (
	goalUnknown Goal = iota

	// GoalWeights returns the weighted adjacency matrix W ("wam").
	GoalWeights
	// GoalDegrees returns the diagonal degree matrix D ("ddg").
	GoalDegrees
	// GoalLaplacian returns the normalized Laplacian N ("lnorm").
	GoalLaplacian
	// GoalJacobi eigendecomposes a symmetric input matrix ("jacobi").
	GoalJacobi
	// GoalSpectral returns the row-normalized spectral embedding T ("spk").
	GoalSpectral
)

var goalNames = [...]string{
	goalUnknown:   "unknown",
	GoalWeights:   "wam",
	GoalDegrees:   "ddg",
	GoalLaplacian: "lnorm",
	GoalJacobi:    "jacobi",
	GoalSpectral:  "spk",
}

// Goals lists every valid goal in pipeline order.
func Goals() []Goal {
	return []Goal{GoalWeights, GoalDegrees, GoalLaplacian, GoalJacobi, GoalSpectral}
}

// String returns the command-line name of g.
func (g Goal) String() string {
	if g.Valid() {
		return goalNames[g]
	}

	return fmt.Sprintf("Goal(%d)", int(g))
}

// Valid reports whether g is one of the declared goals.
func (g Goal) Valid() bool { return g >= GoalWeights && g <= GoalSpectral }

// ParseGoal maps a command-line name to a Goal. Unknown names yield ErrInvalidInput.
func ParseGoal(s string) (Goal, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, g := range Goals() {
		if goalNames[g] == name {
			return g, nil
		}
	}

	return goalUnknown, fmt.Errorf("goal %q: %w", s, ErrInvalidInput)
}
