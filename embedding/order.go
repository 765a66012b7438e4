// SPDX-License-Identifier: MIT

package embedding

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/spkmeans/jacobi"
)

// Order selects which end of the spectrum leads after sorting.
type Order int

const (
	// Descending puts the largest eigenvalue first (the default).
	Descending Order = iota
	// Ascending puts the smallest eigenvalue first. On the normalized
	// Laplacian this leads with the smooth, cluster-indicating eigenvectors.
	Ascending
)

// String implements fmt.Stringer.
func (o Order) String() string {
	switch o {
	case Descending:
		return "descending"
	case Ascending:
		return "ascending"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// ParseOrder maps "descending"/"desc" and "ascending"/"asc" (case-insensitive) to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "descending", "desc":
		return Descending, nil
	case "ascending", "asc":
		return Ascending, nil
	default:
		return 0, fmt.Errorf("order %q: %w", s, ErrBadOrder)
	}
}

// Sort returns a copy of pairs ordered by Value. The sort is stable, so equal
// eigenvalues keep the solver's index order. Vectors are shared, not copied.
// Complexity: O(n log n).
func Sort(pairs []jacobi.Eigenpair, order Order) []jacobi.Eigenpair {
	out := make([]jacobi.Eigenpair, len(pairs))
	copy(out, pairs)
	if order == Ascending {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	}

	return out
}
