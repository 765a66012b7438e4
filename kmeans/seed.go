// SPDX-License-Identifier: MIT

package kmeans

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/spkmeans/point"
)

// SeedPlusPlus picks k distinct point indices with k-means++: the first
// uniformly, each next one with probability proportional to its squared
// distance to the nearest chosen point. A nil rng uses seed 0, so the choice is
// reproducible. If every remaining point coincides with a chosen one, the
// lowest unchosen index is taken.
// Errors: ErrEmptyInput, ErrDimensionMismatch, ErrBadK, point.ErrNonFinite.
// Complexity: O(k·n·d).
func SeedPlusPlus(points point.Set, k int, rng *rand.Rand) ([]int, error) {
	if err := checkPoints(points); err != nil {
		return nil, fmt.Errorf("%s: %w", opSeed, err)
	}
	n := points.Len()
	if k < 1 || k > n {
		return nil, fmt.Errorf("%s: k=%d n=%d: %w", opSeed, k, n, ErrBadK)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}

	chosen := make([]int, 0, k)
	taken := make([]bool, n)
	first := rng.Intn(n)
	chosen = append(chosen, first)
	taken[first] = true

	// Squared distance to the nearest chosen point.
	dist := make([]float64, n)
	var d float64
	for i, p := range points {
		d = floats.Distance(p, points[first], 2)
		dist[i] = d * d
	}

	var total, target, cumulative float64
	for len(chosen) < k {
		total = 0
		for i := range dist {
			if !taken[i] {
				total += dist[i]
			}
		}

		sel := -1
		if total > 0 {
			target = rng.Float64() * total
			cumulative = 0
			for i := range dist {
				if taken[i] || dist[i] == 0 {
					continue
				}
				cumulative += dist[i]
				sel = i // last positive-weight point absorbs rounding at the tail
				if cumulative > target {
					break
				}
			}
		} else {
			for i := range taken {
				if !taken[i] {
					sel = i
					break
				}
			}
		}

		chosen = append(chosen, sel)
		taken[sel] = true
		for i, p := range points {
			d = floats.Distance(p, points[sel], 2)
			if d*d < dist[i] {
				dist[i] = d * d
			}
		}
	}

	return chosen, nil
}

// Pick returns clones of points[idx...] for use as initial centroids.
func Pick(points point.Set, idx []int) []point.Point {
	out := make([]point.Point, len(idx))
	for i, j := range idx {
		out[i] = points[j].Clone()
	}

	return out
}
