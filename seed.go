package kmtree

import (
	"math/rand"

	"github.com/kmtree-go/kmtree/distance"
)

// seed dispatches to the configured seeding strategy, returning up to k
// dataset indices to use as initial cluster centers for the members named
// by indices. Fewer than k may come back if the member set is degenerate
// (e.g. many coincident points); the caller demotes the node to a leaf
// when that happens.
func (t *Tree) seed(indices []int, k int) []int {
	switch t.opts.CentersInit {
	case SeedGonzales:
		return seedGonzales(t.rng, t.dataset, indices, k, t.distFn)
	case SeedKMeansPP:
		return seedKMeansPP(t.rng, t.dataset, indices, k, t.distFn)
	default:
		return seedRandom(t.rng, t.dataset, indices, k, t.distFn)
	}
}

// dedupEps is the squared-distance threshold below which two points are
// treated as coincident when random-seeding rejects duplicates.
const dedupEps = 1e-16

// seedRandom draws centers in a random permutation of indices, skipping
// any candidate within dedupEps squared distance of a center already
// chosen. It returns fewer than k centers if the permutation is exhausted
// first.
func seedRandom(rng *rand.Rand, ds Dataset, indices []int, k int, distFn distance.Func) []int {
	n := len(indices)
	centers := make([]int, 0, k)
	for _, p := range rng.Perm(n) {
		if len(centers) >= k {
			break
		}
		cand := indices[p]
		dup := false
		for _, c := range centers {
			if distFn(ds.Row(cand), ds.Row(c)) < dedupEps {
				dup = true
				break
			}
		}
		if !dup {
			centers = append(centers, cand)
		}
	}
	return centers
}

// seedGonzales picks a random first center, then repeatedly adds the point
// farthest (by minimum distance to any center chosen so far) from the
// current set, stopping early if every remaining candidate is already
// coincident with a chosen center.
func seedGonzales(rng *rand.Rand, ds Dataset, indices []int, k int, distFn distance.Func) []int {
	n := len(indices)
	centers := make([]int, 0, k)
	centers = append(centers, indices[rng.Intn(n)])

	for len(centers) < k {
		bestIdx := -1
		var bestVal float32
		for _, cand := range indices {
			minD := distFn(ds.Row(centers[0]), ds.Row(cand))
			for _, c := range centers[1:] {
				if d := distFn(ds.Row(c), ds.Row(cand)); d < minD {
					minD = d
				}
			}
			if minD > bestVal {
				bestVal = minD
				bestIdx = cand
			}
		}
		if bestIdx == -1 {
			break
		}
		centers = append(centers, bestIdx)
	}
	return centers
}

// seedKMeansPP implements the k-means++ seeding distribution: a random
// first center, then each subsequent center drawn with probability
// proportional to its squared distance from the nearest center already
// chosen.
func seedKMeansPP(rng *rand.Rand, ds Dataset, indices []int, k int, distFn distance.Func) []int {
	n := len(indices)
	centers := make([]int, 0, k)
	first := indices[rng.Intn(n)]
	centers = append(centers, first)

	closestDistSq := make([]float64, n)
	currentPot := 0.0
	for i, idx := range indices {
		d := float64(distFn(ds.Row(idx), ds.Row(first)))
		closestDistSq[i] = d
		currentPot += d
	}

	for len(centers) < k {
		if currentPot <= 0 {
			break
		}
		randVal := rng.Float64() * currentPot
		chosen := n - 1
		for idx := 0; idx < n-1; idx++ {
			if randVal <= closestDistSq[idx] {
				chosen = idx
				break
			}
			randVal -= closestDistSq[idx]
		}

		candidate := indices[chosen]
		newPot := 0.0
		for i, idx := range indices {
			d := float64(distFn(ds.Row(idx), ds.Row(candidate)))
			if d < closestDistSq[i] {
				closestDistSq[i] = d
			}
			newPot += closestDistSq[i]
		}
		centers = append(centers, candidate)
		currentPot = newPot
	}
	return centers
}
