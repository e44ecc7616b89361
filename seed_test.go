package kmtree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kmtree-go/kmtree/distance"
)

func TestSeedRandomRejectsDuplicates(t *testing.T) {
	ds := NewDataset(4, 2, []float32{
		0, 0,
		0, 0, // duplicate of point 0
		10, 10,
		20, 20,
	})
	indices := []int{0, 1, 2, 3}
	rng := rand.New(rand.NewSource(1))
	centers := seedRandom(rng, ds, indices, 4, distance.SquaredL2)

	seenPositions := map[string]bool{}
	for _, c := range centers {
		key := fmt.Sprint(ds.Row(c))
		assert.False(t, seenPositions[key], "seedRandom returned a near-duplicate center")
		seenPositions[key] = true
	}
	assert.Less(t, len(centers), 4, "seedRandom should not be able to find 4 distinct centers among 3 distinct points")
}

func TestSeedGonzalesPicksFarthestPoints(t *testing.T) {
	ds := NewDataset(4, 1, []float32{0, 1, 50, 51})
	indices := []int{0, 1, 2, 3}
	rng := rand.New(rand.NewSource(1))
	centers := seedGonzales(rng, ds, indices, 2, distance.SquaredL2)

	require := assert.New(t)
	require.Len(centers, 2)
	// The second center must be farthest from the first, whichever the
	// random first pick was.
	first := centers[0]
	second := centers[1]
	maxMinDist := float32(-1)
	for _, cand := range indices {
		if cand == first {
			continue
		}
		d := distance.SquaredL2(ds.Row(first), ds.Row(cand))
		if d > maxMinDist {
			maxMinDist = d
		}
	}
	gotDist := distance.SquaredL2(ds.Row(first), ds.Row(second))
	assert.Equal(t, maxMinDist, gotDist)
}

func TestSeedKMeansPPReturnsDistinctCenters(t *testing.T) {
	ds := gridDataset(4, 6, 3)
	indices := make([]int, ds.Rows)
	for i := range indices {
		indices[i] = i
	}
	rng := rand.New(rand.NewSource(7))
	centers := seedKMeansPP(rng, ds, indices, 4, distance.SquaredL2)
	assert.Len(t, centers, 4)

	seen := map[int]bool{}
	for _, c := range centers {
		assert.False(t, seen[c], "kmeans++ returned the same index twice")
		seen[c] = true
	}
}

func TestSeedDispatchHonorsCentersInit(t *testing.T) {
	ds := gridDataset(4, 6, 2)
	tree, err := New(ds, distance.SquaredL2, WithCentersInit(SeedGonzales), WithRandomSeed(1))
	assert.NoError(t, err)
	indices := make([]int, ds.Rows)
	for i := range indices {
		indices[i] = i
	}
	centers := tree.seed(indices, 4)
	assert.Len(t, centers, 4)

	// The tree's PRNG is seeded with 1 and unused so far, so Gonzales
	// seeding from a fresh PRNG with the same seed must pick the same centers.
	want := seedGonzales(rand.New(rand.NewSource(1)), ds, indices, 4, distance.SquaredL2)
	assert.Equal(t, want, centers)
}
