package kmtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmtree-go/kmtree/distance"
	"github.com/kmtree-go/kmtree/internal/pool"
)

func TestClusterChildrenPartitionMembers(t *testing.T) {
	ds := gridDataset(8, 10, 3)
	tree, err := New(ds, distance.SquaredL2, WithBranching(4))
	require.NoError(t, err)

	indices := make([]int, ds.Rows)
	for i := range indices {
		indices[i] = i
	}
	root := &Node{}
	pivot, radius, variance := computeNodeStatistics(ds, indices, distance.SquaredL2)
	root.Pivot, root.Radius, root.Variance = pivot, radius, variance

	tree.cluster(root, indices, 0)

	require.Len(t, root.Children, 4)
	total := 0
	for _, c := range root.Children {
		total += c.Size
	}
	assert.Equal(t, ds.Rows, total)
}

func TestRebalanceEmptyClustersFillsFromDonor(t *testing.T) {
	// 5 members, 3 clusters, rigged so nobody is assigned to cluster 2
	// before rebalancing and cluster 0 has enough members to donate.
	scratch := pool.Get(5, 3, 1)
	scratch.Belongs[0], scratch.Belongs[1], scratch.Belongs[2] = 0, 0, 0
	scratch.Belongs[3], scratch.Belongs[4] = 1, 1
	scratch.Count[0], scratch.Count[1], scratch.Count[2] = 3, 2, 0

	tree := &Tree{}
	rebalanced := tree.rebalanceEmptyClusters(scratch, []int{0, 1, 2, 3, 4}, 3)

	assert.True(t, rebalanced)
	assert.Equal(t, 1, scratch.Count[2])
	assert.Equal(t, 2, scratch.Count[0])
}

func TestRebalanceEmptyClustersLeavesClusterEmptyWithoutDonor(t *testing.T) {
	// Every cluster has exactly one member: no donor (count>1) exists.
	scratch := pool.Get(2, 3, 1)
	scratch.Belongs[0], scratch.Belongs[1] = 0, 1
	scratch.Count[0], scratch.Count[1], scratch.Count[2] = 1, 1, 0

	tree := &Tree{}
	rebalanced := tree.rebalanceEmptyClusters(scratch, []int{0, 1}, 3)

	assert.False(t, rebalanced)
	assert.Equal(t, 0, scratch.Count[2])
}
