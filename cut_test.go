package kmtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetClusterCentersBeforeBuildFails(t *testing.T) {
	ds := gridDataset(4, 6, 3)
	tree, err := New(ds, nil)
	require.NoError(t, err)

	_, _, err = tree.GetClusterCenters(2)
	assert.ErrorIs(t, err, ErrNotBuilt)
}

func TestGetClusterCentersRejectsInvalidCount(t *testing.T) {
	ds := gridDataset(4, 6, 3)
	tree := buildTree(t, ds, WithBranching(2))

	_, _, err := tree.GetClusterCenters(0)
	var countErr *ErrInvalidClusterCount
	assert.ErrorAs(t, err, &countErr)
}

func TestGetClusterCentersOneIsRootPivot(t *testing.T) {
	ds := gridDataset(4, 6, 3)
	tree := buildTree(t, ds, WithBranching(2))

	centers, variance, err := tree.GetClusterCenters(1)
	require.NoError(t, err)
	require.Len(t, centers, 1)
	assert.Equal(t, tree.root.Pivot, centers[0])
	assert.GreaterOrEqual(t, variance, float32(0))
}

func TestGetClusterCentersGrowsClusterCount(t *testing.T) {
	ds := gridDataset(8, 10, 3)
	tree := buildTree(t, ds, WithBranching(2))

	centers, _, err := tree.GetClusterCenters(5)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(centers), 1)
	assert.LessOrEqual(t, len(centers), 5+tree.opts.Branching-1)
}
