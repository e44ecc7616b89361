package kmtree

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmtree-go/kmtree/distance"
)

func TestSaveBeforeBuildFails(t *testing.T) {
	ds := gridDataset(4, 6, 3)
	tree, err := New(ds, distance.SquaredL2)
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.ErrorIs(t, tree.Save(&buf), ErrNotBuilt)
}

func TestSaveLoadRoundTripPreservesSearchResults(t *testing.T) {
	ds := gridDataset(8, 10, 4)
	tree := buildTree(t, ds, WithBranching(3), WithCBIndex(0.4))

	var buf bytes.Buffer
	require.NoError(t, tree.Save(&buf))

	loaded, err := Load(&buf, ds, distance.SquaredL2)
	require.NoError(t, err)

	assert.Equal(t, tree.opts.Branching, loaded.opts.Branching)
	assert.Equal(t, tree.opts.CBIndex, loaded.opts.CBIndex)
	assert.Equal(t, tree.sizeAtBuild, loaded.sizeAtBuild)

	query := ds.Row(23)
	want := NewBoundedResult(3)
	require.NoError(t, tree.FindNeighbors(want, query, Unlimited))
	got := NewBoundedResult(3)
	require.NoError(t, loaded.FindNeighbors(got, query, Unlimited))

	assert.Equal(t, want.Neighbors(), got.Neighbors())
}

func TestSaveLoadRoundTripWithCompression(t *testing.T) {
	ds := gridDataset(8, 10, 4)
	tree := buildTree(t, ds, WithBranching(3), WithCBIndex(0.4), WithCompression(true))

	var buf bytes.Buffer
	require.NoError(t, tree.Save(&buf))

	loaded, err := Load(&buf, ds, distance.SquaredL2, WithCompression(true))
	require.NoError(t, err)

	assert.Equal(t, tree.opts.Branching, loaded.opts.Branching)
	assert.Equal(t, tree.sizeAtBuild, loaded.sizeAtBuild)

	query := ds.Row(23)
	want := NewBoundedResult(3)
	require.NoError(t, tree.FindNeighbors(want, query, Unlimited))
	got := NewBoundedResult(3)
	require.NoError(t, loaded.FindNeighbors(got, query, Unlimited))

	assert.Equal(t, want.Neighbors(), got.Neighbors())
}

func TestLoadRejectsDimensionMismatch(t *testing.T) {
	ds := gridDataset(4, 6, 3)
	tree := buildTree(t, ds, WithBranching(2))

	var buf bytes.Buffer
	require.NoError(t, tree.Save(&buf))

	wrongDims := NewDataset(ds.Rows, 2, make([]float32, ds.Rows*2))
	_, err := Load(&buf, wrongDims, distance.SquaredL2)
	var mismatch *ErrDimensionMismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestLoadDetectsCorruption(t *testing.T) {
	ds := gridDataset(4, 6, 3)
	tree := buildTree(t, ds, WithBranching(2))

	var buf bytes.Buffer
	require.NoError(t, tree.Save(&buf))
	corrupted := buf.Bytes()
	corrupted[len(corrupted)-1] ^= 0xFF

	_, err := Load(bytes.NewReader(corrupted), ds, distance.SquaredL2)
	assert.Error(t, err)
}
