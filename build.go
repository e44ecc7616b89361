package kmtree

import "time"

// Build clusters the dataset from scratch into a fresh tree, discarding
// any previously built tree. It must be called once before FindNeighbors,
// GetClusterCenters or Save.
func (t *Tree) Build() error {
	if t.opts.Branching < 2 {
		return &ErrInvalidBranching{Branching: t.opts.Branching}
	}

	start := time.Now()
	n := t.dataset.Rows
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	root := &Node{}
	pivot, radius, variance := computeNodeStatistics(t.dataset, indices, t.distFn)
	root.Pivot = pivot
	root.Radius = radius
	root.Variance = variance
	// Start the count over: the previous tree's pivots, if any, are dropped.
	t.memoryCounter = int64(t.dataset.Cols) * 4

	t.cluster(root, indices, 0)

	t.root = root
	t.sizeAtBuild = n

	elapsed := time.Since(start)
	t.metrics.RecordBuild(elapsed, n)
	t.logger.LogBuild(n, t.dataset.Cols, elapsed, nil)
	return nil
}
