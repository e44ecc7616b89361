package kmtree

import "sort"

// AddPoints appends points to the dataset and folds them into the tree
// incrementally: each new vector descends to the leaf whose centroid it is
// closest to, updating every ancestor's radius/variance/size along the
// way, and that leaf re-clusters itself once its size reaches the
// branching factor.
//
// If rebuildThreshold is greater than 1 and the dataset has grown past
// rebuildThreshold times its size at the last full build, AddPoints
// performs a full Build instead of incremental insertion, amortizing the
// cost of incremental drift. Pass a threshold <= 1 to disable this.
func (t *Tree) AddPoints(points Dataset, rebuildThreshold float64) error {
	if t.root == nil {
		return ErrNotBuilt
	}
	if points.Cols != t.dataset.Cols {
		return &ErrDimensionMismatch{Expected: t.dataset.Cols, Actual: points.Cols}
	}

	oldSize := t.dataset.Rows
	merged := make([]float32, (oldSize+points.Rows)*t.dataset.Cols)
	copy(merged, t.dataset.Data)
	copy(merged[oldSize*t.dataset.Cols:], points.Data)
	t.dataset = Dataset{Rows: oldSize + points.Rows, Cols: t.dataset.Cols, Data: merged}
	t.ownDataset = true

	if rebuildThreshold > 1 && float64(t.sizeAtBuild)*rebuildThreshold < float64(t.dataset.Rows) {
		t.logger.LogRebuild(oldSize, t.dataset.Rows, rebuildThreshold)
		t.metrics.RecordRebuild()
		if err := t.Build(); err != nil {
			return err
		}
		t.logger.LogInsert(points.Rows, t.dataset.Rows, true)
		return nil
	}

	for i := 0; i < points.Rows; i++ {
		idx := oldSize + i
		dist := t.distFn(t.root.Pivot, t.dataset.Row(idx))
		t.addPointToTree(t.root, idx, dist)
	}
	t.logger.LogInsert(points.Rows, t.dataset.Rows, false)
	return nil
}

// addPointToTree descends from node to the leaf closest to idx, updating
// radius/variance/size on every node along the path. distToPivot is the
// distance from idx's vector to node.Pivot, computed once by the caller.
func (t *Tree) addPointToTree(node *Node, idx int, distToPivot float32) {
	if distToPivot > node.Radius {
		node.Radius = distToPivot
	}
	node.Variance = (float32(node.Size)*node.Variance + distToPivot) / float32(node.Size+1)
	node.Size++

	if node.IsLeaf() {
		node.Indices = append(node.Indices, idx)
		sort.Ints(node.Indices)
		pivot, radius, variance := computeNodeStatistics(t.dataset, node.Indices, t.distFn)
		node.Pivot = pivot
		node.Radius = radius
		node.Variance = variance

		if len(node.Indices) >= t.opts.Branching {
			members := node.Indices
			node.Indices = nil
			t.cluster(node, members, node.Level)
		}
		return
	}

	closest := 0
	bestDist := t.distFn(node.Children[0].Pivot, t.dataset.Row(idx))
	for c := 1; c < len(node.Children); c++ {
		d := t.distFn(node.Children[c].Pivot, t.dataset.Row(idx))
		if d < bestDist {
			bestDist = d
			closest = c
		}
	}
	t.addPointToTree(node.Children[closest], idx, bestDist)
}
