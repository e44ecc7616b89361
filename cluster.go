package kmtree

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/kmtree-go/kmtree/internal/pool"
)

// cluster recursively partitions the members named by indices into node's
// subtree. node.Pivot, node.Radius and node.Variance must already be set
// by the caller (the root's, by Build; a child's, by its parent's own call
// to cluster); this call only sets node.Size/node.Level and then either
// the sorted node.Indices (leaf) or node.Children (internal).
//
// indices is a sub-slice of the tree's shared index buffer; cluster
// partitions it in place so that each child ends up owning a contiguous
// range of the same backing array.
func (t *Tree) cluster(node *Node, indices []int, level int) {
	ds := t.dataset
	dim := ds.Cols
	branching := t.opts.Branching
	n := len(indices)

	node.Level = level
	node.Size = n

	if n < branching {
		t.makeLeaf(node, indices)
		return
	}

	centerIdx := t.seed(indices, branching)
	if len(centerIdx) < branching {
		t.logger.LogDegenerateSeed(len(centerIdx), branching)
		t.makeLeaf(node, indices)
		return
	}

	// Scratch is pooled via sync.Pool and shared across every node built by
	// every tree in the process; its bytes are transient working memory,
	// not something this tree permanently owns, so they are not folded
	// into memoryCounter (see UsedMemory).
	scratch := pool.Get(n, branching, dim)
	defer pool.Put(scratch)

	centers := make([]float32, branching*dim)
	for c, idx := range centerIdx {
		copy(centers[c*dim:(c+1)*dim], ds.Row(idx))
	}

	assign := func() bool {
		changed := false
		for c := range scratch.Count {
			scratch.Count[c] = 0
			scratch.Radii[c] = 0
		}
		for i, idx := range indices {
			vec := ds.Row(idx)
			best := 0
			bestDist := t.distFn(vec, centers[0:dim])
			for c := 1; c < branching; c++ {
				d := t.distFn(vec, centers[c*dim:(c+1)*dim])
				if d < bestDist {
					bestDist = d
					best = c
				}
			}
			if float64(bestDist) > scratch.Radii[best] {
				scratch.Radii[best] = float64(bestDist)
			}
			if scratch.Belongs[i] != best {
				changed = true
			}
			scratch.Belongs[i] = best
			scratch.Count[best]++
		}
		return changed
	}

	for i := range scratch.Belongs {
		scratch.Belongs[i] = -1
	}
	assign()

	tmp := make([]float64, dim)
	converged := false
	for iter := 0; iter < t.opts.Iterations && !converged; iter++ {
		for i := range scratch.Centers {
			scratch.Centers[i] = 0
		}
		for i, idx := range indices {
			vec := ds.Row(idx)
			for j, v := range vec {
				tmp[j] = float64(v)
			}
			c := scratch.Belongs[i]
			off := c * dim
			floats.Add(scratch.Centers[off:off+dim], tmp)
		}
		for c := 0; c < branching; c++ {
			cnt := scratch.Count[c]
			if cnt == 0 {
				// Leave the stale center in place rather than dividing by
				// zero; the assignment pass below still compares against
				// it, and the rebalance step after that moves a member
				// into this cluster if a donor exists.
				continue
			}
			off := c * dim
			floats.Scale(1/float64(cnt), scratch.Centers[off:off+dim])
			for j := 0; j < dim; j++ {
				centers[off+j] = float32(scratch.Centers[off+j])
			}
		}

		changed := assign()
		if t.rebalanceEmptyClusters(scratch, indices, branching) {
			changed = true
		}
		converged = !changed
	}

	node.Children = make([]*Node, branching)
	start := 0
	end := 0
	for c := 0; c < branching; c++ {
		cnt := scratch.Count[c]
		center := centers[c*dim : (c+1)*dim]
		var varianceSum float32
		for i := 0; i < n; i++ {
			if scratch.Belongs[i] != c {
				continue
			}
			varianceSum += t.distFn(center, ds.Row(indices[i]))
			indices[i], indices[end] = indices[end], indices[i]
			scratch.Belongs[i], scratch.Belongs[end] = scratch.Belongs[end], scratch.Belongs[i]
			end++
		}
		var variance float32
		if cnt > 0 {
			variance = varianceSum / float32(cnt)
		}

		pivot := make([]float32, dim)
		copy(pivot, center)
		t.memoryCounter += int64(dim) * 4

		child := &Node{
			Pivot:    pivot,
			Radius:   float32(scratch.Radii[c]),
			Variance: variance,
		}
		node.Children[c] = child
		t.cluster(child, indices[start:end], level+1)
		start = end
	}
}

// rebalanceEmptyClusters moves one member away from a donor cluster into
// every empty cluster it can find a donor for. A donor must have more than
// one member so that moving one away never creates a new empty cluster.
// The scan is bounded at branching attempts per empty cluster: if no donor
// is found, the cluster is left empty (a valid, if useless, leaf) rather
// than spinning.
func (t *Tree) rebalanceEmptyClusters(scratch *pool.Scratch, indices []int, branching int) bool {
	rebalanced := false
	for i := 0; i < branching; i++ {
		if scratch.Count[i] != 0 {
			continue
		}
		donor := -1
		j := (i + 1) % branching
		for attempts := 0; attempts < branching; attempts++ {
			if scratch.Count[j] > 1 {
				donor = j
				break
			}
			j = (j + 1) % branching
		}
		if donor == -1 {
			continue
		}
		for k := range indices {
			if scratch.Belongs[k] == donor {
				scratch.Belongs[k] = i
				scratch.Count[donor]--
				scratch.Count[i]++
				rebalanced = true
				break
			}
		}
	}
	return rebalanced
}

// makeLeaf finalizes node as a leaf over indices. node.Pivot/Radius/Variance
// are left untouched: they were already set by the caller (the partition
// step that created this node, or Build for the root).
func (t *Tree) makeLeaf(node *Node, indices []int) {
	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)
	node.Indices = sorted
}
