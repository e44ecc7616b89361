package kmtree

import "math"

// GetClusterCenters extracts a flat clustering of (up to) numClusters
// centers from the tree by repeatedly splitting whichever current cluster
// would increase the total variance the least, starting from the root as
// a single cluster. It returns the chosen centers' pivots and the
// resulting mean per-point variance.
//
// Splitting stops early if an internal node's children would overshoot
// numClusters, or if every remaining cluster is already a leaf.
func (t *Tree) GetClusterCenters(numClusters int) ([][]float32, float32, error) {
	if t.root == nil {
		return nil, 0, ErrNotBuilt
	}
	if numClusters < 1 {
		return nil, 0, &ErrInvalidClusterCount{Requested: numClusters}
	}

	clusters := []*Node{t.root}
	meanVariance := t.root.Variance * float32(t.root.Size)

	for len(clusters) < numClusters {
		minVariance := float32(math.MaxFloat32)
		splitIndex := -1

		for i, c := range clusters {
			if c.IsLeaf() {
				continue
			}
			if t.opts.Branching+len(clusters)-1 > numClusters {
				continue
			}
			variance := meanVariance - c.Variance*float32(c.Size)
			for _, child := range c.Children {
				variance += child.Variance * float32(child.Size)
			}
			if variance < minVariance {
				minVariance = variance
				splitIndex = i
			}
		}
		if splitIndex == -1 {
			break
		}

		meanVariance = minVariance
		toSplit := clusters[splitIndex]
		clusters[splitIndex] = toSplit.Children[0]
		clusters = append(clusters, toSplit.Children[1:]...)
	}

	centers := make([][]float32, len(clusters))
	for i, c := range clusters {
		centers[i] = append([]float32(nil), c.Pivot...)
	}

	var variance float32
	if t.root.Size > 0 {
		variance = meanVariance / float32(t.root.Size)
	}
	return centers, variance, nil
}
