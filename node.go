package kmtree

import (
	"gonum.org/v1/gonum/floats"

	"github.com/kmtree-go/kmtree/distance"
)

// computeNodeStatistics computes the centroid, radius (maximum distance
// from the centroid to any member) and variance (mean distance from the
// centroid to its members) of the vectors named by indices.
//
// The centroid is accumulated in float64 via gonum/floats to keep summation
// error low across potentially large clusters, then rounded down to the
// tree's float32 element type.
func computeNodeStatistics(ds Dataset, indices []int, distFn distance.Func) (pivot []float32, radius, variance float32) {
	dim := ds.Cols
	mean := make([]float64, dim)
	tmp := make([]float64, dim)

	for _, idx := range indices {
		vec := ds.Row(idx)
		for i, v := range vec {
			tmp[i] = float64(v)
		}
		floats.Add(mean, tmp)
	}

	n := float64(len(indices))
	if n > 0 {
		floats.Scale(1/n, mean)
	}

	pivot = make([]float32, dim)
	for i, v := range mean {
		pivot[i] = float32(v)
	}

	for _, idx := range indices {
		d := distFn(pivot, ds.Row(idx))
		if d > radius {
			radius = d
		}
		variance += d
	}
	if n > 0 {
		variance /= float32(n)
	}
	return pivot, radius, variance
}
