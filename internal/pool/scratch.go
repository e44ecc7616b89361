package pool

import "sync"

// Scratch holds the per-node bookkeeping buffers the Lloyd clustering kernel
// needs while refining one internal node: cluster assignments, member
// counts, and double-precision working centroids. It is returned to a
// sync.Pool after use so that building a large tree does not allocate one
// of these per node.
type Scratch struct {
	Belongs []int     // cluster index per member, length n
	Count   []int     // member count per cluster, length branching
	Radii   []float64 // max distance to center per cluster, length branching
	Centers []float64 // flattened branching*dim working centroids
}

var scratchPool = sync.Pool{
	New: func() any { return &Scratch{} },
}

// Get retrieves a Scratch sized for n members and the given branching
// factor/dimension, zeroing the parts that must start zeroed.
func Get(n, branching, dim int) *Scratch {
	s := scratchPool.Get().(*Scratch)
	s.Belongs = growInt(s.Belongs, n)
	s.Count = growInt(s.Count, branching)
	s.Radii = growFloat64(s.Radii, branching)
	s.Centers = growFloat64(s.Centers, branching*dim)
	for i := range s.Count {
		s.Count[i] = 0
	}
	for i := range s.Radii {
		s.Radii[i] = 0
	}
	return s
}

// Put returns a Scratch to the pool for reuse.
func Put(s *Scratch) {
	scratchPool.Put(s)
}

// BytesLen returns the number of bytes currently pinned by the scratch's
// backing arrays. A tree's UsedMemory does not include these bytes.
func (s *Scratch) BytesLen() int64 {
	const intSize = 8
	const f64Size = 8
	return int64(cap(s.Belongs)*intSize + cap(s.Count)*intSize +
		cap(s.Radii)*f64Size + cap(s.Centers)*f64Size)
}

func growInt(buf []int, n int) []int {
	if cap(buf) < n {
		buf = make([]int, n)
	}
	return buf[:n]
}

func growFloat64(buf []float64, n int) []float64 {
	if cap(buf) < n {
		buf = make([]float64, n)
	}
	return buf[:n]
}
