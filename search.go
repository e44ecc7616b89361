package kmtree

import (
	"math"
	"sort"

	"github.com/kmtree-go/kmtree/internal/queue"
)

// Unlimited, passed as checks to FindNeighbors, requests an exact search
// that visits every node the triangle-inequality pruning test cannot rule
// out, rather than a bounded best-bin-first search.
const Unlimited = -1

// Result collects nearest-neighbor candidates during a search. AddPoint is
// called once per candidate visited; WorstDist returns the distance of the
// currently worst retained candidate (or a value no real distance exceeds,
// such as +Inf or math.MaxFloat32, while the result has not yet reached
// capacity), and Full reports whether that capacity has been
// reached. Implementations need not be safe for concurrent use.
type Result interface {
	AddPoint(dist float32, idx int)
	WorstDist() float32
	Full() bool
}

// Neighbor is one nearest-neighbor candidate surfaced by BoundedResult.
type Neighbor struct {
	Index    int
	Distance float32
}

// BoundedResult retains the k closest candidates seen, sorted ascending by
// distance. It is the Result implementation most callers need.
type BoundedResult struct {
	k     int
	items []Neighbor
}

// NewBoundedResult creates a Result retaining the k closest candidates.
func NewBoundedResult(k int) *BoundedResult {
	return &BoundedResult{k: k, items: make([]Neighbor, 0, k)}
}

// AddPoint inserts (dist, idx) if it belongs among the k closest seen so far.
func (r *BoundedResult) AddPoint(dist float32, idx int) {
	if len(r.items) < r.k {
		pos := sort.Search(len(r.items), func(i int) bool { return r.items[i].Distance > dist })
		r.items = append(r.items, Neighbor{})
		copy(r.items[pos+1:], r.items[pos:])
		r.items[pos] = Neighbor{Index: idx, Distance: dist}
		return
	}
	if dist >= r.items[len(r.items)-1].Distance {
		return
	}
	pos := sort.Search(len(r.items), func(i int) bool { return r.items[i].Distance > dist })
	copy(r.items[pos+1:], r.items[pos:len(r.items)-1])
	r.items[pos] = Neighbor{Index: idx, Distance: dist}
}

// WorstDist returns the distance of the current k-th closest candidate, or
// math.MaxFloat32 if fewer than k have been seen.
func (r *BoundedResult) WorstDist() float32 {
	if len(r.items) < r.k {
		return math.MaxFloat32
	}
	return r.items[len(r.items)-1].Distance
}

// Full reports whether k candidates have been retained.
func (r *BoundedResult) Full() bool { return len(r.items) >= r.k }

// Neighbors returns the retained candidates, ascending by distance.
func (r *BoundedResult) Neighbors() []Neighbor { return r.items }

// Reset clears the result for reuse against a new query.
func (r *BoundedResult) Reset() { r.items = r.items[:0] }

// FindNeighbors searches the tree for neighbors of query, feeding every
// candidate it visits to result.
//
// If checks is Unlimited, the search is exact: every subtree the pruning
// test cannot eliminate is visited in full. Otherwise the search is
// best-bin-first: it visits the single most promising branch at each
// internal node, deferring the rest to a priority queue, and stops once it
// has performed at least checks leaf-point comparisons and result is full
// (or the queue runs dry first).
func (t *Tree) FindNeighbors(result Result, query []float32, checks int) error {
	if t.root == nil {
		return ErrNotBuilt
	}
	if len(query) != t.dataset.Cols {
		return &ErrDimensionMismatch{Expected: t.dataset.Cols, Actual: len(query)}
	}

	if checks == Unlimited {
		t.findExactNN(t.root, result, query)
		t.logger.LogSearch(t.dataset.Rows, result.Full())
		t.metrics.RecordSearch(t.dataset.Rows, boundedLen(result))
		return nil
	}

	branches := queue.New[*Node](t.opts.Branching)
	checksDone := 0
	t.findNN(t.root, result, query, &checksDone, checks, branches)
	for branches.Len() > 0 && (checksDone < checks || !result.Full()) {
		node, _, ok := branches.PopMin()
		if !ok {
			break
		}
		t.findNN(node, result, query, &checksDone, checks, branches)
	}

	t.logger.LogSearch(checksDone, result.Full())
	t.metrics.RecordSearch(checksDone, boundedLen(result))
	return nil
}

func boundedLen(result Result) int {
	if br, ok := result.(*BoundedResult); ok {
		return len(br.items)
	}
	return 0
}

// prune reports whether node's subtree can be skipped entirely: it holds
// when even the closest point in the subtree, bounded by the triangle
// inequality against node's pivot/radius, cannot beat result's current
// worst retained distance.
func (t *Tree) prune(node *Node, query []float32, result Result) bool {
	b := t.distFn(query, node.Pivot)
	r := node.Radius
	w := result.WorstDist()
	v := b - r - w
	v2 := v*v - 4*r*w
	return v > 0 && v2 > 0
}

// findNN is the best-bin-first traversal: descend into the single closest
// child at every internal node, push the rest onto branches for later
// exploration, and stop early once both the check budget and a full result
// have been reached inside a leaf.
func (t *Tree) findNN(node *Node, result Result, query []float32, checks *int, maxChecks int, branches *queue.Branch[*Node]) {
	if t.prune(node, query, result) {
		return
	}
	if node.IsLeaf() {
		if *checks >= maxChecks && result.Full() {
			return
		}
		*checks += node.Size
		for _, idx := range node.Indices {
			result.AddPoint(t.distFn(t.dataset.Row(idx), query), idx)
		}
		return
	}

	best := t.exploreBranches(node, query, branches)
	t.findNN(node.Children[best], result, query, checks, maxChecks, branches)
}

// exploreBranches evaluates query against every child of node, queues all
// but the closest for later exploration (ranked by distance minus a
// variance bonus, so more spread-out, higher-variance branches get
// explored sooner), and returns the
// index of the closest child.
func (t *Tree) exploreBranches(node *Node, query []float32, branches *queue.Branch[*Node]) int {
	branching := len(node.Children)
	dists := make([]float32, branching)
	best := 0
	dists[0] = t.distFn(query, node.Children[0].Pivot)
	for i := 1; i < branching; i++ {
		dists[i] = t.distFn(query, node.Children[i].Pivot)
		if dists[i] < dists[best] {
			best = i
		}
	}
	for i := 0; i < branching; i++ {
		if i == best {
			continue
		}
		key := dists[i] - t.opts.CBIndex*node.Children[i].Variance
		branches.Insert(node.Children[i], key)
	}
	return best
}

// findExactNN is the exhaustive traversal: visit every child in order of
// increasing distance to query, relying solely on prune to skip subtrees
// that cannot contain a better candidate.
func (t *Tree) findExactNN(node *Node, result Result, query []float32) {
	if t.prune(node, query, result) {
		return
	}
	if node.IsLeaf() {
		for _, idx := range node.Indices {
			result.AddPoint(t.distFn(t.dataset.Row(idx), query), idx)
		}
		return
	}
	for _, c := range t.centerOrdering(node, query) {
		t.findExactNN(node.Children[c], result, query)
	}
}

// centerOrdering returns node's child indices sorted ascending by distance
// to query, built with a literal insertion sort rather than sort.Slice:
// the branching factor is small, so the simple loop beats the overhead of
// a general-purpose sort.
func (t *Tree) centerOrdering(node *Node, query []float32) []int {
	branching := len(node.Children)
	dists := make([]float32, branching)
	order := make([]int, branching)

	for i := 0; i < branching; i++ {
		d := t.distFn(query, node.Children[i].Pivot)
		j := 0
		for j < i && dists[j] < d {
			j++
		}
		for k := i; k > j; k-- {
			dists[k] = dists[k-1]
			order[k] = order[k-1]
		}
		dists[j] = d
		order[j] = i
	}
	return order
}
