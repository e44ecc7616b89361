package kmtree

import (
	"math"
	"math/rand"
	"time"

	"github.com/kmtree-go/kmtree/distance"
)

// Dataset is a row-major matrix of float32 vectors: Rows vectors of Cols
// elements each, stored contiguously in Data. A Tree owns dataset storage
// only if constructed with WithCopyDataset or after AddPoints has copied
// the rows into a merged buffer; otherwise callers keep the backing array
// alive for the lifetime of the tree.
type Dataset struct {
	Rows int
	Cols int
	Data []float32
}

// NewDataset wraps data as a rows x cols row-major matrix. len(data) must
// equal rows*cols.
func NewDataset(rows, cols int, data []float32) Dataset {
	return Dataset{Rows: rows, Cols: cols, Data: data}
}

// Row returns the i-th vector as a slice viewing Data; mutating it mutates
// the dataset.
func (d Dataset) Row(i int) []float32 {
	return d.Data[i*d.Cols : (i+1)*d.Cols]
}

// Clone returns a Dataset with its own copy of Data.
func (d Dataset) Clone() Dataset {
	cp := make([]float32, len(d.Data))
	copy(cp, d.Data)
	return Dataset{Rows: d.Rows, Cols: d.Cols, Data: cp}
}

// Node is one node of a Tree: either an internal node with Branching
// Children, or a leaf holding the sorted Indices of the dataset rows it
// covers. Pivot, Radius and Variance describe the cluster the node
// represents relative to its parent's partition.
type Node struct {
	Pivot    []float32
	Radius   float32
	Variance float32
	Size     int
	Level    int
	Children []*Node
	Indices  []int
}

// IsLeaf reports whether node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Tree is a hierarchical k-means index over a Dataset. The zero value is
// not usable; construct one with New.
type Tree struct {
	dataset    Dataset
	ownDataset bool
	opts       Options
	distFn     distance.Func
	root       *Node
	rng        *rand.Rand

	memoryCounter int64
	sizeAtBuild   int

	logger  *Logger
	metrics MetricsCollector
}

// New constructs a Tree over dataset using distFn as the vector metric.
// The tree is not built; call Build before searching it. distFn is an
// external collaborator: New never picks one on the caller's behalf.
func New(dataset Dataset, distFn distance.Func, optFns ...func(*Options)) (*Tree, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Branching < 2 {
		return nil, &ErrInvalidBranching{Branching: opts.Branching}
	}
	if opts.Iterations < 0 {
		opts.Iterations = math.MaxInt32
	}

	var seed int64
	if opts.RandomSeed != nil {
		seed = *opts.RandomSeed
	} else {
		seed = time.Now().UnixNano()
	}

	if opts.CopyDataset {
		dataset = dataset.Clone()
	}

	logger := opts.Logger
	if logger == nil {
		logger = NoopLogger()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}

	return &Tree{
		dataset:    dataset,
		ownDataset: opts.CopyDataset,
		opts:       opts,
		distFn:     distFn,
		rng:        rand.New(rand.NewSource(seed)),
		logger:     logger,
		metrics:    metrics,
	}, nil
}

// Size returns the number of vectors currently indexed, including any
// added since the last Build.
func (t *Tree) Size() int { return t.dataset.Rows }

// Veclen returns the dimensionality of indexed vectors.
func (t *Tree) Veclen() int { return t.dataset.Cols }

// UsedMemory estimates the number of bytes held by the tree's own
// structures (node pivots), excluding the dataset itself and excluding
// the clustering kernel's pooled scratch buffers, which are transient and
// shared process-wide rather than owned by any one tree.
func (t *Tree) UsedMemory() int64 { return t.memoryCounter }

// GetParameters returns the effective options the tree was constructed or
// loaded with.
func (t *Tree) GetParameters() Options { return t.opts }

// SetCBIndex updates the cluster-boundary index used by best-bin-first
// search without requiring a rebuild.
func (t *Tree) SetCBIndex(cb float32) { t.opts.CBIndex = cb }

// Built reports whether Build or Load has populated the tree.
func (t *Tree) Built() bool { return t.root != nil }
